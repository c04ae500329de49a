package mods

import (
	"os"
	"path/filepath"
	"testing"

	"declres/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files relative to root.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestInitAndLoadModule(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, InitModule("shapes", root))
	assert.FileExists(t, filepath.Join(root, common.ModuleFileName))

	// A second init fails.
	assert.Error(t, InitModule("shapes", root))

	mod, err := LoadModule(root)
	require.NoError(t, err)

	assert.Equal(t, "shapes", mod.Name)
	assert.Equal(t, root, mod.Root)
	assert.Equal(t, DefaultSourcePatterns, mod.SourcePatterns)
	assert.Empty(t, mod.ExcludePatterns)
	assert.Nil(t, mod.DefaultImports)
	assert.Zero(t, mod.Workers)
}

func TestInitModuleRejectsBadNames(t *testing.T) {
	root := t.TempDir()
	assert.Error(t, InitModule("not-a-name", root))
	assert.NoFileExists(t, filepath.Join(root, common.ModuleFileName))
}

func TestLoadModuleSettings(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		common.ModuleFileName: `
[module]
name = "app"
declres-version = "0.1.0"
sources = ["src/**.yaml"]
exclude = ["src/gen/**"]
default-imports = ["std.*"]
workers = 3
`,
	})

	mod, err := LoadModule(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**.yaml"}, mod.SourcePatterns)
	assert.Equal(t, []string{"src/gen/**"}, mod.ExcludePatterns)
	assert.Equal(t, []string{"std.*"}, mod.DefaultImports)
	assert.Equal(t, 3, mod.Workers)

	assert.True(t, mod.IsSource("src/a.yaml"))
	assert.True(t, mod.IsSource("src/x/y/b.yaml"))
	assert.False(t, mod.IsSource("src/gen/c.yaml"))
	assert.False(t, mod.IsSource("other/d.yaml"))
	assert.False(t, mod.IsSource("src/e.toml"))
}

func TestLoadModuleErrors(t *testing.T) {
	cases := map[string]string{
		"missing table":    `name = "x"`,
		"missing name":     "[module]\ndeclres-version = \"0.1.0\"",
		"invalid name":     "[module]\nname = \"a b\"",
		"negative workers": "[module]\nname = \"a\"\ndeclres-version = \"0.1.0\"\nworkers = -1",
		"bad toml":         "[module",
		"bad version":      "[module]\nname = \"a\"\ndeclres-version = \"one\"",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, map[string]string{common.ModuleFileName: content})

			_, err := LoadModule(root)
			assert.Error(t, err)
		})
	}

	_, err := LoadModule(t.TempDir())
	assert.Error(t, err)
}

func TestFindAndLoadSources(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, InitModule("app", root))

	writeFiles(t, root, map[string]string{
		"b.yaml":        "package: app\ndecls: [{kind: class, name: B}]",
		"sub/a.yaml":    "package: app.sub\ndecls: [{kind: class, name: A}]",
		"sub/notes.txt": "not a skeleton",
	})

	mod, err := LoadModule(root)
	require.NoError(t, err)

	paths, err := mod.FindSources()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.yaml", "sub/a.yaml"}, paths)

	files, err := mod.LoadSources()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "b.yaml", files[0].Path)
	assert.Equal(t, "sub/a.yaml", files[1].Path)
	assert.Equal(t, "app.sub", files[1].Package)
}

func TestLoadSourcesSyntaxError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, InitModule("app", root))
	writeFiles(t, root, map[string]string{"bad.yaml": "decls: [{kind: thing, name: X}]"})

	mod, err := LoadModule(root)
	require.NoError(t, err)

	_, err = mod.LoadSources()
	assert.Error(t, err)
}

func TestLoadModuleOtherVersion(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		common.ModuleFileName: "[module]\nname = \"old\"\ndeclres-version = \"0.0.3\"",
	})

	// A version mismatch is only a warning.
	mod, err := LoadModule(root)
	require.NoError(t, err)
	assert.Equal(t, "old", mod.Name)
}
