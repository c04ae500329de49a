package mods

import (
	"io"
	"os"
	"path/filepath"

	"declres/common"
	"declres/depm"
	"declres/report"

	"github.com/gobwas/glob"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
)

// tomlModuleFile represents the module file as it is encoded in TOML.
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

// tomlModule represents a declres module as it is encoded in TOML.
type tomlModule struct {
	Name           string   `toml:"name"`
	Version        string   `toml:"declres-version"`
	Sources        []string `toml:"sources,omitempty"`
	Exclude        []string `toml:"exclude,omitempty"`
	DefaultImports []string `toml:"default-imports,omitempty"`
	Workers        int      `toml:"workers,omitempty"`
}

// DefaultSourcePatterns selects every skeleton file of a module.
var DefaultSourcePatterns = []string{"**" + common.SkeletonFileExt}

// LoadModule loads and validates a module.  `path` is the path to the module
// directory.
func LoadModule(path string) (*Module, error) {
	abspath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid module path `%s`", path)
	}

	// open file
	f, err := os.Open(filepath.Join(abspath, common.ModuleFileName))
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open module file at `%s`", abspath)
	}
	defer f.Close()

	// unmarshal the contents
	buff, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading module file at `%s`", abspath)
	}

	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, errors.Wrapf(err, "error parsing module file at `%s`", abspath)
	}

	if tmf.Module == nil {
		return nil, errors.Errorf("module file at `%s` is missing the [module] table", abspath)
	}

	mod := &Module{
		// module root is the directory enclosing the module file
		Root: abspath,
	}

	// ensure that the module is valid
	if err := validateModule(mod, tmf.Module); err != nil {
		return nil, err
	}

	return mod, nil
}

// validateModule checks that the module contents are valid and moves them
// over to the loaded module.
func validateModule(mod *Module, tmod *tomlModule) error {
	if tmod.Name == "" {
		return errors.Errorf("missing module name for module at `%s`", mod.Root)
	}

	if !depm.IsValidIdentifier(tmod.Name) {
		return errors.Errorf("module name `%s` must be a valid identifier", tmod.Name)
	}

	version := "v" + tmod.Version
	if !semver.IsValid(version) {
		return errors.Errorf("module `%s`: invalid declres version `%s`", tmod.Name, tmod.Version)
	}

	// Only the major and minor versions affect resolution.
	if semver.MajorMinor(version) != semver.MajorMinor("v"+common.DeclresVersion) {
		report.ReportWarning(
			"version of module `%s` (v%s) does not match current declres version (v%s)",
			tmod.Name,
			tmod.Version,
			common.DeclresVersion,
		)
	}

	if tmod.Workers < 0 {
		return errors.Errorf("module `%s`: worker count must not be negative", tmod.Name)
	}

	mod.Name = tmod.Name
	mod.Workers = tmod.Workers
	mod.DefaultImports = tmod.DefaultImports

	mod.SourcePatterns = tmod.Sources
	if len(mod.SourcePatterns) == 0 {
		mod.SourcePatterns = DefaultSourcePatterns
	}

	mod.ExcludePatterns = tmod.Exclude

	var err error
	if mod.sources, err = compilePatterns(mod.SourcePatterns); err != nil {
		return errors.Wrapf(err, "module `%s`", tmod.Name)
	}

	if mod.excludes, err = compilePatterns(mod.ExcludePatterns); err != nil {
		return errors.Wrapf(err, "module `%s`", tmod.Name)
	}

	return nil
}

// compilePatterns compiles a list of slash-separated glob patterns.
func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern `%s`", p)
		}

		globs = append(globs, g)
	}

	return globs, nil
}
