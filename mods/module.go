package mods

import "github.com/gobwas/glob"

// Module is a loaded declres module: a directory of skeleton files described
// by a module file.
type Module struct {
	// Name is the name of the module.
	Name string

	// Root is the absolute path of the module directory.
	Root string

	// SourcePatterns and ExcludePatterns are the glob patterns selecting the
	// skeleton files of the module relative to Root.
	SourcePatterns  []string
	ExcludePatterns []string

	// DefaultImports is the list of star imports implicitly present in every
	// unit of the module.
	DefaultImports []string

	// Workers is the maximum number of units resolved concurrently.  Zero
	// means GOMAXPROCS.
	Workers int

	sources, excludes []glob.Glob
}
