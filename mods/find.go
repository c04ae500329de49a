package mods

import (
	"io/fs"
	"path/filepath"
	"sort"

	"declres/ast"
	"declres/syntax"

	"github.com/pkg/errors"
)

// FindSources returns the paths of the skeleton files of a module relative
// to its root, slash-separated and sorted.  A file is a source if it matches
// a source pattern and no exclude pattern.
func (mod *Module) FindSources() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(mod.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(mod.Root, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)
		if mod.IsSource(rel) {
			paths = append(paths, rel)
		}

		return nil
	})

	if err != nil {
		return nil, errors.Wrapf(err, "error walking module `%s`", mod.Name)
	}

	sort.Strings(paths)
	return paths, nil
}

// IsSource returns whether the slash-separated path relative to the module
// root selects a source file.
func (mod *Module) IsSource(rel string) bool {
	matched := false
	for _, g := range mod.sources {
		if g.Match(rel) {
			matched = true
			break
		}
	}

	if !matched {
		return false
	}

	for _, g := range mod.excludes {
		if g.Match(rel) {
			return false
		}
	}

	return true
}

// LoadSources finds and parses all the skeleton files of a module.  The
// units are identified by their paths relative to the module root.
func (mod *Module) LoadSources() ([]*ast.File, error) {
	paths, err := mod.FindSources()
	if err != nil {
		return nil, err
	}

	files := make([]*ast.File, 0, len(paths))
	for _, rel := range paths {
		file, err := syntax.LoadSkeleton(filepath.Join(mod.Root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}

		file.Path = rel
		files = append(files, file)
	}

	return files, nil
}
