// Package ast defines the declaration skeleton handed over by a parser: the
// shape of each compilation unit without any resolved name.
package ast

import "declres/report"

// File is the declaration skeleton of a single compilation unit.
type File struct {
	// Path identifies the unit: usually the path of the skeleton file.
	Path string

	// Package is the dotted package designation of the unit.  It may be
	// empty for the root package.
	Package string

	// Imports is the ordered list of import directives.
	Imports []*Import

	// Decls is the ordered list of top-level declarations.
	Decls []*Decl
}

// Import is a single import directive as it was written.
type Import struct {
	// Path is the qualified name being imported split on dots.  For a star
	// import, it is the path of the imported namespace (without the star).
	Path []string

	// Alias is the name the target is bound to.  Empty if not aliased.
	Alias string

	// Star indicates a star import.
	Star bool

	Span *report.TextSpan
}

// QualifiedName returns the dotted form of the imported path.
func (imp *Import) QualifiedName() string {
	return JoinPath(imp.Path)
}

// JoinPath joins the segments of a qualified name with dots.
func JoinPath(path []string) string {
	n := 0
	for _, seg := range path {
		n += len(seg) + 1
	}

	buff := make([]byte, 0, n)
	for i, seg := range path {
		if i > 0 {
			buff = append(buff, '.')
		}

		buff = append(buff, seg...)
	}

	return string(buff)
}
