package depm

import (
	"declres/ast"
	"declres/report"
)

// CompilationUnit is a collected compilation unit: one skeleton file.
type CompilationUnit struct {
	// Index is the position of the unit in the compiled set.  It is the Unit
	// component of all DeclIDs of declarations defined in this unit.
	Index int32

	// Path identifies the unit.
	Path string

	// Package is the package designation of the unit.
	Package string

	// Decls is the declaration arena of the unit: Decls[i].ID.Index == i.
	Decls []*Declaration

	// TopLevel is the ordered list of top-level declarations.
	TopLevel []DeclID

	// Imports is the ordered list of import directives.
	Imports []*ImportDirective

	// index is the flat lookup index of the unit's declarations.
	index map[indexKey][]DeclID
}

// indexKey is a key of the unit's flat index: an enclosing declaration (NoDecl
// for the top level) and a simple name.
type indexKey struct {
	parent DeclID
	name   string
}

// Decl returns the declaration of the unit with the given local index.
func (cu *CompilationUnit) Decl(ndx int32) *Declaration {
	return cu.Decls[ndx]
}

// Lookup returns the declarations named name declared directly inside parent
// (NoDecl for the top level of the unit).
func (cu *CompilationUnit) Lookup(parent DeclID, name string) []DeclID {
	return cu.index[indexKey{parent: parent, name: name}]
}

// -----------------------------------------------------------------------------

// ImportKind is the kind of an import directive.
type ImportKind int

// Enumeration of import kinds.
const (
	ImportExplicit ImportKind = iota // import a.b.C
	ImportAliased                    // import a.b.C as D
	ImportStar                       // import a.b.*
)

// ImportDirective is a classified import directive.
type ImportDirective struct {
	Kind ImportKind

	// Path is the qualified name of the import target.
	Path []string

	// Alias is the bound name of an aliased import.
	Alias string

	Span *report.TextSpan

	// Unit is the unit containing the directive.
	Unit *CompilationUnit
}

// classifyImport converts a skeleton import into an import directive.
func classifyImport(cu *CompilationUnit, imp *ast.Import) *ImportDirective {
	idir := &ImportDirective{
		Path: imp.Path,
		Span: imp.Span,
		Unit: cu,
	}

	switch {
	case imp.Star:
		idir.Kind = ImportStar
	case imp.Alias != "":
		idir.Kind = ImportAliased
		idir.Alias = imp.Alias
	default:
		idir.Kind = ImportExplicit
	}

	return idir
}

// BoundName returns the simple name bound by an explicit or aliased import.
// Star imports bind no name.
func (idir *ImportDirective) BoundName() string {
	switch idir.Kind {
	case ImportExplicit:
		return idir.Path[len(idir.Path)-1]
	case ImportAliased:
		return idir.Alias
	default:
		return ""
	}
}

// QualifiedName returns the dotted import path.
func (idir *ImportDirective) QualifiedName() string {
	return ast.JoinPath(idir.Path)
}

func (idir *ImportDirective) String() string {
	switch idir.Kind {
	case ImportStar:
		return idir.QualifiedName() + ".*"
	case ImportAliased:
		return idir.QualifiedName() + " as " + idir.Alias
	default:
		return idir.QualifiedName()
	}
}
