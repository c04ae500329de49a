package resolve

import (
	"declres/ast"
	"declres/depm"
)

// scopeBuilder builds the scope chains of one compilation unit.
type scopeBuilder struct {
	table *depm.PackageTable
	fr    *FileResult
}

// buildScopes builds the file-level chain of a unit and the chains seen by
// each of its declarations.  root is the shared Root level.
func buildScopes(table *depm.PackageTable, fr *FileResult, root *Scope) {
	unit := fr.Unit

	pkg, ok := table.Package(unit.Package)
	if !ok {
		// Every unit contributes its package to the table.
		panic("missing package table entry for `" + unit.Package + "`")
	}

	stars := &Scope{Kind: ScopeStarImports, Owner: depm.NoDecl, Imports: fr.Imports, Parent: root}
	pkgScope := &Scope{Kind: ScopePackage, Owner: depm.NoDecl, Package: pkg, Parent: stars}
	fr.Scope = &Scope{Kind: ScopeExplicitImports, Owner: depm.NoDecl, Imports: fr.Imports, Parent: pkgScope}

	sb := &scopeBuilder{table: table, fr: fr}
	for _, id := range unit.TopLevel {
		sb.build(id, fr.Scope, fr.Scope)
	}
}

// build builds the chains of a declaration.  full is the innermost chain of
// the enclosing declaration and static is the same chain stripped of all
// type parameter levels: the chain seen by a non-inner nested classifier.
func (sb *scopeBuilder) build(id depm.DeclID, full, static *Scope) {
	decl := sb.table.Decl(id)

	switch decl.Kind {
	case ast.DeclClass, ast.DeclInterface, ast.DeclObject, ast.DeclEnum:
		outer := static
		if decl.Inner {
			outer = full
		}

		class := &Scope{Kind: ScopeClass, Owner: id, Parent: outer}
		body := typeParamScope(decl, class)

		// The header (type parameter bounds and supertypes) does not see the
		// members of the class.
		sb.fr.Headers[id] = typeParamScope(decl, outer)
		sb.fr.Bodies[id] = body

		nested := &Scope{Kind: ScopeClass, Owner: id, Parent: static}
		for _, child := range decl.Children {
			sb.build(child, body, nested)
		}
	case ast.DeclFunction:
		scope := typeParamScope(decl, full)
		sb.fr.Headers[id] = scope
		sb.fr.Bodies[id] = scope

		for _, child := range decl.Children {
			sb.build(child, scope, static)
		}
	case ast.DeclTypeAlias:
		scope := typeParamScope(decl, static)
		sb.fr.Headers[id] = scope
		sb.fr.Bodies[id] = scope
	case ast.DeclProperty, ast.DeclEnumEntry:
		sb.fr.Headers[id] = full
		sb.fr.Bodies[id] = full
	}
}

// typeParamScope returns a TypeParams level for the type parameters of decl
// on top of parent or parent itself if decl has no type parameters.
func typeParamScope(decl *depm.Declaration, parent *Scope) *Scope {
	if len(decl.TypeParams) == 0 {
		return parent
	}

	return &Scope{Kind: ScopeTypeParams, Owner: decl.ID, Parent: parent}
}
