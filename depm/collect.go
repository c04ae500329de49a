package depm

import (
	"declres/ast"
	"declres/report"
)

// Collector walks the skeleton of one compilation unit and produces its
// declaration tree and flat index without resolving any name.  Collectors of
// different units share nothing and can run concurrently.
type Collector struct {
	unit *CompilationUnit
	rep  *report.Reporter
}

// Collect collects the declarations of file as the compilation unit with the
// given index.  Duplicate sibling declarations are reported: the first
// declaration keeps its place in the index and collection continues.
func Collect(index int32, file *ast.File, rep *report.Reporter) *CompilationUnit {
	c := &Collector{
		unit: &CompilationUnit{
			Index:   index,
			Path:    file.Path,
			Package: file.Package,
			index:   make(map[indexKey][]DeclID),
		},
		rep: rep,
	}

	for _, imp := range file.Imports {
		c.unit.Imports = append(c.unit.Imports, classifyImport(c.unit, imp))
	}

	for _, adecl := range file.Decls {
		c.unit.TopLevel = append(c.unit.TopLevel, c.collectDecl(adecl, NoDecl))
	}

	return c.unit
}

// collectDecl adds a declaration and all its nested declarations to the arena
// and returns its ID.
func (c *Collector) collectDecl(adecl *ast.Decl, parent DeclID) DeclID {
	decl := &Declaration{
		ID:         DeclID{Unit: c.unit.Index, Index: int32(len(c.unit.Decls))},
		Kind:       adecl.Kind,
		Name:       adecl.Name,
		Parent:     parent,
		Unit:       c.unit,
		Span:       adecl.NameSpan,
		Inner:      adecl.Inner,
		TypeParams: adecl.TypeParams,
		Supertypes: adecl.Supertypes,
		Aliased:    adecl.Aliased,
		Params:     adecl.Params,
		Returns:    adecl.Returns,
		Type:       adecl.Type,
		Refs:       adecl.Refs,
	}
	c.unit.Decls = append(c.unit.Decls, decl)

	c.index(decl)

	for _, asub := range adecl.Decls {
		decl.Children = append(decl.Children, c.collectDecl(asub, decl.ID))
	}

	return decl.ID
}

// index adds a declaration to the flat index of its unit provided it does not
// collide with a sibling.
func (c *Collector) index(decl *Declaration) {
	key := indexKey{parent: decl.Parent, name: decl.Name}

	siblings := c.unit.index[key]
	if len(siblings) > 0 && !CanOverload(c.unit.Decls[siblings[0].Index], decl) {
		first := c.unit.Decls[siblings[0].Index]
		c.rep.Errorf(
			report.KindDuplicateDeclaration,
			c.unit.Path,
			decl.Span,
			"%s `%s` conflicts with %s declared at %s",
			decl.Kind, decl.Name, first.Kind, first.Span,
		)

		return
	}

	c.unit.index[key] = append(siblings, decl.ID)
}

// CanOverload returns whether two declarations with the same simple name can
// coexist in the same scope.  Only functions overload.
func CanOverload(a, b *Declaration) bool {
	return a.Kind == ast.DeclFunction && b.Kind == ast.DeclFunction
}
