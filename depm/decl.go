package depm

import (
	"fmt"

	"declres/ast"
	"declres/report"
)

// DeclID identifies a declaration: it is an index into the declaration arena
// of a compilation unit.  Enclosing-declaration links are DeclIDs rather than
// pointers since the tree only owns its children.
type DeclID struct {
	// Unit is the index of the compilation unit defining the declaration.
	Unit int32

	// Index is the index of the declaration within its unit's arena.
	Index int32
}

// NoDecl is the DeclID of no declaration: eg. the parent of a top-level
// declaration.
var NoDecl = DeclID{Unit: -1, Index: -1}

// Valid returns whether the ID refers to a declaration.
func (id DeclID) Valid() bool {
	return id.Unit >= 0 && id.Index >= 0
}

func (id DeclID) String() string {
	return fmt.Sprintf("#%d.%d", id.Unit, id.Index)
}

// Less orders declaration IDs by unit and then by position in the unit.
func (id DeclID) Less(other DeclID) bool {
	if id.Unit != other.Unit {
		return id.Unit < other.Unit
	}

	return id.Index < other.Index
}

// -----------------------------------------------------------------------------

// Declaration is a collected declaration.  Declarations are immutable once
// the collector has produced them.
type Declaration struct {
	ID   DeclID
	Kind ast.DeclKind
	Name string

	// Parent is the enclosing declaration.  NoDecl for top-level
	// declarations.
	Parent DeclID

	// Children is the list of nested declarations in declaration order.
	Children []DeclID

	// Unit is the compilation unit defining the declaration.
	Unit *CompilationUnit

	// Span is the position of the declaration's name.
	Span *report.TextSpan

	// Inner marks a nested class which sees its outer type parameters.
	Inner bool

	TypeParams []*ast.TypeParam

	// Supertypes is the list of unresolved supertype references.
	Supertypes []*ast.TypeRef

	// Aliased is the unresolved right-hand side of a type alias.
	Aliased *ast.TypeRef

	// Params and Returns make up the signature of a function.
	Params  []*ast.TypeRef
	Returns *ast.TypeRef

	// Type is the declared type of a property.
	Type *ast.TypeRef

	// Refs are the value references made in the body of the declaration.
	Refs []*ast.TypeRef
}

// IsClassifier returns whether the declaration introduces a type.
func (d *Declaration) IsClassifier() bool {
	return d.Kind.IsClassifier()
}

// HasMembers returns whether the declaration can contain nested
// declarations that are visible to it as a class scope.
func (d *Declaration) HasMembers() bool {
	switch d.Kind {
	case ast.DeclClass, ast.DeclInterface, ast.DeclObject, ast.DeclEnum:
		return true
	case ast.DeclEnumEntry, ast.DeclTypeAlias, ast.DeclFunction, ast.DeclProperty:
		return false
	}

	return false
}

// TypeRefs returns every unresolved type reference written in the
// declaration's own header: supertypes, alias right-hand side, signature,
// property type and type parameter bounds.
func (d *Declaration) TypeRefs() []*ast.TypeRef {
	var trs []*ast.TypeRef

	for _, tp := range d.TypeParams {
		if tp.Bound != nil {
			trs = append(trs, tp.Bound)
		}
	}

	trs = append(trs, d.Supertypes...)

	if d.Aliased != nil {
		trs = append(trs, d.Aliased)
	}

	trs = append(trs, d.Params...)

	if d.Returns != nil {
		trs = append(trs, d.Returns)
	}

	if d.Type != nil {
		trs = append(trs, d.Type)
	}

	return trs
}

// TypeParamIndex returns the index of the type parameter with the given name.
func (d *Declaration) TypeParamIndex(name string) (int, bool) {
	for i, tp := range d.TypeParams {
		if tp.Name == name {
			return i, true
		}
	}

	return -1, false
}
