package ast

import "declres/report"

// DeclKind is the kind of a skeleton declaration.  This is a closed set: all
// consumers switch over it exhaustively.
type DeclKind int

// Enumeration of declaration kinds.
const (
	DeclClass DeclKind = iota
	DeclInterface
	DeclObject
	DeclEnum
	DeclEnumEntry
	DeclTypeAlias
	DeclFunction
	DeclProperty
)

var declKindNames = [...]string{
	DeclClass:     "class",
	DeclInterface: "interface",
	DeclObject:    "object",
	DeclEnum:      "enum",
	DeclEnumEntry: "entry",
	DeclTypeAlias: "typealias",
	DeclFunction:  "function",
	DeclProperty:  "property",
}

func (dk DeclKind) String() string {
	if 0 <= int(dk) && int(dk) < len(declKindNames) {
		return declKindNames[dk]
	}

	return "unknown"
}

// DeclKindFromString converts the skeleton spelling of a declaration kind to
// its enumerated value.
func DeclKindFromString(s string) (DeclKind, bool) {
	for i, name := range declKindNames {
		if name == s {
			return DeclKind(i), true
		}
	}

	switch s {
	case "fun":
		return DeclFunction, true
	case "val", "var":
		return DeclProperty, true
	case "enum-entry":
		return DeclEnumEntry, true
	}

	return 0, false
}

// IsClassifier returns whether declarations of this kind introduce a type.
func (dk DeclKind) IsClassifier() bool {
	switch dk {
	case DeclClass, DeclInterface, DeclObject, DeclEnum, DeclTypeAlias:
		return true
	case DeclEnumEntry, DeclFunction, DeclProperty:
		return false
	}

	return false
}

// Variance is the declaration-site or use-site variance of a type parameter
// or type argument.
type Variance int

// Enumeration of variances.
const (
	Invariant Variance = iota
	Covariant          // out
	Contravariant      // in
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "out"
	case Contravariant:
		return "in"
	default:
		return ""
	}
}

// -----------------------------------------------------------------------------

// Decl is a skeleton declaration.
type Decl struct {
	Kind DeclKind
	Name string

	// NameSpan is the position of the declaration's name.
	NameSpan *report.TextSpan

	// Inner marks a nested class which can see the type parameters of its
	// enclosing classes.
	Inner bool

	TypeParams []*TypeParam

	// Supertypes is the list of supertype references of a classifier.
	Supertypes []*TypeRef

	// Aliased is the right-hand side of a type alias.
	Aliased *TypeRef

	// Params and Returns are the signature of a function.
	Params  []*TypeRef
	Returns *TypeRef

	// Type is the declared type of a property.
	Type *TypeRef

	// Refs is the list of value references found in a function or property
	// body.  The parser only records their names: they are resolved here.
	Refs []*TypeRef

	// Decls is the list of nested declarations.
	Decls []*Decl
}

// TypeParam is a declared type parameter.
type TypeParam struct {
	Name     string
	Variance Variance

	// Bound is the upper bound.  May be nil.
	Bound *TypeRef

	Span *report.TextSpan
}
