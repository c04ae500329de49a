package types

import (
	"strings"

	"declres/ast"
	"declres/depm"
)

// Type represents a resolved type expression.
type Type interface {
	// Returns whether this type is equal to the other type.  This should only
	// be called through Equals.
	equals(other Type) bool

	// Returns the representative string for this type.
	Repr() string
}

// -----------------------------------------------------------------------------

// ClassType is a reference to a classifier declaration (class, interface,
// object or enum) applied to its type arguments.
type ClassType struct {
	// Decl is the referenced classifier.
	Decl depm.DeclID

	// Name is the qualified name of the classifier.
	Name string

	// Args is the list of type arguments.  Empty for non-generic classifiers
	// and raw references.
	Args []Type

	Nullable bool
}

func (ct *ClassType) equals(other Type) bool {
	if oct, ok := other.(*ClassType); ok {
		return ct.Decl == oct.Decl && ct.Nullable == oct.Nullable && equalLists(ct.Args, oct.Args)
	}

	return false
}

func (ct *ClassType) Repr() string {
	sb := strings.Builder{}
	sb.WriteString(ct.Name)

	if len(ct.Args) > 0 {
		sb.WriteRune('<')
		writeList(&sb, ct.Args)
		sb.WriteRune('>')
	}

	if ct.Nullable {
		sb.WriteRune('?')
	}

	return sb.String()
}

// -----------------------------------------------------------------------------

// TypeParamType is a reference to a type parameter.
type TypeParamType struct {
	// Owner is the declaration introducing the type parameter.
	Owner depm.DeclID

	// Index is the position of the type parameter in its owner's list.
	Index int

	Name string

	Nullable bool
}

func (tp *TypeParamType) equals(other Type) bool {
	if otp, ok := other.(*TypeParamType); ok {
		return tp.Owner == otp.Owner && tp.Index == otp.Index && tp.Nullable == otp.Nullable
	}

	return false
}

func (tp *TypeParamType) Repr() string {
	if tp.Nullable {
		return tp.Name + "?"
	}

	return tp.Name
}

// -----------------------------------------------------------------------------

// FuncType is a function type: `(A, B) -> R`.
type FuncType struct {
	ParamTypes []Type
	ReturnType Type

	Nullable bool
}

func (ft *FuncType) equals(other Type) bool {
	if oft, ok := other.(*FuncType); ok {
		return ft.Nullable == oft.Nullable &&
			equalLists(ft.ParamTypes, oft.ParamTypes) &&
			Equals(ft.ReturnType, oft.ReturnType)
	}

	return false
}

func (ft *FuncType) Repr() string {
	sb := strings.Builder{}

	if ft.Nullable {
		sb.WriteRune('(')
	}

	sb.WriteRune('(')
	writeList(&sb, ft.ParamTypes)
	sb.WriteString(") -> ")
	sb.WriteString(ft.ReturnType.Repr())

	if ft.Nullable {
		sb.WriteString(")?")
	}

	return sb.String()
}

// -----------------------------------------------------------------------------

// Projection is a use-site variance projection of a type argument:
// `out T` or `in T`.
type Projection struct {
	Variance ast.Variance
	Type     Type
}

func (pt *Projection) equals(other Type) bool {
	if opt, ok := other.(*Projection); ok {
		return pt.Variance == opt.Variance && Equals(pt.Type, opt.Type)
	}

	return false
}

func (pt *Projection) Repr() string {
	return pt.Variance.String() + " " + pt.Type.Repr()
}

// StarProjection is the star projection `*`.
type StarProjection struct{}

func (StarProjection) equals(other Type) bool {
	_, ok := other.(StarProjection)
	return ok
}

func (StarProjection) Repr() string {
	return "*"
}

// -----------------------------------------------------------------------------

// ErrorType stands in for a type expression that failed to resolve.  It
// equals no type, itself included.
type ErrorType struct {
	// Text is the type expression as it was written.
	Text string
}

func (et *ErrorType) equals(other Type) bool {
	return false
}

func (et *ErrorType) Repr() string {
	return "<error: " + et.Text + ">"
}

// -----------------------------------------------------------------------------

func equalLists(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i, typ := range a {
		if !Equals(typ, b[i]) {
			return false
		}
	}

	return true
}

func writeList(sb *strings.Builder, typs []Type) {
	for i, typ := range typs {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(typ.Repr())
	}
}
