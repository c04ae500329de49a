package ast

import (
	"strings"

	"declres/report"
)

// TypeRef is an unresolved type expression or name reference as written.
type TypeRef struct {
	// Path is the qualified name of a named type: eg. `pkg.Outer.Inner`.  It
	// is empty for function types and star projections.
	Path []string

	// Args is the list of type arguments of a named type.  Nil if no type
	// argument list was written.
	Args []*TypeArg

	// Params and Return are set for function types only.
	Params []*TypeRef
	Return *TypeRef

	Nullable bool

	Span *report.TextSpan
}

// TypeArg is a use-site type argument.
type TypeArg struct {
	// Star marks a star projection: `*`.
	Star bool

	Variance Variance

	// Type is nil if Star is set.
	Type *TypeRef
}

// IsFunc returns whether the type reference is a function type.
func (tr *TypeRef) IsFunc() bool {
	return tr.Return != nil
}

// Repr returns the representative string for the type reference.
func (tr *TypeRef) Repr() string {
	sb := strings.Builder{}
	tr.write(&sb)
	return sb.String()
}

func (tr *TypeRef) write(sb *strings.Builder) {
	if tr.IsFunc() {
		if tr.Nullable {
			sb.WriteRune('(')
		}

		sb.WriteRune('(')
		for i, param := range tr.Params {
			if i > 0 {
				sb.WriteString(", ")
			}

			param.write(sb)
		}
		sb.WriteString(") -> ")
		tr.Return.write(sb)

		if tr.Nullable {
			sb.WriteString(")?")
		}

		return
	}

	sb.WriteString(JoinPath(tr.Path))

	if tr.Args != nil {
		sb.WriteRune('<')
		for i, arg := range tr.Args {
			if i > 0 {
				sb.WriteString(", ")
			}

			if arg.Star {
				sb.WriteRune('*')
				continue
			}

			if arg.Variance != Invariant {
				sb.WriteString(arg.Variance.String())
				sb.WriteRune(' ')
			}

			arg.Type.write(sb)
		}
		sb.WriteRune('>')
	}

	if tr.Nullable {
		sb.WriteRune('?')
	}
}
