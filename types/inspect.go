package types

import (
	"strconv"
	"strings"
)

// Equals returns whether two types are equal.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.equals(b)
}

// IsError returns whether typ or any type nested inside it failed to resolve.
func IsError(typ Type) bool {
	switch v := typ.(type) {
	case *ErrorType:
		return true
	case *ClassType:
		for _, arg := range v.Args {
			if IsError(arg) {
				return true
			}
		}
	case *FuncType:
		for _, param := range v.ParamTypes {
			if IsError(param) {
				return true
			}
		}

		return IsError(v.ReturnType)
	case *Projection:
		return IsError(v.Type)
	}

	return false
}

// MakeNullable returns the nullable version of typ.  Projections pass
// nullability on to their projected type.
func MakeNullable(typ Type) Type {
	switch v := typ.(type) {
	case *ClassType:
		if !v.Nullable {
			nct := *v
			nct.Nullable = true
			return &nct
		}
	case *TypeParamType:
		if !v.Nullable {
			ntp := *v
			ntp.Nullable = true
			return &ntp
		}
	case *FuncType:
		if !v.Nullable {
			nft := *v
			nft.Nullable = true
			return &nft
		}
	case *Projection:
		return &Projection{Variance: v.Variance, Type: MakeNullable(v.Type)}
	}

	return typ
}

// Key returns a canonical string for a list of types: two lists have the
// same key if and only if they are pairwise equal.  Lists containing error
// types must not be keyed.
func Key(typs []Type) string {
	sb := strings.Builder{}
	for i, typ := range typs {
		if i > 0 {
			sb.WriteRune(',')
		}

		writeKey(&sb, typ)
	}

	return sb.String()
}

func writeKey(sb *strings.Builder, typ Type) {
	switch v := typ.(type) {
	case *ClassType:
		sb.WriteString(v.Decl.String())

		if len(v.Args) > 0 {
			sb.WriteRune('<')
			sb.WriteString(Key(v.Args))
			sb.WriteRune('>')
		}

		if v.Nullable {
			sb.WriteRune('?')
		}
	case *TypeParamType:
		sb.WriteString(v.Owner.String())
		sb.WriteRune('$')
		sb.WriteString(strconv.Itoa(v.Index))

		if v.Nullable {
			sb.WriteRune('?')
		}
	case *FuncType:
		sb.WriteRune('(')
		sb.WriteString(Key(v.ParamTypes))
		sb.WriteString(")->")
		writeKey(sb, v.ReturnType)

		if v.Nullable {
			sb.WriteRune('?')
		}
	case *Projection:
		sb.WriteString(v.Variance.String())
		sb.WriteRune(' ')
		writeKey(sb, v.Type)
	case StarProjection:
		sb.WriteRune('*')
	case *ErrorType:
		sb.WriteRune('!')
	}
}
