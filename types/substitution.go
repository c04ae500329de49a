package types

import "declres/depm"

// ParamKey identifies a type parameter: its owner and position.
type ParamKey struct {
	Owner depm.DeclID
	Index int
}

// Substitution maps type parameters to the type arguments bound to them.
type Substitution map[ParamKey]Type

// NewSubstitution binds the type parameters of owner, in order, to args.  The
// caller is responsible for checking that the arity matches.
func NewSubstitution(owner depm.DeclID, args []Type) Substitution {
	sub := make(Substitution, len(args))
	for i, arg := range args {
		sub[ParamKey{Owner: owner, Index: i}] = arg
	}

	return sub
}

// Lookup returns the type bound to the given type parameter.
func (sub Substitution) Lookup(owner depm.DeclID, index int) (Type, bool) {
	typ, ok := sub[ParamKey{Owner: owner, Index: index}]
	return typ, ok
}

// Substitute replaces every type parameter of typ bound in sub.  Unbound type
// parameters are left as is.  A nullable type parameter substituted by a
// non-nullable type yields the nullable version of that type.
func Substitute(typ Type, sub Substitution) Type {
	if len(sub) == 0 {
		return typ
	}

	switch v := typ.(type) {
	case *TypeParamType:
		if rtyp, ok := sub.Lookup(v.Owner, v.Index); ok {
			if v.Nullable {
				return MakeNullable(rtyp)
			}

			return rtyp
		}
	case *ClassType:
		if len(v.Args) > 0 {
			return &ClassType{
				Decl:     v.Decl,
				Name:     v.Name,
				Args:     substituteList(v.Args, sub),
				Nullable: v.Nullable,
			}
		}
	case *FuncType:
		return &FuncType{
			ParamTypes: substituteList(v.ParamTypes, sub),
			ReturnType: Substitute(v.ReturnType, sub),
			Nullable:   v.Nullable,
		}
	case *Projection:
		inner := Substitute(v.Type, sub)

		// A projection of a projection keeps the outer variance.
		if ip, ok := inner.(*Projection); ok {
			inner = ip.Type
		} else if _, ok := inner.(StarProjection); ok {
			return inner
		}

		return &Projection{Variance: v.Variance, Type: inner}
	}

	return typ
}

func substituteList(typs []Type, sub Substitution) []Type {
	ntyps := make([]Type, len(typs))
	for i, typ := range typs {
		ntyps[i] = Substitute(typ, sub)
	}

	return ntyps
}
