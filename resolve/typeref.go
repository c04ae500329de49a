package resolve

import (
	"fmt"

	"declres/ast"
	"declres/depm"
	"declres/report"
	"declres/types"
)

// convert resolves every name of a type reference and returns the type it
// denotes.  Each named type met produces an outcome passed to sink, the
// outcome of the reference itself first.  sink may be nil.  The returned
// expansion error is the first alias expansion failure met.
func (r *Resolver) convert(path string, tr *ast.TypeRef, scope *Scope, ns Namespace, e env, sink func(*Outcome)) (types.Type, *expansionError) {
	if tr.IsFunc() {
		return r.convertFunc(path, tr, scope, e, sink)
	}

	o := newOutcome(path, tr, ns)
	if len(tr.Path) == 1 {
		r.lookup(o, tr.Path[0], scope, e)
	} else {
		r.lookupQualified(o, tr.Path, scope, e)
	}

	if sink != nil {
		sink(o)
	}

	var first *expansionError
	var args []types.Type
	for _, targ := range tr.Args {
		if targ.Star {
			args = append(args, types.StarProjection{})
			continue
		}

		typ, ee := r.convert(path, targ.Type, scope, NSType, e, sink)
		if first == nil {
			first = ee
		}

		if targ.Variance != ast.Invariant {
			typ = &types.Projection{Variance: targ.Variance, Type: typ}
		}

		args = append(args, typ)
	}

	typ, ee := r.apply(o, args, e)
	if first == nil {
		first = ee
	}

	if tr.Nullable && typ != nil {
		typ = types.MakeNullable(typ)
	}

	return typ, first
}

// convertFunc converts a function type.
func (r *Resolver) convertFunc(path string, tr *ast.TypeRef, scope *Scope, e env, sink func(*Outcome)) (types.Type, *expansionError) {
	var first *expansionError

	ft := &types.FuncType{Nullable: tr.Nullable}
	for _, param := range tr.Params {
		typ, ee := r.convert(path, param, scope, NSType, e, sink)
		if first == nil {
			first = ee
		}

		ft.ParamTypes = append(ft.ParamTypes, typ)
	}

	typ, ee := r.convert(path, tr.Return, scope, NSType, e, sink)
	if first == nil {
		first = ee
	}

	ft.ReturnType = typ
	return ft, first
}

// apply applies the type arguments of a reference to its resolved symbol and
// returns the type it denotes.  Value references denote no type: nil is
// returned for them.
func (r *Resolver) apply(o *Outcome, args []types.Type, e env) (types.Type, *expansionError) {
	if o.State != Resolved {
		return &types.ErrorType{Text: o.Ref.Repr()}, nil
	}

	sym := o.Symbol
	hasArgs := o.Ref.Args != nil

	if sym.IsTypeParam() {
		if hasArgs {
			o.fail(report.KindTypeArgumentArity, "type parameter `%s` does not take type arguments", sym.Name)
			return &types.ErrorType{Text: o.Ref.Repr()}, nil
		}

		owner := r.table.Decl(sym.Decl)
		return &types.TypeParamType{Owner: owner.ID, Index: sym.TypeParam, Name: sym.Name}, nil
	}

	decl := r.table.Decl(sym.Decl)

	switch decl.Kind {
	case ast.DeclTypeAlias:
		if !hasArgs {
			if len(decl.TypeParams) > 0 && o.Namespace == NSType {
				o.fail(report.KindTypeArgumentArity, "%s", arityMessage("type alias", decl, 0))
				return &types.ErrorType{Text: o.Ref.Repr()}, nil
			}

			args = r.typeParamTypes(decl)
		}

		typ, ee := r.expand(sym.Decl, args, e)
		if ee != nil {
			o.fail(ee.kind, "%s", ee.msg)
			return &types.ErrorType{Text: o.Ref.Repr()}, ee
		}

		if hasArgs {
			sym.Subst = types.NewSubstitution(decl.ID, args)
		}

		sym.Expanded = typ
		return typ, nil
	case ast.DeclClass, ast.DeclInterface, ast.DeclObject, ast.DeclEnum:
		if !r.applyArgs(o, decl, args, hasArgs, "classifier") {
			return &types.ErrorType{Text: o.Ref.Repr()}, nil
		}

		return r.classType(decl.ID, args), nil
	case ast.DeclFunction:
		// Arity can only be checked for a single function.
		if len(sym.Overloads) > 1 {
			return nil, nil
		}

		r.applyArgs(o, decl, args, hasArgs, "function")
		return nil, nil
	case ast.DeclProperty, ast.DeclEnumEntry:
		r.applyArgs(o, decl, args, hasArgs, decl.Kind.String())
		return nil, nil
	}

	panic(fmt.Sprintf("unexpected declaration kind %s", decl.Kind))
}

// applyArgs checks the arity of the type arguments applied to a declaration
// and records the substitution.  A generic classifier referenced without
// type arguments is a raw reference.
func (r *Resolver) applyArgs(o *Outcome, decl *depm.Declaration, args []types.Type, hasArgs bool, what string) bool {
	if !hasArgs {
		return true
	}

	if len(args) != len(decl.TypeParams) {
		o.fail(report.KindTypeArgumentArity, "%s", arityMessage(what, decl, len(args)))
		return false
	}

	o.Symbol.Subst = types.NewSubstitution(decl.ID, args)
	return true
}
