package resolve

import (
	"declres/ast"
	"declres/depm"
	"declres/types"
)

// lookupQualified resolves a qualified name.  The first segment is looked up
// as a classifier through the chain; failing that, the longest package prefix
// whose next segment is a top-level declaration is taken.  The remaining
// segments are looked up as nested members.
func (r *Resolver) lookupQualified(o *Outcome, path []string, scope *Scope, e env) {
	head := newOutcome(o.Path, o.Ref, NSType)
	r.lookup(head, path[0], scope, e)

	switch head.State {
	case Resolved:
		if !head.Symbol.IsTypeParam() {
			o.gather(head.Level, head.Candidates)
			r.walkMembers(o, head.Symbol.Decl, path[1:], e)
			return
		}
	case Ambiguous:
		o.gather(head.Level, head.Candidates)
		o.ambiguous()
		return
	}

	for k := len(path) - 1; k >= 1; k-- {
		pkg, ok := r.table.Package(ast.JoinPath(path[:k]))
		if !ok {
			continue
		}

		ns := NSType
		if k == len(path)-1 {
			ns = o.Namespace
		}

		ids := r.filter(pkg.Lookup(path[k]), ns)
		if len(ids) == 0 {
			continue
		}

		o.gather(ScopePackage, r.symbols(ids))
		if k == len(path)-1 {
			r.decide(o)
		} else {
			r.walkMembers(o, ids[0], path[k+1:], e)
		}

		return
	}

	o.notFound("unable to resolve `%s`", ast.JoinPath(path))
}

// walkMembers resolves the segments of a qualified name following the
// declaration start.  A type alias met as a qualifier is expanded to the
// classifier it denotes.
func (r *Resolver) walkMembers(o *Outcome, start depm.DeclID, segs []string, e env) {
	cur := start

	for i, seg := range segs {
		decl := r.table.Decl(cur)

		if decl.Kind == ast.DeclTypeAlias {
			typ, ee := r.expand(cur, r.typeParamTypes(decl), e)
			ct, ok := typ.(*types.ClassType)
			if ee != nil || !ok {
				o.notFound("type alias `%s` does not denote a classifier", decl.Name)
				return
			}

			cur = ct.Decl
			decl = r.table.Decl(cur)
		}

		if !decl.HasMembers() {
			o.notFound("%s `%s` has no members", decl.Kind, decl.Name)
			return
		}

		last := i == len(segs)-1

		ns := NSType
		if last {
			ns = o.Namespace
		}

		ids := r.filter(r.qualifiedMembers(decl, seg), ns)
		if len(ids) == 0 {
			o.notFound("%s `%s` has no member named `%s`", decl.Kind, decl.Name, seg)
			return
		}

		if last {
			o.Candidates = r.symbols(ids)
			r.decide(o)
			return
		}

		cur = ids[0]
	}
}

// qualifiedMembers returns the members named name which can be accessed by
// qualifying them with their enclosing declaration.  All the members of an
// object can be; only nested classifiers and enum entries of other
// classifiers can.
func (r *Resolver) qualifiedMembers(decl *depm.Declaration, name string) []depm.DeclID {
	ids := r.table.Members(decl.ID, name)
	if decl.Kind == ast.DeclObject {
		return ids
	}

	var visible []depm.DeclID
	for _, id := range ids {
		if kind := r.table.Decl(id).Kind; kind.IsClassifier() || kind == ast.DeclEnumEntry {
			visible = append(visible, id)
		}
	}

	return visible
}
