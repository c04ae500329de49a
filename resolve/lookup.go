package resolve

import (
	"sync"

	"declres/ast"
	"declres/depm"
	"declres/types"
	"declres/util"
)

// Resolver binds references to declarations.  It is shared by all the
// workers of a run: the package table and the scope chains it reads are
// frozen and its caches are safe for concurrent use.
type Resolver struct {
	table *depm.PackageTable

	// files holds the scopes of each unit by unit index.
	files []*FileResult

	cache *ExpansionCache

	// supertypes memoizes the resolved supertypes of classifiers.
	supertypes sync.Map
}

// env is the state of one resolution call tree.  It is passed by value: the
// chains are immutable.
type env struct {
	// expanding is the chain of type aliases whose expansion is in progress.
	expanding *chain

	// inheriting is the chain of classifiers whose supertypes are being
	// resolved.
	inheriting *chain
}

// chain is an immutable linked list of declarations.
type chain struct {
	id   depm.DeclID
	next *chain
}

func (c *chain) push(id depm.DeclID) *chain {
	return &chain{id: id, next: c}
}

func (c *chain) contains(id depm.DeclID) bool {
	for ; c != nil; c = c.next {
		if c.id == id {
			return true
		}
	}

	return false
}

// until returns the declarations of the chain from the outermost up to and
// including id, outermost first.
func (c *chain) until(id depm.DeclID) []depm.DeclID {
	var ids []depm.DeclID
	for ; c != nil; c = c.next {
		ids = append(ids, c.id)
		if c.id == id {
			break
		}
	}

	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}

	return ids
}

// -----------------------------------------------------------------------------

// lookup resolves a simple name by walking the chain outward.  All the
// candidates of a level are gathered before a decision is made: the first
// level yielding any candidate decides the outcome.
func (r *Resolver) lookup(o *Outcome, name string, scope *Scope, e env) {
	for s := scope; s != nil; s = s.Parent {
		cands := r.gather(s, name, o.Namespace, e)
		if len(cands) == 0 {
			continue
		}

		o.gather(s.Kind, cands)
		r.decide(o)
		return
	}

	o.notFound("unable to resolve `%s`", name)
}

// decide finalizes an outcome from its gathered candidates.  Candidates that
// are all functions form one overload set.
func (r *Resolver) decide(o *Outcome) {
	if len(o.Candidates) == 1 {
		o.resolve(o.Candidates[0])
		return
	}

	overloads := make([]depm.DeclID, 0, len(o.Candidates))
	for _, cand := range o.Candidates {
		if cand.IsTypeParam() || r.table.Decl(cand.Decl).Kind != ast.DeclFunction {
			o.ambiguous()
			return
		}

		overloads = append(overloads, cand.Decl)
	}

	sym := *o.Candidates[0]
	sym.Overloads = overloads
	o.resolve(&sym)
}

// gather returns the distinct candidates for name visible in the namespace
// at one scope level.
func (r *Resolver) gather(s *Scope, name string, ns Namespace, e env) []*Symbol {
	var ids []depm.DeclID

	switch s.Kind {
	case ScopeTypeParams:
		if ns == NSValue {
			return nil
		}

		owner := r.table.Decl(s.Owner)
		if ndx, ok := owner.TypeParamIndex(name); ok {
			return []*Symbol{{Decl: s.Owner, TypeParam: ndx, Name: name}}
		}

		return nil
	case ScopeClass:
		ids = r.filter(r.table.Members(s.Owner, name), ns)
		if len(ids) == 0 {
			ids = r.inherited(s.Owner, name, ns, e, nil)
		}
	case ScopeExplicitImports:
		if b, ok := s.Imports.Bindings[name]; ok {
			ids = r.filter(b.Targets, ns)
		}
	case ScopePackage:
		ids = r.filter(s.Package.Lookup(name), ns)
	case ScopeStarImports:
		ids = r.gatherStars(s.Imports.Stars, name, ns)
	case ScopeRoot:
		ids = r.gatherStars(s.Stars, name, ns)
	}

	return r.symbols(ids)
}

// gatherStars returns the distinct declarations named name in a list of
// star import targets.  A classifier opens the same members that can be
// reached by qualifying them with it.
func (r *Resolver) gatherStars(stars []*StarTarget, name string, ns Namespace) []depm.DeclID {
	var ids []depm.DeclID

	for _, st := range stars {
		var found []depm.DeclID
		if st.Package != nil {
			found = st.Package.Lookup(name)
		} else {
			found = r.qualifiedMembers(r.table.Decl(st.Classifier), name)
		}

		for _, id := range r.filter(found, ns) {
			ids = util.AppendUnique(ids, id)
		}
	}

	return ids
}

// inherited returns the distinct classifiers and members named name that a
// classifier inherits from its supertypes.  Members of a subclass shadow
// the members of its supertypes.
func (r *Resolver) inherited(id depm.DeclID, name string, ns Namespace, e env, visited []depm.DeclID) []depm.DeclID {
	var ids []depm.DeclID

	for _, st := range r.Supertypes(id, e) {
		if util.Contains(visited, st.Decl) {
			continue
		}

		visited = append(visited, st.Decl)

		found := r.filter(r.table.Members(st.Decl, name), ns)
		if len(found) == 0 {
			found = r.inherited(st.Decl, name, ns, e, visited)
		}

		for _, fid := range found {
			ids = util.AppendUnique(ids, fid)
		}
	}

	return ids
}

// filter returns the declarations visible in a namespace.
func (r *Resolver) filter(ids []depm.DeclID, ns Namespace) []depm.DeclID {
	if ns == NSAny {
		return ids
	}

	var visible []depm.DeclID
	for _, id := range ids {
		if ns.admits(r.table.Decl(id).Kind) {
			visible = append(visible, id)
		}
	}

	return visible
}

// symbols converts candidate declarations to symbols.
func (r *Resolver) symbols(ids []depm.DeclID) []*Symbol {
	if len(ids) == 0 {
		return nil
	}

	return util.Map(ids, func(id depm.DeclID) *Symbol {
		return &Symbol{Decl: id, TypeParam: NoTypeParam, Name: r.table.QualifiedName(id)}
	})
}

// -----------------------------------------------------------------------------

// classType returns the type denoted by a classifier applied to args.
func (r *Resolver) classType(id depm.DeclID, args []types.Type) *types.ClassType {
	return &types.ClassType{Decl: id, Name: r.table.QualifiedName(id), Args: args}
}

// typeParamTypes returns the type parameters of a declaration as types.
func (r *Resolver) typeParamTypes(decl *depm.Declaration) []types.Type {
	tps := make([]types.Type, len(decl.TypeParams))
	for i, tp := range decl.TypeParams {
		tps[i] = &types.TypeParamType{Owner: decl.ID, Index: i, Name: tp.Name}
	}

	return tps
}
