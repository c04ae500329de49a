package resolve

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"declres/depm"
	"declres/report"
	"declres/types"
)

// ExpansionCache memoizes type alias expansions keyed by the alias and the
// canonical form of its type arguments.  Entries are computed outside of the
// cache and inserted only if absent so that concurrent expansions of the same
// key all observe the first stored form.
type ExpansionCache struct {
	entries sync.Map

	hits, misses atomic.Int64
}

type expansionKey struct {
	alias depm.DeclID
	args  string
}

// NewExpansionCache creates a new empty expansion cache.
func NewExpansionCache() *ExpansionCache {
	return &ExpansionCache{}
}

// Get returns the cached expansion of an alias applied to args.
func (ec *ExpansionCache) Get(alias depm.DeclID, args []types.Type) (types.Type, bool) {
	typ, ok := ec.entries.Load(expansionKey{alias: alias, args: types.Key(args)})
	if !ok {
		return nil, false
	}

	return typ.(types.Type), true
}

// Len returns the number of cached expansions.
func (ec *ExpansionCache) Len() int {
	n := 0
	ec.entries.Range(func(_, _ interface{}) bool {
		n++
		return true
	})

	return n
}

// Stats returns the number of cache hits and misses so far.
func (ec *ExpansionCache) Stats() (int64, int64) {
	return ec.hits.Load(), ec.misses.Load()
}

// -----------------------------------------------------------------------------

// expansionError is an error which prevents a type alias from expanding.
type expansionError struct {
	kind report.Kind

	// cycle is the list of aliases forming a cycle: the first and the last
	// aliases are the same.
	cycle []depm.DeclID

	msg string
}

// involves returns whether the alias is part of the cycle of the error.
func (ee *expansionError) involves(id depm.DeclID) bool {
	for _, cid := range ee.cycle {
		if cid == id {
			return true
		}
	}

	return false
}

// Expand expands a type alias applied to args.  The right-hand side of the
// alias is resolved once in the scope of the alias with the alias's own type
// parameters: the expansion for args is that form with the parameters
// substituted.  Expansions are memoized; cyclic aliases and arity errors
// are never cached.
func (r *Resolver) Expand(alias depm.DeclID, args []types.Type) (types.Type, error) {
	typ, ee := r.expand(alias, args, env{})
	if ee != nil {
		return nil, ee
	}

	return typ, nil
}

func (ee *expansionError) Error() string {
	return ee.msg
}

func (r *Resolver) expand(alias depm.DeclID, args []types.Type, e env) (types.Type, *expansionError) {
	decl := r.table.Decl(alias)

	if len(args) != len(decl.TypeParams) {
		return nil, &expansionError{
			kind: report.KindTypeArgumentArity,
			msg:  arityMessage("type alias", decl, len(args)),
		}
	}

	for _, arg := range args {
		if types.IsError(arg) {
			body, ee := r.expand(alias, r.typeParamTypes(decl), e)
			if ee != nil {
				return nil, ee
			}

			return types.Substitute(body, types.NewSubstitution(alias, args)), nil
		}
	}

	key := expansionKey{alias: alias, args: types.Key(args)}
	if typ, ok := r.cache.entries.Load(key); ok {
		r.cache.hits.Add(1)
		return typ.(types.Type), nil
	}

	var typ types.Type
	if own := r.typeParamTypes(decl); key.args == types.Key(own) {
		body, ee := r.aliasBody(decl, e)
		if ee != nil {
			return nil, ee
		}

		typ = body
	} else {
		body, ee := r.expand(alias, own, e)
		if ee != nil {
			return nil, ee
		}

		typ = types.Substitute(body, types.NewSubstitution(alias, args))
	}

	r.cache.misses.Add(1)
	actual, _ := r.cache.entries.LoadOrStore(key, typ)
	return actual.(types.Type), nil
}

// aliasBody resolves the right-hand side of an alias with the alias's own
// type parameters.  Revisiting an alias whose expansion is in progress is a
// cycle.
func (r *Resolver) aliasBody(decl *depm.Declaration, e env) (types.Type, *expansionError) {
	if e.expanding.contains(decl.ID) {
		cycle := append(e.expanding.until(decl.ID), decl.ID)

		return nil, &expansionError{
			kind:  report.KindCyclicTypeAlias,
			cycle: cycle,
			msg:   fmt.Sprintf("type alias `%s` is cyclic: %s", decl.Name, r.cycleRepr(cycle)),
		}
	}

	e.expanding = e.expanding.push(decl.ID)
	body, ee := r.convert(decl.Unit.Path, decl.Aliased, r.files[decl.ID.Unit].Headers[decl.ID], NSType, e, nil)

	// Only a cycle through this alias prevents it from expanding: other
	// failures are already part of the body as error types.
	if ee != nil && ee.involves(decl.ID) {
		return nil, ee
	}

	return body, nil
}

// cycleRepr returns the representation of an alias cycle: eg. `A -> B -> A`.
func (r *Resolver) cycleRepr(cycle []depm.DeclID) string {
	names := make([]string, len(cycle))
	for i, id := range cycle {
		names[i] = r.table.Decl(id).Name
	}

	return strings.Join(names, " -> ")
}

// arityMessage builds the message of a type argument arity error.
func arityMessage(what string, decl *depm.Declaration, got int) string {
	return fmt.Sprintf("%s `%s` expects %s but got %d", what, decl.Name, countTypeArgs(len(decl.TypeParams)), got)
}

func countTypeArgs(n int) string {
	switch n {
	case 0:
		return "no type arguments"
	case 1:
		return "1 type argument"
	default:
		return fmt.Sprintf("%d type arguments", n)
	}
}
