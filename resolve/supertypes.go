package resolve

import (
	"declres/depm"
	"declres/types"
)

// Supertypes returns the resolved supertypes of a classifier.  Supertypes
// naming a type alias are expanded; supertypes which fail to resolve or do
// not denote a classifier are dropped.  The result is memoized.
func (r *Resolver) Supertypes(id depm.DeclID, e env) []*types.ClassType {
	if sts, ok := r.supertypes.Load(id); ok {
		return sts.([]*types.ClassType)
	}

	// The supertypes of a classifier are needed to resolve its own
	// supertypes: treat it as having none.
	if e.inheriting.contains(id) {
		return nil
	}

	decl := r.table.Decl(id)
	if !decl.HasMembers() || len(decl.Supertypes) == 0 {
		return nil
	}

	e.inheriting = e.inheriting.push(id)
	header := r.files[id.Unit].Headers[id]

	var sts []*types.ClassType
	for _, tr := range decl.Supertypes {
		typ, _ := r.convert(decl.Unit.Path, tr, header, NSType, e, nil)

		if ct, ok := typ.(*types.ClassType); ok && ct.Decl != id {
			sts = append(sts, ct)
		}
	}

	actual, _ := r.supertypes.LoadOrStore(id, sts)
	return actual.([]*types.ClassType)
}

// SupertypesOf returns the resolved supertypes of a classifier.
func (r *Resolver) SupertypesOf(id depm.DeclID) []*types.ClassType {
	return r.Supertypes(id, env{})
}
