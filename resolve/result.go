package resolve

import (
	"strings"

	"declres/depm"
	"declres/report"
	"declres/syntax"
	"declres/types"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Result is the linked symbol graph produced by a run.
type Result struct {
	// ID identifies the run which produced the result.
	ID uuid.UUID

	Table *depm.PackageTable

	// Files holds the resolution of each user unit in input order.
	Files []*FileResult

	// Builtins holds the resolution of the built-in units.
	Builtins []*FileResult

	// Cache is the type alias expansion cache of the run.
	Cache *ExpansionCache

	// Diagnostics is the sorted list of all the diagnostics of the run.
	Diagnostics []*report.Diagnostic

	resolver *Resolver
}

// FileResult is the resolution of one compilation unit.
type FileResult struct {
	Unit *depm.CompilationUnit

	// Scope is the file-level chain: the chain seen by file-level queries.
	Scope *Scope

	// Headers maps each declaration to the chain seen by its header: type
	// parameter bounds, supertypes and alias right-hand side.
	Headers map[depm.DeclID]*Scope

	// Bodies maps each declaration to the chain seen by its signature and
	// body.
	Bodies map[depm.DeclID]*Scope

	Imports *ImportSet

	// Outcomes are the outcomes of every reference of the unit in
	// declaration order.
	Outcomes []*Outcome
}

func newFileResult(unit *depm.CompilationUnit) *FileResult {
	return &FileResult{
		Unit:    unit,
		Headers: make(map[depm.DeclID]*Scope),
		Bodies:  make(map[depm.DeclID]*Scope),
	}
}

// OutcomesOf returns the outcomes of the references made in a declaration.
func (fr *FileResult) OutcomesOf(site depm.DeclID) []*Outcome {
	var outcomes []*Outcome
	for _, o := range fr.Outcomes {
		if o.Site == site {
			outcomes = append(outcomes, o)
		}
	}

	return outcomes
}

// -----------------------------------------------------------------------------

// AnyErrors returns whether the run produced any error diagnostic.
func (res *Result) AnyErrors() bool {
	for _, d := range res.Diagnostics {
		if !d.IsWarning {
			return true
		}
	}

	return false
}

// File returns the resolution of the user unit with the given path.
func (res *Result) File(path string) (*FileResult, bool) {
	for _, fr := range res.Files {
		if fr.Unit.Path == path {
			return fr, true
		}
	}

	return nil, false
}

// FindDecl returns the declaration of a unit named by a dotted path of
// simple names: eg. `Outer.Inner.f`.  The first overload is returned for a
// function.
func (res *Result) FindDecl(path, site string) (*depm.Declaration, bool) {
	fr, ok := res.File(path)
	if !ok {
		return nil, false
	}

	parent := depm.NoDecl
	for _, name := range strings.Split(site, ".") {
		ids := fr.Unit.Lookup(parent, name)
		if len(ids) == 0 {
			return nil, false
		}

		parent = ids[0]
	}

	return res.Table.Decl(parent), true
}

// Lookup resolves a reference written in the unit with the given path from
// inside the declaration named by site, or at the file level if site is
// empty.  The reference may denote a type or a value.
func (res *Result) Lookup(path, site, ref string) (*Outcome, error) {
	return res.LookupIn(path, site, ref, NSAny)
}

// LookupIn is Lookup restricted to a namespace.
func (res *Result) LookupIn(path, site, ref string, ns Namespace) (*Outcome, error) {
	fr, ok := res.File(path)
	if !ok {
		return nil, errors.Errorf("no unit with path `%s`", path)
	}

	scope := fr.Scope
	siteID := depm.NoDecl
	if site != "" {
		decl, ok := res.FindDecl(path, site)
		if !ok {
			return nil, errors.Errorf("no declaration `%s` in `%s`", site, path)
		}

		scope = fr.Bodies[decl.ID]
		siteID = decl.ID
	}

	tr, err := syntax.ParseTypeRef(ref, 0, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid reference `%s`", ref)
	}

	if tr.IsFunc() {
		return nil, errors.Errorf("reference `%s` is a function type", ref)
	}

	var outcome *Outcome
	res.resolver.convert(path, tr, scope, ns, env{}, func(o *Outcome) {
		if outcome == nil {
			o.Site = siteID
			outcome = o
		}
	})

	return outcome, nil
}

// Supertypes returns the resolved supertypes of a classifier.
func (res *Result) Supertypes(id depm.DeclID) []*types.ClassType {
	return res.resolver.SupertypesOf(id)
}

// Expand expands a type alias applied to args through the run's cache.
func (res *Result) Expand(alias depm.DeclID, args []types.Type) (types.Type, error) {
	return res.resolver.Expand(alias, args)
}
