package resolve

import (
	"declres/depm"
)

// ScopeKind is the kind of a level of a scope chain.
type ScopeKind int

// Enumeration of scope kinds from the innermost to the outermost level.
const (
	ScopeTypeParams ScopeKind = iota
	ScopeClass
	ScopeExplicitImports
	ScopePackage
	ScopeStarImports
	ScopeRoot
)

var scopeKindNames = [...]string{
	ScopeTypeParams:      "type parameters",
	ScopeClass:           "class",
	ScopeExplicitImports: "explicit imports",
	ScopePackage:         "package",
	ScopeStarImports:     "star imports",
	ScopeRoot:            "default imports",
}

func (sk ScopeKind) String() string {
	return scopeKindNames[sk]
}

// Scope is one level of a scope chain.  Scope chains are built once per
// compilation unit and are read-only afterward: chains of nested
// declarations share the levels of their enclosing declarations.
type Scope struct {
	Kind ScopeKind

	// Owner is the declaration owning a TypeParams or Class level.
	Owner depm.DeclID

	// Parent is the next outer level.  Nil for the Root level.
	Parent *Scope

	// Package is the package of a Package level.
	Package *depm.Package

	// Imports is the import set of an ExplicitImports or StarImports level.
	Imports *ImportSet

	// Stars are the namespaces of a Root level.
	Stars []*StarTarget
}

// Chain returns the levels of the chain starting at s, innermost first.
func (s *Scope) Chain() []*Scope {
	var chain []*Scope
	for ; s != nil; s = s.Parent {
		chain = append(chain, s)
	}

	return chain
}

// Kinds returns the kinds of the levels of the chain starting at s.
func (s *Scope) Kinds() []ScopeKind {
	var kinds []ScopeKind
	for ; s != nil; s = s.Parent {
		kinds = append(kinds, s.Kind)
	}

	return kinds
}

// -----------------------------------------------------------------------------

// ImportSet is the resolved import directives of a compilation unit.
type ImportSet struct {
	// Bindings maps the names bound by explicit and aliased imports to their
	// targets.  A function import binds all the overloads of the function.
	Bindings map[string]*Binding

	// Stars is the ordered list of star import targets.
	Stars []*StarTarget
}

// Binding is a name bound by an explicit or aliased import.
type Binding struct {
	Directive *depm.ImportDirective
	Targets   []depm.DeclID
}

// StarTarget is a namespace opened by a star import: either a package or a
// classifier whose nested declarations are imported.
type StarTarget struct {
	Directive *depm.ImportDirective

	// Package is set if the target is a package.
	Package *depm.Package

	// Classifier is the target classifier if Package is nil.
	Classifier depm.DeclID
}
