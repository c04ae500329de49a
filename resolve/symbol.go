package resolve

import (
	"fmt"
	"strings"

	"declres/ast"
	"declres/depm"
	"declres/report"
	"declres/types"
)

// Namespace selects which declarations a reference can denote.
type Namespace int

// Enumeration of namespaces.
const (
	// NSAny admits every declaration: used for the value references met in
	// declaration bodies where a name may denote a type or a value.
	NSAny Namespace = iota

	// NSType admits classifiers, type aliases and type parameters.
	NSType

	// NSValue admits objects, enum entries, functions and properties.
	NSValue
)

func (ns Namespace) String() string {
	switch ns {
	case NSType:
		return "type"
	case NSValue:
		return "value"
	default:
		return "any"
	}
}

// admits returns whether a declaration of kind dk is visible in the namespace.
func (ns Namespace) admits(dk ast.DeclKind) bool {
	if ns == NSAny {
		return true
	}

	switch dk {
	case ast.DeclClass, ast.DeclInterface, ast.DeclEnum, ast.DeclTypeAlias:
		return ns == NSType
	case ast.DeclObject:
		return true
	case ast.DeclEnumEntry, ast.DeclFunction, ast.DeclProperty:
		return ns == NSValue
	}

	return false
}

// -----------------------------------------------------------------------------

// NoTypeParam is the TypeParam index of a symbol which is not a type
// parameter.
const NoTypeParam = -1

// Symbol is the declaration a reference resolved to along with the type
// arguments applied to it.
type Symbol struct {
	// Decl is the referenced declaration.  For a type parameter, it is the
	// declaration introducing the type parameter.
	Decl depm.DeclID

	// TypeParam is the index of the referenced type parameter of Decl or
	// NoTypeParam.
	TypeParam int

	// Name is the qualified name of the symbol.
	Name string

	// Subst maps the type parameters of Decl to the type arguments of the
	// reference.  Empty if no type arguments were given.
	Subst types.Substitution

	// Expanded is the expansion of a referenced type alias.
	Expanded types.Type

	// Overloads is the set of functions denoted by a reference to an
	// overloaded function, Decl being the first of them.
	Overloads []depm.DeclID
}

// IsTypeParam returns whether the symbol denotes a type parameter.
func (sym *Symbol) IsTypeParam() bool {
	return sym.TypeParam != NoTypeParam
}

// same returns whether two symbols denote the same declaration.
func (sym *Symbol) same(other *Symbol) bool {
	return sym.Decl == other.Decl && sym.TypeParam == other.TypeParam
}

func (sym *Symbol) String() string {
	if len(sym.Overloads) > 1 {
		return fmt.Sprintf("%s (%d overloads)", sym.Name, len(sym.Overloads))
	}

	return sym.Name
}

// -----------------------------------------------------------------------------

// OutcomeState is the state of the resolution of a single reference.
type OutcomeState int

// Enumeration of outcome states.  An outcome starts Unresolved, moves to
// CandidatesGathered once a scope level yields candidates and ends in exactly
// one of the three final states.  Final states never change.
const (
	Unresolved OutcomeState = iota
	CandidatesGathered
	Resolved
	NotFound
	Ambiguous
)

var stateNames = [...]string{
	Unresolved:         "unresolved",
	CandidatesGathered: "candidates gathered",
	Resolved:           "resolved",
	NotFound:           "not found",
	Ambiguous:          "ambiguous",
}

func (os OutcomeState) String() string {
	return stateNames[os]
}

// Outcome is the result of resolving one reference.
type Outcome struct {
	// Ref is the reference as it was written.
	Ref *ast.TypeRef

	// Path is the path of the unit the reference was made in.
	Path string

	// Site is the declaration the reference was made in.  NoDecl for
	// references made at the file level.
	Site depm.DeclID

	Namespace Namespace
	State     OutcomeState

	// Level is the kind of scope level the candidates were gathered from.
	Level ScopeKind

	// Symbol is set if the outcome is Resolved.
	Symbol *Symbol

	// Candidates are the distinct candidates of the deciding level.
	Candidates []*Symbol

	// Err is the error attached to the reference if any.  A Resolved outcome
	// may still carry an error from applying its type arguments.
	Err *report.Diagnostic
}

func newOutcome(path string, ref *ast.TypeRef, ns Namespace) *Outcome {
	return &Outcome{Ref: ref, Path: path, Site: depm.NoDecl, Namespace: ns, State: Unresolved}
}

// gather records the candidates of a scope level.
func (o *Outcome) gather(level ScopeKind, cands []*Symbol) {
	o.mustBe(Unresolved)
	o.State = CandidatesGathered
	o.Level = level
	o.Candidates = cands
}

// resolve finalizes a gathered outcome as resolved to sym.
func (o *Outcome) resolve(sym *Symbol) {
	o.mustBe(CandidatesGathered)
	o.State = Resolved
	o.Symbol = sym
}

// ambiguous finalizes a gathered outcome as ambiguous.
func (o *Outcome) ambiguous() {
	o.mustBe(CandidatesGathered)
	o.State = Ambiguous

	names := make([]string, len(o.Candidates))
	for i, cand := range o.Candidates {
		names[i] = "`" + cand.Name + "`"
	}

	o.Err = report.NewDiagnostic(
		report.KindAmbiguousReference,
		o.Path,
		o.Ref.Span,
		"reference `%s` is ambiguous: it could denote %s",
		o.Ref.Repr(),
		strings.Join(names, ", "),
	)
}

// notFound finalizes an outcome for which no candidate was found.
func (o *Outcome) notFound(msg string, args ...interface{}) {
	if o.Final() {
		panic(fmt.Sprintf("invalid outcome transition from %s (expected a pending outcome)", o.State))
	}

	o.State = NotFound
	o.Err = report.NewDiagnostic(report.KindUnresolvedReference, o.Path, o.Ref.Span, msg, args...)
}

// fail attaches an error to a resolved outcome.
func (o *Outcome) fail(kind report.Kind, msg string, args ...interface{}) {
	o.Err = report.NewDiagnostic(kind, o.Path, o.Ref.Span, msg, args...)
}

func (o *Outcome) mustBe(state OutcomeState) {
	if o.State != state {
		panic(fmt.Sprintf("invalid outcome transition from %s (expected %s)", o.State, state))
	}
}

// Final returns whether the outcome reached a final state.
func (o *Outcome) Final() bool {
	return o.State == Resolved || o.State == NotFound || o.State == Ambiguous
}

func (o *Outcome) String() string {
	switch o.State {
	case Resolved:
		if o.Err != nil {
			return fmt.Sprintf("%s -> %s [%s] (%s)", o.Ref.Repr(), o.Symbol, o.Level, o.Err.Message)
		}

		return fmt.Sprintf("%s -> %s [%s]", o.Ref.Repr(), o.Symbol, o.Level)
	case NotFound, Ambiguous:
		return fmt.Sprintf("%s: %s", o.Ref.Repr(), o.Err.Message)
	default:
		return fmt.Sprintf("%s: %s", o.Ref.Repr(), o.State)
	}
}
