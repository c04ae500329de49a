package report

import (
	"fmt"
)

// Kind enumerates the kinds of structured diagnostics produced during
// resolution.
type Kind int

// Enumeration of diagnostic kinds.
const (
	KindDuplicateDeclaration Kind = iota
	KindDuplicateImportBinding
	KindUnresolvedImport
	KindUnresolvedReference
	KindAmbiguousReference
	KindCyclicTypeAlias
	KindTypeArgumentArity
)

var kindNames = map[Kind]string{
	KindDuplicateDeclaration:   "DuplicateDeclaration",
	KindDuplicateImportBinding: "DuplicateImportBinding",
	KindUnresolvedImport:       "UnresolvedImport",
	KindUnresolvedReference:    "UnresolvedReference",
	KindAmbiguousReference:     "AmbiguousReference",
	KindCyclicTypeAlias:        "CyclicTypeAlias",
	KindTypeArgumentArity:      "TypeArgumentArity",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a single structured resolution error.  It always carries the
// path of the compilation unit it occurred in and, when known, the span of the
// offending declaration, import or reference.
type Diagnostic struct {
	Kind Kind

	// Path is the path of the compilation unit.
	Path string

	// Span may be nil if no position information is available.
	Span *TextSpan

	Message string

	// IsWarning marks diagnostics that do not fail a run.
	IsWarning bool
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%s: %s", d.Path, d.Span, d.Message)
}

// NewDiagnostic creates a new error diagnostic with a formatted message.
func NewDiagnostic(kind Kind, path string, span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Path:    path,
		Span:    span,
		Message: fmt.Sprintf(msg, args...),
	}
}

// -----------------------------------------------------------------------------

// LocalCompileError is an error that occurs in a context in which the unit is
// known by the error handler and thus doesn't need to be passed along with the
// error.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (lce *LocalCompileError) Error() string {
	if lce.Span == nil {
		return lce.Message
	}

	return fmt.Sprintf("%s: %s", lce.Span, lce.Message)
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// CatchErrors catches a local compile error thrown by a `panic` and stores it
// in the error pointed to by errPtr.  Any other panic is propagated.
// NB: This function must ALWAYS be deferred.
func CatchErrors(errPtr *error) {
	if x := recover(); x != nil {
		if lce, ok := x.(*LocalCompileError); ok {
			*errPtr = lce
		} else {
			panic(x)
		}
	}
}
