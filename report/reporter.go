package report

import (
	"sort"
	"sync"
)

// Reporter is responsible for collecting the diagnostics produced during a
// resolution run and displaying them to the user.  The reporter respects the
// set log level and is synchronized: its methods can be safely called from
// multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different reporting calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The diagnostics reported so far in order of arrival.
	diags []*Diagnostic

	errorCount, warningCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

// LogLevelNames maps the command-line names of the log levels to their values.
var LogLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// NewReporter creates a new reporter with the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// LogLevel returns the log level of the reporter.
func (r *Reporter) LogLevel() int {
	return r.logLevel
}

// Report records a diagnostic.
func (r *Reporter) Report(d *Diagnostic) {
	r.m.Lock()
	defer r.m.Unlock()

	r.diags = append(r.diags, d)
	if d.IsWarning {
		r.warningCount++
	} else {
		r.errorCount++
	}
}

// Errorf records a new error diagnostic and returns it.
func (r *Reporter) Errorf(kind Kind, path string, span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	d := NewDiagnostic(kind, path, span, msg, args...)
	r.Report(d)
	return d
}

// AnyErrors returns whether or not any errors were reported.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount > 0
}

// Counts returns the number of errors and warnings reported.
func (r *Reporter) Counts() (int, int) {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount, r.warningCount
}

// Diagnostics returns a copy of all the reported diagnostics sorted by path
// and then by position so that output does not depend on worker scheduling.
func (r *Reporter) Diagnostics() []*Diagnostic {
	r.m.Lock()
	diags := make([]*Diagnostic, len(r.diags))
	copy(diags, r.diags)
	r.m.Unlock()

	SortDiagnostics(diags)
	return diags
}

// Flush displays all the reported diagnostics that are visible at the
// reporter's log level.
func (r *Reporter) Flush() {
	for _, d := range r.Diagnostics() {
		if d.IsWarning && r.logLevel >= LogLevelWarn || !d.IsWarning && r.logLevel >= LogLevelError {
			displayDiagnostic(d)
		}
	}
}

// SortDiagnostics sorts diagnostics by path, position, kind and message.
func SortDiagnostics(diags []*Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}

		if a.Span.Before(b.Span) {
			return true
		} else if b.Span.Before(a.Span) {
			return false
		}

		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}

		return a.Message < b.Message
	})
}
