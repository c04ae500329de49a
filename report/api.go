package report

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// rep is the global reporter used by the command-line driver.
var rep *Reporter

// InitReporter initializes the global reporter to the given log level and
// returns it.  Each call starts a fresh reporter.  Terminal styling is
// disabled when standard output is not a terminal.
func InitReporter(logLevel int) *Reporter {
	rep = NewReporter(logLevel)

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}

	return rep
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal error.  These are errors that specifically
// result from a bug or unexpected condition occurring within declres: they
// are not intended to ever happen.  These errors are always displayed
// regardless of log level.
func ReportICE(message string, args ...interface{}) {
	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error.  These are errors that should cause the
// run to stop immediately: the caller is responsible for stopping.  However,
// they are expected errors that generally result from invalid input: a
// missing manifest, a malformed skeleton, etc.
func ReportFatal(message string, args ...interface{}) {
	if rep == nil || rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}
}

// ReportInfo displays an informational message regardless of log level.
func ReportInfo(label, message string) {
	displayInfo(label, message)
}

// ReportWarning reports a warning that is not tied to a compilation unit.
func ReportWarning(message string, args ...interface{}) {
	if rep != nil && rep.logLevel >= LogLevelWarn {
		displayWarning(fmt.Sprintf(message, args...))
	}
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is to verbose.

// ReportHeader reports the pre-resolution header: the declres version, the
// module being resolved and the run ID.
func ReportHeader(modName, runID string) {
	if rep != nil && rep.logLevel == LogLevelVerbose {
		displayHeader(modName, runID)
	}
}

// phase is the currently running phase.
var phase struct {
	name  string
	start time.Time
}

// ReportBeginPhase reports the beginning of a phase.
func ReportBeginPhase(name string) {
	phase.name = name
	phase.start = time.Now()

	if rep != nil && rep.logLevel == LogLevelVerbose {
		displayBeginPhase(name)
	}
}

// ReportEndPhase reports the end of the current phase.
func ReportEndPhase(success bool) {
	if phase.name != "" && rep != nil && rep.logLevel == LogLevelVerbose {
		displayEndPhase(phase.name, success, time.Since(phase.start))
	}

	phase.name = ""
}

// ReportFinished displays all the collected diagnostics of the global reporter
// and the closing summary.
func ReportFinished() {
	if rep == nil {
		return
	}

	rep.Flush()

	if rep.logLevel == LogLevelVerbose {
		errorCount, warningCount := rep.Counts()
		displayFinished(errorCount, warningCount)
	}
}
