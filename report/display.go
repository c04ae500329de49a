package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"declres/common"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displayICE displays an internal error message.
func displayICE(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Internal Error")
	ErrorColorFG.Println(" " + message)
	fmt.Print("This error was not supposed to happen: please open an issue.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + message)
	fmt.Println()
}

// displayInfo displays a labeled informational message.
func displayInfo(label, message string) {
	InfoStyleBG.Print(label)
	fmt.Println(" " + message)
}

// displayWarning displays a warning message which has no position.
func displayWarning(message string) {
	WarnStyleBG.Print("Warning")
	WarnColorFG.Println(" " + message)
}

// displayDiagnostic displays a resolution error or warning.  There is no
// source text to underline (the input is a skeleton) so only the banner and
// the position are displayed.
func displayDiagnostic(d *Diagnostic) {
	fmt.Print("-- ")

	label := d.Kind.String()
	if d.IsWarning {
		WarnStyleBG.Print(label + " Warning")
		label += " Warning"
	} else {
		ErrorStyleBG.Print(label + " Error")
		label += " Error"
	}

	fileName := filepath.Base(d.Path)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 60 {
		bannerLen = 60
	}

	dashCount := bannerLen - len(fileName) - len(label) - 1
	if dashCount < 2 {
		dashCount = 2
	}

	fmt.Print(" " + strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)

	fmt.Printf("%s:%s: %s\n\n", d.Path, d.Span, d.Message)
}

// -----------------------------------------------------------------------------

// displayHeader displays the run information before resolution starts.
func displayHeader(modName, runID string) {
	fmt.Print("declres ")
	InfoColorFG.Print("v" + common.DeclresVersion)
	fmt.Print(" -- module: ")
	InfoColorFG.Print(modName)
	fmt.Print(" -- run: ")
	InfoColorFG.Println(runID)
}

// phaseSpinner is the spinner of the currently running phase.
var phaseSpinner *pterm.SpinnerPrinter

const maxPhaseLength = len("Collecting")

// phaseText pads a phase name so that the phase results line up.
func phaseText(name string) string {
	return name + "..." + strings.Repeat(" ", maxPhaseLength-len(name)+2)
}

// displayBeginPhase displays the beginning of a phase.
func displayBeginPhase(name string) {
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText(name))
}

// displayEndPhase displays the end of the phase named name.
func displayEndPhase(name string, success bool, elapsed time.Duration) {
	if phaseSpinner == nil {
		return
	}

	if success {
		phaseSpinner.Success(phaseText(name), fmt.Sprintf("(%.3fs)", elapsed.Seconds()))
	} else {
		phaseSpinner.Fail(phaseText(name))
	}

	phaseSpinner = nil
}

// displayFinished displays the closing summary.
func displayFinished(errorCount, warningCount int) {
	fmt.Print("\n")

	if errorCount == 0 {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
