package cmd

import (
	"fmt"
	"strings"

	"declres/report"
	"declres/resolve"

	"github.com/ComedicChimera/olive"
)

// execQueryCommand executes the query subcommand: the module is resolved and
// the outcome of the queried reference is printed.
func execQueryCommand(result *olive.ArgParseResult, loglevel int) int {
	rep := report.InitReporter(loglevel)

	modPath, _ := result.PrimaryArg()
	file := result.Arguments["file"].(string)
	name := result.Arguments["name"].(string)

	site := ""
	if siteArg, ok := result.Arguments["site"]; ok {
		site = siteArg.(string)
	}

	d, err := NewDriver(modPath, rep)
	if err != nil {
		report.ReportFatal("%s", err.Error())
		return 1
	}

	res, err := d.Run()
	if err != nil {
		report.ReportFatal("%s", err.Error())
		return 1
	}

	o, err := res.Lookup(file, site, name)
	if err != nil {
		report.ReportFatal("%s", err.Error())
		return 1
	}

	fmt.Println(FormatOutcome(res, o))

	if o.State != resolve.Resolved || o.Err != nil {
		return 1
	}

	return 0
}

// FormatOutcome returns the human-readable form of a query outcome.
func FormatOutcome(res *resolve.Result, o *resolve.Outcome) string {
	sb := strings.Builder{}
	sb.WriteString(o.Ref.Repr())
	sb.WriteString(": ")
	sb.WriteString(o.State.String())

	switch o.State {
	case resolve.Resolved:
		sym := o.Symbol

		if sym.IsTypeParam() {
			fmt.Fprintf(&sb, " to type parameter `%s` of `%s`", sym.Name, res.Table.QualifiedName(sym.Decl))
		} else if decl := res.Table.Decl(sym.Decl); decl.Unit.IsUniverse() {
			fmt.Fprintf(&sb, " to built-in %s `%s`", decl.Kind, sym.Name)
		} else {
			fmt.Fprintf(&sb, " to %s `%s` declared in `%s` at %s", decl.Kind, sym.Name, decl.Unit.Path, decl.Span)
		}

		fmt.Fprintf(&sb, " (%s)", o.Level)

		if len(sym.Overloads) > 1 {
			fmt.Fprintf(&sb, "\n  overloads: %d", len(sym.Overloads))
		}

		if sym.Expanded != nil {
			fmt.Fprintf(&sb, "\n  expands to: %s", sym.Expanded.Repr())
		}

		if o.Err != nil {
			fmt.Fprintf(&sb, "\n  error: %s", o.Err.Message)
		}
	case resolve.Ambiguous, resolve.NotFound:
		fmt.Fprintf(&sb, "\n  error: %s", o.Err.Message)
	}

	return sb.String()
}
