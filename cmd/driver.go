// Package cmd is the top-level driver package of declres: it parses the
// command-line arguments, loads modules and runs resolution.
package cmd

import (
	"declres/mods"
	"declres/report"
	"declres/resolve"

	"github.com/google/uuid"
)

// Driver runs resolution over a module.
type Driver struct {
	// mod is the module being resolved.
	mod *mods.Module

	// rep receives the diagnostics of the run.
	rep *report.Reporter

	// runID identifies the run.
	runID uuid.UUID
}

// NewDriver loads the module at modPath and creates a driver for it.
func NewDriver(modPath string, rep *report.Reporter) (*Driver, error) {
	mod, err := mods.LoadModule(modPath)
	if err != nil {
		return nil, err
	}

	return &Driver{mod: mod, rep: rep, runID: uuid.New()}, nil
}

// Run loads the sources of the module and resolves them.
func (d *Driver) Run() (*resolve.Result, error) {
	report.ReportHeader(d.mod.Name, d.runID.String())

	report.ReportBeginPhase("Loading")
	files, err := d.mod.LoadSources()
	report.ReportEndPhase(err == nil)
	if err != nil {
		return nil, err
	}

	eng := resolve.NewEngine(resolve.Options{
		Workers:        d.mod.Workers,
		DefaultImports: d.mod.DefaultImports,
		Reporter:       d.rep,
		Phases:         phaseReporter{},
		RunID:          d.runID,
	})

	return eng.Run(files)
}

// phaseReporter displays the phases of a run through the global reporter.
type phaseReporter struct{}

func (phaseReporter) BeginPhase(name string) {
	report.ReportBeginPhase(name)
}

func (phaseReporter) EndPhase(success bool) {
	report.ReportEndPhase(success)
}
