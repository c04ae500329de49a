package cmd

import (
	"os"

	"declres/common"
	"declres/mods"
	"declres/report"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `declres` CLI utility.  It returns
// the exit status of the command.
func Execute(args []string) int {
	defer func() {
		if x := recover(); x != nil {
			report.ReportICE("%v", x)
		}
	}()

	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("declres", "declres resolves the declarations and imports of skeleton modules", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "resolve a module and report errors", true)
	checkCmd.AddPrimaryArg("module-path", "the path to the module to check", true)

	queryCmd := cli.AddSubcommand("query", "resolve a reference made in a module", true)
	queryCmd.AddPrimaryArg("module-path", "the path to the module to query", true)
	queryCmd.AddStringArg("file", "f", "the path of the unit relative to the module root", true)
	queryCmd.AddStringArg("name", "n", "the reference to resolve", true)
	queryCmd.AddStringArg("site", "s", "the dotted path of the declaration the reference is made in", false)

	initCmd := cli.AddSubcommand("init", "initialize a module", true)
	initCmd.AddPrimaryArg("module-name", "the name of the new module", true)
	initCmd.AddStringArg("dir", "d", "the module directory (default: working directory)", false)

	cli.AddSubcommand("version", "print the declres version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.ReportFatal("%s", err.Error())
		return 1
	}

	loglevel := report.LogLevelNames[result.Arguments["loglevel"].(string)]

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		return execCheckCommand(subResult, loglevel)
	case "query":
		return execQueryCommand(subResult, loglevel)
	case "init":
		return execInitCommand(subResult)
	case "version":
		report.ReportInfo("declres version", common.DeclresVersion)
	}

	return 0
}

// execCheckCommand executes the check subcommand.
func execCheckCommand(result *olive.ArgParseResult, loglevel int) int {
	rep := report.InitReporter(loglevel)

	modPath, _ := result.PrimaryArg()
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

	report.ReportFinished()

	if res.AnyErrors() {
		return 1
	}

	return 0
}

// execInitCommand executes the init subcommand.
func execInitCommand(result *olive.ArgParseResult) int {
	modName, _ := result.PrimaryArg()

	dir, ok := result.Arguments["dir"]
	if !ok {
		workDir, err := os.Getwd()
		if err != nil {
			report.ReportFatal("%s", err.Error())
			return 1
		}

		dir = workDir
	}

	if err := mods.InitModule(modName, dir.(string)); err != nil {
		report.ReportFatal("module init error: %s", err.Error())
		return 1
	}

	return 0
}
