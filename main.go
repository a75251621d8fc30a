// Package main is the entry point for the supportreport CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package.
package main

import "github.com/ajxudir/supportreport/cmd"

// main initializes and runs the supportreport CLI application.
//
// It delegates all command parsing and execution to the cmd package,
// which handles the report, config and version subcommands.
func main() {
	cmd.Execute()
}
