// Package errors provides the error taxonomy and display helpers for supportreport.
//
// The taxonomy mirrors the two failure scopes of a report run:
//   - ConfigError: top-level inputs are missing, unreadable or invalid. Fatal.
//   - NotFoundError: a package's analysis artifact is absent. Recovered per package.
//   - ParseError: an artifact is present but malformed. Recovered per package.
//   - ValidationError: a configuration field failed validation (wrapped in ConfigError).
//   - ExitError: carries the process exit code for the CLI.
//
// Error Display:
//
// The package provides consistent error formatting with actionable hints:
//
//	errors.PrintErrorWithHints(os.Stderr, errs, verbose)
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): The report was produced (degraded packages included)
//   - ExitFailure (2): The report could not be written
//   - ExitConfigError (3): Configuration or top-level input error
package errors
