package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
const (
	// ExitSuccess indicates the batch ran to completion.
	// Packages recorded as degraded do not change the exit code.
	ExitSuccess = 0

	// ExitFailure indicates a critical error, such as a report that could not be written.
	ExitFailure = 2

	// ExitConfigError indicates a configuration-level failure: an unreadable
	// package list, blacklist or config file.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Example:
//
//	err := errors.NewExitError(errors.ExitFailure, writeErr)
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess. An ExitError yields its own code and a
// ConfigError anywhere in the chain yields ExitConfigError. Anything else is
// ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if IsConfigError(err) {
		return ExitConfigError
	}

	return ExitFailure
}

// ConfigError indicates that a top-level input could not be used.
//
// A ConfigError aborts the run before any package is processed.
//
// Fields:
//   - Input: What the path was supposed to be ("blacklist", "package list", "config")
//   - Path: The offending path, may be empty
//   - Err: Underlying cause
type ConfigError struct {
	Input string
	Path  string
	Err   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Input, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s: invalid", e.Input, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Input, e.Err)
	}
	return e.Input + ": invalid configuration"
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a ConfigError.
//
// Example:
//
//	return nil, errors.NewConfigError("blacklist", path, err)
func NewConfigError(input, path string, err error) *ConfigError {
	return &ConfigError{Input: input, Path: path, Err: err}
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// NotFoundError indicates that a package's analysis artifact does not exist.
//
// Fields:
//   - Package: Name of the package, may be empty when unknown to the reader
//   - Path: Path at which the artifact was expected
//   - Err: Underlying filesystem error
type NotFoundError struct {
	Package string
	Path    string
	Err     error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s: analysis artifact not found: %s", e.Package, e.Path)
	}
	return fmt.Sprintf("analysis artifact not found: %s", e.Path)
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ParseError indicates that an analysis artifact exists but is malformed.
//
// Fields:
//   - Package: Name of the package, may be empty when unknown to the reader
//   - Path: Path of the malformed artifact
//   - Reason: Short description of the problem
//   - Details: Individual violations (schema errors), may be empty
//   - Err: Underlying decode error, may be nil
type ParseError struct {
	Package string
	Path    string
	Reason  string
	Details []string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Reason
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Package != "" {
		return fmt.Sprintf("%s: malformed analysis artifact %s: %s", e.Package, e.Path, msg)
	}
	return fmt.Sprintf("malformed analysis artifact %s: %s", e.Path, msg)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is, or wraps, a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsPackageError reports whether err is recoverable at package level.
//
// Only NotFoundError and ParseError qualify; the batch records the package
// with zero counts and moves on.
func IsPackageError(err error) bool {
	return IsNotFound(err) || IsParseError(err)
}

// WithPackage attaches a package name to a NotFoundError or ParseError.
//
// Readers do not know which package they are reading; the batch driver adds
// the name so diagnostics reference it. Other errors are returned unchanged.
//
// Parameters:
//   - err: Error returned by the reader
//   - pkg: Package name
//
// Returns:
//   - error: The same error value with Package set when applicable
func WithPackage(err error, pkg string) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		nf.Package = pkg
		return err
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Package = pkg
	}
	return err
}

// ValidationError describes a single configuration field that failed validation.
//
// Fields:
//   - Field: Configuration key, e.g. "crate_root"
//   - Message: What is wrong
//   - Expected: What a valid value looks like, may be empty
type ValidationError struct {
	Field    string
	Message  string
	Expected string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: %s (expected %s)", e.Field, e.Message, e.Expected)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError checks if err is a ValidationError and returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
