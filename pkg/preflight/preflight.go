// Package preflight checks the run inputs before any crate is processed.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/supportreport/pkg/config"
	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/verbose"
)

// InputResolutionHints maps input names to instructions for fixing them.
var InputResolutionHints = map[string]string{
	"crate root":   "Pass --crate-root or set 'crate_root' to the directory holding one subdirectory per crate",
	"package list": "Pass --crates or set 'crates' to a file with one crate name per line",
	"blacklist":    "Pass --blacklist or set 'blacklist'; an empty file is fine when nothing is excluded",
	"output dir":   "Pass --output-dir or set 'output_dir' to a directory, or remove the file in its way",
}

// ValidationError represents an unusable input with a resolution hint.
//
// Fields:
//   - Input: Input name, e.g. "blacklist"
//   - Path: Offending path
//   - Err: What is wrong with it
type ValidationError struct {
	Input string
	Path  string
	Err   error
}

// Error returns a formatted error message with resolution instructions.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Input, e.Path, e.Err)
	if hint := InputResolutionHints[e.Input]; hint != "" {
		msg += "\n  Resolution: " + hint
	}
	return msg
}

// ValidateResult holds the result of pre-flight validation.
//
// Fields:
//   - Errors: Inputs that prevent the run
//   - Warnings: Problems that only degrade individual crates
type ValidateResult struct {
	Errors   []ValidationError
	Warnings []string
}

// HasErrors returns true if there are validation errors.
func (r *ValidateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessage returns a formatted error message for all validation errors.
//
// Returns:
//   - string: Multi-line message with header; empty string if no errors
func (r *ValidateResult) ErrorMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Pre-flight validation failed:\n")
	for _, err := range r.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Err converts the result into a ConfigError, or nil when there are no errors.
//
// A single problem keeps its input name and path so hints can match it.
func (r *ValidateResult) Err() error {
	switch len(r.Errors) {
	case 0:
		return nil
	case 1:
		e := r.Errors[0]
		return errors.NewConfigError(e.Input, e.Path, e.Err)
	default:
		return errors.NewConfigError("preflight", "", fmt.Errorf("%s", strings.TrimRight(r.ErrorMessage(), "\n")))
	}
}

func (r *ValidateResult) add(input, path string, err error) {
	r.Errors = append(r.Errors, ValidationError{Input: input, Path: path, Err: err})
}

// ValidateInputs checks the resolved input and output locations of a run.
//
// It performs the following operations:
//   - Step 1: Requires the crate root to be a directory
//   - Step 2: Requires the package list and blacklist to be readable files
//   - Step 3: Requires the output directory, when it exists, to be a directory
//
// Parameters:
//   - cfg: Resolved configuration
//
// Returns:
//   - *ValidateResult: Errors for every unusable input
func ValidateInputs(cfg *config.Config) *ValidateResult {
	result := &ValidateResult{}

	checkDir(result, "crate root", cfg.CrateRoot, false)
	checkReadableFile(result, "package list", cfg.Crates)
	checkReadableFile(result, "blacklist", cfg.Blacklist)
	checkDir(result, "output dir", cfg.OutputDir, true)

	if result.HasErrors() {
		verbose.Printf("Pre-flight validation FAILED: %d errors", len(result.Errors))
	} else {
		verbose.Printf("Pre-flight validation PASSED")
	}
	return result
}

// ValidatePackages warns about crates without a directory under the crate root.
//
// Such crates are still processed and recorded with zero counts.
//
// Parameters:
//   - names: Crate names from the package list
//   - crateRoot: Resolved crate root
//
// Returns:
//   - *ValidateResult: One warning per missing crate directory, no errors
func ValidatePackages(names []string, crateRoot string) *ValidateResult {
	result := &ValidateResult{}
	for _, name := range names {
		if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
			continue
		}
		info, err := os.Stat(filepath.Join(crateRoot, name))
		if err != nil || !info.IsDir() {
			result.Warnings = append(result.Warnings, fmt.Sprintf("crate '%s' has no directory under %s", name, crateRoot))
		}
	}
	return result
}

func checkDir(result *ValidateResult, input, path string, optional bool) {
	info, err := os.Stat(path)
	switch {
	case err != nil && optional && os.IsNotExist(err):
		return
	case err != nil:
		result.add(input, path, err)
	case !info.IsDir():
		result.add(input, path, fmt.Errorf("not a directory"))
	}
}

func checkReadableFile(result *ValidateResult, input, path string) {
	info, err := os.Stat(path)
	if err != nil {
		result.add(input, path, err)
		return
	}
	if !info.Mode().IsRegular() {
		result.add(input, path, fmt.Errorf("not a regular file"))
		return
	}
	f, err := os.Open(path)
	if err != nil {
		result.add(input, path, err)
		return
	}
	_ = f.Close()
}
