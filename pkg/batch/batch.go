// Package batch drives the per-package pipeline: read the analysis artifact,
// compute the support counts, and append one report row per requested
// package, in input order.
package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ajxudir/supportreport/pkg/analysis"
	"github.com/ajxudir/supportreport/pkg/blacklist"
	"github.com/ajxudir/supportreport/pkg/config"
	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/filtering"
	"github.com/ajxudir/supportreport/pkg/output"
	"github.com/ajxudir/supportreport/pkg/report"
	"github.com/ajxudir/supportreport/pkg/utils"
	"github.com/ajxudir/supportreport/pkg/verbose"
	"github.com/ajxudir/supportreport/pkg/warnings"
)

// Options configures a batch run.
//
// Fields:
//   - CrateRoot: Directory holding one subdirectory per package
//   - BlacklistPath: Global blacklist file
//   - ReportPath: Incremental report, appended row by row
//   - FinalPath: Stable copy written when the batch completes
//   - ArtifactPath: Artifact location relative to a package directory; empty uses the default
//   - MaxArtifactSize: Per-artifact size cap in bytes; 0 uses the default
//   - Filter: Filter engine options
//   - Diagnostics: Progress and error sink; nil writes to stderr
type Options struct {
	CrateRoot       string
	BlacklistPath   string
	ReportPath      string
	FinalPath       string
	ArtifactPath    string
	MaxArtifactSize int64
	Filter          filtering.Options
	Diagnostics     *output.Diagnostics
}

// OptionsFromConfig builds run options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, reportPath, finalPath string, diag *output.Diagnostics) Options {
	return Options{
		CrateRoot:       cfg.CrateRoot,
		BlacklistPath:   cfg.Blacklist,
		ReportPath:      reportPath,
		FinalPath:       finalPath,
		ArtifactPath:    cfg.ArtifactPath,
		MaxArtifactSize: cfg.MaxArtifactSize,
		Filter: filtering.Options{
			Feature:                  cfg.Feature,
			FeatureRequiresSupported: cfg.FeatureSubsetOfSupported(),
			Dedupe:                   cfg.Dedupe(),
		},
		Diagnostics: diag,
	}
}

// Outcome is the result of one requested package.
//
// Fields:
//   - Row: The row appended to the report
//   - State: Final package state; Recorded once the row is written
//   - Err: The NotFoundError or ParseError that degraded the row, if any
type Outcome struct {
	Row   report.Row
	State PackageState
	Err   error
}

// Degraded reports whether the row was recorded with zero counts after an error.
func (o Outcome) Degraded() bool {
	return o.Err != nil
}

// Result is the outcome of a batch run.
type Result struct {
	Outcomes   []Outcome
	State      State
	ReportPath string
	FinalPath  string
}

// Rows returns the report rows in processing order.
func (r *Result) Rows() []report.Row {
	rows := make([]report.Row, len(r.Outcomes))
	for i, o := range r.Outcomes {
		rows[i] = o.Row
	}
	return rows
}

// Errors returns per-package error messages keyed by outcome index.
func (r *Result) Errors() map[int]string {
	errs := make(map[int]string)
	for i, o := range r.Outcomes {
		if o.Err != nil {
			errs[i] = o.Err.Error()
		}
	}
	return errs
}

// Summary converts the result into an output summary.
func (r *Result) Summary(feature string) *output.RunResult {
	res := output.NewRunResult(r.Rows(), r.Errors(), r.ReportPath, r.FinalPath)
	res.Summary.Feature = feature
	return res
}

// Run processes packages in input order and finalizes the report.
//
// It performs the following operations:
//   - Step 1: Loads the blacklist; a ConfigError aborts before any package is read
//   - Step 2: Resets the incremental report to a header-only file
//   - Step 3: For each package, reads its artifact and computes the counts
//   - Step 4: Converts NotFoundError and ParseError into a zero-count degraded row
//   - Step 5: Appends exactly one row per package to the incremental report
//   - Step 6: Copies the report to its final location
//
// Parameters:
//   - names: Package names, processed in order; duplicates yield one row each
//   - opts: Run options
//
// Returns:
//   - *Result: Outcomes so far; populated even when an error is returned after Step 1
//   - error: *errors.ConfigError for blacklist problems, *errors.ExitError for report I/O failures
func Run(names []string, opts Options) (*Result, error) {
	result := &Result{
		State:      NotStarted,
		ReportPath: opts.ReportPath,
		FinalPath:  opts.FinalPath,
	}

	bl, err := blacklist.Load(opts.BlacklistPath)
	if err != nil {
		return result, err
	}

	diag := opts.Diagnostics
	if diag == nil {
		diag = output.NewDiagnostics(nil, output.DiagnosticsOptions{})
	}
	reader := analysis.NewReader(opts.ArtifactPath, opts.MaxArtifactSize)
	acc := report.NewAccumulator(opts.ReportPath)

	result.setState(Running)
	if err := acc.Start(); err != nil {
		return result, errors.NewExitError(errors.ExitFailure,
			fmt.Errorf("start report %s: %w", acc.Path(), err))
	}
	result.Outcomes = make([]Outcome, 0, len(names))
	diag.Start(len(names))

	total := len(names)
	for i, name := range names {
		outcome := process(name, opts.CrateRoot, reader, bl, opts.Filter)

		if err := acc.Append(outcome.Row); err != nil {
			return result, errors.NewExitError(errors.ExitFailure,
				fmt.Errorf("append %s to report %s: %w", name, acc.Path(), err))
		}
		outcome.advance(Recorded)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Err != nil {
			diag.PackageError(i+1, total, name, outcome.Err)
			continue
		}
		diag.Progress(i+1, total, outcome.Row)
		verbose.PackageCounted(name, outcome.Row.Counts.All, outcome.Row.Counts.Supported, outcome.Row.Counts.SupportedWithFeature)
	}

	if err := report.Finalize(opts.ReportPath, opts.FinalPath); err != nil {
		return result, errors.NewExitError(errors.ExitFailure, err)
	}
	result.setState(Finalized)
	diag.Done(opts.FinalPath)

	return result, nil
}

// process runs one package through the reader and the filter engine.
//
// The returned outcome is never Recorded; the caller advances it once the
// row is in the report.
func process(name, crateRoot string, reader *analysis.Reader, bl blacklist.Blacklist, opts filtering.Options) Outcome {
	o := Outcome{Row: report.Row{Package: name}, State: Pending}

	o.advance(Reading)
	if err := validateName(name); err != nil {
		return o.fail(err)
	}

	rec, err := reader.Read(filepath.Join(crateRoot, name))
	if err != nil {
		if !errors.IsPackageError(err) {
			err = &errors.ParseError{Path: filepath.Join(crateRoot, name), Reason: "unreadable analysis artifact", Err: err}
		}
		return o.fail(errors.WithPackage(err, name))
	}

	o.advance(Filtering)
	o.Row.Counts = filtering.Compute(rec.Procedures, bl, opts)
	o.Row.Status = constants.StatusRecorded
	return o
}

func (o *Outcome) advance(to PackageState) {
	verbose.Printf("Package '%s': %s -> %s", o.Row.Package, o.State, to)
	o.State = to
}

func (o Outcome) fail(err error) Outcome {
	o.advance(Failed)
	o.Err = err
	o.Row.Counts = filtering.Counts{}
	o.Row.Status = constants.StatusDegraded
	return o
}

func (r *Result) setState(to State) {
	verbose.Printf("Batch: %s -> %s", r.State, to)
	r.State = to
}

// validateName rejects names that would resolve outside the crate root.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return &errors.ParseError{Package: name, Path: name, Reason: "invalid package name"}
	}
	return nil
}

// ReadPackageList reads the package list file.
//
// Lines are trimmed; blank lines and '#' comments are skipped. Order and
// duplicates are kept, and each duplicate produces a warning.
//
// Parameters:
//   - path: Package list file
//
// Returns:
//   - []string: Package names in file order
//   - error: *errors.ConfigError when the file is missing or unreadable
func ReadPackageList(path string) ([]string, error) {
	names, err := utils.ReadLines(path)
	if err != nil {
		return nil, errors.NewConfigError("package list", path, err)
	}

	seen := make(map[string]int, len(names))
	for _, name := range names {
		seen[name]++
		if seen[name] == 2 {
			warnings.Warnf("%s package '%s' is listed more than once; each entry gets its own row\n", constants.IconWarning, name)
		}
	}
	verbose.Printf("Package list %s: %d entries", path, len(names))
	return names, nil
}
