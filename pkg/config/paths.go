package config

import (
	"path/filepath"
	"time"

	"github.com/ajxudir/supportreport/pkg/constants"
)

// Resolve returns a copy of c with input and output paths anchored at WorkingDir.
//
// ArtifactPath stays relative because it is resolved per package.
func (c *Config) Resolve() *Config {
	out := *c
	out.CrateRoot = c.resolve(c.CrateRoot)
	out.Crates = c.resolve(c.Crates)
	out.Blacklist = c.resolve(c.Blacklist)
	out.OutputDir = c.resolve(c.OutputDir)
	out.Report = c.resolve(c.Report)
	if filepath.Base(c.FinalReport) != c.FinalReport {
		out.FinalReport = c.resolve(c.FinalReport)
	}
	return &out
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.WorkingDir == "" || c.WorkingDir == "." {
		return p
	}
	return filepath.Join(c.WorkingDir, p)
}

// ReportPaths returns the incremental and final report paths for a run started at now.
//
// An unset incremental path becomes OutputDir/supported-procedures-<UTC timestamp>.csv.
// A bare final report name is placed in OutputDir.
//
// Parameters:
//   - now: start time of the run
//
// Returns:
//   - report: incremental report path
//   - final: final report path
func (c *Config) ReportPaths(now time.Time) (report, final string) {
	dir := c.OutputDir
	if dir == "" {
		dir = "."
	}

	report = c.Report
	if report == "" {
		report = filepath.Join(dir, constants.ReportFilePrefix+now.UTC().Format(constants.ReportTimestampLayout)+".csv")
	}

	final = c.FinalReport
	if final == "" {
		final = constants.DefaultFinalReport
	}
	if filepath.Base(final) == final {
		final = filepath.Join(dir, final)
	}
	return report, final
}
