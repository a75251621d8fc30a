package output

import (
	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/report"
)

// RunResult represents the summary of a report run.
//
// Fields:
//   - Summary: Aggregate statistics
//   - Totals: Column totals keyed by report header, in column order
//   - Crates: One entry per report row, in processing order
type RunResult struct {
	Summary RunSummary             `json:"summary"`
	Totals  *orderedmap.OrderedMap `json:"totals"`
	Crates  []CrateEntry           `json:"crates"`
}

// RunSummary holds summary statistics for a run.
//
// Fields:
//   - Report: Incremental report path
//   - FinalReport: Final report path
//   - Requested: Number of packages requested
//   - Recorded: Packages counted from their artifact
//   - Degraded: Packages recorded with zero counts after an error
//   - Feature: Feature tag counted in the last column
//   - Warnings: Non-fatal warnings written during the run
type RunSummary struct {
	Report      string `json:"report"`
	FinalReport string `json:"final_report"`
	Requested   int    `json:"requested"`
	Recorded    int    `json:"recorded"`
	Degraded    int    `json:"degraded"`
	Feature     string `json:"feature,omitempty"`
	Warnings    int    `json:"warnings"`
}

// CrateEntry is one row of the run summary.
type CrateEntry struct {
	Name                 string `json:"name"`
	Procedures           int    `json:"procedures"`
	Supported            int    `json:"supported"`
	SupportedWithFeature int    `json:"supported_with_feature"`
	Status               string `json:"status"`
	Error                string `json:"error,omitempty"`
}

// NewRunResult builds a run summary from report rows.
//
// Parameters:
//   - rows: Rows in processing order
//   - errs: Per-package error messages keyed by row index; may be nil
//   - reportPath: Incremental report path
//   - finalPath: Final report path
//
// Returns:
//   - *RunResult: Summary ready for any output format
func NewRunResult(rows []report.Row, errs map[int]string, reportPath, finalPath string) *RunResult {
	result := &RunResult{
		Summary: RunSummary{Report: reportPath, FinalReport: finalPath, Requested: len(rows)},
		Crates:  make([]CrateEntry, 0, len(rows)),
	}

	var all, supported, feature int
	for i, row := range rows {
		status := row.Status
		if status == "" {
			status = constants.StatusRecorded
		}
		if status == constants.StatusDegraded {
			result.Summary.Degraded++
		} else {
			result.Summary.Recorded++
		}

		all += row.Counts.All
		supported += row.Counts.Supported
		feature += row.Counts.SupportedWithFeature

		result.Crates = append(result.Crates, CrateEntry{
			Name:                 row.Package,
			Procedures:           row.Counts.All,
			Supported:            row.Counts.Supported,
			SupportedWithFeature: row.Counts.SupportedWithFeature,
			Status:               status,
			Error:                errs[i],
		})
	}

	header := report.Header()
	totals := orderedmap.New()
	totals.SetEscapeHTML(false)
	totals.Set(header[1], all)
	totals.Set(header[2], supported)
	totals.Set(header[3], feature)
	result.Totals = totals

	return result
}

// Total returns the column total for a report header, or 0 when unknown.
func (r *RunResult) Total(header string) int {
	if r.Totals == nil {
		return 0
	}
	v, ok := r.Totals.Get(header)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}
