package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/report"
)

// WriteRunResult writes a run summary in the specified format.
//
// Parameters:
//   - w: Destination writer (stdout in the CLI)
//   - format: Output format; FormatNone writes nothing
//   - result: The run summary
//
// Returns:
//   - error: Any write or encoding error
func WriteRunResult(w io.Writer, format Format, result *RunResult) error {
	switch format {
	case FormatNone:
		return nil
	case FormatJSON:
		return NewFormatter(format, w).WriteJSON(result)
	case FormatCSV:
		return writeRunCSV(w, result)
	default:
		return writeRunTable(w, result)
	}
}

// writeRunCSV writes one line per crate with the status and error columns.
func writeRunCSV(w io.Writer, result *RunResult) error {
	headers := []string{"crate", "procedures", "supported", "supported_with_feature", "status", "error"}
	rows := make([][]string, 0, len(result.Crates))
	for _, c := range result.Crates {
		rows = append(rows, []string{
			c.Name,
			strconv.Itoa(c.Procedures),
			strconv.Itoa(c.Supported),
			strconv.Itoa(c.SupportedWithFeature),
			c.Status,
			c.Error,
		})
	}
	return NewFormatter(FormatCSV, w).WriteCSV(headers, rows)
}

// writeRunTable writes the aligned terminal summary.
//
// It performs the following operations:
//   - Step 1: Renders one table row per crate with grouped thousands
//   - Step 2: Writes the totals line
//   - Step 3: Writes the report locations
func writeRunTable(w io.Writer, result *RunResult) error {
	table := NewTable().
		AddColumn("CRATE").
		AddNumericColumn("PROCEDURES").
		AddNumericColumn("SUPPORTED").
		AddNumericColumn("WITH FEATURE").
		AddColumn("STATUS")

	rows := make([][]string, 0, len(result.Crates))
	for _, c := range result.Crates {
		rows = append(rows, []string{
			c.Name,
			humanize.Comma(int64(c.Procedures)),
			humanize.Comma(int64(c.Supported)),
			humanize.Comma(int64(c.SupportedWithFeature)),
			constants.StatusIcon(c.Status) + " " + c.Status,
		})
	}
	if err := table.Fprint(w, rows); err != nil {
		return err
	}

	header := report.Header()
	s := result.Summary
	if _, err := fmt.Fprintf(w, "\nTotal: %s (%d recorded, %d degraded), %s procedures, %s supported, %s using %s\n",
		pluralCrates(s.Requested), s.Recorded, s.Degraded,
		humanize.Comma(int64(result.Total(header[1]))),
		humanize.Comma(int64(result.Total(header[2]))),
		humanize.Comma(int64(result.Total(header[3]))),
		featureLabel(s.Feature)); err != nil {
		return err
	}
	if s.Warnings > 0 {
		if _, err := fmt.Fprintf(w, "Warnings: %d\n", s.Warnings); err != nil {
			return err
		}
	}
	if s.Report != "" {
		if _, err := fmt.Fprintf(w, "Report: %s\n", s.Report); err != nil {
			return err
		}
	}
	if s.FinalReport != "" {
		if _, err := fmt.Fprintf(w, "Final report: %s\n", s.FinalReport); err != nil {
			return err
		}
	}
	return nil
}

func pluralCrates(n int) string {
	if n == 1 {
		return "1 crate"
	}
	return humanize.Comma(int64(n)) + " crates"
}

func featureLabel(feature string) string {
	if feature == "" {
		return "the feature"
	}
	return feature
}
