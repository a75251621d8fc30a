// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for status values.
package constants

// Row status constants describe how a report row was produced.
const (
	// StatusRecorded indicates the package artifact was read and counted.
	StatusRecorded = "Recorded"

	// StatusDegraded indicates the package failed to read or parse and was
	// recorded with zero counts.
	StatusDegraded = "Degraded"
)

// Report layout.
const (
	// ReportHeader is the fixed first line of every report.
	ReportHeader = "Crate name,Number of procedures,Number of supported procedures,Number of supported procedures using assertions"

	// ReportColumns is the number of fields in every report line.
	ReportColumns = 4
)

// Default file locations.
const (
	// DefaultConfigFile is looked up in the working directory when no --config is given.
	DefaultConfigFile = ".supportreport.yml"

	// DefaultArtifactPath is where the analysis tool leaves its results, relative
	// to the package directory.
	DefaultArtifactPath = "source/prusti-filter-results.json"

	// DefaultFinalReport is the stable name of the completed report.
	DefaultFinalReport = "supported-procedures.csv"

	// ReportFilePrefix starts the name of the timestamped incremental report.
	ReportFilePrefix = "supported-procedures-"

	// ReportTimestampLayout is the UTC timestamp embedded in incremental report names.
	ReportTimestampLayout = "20060102-150405"
)

// DefaultFeature is the interestingness tag counted in the last report column.
const DefaultFeature = "uses_assertions"

// Icon constants for status display.
const (
	// IconSuccess indicates a package was recorded (green circle).
	IconSuccess = "🟢"

	// IconWarning indicates a non-fatal problem (orange circle).
	IconWarning = "🟠"

	// IconError indicates a package was degraded (red X).
	IconError = "❌"

	// IconInfo indicates informational output (blue circle).
	IconInfo = "🔵"
)

// StatusIcon returns the display icon for a row status.
func StatusIcon(status string) string {
	switch status {
	case StatusRecorded:
		return IconSuccess
	case StatusDegraded:
		return IconError
	default:
		return IconInfo
	}
}
