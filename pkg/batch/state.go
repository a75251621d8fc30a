package batch

// PackageState tracks one package through the batch.
type PackageState int

const (
	// Pending means the package has not been looked at yet.
	Pending PackageState = iota
	// Reading means the analysis artifact is being loaded.
	Reading
	// Filtering means the support counts are being computed.
	Filtering
	// Failed means the artifact could not be read; a degraded row follows.
	Failed
	// Recorded means the package row is in the report.
	Recorded
)

// String returns the state name used in verbose output.
func (s PackageState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Reading:
		return "reading"
	case Filtering:
		return "filtering"
	case Failed:
		return "failed"
	case Recorded:
		return "recorded"
	default:
		return "unknown"
	}
}

// State tracks the batch as a whole.
type State int

const (
	// NotStarted means no package has been processed.
	NotStarted State = iota
	// Running means packages are being processed.
	Running
	// Finalized means the final report has been written.
	Finalized
)

// String returns the state name used in verbose output.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}
