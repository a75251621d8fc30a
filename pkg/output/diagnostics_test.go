package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajxudir/supportreport/pkg/filtering"
	"github.com/ajxudir/supportreport/pkg/report"
)

// TestDiagnosticsProgress tests the behavior of Progress and Start.
//
// It verifies:
//   - Lines carry the position, package name and counts
//   - NoColor output has no escape sequences
func TestDiagnosticsProgress(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnostics(&buf, DiagnosticsOptions{NoColor: true})

	d.Start(2)
	d.Progress(1, 2, report.Row{Package: "a", Counts: filtering.Counts{All: 2, Supported: 1}})

	out := buf.String()
	assert.Contains(t, out, "Processing 2 package(s)")
	assert.Contains(t, out, "[1/2]")
	assert.Contains(t, out, "a: procedures=2 supported=1 feature=0")
	assert.NotContains(t, out, "\x1b[")
}

// TestDiagnosticsPackageError tests the behavior of PackageError.
//
// It verifies:
//   - The line references the package and error text
//   - Errors are written even in quiet mode
//   - Reported errors are counted for the closing line
func TestDiagnosticsPackageError(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnostics(&buf, DiagnosticsOptions{NoColor: true, Quiet: true})

	d.Start(1)
	d.Progress(1, 1, report.Row{Package: "ok"})
	d.PackageError(1, 1, "c", errors.New("malformed analysis artifact"))

	out := buf.String()
	assert.NotContains(t, out, "Processing")
	assert.NotContains(t, out, "ok:")
	assert.Contains(t, out, "c: malformed analysis artifact")
	assert.Equal(t, 1, d.errors)
}

// TestDiagnosticsDone tests the behavior of Done.
//
// It verifies:
//   - Clean runs report the final path
//   - Runs with errors mention the error count
func TestDiagnosticsDone(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnostics(&buf, DiagnosticsOptions{NoColor: true})
	d.Done("final.csv")
	assert.Contains(t, buf.String(), "Report written to final.csv")

	buf.Reset()
	d.PackageError(1, 1, "x", errors.New("boom"))
	d.Done("final.csv")
	assert.Contains(t, buf.String(), "Finished with 1 package error(s)")
}

// TestNewDiagnosticsDefaultsToStderr tests the nil writer fallback.
//
// It verifies:
//   - A nil writer does not panic
func TestNewDiagnosticsDefaultsToStderr(t *testing.T) {
	d := NewDiagnostics(nil, DiagnosticsOptions{NoColor: true, Quiet: true})
	assert.NotNil(t, d.w)
}

// TestDiagnosticsPackageErrorPrefix tests name deduplication in error lines.
//
// It verifies:
//   - An error already prefixed with the package name is not prefixed twice
func TestDiagnosticsPackageErrorPrefix(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnostics(&buf, DiagnosticsOptions{NoColor: true})
	d.PackageError(2, 3, "rand", errors.New("rand: analysis artifact not found: /x"))
	assert.Contains(t, buf.String(), "[2/3]")
	assert.Contains(t, buf.String(), "rand: analysis artifact not found: /x")
	assert.NotContains(t, buf.String(), "rand: rand:")
}
