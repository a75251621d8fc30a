package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/report"
)

// DiagnosticsOptions configures a Diagnostics stream.
//
// Fields:
//   - NoColor: Disable ANSI colors even on a terminal
//   - Quiet: Suppress per-package progress lines; errors are always written
type DiagnosticsOptions struct {
	NoColor bool
	Quiet   bool
}

// Diagnostics writes human-readable progress and per-package error lines.
//
// It is safe for concurrent use. Nothing written here is part of the report.
type Diagnostics struct {
	mu     sync.Mutex
	w      io.Writer
	quiet  bool
	errors int

	ok   *color.Color
	bad  *color.Color
	warn *color.Color
	dim  *color.Color
}

// NewDiagnostics creates a diagnostics stream on w; nil selects os.Stderr.
func NewDiagnostics(w io.Writer, opts DiagnosticsOptions) *Diagnostics {
	if w == nil {
		w = os.Stderr
	}
	d := &Diagnostics{
		w:     w,
		quiet: opts.Quiet,
		ok:    color.New(color.FgGreen),
		bad:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow),
		dim:   color.New(color.Faint),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{d.ok, d.bad, d.warn, d.dim} {
			c.DisableColor()
		}
	}
	return d
}

// Start announces the number of packages in the batch.
func (d *Diagnostics) Start(total int) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "%s %s\n", constants.IconInfo, d.dim.Sprintf("Processing %d package(s)", total))
}

// Progress reports a recorded package.
//
// Parameters:
//   - index: 1-based position in the batch
//   - total: Number of packages in the batch
//   - row: The row appended for the package
func (d *Diagnostics) Progress(index, total int, row report.Row) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "%s %s %s: procedures=%d supported=%d feature=%d\n",
		d.dim.Sprintf("[%d/%d]", index, total),
		constants.IconSuccess,
		d.ok.Sprint(row.Package),
		row.Counts.All, row.Counts.Supported, row.Counts.SupportedWithFeature)
}

// PackageError reports a package whose analysis could not be read.
//
// The line names the package and the error text, and is written even in
// quiet mode. A leading "pkg: " in the error text is not repeated.
func (d *Diagnostics) PackageError(index, total int, pkg string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors++
	fmt.Fprintf(d.w, "%s %s %s: %v\n",
		d.dim.Sprintf("[%d/%d]", index, total),
		constants.IconError,
		d.bad.Sprint(pkg),
		strings.TrimPrefix(err.Error(), pkg+": "))
}

// Done writes the closing line of a batch.
func (d *Diagnostics) Done(finalPath string) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.errors > 0 {
		fmt.Fprintf(d.w, "%s %s\n", constants.IconWarning,
			d.warn.Sprintf("Finished with %d package error(s); report written to %s", d.errors, finalPath))
		return
	}
	fmt.Fprintf(d.w, "%s %s\n", constants.IconSuccess, d.ok.Sprintf("Report written to %s", finalPath))
}
