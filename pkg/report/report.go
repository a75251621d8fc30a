// Package report maintains the CSV support report.
//
// The report is append-only while a batch runs: every row is written with a
// single write call and synced, so a batch killed after N packages leaves a
// parseable file with the header and exactly N rows. Finalize copies the
// report to its stable name when the batch completes.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/filtering"
)

// Row is one line of the report.
//
// Fields:
//   - Package: Package (crate) name
//   - Counts: The three support counts
//   - Status: constants.StatusRecorded or constants.StatusDegraded; not written to the file
type Row struct {
	Package string
	Counts  filtering.Counts
	Status  string
}

// Record returns the CSV fields of the row.
func (r Row) Record() []string {
	return []string{
		r.Package,
		strconv.Itoa(r.Counts.All),
		strconv.Itoa(r.Counts.Supported),
		strconv.Itoa(r.Counts.SupportedWithFeature),
	}
}

// Header returns the fixed report header fields.
func Header() []string {
	return strings.Split(constants.ReportHeader, ",")
}

// Accumulator appends rows to one report file, one writer at a time.
type Accumulator struct {
	mu   sync.Mutex
	path string
}

// NewAccumulator creates an accumulator for the report at path.
func NewAccumulator(path string) *Accumulator {
	return &Accumulator{path: path}
}

// Path returns the report path.
func (a *Accumulator) Path() string {
	return a.path
}

// Start resets the report to a header-only file, serialized with Append.
func (a *Accumulator) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Start(a.path)
}

// Append writes one row, serialized with other Append calls on a.
func (a *Accumulator) Append(row Row) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Append(a.path, row)
}

// Start creates or truncates the report so it holds only the header.
//
// A batch calls Start once before its first row, so rows left by an earlier
// run at the same path never leak into the new report.
//
// Parameters:
//   - reportPath: Incremental report path
//
// Returns:
//   - error: When the file cannot be created, written or synced
func Start(reportPath string) error {
	if err := os.MkdirAll(filepath.Dir(reportPath), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	f, err := os.OpenFile(reportPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(constants.ReportHeader + "\n"); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync report: %w", err)
	}
	return f.Close()
}

// Append writes one row to the report, creating it with the header if needed.
//
// It performs the following operations:
//   - Step 1: Opens the report in append mode, creating parent directories
//   - Step 2: Prepends the header when the file is empty
//   - Step 3: Writes the encoded line(s) with a single write and syncs
//
// Parameters:
//   - reportPath: Incremental report path
//   - row: Row to append
//
// Returns:
//   - error: When the file cannot be opened, written or synced
func Append(reportPath string, row Row) error {
	if err := os.MkdirAll(filepath.Dir(reportPath), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	f, err := os.OpenFile(reportPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat report: %w", err)
	}

	var buf bytes.Buffer
	if info.Size() == 0 {
		buf.WriteString(constants.ReportHeader + "\n")
	}
	w := csv.NewWriter(&buf)
	_ = w.Write(row.Record())
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode row for %s: %w", row.Package, err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append row for %s: %w", row.Package, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync report: %w", err)
	}
	return f.Close()
}

// Finalize copies the completed report to finalPath, replacing any prior report.
//
// The copy is written to a temporary file next to finalPath and renamed into
// place, so readers never see a half-written final report. A report that
// was never created (empty batch) is finalized as a header-only file.
//
// Parameters:
//   - reportPath: Incremental report path
//   - finalPath: Stable report path
//
// Returns:
//   - error: When the report cannot be read or the final file cannot be written
func Finalize(reportPath, finalPath string) error {
	data, err := os.ReadFile(reportPath)
	switch {
	case os.IsNotExist(err):
		data = []byte(constants.ReportHeader + "\n")
		if err := writeFileAtomic(reportPath, data); err != nil {
			return fmt.Errorf("create empty report: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read report: %w", err)
	}

	if same, _ := samePath(reportPath, finalPath); same {
		return nil
	}
	if err := writeFileAtomic(finalPath, data); err != nil {
		return fmt.Errorf("write final report: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

// ReadRows parses a report file.
//
// The header must match exactly; every following line must have four fields
// with non-negative integer counts. Status is left empty because the file
// does not record it.
//
// Parameters:
//   - path: Report path
//
// Returns:
//   - []Row: Rows in file order
//   - error: When the file cannot be read or is not a valid report
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = constants.ReportColumns
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse report %s: missing header", path)
	}
	if strings.Join(records[0], ",") != constants.ReportHeader {
		return nil, fmt.Errorf("parse report %s: unexpected header %q", path, strings.Join(records[0], ","))
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		counts := make([]int, 3)
		for j := range counts {
			n, err := strconv.Atoi(rec[j+1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("parse report %s: line %d: invalid count %q", path, i+2, rec[j+1])
			}
			counts[j] = n
		}
		rows = append(rows, Row{
			Package: rec[0],
			Counts:  filtering.Counts{All: counts[0], Supported: counts[1], SupportedWithFeature: counts[2]},
		})
	}
	return rows, nil
}
