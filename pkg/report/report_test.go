package report

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/filtering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(name string, all, supported, feature int) Row {
	return Row{Package: name, Counts: filtering.Counts{All: all, Supported: supported, SupportedWithFeature: feature}}
}

// TestAppendCreatesHeader tests the behavior of Append on a new file.
//
// It verifies:
//   - The header is written exactly once
//   - Rows follow in append order
//   - Missing parent directories are created
func TestAppendCreatesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.csv")

	require.NoError(t, Append(path, row("a", 2, 1, 0)))
	require.NoError(t, Append(path, row("b", 0, 0, 0)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, constants.ReportHeader+"\na,2,1,0\nb,0,0,0\n", string(data))
}

// TestAppendToExistingReport tests appending to a report left by an earlier run.
//
// It verifies:
//   - Existing rows are kept and no second header is added
func TestAppendToExistingReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte(constants.ReportHeader+"\nold,1,1,1\n"), 0o644))

	require.NoError(t, Append(path, row("new", 3, 2, 1)))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "old", rows[0].Package)
	assert.Equal(t, "new", rows[1].Package)
}

// TestStartTruncatesReport tests Start on a report left by an earlier run.
//
// It verifies:
//   - Old rows are dropped and only the header remains
//   - Rows appended afterwards follow the single header
func TestStartTruncatesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte(constants.ReportHeader+"\nold,1,1,1\n"), 0o644))

	acc := NewAccumulator(path)
	require.NoError(t, acc.Start())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, constants.ReportHeader+"\n", string(data))

	require.NoError(t, acc.Append(row("new", 3, 2, 1)))
	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0].Package)
}

// TestStartCreatesDirectories tests Start on a path that does not exist yet.
//
// It verifies:
//   - Missing parent directories are created
//   - A directory in place of the report is an error
func TestStartCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "report.csv")

	require.NoError(t, Start(path))
	rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.Error(t, Start(dir))
}

// TestAppendQuotesNames tests CSV escaping of package names.
//
// It verifies:
//   - A name with a comma is quoted and survives a round trip
func TestAppendQuotesNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, Append(path, row("odd,name", 1, 0, 0)))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "odd,name", rows[0].Package)
}

// TestPartialReportIsValid tests that every prefix of a run is a valid report.
//
// It verifies:
//   - After each append, ReadRows returns exactly the rows written so far
func TestPartialReportIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	names := []string{"a", "b", "c", "d"}

	for i, name := range names {
		require.NoError(t, Append(path, row(name, i, i, 0)))

		rows, err := ReadRows(path)
		require.NoError(t, err)
		assert.Len(t, rows, i+1)
	}
}

// TestAccumulatorConcurrentAppends tests the one-writer discipline.
//
// It verifies:
//   - Concurrent appends through one Accumulator never interleave lines
func TestAccumulatorConcurrentAppends(t *testing.T) {
	acc := NewAccumulator(filepath.Join(t.TempDir(), "report.csv"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, acc.Append(row("crate", i, 0, 0)))
		}(i)
	}
	wg.Wait()

	rows, err := ReadRows(acc.Path())
	require.NoError(t, err)
	assert.Len(t, rows, 20)
}

// TestFinalize tests the behavior of Finalize.
//
// It verifies:
//   - The final report is a byte copy of the incremental report
//   - A prior final report is overwritten
//   - No temporary files are left behind
func TestFinalize(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "run.csv")
	finalPath := filepath.Join(dir, constants.DefaultFinalReport)

	require.NoError(t, os.WriteFile(finalPath, []byte("stale"), 0o644))
	require.NoError(t, Append(reportPath, row("a", 2, 1, 0)))

	require.NoError(t, Finalize(reportPath, finalPath))

	want, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	got, err := os.ReadFile(finalPath)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

// TestFinalizeEmptyBatch tests Finalize when no row was ever appended.
//
// It verifies:
//   - Both files end up as header-only reports
func TestFinalizeEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "run.csv")
	finalPath := filepath.Join(dir, "out", "final.csv")

	require.NoError(t, Finalize(reportPath, finalPath))

	for _, p := range []string{reportPath, finalPath} {
		rows, err := ReadRows(p)
		require.NoError(t, err)
		assert.Empty(t, rows)
	}
}

// TestFinalizeSamePath tests Finalize with identical paths.
//
// It verifies:
//   - The report is left untouched
func TestFinalizeSamePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.csv")
	require.NoError(t, Append(path, row("a", 1, 1, 1)))

	require.NoError(t, Finalize(path, path))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// TestReadRowsRejectsInvalid tests ReadRows on invalid files.
//
// It verifies:
//   - Empty files, wrong headers, short lines and bad counts are errors
func TestReadRowsRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"wrong header": "a,b,c,d\n",
		"short line":   constants.ReportHeader + "\nx,1,2\n",
		"bad count":    constants.ReportHeader + "\nx,1,two,3\n",
		"negative":     constants.ReportHeader + "\nx,1,-2,3\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "r.csv")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := ReadRows(path)
			assert.Error(t, err)
		})
	}

	_, err := ReadRows(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

// TestHeader tests the header helper.
//
// It verifies:
//   - Header fields match the published column names
func TestHeader(t *testing.T) {
	assert.Equal(t, []string{
		"Crate name",
		"Number of procedures",
		"Number of supported procedures",
		"Number of supported procedures using assertions",
	}, Header())
}
