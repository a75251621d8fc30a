package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTable tests the behavior of NewTable.
//
// It verifies:
//   - Creates table with zero columns and default separator
func TestNewTable(t *testing.T) {
	table := NewTable()
	require.NotNil(t, table)
	assert.Empty(t, table.Columns())
	assert.Equal(t, "  ", table.separator)
}

// TestTableAddColumn tests the behavior of AddColumn and AddNumericColumn.
//
// It verifies:
//   - Columns start at header width
//   - Numeric columns are right-aligned
//   - Chain returns same table instance
func TestTableAddColumn(t *testing.T) {
	table := NewTable().AddColumn("CRATE").AddNumericColumn("SUPPORTED")
	cols := table.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, 5, cols[0].Width)
	assert.False(t, cols[0].Right)
	assert.Equal(t, 9, cols[1].Width)
	assert.True(t, cols[1].Right)

	same := table.AddColumn("X")
	assert.Same(t, table, same)
}

// TestTableFormatRow tests the behavior of FormatRow.
//
// It verifies:
//   - Left columns pad on the right and numeric columns pad on the left
//   - Missing values render as empty cells
//   - Trailing padding is trimmed
func TestTableFormatRow(t *testing.T) {
	table := NewTable().AddColumn("NAME").AddNumericColumn("COUNT")
	table.UpdateWidths("serde", "1,234")

	assert.Equal(t, "serde  1,234", table.FormatRow("serde", "1,234"))
	assert.Equal(t, "a          7", table.FormatRow("a", "7"))
	assert.Equal(t, "a", table.FormatRow("a"))
}

// TestTableUpdateWidths tests the behavior of UpdateWidths.
//
// It verifies:
//   - Widths only grow
//   - Extra values are ignored
func TestTableUpdateWidths(t *testing.T) {
	table := NewTable().AddColumn("NAME")
	table.UpdateWidths("a-much-longer-name", "ignored")
	table.UpdateWidths("x")
	assert.Equal(t, 18, table.Columns()[0].Width)
}

// TestTableFprint tests the behavior of Fprint.
//
// It verifies:
//   - Writes header, separator and one line per row
//   - Separator matches measured widths
func TestTableFprint(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable().WithSeparator(" | ").AddColumn("A").AddNumericColumn("B")
	require.NoError(t, table.Fprint(&buf, [][]string{{"xyz", "1"}, {"q", "22"}}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A   |  B", lines[0])
	assert.Equal(t, "--- | --", lines[1])
	assert.Equal(t, "xyz |  1", lines[2])
	assert.Equal(t, "q   | 22", lines[3])
}
