package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/supportreport/pkg/utils"
)

// Column represents a table column with its properties.
//
// Fields:
//   - Header: The column header text
//   - Width: The current column width
//   - Right: Whether values are right-aligned (numbers)
type Column struct {
	Header string
	Width  int
	Right  bool
}

// Table renders aligned text tables.
//
// Widths start at the header width and grow as rows are measured with
// UpdateWidths. Measuring is optional; unmeasured cells simply overflow.
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates a new table with the default two-space separator.
func NewTable() *Table {
	return &Table{separator: "  "}
}

// WithSeparator sets a custom column separator.
func (t *Table) WithSeparator(sep string) *Table {
	t.separator = sep
	return t
}

// AddColumn adds a left-aligned column.
func (t *Table) AddColumn(header string) *Table {
	t.columns = append(t.columns, Column{Header: header, Width: utils.DisplayWidth(header)})
	return t
}

// AddNumericColumn adds a right-aligned column.
func (t *Table) AddNumericColumn(header string) *Table {
	t.columns = append(t.columns, Column{Header: header, Width: utils.DisplayWidth(header), Right: true})
	return t
}

// Columns returns a copy of the table columns.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// UpdateWidths grows column widths to fit the given row values.
//
// Extra values beyond the number of columns are ignored.
func (t *Table) UpdateWidths(values ...string) {
	for i, val := range values {
		if i >= len(t.columns) {
			break
		}
		if w := utils.DisplayWidth(val); w > t.columns[i].Width {
			t.columns[i].Width = w
		}
	}
}

// HeaderRow returns the formatted header row.
func (t *Table) HeaderRow() string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	return t.FormatRow(headers...)
}

// SeparatorRow returns a row of dashes matching the column widths.
func (t *Table) SeparatorRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = strings.Repeat("-", col.Width)
	}
	return strings.Join(parts, t.separator)
}

// FormatRow formats values according to column widths and alignment.
//
// Missing values render as empty cells. Trailing padding is trimmed.
func (t *Table) FormatRow(values ...string) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		if col.Right {
			parts[i] = utils.ToWidthRight(val, col.Width)
		} else {
			parts[i] = utils.ToWidth(val, col.Width)
		}
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// Fprint writes the header, separator and rows to w.
func (t *Table) Fprint(w io.Writer, rows [][]string) error {
	for _, row := range rows {
		t.UpdateWidths(row...)
	}
	if _, err := fmt.Fprintln(w, t.HeaderRow()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.SeparatorRow()); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, t.FormatRow(row...)); err != nil {
			return err
		}
	}
	return nil
}
