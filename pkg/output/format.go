// Package output formats run results for the terminal and for machines, and
// writes progress and error lines to the diagnostic stream.
package output

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
)

// Format represents the summary output format.
type Format string

const (
	// FormatTable is the default terminal table output.
	FormatTable Format = "table"
	// FormatCSV outputs the summary as comma-separated values.
	FormatCSV Format = "csv"
	// FormatJSON outputs the summary as JSON.
	FormatJSON Format = "json"
	// FormatNone suppresses the summary.
	FormatNone Format = "none"
)

// ParseFormat parses a format string into a Format type.
//
// The parsing is case-insensitive. Unrecognized values return FormatTable.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV
	case "json":
		return FormatJSON
	case "none":
		return FormatNone
	default:
		return FormatTable
	}
}

// Formatter handles writing data in a specific format.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new formatter for the given format and writer.
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{format: format, writer: writer}
}

// Format returns the current format.
func (f *Formatter) Format() Format {
	return f.format
}

// WriteCSV writes a header and rows as CSV.
//
// csv.Writer buffers all writes and only reports errors after Flush.
func (f *Formatter) WriteCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)

	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}

	w.Flush()
	return w.Error()
}

// WriteJSON writes data as indented JSON followed by a newline.
func (f *Formatter) WriteJSON(data any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
