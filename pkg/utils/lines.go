// Package utils holds small helpers shared by the report pipeline and its output.
package utils

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single line of a list file. Fully-qualified paths of
// generic items can be long; 1 MiB is far beyond anything seen in practice.
const maxLineSize = 1 << 20

// ReadLines reads a plain-text list file, one entry per line.
//
// It performs the following operations:
//   - Step 1: Opens the file
//   - Step 2: Trims surrounding whitespace from every line
//   - Step 3: Drops blank lines and lines starting with '#'
//
// The order of the remaining lines is preserved and duplicates are kept;
// callers decide whether they want set or sequence semantics.
//
// Parameters:
//   - path: Path of the list file
//
// Returns:
//   - []string: Entries in file order
//   - error: The open or read error, unwrapped
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ScanLines(f)
}

// ScanLines applies the ReadLines rules to an arbitrary reader.
func ScanLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
