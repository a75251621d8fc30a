// Package warnings writes non-fatal warnings to the diagnostic stream.
package warnings

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
	emitted    int
)

// Warnf writes a formatted warning message to the configured warning writer
// and counts it.
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	mu.Lock()
	w := warnWriter
	emitted++
	mu.Unlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// Count returns how many warnings were written since the last Reset.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return emitted
}

// Reset zeroes the warning counter.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	emitted = 0
}

// WarningWriter returns the currently configured warning writer.
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// Parameters:
//   - w: The new io.Writer to use; if nil, defaults to os.Stderr
//
// Returns:
//   - func(): A restore function that sets the writer back to the previous value
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	if w == nil {
		warnWriter = os.Stderr
	} else {
		warnWriter = w
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}
