// Package verbose provides debug logging for report runs.
package verbose

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu         sync.RWMutex
	enabled    bool
	suppressed int
	writer     io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and clears any pending suppression.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	suppressed = 0
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// Suppress temporarily silences debug output. Calls nest; each Suppress
// must be paired with Unsuppress.
func Suppress() {
	mu.Lock()
	defer mu.Unlock()
	suppressed++
}

// Unsuppress undoes one Suppress call.
func Unsuppress() {
	mu.Lock()
	defer mu.Unlock()
	if suppressed > 0 {
		suppressed--
	}
}

// active returns the writer when messages should be printed, or nil.
func active() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled || suppressed > 0 {
		return nil
	}
	return writer
}

// Printf prints a formatted verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if w := active(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
func Info(msg string) {
	if w := active(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", msg)
	}
}

// Infof prints a formatted informational verbose message if enabled.
func Infof(format string, args ...any) {
	Printf(format, args...)
}

// ConfigLoaded logs which configuration source was used.
//
// Parameters:
//   - source: Path of the config file, or "built-in defaults"
func ConfigLoaded(source string) {
	if w := active(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] Config loaded: %s\n", source)
	}
}

// PackageCounted logs the counts computed for one package.
//
// Parameters:
//   - name: Package name
//   - all: Number of procedures
//   - supported: Number of supported procedures
//   - feature: Number of supported procedures using the feature of interest
func PackageCounted(name string, all, supported, feature int) {
	if w := active(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] Package '%s' counted: procedures=%d supported=%d feature=%d\n", name, all, supported, feature)
	}
}
