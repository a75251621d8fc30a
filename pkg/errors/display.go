package errors

import (
	"errors"
	"fmt"
	"io"
)

// PrintErrorWithHints prints errors with actionable hints to the writer.
//
// Output format:
//
//	Error: <error message>
//	  Hint: <actionable hint if available>
//
// In verbose mode ParseError details (schema violations) are listed too.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - errs: Slice of errors to display
//   - verbose: If true, includes additional details
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		printSingleError(w, err, verbose)
	}
}

func printSingleError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", err)

	var pe *ParseError
	if verbose && errors.As(err, &pe) {
		for _, d := range pe.Details {
			_, _ = fmt.Fprintf(w, "  - %s\n", d)
		}
	}

	if hint := GetHint(err); hint != "" {
		_, _ = fmt.Fprintf(w, "  Hint: %s\n", hint)
	}
}
