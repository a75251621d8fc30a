package errors

import "strings"

// ErrorHint pairs an error pattern with an actionable resolution.
//
// Fields:
//   - Pattern: Lowercase substring to match in error messages
//   - Hint: Brief description of the issue
//   - Resolution: Actionable suggestion for fixing the error
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommonErrorHints maps common error patterns to hints.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "blacklist",
		Hint:       "Blacklist file could not be read",
		Resolution: "Pass --blacklist or set 'blacklist' in .supportreport.yml",
	},
	{
		Pattern:    "package list",
		Hint:       "Package list could not be read",
		Resolution: "Pass --crates with a file holding one crate name per line",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check read permissions on inputs and write permissions on the report directory",
	},
	{
		Pattern:    "no space left",
		Hint:       "Disk is full",
		Resolution: "Free disk space; rows already written to the report remain valid",
	},
	{
		Pattern:    "not found in type",
		Hint:       "Configuration contains an unknown or invalid key",
		Resolution: "Run 'supportreport config --show-defaults' to list supported keys",
	},
}

// GetHint returns an actionable hint for the given error.
//
// It searches the error message for known patterns in CommonErrorHints
// and returns a formatted hint if one matches.
//
// Parameters:
//   - err: The error to get a hint for
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}
