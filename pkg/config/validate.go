package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/verbose"
	"gopkg.in/yaml.v3"
)

// validKeys lists every accepted top-level key, used in unknown-key messages.
const validKeys = "crate_root, crates, blacklist, artifact_path, output_dir, report, final_report, feature, feature_requires_supported, dedupe_procedures, max_artifact_size"

// blankFeatureWarning is reported for a file whose feature key has no value.
const blankFeatureWarning = "feature is blank; counting " + constants.DefaultFeature + " instead"

// ValidationResult holds the results of configuration validation.
type ValidationResult struct {
	Errors   []*errors.ValidationError
	Warnings []string
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessages returns all error messages as a formatted string.
//
// Returns:
//   - string: multi-line message, or empty string if there are no errors
func (r *ValidationResult) ErrorMessages() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, "  - "+e.Error())
	}
	return "Configuration validation failed:\n" + strings.Join(msgs, "\n")
}

// Err converts the result into a ConfigError, or nil when valid.
//
// Parameters:
//   - source: config path or label to report
func (r *ValidationResult) Err(source string) error {
	if !r.HasErrors() {
		return nil
	}
	return errors.NewConfigError("config", source, fmt.Errorf("%s", r.ErrorMessages()))
}

func (r *ValidationResult) add(field, message, expected string) {
	r.Errors = append(r.Errors, &errors.ValidationError{Field: field, Message: message, Expected: expected})
}

// ValidateConfigFile validates YAML configuration data for syntax errors and unknown keys.
//
// It does not require the input paths to be present; a file may rely on
// flags for those. Use Config.Validate on the merged configuration.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *ValidationResult: validation result with any errors found
func ValidateConfigFile(data []byte) *ValidationResult {
	result := &ValidationResult{}

	cfg, err := loadConfigData(data)
	if err != nil {
		msg := err.Error()
		if field := extractUnknownField(msg); field != "" {
			result.add(field, "unknown field", "one of: "+validKeys)
		} else {
			result.add("yaml", msg, "")
		}
		verbose.Printf("Config validation FAILED: %v", err)
		return result
	}

	validateValues(cfg, result)
	if hasBlankFeature(data) {
		result.Warnings = append(result.Warnings, blankFeatureWarning)
	}
	return result
}

// Validate validates a merged Config before a run.
//
// Returns:
//   - *ValidationResult: validation result with any errors and warnings found
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	if c.CrateRoot == "" {
		result.add("crate_root", "is required", "directory holding one subdirectory per crate")
	}
	if c.Crates == "" {
		result.add("crates", "is required", "file with one crate name per line")
	}
	if c.Blacklist == "" {
		result.add("blacklist", "is required", "file with one fully-qualified identifier per line")
	}
	if c.FinalReport == "" {
		result.add("final_report", "is required", "path of the completed report")
	}
	validateValues(c, result)

	if len(result.Errors) == 0 {
		verbose.Printf("Config validation PASSED")
	} else {
		verbose.Printf("Config validation FAILED: %d errors found", len(result.Errors))
	}
	return result
}

// validateValues checks values that are wrong whenever they are present.
func validateValues(c *Config, result *ValidationResult) {
	if c.Feature != "" && strings.TrimSpace(c.Feature) != c.Feature {
		result.add("feature", "must not contain surrounding whitespace", "")
	}
	if c.ArtifactPath != "" {
		if filepath.IsAbs(c.ArtifactPath) {
			result.add("artifact_path", "must be relative to the crate directory", "e.g. source/prusti-filter-results.json")
		} else if hasParentRef(c.ArtifactPath) {
			result.add("artifact_path", "must not leave the crate directory", "a path without '..'")
		}
	}
	if c.MaxArtifactSize < 0 {
		result.add("max_artifact_size", "must not be negative", "size in bytes, 0 for the default")
	}
}

// hasBlankFeature reports whether data sets the feature key to an empty value.
//
// The merged Config cannot tell a blank key from an absent one, so the raw
// document is inspected.
func hasBlankFeature(data []byte) bool {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false
	}
	v, ok := raw["feature"]
	if !ok {
		return false
	}
	if v == nil {
		return true
	}
	s, isString := v.(string)
	return isString && s == ""
}

func hasParentRef(p string) bool {
	for _, part := range strings.Split(filepath.ToSlash(p), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

// extractUnknownField pulls the key out of a yaml.v3 KnownFields error such as
// "line 3: field crate_rot not found in type config.Config".
func extractUnknownField(errMsg string) string {
	const marker = "field "
	idx := strings.Index(errMsg, marker)
	if idx < 0 || !strings.Contains(errMsg, "not found in type") {
		return ""
	}
	rest := errMsg[idx+len(marker):]
	if end := strings.Index(rest, " "); end > 0 {
		return rest[:end]
	}
	return ""
}
