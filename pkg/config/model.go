// Package config handles configuration loading, validation, and merging for supportreport.
// Configuration comes from an optional YAML file layered over embedded defaults, and
// CLI flags are applied on top by the cmd package.
package config

// Config is the root configuration structure.
//
// Relative paths are resolved against WorkingDir by Resolve.
type Config struct {
	// CrateRoot is the directory holding one subdirectory per package.
	CrateRoot string `yaml:"crate_root,omitempty"`

	// Crates is the package list file, one package name per line.
	Crates string `yaml:"crates,omitempty"`

	// Blacklist is the global blacklist file, one fully-qualified identifier per line.
	Blacklist string `yaml:"blacklist,omitempty"`

	// ArtifactPath locates the analysis artifact relative to a package directory.
	ArtifactPath string `yaml:"artifact_path,omitempty"`

	// OutputDir receives the incremental and final reports when their paths are not set.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Report is the incremental report path. Empty means a timestamped file in OutputDir.
	Report string `yaml:"report,omitempty"`

	// FinalReport is the stable path the completed report is copied to.
	FinalReport string `yaml:"final_report,omitempty"`

	// Feature is the interestingness tag counted in the last report column.
	Feature string `yaml:"feature,omitempty"`

	// FeatureRequiresSupported makes the feature count a subset of the supported
	// count by also requiring an empty restriction list. Default: false, which
	// counts every feature-tagged procedure that is not blacklisted.
	FeatureRequiresSupported *bool `yaml:"feature_requires_supported,omitempty"`

	// DedupeProcedures counts each fully-qualified path at most once. Default: false.
	DedupeProcedures *bool `yaml:"dedupe_procedures,omitempty"`

	// MaxArtifactSize caps a single artifact in bytes. 0 uses the built-in limit.
	MaxArtifactSize int64 `yaml:"max_artifact_size,omitempty"`

	// WorkingDir anchors relative paths. Not persisted.
	WorkingDir string `yaml:"-"`

	// Source records where the file layer came from. Not persisted.
	Source string `yaml:"-"`
}

// FeatureSubsetOfSupported returns the effective feature_requires_supported value.
func (c *Config) FeatureSubsetOfSupported() bool {
	return c.FeatureRequiresSupported != nil && *c.FeatureRequiresSupported
}

// Dedupe returns the effective dedupe_procedures value.
func (c *Config) Dedupe() bool {
	return c.DedupeProcedures != nil && *c.DedupeProcedures
}

// BoolPtr returns a pointer to b. Used to set tri-state config flags.
func BoolPtr(b bool) *bool {
	return &b
}
