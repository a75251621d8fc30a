package config

// mergeConfigs merges two configurations with custom taking precedence.
//
// A custom value wins when it is set: non-empty for strings, non-zero for
// sizes, non-nil for tri-state flags.
//
// Parameters:
//   - base: the base configuration
//   - custom: the custom configuration that overrides base
//
// Returns:
//   - *Config: the merged configuration (a new value; inputs are not modified)
func mergeConfigs(base, custom *Config) *Config {
	if custom == nil {
		return base
	}

	merged := *base
	merged.CrateRoot = mergeString(base.CrateRoot, custom.CrateRoot)
	merged.Crates = mergeString(base.Crates, custom.Crates)
	merged.Blacklist = mergeString(base.Blacklist, custom.Blacklist)
	merged.ArtifactPath = mergeString(base.ArtifactPath, custom.ArtifactPath)
	merged.OutputDir = mergeString(base.OutputDir, custom.OutputDir)
	merged.Report = mergeString(base.Report, custom.Report)
	merged.FinalReport = mergeString(base.FinalReport, custom.FinalReport)
	merged.Feature = mergeString(base.Feature, custom.Feature)
	merged.WorkingDir = mergeString(base.WorkingDir, custom.WorkingDir)
	merged.Source = mergeString(base.Source, custom.Source)

	if custom.FeatureRequiresSupported != nil {
		merged.FeatureRequiresSupported = BoolPtr(*custom.FeatureRequiresSupported)
	}
	if custom.DedupeProcedures != nil {
		merged.DedupeProcedures = BoolPtr(*custom.DedupeProcedures)
	}
	if custom.MaxArtifactSize != 0 {
		merged.MaxArtifactSize = custom.MaxArtifactSize
	}

	return &merged
}

func mergeString(base, custom string) string {
	if custom != "" {
		return custom
	}
	return base
}

// Override applies a layer of values on top of c, typically built from CLI flags.
//
// Parameters:
//   - layer: values to apply; unset fields leave c unchanged
//
// Returns:
//   - *Config: the merged configuration
func (c *Config) Override(layer *Config) *Config {
	return mergeConfigs(c, layer)
}
