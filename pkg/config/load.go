package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/verbose"
	"github.com/ajxudir/supportreport/pkg/warnings"
	"gopkg.in/yaml.v3"
)

// DefaultMaxConfigFileSize is the largest config file accepted (1 MiB).
const DefaultMaxConfigFileSize int64 = 1 << 20

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for .supportreport.yml in the working directory.
// The file layer is merged over the embedded defaults, so a partial file
// is enough.
//
// Parameters:
//   - configPath: path to the config file, or empty to look it up
//   - workDir: working directory used for lookup and relative paths
//
// Returns:
//   - *Config: the merged configuration (not yet validated for required paths)
//   - error: *errors.ConfigError when the file cannot be read or has unknown keys
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := loadDefaultConfig()

	path := configPath
	if path == "" {
		local := filepath.Join(workDir, constants.DefaultConfigFile)
		if _, err := os.Stat(local); err == nil {
			verbose.Infof("Found local config: %s", local)
			path = local
		}
	}

	if path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return nil, errors.NewConfigError("config", path, err)
		}
		loaded.Source = path
		cfg = mergeConfigs(cfg, loaded)
		verbose.ConfigLoaded(path)
	} else {
		verbose.ConfigLoaded("built-in defaults")
	}

	if workDir != "" {
		cfg.WorkingDir = workDir
	} else if cfg.WorkingDir == "" {
		cfg.WorkingDir = "."
	}

	return cfg, nil
}

// loadConfigFileWithLimit loads a config file with a size limit.
//
// Unknown keys are rejected so typos surface instead of silently falling
// back to defaults. A blank feature is accepted with a warning.
//
// Parameters:
//   - path: path to the config file
//   - maxSize: maximum allowed file size in bytes
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if file is too large, not found, or has invalid YAML
func loadConfigFileWithLimit(path string, maxSize int64) (*Config, error) {
	data, err := readLimited(path, maxSize)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfigData(data)
	if err != nil {
		return nil, err
	}
	if hasBlankFeature(data) {
		warnings.Warnf("%s %s: %s\n", constants.IconWarning, path, blankFeatureWarning)
	}
	return cfg, nil
}

// loadConfigFile loads a config file with the default size limit.
func loadConfigFile(path string) (*Config, error) {
	return loadConfigFileWithLimit(path, DefaultMaxConfigFileSize)
}

// loadConfigData parses YAML configuration data strictly.
//
// An empty document yields an empty Config.
func loadConfigData(data []byte) (*Config, error) {
	var cfg Config

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if stderrors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	return &cfg, nil
}

// ReadConfigFile reads a config file, refusing files over DefaultMaxConfigFileSize.
func ReadConfigFile(path string) ([]byte, error) {
	return readLimited(path, DefaultMaxConfigFileSize)
}

func readLimited(path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), maxSize)
	}
	return os.ReadFile(path)
}
