package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/supportreport/pkg/analysis"
	"github.com/ajxudir/supportreport/pkg/config"
	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/testutil"
)

// TestConfigShowDefaults tests the behavior of config --show-defaults.
//
// It verifies:
//   - The embedded defaults are printed
func TestConfigShowDefaults(t *testing.T) {
	useWorkDir(t, t.TempDir())
	configShowDefaultsFlag = true

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = runConfig(configCmd, nil)
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Default configuration:")
	assert.Contains(t, out, config.GetDefaultConfig())
}

// TestConfigShowEffective tests the behavior of config --show-effective.
//
// It verifies:
//   - The merged configuration is rendered as YAML with its source
//   - Missing required inputs are listed
func TestConfigShowEffective(t *testing.T) {
	dir := t.TempDir()
	useWorkDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.DefaultConfigFile),
		[]byte("crate_root: ./crates\n"), 0o644))
	configShowEffectiveFlag = true

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = runConfig(configCmd, nil)
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Effective configuration:")
	assert.Contains(t, out, "crate_root: ./crates")
	assert.Contains(t, out, "feature: uses_assertions")
	assert.Contains(t, out, filepath.Join(dir, constants.DefaultConfigFile))
	assert.Contains(t, out, "MISSING: crates: is required")
}

// TestConfigShowEffectiveLoadError tests config --show-effective with a broken file.
//
// It verifies:
//   - Load errors are returned as ConfigErrors
func TestConfigShowEffectiveLoadError(t *testing.T) {
	dir := t.TempDir()
	useWorkDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.DefaultConfigFile),
		[]byte("crate_rot: ./crates\n"), 0o644))
	configShowEffectiveFlag = true

	err := runConfig(configCmd, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
}

// TestConfigInit tests the behavior of config --init.
//
// It verifies:
//   - The template is written to the working directory
//   - A second run refuses to overwrite it
//   - Write failures are reported
func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	useWorkDir(t, dir)
	configInitFlag = true

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = runConfig(configCmd, nil)
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Created configuration template")

	path := filepath.Join(dir, constants.DefaultConfigFile)
	assert.Equal(t, config.GetTemplateConfig(), readString(t, path))

	err = runConfig(configCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.Remove(path))
	writeFileFunc = func(string, []byte, os.FileMode) error { return os.ErrPermission }
	err = runConfig(configCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config file")
}

// TestConfigValidate tests the behavior of config --validate.
//
// It verifies:
//   - A valid file passes
//   - Unknown keys fail with exit code 3 and name the key
//   - A missing file is a ConfigError
//   - Without --config the working directory file is used
func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	useWorkDir(t, dir)
	configValidateFlag = true

	good := filepath.Join(dir, "good.yml")
	require.NoError(t, os.WriteFile(good, []byte("crate_root: ./crates\ndedupe_procedures: true\n"), 0o644))
	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("crate_root: ./crates\nblaclist: x\n"), 0o644))

	t.Run("valid", func(t *testing.T) {
		configPathFlag = good
		var err error
		out := testutil.CaptureStdout(t, func() { err = runConfig(configCmd, nil) })
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration valid: "+good)
	})

	t.Run("unknown key", func(t *testing.T) {
		configPathFlag = bad
		var err error
		out := testutil.CaptureStdout(t, func() { err = runConfig(configCmd, nil) })
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, out, "ERROR: blaclist: unknown field")
	})

	t.Run("missing file", func(t *testing.T) {
		configPathFlag = filepath.Join(dir, "absent.yml")
		err := runConfig(configCmd, nil)
		require.Error(t, err)
		assert.True(t, errors.IsConfigError(err))
	})

	t.Run("default location", func(t *testing.T) {
		configPathFlag = ""
		require.NoError(t, os.WriteFile(filepath.Join(dir, constants.DefaultConfigFile), []byte("feature: uses_loops\n"), 0o644))
		var err error
		out := testutil.CaptureStdout(t, func() { err = runConfig(configCmd, nil) })
		require.NoError(t, err)
		assert.Contains(t, out, constants.DefaultConfigFile)
	})
}

// TestConfigNoFlags tests the behavior of config without flags.
//
// It verifies:
//   - Help is shown and no error is returned
func TestConfigNoFlags(t *testing.T) {
	useWorkDir(t, t.TempDir())
	out := testutil.CaptureStdout(t, func() {
		configCmd.SetOut(os.Stdout)
		defer configCmd.SetOut(nil)
		assert.NoError(t, runConfig(configCmd, nil))
	})
	assert.Contains(t, out, "--show-defaults")
}

// TestConfigShowArtifactSchema tests the behavior of config --show-artifact-schema.
//
// It verifies:
//   - The embedded artifact schema is printed
func TestConfigShowArtifactSchema(t *testing.T) {
	useWorkDir(t, t.TempDir())
	configSchemaFlag = true

	var err error
	out := testutil.CaptureStdout(t, func() {
		err = runConfig(configCmd, nil)
	})
	require.NoError(t, err)
	assert.Equal(t, string(analysis.Schema()), out)
	assert.Contains(t, out, "node_path")
}
