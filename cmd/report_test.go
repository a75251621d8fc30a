package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/supportreport/pkg/batch"
	"github.com/ajxudir/supportreport/pkg/config"
	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/testutil"
)

// TestReportCommandEndToEnd tests the report command through the root command.
//
// It verifies:
//   - One row per listed crate lands in the final report, in list order
//   - A missing crate is recorded with zero counts and reported on stderr
//   - The JSON summary goes to stdout
//   - The explicit incremental report path is used
//   - The missing crate directory is warned about and counted in the summary
func TestReportCommandEndToEnd(t *testing.T) {
	dir := reportWorkspace(t)

	rootCmd.SetArgs([]string{"report", "--skip-build-checks",
		"-l", "crates.txt", "-r", "crates", "-b", "blacklist.txt",
		"--report", "run.csv", "--no-color", "-o", "json"})

	var err error
	stdout, stderr := testutil.CaptureOutput(t, func() {
		err = ExecuteTest()
	})
	require.NoError(t, err)

	want := constants.ReportHeader + "\na,2,1,0\nb,0,0,0\nd,2,1,2\n"
	assert.Equal(t, want, readString(t, filepath.Join(dir, "supported-procedures.csv")))
	assert.Equal(t, want, readString(t, filepath.Join(dir, "run.csv")))

	assert.Contains(t, stderr, "b: analysis artifact not found")
	assert.Contains(t, stderr, "a: procedures=2 supported=1 feature=0")
	assert.Contains(t, stderr, "crate 'b' has no directory")

	var doc struct {
		Summary struct {
			Requested int `json:"requested"`
			Degraded  int `json:"degraded"`
			Warnings  int `json:"warnings"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, 3, doc.Summary.Requested)
	assert.Equal(t, 1, doc.Summary.Degraded)
	assert.Equal(t, 1, doc.Summary.Warnings)
}

// TestReportCommandFlagsOverrideConfig tests config file loading and flag precedence.
//
// It verifies:
//   - Inputs come from .supportreport.yml when flags are absent
//   - feature_requires_supported from the file changes the feature column
//   - The incremental report defaults to a timestamped file in output_dir
//   - A --final flag wins over final_report in the file
func TestReportCommandFlagsOverrideConfig(t *testing.T) {
	dir := reportWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.DefaultConfigFile), []byte(
		"crate_root: crates\ncrates: crates.txt\nblacklist: blacklist.txt\noutput_dir: out\n"+
			"final_report: from-config.csv\nfeature_requires_supported: true\n"), 0o644))

	reportFinalFlag = "from-flag.csv"
	reportOutputFlag = "none"
	reportQuietFlag = true

	var err error
	stdout, _ := testutil.CaptureOutput(t, func() {
		err = runReport(reportCmd, nil)
	})
	require.NoError(t, err)
	assert.Empty(t, stdout)

	final := readString(t, filepath.Join(dir, "out", "from-flag.csv"))
	assert.Contains(t, final, "d,2,1,1\n")
	assert.NoFileExists(t, filepath.Join(dir, "out", "from-config.csv"))
	assert.FileExists(t, filepath.Join(dir, "out", "supported-procedures-20260102-030405.csv"))
}

// TestReportCommandConfigErrors tests configuration failures.
//
// It verifies:
//   - Missing required inputs fail validation with exit code 3
//   - An unreadable crate list is a ConfigError
//   - An unreadable blacklist is a ConfigError and no report is written
func TestReportCommandConfigErrors(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		useWorkDir(t, t.TempDir())
		err := runReport(reportCmd, nil)
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "crate_root")
	})

	t.Run("missing crate list", func(t *testing.T) {
		reportWorkspace(t)
		reportCratesFlag = "absent.txt"
		reportCrateRootFlag = "crates"
		reportBlacklistFlag = "blacklist.txt"

		err := runReport(reportCmd, nil)
		require.Error(t, err)
		assert.True(t, errors.IsConfigError(err))
		assert.Contains(t, err.Error(), "package list")
	})

	t.Run("missing blacklist", func(t *testing.T) {
		dir := reportWorkspace(t)
		reportCratesFlag = "crates.txt"
		reportCrateRootFlag = "crates"
		reportBlacklistFlag = "absent.txt"
		reportQuietFlag = true

		err := runReport(reportCmd, nil)
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.NoFileExists(t, filepath.Join(dir, "supported-procedures.csv"))
	})
}

// TestReportCommandBatchFailure tests report I/O failures from the batch.
//
// It verifies:
//   - A batch ExitError propagates with exit code 2
func TestReportCommandBatchFailure(t *testing.T) {
	reportWorkspace(t)
	reportCratesFlag = "crates.txt"
	reportCrateRootFlag = "crates"
	reportBlacklistFlag = "blacklist.txt"

	runBatchFunc = func(names []string, opts batch.Options) (*batch.Result, error) {
		return &batch.Result{State: batch.Running}, errors.NewExitError(errors.ExitFailure, os.ErrPermission)
	}

	err := runReport(reportCmd, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
}

// TestReportCommandPassesOptions tests the options handed to the batch.
//
// It verifies:
//   - Paths are anchored at the working directory
//   - Feature and dedupe settings reach the filter options
func TestReportCommandPassesOptions(t *testing.T) {
	dir := reportWorkspace(t)
	reportCratesFlag = "crates.txt"
	reportCrateRootFlag = "crates"
	reportBlacklistFlag = "blacklist.txt"
	reportFeatureFlag = "uses_loops"
	reportOutputFlag = "none"

	var got batch.Options
	var gotNames []string
	runBatchFunc = func(names []string, opts batch.Options) (*batch.Result, error) {
		gotNames, got = names, opts
		return &batch.Result{State: batch.Finalized}, nil
	}

	require.NoError(t, runReport(reportCmd, nil))
	assert.Equal(t, []string{"a", "b", "d"}, gotNames)
	assert.Equal(t, filepath.Join(dir, "crates"), got.CrateRoot)
	assert.Equal(t, filepath.Join(dir, "blacklist.txt"), got.BlacklistPath)
	assert.Equal(t, filepath.Join(dir, "supported-procedures.csv"), got.FinalPath)
	assert.Equal(t, "uses_loops", got.Filter.Feature)
	assert.False(t, got.Filter.Dedupe)
	assert.NotNil(t, got.Diagnostics)
}

// TestReportFlagLayer tests the behavior of reportFlagLayer.
//
// It verifies:
//   - String flags are copied as given
//   - Boolean flags are only set when changed on the command line
func TestReportFlagLayer(t *testing.T) {
	useWorkDir(t, t.TempDir())
	reportCratesFlag = "list.txt"
	reportDedupeFlag = true

	fresh := &cobra.Command{Use: "report"}
	fresh.Flags().BoolVar(&reportDedupeFlag, "dedupe", true, "")
	fresh.Flags().BoolVar(&reportFeatureRequiresSupportedFlag, "feature-requires-supported", false, "")

	layer := reportFlagLayer(fresh)
	assert.Equal(t, "list.txt", layer.Crates)
	assert.Nil(t, layer.DedupeProcedures)
	assert.Nil(t, layer.FeatureRequiresSupported)

	require.NoError(t, fresh.Flags().Set("feature-requires-supported", "true"))
	layer = reportFlagLayer(fresh)
	assert.Equal(t, config.BoolPtr(true), layer.FeatureRequiresSupported)

	assert.Nil(t, reportFlagLayer(nil).DedupeProcedures)
}
