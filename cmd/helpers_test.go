package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ajxudir/supportreport/pkg/testutil"
	"github.com/ajxudir/supportreport/pkg/verbose"
)

// resetFlags restores every command flag variable to its default.
func resetFlags() {
	verboseFlag = false
	versionFlag = false
	skipBuildChecksFlag = true

	configShowDefaultsFlag = false
	configShowEffectiveFlag = false
	configInitFlag = false
	configValidateFlag = false
	configSchemaFlag = false
	configPathFlag = ""

	reportCratesFlag = ""
	reportCrateRootFlag = ""
	reportBlacklistFlag = ""
	reportArtifactFlag = ""
	reportOutputDirFlag = ""
	reportPathFlag = ""
	reportFinalFlag = ""
	reportConfigFlag = ""
	reportOutputFlag = "table"
	reportFeatureFlag = ""
	reportFeatureRequiresSupportedFlag = false
	reportDedupeFlag = false
	reportNoColorFlag = false
	reportQuietFlag = false
}

// useWorkDir points the commands at dir and restores all globals on cleanup.
func useWorkDir(t *testing.T, dir string) {
	t.Helper()

	oldGetwd := getwdFunc
	oldNow := nowFunc
	oldRunBatch := runBatchFunc
	oldLoadConfig := loadConfigFunc
	oldWriteFile := writeFileFunc
	oldReadFile := readFileFunc

	resetFlags()
	getwdFunc = func() (string, error) { return dir, nil }
	nowFunc = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	t.Cleanup(func() {
		getwdFunc = oldGetwd
		nowFunc = oldNow
		runBatchFunc = oldRunBatch
		loadConfigFunc = oldLoadConfig
		writeFileFunc = oldWriteFile
		readFileFunc = oldReadFile
		resetFlags()
		rootCmd.SetArgs(nil)
		verbose.Disable()
	})
}

// reportWorkspace creates crates a (a,2,1,0) and d (one feature procedure),
// a crate list naming a, b (missing) and d, and a blacklist.
func reportWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "crates")
	require.NoError(t, os.MkdirAll(root, 0o755))

	testutil.WriteCrate(t, root, "a",
		testutil.NewProcedure("a::f1"),
		testutil.NewProcedure("a::f2").Restricted("uses unsafe"),
	)
	testutil.WriteCrate(t, root, "d",
		testutil.NewProcedure("d::checked").Tagged("uses_assertions"),
		testutil.NewProcedure("d::raw").Restricted("raw pointers").Tagged("uses_assertions"),
	)
	testutil.WriteList(t, dir, "crates.txt", "a", "b", "d")
	testutil.WriteList(t, dir, "blacklist.txt", "d::unused")

	useWorkDir(t, dir)
	return dir
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
