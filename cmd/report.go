package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ajxudir/supportreport/pkg/batch"
	"github.com/ajxudir/supportreport/pkg/config"
	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/output"
	"github.com/ajxudir/supportreport/pkg/preflight"
	"github.com/ajxudir/supportreport/pkg/verbose"
	"github.com/ajxudir/supportreport/pkg/warnings"
)

var (
	reportCratesFlag                   string
	reportCrateRootFlag                string
	reportBlacklistFlag                string
	reportArtifactFlag                 string
	reportOutputDirFlag                string
	reportPathFlag                     string
	reportFinalFlag                    string
	reportConfigFlag                   string
	reportOutputFlag                   string
	reportFeatureFlag                  string
	reportFeatureRequiresSupportedFlag bool
	reportDedupeFlag                   bool
	reportNoColorFlag                  bool
	reportQuietFlag                    bool
)

var (
	nowFunc      = time.Now
	runBatchFunc = batch.Run
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the per-crate support report",
	Long: `Read the analysis artifact of every crate in the crate list, subtract the
blacklist, and append one CSV row per crate to the incremental report. The
completed report is copied to the final report path.

Crates whose artifact is missing or malformed are recorded with zero counts;
the run continues and still exits 0.`,
	Example: `  supportreport report -l crates.txt -r ./crates -b blacklist.txt
  supportreport report -c .supportreport.yml --output json`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportCratesFlag, "crates", "l", "", "Crate list file, one name per line")
	reportCmd.Flags().StringVarP(&reportCrateRootFlag, "crate-root", "r", "", "Directory holding one subdirectory per crate")
	reportCmd.Flags().StringVarP(&reportBlacklistFlag, "blacklist", "b", "", "Blacklist file, one fully-qualified identifier per line")
	reportCmd.Flags().StringVar(&reportArtifactFlag, "artifact-path", "", "Artifact path inside each crate directory")
	reportCmd.Flags().StringVar(&reportOutputDirFlag, "output-dir", "", "Directory for reports whose path is not set")
	reportCmd.Flags().StringVar(&reportPathFlag, "report", "", "Incremental report path (default: timestamped file in the output dir)")
	reportCmd.Flags().StringVar(&reportFinalFlag, "final", "", "Final report path")
	reportCmd.Flags().StringVarP(&reportConfigFlag, "config", "c", "", "Config file path")
	reportCmd.Flags().StringVarP(&reportOutputFlag, "output", "o", "table", "Summary format: table, csv, json, none")
	reportCmd.Flags().StringVar(&reportFeatureFlag, "feature", "", "Interestingness tag counted in the last column")
	reportCmd.Flags().BoolVar(&reportFeatureRequiresSupportedFlag, "feature-requires-supported", false, "Only count feature procedures that are also supported")
	reportCmd.Flags().BoolVar(&reportDedupeFlag, "dedupe", false, "Count each procedure path once")
	reportCmd.Flags().BoolVar(&reportNoColorFlag, "no-color", false, "Disable colored diagnostics")
	reportCmd.Flags().BoolVarP(&reportQuietFlag, "quiet", "q", false, "Only print errors and warnings on stderr")
}

// runReport executes the report command.
//
// It performs the following operations:
//   - Step 1: Loads config and applies command-line flags on top
//   - Step 2: Validates the merged config, resolves paths and checks the inputs exist
//   - Step 3: Reads the crate list
//   - Step 4: Runs the batch, writing diagnostics to stderr
//   - Step 5: Prints the summary to stdout
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments (unused)
//
// Returns:
//   - error: ConfigError for configuration problems, ExitError for report I/O failures
func runReport(cmd *cobra.Command, args []string) error {
	restoreWarnings := warnings.SetWarningWriter(cmd.ErrOrStderr())
	defer restoreWarnings()
	warnings.Reset()

	cfg, err := loadReportConfig(cmd)
	if err != nil {
		return err
	}

	if err := preflight.ValidateInputs(cfg).Err(); err != nil {
		return err
	}

	reportPath, finalPath := cfg.ReportPaths(nowFunc())
	verbose.Printf("Incremental report: %s", reportPath)
	verbose.Printf("Final report: %s", finalPath)

	names, err := batch.ReadPackageList(cfg.Crates)
	if err != nil {
		return err
	}
	for _, w := range preflight.ValidatePackages(names, cfg.CrateRoot).Warnings {
		warnings.Warnf("%s %s\n", constants.IconWarning, w)
	}

	if reportNoColorFlag {
		color.NoColor = true
	}
	diag := output.NewDiagnostics(cmd.ErrOrStderr(), output.DiagnosticsOptions{
		NoColor: reportNoColorFlag,
		Quiet:   reportQuietFlag,
	})

	result, err := runBatchFunc(names, batch.OptionsFromConfig(cfg, reportPath, finalPath, diag))
	if err != nil {
		return err
	}

	summary := result.Summary(cfg.Feature)
	summary.Summary.Warnings = warnings.Count()

	format := output.ParseFormat(reportOutputFlag)
	if err := output.WriteRunResult(cmd.OutOrStdout(), format, summary); err != nil {
		return errors.NewExitError(errors.ExitFailure, fmt.Errorf("write summary: %w", err))
	}
	return nil
}

// loadReportConfig loads, overrides, validates and resolves the run configuration.
//
// Returns:
//   - *config.Config: Configuration with paths anchored at the working directory
//   - error: *errors.ConfigError when loading or validation fails
func loadReportConfig(cmd *cobra.Command) (*config.Config, error) {
	workDir, err := getwdFunc()
	if err != nil {
		return nil, errors.NewConfigError("working directory", "", err)
	}

	cfg, err := loadConfigFunc(reportConfigFlag, workDir)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Override(reportFlagLayer(cmd))

	source := cfg.Source
	if source == "" {
		source = "command line"
	}
	if err := cfg.Validate().Err(source); err != nil {
		return nil, err
	}
	return cfg.Resolve(), nil
}

// reportFlagLayer collects the flags that were set into a config layer.
//
// Boolean flags only apply when given explicitly so a config file value is
// not overwritten by a flag default.
func reportFlagLayer(cmd *cobra.Command) *config.Config {
	layer := &config.Config{
		CrateRoot:    reportCrateRootFlag,
		Crates:       reportCratesFlag,
		Blacklist:    reportBlacklistFlag,
		ArtifactPath: reportArtifactFlag,
		OutputDir:    reportOutputDirFlag,
		Report:       reportPathFlag,
		FinalReport:  reportFinalFlag,
		Feature:      reportFeatureFlag,
	}
	if cmd != nil && cmd.Flags().Changed("feature-requires-supported") {
		layer.FeatureRequiresSupported = config.BoolPtr(reportFeatureRequiresSupportedFlag)
	}
	if cmd != nil && cmd.Flags().Changed("dedupe") {
		layer.DedupeProcedures = config.BoolPtr(reportDedupeFlag)
	}
	return layer
}
