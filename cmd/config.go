package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/supportreport/pkg/analysis"
	"github.com/ajxudir/supportreport/pkg/config"
	"github.com/ajxudir/supportreport/pkg/constants"
	"github.com/ajxudir/supportreport/pkg/errors"
	"github.com/ajxudir/supportreport/pkg/verbose"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configInitFlag          bool
	configValidateFlag      bool
	configSchemaFlag        bool
	configPathFlag          string
)

var (
	loadConfigFunc = config.LoadConfig
	writeFileFunc  = os.WriteFile
	readFileFunc   = config.ReadConfigFile
	getwdFunc      = os.Getwd
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
	Long:  `Show, validate, or create the .supportreport.yml configuration file.`,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show effective configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create "+constants.DefaultConfigFile+" template")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate configuration file (rejects unknown fields)")
	configCmd.Flags().BoolVar(&configSchemaFlag, "show-artifact-schema", false, "Show the JSON schema analysis artifacts must match")
	configCmd.Flags().StringVarP(&configPathFlag, "config", "c", "", "Config file path")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .supportreport.yml template file
//   - --validate: Validates the configuration file for schema errors
//   - --show-defaults: Displays the default configuration
//   - --show-effective: Displays the effective merged configuration
//   - --show-artifact-schema: Displays the analysis artifact JSON schema
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments
//
// Returns:
//   - error: Returns error on validation or file operation failure
func runConfig(cmd *cobra.Command, args []string) error {
	if configInitFlag {
		return createConfigTemplate()
	}

	if configValidateFlag {
		return validateConfigFile()
	}

	if configShowDefaultsFlag {
		fmt.Println("Default configuration:")
		fmt.Println()
		fmt.Println(config.GetDefaultConfig())
		return nil
	}

	if configShowEffectiveFlag {
		return showEffectiveConfig()
	}

	if configSchemaFlag {
		fmt.Print(string(analysis.Schema()))
		return nil
	}

	return cmd.Help()
}

// showEffectiveConfig prints the configuration a report run would use.
func showEffectiveConfig() error {
	workDir, err := getwdFunc()
	if err != nil {
		return errors.NewConfigError("working directory", "", err)
	}
	cfg, err := loadConfigFunc(configPathFlag, workDir)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	source := cfg.Source
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Println("Effective configuration:")
	fmt.Println()
	fmt.Printf("Source:            %s\n", source)
	fmt.Printf("Working Directory: %s\n", cfg.WorkingDir)
	fmt.Println()
	fmt.Print(string(data))

	if result := cfg.Validate(); result.HasErrors() {
		fmt.Println()
		for _, e := range result.Errors {
			fmt.Printf("  MISSING: %s\n", e.Error())
		}
	}
	return nil
}

// validateConfigFile validates the configuration file at the specified path.
//
// If no path is specified via --config flag, validates .supportreport.yml in the
// current working directory. Reports validation errors and warnings.
//
// Returns:
//   - error: Returns ConfigError on read or validation failure
func validateConfigFile() error {
	configPath := configPathFlag
	if configPath == "" {
		workDir, _ := getwdFunc()
		configPath = filepath.Join(workDir, constants.DefaultConfigFile)
	}

	data, err := readFileFunc(configPath)
	if err != nil {
		return errors.NewConfigError("config", configPath, err)
	}

	result := config.ValidateConfigFile(data)

	if result.HasErrors() {
		fmt.Printf("%s Configuration validation failed for: %s\n\n", constants.IconError, configPath)
		for _, e := range result.Errors {
			fmt.Printf("  ERROR: %s\n", e.Error())
		}
		if len(result.Warnings) > 0 {
			fmt.Println()
			for _, w := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", w)
			}
		}
		fmt.Println()
		fmt.Printf("%s Run 'supportreport config --show-defaults' to see every accepted key\n", constants.IconInfo)
		verbose.Infof("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, configPath)
		return result.Err(configPath)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("%s Configuration valid with warnings: %s\n\n", constants.IconWarning, configPath)
		for _, w := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", w)
		}
		fmt.Println()
	} else {
		fmt.Printf("%s Configuration valid: %s\n", constants.IconSuccess, configPath)
	}

	return nil
}

// createConfigTemplate creates a new .supportreport.yml template file.
//
// The template is created in the current directory. Fails if a config
// file already exists at that location.
//
// Returns:
//   - error: Returns error if file exists or cannot be created
func createConfigTemplate() error {
	workDir, _ := getwdFunc()
	configPath := filepath.Join(workDir, constants.DefaultConfigFile)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := writeFileFunc(configPath, []byte(config.GetTemplateConfig()), 0o644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created configuration template: %s\n", configPath)
	return nil
}
