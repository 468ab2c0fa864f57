package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/cleaner"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/processor"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/pkg/logger"
)

var (
	// Version information
	Version = "1.0.0"

	// Global flags
	cfgFile      string
	verbose      bool
	quiet        bool
	cleaningFile string
	sheetName    string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "survey-analyzer",
	Short:   "Survey data cleaning and descriptive statistics",
	Version: Version,
	Long: `survey-analyzer loads survey exports (CSV or Excel), cleans the
responses (country normalization, rating label folding, removal of empty
and throwaway rows), and computes the descriptive statistics an
international-student survey dashboard is built on: per-country
percentage breakdowns, cross tabulations, importance-factor rankings,
country comparisons, and chi-square significance tests.

Examples:
  # Data summary with per-country response counts
  survey-analyzer summary responses.xlsx

  # Percentage breakdown of one question
  survey-analyzer breakdown responses.csv --column "How important was the cost of study? *"

  # Compare two countries on a question, with significance
  survey-analyzer compare responses.csv \
    --question "How important was the cost of study? *" \
    --countries India,Nigeria --value Extremely

  # Check computed numbers against a gold-standard expectations file
  survey-analyzer validate responses.csv --expect expectations.yaml

  # Serve the dashboard API
  survey-analyzer serve --port 8080 --demo`,
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./survey-analyzer.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	RootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "errors only")
	RootCmd.PersistentFlags().StringVar(&cleaningFile, "cleaning", "", "cleaning options YAML file")
	RootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "workbook sheet to read (xlsx)")

	_ = viper.BindPFlag("cleaning", RootCmd.PersistentFlags().Lookup("cleaning"))
	_ = viper.BindPFlag("sheet", RootCmd.PersistentFlags().Lookup("sheet"))
}

// initConfig reads the optional config file and SURVEY_* environment
// variables, then applies the logging flags.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("survey-analyzer")
	}

	viper.SetEnvPrefix("SURVEY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	if quiet {
		logger.SetQuiet()
	} else if verbose {
		logger.SetVerbose()
	}
}

// loadProcessor runs the pipeline on a survey file with the configured
// cleaning options, shared by every file-reading subcommand.
func loadProcessor(path string) (*processor.Processor, error) {
	opts, err := cleaner.LoadOptions(viper.GetString("cleaning"))
	if err != nil {
		return nil, err
	}

	p := processor.New(opts)
	if err := p.ProcessPipelineSheet(path, viper.GetString("sheet")); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return p, nil
}

// splitFlagList turns a comma-separated flag value into its entries,
// dropping empties.
func splitFlagList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
