package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/validate"
)

var validateExpectFile string

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check computed statistics against expected values",
	Long: `Validate loads a survey file, runs the cleaning pipeline, and checks
country counts and breakdown percentages against an expectations file.
Counts may drift by one response, percentages by a tenth of a point.

The command exits non-zero when any check fails.

Example:
  survey-analyzer validate responses.csv --expect expectations.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateExpectFile, "expect", "", "expectations file (required)")
	_ = validateCmd.MarkFlagRequired("expect")
}

func runValidate(cmd *cobra.Command, args []string) error {
	exp, err := validate.LoadExpectations(validateExpectFile)
	if err != nil {
		return err
	}

	p, err := loadProcessor(args[0])
	if err != nil {
		return err
	}

	report, err := validate.Run(p, exp)
	if err != nil {
		return err
	}

	if _, err := report.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}

	if !report.Passed() {
		_, _, failed := report.Counts()
		return fmt.Errorf("%d validation checks failed", failed)
	}
	return nil
}
