package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/calc"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Load a survey export and print its data summary",
	Long: `Summary runs the full pipeline (read, validate, clean) on a survey
export and prints what happened plus the per-country response counts.

Examples:
  survey-analyzer summary responses.xlsx
  survey-analyzer summary responses.csv --cleaning cleaning.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	RootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	p, err := loadProcessor(args[0])
	if err != nil {
		return err
	}

	summary, err := p.Summary()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Survey: %s\n", args[0])
	fmt.Fprintf(out, "  Raw rows:       %d\n", summary.RawRows)
	fmt.Fprintf(out, "  Cleaned rows:   %d\n", summary.CleanedRows)
	fmt.Fprintf(out, "  Columns:        %d\n", summary.Columns)
	fmt.Fprintf(out, "  Country column: %s\n", summary.CountryColumn)

	if len(summary.CleaningStats.Operations) > 0 {
		fmt.Fprintln(out, "\nCleaning:")
		for _, op := range summary.CleaningStats.Operations {
			fmt.Fprintf(out, "  - %s\n", op)
		}
	}

	if len(summary.Warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range summary.Warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	table, err := p.Table()
	if err != nil {
		return err
	}
	counts, err := calc.CountryCounts(table, summary.CountryColumn)
	if err != nil {
		return err
	}

	width := 0
	for _, c := range counts {
		if len(c.Nationality) > width {
			width = len(c.Nationality)
		}
	}

	fmt.Fprintln(out, "\nResponses by country:")
	for _, c := range counts {
		fmt.Fprintf(out, "  %-*s  %4d  %6.2f%%\n", width, c.Nationality, c.Count, c.Percentage)
	}

	return nil
}
