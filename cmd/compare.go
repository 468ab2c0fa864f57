package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/compare"
)

var (
	compareQuestion   string
	compareCountries  string
	compareValue      string
	compareShowCounts bool
	compareReport     bool
	compareExcludeNA  bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <file>",
	Short: "Compare countries' answers to one question",
	Long: `Compare prints the side-by-side percentage table for one question
across the selected countries (all countries when none are given). With
exactly two countries and a --value, it also reports the percentage-point
difference and the chi-square significance test for that response.

Examples:
  survey-analyzer compare responses.csv --question "How important was the cost of study? *"
  survey-analyzer compare responses.csv --question "..." --countries India,Nigeria --value Extremely
  survey-analyzer compare responses.csv --question "..." --countries India,Nigeria --report`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareQuestion, "question", "", "question column (required)")
	compareCmd.Flags().StringVar(&compareCountries, "countries", "", "comma-separated countries (default: all)")
	compareCmd.Flags().StringVar(&compareValue, "value", "", "response value for difference and significance")
	compareCmd.Flags().BoolVar(&compareShowCounts, "show-counts", false, "show counts next to percentages")
	compareCmd.Flags().BoolVar(&compareReport, "report", false, "print the full comparison report")
	compareCmd.Flags().BoolVar(&compareExcludeNA, "exclude-na", false, "exclude Not applicable responses")
	_ = compareCmd.MarkFlagRequired("question")
}

func runCompare(cmd *cobra.Command, args []string) error {
	p, err := loadProcessor(args[0])
	if err != nil {
		return err
	}

	table, err := p.Table()
	if err != nil {
		return err
	}
	countryColumn, err := p.CountryColumn()
	if err != nil {
		return err
	}

	countries := splitFlagList(compareCountries)
	out := cmd.OutOrStdout()

	if compareReport {
		report, err := compare.TextReport(table, countryColumn, compareQuestion, countries)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, report)
		return nil
	}

	result, err := compare.SideBySide(table, countryColumn, compareQuestion, countries,
		compare.SideBySideOptions{
			ShowCounts:           compareShowCounts,
			ExcludeNotApplicable: compareExcludeNA,
		})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Side-by-side: %s\n\n", compareQuestion)
	printComparison(out, result)

	if compareValue == "" || len(countries) != 2 {
		return nil
	}

	diff, err := compare.Difference(table, countryColumn, compareQuestion,
		countries[0], countries[1], compareValue)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nDifference for %q:\n", compareValue)
	fmt.Fprintf(out, "  %-12s %s%% (%d responses)\n", diff.Country1+":", compare.FormatPercent(diff.Percentage1), diff.Count1)
	fmt.Fprintf(out, "  %-12s %s%% (%d responses)\n", diff.Country2+":", compare.FormatPercent(diff.Percentage2), diff.Count2)
	fmt.Fprintf(out, "  Difference:  %.2f percentage points\n", diff.Difference)

	sig, err := compare.Significance(table, countryColumn, compareQuestion,
		countries[0], countries[1], compareValue)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nChi-square test (Yates corrected):")
	fmt.Fprintf(out, "  chi2 = %.4f, p = %.4f, df = %d\n", sig.ChiSquare, sig.PValue, sig.DF)
	fmt.Fprintf(out, "  %s at p < 0.05\n", sig.Interpretation)
	if sig.LowExpectedCounts > 0 {
		fmt.Fprintf(out, "  Warning: %d expected counts below 5 (min %.2f)\n",
			sig.LowExpectedCounts, sig.MinExpected)
	}
	return nil
}

// printComparison renders the side-by-side table: one row per response
// value, one column per country, raw totals last.
func printComparison(w io.Writer, result *compare.ComparisonTable) {
	labelWidth := len("Total")
	for _, v := range result.Values {
		if len(v) > labelWidth {
			labelWidth = len(v)
		}
	}

	colWidths := make([]int, len(result.Countries))
	for i, c := range result.Countries {
		colWidths[i] = len(c)
		for _, row := range result.Cells {
			if len(row[i]) > colWidths[i] {
				colWidths[i] = len(row[i])
			}
		}
	}

	fmt.Fprintf(w, "%-*s", labelWidth, "")
	for i, c := range result.Countries {
		fmt.Fprintf(w, "  %*s", colWidths[i], c)
	}
	fmt.Fprintln(w)

	for r, value := range result.Values {
		fmt.Fprintf(w, "%-*s", labelWidth, value)
		for c := range result.Countries {
			fmt.Fprintf(w, "  %*s", colWidths[c], result.Cells[r][c])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%-*s", labelWidth, "Total")
	for i := range result.Countries {
		fmt.Fprintf(w, "  %*d", colWidths[i], result.Totals[i])
	}
	fmt.Fprintln(w)
}
