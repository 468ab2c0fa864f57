package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/calc"
)

var (
	breakdownColumn    string
	breakdownCountries string
	breakdownExcludeNA bool
	breakdownCounts    bool
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown <file>",
	Short: "Percentage breakdown of one question by country",
	Long: `Breakdown computes how each country answered one question, as
percentages of that country's responses. With --counts it prints the raw
country x response contingency table instead.

Examples:
  survey-analyzer breakdown responses.csv --column "How important was the cost of study? *"
  survey-analyzer breakdown responses.csv --column "..." --countries India,Nigeria --exclude-na
  survey-analyzer breakdown responses.csv --column "..." --counts`,
	Args: cobra.ExactArgs(1),
	RunE: runBreakdown,
}

func init() {
	RootCmd.AddCommand(breakdownCmd)

	breakdownCmd.Flags().StringVar(&breakdownColumn, "column", "", "question column (required)")
	breakdownCmd.Flags().StringVar(&breakdownCountries, "countries", "", "comma-separated country filter")
	breakdownCmd.Flags().BoolVar(&breakdownExcludeNA, "exclude-na", false, "exclude Not applicable responses")
	breakdownCmd.Flags().BoolVar(&breakdownCounts, "counts", false, "print the raw contingency table")
	_ = breakdownCmd.MarkFlagRequired("column")
}

func runBreakdown(cmd *cobra.Command, args []string) error {
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

	if countries := splitFlagList(breakdownCountries); len(countries) > 0 {
		table, err = p.FilterByCountries(countries)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	if breakdownCounts {
		pivot, err := calc.ResponseDistribution(table, countryColumn, breakdownColumn, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Question: %s\n\n", breakdownColumn)
		printPivot(out, pivot)
		return nil
	}

	opts := calc.DefaultOptions()
	opts.ExcludeNotApplicable = breakdownExcludeNA
	rows, err := calc.NationalityPercentage(table, countryColumn, breakdownColumn, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Question: %s\n", breakdownColumn)
	current := ""
	for _, row := range rows {
		if row.Nationality != current {
			current = row.Nationality
			fmt.Fprintf(out, "\n%s (%d responses)\n", current, row.GroupTotal)
		}
		fmt.Fprintf(out, "  %-30s %4d  %6.2f%%\n", row.Value, row.Count, row.Percentage)
	}
	return nil
}

// printPivot renders a pivot as a fixed-width grid with row totals.
func printPivot(w io.Writer, pivot *calc.Pivot) {
	rowWidth := 0
	for _, r := range pivot.Rows {
		if len(r) > rowWidth {
			rowWidth = len(r)
		}
	}

	colWidths := make([]int, len(pivot.Columns))
	for i, c := range pivot.Columns {
		colWidths[i] = len(c)
		if colWidths[i] < 6 {
			colWidths[i] = 6
		}
	}

	fmt.Fprintf(w, "%-*s", rowWidth, "")
	for i, c := range pivot.Columns {
		fmt.Fprintf(w, "  %*s", colWidths[i], c)
	}
	fmt.Fprintf(w, "  %6s\n", "Total")

	for r, name := range pivot.Rows {
		fmt.Fprintf(w, "%-*s", rowWidth, name)
		for c := range pivot.Columns {
			if pivot.Percentages != nil {
				fmt.Fprintf(w, "  %*.2f", colWidths[c], pivot.Percentages[r][c])
			} else {
				fmt.Fprintf(w, "  %*d", colWidths[c], pivot.Counts[r][c])
			}
		}
		fmt.Fprintf(w, "  %6d\n", pivot.RowTotals[r])
	}
}
