package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/calc"
)

var (
	rankColumns   string
	rankCountries string
)

var rankCmd = &cobra.Command{
	Use:   "rank <file>",
	Short: "Rank questions by high-importance share",
	Long: `Rank scores each question by the share of responses in its top two
scale labels (Very + Extremely for importance scales) and lists the
questions from most to least important.

Example:
  survey-analyzer rank responses.csv --columns "How important was cost? *,How important was ranking? *"`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	RootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankColumns, "columns", "", "comma-separated question columns (required)")
	rankCmd.Flags().StringVar(&rankCountries, "countries", "", "restrict to these countries (default: all)")
	_ = rankCmd.MarkFlagRequired("columns")
}

func runRank(cmd *cobra.Command, args []string) error {
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

	factors, err := calc.RankImportanceFactors(table, countryColumn,
		splitFlagList(rankColumns), splitFlagList(rankCountries))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(factors) == 0 {
		fmt.Fprintln(out, "No matching question columns found.")
		return nil
	}

	width := 0
	for _, f := range factors {
		if len(f.Question) > width {
			width = len(f.Question)
		}
	}

	fmt.Fprintln(out, "Importance ranking (top-two share):")
	for _, f := range factors {
		fmt.Fprintf(out, "  %2d. %-*s  %6.2f%%  (%d/%d)\n",
			f.Rank, width, f.Question, f.HighPct, f.Count, f.Total)
	}
	return nil
}
