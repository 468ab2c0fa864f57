package calc

import (
	"testing"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
)

func makeMultiQuestionTable() *survey.Table {
	costCol := "How important is cost? *"
	rankCol := "How important is university ranking? *"
	t := survey.NewTable([]string{countryCol, costCol, rankCol})

	add := func(country, cost, rank string, n int) {
		for i := 0; i < n; i++ {
			t.AppendRow(survey.Row{countryCol: country, costCol: cost, rankCol: rank})
		}
	}
	// Cost: 8 of 10 top-two. Ranking: 5 of 10 top-two.
	add("India", "Extremely", "Very", 5)
	add("India", "Very", "Moderately", 3)
	add("Nigeria", "Moderately", "A little", 2)
	return t
}

func TestRankImportanceFactors_OrdersByTopTwoShare(t *testing.T) {
	table := makeMultiQuestionTable()
	questions := []string{
		"How important is university ranking? *",
		"How important is cost? *",
	}

	ranks, err := RankImportanceFactors(table, countryCol, questions, nil)
	if err != nil {
		t.Fatalf("RankImportanceFactors failed: %v", err)
	}

	if len(ranks) != 2 {
		t.Fatalf("expected 2 ranks, got %d", len(ranks))
	}
	if ranks[0].Question != "How important is cost? *" {
		t.Errorf("top factor = %q, want cost", ranks[0].Question)
	}
	if ranks[0].HighPct != 80.0 {
		t.Errorf("top factor pct = %v, want 80.0", ranks[0].HighPct)
	}
	if ranks[0].Rank != 1 || ranks[1].Rank != 2 {
		t.Errorf("ranks = %d, %d", ranks[0].Rank, ranks[1].Rank)
	}
	if ranks[1].HighPct != 50.0 {
		t.Errorf("second factor pct = %v, want 50.0", ranks[1].HighPct)
	}
}

func TestRankImportanceFactors_TiesKeepInputOrder(t *testing.T) {
	q1 := "How important is cost? *"
	q2 := "How important is location? *"
	table := survey.NewTable([]string{countryCol, q1, q2})
	for i := 0; i < 4; i++ {
		table.AppendRow(survey.Row{countryCol: "India", q1: "Extremely", q2: "Very"})
	}

	ranks, err := RankImportanceFactors(table, countryCol, []string{q2, q1}, nil)
	if err != nil {
		t.Fatalf("RankImportanceFactors failed: %v", err)
	}

	if ranks[0].Question != q2 || ranks[1].Question != q1 {
		t.Errorf("tie should keep input order, got %q then %q", ranks[0].Question, ranks[1].Question)
	}
}

func TestRankImportanceFactors_ExcludesNullAndNA(t *testing.T) {
	q := "How important is cost? *"
	table := survey.NewTable([]string{countryCol, q})
	table.AppendRow(survey.Row{countryCol: "India", q: "Extremely"})
	table.AppendRow(survey.Row{countryCol: "India", q: "Not applicable"})
	table.AppendRow(survey.Row{countryCol: "India", q: ""})
	table.AppendRow(survey.Row{countryCol: "India", q: "Not at all"})

	ranks, err := RankImportanceFactors(table, countryCol, []string{q}, nil)
	if err != nil {
		t.Fatalf("RankImportanceFactors failed: %v", err)
	}

	if ranks[0].Total != 2 {
		t.Errorf("Total = %d, want 2 (null and NA excluded)", ranks[0].Total)
	}
	if ranks[0].HighPct != 50.0 {
		t.Errorf("HighPct = %v, want 50.0", ranks[0].HighPct)
	}
}

func TestRankImportanceFactors_SkipsMissingQuestions(t *testing.T) {
	table := makeMultiQuestionTable()

	ranks, err := RankImportanceFactors(table, countryCol,
		[]string{"How important is cost? *", "Not a column"}, nil)
	if err != nil {
		t.Fatalf("RankImportanceFactors failed: %v", err)
	}

	if len(ranks) != 1 {
		t.Errorf("expected missing question skipped, got %d ranks", len(ranks))
	}
}

func TestRankImportanceFactors_CountryFilter(t *testing.T) {
	table := makeMultiQuestionTable()

	ranks, err := RankImportanceFactors(table, countryCol,
		[]string{"How important is cost? *"}, []string{"Nigeria"})
	if err != nil {
		t.Fatalf("RankImportanceFactors failed: %v", err)
	}

	if ranks[0].HighPct != 0.0 {
		t.Errorf("Nigeria-only pct = %v, want 0.0", ranks[0].HighPct)
	}
	if ranks[0].Total != 2 {
		t.Errorf("Total = %d, want 2", ranks[0].Total)
	}
}

func TestRankCountriesByHighImportance(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Extremely", 6),
		repeat("India", "Very", 4),
		repeat("Nigeria", "Very", 3),
		repeat("Nigeria", "Moderately", 7),
	)...)

	ranks, err := RankCountriesByHighImportance(table, countryCol, ratingCol, nil)
	if err != nil {
		t.Fatalf("RankCountriesByHighImportance failed: %v", err)
	}

	if len(ranks) != 2 {
		t.Fatalf("expected 2 countries, got %d", len(ranks))
	}
	if ranks[0].Nationality != "India" || ranks[0].HighPct != 100.0 {
		t.Errorf("ranks[0] = %+v, want India at 100.0", ranks[0])
	}
	if ranks[1].Nationality != "Nigeria" || ranks[1].HighPct != 30.0 {
		t.Errorf("ranks[1] = %+v, want Nigeria at 30.0", ranks[1])
	}
	if ranks[0].Rank != 1 || ranks[1].Rank != 2 {
		t.Errorf("rank numbers = %d, %d", ranks[0].Rank, ranks[1].Rank)
	}
}
