package calc

import (
	"math"
	"testing"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
)

const (
	countryCol = "What is your home country? *"
	ratingCol  = "How important is cost? *"
)

func makeTable(pairs ...[2]string) *survey.Table {
	t := survey.NewTable([]string{countryCol, ratingCol})
	for _, p := range pairs {
		t.AppendRow(survey.Row{countryCol: p[0], ratingCol: p[1]})
	}
	return t
}

func repeat(country, value string, n int) [][2]string {
	out := make([][2]string, n)
	for i := range out {
		out[i] = [2]string{country, value}
	}
	return out
}

func flatten(groups ...[][2]string) []([2]string) {
	var out [][2]string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func findRow(rows []BreakdownRow, nationality, value string) (BreakdownRow, bool) {
	for _, r := range rows {
		if r.Nationality == nationality && r.Value == value {
			return r, true
		}
	}
	return BreakdownRow{}, false
}

func TestNationalityPercentage_SixtyForty(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Extremely", 6),
		repeat("India", "Very", 4),
		repeat("Nigeria", "Moderately", 3),
	)...)

	rows, err := NationalityPercentage(table, countryCol, ratingCol, DefaultOptions())
	if err != nil {
		t.Fatalf("NationalityPercentage failed: %v", err)
	}

	extremely, ok := findRow(rows, "India", "Extremely")
	if !ok {
		t.Fatal("India/Extremely row missing")
	}
	if extremely.Count != 6 || extremely.Percentage != 60.0 || extremely.GroupTotal != 10 {
		t.Errorf("India/Extremely = %+v, want Count 6, 60.0%%, total 10", extremely)
	}

	very, ok := findRow(rows, "India", "Very")
	if !ok {
		t.Fatal("India/Very row missing")
	}
	if very.Count != 4 || very.Percentage != 40.0 || very.GroupTotal != 10 {
		t.Errorf("India/Very = %+v, want Count 4, 40.0%%, total 10", very)
	}
}

func TestNationalityPercentage_GroupSumsToHundred(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Extremely", 3),
		repeat("India", "Very", 2),
		repeat("India", "Moderately", 2),
		repeat("Nigeria", "Extremely", 1),
		repeat("Nigeria", "A little", 5),
		repeat("Kenya", "Not at all", 1),
	)...)

	rows, err := NationalityPercentage(table, countryCol, ratingCol, DefaultOptions())
	if err != nil {
		t.Fatalf("NationalityPercentage failed: %v", err)
	}

	sums := make(map[string]float64)
	for _, r := range rows {
		sums[r.Nationality] += r.Percentage
	}
	for country, sum := range sums {
		if math.Abs(sum-100) > 0.5 {
			t.Errorf("%s percentages sum to %.2f, want 100 +- 0.5", country, sum)
		}
	}
}

func TestNationalityPercentage_NotApplicableExcluded(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Not applicable", 2),
		repeat("India", "Very", 2),
		repeat("India", "Extremely", 1),
	)...)

	rows, err := NationalityPercentage(table, countryCol, ratingCol, Options{
		ExcludeNull:          true,
		ExcludeNotApplicable: true,
	})
	if err != nil {
		t.Fatalf("NationalityPercentage failed: %v", err)
	}

	very, ok := findRow(rows, "India", "Very")
	if !ok {
		t.Fatal("India/Very row missing")
	}
	if very.GroupTotal != 3 {
		t.Errorf("GroupTotal = %d, want 3 after excluding Not applicable", very.GroupTotal)
	}
	if very.Percentage != 66.67 {
		t.Errorf("Percentage = %v, want 66.67", very.Percentage)
	}
	if _, found := findRow(rows, "India", "Not applicable"); found {
		t.Error("Not applicable should be excluded from the breakdown")
	}
}

func TestNationalityPercentage_NotApplicableKeptByDefault(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Not applicable", 2),
		repeat("India", "Very", 3),
	)...)

	rows, err := NationalityPercentage(table, countryCol, ratingCol, DefaultOptions())
	if err != nil {
		t.Fatalf("NationalityPercentage failed: %v", err)
	}

	na, ok := findRow(rows, "India", "Not applicable")
	if !ok {
		t.Fatal("Not applicable should remain a category by default")
	}
	if na.GroupTotal != 5 || na.Percentage != 40.0 {
		t.Errorf("Not applicable row = %+v, want total 5, 40.0%%", na)
	}
}

func TestNationalityPercentage_NullsOutOfDenominator(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Very", 2),
		repeat("India", "", 2),
	)...)

	rows, err := NationalityPercentage(table, countryCol, ratingCol, DefaultOptions())
	if err != nil {
		t.Fatalf("NationalityPercentage failed: %v", err)
	}

	very, ok := findRow(rows, "India", "Very")
	if !ok {
		t.Fatal("India/Very row missing")
	}
	if very.GroupTotal != 2 || very.Percentage != 100.0 {
		t.Errorf("row = %+v, want total 2, 100.0%%", very)
	}
}

func TestNationalityPercentage_NullsInDenominatorWhenKept(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Very", 2),
		repeat("India", "", 2),
	)...)

	rows, err := NationalityPercentage(table, countryCol, ratingCol, Options{ExcludeNull: false})
	if err != nil {
		t.Fatalf("NationalityPercentage failed: %v", err)
	}

	very, ok := findRow(rows, "India", "Very")
	if !ok {
		t.Fatal("India/Very row missing")
	}
	if very.GroupTotal != 4 || very.Percentage != 50.0 {
		t.Errorf("row = %+v, want total 4, 50.0%%", very)
	}
}

func TestNationalityPercentage_SkipsRowsWithoutCountry(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Very", 1),
		repeat("", "Extremely", 3),
	)...)

	rows, err := NationalityPercentage(table, countryCol, ratingCol, DefaultOptions())
	if err != nil {
		t.Fatalf("NationalityPercentage failed: %v", err)
	}

	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d: %+v", len(rows), rows)
	}
}

func TestNationalityPercentage_SortedByCountryThenValue(t *testing.T) {
	table := makeTable(flatten(
		repeat("Nigeria", "Very", 1),
		repeat("India", "Very", 1),
		repeat("India", "Extremely", 1),
	)...)

	rows, err := NationalityPercentage(table, countryCol, ratingCol, DefaultOptions())
	if err != nil {
		t.Fatalf("NationalityPercentage failed: %v", err)
	}

	want := []struct{ nationality, value string }{
		{"India", "Extremely"},
		{"India", "Very"},
		{"Nigeria", "Very"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Nationality != w.nationality || rows[i].Value != w.value {
			t.Errorf("row %d = %s/%s, want %s/%s", i, rows[i].Nationality, rows[i].Value, w.nationality, w.value)
		}
	}
}

func TestNationalityPercentage_MissingColumn(t *testing.T) {
	table := makeTable(repeat("India", "Very", 1)...)

	_, err := NationalityPercentage(table, countryCol, "No such question", DefaultOptions())
	if !survey.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestOverallPercentage_CountDescThenValue(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Very", 3),
		repeat("Nigeria", "Extremely", 3),
		repeat("Kenya", "Moderately", 4),
	)...)

	rows, err := OverallPercentage(table, ratingCol, DefaultOptions())
	if err != nil {
		t.Fatalf("OverallPercentage failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Value != "Moderately" || rows[0].Count != 4 {
		t.Errorf("rows[0] = %+v, want Moderately x4", rows[0])
	}
	// Extremely and Very tie on count; ties break by value ascending.
	if rows[1].Value != "Extremely" || rows[2].Value != "Very" {
		t.Errorf("tie order wrong: %q then %q", rows[1].Value, rows[2].Value)
	}
	if rows[0].Percentage != 40.0 {
		t.Errorf("rows[0].Percentage = %v, want 40.0", rows[0].Percentage)
	}
}

func TestCountryCounts_SumEqualsRowCount(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Very", 7),
		repeat("Nigeria", "Very", 5),
		repeat("Kenya", "Very", 2),
	)...)

	counts, err := CountryCounts(table, countryCol)
	if err != nil {
		t.Fatalf("CountryCounts failed: %v", err)
	}

	sum := 0
	for _, c := range counts {
		sum += c.Count
	}
	if sum != table.RowCount() {
		t.Errorf("counts sum to %d, want %d", sum, table.RowCount())
	}

	if counts[0].Nationality != "India" || counts[1].Nationality != "Kenya" || counts[2].Nationality != "Nigeria" {
		t.Errorf("countries not sorted by name: %+v", counts)
	}
	if counts[0].Percentage != 50.0 {
		t.Errorf("India percentage = %v, want 50.0", counts[0].Percentage)
	}
}

func TestPercentageSummary(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Extremely", 6),
		repeat("India", "Very", 4),
		repeat("Nigeria", "Very", 5),
		repeat("Kenya", "Moderately", 5),
	)...)

	summary, err := PercentageSummary(table, countryCol, ratingCol, []string{"India", "Nigeria"})
	if err != nil {
		t.Fatalf("PercentageSummary failed: %v", err)
	}

	if summary.Question != ratingCol {
		t.Errorf("Question = %q", summary.Question)
	}
	if summary.CountryTotals["Kenya"] != 0 {
		t.Error("Kenya should be filtered out")
	}
	if summary.CountryTotals["India"] != 10 || summary.CountryTotals["Nigeria"] != 5 {
		t.Errorf("CountryTotals = %v", summary.CountryTotals)
	}
	if summary.ValueCounts["Very"] != 9 {
		t.Errorf("ValueCounts[Very] = %d, want 9", summary.ValueCounts["Very"])
	}
	if len(summary.ByCountry) == 0 || len(summary.Overall) == 0 {
		t.Error("breakdowns should be populated")
	}
}

func TestFilterCountries(t *testing.T) {
	table := makeTable(flatten(
		repeat("India", "Very", 2),
		repeat("Nigeria", "Very", 3),
	)...)

	subset := FilterCountries(table, countryCol, []string{"Nigeria"})
	if subset.RowCount() != 3 {
		t.Errorf("expected 3 rows, got %d", subset.RowCount())
	}
}

func TestNationalityPercentage_EmptyTableYieldsEmptyResult(t *testing.T) {
	table := survey.NewTable([]string{countryCol, ratingCol})

	rows, err := NationalityPercentage(table, countryCol, ratingCol, DefaultOptions())
	if err != nil {
		t.Fatalf("NationalityPercentage failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty result, got %+v", rows)
	}
}
