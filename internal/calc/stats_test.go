package calc

import (
	"testing"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
)

const scoreCol = "Total points"

func makeNumericTable(pairs ...[2]string) *survey.Table {
	t := survey.NewTable([]string{countryCol, scoreCol})
	for _, p := range pairs {
		t.AppendRow(survey.Row{countryCol: p[0], scoreCol: p[1]})
	}
	return t
}

func TestCountryStatisticsSummary_KnownValues(t *testing.T) {
	table := makeNumericTable(
		[2]string{"India", "1"},
		[2]string{"India", "2"},
		[2]string{"India", "3"},
		[2]string{"India", "4"},
		[2]string{"Nigeria", "10"},
	)

	result, err := CountryStatisticsSummary(table, countryCol, scoreCol)
	if err != nil {
		t.Fatalf("CountryStatisticsSummary failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected 2 countries, got %d", len(result))
	}

	india := result[0]
	if india.Nationality != "India" {
		t.Fatalf("expected India first, got %q", india.Nationality)
	}
	if india.Mean != 2.5 || india.Median != 2.5 || india.Count != 4 {
		t.Errorf("India = %+v, want mean 2.5, median 2.5, count 4", india)
	}
	// Sample standard deviation of 1..4 is sqrt(5/3) = 1.2910
	if india.Std != 1.29 {
		t.Errorf("India.Std = %v, want 1.29", india.Std)
	}

	nigeria := result[1]
	if nigeria.Mean != 10 || nigeria.Median != 10 || nigeria.Count != 1 {
		t.Errorf("Nigeria = %+v, want mean 10, median 10, count 1", nigeria)
	}
	if nigeria.Std != 0 {
		t.Errorf("single sample should report Std 0, got %v", nigeria.Std)
	}
}

func TestCountryStatisticsSummary_IgnoresNonNumeric(t *testing.T) {
	table := makeNumericTable(
		[2]string{"India", "1"},
		[2]string{"India", "not a number"},
		[2]string{"India", "3"},
	)

	result, err := CountryStatisticsSummary(table, countryCol, scoreCol)
	if err != nil {
		t.Fatalf("CountryStatisticsSummary failed: %v", err)
	}

	if result[0].Count != 2 {
		t.Errorf("Count = %d, want 2", result[0].Count)
	}
	if result[0].Mean != 2 {
		t.Errorf("Mean = %v, want 2", result[0].Mean)
	}
}

func TestCountryStatisticsSummary_AllNonNumericCountry(t *testing.T) {
	table := makeNumericTable(
		[2]string{"India", "5"},
		[2]string{"Kenya", "abc"},
	)

	result, err := CountryStatisticsSummary(table, countryCol, scoreCol)
	if err != nil {
		t.Fatalf("CountryStatisticsSummary failed: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected both countries present, got %d", len(result))
	}
	kenya := result[1]
	if kenya.Nationality != "Kenya" || kenya.Count != 0 || kenya.Mean != 0 || kenya.Std != 0 {
		t.Errorf("Kenya = %+v, want zero stats with count 0", kenya)
	}
}

func TestCountryStatisticsSummary_MissingColumn(t *testing.T) {
	table := makeNumericTable([2]string{"India", "1"})

	if _, err := CountryStatisticsSummary(table, countryCol, "Missing"); !survey.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCountryStatistics_SelectsStatistic(t *testing.T) {
	table := makeNumericTable(
		[2]string{"India", "1"},
		[2]string{"India", "2"},
		[2]string{"India", "3"},
		[2]string{"India", "4"},
		[2]string{"Nigeria", "10"},
	)

	cases := []struct {
		stat string
		want []StatValue
	}{
		{StatMean, []StatValue{{"India", 2.5}, {"Nigeria", 10}}},
		{StatMedian, []StatValue{{"India", 2.5}, {"Nigeria", 10}}},
		{StatStd, []StatValue{{"India", 1.29}, {"Nigeria", 0}}},
		{StatCount, []StatValue{{"India", 4}, {"Nigeria", 1}}},
	}
	for _, c := range cases {
		got, err := CountryStatistics(table, countryCol, scoreCol, c.stat)
		if err != nil {
			t.Fatalf("CountryStatistics(%q) failed: %v", c.stat, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("CountryStatistics(%q) = %d entries, want %d", c.stat, len(got), len(c.want))
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("CountryStatistics(%q)[%d] = %+v, want %+v", c.stat, i, got[i], c.want[i])
			}
		}
	}
}

func TestCountryStatistics_DefaultsToMean(t *testing.T) {
	table := makeNumericTable(
		[2]string{"India", "2"},
		[2]string{"India", "4"},
	)

	got, err := CountryStatistics(table, countryCol, scoreCol, "")
	if err != nil {
		t.Fatalf("CountryStatistics failed: %v", err)
	}
	if got[0].Value != 3 {
		t.Errorf("default statistic gave %v, want mean 3", got[0].Value)
	}
}

func TestCountryStatistics_UnknownStatistic(t *testing.T) {
	table := makeNumericTable([2]string{"India", "1"})

	if _, err := CountryStatistics(table, countryCol, scoreCol, "mode"); err == nil {
		t.Error("expected an error for an unknown statistic")
	}
}
