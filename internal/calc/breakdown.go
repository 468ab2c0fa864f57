package calc

import (
	"sort"
	"strings"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
)

// eligibleRow reports whether a response passes the option filters.
// Rows that fail are excluded from both numerator and denominator.
func eligibleRow(value string, opts Options) bool {
	if opts.ExcludeNull && value == "" {
		return false
	}
	if opts.ExcludeNotApplicable && survey.IsNotApplicable(value) {
		return false
	}
	return true
}

// NationalityPercentage computes the per-country percentage breakdown
// of one column. Rows without a country value are ignored. The result
// is sorted by nationality, then by value.
func NationalityPercentage(table *survey.Table, countryColumn, valueColumn string, opts Options) ([]BreakdownRow, error) {
	if table == nil {
		return nil, survey.ErrEmptyTable
	}
	if !table.HasColumn(countryColumn) {
		return nil, survey.NewColumnNotFoundError(countryColumn)
	}
	if !table.HasColumn(valueColumn) {
		return nil, survey.NewColumnNotFoundError(valueColumn)
	}

	counts := make(map[string]map[string]int)
	totals := make(map[string]int)

	for _, row := range table.Rows {
		country := strings.TrimSpace(row[countryColumn])
		if country == "" {
			continue
		}
		value := strings.TrimSpace(row[valueColumn])
		if !eligibleRow(value, opts) {
			continue
		}
		totals[country]++
		if value == "" {
			continue
		}
		if counts[country] == nil {
			counts[country] = make(map[string]int)
		}
		counts[country][value]++
	}

	result := make([]BreakdownRow, 0, len(counts)*4)
	for _, country := range sortedKeys(totals) {
		total := totals[country]
		for _, value := range sortedKeys(counts[country]) {
			count := counts[country][value]
			result = append(result, BreakdownRow{
				Nationality: country,
				Value:       value,
				Count:       count,
				Percentage:  percentage(count, total),
				GroupTotal:  total,
			})
		}
	}
	return result, nil
}

// OverallPercentage computes the breakdown of one column across the
// whole table, sorted by count descending then value ascending.
func OverallPercentage(table *survey.Table, valueColumn string, opts Options) ([]ValueCount, error) {
	if table == nil {
		return nil, survey.ErrEmptyTable
	}
	if !table.HasColumn(valueColumn) {
		return nil, survey.NewColumnNotFoundError(valueColumn)
	}

	counts := make(map[string]int)
	total := 0
	for _, row := range table.Rows {
		value := strings.TrimSpace(row[valueColumn])
		if !eligibleRow(value, opts) {
			continue
		}
		total++
		if value != "" {
			counts[value]++
		}
	}

	result := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		result = append(result, ValueCount{
			Value:      value,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})
	return result, nil
}

// CountryCounts reports how many responses each country contributed and
// its share of the whole table, sorted by nationality.
func CountryCounts(table *survey.Table, countryColumn string) ([]CountryCount, error) {
	if table == nil {
		return nil, survey.ErrEmptyTable
	}
	if !table.HasColumn(countryColumn) {
		return nil, survey.NewColumnNotFoundError(countryColumn)
	}

	counts := table.CountBy(countryColumn)
	total := table.RowCount()

	result := make([]CountryCount, 0, len(counts))
	for _, country := range sortedKeys(counts) {
		result = append(result, CountryCount{
			Nationality: country,
			Count:       counts[country],
			Percentage:  percentage(counts[country], total),
		})
	}
	return result, nil
}

// PercentageSummary bundles the per-country and overall views of one
// question, optionally restricted to a set of countries.
func PercentageSummary(table *survey.Table, countryColumn, question string, countries []string) (*Summary, error) {
	if table == nil {
		return nil, survey.ErrEmptyTable
	}
	if !table.HasColumn(countryColumn) {
		return nil, survey.NewColumnNotFoundError(countryColumn)
	}
	if !table.HasColumn(question) {
		return nil, survey.NewColumnNotFoundError(question)
	}

	scoped := table
	if len(countries) > 0 {
		scoped = FilterCountries(table, countryColumn, countries)
	}

	byCountry, err := NationalityPercentage(scoped, countryColumn, question, DefaultOptions())
	if err != nil {
		return nil, err
	}
	overall, err := OverallPercentage(scoped, question, DefaultOptions())
	if err != nil {
		return nil, err
	}

	return &Summary{
		Question:      question,
		ByCountry:     byCountry,
		Overall:       overall,
		CountryTotals: scoped.CountBy(countryColumn),
		ValueCounts:   scoped.CountBy(question),
	}, nil
}

// FilterCountries returns the subset of rows whose country value is in
// the given list. The result shares row data with the input.
func FilterCountries(table *survey.Table, countryColumn string, countries []string) *survey.Table {
	set := make(map[string]bool, len(countries))
	for _, c := range countries {
		set[c] = true
	}
	return table.Filter(func(row survey.Row) bool {
		return set[strings.TrimSpace(row[countryColumn])]
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
