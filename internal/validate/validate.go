// Package validate rechecks the pipeline's numbers against expected
// values worked out by hand, typically in a spreadsheet over the raw
// export. It exists so a dashboard deployment can prove its percentages
// before anyone trusts a chart.
package validate

import (
	"fmt"
	"sort"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/calc"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/processor"
)

// BreakdownCase is one hand-computed percentage to verify: the share of
// a country's responses to a question equal to a value.
type BreakdownCase struct {
	Question  string  `yaml:"question" json:"question"`
	Country   string  `yaml:"country" json:"country"`
	Value     string  `yaml:"value" json:"value"`
	Expected  float64 `yaml:"expected_percentage" json:"expected_percentage"`
	Tolerance float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
}

// ValidateCountryCounts checks per-country response counts and their
// shares against expected values. totalResponses is the hand-counted
// row total; the per-country expected percentage derives from it.
func ValidateCountryCounts(p *processor.Processor, expected map[string]int, totalResponses int) (*Report, error) {
	table, err := p.Table()
	if err != nil {
		return nil, err
	}
	countryColumn, err := p.CountryColumn()
	if err != nil {
		return nil, err
	}

	actual, err := calc.CountryCounts(table, countryColumn)
	if err != nil {
		return nil, err
	}
	actualCounts := make(map[string]int, len(actual))
	actualPcts := make(map[string]float64, len(actual))
	for _, c := range actual {
		actualCounts[c.Nationality] = c.Count
		actualPcts[c.Nationality] = c.Percentage
	}

	report := NewReport()
	report.AddCount("Total Responses", totalResponses, table.RowCount())

	countries := make([]string, 0, len(expected))
	for country := range expected {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	for _, country := range countries {
		report.AddCount("Count - "+country, expected[country], actualCounts[country])

		// A country absent from the data already failed its count
		// check; there is no actual percentage to compare.
		if _, ok := actualPcts[country]; !ok {
			continue
		}
		expectedPct := float64(expected[country]) / float64(totalResponses) * 100
		report.AddPercentage("Percentage - "+country, expectedPct, actualPcts[country])
	}

	return report, nil
}

// ValidateBreakdown checks hand-computed breakdown percentages. A case
// whose question, country, or value is missing from the data fails with
// an actual of zero.
func ValidateBreakdown(p *processor.Processor, cases []BreakdownCase) (*Report, error) {
	if !p.Loaded() {
		return nil, survey.ErrNotLoaded
	}

	report := NewReport()
	for i, c := range cases {
		tolerance := c.Tolerance
		if tolerance <= 0 {
			tolerance = PercentageTolerance
		}
		name := fmt.Sprintf("Test %d: %s - %s - %s", i+1, c.Country, c.Question, c.Value)

		rows, err := p.NationalityPercentages(c.Question, calc.Options{ExcludeNull: true})
		if err != nil {
			report.fail(name, c.Expected, 0, tolerance)
			continue
		}

		found := false
		for _, row := range rows {
			if row.Nationality == c.Country && row.Value == c.Value {
				report.Add(name, c.Expected, row.Percentage, tolerance)
				found = true
				break
			}
		}
		if !found {
			report.fail(name, c.Expected, 0, tolerance)
		}
	}
	return report, nil
}

// Run executes a full expectations file: country counts first, then the
// percentage cases, in one combined report.
func Run(p *processor.Processor, exp Expectations) (*Report, error) {
	report := NewReport()

	if len(exp.Counts) > 0 {
		counts, err := ValidateCountryCounts(p, exp.Counts, exp.TotalResponses)
		if err != nil {
			return nil, err
		}
		report.Merge(counts)
	}

	if len(exp.Percentages) > 0 {
		breakdown, err := ValidateBreakdown(p, exp.Percentages)
		if err != nil {
			return nil, err
		}
		report.Merge(breakdown)
	}

	return report, nil
}
