package compare

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/calc"
)

// SideBySideOptions control the shape of a comparison table.
type SideBySideOptions struct {
	// ShowCounts renders cells as "count (pct%)" instead of "pct%".
	ShowCounts bool
	// ExcludeNotApplicable drops "Not applicable" responses before
	// computing percentages.
	ExcludeNotApplicable bool
}

// ComparisonTable is a side-by-side view of one question across
// countries: response values as rows, countries as columns. Cells carry
// the display strings; Counts and Percentages carry the numbers behind
// them. Totals holds each country's eligible response count.
type ComparisonTable struct {
	Question    string      `json:"question"`
	Countries   []string    `json:"countries"`
	Values      []string    `json:"values"`
	Cells       [][]string  `json:"cells"`
	Counts      [][]int     `json:"counts"`
	Percentages [][]float64 `json:"percentages"`
	Totals      []int       `json:"totals"`
}

// SideBySide builds a comparison table for the given countries, in the
// order requested. An empty country list compares every country in the
// table. Values follow the question's scale order; a country missing a
// value shows an explicit zero cell.
func SideBySide(table *survey.Table, countryColumn, question string, countries []string, opts SideBySideOptions) (*ComparisonTable, error) {
	countries, err := resolveCountries(table, countryColumn, countries)
	if err != nil {
		return nil, err
	}

	breakdown, err := calc.NationalityPercentage(table, countryColumn, question, calc.Options{
		ExcludeNull:          true,
		ExcludeNotApplicable: opts.ExcludeNotApplicable,
	})
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(countries))
	for _, c := range countries {
		selected[c] = true
	}

	type cell struct {
		count int
		pct   float64
	}
	grid := make(map[string]map[string]cell)
	totals := make(map[string]int)
	valueSet := make(map[string]bool)
	for _, row := range breakdown {
		if !selected[row.Nationality] {
			continue
		}
		totals[row.Nationality] = row.GroupTotal
		valueSet[row.Value] = true
		if grid[row.Value] == nil {
			grid[row.Value] = make(map[string]cell)
		}
		grid[row.Value][row.Nationality] = cell{count: row.Count, pct: row.Percentage}
	}

	result := &ComparisonTable{
		Question:  question,
		Countries: countries,
		Values:    calc.OrderLabels(question, mapKeys(valueSet)),
	}

	result.Cells = make([][]string, len(result.Values))
	result.Counts = make([][]int, len(result.Values))
	result.Percentages = make([][]float64, len(result.Values))
	for i, value := range result.Values {
		result.Cells[i] = make([]string, len(countries))
		result.Counts[i] = make([]int, len(countries))
		result.Percentages[i] = make([]float64, len(countries))
		for j, country := range countries {
			c := grid[value][country]
			result.Counts[i][j] = c.count
			result.Percentages[i][j] = c.pct
			if opts.ShowCounts {
				result.Cells[i][j] = strconv.Itoa(c.count) + " (" + FormatPercent(c.pct) + "%)"
			} else {
				result.Cells[i][j] = FormatPercent(c.pct) + "%"
			}
		}
	}

	result.Totals = make([]int, len(countries))
	for j, country := range countries {
		result.Totals[j] = totals[country]
	}

	return result, nil
}

// DifferenceResult reports the signed percentage-point gap between two
// countries for one response value.
type DifferenceResult struct {
	Question      string  `json:"question"`
	Country1      string  `json:"country1"`
	Country2      string  `json:"country2"`
	Value         string  `json:"value"`
	Count1        int     `json:"country1_count"`
	Count2        int     `json:"country2_count"`
	Percentage1   float64 `json:"country1_percentage"`
	Percentage2   float64 `json:"country2_percentage"`
	Difference    float64 `json:"difference"`
	AbsDifference float64 `json:"difference_abs"`
}

// Difference computes percentage(country1) - percentage(country2) for
// one response value, signed. A country without that value contributes
// zero.
func Difference(table *survey.Table, countryColumn, question, country1, country2, value string) (*DifferenceResult, error) {
	if err := requireCountries(table, countryColumn, country1, country2); err != nil {
		return nil, err
	}

	breakdown, err := calc.NationalityPercentage(table, countryColumn, question, calc.DefaultOptions())
	if err != nil {
		return nil, err
	}

	result := &DifferenceResult{
		Question: question,
		Country1: country1,
		Country2: country2,
		Value:    value,
	}
	for _, row := range breakdown {
		if row.Value != value {
			continue
		}
		switch row.Nationality {
		case country1:
			result.Count1 = row.Count
			result.Percentage1 = row.Percentage
		case country2:
			result.Count2 = row.Count
			result.Percentage2 = row.Percentage
		}
	}
	result.Difference = round2(result.Percentage1 - result.Percentage2)
	result.AbsDifference = round2(abs(result.Difference))
	return result, nil
}

// QuestionComparison is one row of a multi-question comparison, with
// percentages aligned to the batch's country order.
type QuestionComparison struct {
	Question    string    `json:"question"`
	Percentages []float64 `json:"percentages"`
}

// BatchResult compares a list of questions across countries. With a
// focus value, cells hold that value's percentage per country;
// otherwise they hold the country's total eligible percentage.
type BatchResult struct {
	Countries  []string             `json:"countries"`
	FocusValue string               `json:"focus_value,omitempty"`
	Rows       []QuestionComparison `json:"rows"`
}

// CompareMany repeats the per-question comparison across many columns,
// preserving question order. Questions missing from the table are
// skipped. Null and "Not applicable" responses are excluded.
func CompareMany(table *survey.Table, countryColumn string, questions, countries []string, focusValue string) (*BatchResult, error) {
	countries, err := resolveCountries(table, countryColumn, countries)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Countries: countries, FocusValue: focusValue}
	for _, question := range questions {
		if !table.HasColumn(question) {
			continue
		}
		breakdown, err := calc.NationalityPercentage(table, countryColumn, question, calc.Options{
			ExcludeNull:          true,
			ExcludeNotApplicable: true,
		})
		if err != nil {
			return nil, err
		}

		row := QuestionComparison{Question: question, Percentages: make([]float64, len(countries))}
		for j, country := range countries {
			var pct float64
			for _, b := range breakdown {
				if b.Nationality != country {
					continue
				}
				if focusValue == "" {
					pct += b.Percentage
				} else if b.Value == focusValue {
					pct = b.Percentage
					break
				}
			}
			row.Percentages[j] = round2(pct)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// CountryValueRank is a country's position when ranked by one response
// value's percentage.
type CountryValueRank struct {
	Rank        int     `json:"rank"`
	Nationality string  `json:"nationality"`
	Value       string  `json:"value"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
}

// RankCountries orders countries by the share of their responses equal
// to the given value, highest first. Value defaults to "Extremely".
// Ties keep nationality order.
func RankCountries(table *survey.Table, countryColumn, question string, countries []string, value string) ([]CountryValueRank, error) {
	if value == "" {
		value = "Extremely"
	}
	countries, err := resolveCountries(table, countryColumn, countries)
	if err != nil {
		return nil, err
	}

	breakdown, err := calc.NationalityPercentage(table, countryColumn, question, calc.DefaultOptions())
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(countries))
	for _, c := range countries {
		selected[c] = true
	}

	var ranks []CountryValueRank
	for _, row := range breakdown {
		if row.Value != value || !selected[row.Nationality] {
			continue
		}
		ranks = append(ranks, CountryValueRank{
			Nationality: row.Nationality,
			Value:       value,
			Count:       row.Count,
			Percentage:  row.Percentage,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Percentage > ranks[j].Percentage
	})
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks, nil
}

// resolveCountries validates the requested countries against the table.
// An empty request means every country present, sorted.
func resolveCountries(table *survey.Table, countryColumn string, countries []string) ([]string, error) {
	if table == nil {
		return nil, survey.ErrEmptyTable
	}
	if !table.HasColumn(countryColumn) {
		return nil, survey.NewColumnNotFoundError(countryColumn)
	}
	present := table.CountBy(countryColumn)
	if len(countries) == 0 {
		return sortedCountryKeys(present), nil
	}
	for _, c := range countries {
		if present[c] == 0 {
			return nil, survey.NewCountryNotFoundError(c)
		}
	}
	return countries, nil
}

func requireCountries(table *survey.Table, countryColumn string, countries ...string) error {
	if table == nil {
		return survey.ErrEmptyTable
	}
	if !table.HasColumn(countryColumn) {
		return survey.NewColumnNotFoundError(countryColumn)
	}
	present := table.CountBy(countryColumn)
	for _, c := range countries {
		if present[c] == 0 {
			return survey.NewCountryNotFoundError(c)
		}
	}
	return nil
}

// FormatPercent renders a percentage with two decimals, trimming a
// single trailing zero so 60.00 prints as "60.0" and 57.14 stays put.
func FormatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', 2, 64)
	if strings.HasSuffix(s, "0") {
		s = s[:len(s)-1]
	}
	return s
}

func sortedCountryKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mapKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
