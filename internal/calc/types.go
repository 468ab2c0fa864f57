package calc

import "math"

// Options control which responses count toward a breakdown. The
// denominator of every percentage is the group's row count after these
// exclusions, so percentages within a group sum to 100 modulo rounding.
type Options struct {
	// ExcludeNull drops empty responses before counting.
	ExcludeNull bool
	// ExcludeNotApplicable drops "Not applicable" responses before counting.
	ExcludeNotApplicable bool
}

// DefaultOptions excludes empty responses only.
func DefaultOptions() Options {
	return Options{ExcludeNull: true}
}

// BreakdownRow is one (nationality, value) cell of a percentage
// breakdown. GroupTotal is the denominator used for Percentage.
type BreakdownRow struct {
	Nationality string  `json:"nationality"`
	Value       string  `json:"value"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	GroupTotal  int     `json:"group_total"`
}

// ValueCount is one row of an overall (ungrouped) breakdown.
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CountryCount is a per-country response count with its share of the
// whole dataset.
type CountryCount struct {
	Nationality string  `json:"nationality"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
}

// CountryStat summarizes a numeric column for one country. Std is the
// sample standard deviation. Count is the number of parseable numeric
// responses; when it is zero the other fields are zero.
type CountryStat struct {
	Nationality string  `json:"nationality"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	Std         float64 `json:"std"`
	Count       int     `json:"count"`
}

// StatValue is one country's value for a single selected statistic.
type StatValue struct {
	Nationality string  `json:"nationality"`
	Value       float64 `json:"value"`
}

// Pivot is a contingency-style table: one row per distinct value of the
// row column, one column per distinct value of the column column.
// Counts is always populated; Percentages is row-normalized and only
// present when requested.
type Pivot struct {
	RowColumn   string      `json:"row_column"`
	ColColumn   string      `json:"col_column"`
	Rows        []string    `json:"rows"`
	Columns     []string    `json:"columns"`
	Counts      [][]int     `json:"counts"`
	Percentages [][]float64 `json:"percentages,omitempty"`
	RowTotals   []int       `json:"row_totals"`
}

// FactorRank is one question's position in an importance ranking.
type FactorRank struct {
	Rank     int     `json:"rank"`
	Question string  `json:"question"`
	HighPct  float64 `json:"high_importance_pct"`
	Count    int     `json:"count"`
	Total    int     `json:"total"`
}

// HighImportanceRank ranks a country by its combined top-two rating
// percentage for one question.
type HighImportanceRank struct {
	Rank        int     `json:"rank"`
	Nationality string  `json:"nationality"`
	HighPct     float64 `json:"high_importance_pct"`
}

// Summary bundles the per-country and overall breakdowns for one
// question alongside raw counts.
type Summary struct {
	Question      string         `json:"question"`
	ByCountry     []BreakdownRow `json:"by_country"`
	Overall       []ValueCount   `json:"overall"`
	CountryTotals map[string]int `json:"country_totals"`
	ValueCounts   map[string]int `json:"value_counts"`
}

// round2 rounds to two decimal places, the precision every percentage
// in the package is reported at.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// percentage guards the zero-denominator case: a group with no
// eligible rows reports 0 rather than dividing by zero.
func percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}
