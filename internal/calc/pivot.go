package calc

import (
	"sort"
	"strings"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
)

// CrossTabulation builds a contingency table between two categorical
// columns. Rows where either value is empty are dropped. Labels follow
// the column's rating-scale order when one is recognized, otherwise
// they sort lexically; labels outside the scale go last.
func CrossTabulation(table *survey.Table, rowColumn, colColumn string, normalize bool) (*Pivot, error) {
	if table == nil {
		return nil, survey.ErrEmptyTable
	}
	if !table.HasColumn(rowColumn) {
		return nil, survey.NewColumnNotFoundError(rowColumn)
	}
	if !table.HasColumn(colColumn) {
		return nil, survey.NewColumnNotFoundError(colColumn)
	}

	cells := make(map[string]map[string]int)
	rowSeen := make(map[string]bool)
	colSeen := make(map[string]bool)
	for _, row := range table.Rows {
		r := strings.TrimSpace(row[rowColumn])
		c := strings.TrimSpace(row[colColumn])
		if r == "" || c == "" {
			continue
		}
		rowSeen[r] = true
		colSeen[c] = true
		if cells[r] == nil {
			cells[r] = make(map[string]int)
		}
		cells[r][c]++
	}

	pivot := &Pivot{
		RowColumn: rowColumn,
		ColColumn: colColumn,
		Rows:      orderedLabels(rowColumn, rowSeen),
		Columns:   orderedLabels(colColumn, colSeen),
	}

	pivot.Counts = make([][]int, len(pivot.Rows))
	pivot.RowTotals = make([]int, len(pivot.Rows))
	for i, r := range pivot.Rows {
		pivot.Counts[i] = make([]int, len(pivot.Columns))
		for j, c := range pivot.Columns {
			pivot.Counts[i][j] = cells[r][c]
			pivot.RowTotals[i] += cells[r][c]
		}
	}

	if normalize {
		pivot.Percentages = make([][]float64, len(pivot.Rows))
		for i := range pivot.Rows {
			pivot.Percentages[i] = make([]float64, len(pivot.Columns))
			for j := range pivot.Columns {
				pivot.Percentages[i][j] = percentage(pivot.Counts[i][j], pivot.RowTotals[i])
			}
		}
	}

	return pivot, nil
}

// FilteredCrossTabulation scopes the table to the given countries
// before pivoting. An empty country list pivots everything.
func FilteredCrossTabulation(table *survey.Table, countryColumn string, countries []string, rowColumn, colColumn string, normalize bool) (*Pivot, error) {
	if len(countries) > 0 {
		if table == nil {
			return nil, survey.ErrEmptyTable
		}
		if !table.HasColumn(countryColumn) {
			return nil, survey.NewColumnNotFoundError(countryColumn)
		}
		table = FilterCountries(table, countryColumn, countries)
	}
	return CrossTabulation(table, rowColumn, colColumn, normalize)
}

// ResponseDistribution pivots responses per country: countries as rows,
// response values as columns. With normalize set, cells are row
// percentages instead of counts.
func ResponseDistribution(table *survey.Table, countryColumn, valueColumn string, normalize bool) (*Pivot, error) {
	return CrossTabulation(table, countryColumn, valueColumn, normalize)
}

// OrderLabels sorts response labels the way a pivot over the column
// would: rating-scale order when the column has one, lexical otherwise.
func OrderLabels(column string, labels []string) []string {
	observed := make(map[string]bool, len(labels))
	for _, l := range labels {
		observed[l] = true
	}
	return orderedLabels(column, observed)
}

// orderedLabels orders observed labels by the column's rating scale
// when one applies. The "Not applicable" sentinel sorts after the
// scale; anything unrecognized follows, lexically.
func orderedLabels(column string, observed map[string]bool) []string {
	spec, ok := survey.ScaleFor(column)
	if !ok {
		return sortedKeys(observed)
	}

	used := make(map[string]bool, len(observed))
	labels := make([]string, 0, len(observed))
	for _, v := range spec.Order {
		if observed[v] {
			labels = append(labels, v)
			used[v] = true
		}
	}
	if spec.NA != "" && observed[spec.NA] {
		labels = append(labels, spec.NA)
		used[spec.NA] = true
	}

	var rest []string
	for v := range observed {
		if !used[v] {
			rest = append(rest, v)
		}
	}
	sort.Strings(rest)
	return append(labels, rest...)
}
