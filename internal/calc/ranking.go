package calc

import (
	"sort"
	"strings"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
)

// defaultTopTwo is the high-importance pair used when a question has no
// recognized scale.
var defaultTopTwo = []string{"Very", "Extremely"}

// RankImportanceFactors scores each question by the share of responses
// in its top two scale labels and orders questions by that share,
// highest first. Ties keep the input order. Empty and "Not applicable"
// responses are excluded from denominators; questions missing from the
// table are skipped.
func RankImportanceFactors(table *survey.Table, countryColumn string, questions []string, countries []string) ([]FactorRank, error) {
	if table == nil {
		return nil, survey.ErrEmptyTable
	}
	if !table.HasColumn(countryColumn) {
		return nil, survey.NewColumnNotFoundError(countryColumn)
	}

	scoped := table
	if len(countries) > 0 {
		scoped = FilterCountries(table, countryColumn, countries)
	}

	ranks := make([]FactorRank, 0, len(questions))
	for _, question := range questions {
		if !scoped.HasColumn(question) {
			continue
		}

		spec, hasScale := survey.ScaleFor(question)
		topTwo := defaultTopTwo
		if hasScale {
			topTwo = spec.TopTwo()
		}

		hits, total := 0, 0
		for _, row := range scoped.Rows {
			value := strings.TrimSpace(row[question])
			if value == "" || survey.IsNotApplicable(value) {
				continue
			}
			if hasScale {
				value = spec.Canonical(value)
			}
			total++
			for _, top := range topTwo {
				if value == top {
					hits++
					break
				}
			}
		}

		ranks = append(ranks, FactorRank{
			Question: question,
			HighPct:  percentage(hits, total),
			Count:    hits,
			Total:    total,
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].HighPct > ranks[j].HighPct
	})
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks, nil
}

// RankCountriesByHighImportance orders countries by their combined
// top-two percentage for one question, highest first. Ties keep
// nationality order.
func RankCountriesByHighImportance(table *survey.Table, countryColumn, question string, countries []string) ([]HighImportanceRank, error) {
	scoped := table
	if table != nil && len(countries) > 0 {
		scoped = FilterCountries(table, countryColumn, countries)
	}

	breakdown, err := NationalityPercentage(scoped, countryColumn, question, Options{
		ExcludeNull:          true,
		ExcludeNotApplicable: true,
	})
	if err != nil {
		return nil, err
	}

	spec, hasScale := survey.ScaleFor(question)
	topTwo := defaultTopTwo
	if hasScale {
		topTwo = spec.TopTwo()
	}

	sums := make(map[string]float64)
	order := make([]string, 0, len(sums))
	for _, row := range breakdown {
		isTop := false
		for _, top := range topTwo {
			if row.Value == top {
				isTop = true
				break
			}
		}
		if !isTop {
			continue
		}
		if _, seen := sums[row.Nationality]; !seen {
			order = append(order, row.Nationality)
		}
		sums[row.Nationality] += row.Percentage
	}

	ranks := make([]HighImportanceRank, 0, len(order))
	for _, country := range order {
		ranks = append(ranks, HighImportanceRank{
			Nationality: country,
			HighPct:     round2(sums[country]),
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].HighPct > ranks[j].HighPct
	})
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks, nil
}
