package calc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"

	"github.com/montanaflynn/stats"
)

// Statistic names accepted by CountryStatistics.
const (
	StatMean   = "mean"
	StatMedian = "median"
	StatStd    = "std"
	StatCount  = "count"
)

// CountryStatistics computes one statistic of a numeric column per
// country. Values that do not parse as numbers are ignored; a country
// whose responses are all non-numeric still appears, with a zero value.
func CountryStatistics(table *survey.Table, countryColumn, valueColumn, statistic string) ([]StatValue, error) {
	if statistic == "" {
		statistic = StatMean
	}
	switch statistic {
	case StatMean, StatMedian, StatStd, StatCount:
	default:
		return nil, fmt.Errorf("unknown statistic %q", statistic)
	}

	summary, err := CountryStatisticsSummary(table, countryColumn, valueColumn)
	if err != nil {
		return nil, err
	}

	result := make([]StatValue, len(summary))
	for i, s := range summary {
		v := StatValue{Nationality: s.Nationality}
		switch statistic {
		case StatMean:
			v.Value = s.Mean
		case StatMedian:
			v.Value = s.Median
		case StatStd:
			v.Value = s.Std
		case StatCount:
			v.Value = float64(s.Count)
		}
		result[i] = v
	}
	return result, nil
}

// CountryStatisticsSummary summarizes a numeric column per country with
// mean, median, sample standard deviation, and numeric count. Std uses
// the (n-1) estimator, matching how survey tools report spread; fewer
// than two samples report zero spread.
func CountryStatisticsSummary(table *survey.Table, countryColumn, valueColumn string) ([]CountryStat, error) {
	if table == nil {
		return nil, survey.ErrEmptyTable
	}
	if !table.HasColumn(countryColumn) {
		return nil, survey.NewColumnNotFoundError(countryColumn)
	}
	if !table.HasColumn(valueColumn) {
		return nil, survey.NewColumnNotFoundError(valueColumn)
	}

	samples := make(map[string][]float64)
	for _, row := range table.Rows {
		country := strings.TrimSpace(row[countryColumn])
		if country == "" {
			continue
		}
		if _, ok := samples[country]; !ok {
			samples[country] = nil
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[valueColumn]), 64)
		if err != nil {
			continue
		}
		samples[country] = append(samples[country], value)
	}

	result := make([]CountryStat, 0, len(samples))
	for _, country := range sortedKeys(samples) {
		data := samples[country]
		stat := CountryStat{Nationality: country, Count: len(data)}
		if len(data) > 0 {
			mean, err := stats.Mean(data)
			if err != nil {
				return nil, err
			}
			median, err := stats.Median(data)
			if err != nil {
				return nil, err
			}
			stat.Mean = round2(mean)
			stat.Median = round2(median)
		}
		if len(data) > 1 {
			std, err := stats.StandardDeviationSample(data)
			if err != nil {
				return nil, err
			}
			stat.Std = round2(std)
		}
		result = append(result, stat)
	}
	return result, nil
}
