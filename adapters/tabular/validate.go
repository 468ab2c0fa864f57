package tabular

import (
	"fmt"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/pkg/logger"
)

// ValidationSummary describes whether a freshly loaded table is usable.
// Issues are fatal; warnings flag data-quality problems the pipeline
// can proceed through.
type ValidationSummary struct {
	Valid         bool     `json:"valid"`
	RowCount      int      `json:"row_count"`
	ColumnCount   int      `json:"column_count"`
	CountryColumn string   `json:"country_column,omitempty"`
	Issues        []string `json:"issues,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Validate inspects a loaded table for the structural properties the
// rest of the pipeline relies on.
func Validate(table *survey.Table) ValidationSummary {
	summary := ValidationSummary{}
	if table == nil || table.IsEmpty() {
		summary.Issues = append(summary.Issues, "table has no data rows")
		return summary
	}

	summary.RowCount = table.RowCount()
	summary.ColumnCount = table.ColumnCount()

	column, ok := survey.DetectCountryColumn(table.Headers)
	if !ok {
		summary.Issues = append(summary.Issues, "no home country column found")
		logger.Logger.Warnf("[DataReader] Validation: no home country column among %d headers", len(table.Headers))
		return summary
	}
	summary.CountryColumn = column

	missing := table.MissingCount(column)
	if missing*2 > summary.RowCount {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("more than half of rows (%d of %d) are missing a value in %q", missing, summary.RowCount, column))
	}

	summary.Valid = len(summary.Issues) == 0
	return summary
}
