package processor

import (
	"io"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/adapters/tabular"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/calc"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/cleaner"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/pkg/logger"
)

// Processor runs the load -> validate -> clean pipeline and serves the
// cleaned table to the calculators. A Process call must finish before
// the processor is shared; afterwards every accessor is read-only.
type Processor struct {
	opts cleaner.Options

	raw           *survey.Table
	cleaned       *survey.Table
	countryColumn string
	stats         cleaner.Stats
	warnings      []string
}

// New creates a processor that cleans with the given options.
func New(opts cleaner.Options) *Processor {
	return &Processor{opts: opts}
}

// NewDefault creates a processor with the default cleaning options.
func NewDefault() *Processor {
	return New(cleaner.DefaultOptions())
}

// ProcessPipeline loads a survey file, validates it, and cleans it. On
// failure the processor keeps its previous state.
func (p *Processor) ProcessPipeline(path string) error {
	return p.ProcessPipelineSheet(path, "")
}

// ProcessPipelineSheet is ProcessPipeline reading a named workbook
// sheet instead of the first one.
func (p *Processor) ProcessPipelineSheet(path, sheet string) error {
	raw, err := tabular.NewDataReaderWithSheet(path, sheet).ReadData()
	if err != nil {
		return err
	}
	return p.process(raw)
}

// ProcessUpload runs the pipeline on an uploaded file. The filename
// only determines the format.
func (p *Processor) ProcessUpload(src io.Reader, filename string) error {
	raw, err := tabular.ReadFrom(src, filename)
	if err != nil {
		return err
	}
	return p.process(raw)
}

// Reprocess cleans the retained raw table again with new options, so a
// dashboard can flip cleaning toggles without re-uploading.
func (p *Processor) Reprocess(opts cleaner.Options) error {
	if p.raw == nil {
		return survey.ErrNotLoaded
	}
	p.opts = opts
	return p.process(p.raw)
}

func (p *Processor) process(raw *survey.Table) error {
	validation := tabular.Validate(raw)
	if !validation.Valid {
		if validation.RowCount == 0 {
			return survey.ErrEmptyTable
		}
		return survey.ErrCountryColumn
	}

	cleaned, stats, err := cleaner.New(p.opts).Clean(raw)
	if err != nil {
		return err
	}

	// Header normalization may have renamed the country column, so
	// resolve it against the cleaned headers, not the raw ones.
	countryColumn, ok := survey.DetectCountryColumn(cleaned.Headers)
	if !ok {
		return survey.ErrCountryColumn
	}

	p.raw = raw
	p.cleaned = cleaned
	p.countryColumn = countryColumn
	p.stats = stats
	p.warnings = validation.Warnings

	logger.Logger.Infof("[Processor] Pipeline complete: %d raw rows, %d cleaned rows, grouping by %q",
		stats.OriginalRows, stats.FinalRows, countryColumn)
	return nil
}

// Loaded reports whether a pipeline run has succeeded.
func (p *Processor) Loaded() bool {
	return p.cleaned != nil
}

// Table returns the cleaned survey table.
func (p *Processor) Table() (*survey.Table, error) {
	if !p.Loaded() {
		return nil, survey.ErrNotLoaded
	}
	return p.cleaned, nil
}

// CountryColumn returns the resolved grouping column.
func (p *Processor) CountryColumn() (string, error) {
	if !p.Loaded() {
		return "", survey.ErrNotLoaded
	}
	return p.countryColumn, nil
}

// Countries returns the distinct countries in the cleaned data, sorted.
func (p *Processor) Countries() ([]string, error) {
	if !p.Loaded() {
		return nil, survey.ErrNotLoaded
	}
	return p.cleaned.DistinctValues(p.countryColumn), nil
}

// NationalityCounts returns response counts per country.
func (p *Processor) NationalityCounts() (map[string]int, error) {
	if !p.Loaded() {
		return nil, survey.ErrNotLoaded
	}
	return p.cleaned.CountBy(p.countryColumn), nil
}

// NationalityPercentages breaks one question down by country.
func (p *Processor) NationalityPercentages(column string, opts calc.Options) ([]calc.BreakdownRow, error) {
	if !p.Loaded() {
		return nil, survey.ErrNotLoaded
	}
	return calc.NationalityPercentage(p.cleaned, p.countryColumn, column, opts)
}

// RatingBreakdown is NationalityPercentages with the default
// exclusions, the shape rating charts consume.
func (p *Processor) RatingBreakdown(column string) ([]calc.BreakdownRow, error) {
	return p.NationalityPercentages(column, calc.DefaultOptions())
}

// FilterByCountries returns the rows for the given countries. Filtering
// everything away is an error so callers never chart an empty table.
func (p *Processor) FilterByCountries(countries []string) (*survey.Table, error) {
	if !p.Loaded() {
		return nil, survey.ErrNotLoaded
	}
	filtered := calc.FilterCountries(p.cleaned, p.countryColumn, countries)
	if filtered.RowCount() == 0 {
		return nil, survey.ErrNoRowsAfterFilter
	}
	return filtered, nil
}

// QuestionColumns lists the survey's question headers. With excludeMeta
// set, bookkeeping columns (the country column, timestamps, points,
// feedback) are dropped.
func (p *Processor) QuestionColumns(excludeMeta bool) ([]string, error) {
	if !p.Loaded() {
		return nil, survey.ErrNotLoaded
	}
	if !excludeMeta {
		headers := make([]string, len(p.cleaned.Headers))
		copy(headers, p.cleaned.Headers)
		return headers, nil
	}
	var questions []string
	for _, h := range p.cleaned.Headers {
		if survey.IsMetadataColumn(h, p.countryColumn) {
			continue
		}
		questions = append(questions, h)
	}
	return questions, nil
}

// CleaningStats returns what the cleaning pass did.
func (p *Processor) CleaningStats() (cleaner.Stats, error) {
	if !p.Loaded() {
		return cleaner.Stats{}, survey.ErrNotLoaded
	}
	return p.stats, nil
}

// Warnings returns non-fatal findings from load validation.
func (p *Processor) Warnings() []string {
	return p.warnings
}

// DataSummary describes the processed dataset for dashboards.
type DataSummary struct {
	RawRows       int            `json:"raw_rows"`
	CleanedRows   int            `json:"cleaned_rows"`
	Columns       int            `json:"columns"`
	CountryColumn string         `json:"country_column"`
	Countries     []string       `json:"countries"`
	CountryCounts map[string]int `json:"country_counts"`
	MissingCounts map[string]int `json:"missing_counts"`
	Warnings      []string       `json:"warnings,omitempty"`
	CleaningStats cleaner.Stats  `json:"cleaning_stats"`
}

// Summary collects the dataset-level numbers in one call.
func (p *Processor) Summary() (DataSummary, error) {
	if !p.Loaded() {
		return DataSummary{}, survey.ErrNotLoaded
	}

	missing := make(map[string]int, len(p.cleaned.Headers))
	for _, h := range p.cleaned.Headers {
		if n := p.cleaned.MissingCount(h); n > 0 {
			missing[h] = n
		}
	}

	return DataSummary{
		RawRows:       p.raw.RowCount(),
		CleanedRows:   p.cleaned.RowCount(),
		Columns:       p.cleaned.ColumnCount(),
		CountryColumn: p.countryColumn,
		Countries:     p.cleaned.DistinctValues(p.countryColumn),
		CountryCounts: p.cleaned.CountBy(p.countryColumn),
		MissingCounts: missing,
		Warnings:      p.warnings,
		CleaningStats: p.stats,
	}, nil
}
