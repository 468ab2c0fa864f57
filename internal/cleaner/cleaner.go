package cleaner

import (
	"fmt"
	"strings"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/pkg/logger"
)

// Options control which cleaning operations run. Each operation is
// independent; disabling one never affects the others.
type Options struct {
	NormalizeCountries bool
	NormalizeRatings   bool
	RemoveEmptyRows    bool
	RemoveTestRows     bool

	// EmptyThreshold is the fraction of empty fields at which a row is
	// considered abandoned and dropped. Zero means use the default.
	EmptyThreshold float64

	// CountryColumn overrides auto-detection of the grouping column.
	CountryColumn string

	// ExtraCountries and ExtraSynonyms extend the built-in vocabularies
	// with deployment-specific variants (keys are matched lowercase).
	ExtraCountries map[string]string
	ExtraSynonyms  map[string]string

	// ExtraTestMarkers extends the placeholder values that mark a row as
	// a test response (matched lowercase).
	ExtraTestMarkers []string
}

const defaultEmptyThreshold = 0.8

// DefaultOptions enables every cleaning operation.
func DefaultOptions() Options {
	return Options{
		NormalizeCountries: true,
		NormalizeRatings:   true,
		RemoveEmptyRows:    true,
		RemoveTestRows:     true,
		EmptyThreshold:     defaultEmptyThreshold,
	}
}

// Stats records what a cleaning pass did to the table.
type Stats struct {
	OriginalRows int      `json:"original_rows"`
	RowsRemoved  int      `json:"rows_removed"`
	FinalRows    int      `json:"final_rows"`
	Operations   []string `json:"operations_performed"`
}

// Cleaner normalizes a raw survey table into the canonical vocabulary
// the calculators expect.
type Cleaner struct {
	opts Options
}

func New(opts Options) *Cleaner {
	return &Cleaner{opts: opts}
}

func NewDefault() *Cleaner {
	return New(DefaultOptions())
}

// Known throwaway values people type when trying out a survey form.
var placeholderNames = map[string]bool{
	"test":    true,
	"testing": true,
	"asdf":    true,
	"dummy":   true,
	"xxx":     true,
}

// Clean returns a normalized copy of the table plus a record of the
// operations performed. The input table is never modified. Cleaning an
// already-clean table reports zero rows removed and no operations.
func (c *Cleaner) Clean(table *survey.Table) (*survey.Table, Stats, error) {
	if table == nil {
		return nil, Stats{}, survey.ErrEmptyTable
	}

	clean := table.Clone()
	stats := Stats{OriginalRows: clean.RowCount()}

	if n := normalizeHeaders(clean); n > 0 {
		stats.Operations = append(stats.Operations, fmt.Sprintf("Normalized %d column headers", n))
	}

	// Header normalization can rename the configured country column, so
	// fall back to detection whenever the override is absent.
	countryColumn := c.opts.CountryColumn
	if countryColumn == "" || !clean.HasColumn(countryColumn) {
		countryColumn, _ = survey.DetectCountryColumn(clean.Headers)
	}

	if c.opts.NormalizeCountries && countryColumn != "" && clean.HasColumn(countryColumn) {
		if n := c.normalizeCountries(clean, countryColumn); n > 0 {
			stats.Operations = append(stats.Operations, fmt.Sprintf("Normalized %d country values", n))
		}
	}

	if c.opts.NormalizeRatings {
		if n := c.normalizeRatings(clean); n > 0 {
			stats.Operations = append(stats.Operations, fmt.Sprintf("Normalized %d rating labels", n))
		}
	}

	if c.opts.RemoveEmptyRows {
		if n := removeEmptyRows(clean, c.threshold()); n > 0 {
			stats.Operations = append(stats.Operations, fmt.Sprintf("Removed %d mostly empty rows", n))
		}
	}

	if c.opts.RemoveTestRows && countryColumn != "" && clean.HasColumn(countryColumn) {
		if n := removeTestRows(clean, countryColumn, c.testMarkers()); n > 0 {
			stats.Operations = append(stats.Operations, fmt.Sprintf("Removed %d test or invalid responses", n))
		}
	}

	stats.FinalRows = clean.RowCount()
	stats.RowsRemoved = stats.OriginalRows - stats.FinalRows

	logger.Logger.Infof("[Cleaner] %d rows in, %d rows out (%d operations)",
		stats.OriginalRows, stats.FinalRows, len(stats.Operations))

	return clean, stats, nil
}

func (c *Cleaner) threshold() float64 {
	if c.opts.EmptyThreshold <= 0 || c.opts.EmptyThreshold > 1 {
		return defaultEmptyThreshold
	}
	return c.opts.EmptyThreshold
}

func (c *Cleaner) testMarkers() map[string]bool {
	if len(c.opts.ExtraTestMarkers) == 0 {
		return placeholderNames
	}
	markers := make(map[string]bool, len(placeholderNames)+len(c.opts.ExtraTestMarkers))
	for name := range placeholderNames {
		markers[name] = true
	}
	for _, name := range c.opts.ExtraTestMarkers {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			markers[name] = true
		}
	}
	return markers
}

// normalizeHeaders trims headers and collapses internal whitespace
// runs. Headers that collide after collapsing get a positional suffix
// so each column keeps its own values.
func normalizeHeaders(t *survey.Table) int {
	newHeaders := make([]string, len(t.Headers))
	seen := make(map[string]int, len(t.Headers))
	changed := 0
	for i, header := range t.Headers {
		h := strings.Join(strings.Fields(header), " ")
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s (%d)", h, n)
		}
		if h != header {
			changed++
		}
		newHeaders[i] = h
	}
	if changed == 0 {
		return 0
	}

	for ri, row := range t.Rows {
		newRow := make(survey.Row, len(newHeaders))
		for i, oldHeader := range t.Headers {
			newRow[newHeaders[i]] = row[oldHeader]
		}
		t.Rows[ri] = newRow
	}
	t.Headers = newHeaders
	return changed
}

func (c *Cleaner) normalizeCountries(t *survey.Table, column string) int {
	changed := 0
	for _, row := range t.Rows {
		value := row[column]
		if strings.TrimSpace(value) == "" {
			if value != "" {
				row[column] = ""
				changed++
			}
			continue
		}
		canon := c.canonicalCountry(value)
		if canon != value {
			row[column] = canon
			changed++
		}
	}
	return changed
}

func (c *Cleaner) canonicalCountry(value string) string {
	if len(c.opts.ExtraCountries) > 0 {
		if mapped, ok := c.opts.ExtraCountries[strings.ToLower(strings.TrimSpace(value))]; ok {
			return mapped
		}
	}
	return survey.CanonicalCountry(value)
}

func (c *Cleaner) normalizeRatings(t *survey.Table) int {
	changed := 0
	for _, header := range t.Headers {
		spec, ok := survey.ScaleFor(header)
		if !ok {
			continue
		}
		for _, row := range t.Rows {
			value := row[header]
			if value == "" {
				continue
			}
			canon := c.canonicalRating(spec, value)
			if canon != value {
				row[header] = canon
				changed++
			}
		}
	}
	return changed
}

func (c *Cleaner) canonicalRating(spec survey.ScaleSpec, value string) string {
	if len(c.opts.ExtraSynonyms) > 0 {
		if mapped, ok := c.opts.ExtraSynonyms[strings.ToLower(strings.TrimSpace(value))]; ok {
			value = mapped
		}
	}
	return spec.Canonical(value)
}

// removeEmptyRows drops rows whose fraction of empty fields meets the
// threshold. Returns the number of rows removed.
func removeEmptyRows(t *survey.Table, threshold float64) int {
	if len(t.Headers) == 0 {
		return 0
	}
	columns := float64(len(t.Headers))
	kept := make([]survey.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		missing := 0
		for _, header := range t.Headers {
			if strings.TrimSpace(row[header]) == "" {
				missing++
			}
		}
		if float64(missing)/columns < threshold {
			kept = append(kept, row)
		}
	}
	removed := len(t.Rows) - len(kept)
	t.Rows = kept
	return removed
}

// removeTestRows drops rows with no country value or with a known
// placeholder in place of one.
func removeTestRows(t *survey.Table, column string, markers map[string]bool) int {
	kept := make([]survey.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		value := strings.TrimSpace(row[column])
		if value == "" || markers[strings.ToLower(value)] {
			continue
		}
		kept = append(kept, row)
	}
	removed := len(t.Rows) - len(kept)
	t.Rows = kept
	return removed
}
