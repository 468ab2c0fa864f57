package testkit

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
)

// CountryProfile weights how often a country appears and how its
// respondents lean. Bias above zero tilts answers toward the high end
// of each rating scale.
type CountryProfile struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Bias   float64 `json:"bias"`
}

// SurveyGeneratorConfig configures the synthetic survey generator.
type SurveyGeneratorConfig struct {
	ResponseCount int              `json:"response_count"`
	Countries     []CountryProfile `json:"countries"`
	Questions     []string         `json:"questions"`

	// NoiseRate is the chance a generated cell gets a messy variant
	// (case changes, padding) for the cleaner to normalize.
	NoiseRate float64 `json:"noise_rate"`
	// MissingRate is the chance a question is left unanswered.
	MissingRate float64 `json:"missing_rate"`
	// EmptyRowRate and TestRowRate inject abandoned and throwaway
	// responses the cleaner is expected to drop.
	EmptyRowRate float64 `json:"empty_row_rate"`
	TestRowRate  float64 `json:"test_row_rate"`

	Seed int64 `json:"seed"`
}

// DefaultSurveyConfig returns a realistic small survey: a handful of
// countries with distinct answer profiles and a little mess.
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		ResponseCount: 60,
		Countries: []CountryProfile{
			{Name: "India", Weight: 0.30, Bias: 0.8},
			{Name: "Nigeria", Weight: 0.25, Bias: 0.4},
			{Name: "China", Weight: 0.15, Bias: 0.2},
			{Name: "Pakistan", Weight: 0.12, Bias: 0.5},
			{Name: "Saudi Arabia", Weight: 0.10, Bias: 0.1},
			{Name: "Myanmar", Weight: 0.08, Bias: 0.3},
		},
		Questions: []string{
			"How important was the cost of study? *",
			"How important was the university ranking? *",
			"I feel included in academic discussions *",
			"How difficult was adapting to academic culture? *",
			"How would you rate your english language ability? *",
		},
		NoiseRate:    0.10,
		MissingRate:  0.05,
		EmptyRowRate: 0.03,
		TestRowRate:  0.03,
		Seed:         42,
	}
}

// CountryColumn is the grouping header the generator writes.
const CountryColumn = "What is your home country? *"

// SurveyGenerator produces deterministic synthetic survey tables.
type SurveyGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyGenerator creates a generator seeded from the config.
func NewSurveyGenerator(config SurveyGeneratorConfig) *SurveyGenerator {
	return &SurveyGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds the survey table. The same config always yields the
// same table.
func (g *SurveyGenerator) Generate() *survey.Table {
	headers := append([]string{"Id", "Start time", CountryColumn}, g.config.Questions...)
	headers = append(headers, "Total points")
	table := survey.NewTable(headers)

	start := time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < g.config.ResponseCount; i++ {
		row := survey.Row{
			"Id":         fmt.Sprintf("%d", i+1),
			"Start time": start.Add(time.Duration(i) * 37 * time.Minute).Format("2006-01-02 15:04:05"),
		}

		switch {
		case g.rng.Float64() < g.config.EmptyRowRate:
			// Abandoned response: only the form bookkeeping filled in.
		case g.rng.Float64() < g.config.TestRowRate:
			row[CountryColumn] = g.pick("test", "asdf", "dummy")
			row[g.config.Questions[0]] = "Extremely"
		default:
			profile := g.pickCountry()
			row[CountryColumn] = g.noisy(profile.Name)
			for _, q := range g.config.Questions {
				if g.rng.Float64() < g.config.MissingRate {
					continue
				}
				row[q] = g.noisy(g.answer(q, profile.Bias))
			}
			row["Total points"] = fmt.Sprintf("%d", 40+g.rng.Intn(61))
		}

		table.AppendRow(row)
	}
	return table
}

func (g *SurveyGenerator) pickCountry() CountryProfile {
	total := 0.0
	for _, c := range g.config.Countries {
		total += c.Weight
	}
	target := g.rng.Float64() * total
	for _, c := range g.config.Countries {
		target -= c.Weight
		if target < 0 {
			return c
		}
	}
	return g.config.Countries[len(g.config.Countries)-1]
}

// answer samples a label from the question's scale, tilted toward the
// top by the country's bias. Questions without a recognized scale get a
// free-text placeholder.
func (g *SurveyGenerator) answer(question string, bias float64) string {
	spec, ok := survey.ScaleFor(question)
	if !ok {
		return g.pick("Yes", "No", "Maybe")
	}
	if spec.NA != "" && g.rng.Float64() < 0.05 {
		return spec.NA
	}

	weights := make([]float64, len(spec.Order))
	total := 0.0
	for i := range spec.Order {
		weights[i] = 1 + bias*float64(i)
		total += weights[i]
	}
	target := g.rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return spec.Order[i]
		}
	}
	return spec.Order[len(spec.Order)-1]
}

// noisy returns the value unchanged most of the time, otherwise a messy
// variant the cleaning pass should canonicalize.
func (g *SurveyGenerator) noisy(value string) string {
	if g.rng.Float64() >= g.config.NoiseRate {
		return value
	}
	switch g.rng.Intn(3) {
	case 0:
		return strings.ToLower(value)
	case 1:
		return strings.ToUpper(value)
	default:
		return "  " + value + " "
	}
}

func (g *SurveyGenerator) pick(options ...string) string {
	return options[g.rng.Intn(len(options))]
}
