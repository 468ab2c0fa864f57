package cleaner

import (
	"fmt"
	"os"
	"strings"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/errors"

	"gopkg.in/yaml.v3"
)

// fileOptions mirrors Options for YAML decoding. Pointer fields
// distinguish "not set" from an explicit false/zero.
type fileOptions struct {
	NormalizeCountries *bool             `yaml:"normalize_countries"`
	NormalizeRatings   *bool             `yaml:"normalize_ratings"`
	RemoveEmptyRows    *bool             `yaml:"remove_empty_rows"`
	RemoveTestRows     *bool             `yaml:"remove_test_rows"`
	EmptyThreshold     *float64          `yaml:"empty_threshold"`
	CountryColumn      string            `yaml:"country_column"`
	Countries          map[string]string `yaml:"countries"`
	Synonyms           map[string]string `yaml:"synonyms"`
	TestMarkers        []string          `yaml:"test_markers"`
}

// LoadOptions reads cleaning options from a YAML file, overlaying them
// on the defaults. An empty path returns the defaults unchanged.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.ConfigInvalid(fmt.Sprintf("cleaning config %s: %v", path, err))
	}

	var file fileOptions
	if err := yaml.Unmarshal(data, &file); err != nil {
		return opts, errors.ConfigInvalid(fmt.Sprintf("cleaning config %s: %v", path, err))
	}

	if file.NormalizeCountries != nil {
		opts.NormalizeCountries = *file.NormalizeCountries
	}
	if file.NormalizeRatings != nil {
		opts.NormalizeRatings = *file.NormalizeRatings
	}
	if file.RemoveEmptyRows != nil {
		opts.RemoveEmptyRows = *file.RemoveEmptyRows
	}
	if file.RemoveTestRows != nil {
		opts.RemoveTestRows = *file.RemoveTestRows
	}
	if file.EmptyThreshold != nil {
		if *file.EmptyThreshold <= 0 || *file.EmptyThreshold > 1 {
			return opts, errors.ConfigInvalid(fmt.Sprintf("cleaning config %s: empty_threshold must be in (0, 1]", path))
		}
		opts.EmptyThreshold = *file.EmptyThreshold
	}
	if file.CountryColumn != "" {
		opts.CountryColumn = file.CountryColumn
	}
	if len(file.Countries) > 0 {
		opts.ExtraCountries = lowercaseKeys(file.Countries)
	}
	if len(file.Synonyms) > 0 {
		opts.ExtraSynonyms = lowercaseKeys(file.Synonyms)
	}
	if len(file.TestMarkers) > 0 {
		opts.ExtraTestMarkers = file.TestMarkers
	}

	return opts, nil
}

func lowercaseKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
