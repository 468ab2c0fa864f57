package validate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/errors"
)

// Expectations is a hand-computed answer sheet loaded from YAML:
//
//	total_responses: 64
//	counts:
//	  India: 25
//	  Nigeria: 20
//	percentages:
//	  - question: "How important is cost? *"
//	    country: India
//	    value: Extremely
//	    expected_percentage: 60.0
//	    tolerance: 0.1
type Expectations struct {
	TotalResponses int             `yaml:"total_responses"`
	Counts         map[string]int  `yaml:"counts"`
	Percentages    []BreakdownCase `yaml:"percentages"`
}

// LoadExpectations reads and checks an expectations file.
func LoadExpectations(path string) (Expectations, error) {
	var exp Expectations

	raw, err := os.ReadFile(path)
	if err != nil {
		return exp, errors.ConfigInvalid(fmt.Sprintf("expectations %s: %v", path, err))
	}
	if err := yaml.Unmarshal(raw, &exp); err != nil {
		return exp, errors.ConfigInvalid(fmt.Sprintf("expectations %s: %v", path, err))
	}

	if len(exp.Counts) > 0 && exp.TotalResponses <= 0 {
		return exp, errors.ConfigInvalid(fmt.Sprintf("expectations %s: counts require total_responses", path))
	}
	for i, c := range exp.Percentages {
		if c.Question == "" || c.Country == "" || c.Value == "" {
			return exp, errors.ConfigInvalid(fmt.Sprintf("expectations %s: percentage case %d is missing question, country, or value", path, i+1))
		}
	}
	return exp, nil
}
