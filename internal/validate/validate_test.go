package validate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/processor"
)

const ratingCol = "How important is cost? *"

const fixtureCSV = `What is your home country? *,How important is cost? *
india,extremely
INDIA,Very
Nigeria,very
test,Moderately
`

func loadedProcessor(t *testing.T) *processor.Processor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	p := processor.NewDefault()
	if err := p.ProcessPipeline(path); err != nil {
		t.Fatalf("ProcessPipeline failed: %v", err)
	}
	return p
}

func TestReport_Tolerances(t *testing.T) {
	r := NewReport()

	if !r.AddCount("count within one", 10, 11) {
		t.Error("count off by one should pass")
	}
	if r.AddCount("count off by two", 10, 12) {
		t.Error("count off by two should fail")
	}
	if !r.AddPercentage("pct within tenth", 50.0, 50.05) {
		t.Error("percentage off by 0.05 should pass")
	}
	if r.AddPercentage("pct off", 50.0, 50.3) {
		t.Error("percentage off by 0.3 should fail")
	}
	if !r.Add("custom tolerance", 1.0, 1.005, 0.01) {
		t.Error("difference under a custom tolerance should pass")
	}
}

func TestReport_PassedAndCounts(t *testing.T) {
	r := NewReport()
	if !r.Passed() {
		t.Error("empty report should pass")
	}

	r.AddCount("a", 5, 5)
	r.AddCount("b", 5, 6)
	r.AddCount("c", 5, 9)

	total, passed, failed := r.Counts()
	if total != 3 || passed != 2 || failed != 1 {
		t.Errorf("Counts = %d/%d/%d, want 3/2/1", total, passed, failed)
	}
	if r.Passed() {
		t.Error("report with a failure should not pass")
	}
}

func TestReport_WriteTo(t *testing.T) {
	r := NewReport()
	r.AddCount("Count - India", 25, 25)
	r.AddPercentage("Percentage - India", 45.5, 44.0)

	var b strings.Builder
	if _, err := r.WriteTo(&b); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		strings.Repeat("=", 70),
		"VALIDATION REPORT",
		"Total Tests: 2",
		"Passed: 1 (50.0%)",
		"Failed: 1 (50.0%)",
		"PASS  Count - India",
		"FAIL  Percentage - India",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestValidateCountryCounts(t *testing.T) {
	p := loadedProcessor(t)

	report, err := ValidateCountryCounts(p, map[string]int{"India": 2, "Nigeria": 1}, 3)
	if err != nil {
		t.Fatalf("ValidateCountryCounts failed: %v", err)
	}

	if total, _, failed := report.Counts(); total != 5 || failed != 0 {
		t.Errorf("Counts = %d total %d failed, want 5 total all passing\n%+v", total, failed, report.Results)
	}
	if !report.Passed() {
		t.Error("matching expectations should pass")
	}
}

func TestValidateCountryCounts_MissingCountrySkipsPercentage(t *testing.T) {
	p := loadedProcessor(t)

	report, err := ValidateCountryCounts(p, map[string]int{"Myanmar": 5}, 3)
	if err != nil {
		t.Fatalf("ValidateCountryCounts failed: %v", err)
	}

	// Total check plus the count check; no percentage check for a
	// country that never appears.
	if total, _, _ := report.Counts(); total != 2 {
		t.Errorf("Counts total = %d, want 2\n%+v", total, report.Results)
	}
	if report.Passed() {
		t.Error("a missing country should fail its count check")
	}
}

func TestValidateCountryCounts_NotLoaded(t *testing.T) {
	p := processor.NewDefault()

	_, err := ValidateCountryCounts(p, map[string]int{"India": 2}, 3)
	if !errors.Is(err, survey.ErrNotLoaded) {
		t.Fatalf("err = %v, want ErrNotLoaded", err)
	}
}

func TestValidateBreakdown(t *testing.T) {
	p := loadedProcessor(t)

	report, err := ValidateBreakdown(p, []BreakdownCase{
		{Question: ratingCol, Country: "India", Value: "Extremely", Expected: 50.0},
		{Question: ratingCol, Country: "India", Value: "Not at all", Expected: 0.0},
		{Question: "No such question", Country: "India", Value: "Extremely", Expected: 10.0},
	})
	if err != nil {
		t.Fatalf("ValidateBreakdown failed: %v", err)
	}

	results := report.Results
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if !results[0].Passed {
		t.Errorf("India Extremely at 50%% should pass: %+v", results[0])
	}
	if results[0].Name != "Test 1: India - "+ratingCol+" - Extremely" {
		t.Errorf("name = %q", results[0].Name)
	}
	if results[1].Passed {
		t.Error("a value nobody chose should fail even when zero was expected")
	}
	if results[2].Passed || results[2].Actual != 0 {
		t.Errorf("missing question should fail with actual 0: %+v", results[2])
	}
	if results[1].Tolerance != PercentageTolerance {
		t.Errorf("default tolerance = %v, want %v", results[1].Tolerance, PercentageTolerance)
	}
}

func TestLoadExpectations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expected.yaml")
	content := `total_responses: 3
counts:
  India: 2
  Nigeria: 1
percentages:
  - question: "How important is cost? *"
    country: India
    value: Extremely
    expected_percentage: 50.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	exp, err := LoadExpectations(path)
	if err != nil {
		t.Fatalf("LoadExpectations failed: %v", err)
	}
	if exp.TotalResponses != 3 || exp.Counts["India"] != 2 {
		t.Errorf("expectations = %+v", exp)
	}
	if len(exp.Percentages) != 1 || exp.Percentages[0].Expected != 50.0 {
		t.Errorf("percentages = %+v", exp.Percentages)
	}
	if exp.Percentages[0].Tolerance != 0 {
		t.Errorf("omitted tolerance should stay zero until applied, got %v", exp.Percentages[0].Tolerance)
	}
}

func TestLoadExpectations_CountsRequireTotal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expected.yaml")
	if err := os.WriteFile(path, []byte("counts:\n  India: 2\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadExpectations(path); err == nil {
		t.Error("counts without total_responses should be rejected")
	}
}

func TestLoadExpectations_IncompleteCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expected.yaml")
	content := "percentages:\n  - country: India\n    expected_percentage: 50.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadExpectations(path); err == nil {
		t.Error("a case without a question should be rejected")
	}
}

func TestRun_CombinedReport(t *testing.T) {
	p := loadedProcessor(t)

	report, err := Run(p, Expectations{
		TotalResponses: 3,
		Counts:         map[string]int{"India": 2, "Nigeria": 1},
		Percentages: []BreakdownCase{
			{Question: ratingCol, Country: "India", Value: "Extremely", Expected: 50.0},
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if total, _, _ := report.Counts(); total != 6 {
		t.Errorf("combined total = %d, want 6", total)
	}
	if !report.Passed() {
		t.Errorf("all expectations match, report should pass\n%+v", report.Results)
	}
}
