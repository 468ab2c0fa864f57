package processor

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/calc"
	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/cleaner"
)

const (
	countryCol = "What is your home country? *"
	ratingCol  = "How important is cost? *"
)

const messyCSV = `Id,Start time,What is your home country? *,How important is cost? *
1,2024-01-01,india,extremely
2,2024-01-02,INDIA,Very
3,2024-01-03, Nigeria ,very
4,2024-01-04,test,Moderately
5,2024-01-05,,Very
`

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestProcessPipeline_EndToEnd(t *testing.T) {
	p := NewDefault()
	if err := p.ProcessPipeline(writeCSV(t, "survey.csv", messyCSV)); err != nil {
		t.Fatalf("ProcessPipeline failed: %v", err)
	}

	if !p.Loaded() {
		t.Fatal("processor should report loaded")
	}

	countries, err := p.Countries()
	if err != nil {
		t.Fatalf("Countries failed: %v", err)
	}
	if !reflect.DeepEqual(countries, []string{"India", "Nigeria"}) {
		t.Errorf("Countries = %v, want [India Nigeria]", countries)
	}

	counts, err := p.NationalityCounts()
	if err != nil {
		t.Fatalf("NationalityCounts failed: %v", err)
	}
	if counts["India"] != 2 || counts["Nigeria"] != 1 {
		t.Errorf("counts = %v, want India 2 Nigeria 1", counts)
	}

	summary, err := p.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.RawRows != 5 || summary.CleanedRows != 3 || summary.Columns != 4 {
		t.Errorf("summary = %+v, want 5 raw, 3 cleaned, 4 columns", summary)
	}
	if summary.CountryColumn != countryCol {
		t.Errorf("CountryColumn = %q", summary.CountryColumn)
	}
	if summary.CleaningStats.RowsRemoved != 2 {
		t.Errorf("RowsRemoved = %d, want 2 (test row and blank country)", summary.CleaningStats.RowsRemoved)
	}
	if len(summary.MissingCounts) != 0 {
		t.Errorf("MissingCounts = %v, want none after cleaning", summary.MissingCounts)
	}
}

func TestProcessor_NotLoadedBeforePipeline(t *testing.T) {
	p := NewDefault()

	if p.Loaded() {
		t.Fatal("fresh processor should not report loaded")
	}

	checks := map[string]error{}
	_, err := p.Table()
	checks["Table"] = err
	_, err = p.CountryColumn()
	checks["CountryColumn"] = err
	_, err = p.Countries()
	checks["Countries"] = err
	_, err = p.NationalityCounts()
	checks["NationalityCounts"] = err
	_, err = p.NationalityPercentages(ratingCol, calc.DefaultOptions())
	checks["NationalityPercentages"] = err
	_, err = p.FilterByCountries([]string{"India"})
	checks["FilterByCountries"] = err
	_, err = p.QuestionColumns(true)
	checks["QuestionColumns"] = err
	_, err = p.CategorizedQuestions()
	checks["CategorizedQuestions"] = err
	_, err = p.Summary()
	checks["Summary"] = err
	_, err = p.CleaningStats()
	checks["CleaningStats"] = err
	checks["Reprocess"] = p.Reprocess(cleaner.DefaultOptions())

	for name, err := range checks {
		if !errors.Is(err, survey.ErrNotLoaded) {
			t.Errorf("%s: err = %v, want ErrNotLoaded", name, err)
		}
	}
}

func TestProcessPipeline_MissingCountryColumn(t *testing.T) {
	path := writeCSV(t, "nocountry.csv", "Name,Rating\nAlice,Very\n")

	p := NewDefault()
	err := p.ProcessPipeline(path)
	if !errors.Is(err, survey.ErrCountryColumn) {
		t.Fatalf("err = %v, want ErrCountryColumn", err)
	}
	if p.Loaded() {
		t.Error("failed pipeline should leave processor unloaded")
	}
}

func TestProcessPipeline_MissingFile(t *testing.T) {
	p := NewDefault()
	err := p.ProcessPipeline(filepath.Join(t.TempDir(), "absent.csv"))
	if !survey.IsLoadError(err) {
		t.Fatalf("err = %v, want a load error", err)
	}
}

func TestProcessUpload(t *testing.T) {
	p := NewDefault()
	if err := p.ProcessUpload(strings.NewReader(messyCSV), "responses.csv"); err != nil {
		t.Fatalf("ProcessUpload failed: %v", err)
	}

	countries, err := p.Countries()
	if err != nil {
		t.Fatalf("Countries failed: %v", err)
	}
	if !reflect.DeepEqual(countries, []string{"India", "Nigeria"}) {
		t.Errorf("Countries = %v", countries)
	}
}

func TestProcessor_KeepsStateOnFailedReload(t *testing.T) {
	p := NewDefault()
	if err := p.ProcessPipeline(writeCSV(t, "survey.csv", messyCSV)); err != nil {
		t.Fatalf("ProcessPipeline failed: %v", err)
	}

	if err := p.ProcessPipeline(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected reload to fail")
	}

	countries, err := p.Countries()
	if err != nil {
		t.Fatalf("Countries after failed reload: %v", err)
	}
	if len(countries) != 2 {
		t.Errorf("previous state lost: %v", countries)
	}
}

func TestFilterByCountries(t *testing.T) {
	p := NewDefault()
	if err := p.ProcessPipeline(writeCSV(t, "survey.csv", messyCSV)); err != nil {
		t.Fatalf("ProcessPipeline failed: %v", err)
	}

	filtered, err := p.FilterByCountries([]string{"India"})
	if err != nil {
		t.Fatalf("FilterByCountries failed: %v", err)
	}
	if filtered.RowCount() != 2 {
		t.Errorf("filtered rows = %d, want 2", filtered.RowCount())
	}

	if _, err := p.FilterByCountries([]string{"Atlantis"}); !errors.Is(err, survey.ErrNoRowsAfterFilter) {
		t.Errorf("err = %v, want ErrNoRowsAfterFilter", err)
	}
}

func TestNationalityPercentages(t *testing.T) {
	p := NewDefault()
	if err := p.ProcessPipeline(writeCSV(t, "survey.csv", messyCSV)); err != nil {
		t.Fatalf("ProcessPipeline failed: %v", err)
	}

	rows, err := p.RatingBreakdown(ratingCol)
	if err != nil {
		t.Fatalf("RatingBreakdown failed: %v", err)
	}
	for _, r := range rows {
		if r.Nationality == "India" && r.Value == "Extremely" {
			if r.Percentage != 50.0 || r.GroupTotal != 2 {
				t.Errorf("India/Extremely = %+v, want 50%% of 2", r)
			}
			return
		}
	}
	t.Error("India/Extremely row missing")
}

func TestQuestionColumns(t *testing.T) {
	p := NewDefault()
	if err := p.ProcessPipeline(writeCSV(t, "survey.csv", messyCSV)); err != nil {
		t.Fatalf("ProcessPipeline failed: %v", err)
	}

	questions, err := p.QuestionColumns(true)
	if err != nil {
		t.Fatalf("QuestionColumns failed: %v", err)
	}
	if !reflect.DeepEqual(questions, []string{ratingCol}) {
		t.Errorf("questions = %v, want metadata and country stripped", questions)
	}

	all, err := p.QuestionColumns(false)
	if err != nil {
		t.Fatalf("QuestionColumns(false) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("all columns = %v, want 4 headers", all)
	}
}

func TestReprocess_RespectsNewToggles(t *testing.T) {
	p := NewDefault()
	if err := p.ProcessPipeline(writeCSV(t, "survey.csv", messyCSV)); err != nil {
		t.Fatalf("ProcessPipeline failed: %v", err)
	}

	opts := cleaner.DefaultOptions()
	opts.RemoveTestRows = false
	if err := p.Reprocess(opts); err != nil {
		t.Fatalf("Reprocess failed: %v", err)
	}

	summary, err := p.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.CleanedRows != 5 {
		t.Errorf("CleanedRows = %d, want 5 with test-row removal off", summary.CleanedRows)
	}
}

func TestCategorize_BucketsAndOrder(t *testing.T) {
	columns := []string{
		"How important is cost? *",
		"I feel included in university life *",
		"How difficult was enrolment? *",
		"Rate your english language ability *",
		"Which programme are you enrolled in? *",
		"Anything else to add?",
	}

	got := Categorize(columns)

	wantNames := []string{
		CategoryImportance,
		CategoryAgreement,
		CategoryDifficulty,
		CategoryEnglish,
		CategoryProgramme,
		CategoryOther,
	}
	if len(got) != len(wantNames) {
		t.Fatalf("categories = %d, want %d", len(got), len(wantNames))
	}
	for i, c := range got {
		if c.Name != wantNames[i] {
			t.Errorf("category[%d] = %q, want %q", i, c.Name, wantNames[i])
		}
		if len(c.Questions) != 1 {
			t.Errorf("category %q has %d questions, want 1", c.Name, len(c.Questions))
		}
	}
}

func TestCategorize_DropsEmptyBuckets(t *testing.T) {
	got := Categorize([]string{"How important is cost? *"})
	if len(got) != 1 || got[0].Name != CategoryImportance {
		t.Errorf("categories = %+v, want just Importance Factors", got)
	}
}

func TestCategorizedQuestions(t *testing.T) {
	p := NewDefault()
	if err := p.ProcessPipeline(writeCSV(t, "survey.csv", messyCSV)); err != nil {
		t.Fatalf("ProcessPipeline failed: %v", err)
	}

	categories, err := p.CategorizedQuestions()
	if err != nil {
		t.Fatalf("CategorizedQuestions failed: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != CategoryImportance {
		t.Fatalf("categories = %+v", categories)
	}
	if !reflect.DeepEqual(categories[0].Questions, []string{ratingCol}) {
		t.Errorf("questions = %v", categories[0].Questions)
	}
}
