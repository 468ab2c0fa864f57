package processor

import "strings"

// Category groups question columns under a dashboard-friendly heading.
type Category struct {
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

// Category names, in display order.
const (
	CategoryImportance = "Importance Factors"
	CategoryAgreement  = "Agreement & Inclusion"
	CategoryDifficulty = "Difficulty Ratings"
	CategoryEnglish    = "English Proficiency"
	CategoryProgramme  = "Programme & Background"
	CategoryOther      = "Other"
)

// CategorizedQuestions buckets the question columns by header keyword.
// Empty categories are dropped; the first matching rule wins.
func (p *Processor) CategorizedQuestions() ([]Category, error) {
	questions, err := p.QuestionColumns(true)
	if err != nil {
		return nil, err
	}
	return Categorize(questions), nil
}

// Categorize applies the keyword rules to an arbitrary column list.
func Categorize(columns []string) []Category {
	order := []string{
		CategoryImportance,
		CategoryAgreement,
		CategoryDifficulty,
		CategoryEnglish,
		CategoryProgramme,
		CategoryOther,
	}
	buckets := make(map[string][]string, len(order))

	for _, col := range columns {
		name := categoryFor(col)
		buckets[name] = append(buckets[name], col)
	}

	var result []Category
	for _, name := range order {
		if len(buckets[name]) > 0 {
			result = append(result, Category{Name: name, Questions: buckets[name]})
		}
	}
	return result
}

func categoryFor(column string) string {
	folded := strings.ToLower(column)
	switch {
	case strings.Contains(folded, "important"):
		return CategoryImportance
	case strings.Contains(folded, "agree") || strings.Contains(folded, "included"):
		return CategoryAgreement
	case strings.Contains(folded, "difficult"):
		return CategoryDifficulty
	case strings.Contains(folded, "english language ability"):
		return CategoryEnglish
	case strings.Contains(folded, "programme") ||
		strings.Contains(folded, "institution") ||
		strings.Contains(folded, "language"):
		return CategoryProgramme
	default:
		return CategoryOther
	}
}
