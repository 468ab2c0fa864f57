package survey

import "strings"

// NotApplicable is the sentinel response excluded from ordinal ordering
// and, optionally, from percentage denominators.
const NotApplicable = "Not applicable"

// Scale identifies one of the fixed ordinal rating vocabularies.
type Scale string

const (
	ScaleImportance   Scale = "importance"
	ScaleAgreement    Scale = "agreement"
	ScaleDifficulty   Scale = "difficulty"
	ScaleEnglish      Scale = "english"
	ScaleSatisfaction Scale = "satisfaction"
)

// ScaleSpec describes one ordinal scale: its canonical label order (least
// to greatest, NA excluded), the NA sentinel where the scale has one, and
// the synonym folding applied during cleaning.
type ScaleSpec struct {
	Name     Scale
	Order    []string
	NA       string
	synonyms map[string]string
}

var naVariants = map[string]bool{
	"not applicable": true,
	"n/a":            true,
	"na":             true,
}

var scaleSpecs = []ScaleSpec{
	{
		Name:  ScaleImportance,
		Order: []string{"Not at all", "A little", "Moderately", "Very", "Extremely"},
		NA:    NotApplicable,
		synonyms: map[string]string{
			"not important": "Not at all",
			"a bit":         "A little",
		},
	},
	{
		Name: ScaleAgreement,
		Order: []string{
			"Strongly disagree", "Mildly disagree",
			"Neither agree nor disagree",
			"Mildly agree", "Strongly agree",
		},
		synonyms: map[string]string{
			"neutral":  "Neither agree nor disagree",
			"agree":    "Mildly agree",
			"disagree": "Mildly disagree",
		},
	},
	{
		Name:  ScaleDifficulty,
		Order: []string{"Not at all", "Slightly (a little)", "Moderately", "Very", "Extremely"},
		NA:    NotApplicable,
		synonyms: map[string]string{
			"slightly": "Slightly (a little)",
			"a little": "Slightly (a little)",
		},
	},
	{
		Name:  ScaleEnglish,
		Order: []string{"Poor", "Average", "Good", "Excellent"},
	},
	{
		Name: ScaleSatisfaction,
		Order: []string{
			"Very dissatisfied", "Somewhat dissatisfied",
			"Neither satisfied nor dissatisfied",
			"Somewhat satisfied", "Very satisfied",
		},
	},
}

// header keyword -> scale, checked in order so "disagree" still lands on
// agreement and "satisf" catches both satisfied/satisfaction phrasings
var scaleKeywords = []struct {
	keyword string
	scale   Scale
}{
	{"important", ScaleImportance},
	{"importance", ScaleImportance},
	{"agree", ScaleAgreement},
	{"difficult", ScaleDifficulty},
	{"english", ScaleEnglish},
	{"satisf", ScaleSatisfaction},
}

// ScaleFor detects the rating scale of a column from its header text.
// Points and feedback columns never count as rating columns.
func ScaleFor(column string) (ScaleSpec, bool) {
	h := strings.ToLower(column)
	if strings.Contains(h, "points") || strings.Contains(h, "feedback") {
		return ScaleSpec{}, false
	}
	for _, kw := range scaleKeywords {
		if strings.Contains(h, kw.keyword) {
			return scaleSpec(kw.scale), true
		}
	}
	return ScaleSpec{}, false
}

// ScaleByName returns the spec for a known scale name.
func ScaleByName(name Scale) (ScaleSpec, bool) {
	for _, s := range scaleSpecs {
		if s.Name == name {
			return s, true
		}
	}
	return ScaleSpec{}, false
}

func scaleSpec(name Scale) ScaleSpec {
	s, _ := ScaleByName(name)
	return s
}

// Canonical folds a raw response onto the scale's canonical label. Unknown
// labels pass through trimmed, so cleaning never invents data.
func (s ScaleSpec) Canonical(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return v
	}
	folded := strings.ToLower(v)
	if s.NA != "" && naVariants[folded] {
		return s.NA
	}
	if canon, ok := s.synonyms[folded]; ok {
		return canon
	}
	for _, label := range s.Order {
		if strings.EqualFold(label, v) {
			return label
		}
	}
	return v
}

// OrderIndex returns the position of a label in the scale order. NA and
// unknown labels sort after every ordered label.
func (s ScaleSpec) OrderIndex(value string) int {
	for i, label := range s.Order {
		if label == value {
			return i
		}
	}
	return len(s.Order)
}

// IsNA reports whether the value is the scale's NA sentinel.
func (s ScaleSpec) IsNA(value string) bool {
	if s.NA == "" {
		return false
	}
	return naVariants[strings.ToLower(strings.TrimSpace(value))]
}

// TopTwo returns the two greatest ordered labels (e.g. Very, Extremely),
// used for importance-factor scoring.
func (s ScaleSpec) TopTwo() []string {
	if len(s.Order) < 2 {
		return append([]string{}, s.Order...)
	}
	return []string{s.Order[len(s.Order)-2], s.Order[len(s.Order)-1]}
}

// IsNotApplicable reports whether a value is an NA variant regardless of
// which scale the column belongs to.
func IsNotApplicable(value string) bool {
	return naVariants[strings.ToLower(strings.TrimSpace(value))]
}
