package survey

import (
	"strings"
	"unicode"
)

// CountryColumnCandidates are the exact header strings checked, in order,
// when resolving the grouping column. Survey exports embed the full
// question text, so the first candidate is the usual match.
var CountryColumnCandidates = []string{
	"What is your home country? *",
	"What is your home country?",
	"Country",
	"Home Country",
	"Nationality",
}

// countryMapping folds the spellings observed in real exports onto the
// canonical vocabulary. Keys are lowercased, trimmed input.
var countryMapping = map[string]string{
	"india":          "India",
	"indian":         "India",
	"nigeria":        "Nigeria",
	"nigerian":       "Nigeria",
	"myanmar":        "Myanmar",
	"burma":          "Myanmar",
	"sri lanka":      "Sri Lanka",
	"srilanka":       "Sri Lanka",
	"bangladesh":     "Bangladesh",
	"pakistan":       "Pakistan",
	"iran":           "Iran",
	"romania":        "Romania",
	"czech republic": "Czech Republic",
	"czechia":        "Czech Republic",
	"kenya":          "Kenya",
	"cyprus":         "Cyprus",
	"bahrain":        "Bahrain",
}

// CanonicalCountry maps a raw country answer to its canonical form.
// Case and whitespace variants collapse to one name; decorations such as
// flag emoji are stripped before lookup; values outside the known
// vocabulary are title-cased rather than dropped.
func CanonicalCountry(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	folded := strings.ToLower(v)
	if canon, ok := countryMapping[folded]; ok {
		return canon
	}
	stripped := stripDecorations(folded)
	if stripped == "" {
		return ""
	}
	if canon, ok := countryMapping[stripped]; ok {
		return canon
	}
	return titleCase(stripped)
}

// DetectCountryColumn resolves the grouping column: exact candidates
// first, then any header mentioning "country" that is not a points or
// feedback column.
func DetectCountryColumn(headers []string) (string, bool) {
	for _, candidate := range CountryColumnCandidates {
		for _, h := range headers {
			if h == candidate {
				return h, true
			}
		}
	}
	for _, h := range headers {
		folded := strings.ToLower(h)
		if strings.Contains(folded, "country") &&
			!strings.Contains(folded, "points") &&
			!strings.Contains(folded, "feedback") {
			return h, true
		}
	}
	return "", false
}

// metadataHeaders are form-export bookkeeping columns excluded from the
// question list.
var metadataHeaders = map[string]bool{
	"id":                 true,
	"start time":         true,
	"completion time":    true,
	"email":              true,
	"name":               true,
	"last modified time": true,
	"total points":       true,
	"quiz feedback":      true,
	"grade posted time":  true,
}

// IsMetadataColumn reports whether a header is bookkeeping rather than a
// survey question. The resolved country column also counts as metadata.
func IsMetadataColumn(header, countryColumn string) bool {
	if header == countryColumn {
		return true
	}
	folded := strings.ToLower(strings.TrimSpace(header))
	if metadataHeaders[folded] {
		return true
	}
	return strings.Contains(folded, "points") || strings.Contains(folded, "feedback")
}

// stripDecorations removes everything that is not a letter or space
// (flag emoji, stray punctuation) and collapses the remaining whitespace.
func stripDecorations(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
