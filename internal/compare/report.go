package compare

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
)

const reportRule = 70

// TextReport renders a plain-text comparison of one question across
// countries: totals per country, the percentage distribution, and each
// country's most common response.
func TextReport(table *survey.Table, countryColumn, question string, countries []string) (string, error) {
	comparison, rowCounts, err := reportData(table, countryColumn, question, countries)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	rule := strings.Repeat("=", reportRule)
	sub := strings.Repeat("-", reportRule)

	b.WriteString(rule + "\n")
	b.WriteString("COMPARISON REPORT: " + question + "\n")
	b.WriteString(rule + "\n\n")
	b.WriteString("Countries compared: " + strings.Join(comparison.Countries, ", ") + "\n\n")
	b.WriteString("Total responses per country:\n")
	for _, country := range comparison.Countries {
		fmt.Fprintf(&b, "  - %s: %d\n", country, rowCounts[country])
	}

	b.WriteString("\n" + sub + "\n")
	b.WriteString("Percentage Distribution:\n")
	b.WriteString(sub + "\n")
	writeDistribution(&b, comparison)

	b.WriteString("\n" + sub + "\n")
	b.WriteString("Top Response for Each Country:\n")
	b.WriteString(sub + "\n")
	for j, country := range comparison.Countries {
		value, pct, ok := topResponse(comparison, j)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s: %s (%s%%)\n", country, value, FormatPercent(pct))
	}

	b.WriteString("\n" + rule + "\n")
	return b.String(), nil
}

// MarkdownReport renders the comparison as a Markdown document with a
// percentage table.
func MarkdownReport(table *survey.Table, countryColumn, question string, countries []string) (string, error) {
	comparison, rowCounts, err := reportData(table, countryColumn, question, countries)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Comparison Report: " + question + "\n\n")
	b.WriteString("**Countries compared:** " + strings.Join(comparison.Countries, ", ") + "\n\n")

	b.WriteString("## Total responses per country\n\n")
	for _, country := range comparison.Countries {
		fmt.Fprintf(&b, "- %s: %d\n", country, rowCounts[country])
	}

	b.WriteString("\n## Percentage distribution\n\n")
	b.WriteString("| Response |")
	for _, country := range comparison.Countries {
		b.WriteString(" " + country + " |")
	}
	b.WriteString("\n|---|")
	for range comparison.Countries {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for i, value := range comparison.Values {
		b.WriteString("| " + value + " |")
		for j := range comparison.Countries {
			b.WriteString(" " + FormatPercent(comparison.Percentages[i][j]) + "% |")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Top response per country\n\n")
	for j, country := range comparison.Countries {
		value, pct, ok := topResponse(comparison, j)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- **%s:** %s (%s%%)\n", country, value, FormatPercent(pct))
	}

	return b.String(), nil
}

// HTMLReport renders the Markdown report to a standalone HTML page.
func HTMLReport(table *survey.Table, countryColumn, question string, countries []string) ([]byte, error) {
	md, err := MarkdownReport(table, countryColumn, question, countries)
	if err != nil {
		return nil, err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Comparison Report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer), nil
}

// reportData assembles the comparison table plus raw per-country row
// counts shared by every report format.
func reportData(table *survey.Table, countryColumn, question string, countries []string) (*ComparisonTable, map[string]int, error) {
	comparison, err := SideBySide(table, countryColumn, question, countries, SideBySideOptions{})
	if err != nil {
		return nil, nil, err
	}
	if len(comparison.Values) == 0 {
		return nil, nil, fmt.Errorf("%w: no responses for %q", survey.ErrInsufficientData, question)
	}
	return comparison, table.CountBy(countryColumn), nil
}

// writeDistribution prints the percentage grid with response labels on
// the left and one right-aligned column per country.
func writeDistribution(b *strings.Builder, comparison *ComparisonTable) {
	labelWidth := 0
	for _, value := range comparison.Values {
		if len(value) > labelWidth {
			labelWidth = len(value)
		}
	}

	colWidths := make([]int, len(comparison.Countries))
	for j, country := range comparison.Countries {
		colWidths[j] = len(country)
		for i := range comparison.Values {
			if w := len(FormatPercent(comparison.Percentages[i][j])); w > colWidths[j] {
				colWidths[j] = w
			}
		}
	}

	fmt.Fprintf(b, "%*s", labelWidth, "")
	for j, country := range comparison.Countries {
		fmt.Fprintf(b, "  %*s", colWidths[j], country)
	}
	b.WriteString("\n")
	for i, value := range comparison.Values {
		fmt.Fprintf(b, "%-*s", labelWidth, value)
		for j := range comparison.Countries {
			fmt.Fprintf(b, "  %*s", colWidths[j], FormatPercent(comparison.Percentages[i][j]))
		}
		b.WriteString("\n")
	}
}

// topResponse finds a country's most common response. Countries with no
// eligible responses report none.
func topResponse(comparison *ComparisonTable, col int) (string, float64, bool) {
	if comparison.Totals[col] == 0 {
		return "", 0, false
	}
	best := 0
	for i := range comparison.Values {
		if comparison.Percentages[i][col] > comparison.Percentages[best][col] {
			best = i
		}
	}
	return comparison.Values[best], comparison.Percentages[best][col], true
}
