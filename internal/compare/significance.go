package compare

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/domain/survey"
)

// SignificanceResult carries a chi-square test of whether two countries
// differ in how often they give one response value. Observed is the
// 2x2 contingency table: rows are the two countries, columns are
// [value, any other response].
type SignificanceResult struct {
	Question          string    `json:"question"`
	Country1          string    `json:"country1"`
	Country2          string    `json:"country2"`
	Value             string    `json:"value"`
	ChiSquare         float64   `json:"chi_square"`
	PValue            float64   `json:"p_value"`
	DF                int       `json:"degrees_of_freedom"`
	Significant       bool      `json:"significant"`
	Interpretation    string    `json:"interpretation"`
	YatesApplied      bool      `json:"yates_applied"`
	MinExpected       float64   `json:"min_expected"`
	LowExpectedCounts int       `json:"low_expected_counts"`
	Observed          [2][2]int `json:"observed"`
}

// Significance runs a chi-square test of independence on the 2x2 table
// of country against (response == value). Responses left blank count as
// not matching the value. Yates continuity correction applies since the
// table has one degree of freedom; cells with expected counts under 5
// are tallied so callers can flag a fragile test.
func Significance(table *survey.Table, countryColumn, question, country1, country2, value string) (*SignificanceResult, error) {
	if err := requireCountries(table, countryColumn, country1, country2); err != nil {
		return nil, err
	}
	if !table.HasColumn(question) {
		return nil, survey.NewColumnNotFoundError(question)
	}

	var observed [2][2]int
	for _, row := range table.Rows {
		country := strings.TrimSpace(row[countryColumn])
		var i int
		switch country {
		case country1:
			i = 0
		case country2:
			i = 1
		default:
			continue
		}
		if strings.TrimSpace(row[question]) == value {
			observed[i][0]++
		} else {
			observed[i][1]++
		}
	}

	matches := observed[0][0] + observed[1][0]
	others := observed[0][1] + observed[1][1]
	if matches == 0 || others == 0 {
		return nil, survey.ErrInsufficientData
	}

	rowTotals := [2]float64{
		float64(observed[0][0] + observed[0][1]),
		float64(observed[1][0] + observed[1][1]),
	}
	colTotals := [2]float64{float64(matches), float64(others)}
	grand := rowTotals[0] + rowTotals[1]

	var expected [2][2]float64
	minExpected := math.Inf(1)
	lowCount := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			expected[i][j] = rowTotals[i] * colTotals[j] / grand
			if expected[i][j] < minExpected {
				minExpected = expected[i][j]
			}
			if expected[i][j] < 5 {
				lowCount++
			}
		}
	}

	// One degree of freedom, so Yates' continuity correction applies.
	// The |O-E| shrinkage is clipped at zero to avoid overcorrecting
	// small deviations.
	chiSquare := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			diff := math.Abs(float64(observed[i][j])-expected[i][j]) - 0.5
			if diff < 0 {
				diff = 0
			}
			chiSquare += diff * diff / expected[i][j]
		}
	}

	df := 1
	chiDist := distuv.ChiSquared{K: float64(df)}
	pValue := 1 - chiDist.CDF(chiSquare)

	significant := pValue < 0.05
	interpretation := "Not significant"
	if significant {
		interpretation = "Significant"
	}

	return &SignificanceResult{
		Question:          question,
		Country1:          country1,
		Country2:          country2,
		Value:             value,
		ChiSquare:         round4(chiSquare),
		PValue:            round4(pValue),
		DF:                df,
		Significant:       significant,
		Interpretation:    interpretation,
		YatesApplied:      true,
		MinExpected:       round4(minExpected),
		LowExpectedCounts: lowCount,
		Observed:          observed,
	}, nil
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
