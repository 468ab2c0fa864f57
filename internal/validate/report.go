package validate

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Tolerances for the two kinds of checks: counts may drift by one
// response, percentages by a tenth of a point.
const (
	CountTolerance      = 1.0
	PercentageTolerance = 0.1
)

// Result is one expected-versus-actual check.
type Result struct {
	Name       string  `json:"test_name"`
	Expected   float64 `json:"expected"`
	Actual     float64 `json:"actual"`
	Difference float64 `json:"difference"`
	Tolerance  float64 `json:"tolerance"`
	Passed     bool    `json:"passed"`
}

// Report accumulates validation results for rendering.
type Report struct {
	Results []Result `json:"results"`
}

func NewReport() *Report {
	return &Report{}
}

// Add records a check that passes when |expected - actual| is within
// tolerance. It returns whether the check passed.
func (r *Report) Add(name string, expected, actual, tolerance float64) bool {
	return r.add(name, expected, actual, tolerance, math.Abs(expected-actual) <= tolerance)
}

// AddCount records a response-count check with the count tolerance.
func (r *Report) AddCount(name string, expected, actual int) bool {
	return r.Add(name, float64(expected), float64(actual), CountTolerance)
}

// AddPercentage records a percentage check with the percentage
// tolerance.
func (r *Report) AddPercentage(name string, expected, actual float64) bool {
	return r.Add(name, expected, actual, PercentageTolerance)
}

// fail records a check that failed regardless of the numbers, such as a
// combination missing from the data entirely.
func (r *Report) fail(name string, expected, actual, tolerance float64) {
	r.add(name, expected, actual, tolerance, false)
}

func (r *Report) add(name string, expected, actual, tolerance float64, passed bool) bool {
	r.Results = append(r.Results, Result{
		Name:       name,
		Expected:   expected,
		Actual:     actual,
		Difference: math.Abs(expected - actual),
		Tolerance:  tolerance,
		Passed:     passed,
	})
	return passed
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Counts returns the total, passed, and failed check counts.
func (r *Report) Counts() (total, passed, failed int) {
	total = len(r.Results)
	for _, res := range r.Results {
		if res.Passed {
			passed++
		} else {
			failed++
		}
	}
	return total, passed, failed
}

// Merge appends another report's results.
func (r *Report) Merge(other *Report) {
	if other != nil {
		r.Results = append(r.Results, other.Results...)
	}
}

// WriteTo renders the report as a fixed-width text block.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	total, passed, failed := r.Counts()

	var b strings.Builder
	rule := strings.Repeat("=", 70)
	sub := strings.Repeat("-", 70)

	b.WriteString(rule + "\n")
	b.WriteString("VALIDATION REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Tests: %d\n", total)
	fmt.Fprintf(&b, "Passed: %d (%.1f%%)\n", passed, share(passed, total))
	fmt.Fprintf(&b, "Failed: %d (%.1f%%)\n", failed, share(failed, total))
	b.WriteString("\n" + sub + "\n")

	if len(r.Results) > 0 {
		nameWidth := 0
		for _, res := range r.Results {
			if len(res.Name) > nameWidth {
				nameWidth = len(res.Name)
			}
		}
		b.WriteString("\nTest Results:\n")
		for _, res := range r.Results {
			mark := "PASS"
			if !res.Passed {
				mark = "FAIL"
			}
			fmt.Fprintf(&b, "  %s  %-*s  expected %10.2f  actual %10.2f  (tol %.2f)\n",
				mark, nameWidth, res.Name, res.Expected, res.Actual, res.Tolerance)
		}
	}

	b.WriteString("\n" + rule + "\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func share(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
