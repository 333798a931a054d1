package report

import (
	"math"
	"sort"

	"seoaudit/internal/analyzer"
)

// Overall blends the category scores into one 0..100 number:
// Σ(score×weight) / Σ(weight) over categories present in both the
// results and the weight table with a positive weight. The division
// renormalizes partial runs, so dropping a category never penalizes
// the ones that did run. No weighted category present means 0.
//
// Categories are folded in sorted name order: float addition is not
// associative, and map iteration order must not leak into the result.
func Overall(results map[string]analyzer.Result, w Weights) int {
	var weighted, total float64
	for _, name := range sortedNames(results) {
		weight := w[name]
		if weight <= 0 {
			continue
		}
		weighted += float64(results[name].Score) * weight
		total += weight
	}
	if total == 0 {
		return 0
	}
	return analyzer.Clamp(int(math.Round(weighted / total)))
}

// Grade maps an overall score to its letter grade.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// ScoreColor is the traffic-light bucket UIs render the score with.
func ScoreColor(score int) string {
	switch {
	case score >= 80:
		return "green"
	case score >= 60:
		return "yellow"
	default:
		return "red"
	}
}

func sortedNames(results map[string]analyzer.Result) []string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
