// Package report turns per-category results into the final audit
// report: weighted overall score, letter grade, priority buckets and
// ranked recommendations. Everything here is pure; identical inputs
// produce identical reports.
package report

import (
	"fmt"
	"math"
)

// Weights maps category name to its relative weight in the overall
// blend. The aggregator renormalizes by the sum of present weights, so
// a table does not have to sum to exactly 1.0 to be usable.
type Weights map[string]float64

// DefaultWeights is the standard blend over the eight core categories.
// It sums to 1.0.
func DefaultWeights() Weights {
	return Weights{
		"title":            0.15,
		"meta_description": 0.12,
		"url_structure":    0.10,
		"headings":         0.13,
		"content":          0.18,
		"images":           0.10,
		"links":            0.12,
		"performance":      0.10,
	}
}

// Validate rejects tables that cannot produce a well-defined blend:
// negative, NaN or infinite weights, or a table whose weights sum to
// zero. Called once at configuration time.
func (w Weights) Validate() error {
	var sum float64
	for name, weight := range w {
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("weight for %q is not a finite number", name)
		}
		if weight < 0 {
			return fmt.Errorf("weight for %q is negative (%v)", name, weight)
		}
		sum += weight
	}
	if len(w) > 0 && sum == 0 {
		return fmt.Errorf("weight table sums to zero")
	}
	return nil
}
