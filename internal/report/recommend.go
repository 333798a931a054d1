package report

import (
	"sort"

	"seoaudit/internal/analyzer"
)

// Recommendation is one suggested fix, annotated with the category it
// came from and that category's score, which is the ranking key.
type Recommendation struct {
	Category string `json:"category"`
	Action   string `json:"recommendation"`
	Score    int    `json:"score"`
}

// RankRecommendations flattens every category's recommendations and
// stable-sorts them ascending by source-category score: the weakest
// area surfaces first. Ties keep their flattening order (sorted
// category name, then within-category order). Inputs are never
// mutated, rewritten or deduplicated.
func RankRecommendations(results map[string]analyzer.Result) []Recommendation {
	recs := []Recommendation{}
	for _, name := range sortedNames(results) {
		res := results[name]
		for _, action := range res.Recommendations {
			recs = append(recs, Recommendation{Category: name, Action: action, Score: res.Score})
		}
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score < recs[j].Score })
	return recs
}
