package report

import (
	"time"

	"seoaudit/internal/analyzer"
)

// Summary is the at-a-glance slice of a report.
type Summary struct {
	TotalIssues        int            `json:"total_issues"`
	HighPriority       int            `json:"high_priority"`
	MediumPriority     int            `json:"medium_priority"`
	LowPriority        int            `json:"low_priority"`
	CategoriesAnalyzed int            `json:"categories_analyzed"`
	CategoryScores     map[string]int `json:"category_scores"`
}

// Report is the immutable outcome of one audit run.
type Report struct {
	URL             string                     `json:"url"`
	OverallScore    int                        `json:"overall_score"`
	Grade           string                     `json:"grade"`
	ScoreColor      string                     `json:"score_color"`
	Categories      map[string]analyzer.Result `json:"analysis"`
	PriorityIssues  PriorityIssues             `json:"priority_issues"`
	Recommendations []Recommendation           `json:"recommendations"`
	Summary         Summary                    `json:"summary"`
	GeneratedAt     time.Time                  `json:"generated_at"`
}

// Build assembles a full report from the per-category results. Pure
// apart from the injected timestamp: the same results and weights
// always produce the same report fields.
func Build(url string, results map[string]analyzer.Result, w Weights, now time.Time) *Report {
	overall := Overall(results, w)
	issues := ClassifyIssues(results)

	scores := make(map[string]int, len(results))
	for name, res := range results {
		scores[name] = res.Score
	}

	return &Report{
		URL:             url,
		OverallScore:    overall,
		Grade:           Grade(overall),
		ScoreColor:      ScoreColor(overall),
		Categories:      results,
		PriorityIssues:  issues,
		Recommendations: RankRecommendations(results),
		Summary: Summary{
			TotalIssues:        issues.Total(),
			HighPriority:       len(issues.High),
			MediumPriority:     len(issues.Medium),
			LowPriority:        len(issues.Low),
			CategoriesAnalyzed: len(results),
			CategoryScores:     scores,
		},
		GeneratedAt: now.UTC(),
	}
}
