// Package analyzer defines the result contract shared by every audit
// category and the category evaluators that inspect a fetched page.
package analyzer

import "seoaudit/internal/page"

// Severity marks how urgent an issue is. The priority classifier maps
// critical issues to the high bucket and warnings to at least medium.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Issue is a single finding inside a category.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is the uniform outcome of one category evaluation.
type Result struct {
	Score           int            `json:"score"`
	Issues          []Issue        `json:"issues"`
	Recommendations []string       `json:"recommendations"`
	Details         map[string]any `json:"details,omitempty"`
}

// Analyzer evaluates one audit category against a fetched page.
// Implementations are stateless; Analyze must not mutate the page.
type Analyzer interface {
	Name() string
	Analyze(p *page.Page) Result
}

// Core returns the weighted category analyzers in their report order.
// The keyword, when non-empty, feeds the content density checks.
func Core(keyword string) []Analyzer {
	return []Analyzer{
		Title{},
		MetaDescription{},
		URLStructure{},
		Headings{},
		Content{Keyword: keyword},
		Images{},
		Links{},
		Performance{},
	}
}

// Extended returns the categories outside the default weighted blend.
// They surface in reports but carry weight 0 unless configured.
func Extended() []Analyzer {
	return []Analyzer{
		Social{},
		Security{},
		Mobile{},
		Schema{},
	}
}

// Clamp bounds a computed score into the 0..100 range.
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Critical appends a critical issue and returns the updated slice.
func Critical(issues []Issue, msg string) []Issue {
	return append(issues, Issue{Severity: SeverityCritical, Message: msg})
}

// Warning appends a warning issue and returns the updated slice.
func Warning(issues []Issue, msg string) []Issue {
	return append(issues, Issue{Severity: SeverityWarning, Message: msg})
}

// Info appends an informational issue and returns the updated slice.
func Info(issues []Issue, msg string) []Issue {
	return append(issues, Issue{Severity: SeverityInfo, Message: msg})
}
