package report

import "seoaudit/internal/analyzer"

// CategoryIssue is an issue annotated with the category it came from,
// so the report can group findings by source.
type CategoryIssue struct {
	Category string            `json:"category"`
	Severity analyzer.Severity `json:"severity"`
	Message  string            `json:"message"`
}

// PriorityIssues partitions every issue into exactly one urgency
// bucket.
type PriorityIssues struct {
	High   []CategoryIssue `json:"high"`
	Medium []CategoryIssue `json:"medium"`
	Low    []CategoryIssue `json:"low"`
}

// Total counts the issues across all buckets.
func (p PriorityIssues) Total() int {
	return len(p.High) + len(p.Medium) + len(p.Low)
}

// ClassifyIssues places each issue in a bucket, first match wins:
// critical severity or a category scoring below 40 is high; warning
// severity or a category below 70 is medium; the rest is low.
// Categories are visited in sorted name order, issues in their
// reported order, so the bucket contents are deterministic.
func ClassifyIssues(results map[string]analyzer.Result) PriorityIssues {
	out := PriorityIssues{
		High:   []CategoryIssue{},
		Medium: []CategoryIssue{},
		Low:    []CategoryIssue{},
	}
	for _, name := range sortedNames(results) {
		res := results[name]
		for _, issue := range res.Issues {
			ci := CategoryIssue{Category: name, Severity: issue.Severity, Message: issue.Message}
			switch {
			case issue.Severity == analyzer.SeverityCritical || res.Score < 40:
				out.High = append(out.High, ci)
			case issue.Severity == analyzer.SeverityWarning || res.Score < 70:
				out.Medium = append(out.Medium, ci)
			default:
				out.Low = append(out.Low, ci)
			}
		}
	}
	return out
}
