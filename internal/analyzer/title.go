package analyzer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"seoaudit/internal/page"
)

const (
	titleMinLength     = 30
	titleMaxLength     = 60
	titleOptimalMin    = 50
	titleOptimalMax    = 60
)

var titlePowerWords = []string{
	"ultimate", "guide", "best", "top", "how", "why", "what",
	"complete", "essential", "proven", "free",
}

// Title scores the <title> tag: presence, length band, separator and
// click-through hints.
type Title struct{}

func (Title) Name() string { return "title" }

func (Title) Analyze(p *page.Page) Result {
	details := map[string]any{}

	node := p.Doc.Find("title").First()
	if node.Length() == 0 {
		return Result{
			Score:           0,
			Issues:          Critical(nil, "No title tag found"),
			Recommendations: []string{"Add a descriptive title tag to your page"},
			Details:         details,
		}
	}
	text := strings.TrimSpace(node.Text())
	if text == "" {
		return Result{
			Score:           0,
			Issues:          Critical(nil, "Title tag is empty"),
			Recommendations: []string{"Add content to your title tag"},
			Details:         details,
		}
	}

	score := 100
	var issues []Issue
	var recs []string

	length := utf8.RuneCountInString(text)
	details["value"] = text
	details["length"] = length

	switch {
	case length < titleMinLength:
		score -= 30
		issues = Warning(issues, fmt.Sprintf("Title is too short (%d chars). Optimal: %d-%d chars", length, titleOptimalMin, titleOptimalMax))
		recs = append(recs, fmt.Sprintf("Expand your title to %d-%d characters", titleOptimalMin, titleOptimalMax))
	case length > titleMaxLength:
		score -= 20
		issues = Warning(issues, fmt.Sprintf("Title is too long (%d chars). It may be truncated in search results", length))
		recs = append(recs, fmt.Sprintf("Shorten your title to under %d characters", titleMaxLength))
	case length >= titleOptimalMin:
		details["length_status"] = "optimal"
	default:
		details["length_status"] = "acceptable"
		score -= 5
	}

	hasSeparator := strings.ContainsAny(text, "|-")
	details["has_separator"] = hasSeparator
	if !hasSeparator {
		recs = append(recs, `Consider adding brand name with separator (e.g., "Title | Brand")`)
	}

	details["has_numbers"] = strings.ContainsFunc(text, unicode.IsDigit)

	lower := strings.ToLower(text)
	hasPower := false
	for _, word := range titlePowerWords {
		if strings.Contains(lower, word) {
			hasPower = true
			break
		}
	}
	details["has_power_words"] = hasPower
	if !hasPower {
		recs = append(recs, `Consider adding power words like "Ultimate", "Complete", "Guide" to improve CTR`)
	}

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}
