package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"seoaudit/internal/page"
)

const (
	metaMinLength  = 120
	metaMaxLength  = 160
	metaOptimalMin = 150
	metaOptimalMax = 160
)

var metaCTAWords = []string{
	"learn", "discover", "find", "get", "read", "try", "start",
	"explore", "see", "click",
}

// MetaDescription scores the meta description: presence, length band,
// call-to-action wording and social-sharing consistency.
type MetaDescription struct{}

func (MetaDescription) Name() string { return "meta_description" }

func (MetaDescription) Analyze(p *page.Page) Result {
	details := map[string]any{}

	desc := strings.TrimSpace(p.Doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	ogDesc := strings.TrimSpace(p.Doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))

	if desc == "" {
		return Result{
			Score:           0,
			Issues:          Critical(nil, "No meta description found"),
			Recommendations: []string{fmt.Sprintf("Add a compelling meta description (%d-%d characters)", metaOptimalMin, metaOptimalMax)},
			Details:         details,
		}
	}

	score := 100
	var issues []Issue
	var recs []string

	length := utf8.RuneCountInString(desc)
	details["value"] = desc
	details["length"] = length

	switch {
	case length < metaMinLength:
		score -= 25
		issues = Warning(issues, fmt.Sprintf("Meta description is too short (%d chars). Optimal: %d-%d chars", length, metaOptimalMin, metaOptimalMax))
		recs = append(recs, fmt.Sprintf("Expand your meta description to %d-%d characters", metaOptimalMin, metaOptimalMax))
	case length > metaMaxLength:
		score -= 15
		issues = Warning(issues, fmt.Sprintf("Meta description is too long (%d chars). It may be truncated", length))
		recs = append(recs, fmt.Sprintf("Shorten meta description to under %d characters", metaMaxLength))
	default:
		details["length_status"] = "optimal"
	}

	lower := strings.ToLower(desc)
	hasCTA := false
	for _, word := range metaCTAWords {
		if strings.Contains(lower, word) {
			hasCTA = true
			break
		}
	}
	details["has_cta"] = hasCTA
	if !hasCTA {
		score -= 10
		recs = append(recs, `Add a call-to-action like "Learn more", "Discover", or "Get started"`)
	}

	if ogDesc != "" {
		details["has_og_description"] = true
		details["og_matches"] = ogDesc == desc
	} else {
		details["has_og_description"] = false
		recs = append(recs, "Add Open Graph meta description for better social sharing")
	}

	if strings.HasSuffix(desc, "...") {
		score -= 10
		issues = Info(issues, "Meta description appears to be truncated")
	}

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}
