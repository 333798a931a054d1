package analyzer

import (
	"fmt"
	"strings"

	"seoaudit/internal/page"
)

var (
	ogProperties = []string{
		"og:title", "og:description", "og:image", "og:url",
		"og:type", "og:site_name", "og:locale",
	}
	twitterProperties = []string{
		"twitter:card", "twitter:title", "twitter:description",
		"twitter:image", "twitter:site", "twitter:creator",
	}
)

// Social scores share-preview readiness: Open Graph and Twitter card
// coverage. Scoring is additive, full coverage reaching 100.
type Social struct{}

func (Social) Name() string { return "social" }

func (Social) Analyze(p *page.Page) Result {
	og := map[string]string{}
	for _, prop := range ogProperties {
		if v := strings.TrimSpace(p.Doc.Find(fmt.Sprintf(`meta[property=%q]`, prop)).AttrOr("content", "")); v != "" {
			og[strings.TrimPrefix(prop, "og:")] = v
		}
	}
	twitter := map[string]string{}
	for _, prop := range twitterProperties {
		if v := strings.TrimSpace(p.Doc.Find(fmt.Sprintf(`meta[name=%q]`, prop)).AttrOr("content", "")); v != "" {
			twitter[strings.TrimPrefix(prop, "twitter:")] = v
		}
	}

	var issues []Issue
	var recs []string

	// Essential Open Graph tags: 60 points.
	score := 0
	if og["title"] != "" {
		score += 15
	} else {
		issues = Warning(issues, "Missing og:title meta tag")
		recs = append(recs, "Add og:title meta tag for better social sharing")
	}
	if og["description"] != "" {
		score += 15
	} else {
		issues = Warning(issues, "Missing og:description meta tag")
		recs = append(recs, "Add og:description meta tag for better social sharing")
	}
	if og["image"] != "" {
		score += 20
	} else {
		issues = Critical(issues, "Missing og:image meta tag - posts will have no image preview")
		recs = append(recs, "Add og:image meta tag (recommended: 1200x630 pixels)")
	}
	if og["url"] != "" {
		score += 5
	}
	if og["type"] != "" {
		score += 5
	}

	// Twitter card tags: 30 points, falling back to OG where Twitter
	// crawlers do the same.
	if twitter["card"] != "" {
		score += 10
	} else {
		issues = Info(issues, "Missing twitter:card meta tag - defaults to summary")
		recs = append(recs, "Add twitter:card meta tag (summary_large_image recommended)")
	}
	if twitter["title"] != "" || og["title"] != "" {
		score += 10
	}
	if twitter["image"] != "" || og["image"] != "" {
		score += 10
	}

	// Bonus coverage: 10 points.
	if og["site_name"] != "" {
		score += 5
	}
	if twitter["site"] != "" {
		score += 5
	}

	details := map[string]any{
		"og_tags":       og,
		"twitter_tags":  twitter,
		"og_count":      len(og),
		"twitter_count": len(twitter),
	}
	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}
