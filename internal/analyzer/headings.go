package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"seoaudit/internal/page"
)

// Headings scores the h1-h6 structure: a single h1, h2 sectioning and
// hierarchy without gaps.
type Headings struct{}

func (Headings) Name() string { return "headings" }

func (Headings) Analyze(p *page.Page) Result {
	counts := make(map[string]int, 6)
	var h1Texts []string
	for _, level := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		sel := p.Doc.Find(level)
		counts[level] = sel.Length()
		if level == "h1" {
			sel.Each(func(_ int, s *goquery.Selection) {
				h1Texts = append(h1Texts, strings.TrimSpace(s.Text()))
			})
		}
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	score := 100
	var issues []Issue
	var recs []string
	details := map[string]any{
		"h1_count":       counts["h1"],
		"h2_count":       counts["h2"],
		"total_headings": total,
		"hierarchy":      counts,
	}

	switch {
	case counts["h1"] == 0:
		score -= 40
		issues = Critical(issues, "No H1 tag found on the page")
		recs = append(recs, "Add a single, descriptive H1 tag that includes your main keyword")
	case counts["h1"] > 1:
		score -= 25
		details["multiple_h1"] = true
		issues = Warning(issues, fmt.Sprintf("Multiple H1 tags found (%d). Use only one H1 per page", counts["h1"]))
		recs = append(recs, "Keep only one H1 tag and convert others to H2")
	default:
		details["h1_text"] = h1Texts[0]
		if h1Len := utf8.RuneCountInString(h1Texts[0]); h1Len > 70 {
			score -= 10
			details["h1_length"] = h1Len
			issues = Info(issues, "H1 tag is quite long. Consider making it more concise")
		}
	}

	if counts["h2"] == 0 {
		score -= 15
		issues = Warning(issues, "No H2 tags found. Use H2s to structure your content")
		recs = append(recs, "Add H2 headings to organize your content into sections")
	}

	hierarchyGap := false
	if counts["h3"] > 0 && counts["h2"] == 0 {
		hierarchyGap = true
		score -= 15
		issues = Warning(issues, "H3 tags exist without any H2. Maintain proper heading hierarchy")
	}
	if counts["h4"] > 0 && counts["h3"] == 0 {
		hierarchyGap = true
		score -= 10
		issues = Info(issues, "H4 tags exist without H3. Review the heading structure")
	}
	details["proper_hierarchy"] = !hierarchyGap
	details["well_structured"] = counts["h1"] == 1 && counts["h2"] >= 2 && !hierarchyGap

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}
