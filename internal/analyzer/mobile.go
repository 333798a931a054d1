package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seoaudit/internal/page"
)

var (
	fontSizeRe  = regexp.MustCompile(`font-size:\s*(\d+)(px|pt|em|rem)`)
	dimensionRe = regexp.MustCompile(`(?:width|height):\s*(\d+)px`)
	mediaRe     = regexp.MustCompile(`@media[^{]+`)
)

// Mobile scores mobile-friendliness from static HTML signals: the
// viewport tag, inline font sizes, tap-target dimensions and
// responsive-CSS hints. Additive per coverage area.
type Mobile struct{}

func (Mobile) Name() string { return "mobile" }

func (Mobile) Analyze(p *page.Page) Result {
	var issues []Issue
	var recs []string
	details := map[string]any{}
	score := 0

	// Viewport: 30 points.
	viewport, hasViewport := p.Doc.Find(`meta[name="viewport"]`).Attr("content")
	details["has_viewport"] = hasViewport
	if hasViewport {
		score += 15
		details["viewport"] = viewport
		valid := strings.Contains(viewport, "width=") && strings.Contains(viewport, "device-width")
		details["viewport_valid"] = valid
		if valid {
			score += 15
		} else {
			issues = Warning(issues, "Viewport meta tag is incomplete")
			recs = append(recs, `Use: <meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		}
	} else {
		issues = Critical(issues, "Missing viewport meta tag - page will not scale on mobile")
		recs = append(recs, "Add viewport meta tag for mobile responsiveness")
	}

	// Inline text sizing: 20 points.
	smallText := 0
	readableText := 0
	p.Doc.Find("p,span,div,li,td").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= 50 {
			return false
		}
		m := fontSizeRe.FindStringSubmatch(s.AttrOr("style", ""))
		if m == nil {
			return true
		}
		size, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "em", "rem":
			size *= 16
		case "pt":
			size = size * 4 / 3
		}
		if size < 14 {
			smallText++
		} else {
			readableText++
		}
		return true
	})
	details["small_text_elements"] = smallText
	if smallText < readableText || smallText == 0 {
		score += 20
	} else if smallText < 3 {
		score += 10
	}
	if smallText > 5 {
		issues = Warning(issues, fmt.Sprintf("Found %d elements with potentially small text", smallText))
		recs = append(recs, "Use at least 16px font size for body text on mobile")
	}

	// Tap targets: 25 points. Only inline dimensions are visible here.
	smallTargets := 0
	p.Doc.Find("a,button,input,select,textarea").Each(func(_ int, s *goquery.Selection) {
		for _, m := range dimensionRe.FindAllStringSubmatch(s.AttrOr("style", ""), -1) {
			if px, _ := strconv.Atoi(m[1]); px > 0 && px < 44 {
				smallTargets++
				break
			}
		}
	})
	details["small_tap_targets"] = smallTargets
	switch {
	case smallTargets == 0:
		score += 25
	case smallTargets < 3:
		score += 15
	}
	if smallTargets > 0 {
		issues = Warning(issues, fmt.Sprintf("%d tap targets may be too small (minimum 44x44px recommended)", smallTargets))
		recs = append(recs, "Ensure buttons and links are at least 44x44 pixels")
	}

	// Responsive-design hints: 25 points.
	responsiveImages := 0
	p.Doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		style := s.AttrOr("style", "")
		if strings.Contains(style, "max-width") || strings.Contains(style, "width: 100%") {
			responsiveImages++
		}
	})
	mediaQueries := 0
	p.Doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		mediaQueries += len(mediaRe.FindAllString(s.Text(), -1))
	})
	flexOrGrid := false
	p.Doc.Find("[style]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		style := s.AttrOr("style", "")
		if strings.Contains(style, "display: flex") || strings.Contains(style, "display:flex") ||
			strings.Contains(style, "display: grid") || strings.Contains(style, "display:grid") {
			flexOrGrid = true
			return false
		}
		return true
	})
	hasManifest := p.Doc.Find(`link[rel="manifest"]`).Length() > 0

	details["responsive_images"] = responsiveImages
	details["media_query_count"] = mediaQueries
	details["uses_flex_or_grid"] = flexOrGrid
	details["has_manifest"] = hasManifest

	if responsiveImages > 0 || mediaQueries > 0 {
		score += 10
	}
	if flexOrGrid {
		score += 10
	}
	if hasManifest {
		score += 5
	}
	if mediaQueries == 0 {
		issues = Info(issues, "No media queries detected in inline styles")
		recs = append(recs, "Use CSS media queries for responsive layouts")
	}

	score = Clamp(score)
	switch {
	case score >= 80:
		details["status"] = "mobile_friendly"
	case score >= 60:
		details["status"] = "partially_mobile"
	default:
		details["status"] = "not_mobile"
	}

	return Result{Score: score, Issues: issues, Recommendations: recs, Details: details}
}
