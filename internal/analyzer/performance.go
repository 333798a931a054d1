package analyzer

import (
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"seoaudit/internal/page"
)

const (
	perfSlowResponse     = 3 * time.Second
	perfModerateResponse = 1 * time.Second
	perfLargeHTMLBytes   = 100 << 10 // 100 KiB
)

// Performance scores load-speed heuristics readable from the HTML and
// the fetch itself: response time, resource counts, render blockers.
// No browser is involved; these are static signals only.
type Performance struct{}

func (Performance) Name() string { return "performance" }

func (Performance) Analyze(p *page.Page) Result {
	score := 100
	var issues []Issue
	var recs []string
	details := map[string]any{}

	if p.ResponseTime > 0 {
		details["response_time_ms"] = p.ResponseTime.Milliseconds()
		switch {
		case p.ResponseTime > perfSlowResponse:
			score -= 30
			issues = Critical(issues, fmt.Sprintf("Page response time is slow (%.2fs)", p.ResponseTime.Seconds()))
			recs = append(recs, "Improve server response time. Consider caching and CDN")
		case p.ResponseTime > perfModerateResponse:
			score -= 15
			issues = Warning(issues, fmt.Sprintf("Page response time could be improved (%.2fs)", p.ResponseTime.Seconds()))
		}
	}

	externalScripts := p.Doc.Find("script[src]").Length()
	inlineScripts := p.Doc.Find("script").Length() - externalScripts
	details["external_scripts"] = externalScripts
	details["inline_scripts"] = inlineScripts
	if externalScripts > 10 {
		score -= 15
		issues = Warning(issues, fmt.Sprintf("Too many external scripts (%d)", externalScripts))
		recs = append(recs, "Combine and minify JavaScript files")
	}

	stylesheets := p.Doc.Find(`link[rel="stylesheet"]`).Length()
	inlineStyles := p.Doc.Find("style").Length()
	details["external_stylesheets"] = stylesheets
	details["inline_styles"] = inlineStyles
	if stylesheets > 5 {
		score -= 10
		issues = Info(issues, fmt.Sprintf("Multiple stylesheets detected (%d)", stylesheets))
		recs = append(recs, "Combine CSS files to reduce HTTP requests")
	}

	blocking := 0
	p.Doc.Find("head script[src]").Each(func(_ int, s *goquery.Selection) {
		if _, defer_ := s.Attr("defer"); defer_ {
			return
		}
		if _, async := s.Attr("async"); async {
			return
		}
		blocking++
	})
	details["render_blocking_scripts"] = blocking
	if blocking > 0 {
		score -= 10
		issues = Warning(issues, fmt.Sprintf("%d render-blocking scripts in <head>", blocking))
		recs = append(recs, "Add defer or async attribute to non-critical scripts")
	}

	details["preload_hints"] = p.Doc.Find(`link[rel="preload"]`).Length()
	details["preconnect_hints"] = p.Doc.Find(`link[rel="preconnect"]`).Length()

	hasViewport := p.Doc.Find(`meta[name="viewport"]`).Length() > 0
	details["has_viewport"] = hasViewport
	if !hasViewport {
		score -= 15
		issues = Warning(issues, "Missing viewport meta tag for mobile optimization")
		recs = append(recs, `Add <meta name="viewport" content="width=device-width, initial-scale=1">`)
	}

	hasCharset := p.Doc.Find("meta[charset]").Length() > 0 ||
		p.Doc.Find(`meta[http-equiv="Content-Type"]`).Length() > 0
	details["has_charset"] = hasCharset
	if !hasCharset {
		issues = Info(issues, "Missing charset declaration")
		recs = append(recs, `Add <meta charset="UTF-8"> at the top of <head>`)
	}

	details["html_size_bytes"] = p.BodySize
	details["html_size_kb"] = round1(float64(p.BodySize) / 1024)
	if p.BodySize > perfLargeHTMLBytes {
		score -= 10
		issues = Info(issues, fmt.Sprintf("Large HTML document (%dKB)", p.BodySize>>10))
		recs = append(recs, "Consider reducing HTML size by removing unnecessary code")
	}

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}
