package analyzer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seoaudit/internal/page"
)

var genericAnchors = map[string]struct{}{
	"click here": {},
	"read more":  {},
	"here":       {},
	"link":       {},
	"this":       {},
	"more":       {},
}

type linkInfo struct {
	href       string
	text       string
	internal   bool
	nofollow   bool
	newTab     bool
	suspicious bool
}

// Links scores the static link profile of the page: internal coverage,
// anchor text quality and obvious URL smells. Liveness of the targets
// is a separate concern handled by the link prober.
type Links struct{}

func (Links) Name() string { return "links" }

func (Links) Analyze(p *page.Page) Result {
	baseHost := p.URL.Hostname()

	var links []linkInfo
	p.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := p.URL.ResolveReference(ref)

		rel := strings.ToLower(s.AttrOr("rel", ""))
		links = append(links, linkInfo{
			href:     href,
			text:     strings.TrimSpace(s.Text()),
			internal: resolved.Hostname() == baseHost || resolved.Hostname() == "",
			nofollow: strings.Contains(rel, "nofollow"),
			newTab:   s.AttrOr("target", "") == "_blank",
			suspicious: strings.Contains(href, ".html.html") ||
				strings.Contains(href, "404") ||
				strings.Contains(href, "undefined"),
		})
	})

	score := 100
	var issues []Issue
	var recs []string
	details := map[string]any{"total_links": len(links)}

	var internal, external, dofollowExternal, emptyText, generic, suspicious int
	var internalSample, externalSample []string
	for _, l := range links {
		if l.internal {
			internal++
			if len(internalSample) < 10 {
				internalSample = append(internalSample, l.href)
			}
		} else {
			external++
			if !l.nofollow {
				dofollowExternal++
			}
			if len(externalSample) < 10 {
				externalSample = append(externalSample, l.href)
			}
		}
		if l.text == "" {
			emptyText++
		}
		if _, ok := genericAnchors[strings.ToLower(l.text)]; ok {
			generic++
		}
		if l.suspicious {
			suspicious++
		}
	}

	details["internal_count"] = internal
	details["external_count"] = external
	details["external_dofollow"] = dofollowExternal
	details["empty_anchor_text"] = emptyText
	details["generic_anchor_text"] = generic
	details["internal_links"] = internalSample
	details["external_links"] = externalSample

	switch {
	case internal == 0:
		score -= 30
		issues = Warning(issues, "No internal links found on the page")
		recs = append(recs, "Add internal links to other relevant pages on your site")
	case internal < 3:
		score -= 15
		issues = Info(issues, fmt.Sprintf("Only %d internal links found. Consider adding more", internal))
		recs = append(recs, "Include 3-5 internal links for better site structure")
	}

	if external == 0 {
		issues = Info(issues, "No external links found")
		recs = append(recs, "Consider linking to authoritative external sources")
	}

	if emptyText > 0 {
		score -= 10
		issues = Warning(issues, fmt.Sprintf("%d links have no anchor text", emptyText))
		recs = append(recs, "Add descriptive anchor text to all links")
	}

	if generic > 0 {
		score -= 5
		issues = Info(issues, fmt.Sprintf("%d links use generic anchor text", generic))
		recs = append(recs, `Use descriptive anchor text instead of "click here" or "read more"`)
	}

	if suspicious > 0 {
		score -= 15
		details["suspicious_links"] = suspicious
		issues = Warning(issues, fmt.Sprintf("%d potentially broken or malformed links detected", suspicious))
		recs = append(recs, "Review and fix suspicious link URLs")
	}

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}
