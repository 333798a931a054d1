// Package linkprobe extracts the outbound links of a page and probes
// them for liveness with a bounded worker pool. Probes never follow
// redirects; a 3xx is an observation, not a hop to take.
package linkprobe

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Target is one probe-worthy link: the resolved absolute URL plus the
// raw href as authored, kept for reporting.
type Target struct {
	URL  string `json:"url"`
	Href string `json:"href"`
}

var skipSchemes = []string{"javascript:", "mailto:", "tel:"}

// Extract collects the dereferenceable link targets of a document:
// anchors resolved against base, http(s) only, fragments stripped,
// deduplicated in first-seen document order. Non-link hrefs (fragment
// jumps, javascript:, mailto:, tel:) are skipped. Truncation to the
// probe cap is the prober's job and happens after this dedup.
func Extract(doc *goquery.Document, base *url.URL) []Target {
	seen := make(map[string]struct{})
	var targets []Target

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		lower := strings.ToLower(href)
		for _, scheme := range skipSchemes {
			if strings.HasPrefix(lower, scheme) {
				return
			}
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		resolved.Fragment = ""

		key := resolved.String()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		targets = append(targets, Target{URL: key, Href: href})
	})

	return targets
}
