package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"seoaudit/internal/page"
)

// securityHeaders are the response headers the security check looks
// for, with the short label used in details.
var securityHeaders = []struct {
	Name  string
	Label string
}{
	{"Strict-Transport-Security", "HSTS"},
	{"Content-Security-Policy", "CSP"},
	{"X-Content-Type-Options", "X-Content-Type-Options"},
	{"X-Frame-Options", "X-Frame-Options"},
	{"Referrer-Policy", "Referrer-Policy"},
	{"Permissions-Policy", "Permissions-Policy"},
}

// Security scores transport security: HTTPS, mixed content and the
// protective response headers. Additive: 40 for HTTPS, 20 for a clean
// resource inventory, up to 40 for header coverage.
type Security struct{}

func (Security) Name() string { return "security" }

func (Security) Analyze(p *page.Page) Result {
	var issues []Issue
	var recs []string
	details := map[string]any{}

	score := 0
	isHTTPS := p.IsHTTPS()
	details["is_https"] = isHTTPS
	if isHTTPS {
		score += 40
		details["ssl_status"] = "Secure"
	} else {
		details["ssl_status"] = "Not Secure"
		issues = Critical(issues, "Site does not use HTTPS - data is transmitted insecurely")
		recs = append(recs, "Migrate to HTTPS with an SSL certificate for secure connections")
	}

	// Mixed content only matters on an HTTPS page.
	mixed := 0
	var mixedSample []string
	if isHTTPS {
		p.Doc.Find("img[src],script[src],link[href],iframe[src]").Each(func(_ int, s *goquery.Selection) {
			src := s.AttrOr("src", s.AttrOr("href", ""))
			if strings.HasPrefix(src, "http://") {
				mixed++
				if len(mixedSample) < 10 {
					mixedSample = append(mixedSample, src)
				}
			}
		})
	}
	details["mixed_content_count"] = mixed
	if mixed > 0 {
		details["mixed_content"] = mixedSample
		issues = Warning(issues, fmt.Sprintf("%d mixed content items found - HTTP resources on HTTPS page", mixed))
		recs = append(recs, "Serve all page resources over HTTPS")
	} else {
		score += 20
	}

	var found, missing []string
	for _, h := range securityHeaders {
		if p.Header.Get(h.Name) != "" {
			found = append(found, h.Label)
		} else {
			missing = append(missing, h.Label)
		}
	}
	details["headers_found"] = found
	details["headers_missing"] = missing
	score += int(math.Round(float64(len(found)) / float64(len(securityHeaders)) * 40))

	if len(missing) > 0 {
		issues = Warning(issues, fmt.Sprintf("%d security headers missing", len(missing)))
		if len(missing) > 3 {
			recs = append(recs, "Add security headers (HSTS, CSP, X-Frame-Options) to improve protection")
		}
	}

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}
