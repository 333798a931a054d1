package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"seoaudit/internal/page"
)

const urlMaxLength = 75

var (
	urlSpecialCharRe = regexp.MustCompile(`[^a-zA-Z0-9\-/.]`)
	urlDatePathRe    = regexp.MustCompile(`/\d{4}/\d{2}/`)
)

// URLStructure scores the page URL itself: scheme, length, separators
// and cleanliness of the path.
type URLStructure struct{}

func (URLStructure) Name() string { return "url_structure" }

func (URLStructure) Analyze(p *page.Page) Result {
	score := 100
	var issues []Issue
	var recs []string

	full := p.URL.String()
	path := p.URL.Path
	details := map[string]any{
		"value":  full,
		"path":   path,
		"length": len(full),
	}

	details["is_https"] = p.IsHTTPS()
	if !p.IsHTTPS() {
		score -= 20
		issues = Critical(issues, "URL is not using HTTPS")
		recs = append(recs, "Migrate to HTTPS for security and SEO benefits")
	}

	if len(full) > urlMaxLength {
		score -= 15
		issues = Warning(issues, fmt.Sprintf("URL is too long (%d chars). Keep under 60 chars", len(full)))
		recs = append(recs, "Shorten your URL by removing unnecessary words")
	}

	hasUnderscores := strings.Contains(path, "_")
	details["has_underscores"] = hasUnderscores
	if hasUnderscores {
		score -= 10
		issues = Warning(issues, "URL contains underscores. Use hyphens instead")
		recs = append(recs, "Replace underscores with hyphens in URLs")
	}

	if special := urlSpecialCharRe.FindAllString(path, -1); len(special) > 0 {
		score -= 10
		unique := uniqueSorted(special)
		details["special_chars"] = unique
		issues = Warning(issues, fmt.Sprintf("URL contains special characters: %s", strings.Join(unique, ", ")))
		recs = append(recs, "Remove special characters from URL")
	}

	hasUppercase := path != strings.ToLower(path)
	details["has_uppercase"] = hasUppercase
	if hasUppercase {
		score -= 5
		issues = Info(issues, "URL contains uppercase letters. Use lowercase only")
		recs = append(recs, "Convert URL to lowercase")
	}

	if strings.Contains(path, ".html.html") || strings.Contains(path, ".php.php") {
		score -= 30
		details["double_extension"] = true
		issues = Critical(issues, "URL contains double file extension (e.g., .html.html)")
		recs = append(recs, "Fix URL configuration to remove duplicate extensions")
	}

	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	details["path_segments"] = segments

	hasDate := urlDatePathRe.MatchString(path)
	details["has_date"] = hasDate
	if hasDate {
		issues = Info(issues, "URL contains date structure. This may make content appear outdated")
	}

	hasParams := p.URL.RawQuery != ""
	details["has_parameters"] = hasParams
	if hasParams {
		score -= 10
		issues = Info(issues, "URL contains query parameters")
		recs = append(recs, "Use clean URLs without query parameters when possible")
	}

	return Result{Score: Clamp(score), Issues: issues, Recommendations: recs, Details: details}
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
