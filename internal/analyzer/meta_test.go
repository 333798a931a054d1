package analyzer

import (
	"strings"
	"testing"
)

func metaHTML(desc string) string {
	return `<html><head><meta name="description" content="` + desc + `"></head><body></body></html>`
}

func TestMetaDescription(t *testing.T) {
	t.Parallel()

	// 140 chars with a call to action: inside [120,160], nothing to deduct.
	good := "Discover our complete catalog of precision widgets, built for engineers who need reliable parts delivered fast from our warehouse today."

	cases := []struct {
		name         string
		html         string
		wantScore    int
		wantSeverity Severity
	}{
		{
			name:         "missing",
			html:         `<html><head></head><body></body></html>`,
			wantScore:    0,
			wantSeverity: SeverityCritical,
		},
		{
			name:         "too short",
			html:         metaHTML("A small parts shop."),
			wantScore:    65, // -25 length, -10 no CTA
			wantSeverity: SeverityWarning,
		},
		{
			name:         "too long",
			html:         metaHTML("Discover " + strings.Repeat("widgets and more ", 12)),
			wantScore:    85,
			wantSeverity: SeverityWarning,
		},
		{
			name:      "optimal with cta",
			html:      metaHTML(good),
			wantScore: 100,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := MetaDescription{}.Analyze(parse(t, tc.html, "https://example.com"))
			if res.Score != tc.wantScore {
				t.Errorf("score = %d, want %d (issues %+v)", res.Score, tc.wantScore, res.Issues)
			}
			if tc.wantSeverity != "" && !hasSeverity(res.Issues, tc.wantSeverity) {
				t.Errorf("issues %+v missing severity %s", res.Issues, tc.wantSeverity)
			}
		})
	}
}

func TestMetaDescription_OpenGraphMismatchNoted(t *testing.T) {
	t.Parallel()
	html := `<html><head>
<meta name="description" content="Discover our complete catalog of precision widgets, built for engineers who need reliable parts delivered fast from our warehouse today.">
<meta property="og:description" content="Something else entirely.">
</head><body></body></html>`
	res := MetaDescription{}.Analyze(parse(t, html, "https://example.com"))
	if got := res.Details["has_og_description"]; got != true {
		t.Errorf("has_og_description = %v, want true", got)
	}
	if got := res.Details["og_matches"]; got != false {
		t.Errorf("og_matches = %v, want false", got)
	}
}
