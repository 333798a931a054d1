package analyzer

import (
	"strings"
	"testing"
)

func TestTitle(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name         string
		html         string
		wantScore    int
		wantSeverity Severity
	}{
		{
			name:         "missing title",
			html:         `<html><head></head><body></body></html>`,
			wantScore:    0,
			wantSeverity: SeverityCritical,
		},
		{
			name:         "empty title",
			html:         `<html><head><title>   </title></head><body></body></html>`,
			wantScore:    0,
			wantSeverity: SeverityCritical,
		},
		{
			name:         "too short",
			html:         `<html><head><title>Hi</title></head><body></body></html>`,
			wantScore:    70,
			wantSeverity: SeverityWarning,
		},
		{
			name:         "too long",
			html:         `<html><head><title>` + strings.Repeat("very long title ", 8) + `</title></head><body></body></html>`,
			wantScore:    80,
			wantSeverity: SeverityWarning,
		},
		{
			name:      "optimal length",
			html:      `<html><head><title>The Ultimate Guide to Quality Widgets 2024 | ACME Inc</title></head><body></body></html>`,
			wantScore: 100,
		},
		{
			name:      "acceptable but below optimal band",
			html:      `<html><head><title>Ultimate Guide to Quality Widgets</title></head><body></body></html>`,
			wantScore: 95,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := Title{}.Analyze(parse(t, tc.html, "https://example.com"))
			if res.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", res.Score, tc.wantScore)
			}
			if tc.wantSeverity != "" && !hasSeverity(res.Issues, tc.wantSeverity) {
				t.Errorf("issues %+v missing severity %s", res.Issues, tc.wantSeverity)
			}
		})
	}
}

func TestTitle_DetailsCarryValue(t *testing.T) {
	t.Parallel()
	res := Title{}.Analyze(parse(t,
		`<html><head><title>The Ultimate Guide to Quality Widgets 2024 | ACME Inc</title></head><body></body></html>`,
		"https://example.com"))
	if got := res.Details["value"]; got != "The Ultimate Guide to Quality Widgets 2024 | ACME Inc" {
		t.Errorf("details value = %v", got)
	}
	if got := res.Details["length"]; got != 53 {
		t.Errorf("details length = %v, want 53", got)
	}
	if got := res.Details["has_separator"]; got != true {
		t.Errorf("details has_separator = %v, want true", got)
	}
	if got := res.Details["has_power_words"]; got != true {
		t.Errorf("details has_power_words = %v, want true", got)
	}
}
