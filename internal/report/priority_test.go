package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seoaudit/internal/analyzer"
)

func TestClassifyIssues_Rules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		score      int
		severity   analyzer.Severity
		wantBucket string
	}{
		{name: "critical outranks a healthy score", score: 95, severity: analyzer.SeverityCritical, wantBucket: "high"},
		{name: "score below 40 outranks info", score: 35, severity: analyzer.SeverityInfo, wantBucket: "high"},
		{name: "score 39 is high", score: 39, severity: analyzer.SeverityInfo, wantBucket: "high"},
		{name: "score 40 info is medium", score: 40, severity: analyzer.SeverityInfo, wantBucket: "medium"},
		{name: "warning in healthy category is medium", score: 85, severity: analyzer.SeverityWarning, wantBucket: "medium"},
		{name: "score 69 info is medium", score: 69, severity: analyzer.SeverityInfo, wantBucket: "medium"},
		{name: "score 70 info is low", score: 70, severity: analyzer.SeverityInfo, wantBucket: "low"},
		{name: "score 100 info is low", score: 100, severity: analyzer.SeverityInfo, wantBucket: "low"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results := map[string]analyzer.Result{
				"sample": {
					Score:  tc.score,
					Issues: []analyzer.Issue{{Severity: tc.severity, Message: "finding"}},
				},
			}
			got := ClassifyIssues(results)

			bucketLens := map[string]int{"high": len(got.High), "medium": len(got.Medium), "low": len(got.Low)}
			for bucket, n := range bucketLens {
				want := 0
				if bucket == tc.wantBucket {
					want = 1
				}
				if n != want {
					t.Errorf("bucket %s has %d issues, want %d (result: %+v)", bucket, n, want, got)
				}
			}
		})
	}
}

func TestClassifyIssues_CountsConserved(t *testing.T) {
	t.Parallel()
	results := map[string]analyzer.Result{
		"title": {Score: 90, Issues: []analyzer.Issue{
			{Severity: analyzer.SeverityInfo, Message: "a"},
			{Severity: analyzer.SeverityCritical, Message: "b"},
		}},
		"content": {Score: 55, Issues: []analyzer.Issue{
			{Severity: analyzer.SeverityInfo, Message: "c"},
		}},
		"images": {Score: 30, Issues: []analyzer.Issue{
			{Severity: analyzer.SeverityInfo, Message: "d"},
			{Severity: analyzer.SeverityWarning, Message: "e"},
		}},
	}

	got := ClassifyIssues(results)
	if got.Total() != 5 {
		t.Errorf("Total = %d, want 5 (every issue in exactly one bucket)", got.Total())
	}
	// images at 30: both issues high. title: critical high, info low.
	// content at 55: info medium.
	if len(got.High) != 3 || len(got.Medium) != 1 || len(got.Low) != 1 {
		t.Errorf("buckets = high:%d medium:%d low:%d, want 3/1/1",
			len(got.High), len(got.Medium), len(got.Low))
	}
}

func TestClassifyIssues_DeterministicOrder(t *testing.T) {
	t.Parallel()
	results := map[string]analyzer.Result{
		"zeta":  {Score: 20, Issues: []analyzer.Issue{{Severity: analyzer.SeverityInfo, Message: "z1"}}},
		"alpha": {Score: 20, Issues: []analyzer.Issue{{Severity: analyzer.SeverityInfo, Message: "a1"}, {Severity: analyzer.SeverityInfo, Message: "a2"}}},
	}

	want := PriorityIssues{
		High: []CategoryIssue{
			{Category: "alpha", Severity: analyzer.SeverityInfo, Message: "a1"},
			{Category: "alpha", Severity: analyzer.SeverityInfo, Message: "a2"},
			{Category: "zeta", Severity: analyzer.SeverityInfo, Message: "z1"},
		},
		Medium: []CategoryIssue{},
		Low:    []CategoryIssue{},
	}
	if diff := cmp.Diff(want, ClassifyIssues(results)); diff != "" {
		t.Errorf("ClassifyIssues mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyIssues_Empty(t *testing.T) {
	t.Parallel()
	got := ClassifyIssues(nil)
	if got.High == nil || got.Medium == nil || got.Low == nil {
		t.Error("buckets must be empty slices, not nil, for stable JSON output")
	}
	if got.Total() != 0 {
		t.Errorf("Total = %d, want 0", got.Total())
	}
}
