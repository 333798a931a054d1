package linkprobe

import (
	"context"
	"fmt"
	"math"

	"seoaudit/internal/analyzer"
)

// Health probes the targets and folds the outcomes into a category
// result alongside the raw outcome list.
func (p *Prober) Health(ctx context.Context, targets []Target) (analyzer.Result, []Outcome) {
	outcomes := p.Check(ctx, targets)
	return HealthResult(outcomes), outcomes
}

// HealthResult scores a batch of probe outcomes. With nothing probed
// the score is a clean 100. Otherwise the score is the share of
// targets that answered at all: broken and unreachable both count
// against it, redirects do not.
func HealthResult(outcomes []Outcome) analyzer.Result {
	var working, redirected, broken, unreachable int
	for _, o := range outcomes {
		switch o.Status {
		case StatusWorking:
			working++
		case StatusRedirected:
			redirected++
		case StatusBroken:
			broken++
		case StatusUnreachable:
			unreachable++
		}
	}

	total := len(outcomes)
	details := map[string]any{
		"total_checked": total,
		"working":       working,
		"redirected":    redirected,
		"broken":        broken,
		"unreachable":   unreachable,
		"outcomes":      outcomes,
	}

	if total == 0 {
		return analyzer.Result{Score: 100, Details: details}
	}

	brokenRatio := float64(broken+unreachable) / float64(total)
	score := analyzer.Clamp(int(math.Round((1 - brokenRatio) * 100)))

	var issues []analyzer.Issue
	var recs []string
	if broken > 0 {
		issues = analyzer.Critical(issues, fmt.Sprintf("%d of %d checked links are broken", broken, total))
		recs = append(recs, "Fix or remove broken links; they waste crawl budget and erode user trust")
	}
	if redirected > 3 {
		issues = analyzer.Info(issues, fmt.Sprintf("%d links answer with a redirect", redirected))
		recs = append(recs, "Point links directly at their final destination to avoid redirect hops")
	}

	return analyzer.Result{Score: score, Issues: issues, Recommendations: recs, Details: details}
}
