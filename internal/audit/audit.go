// Package audit wires the full pipeline: fetch the page, run the
// category analyzers, probe the outbound links and assemble the report.
// Only the fetch can fail an audit; everything downstream degrades into
// report data instead of errors.
package audit

import (
	"context"
	"log/slog"
	"time"

	"seoaudit/internal/analyzer"
	"seoaudit/internal/config"
	"seoaudit/internal/linkprobe"
	"seoaudit/internal/logging"
	"seoaudit/internal/page"
	"seoaudit/internal/report"
)

// Options tunes one audit run.
type Options struct {
	// Keyword enables keyword checks in the content analyzer.
	Keyword string
	// SkipLinkProbe leaves the link_health category out entirely.
	SkipLinkProbe bool
	// ExtendedAnalyzers adds the social/security/mobile/schema
	// categories. The config can also enable them globally; either
	// switch turns them on.
	ExtendedAnalyzers bool
}

// Auditor runs audits. Safe for concurrent use; the server shares one
// instance across requests.
type Auditor struct {
	fetcher  *page.Fetcher
	prober   *linkprobe.Prober
	weights  report.Weights
	extended bool
	now      func() time.Time
	logger   *slog.Logger
}

// New builds an Auditor from config, validating it first.
func New(cfg config.Config) (*Auditor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prober, err := linkprobe.New(cfg.ProbeConfig())
	if err != nil {
		return nil, err
	}
	a := NewWithComponents(page.NewFetcher(cfg.FetchConfig()), prober, cfg.WeightTable(), cfg.ExtendedAnalyzers)
	return a, nil
}

// NewWithComponents wires an Auditor from prebuilt parts. Tests use it
// to point the fetcher and prober at local servers.
func NewWithComponents(fetcher *page.Fetcher, prober *linkprobe.Prober, weights report.Weights, extended bool) *Auditor {
	return &Auditor{
		fetcher:  fetcher,
		prober:   prober,
		weights:  weights,
		extended: extended,
		now:      time.Now,
		logger:   logging.New("audit"),
	}
}

// Run audits rawURL and returns the assembled report. Fetch failure is
// the only hard error: probe timeouts, unreachable link targets and
// cancellation mid-probe all shape the link_health data instead.
func (a *Auditor) Run(ctx context.Context, rawURL string, opts Options) (*report.Report, error) {
	start := time.Now()

	p, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	analyzers := analyzer.Core(opts.Keyword)
	if opts.ExtendedAnalyzers || a.extended {
		analyzers = append(analyzers, analyzer.Extended()...)
	}

	results := make(map[string]analyzer.Result, len(analyzers)+1)
	for _, an := range analyzers {
		results[an.Name()] = an.Analyze(p)
	}

	if !opts.SkipLinkProbe {
		targets := linkprobe.Extract(p.Doc, p.URL)
		health, _ := a.prober.Health(ctx, targets)
		results["link_health"] = health
	}

	rep := report.Build(p.URL.String(), results, a.weights, a.now())
	a.logger.Info("audit complete",
		"url", rep.URL,
		"score", rep.OverallScore,
		"grade", rep.Grade,
		"categories", len(results),
		"elapsed", time.Since(start),
	)
	return rep, nil
}

// CheckLinks fetches rawURL and probes its outbound links, without
// running the category analyzers.
func (a *Auditor) CheckLinks(ctx context.Context, rawURL string) (analyzer.Result, []linkprobe.Outcome, error) {
	p, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return analyzer.Result{}, nil, err
	}
	targets := linkprobe.Extract(p.Doc, p.URL)
	health, outcomes := a.prober.Health(ctx, targets)
	a.logger.Info("link check complete", "url", p.URL.String(), "targets", len(targets), "score", health.Score)
	return health, outcomes, nil
}

// QuickCheck is the lightweight reachability probe behind the API's
// quick-check endpoint: URL validation plus a single HEAD, no parsing.
type QuickCheck struct {
	URL        string           `json:"url"`
	Reachable  bool             `json:"reachable"`
	StatusCode int              `json:"status_code"`
	Status     linkprobe.Status `json:"status"`
}

// QuickCheckURL validates rawURL and probes it once. Invalid URLs are
// errors; an unreachable host is data.
func (a *Auditor) QuickCheckURL(ctx context.Context, rawURL string) (*QuickCheck, error) {
	normalized, err := page.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	outcomes := a.prober.Check(ctx, []linkprobe.Target{{URL: normalized, Href: rawURL}})
	o := outcomes[0]
	return &QuickCheck{
		URL:        normalized,
		Reachable:  o.Status == linkprobe.StatusWorking || o.Status == linkprobe.StatusRedirected,
		StatusCode: o.StatusCode,
		Status:     o.Status,
	}, nil
}
