package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"seoaudit/internal/format"
	"seoaudit/internal/linkprobe"
	"seoaudit/internal/page"
)

var linksFlags struct {
	concurrency int
	timeout     time.Duration
	maxTargets  int
	jsonOut     bool
	markdown    bool
}

var linksCmd = &cobra.Command{
	Use:   "links <url>",
	Short: "Probe the outbound links of one page",
	Long: `Fetch a page, extract its outbound links and probe each one with a
HEAD request. Redirects are reported, never followed.

Usage:
  seoaudit links example.com
  seoaudit links example.com --concurrency 20 --timeout 3s
  seoaudit links example.com --max 10 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLinks,
}

func init() {
	f := linksCmd.Flags()
	f.IntVar(&linksFlags.concurrency, "concurrency", 0, "Parallel probe workers (default from config)")
	f.DurationVar(&linksFlags.timeout, "timeout", 0, "Per-link timeout (default from config)")
	f.IntVar(&linksFlags.maxTargets, "max", 0, "Cap on probed links (default from config)")
	f.BoolVar(&linksFlags.jsonOut, "json", false, "Print the raw outcome JSON")
	f.BoolVar(&linksFlags.markdown, "markdown", false, "Render the outcome table as Markdown")
}

func runLinks(cmd *cobra.Command, args []string) error {
	pc := cfg.ProbeConfig()
	if linksFlags.concurrency > 0 {
		pc.Concurrency = linksFlags.concurrency
	}
	if linksFlags.timeout > 0 {
		pc.Timeout = linksFlags.timeout
	}
	if linksFlags.maxTargets > 0 {
		pc.MaxTargets = linksFlags.maxTargets
	}
	prober, err := linkprobe.New(pc)
	if err != nil {
		return fmt.Errorf("configure prober: %w", err)
	}

	ctx := cmd.Context()
	fetcher := page.NewFetcher(cfg.FetchConfig())
	p, err := fetcher.Fetch(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	out := cmd.OutOrStdout()
	targets := linkprobe.Extract(p.Doc, p.URL)
	if !linksFlags.jsonOut {
		fmt.Fprintf(out, "Fetched %s (%s), probing %d links\n\n", p.URL, format.FmtBytes(int64(p.BodySize)), len(targets))
	}

	health, outcomes := prober.Health(ctx, targets)

	if linksFlags.jsonOut {
		data, err := json.MarshalIndent(map[string]any{
			"url":      p.URL.String(),
			"health":   health,
			"outcomes": outcomes,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal outcomes: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	mode := format.ASCII
	if linksFlags.markdown {
		mode = format.Markdown
	}
	renderOutcomes(out, health, outcomes, mode)
	return nil
}
