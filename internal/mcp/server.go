// Package mcp exposes the auditor as MCP tools over stdio, so agent
// hosts can run audits and read scan history without shelling out.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seoaudit/internal/analyzer"
	"seoaudit/internal/audit"
	"seoaudit/internal/config"
	"seoaudit/internal/history"
	"seoaudit/internal/linkprobe"
	"seoaudit/internal/logging"
	"seoaudit/internal/page"
	"seoaudit/internal/report"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultAuditTimeout caps a single audit_page or check_links call.
var DefaultAuditTimeout = 60 * time.Second

// Server wraps the MCP SDK server around the auditor. Tools are
// stateless: each call runs one audit against the shared components.
type Server struct {
	MCPServer *sdkmcp.Server

	auditor *audit.Auditor
	fetcher *page.Fetcher
	cfg     config.Config
	store   history.Store
	logger  *slog.Logger
}

// NewServer builds the MCP server from a validated config. store may
// be nil, in which case score_history reports persistence as disabled.
func NewServer(cfg config.Config, store history.Store, version string) (*Server, error) {
	auditor, err := audit.New(cfg)
	if err != nil {
		return nil, err
	}
	s := &Server{
		auditor: auditor,
		fetcher: page.NewFetcher(cfg.FetchConfig()),
		cfg:     cfg,
		store:   store,
		logger:  logging.New("mcp"),
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "seoaudit", Version: version},
		nil,
	)
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "audit_page",
		Description: "Run a full SEO audit of one URL. Returns the overall score, grade, per-category scores and the ranked fixes, plus the complete report.",
	}, s.handleAuditPage)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "check_links",
		Description: "Fetch a page and probe its outbound links. Returns the link-health score and the per-link outcomes (working, redirected, broken, unreachable).",
	}, s.handleCheckLinks)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "score_history",
		Description: "List persisted scan scores, newest first. Optionally filtered to one URL.",
	}, s.handleScoreHistory)
}

// --- Tool input/output types ---

type auditPageInput struct {
	URL       string `json:"url" jsonschema:"page URL to audit (scheme defaults to https)"`
	Keyword   string `json:"keyword,omitempty" jsonschema:"target keyword for the content analyzer"`
	SkipLinks bool   `json:"skip_links,omitempty" jsonschema:"skip the outbound link probe"`
	Extended  bool   `json:"extended,omitempty" jsonschema:"also run the social, security, mobile and schema analyzers"`
	Save      bool   `json:"save,omitempty" jsonschema:"record the score in scan history"`
}

type auditPageOutput struct {
	URL            string         `json:"url"`
	OverallScore   int            `json:"overall_score"`
	Grade          string         `json:"grade"`
	CategoryScores map[string]int `json:"category_scores"`
	TotalIssues    int            `json:"total_issues"`
	TopFixes       []string       `json:"top_fixes,omitempty"`
	Saved          bool           `json:"saved"`
	Report         *report.Report `json:"report"`
}

type checkLinksInput struct {
	URL         string `json:"url" jsonschema:"page URL whose links to probe"`
	Concurrency int    `json:"concurrency,omitempty" jsonschema:"parallel probe workers (default from config)"`
	TimeoutMS   int    `json:"timeout_ms,omitempty" jsonschema:"per-link timeout in milliseconds"`
	MaxTargets  int    `json:"max_targets,omitempty" jsonschema:"cap on probed links"`
}

type checkLinksOutput struct {
	URL      string              `json:"url"`
	Health   analyzer.Result     `json:"health"`
	Outcomes []linkprobe.Outcome `json:"outcomes"`
}

type scoreHistoryInput struct {
	URL   string `json:"url,omitempty" jsonschema:"filter scans to this URL (empty = all)"`
	Limit int    `json:"limit,omitempty" jsonschema:"max scans to return (default 20)"`
}

type scoreHistoryOutput struct {
	Count int             `json:"count"`
	Scans []*history.Scan `json:"scans"`
}

// --- Tool handlers ---

func (s *Server) handleAuditPage(ctx context.Context, _ *sdkmcp.CallToolRequest, input auditPageInput) (*sdkmcp.CallToolResult, auditPageOutput, error) {
	if input.URL == "" {
		return nil, auditPageOutput{}, fmt.Errorf("url is required")
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultAuditTimeout)
	defer cancel()

	rep, err := s.auditor.Run(ctx, input.URL, audit.Options{
		Keyword:           input.Keyword,
		SkipLinkProbe:     input.SkipLinks,
		ExtendedAnalyzers: input.Extended,
	})
	if err != nil {
		return nil, auditPageOutput{}, fmt.Errorf("audit_page: %w", err)
	}

	out := auditPageOutput{
		URL:            rep.URL,
		OverallScore:   rep.OverallScore,
		Grade:          rep.Grade,
		CategoryScores: rep.Summary.CategoryScores,
		TotalIssues:    rep.Summary.TotalIssues,
		TopFixes:       topFixes(rep.Recommendations, 5),
		Report:         rep,
	}
	if input.Save {
		out.Saved = s.saveScan(rep)
	}
	return nil, out, nil
}

// saveScan is best-effort: a failing store never fails the audit.
func (s *Server) saveScan(rep *report.Report) bool {
	if s.store == nil {
		s.logger.Warn("save requested but history is disabled", "url", rep.URL)
		return false
	}
	_, err := s.store.SaveScan(&history.Scan{
		URL:            rep.URL,
		Score:          rep.OverallScore,
		Grade:          rep.Grade,
		CategoryScores: rep.Summary.CategoryScores,
		CreatedAt:      rep.GeneratedAt,
	})
	if err != nil {
		s.logger.Warn("history save failed", "url", rep.URL, "error", err)
		return false
	}
	return true
}

func topFixes(recs []report.Recommendation, n int) []string {
	var fixes []string
	for _, r := range recs {
		if len(fixes) == n {
			break
		}
		fixes = append(fixes, fmt.Sprintf("[%s] %s", r.Category, r.Action))
	}
	return fixes
}

func (s *Server) handleCheckLinks(ctx context.Context, _ *sdkmcp.CallToolRequest, input checkLinksInput) (*sdkmcp.CallToolResult, checkLinksOutput, error) {
	if input.URL == "" {
		return nil, checkLinksOutput{}, fmt.Errorf("url is required")
	}

	pc := s.cfg.ProbeConfig()
	if input.Concurrency > 0 {
		pc.Concurrency = input.Concurrency
	}
	if input.TimeoutMS > 0 {
		pc.Timeout = time.Duration(input.TimeoutMS) * time.Millisecond
	}
	if input.MaxTargets > 0 {
		pc.MaxTargets = input.MaxTargets
	}
	prober, err := linkprobe.New(pc)
	if err != nil {
		return nil, checkLinksOutput{}, fmt.Errorf("check_links: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultAuditTimeout)
	defer cancel()

	p, err := s.fetcher.Fetch(ctx, input.URL)
	if err != nil {
		return nil, checkLinksOutput{}, fmt.Errorf("check_links: %w", err)
	}

	targets := linkprobe.Extract(p.Doc, p.URL)
	health, outcomes := prober.Health(ctx, targets)
	if outcomes == nil {
		outcomes = []linkprobe.Outcome{}
	}
	return nil, checkLinksOutput{
		URL:      p.URL.String(),
		Health:   health,
		Outcomes: outcomes,
	}, nil
}

func (s *Server) handleScoreHistory(ctx context.Context, _ *sdkmcp.CallToolRequest, input scoreHistoryInput) (*sdkmcp.CallToolResult, scoreHistoryOutput, error) {
	if s.store == nil {
		return nil, scoreHistoryOutput{}, fmt.Errorf("history persistence is disabled")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	scans, err := s.store.ListScans(input.URL, limit)
	if err != nil {
		return nil, scoreHistoryOutput{}, fmt.Errorf("score_history: %w", err)
	}
	if scans == nil {
		scans = []*history.Scan{}
	}
	return nil, scoreHistoryOutput{Count: len(scans), Scans: scans}, nil
}
