package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"seoaudit/internal/audit"
	"seoaudit/internal/format"
	"seoaudit/internal/history"
)

var auditFlags struct {
	keyword  string
	jsonOut  bool
	markdown bool
	noLinks  bool
	extended bool
	save     bool
	dbPath   string
}

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Run a full SEO audit of one page",
	Long: `Fetch a page, run it through every analyzer and print the scored
report. A bare domain gets https:// prepended.

Usage:
  seoaudit audit example.com
  seoaudit audit https://example.com/post --keyword "drip irrigation"
  seoaudit audit example.com --extended --save
  seoaudit audit example.com --json > report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	f := auditCmd.Flags()
	f.StringVarP(&auditFlags.keyword, "keyword", "k", "", "Target keyword for the content analyzer")
	f.BoolVar(&auditFlags.jsonOut, "json", false, "Print the raw report JSON")
	f.BoolVar(&auditFlags.markdown, "markdown", false, "Render the report as Markdown")
	f.BoolVar(&auditFlags.noLinks, "no-links", false, "Skip the outbound link probe")
	f.BoolVar(&auditFlags.extended, "extended", false, "Also run the social, security, mobile and schema analyzers")
	f.BoolVar(&auditFlags.save, "save", false, "Record the score in scan history")
	f.StringVar(&auditFlags.dbPath, "db", history.DefaultDBPath, "Scan history DB path")
}

func runAudit(cmd *cobra.Command, args []string) error {
	auditor, err := audit.New(cfg)
	if err != nil {
		return fmt.Errorf("configure auditor: %w", err)
	}

	rep, err := auditor.Run(cmd.Context(), args[0], audit.Options{
		Keyword:           auditFlags.keyword,
		SkipLinkProbe:     auditFlags.noLinks,
		ExtendedAnalyzers: auditFlags.extended,
	})
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case auditFlags.jsonOut:
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case auditFlags.markdown:
		renderReport(out, rep, format.Markdown)
	default:
		renderReport(out, rep, format.ASCII)
	}

	if auditFlags.save {
		st, err := history.Open(resolveDBPath(auditFlags.dbPath))
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()

		scan := &history.Scan{
			URL:            rep.URL,
			Score:          rep.OverallScore,
			Grade:          rep.Grade,
			CategoryScores: rep.Summary.CategoryScores,
			CreatedAt:      rep.GeneratedAt,
		}
		if _, err := st.SaveScan(scan); err != nil {
			return fmt.Errorf("save scan: %w", err)
		}
		if !auditFlags.jsonOut {
			fmt.Fprintf(out, "Saved scan #%d\n", scan.ID)
		}
	}

	return nil
}
