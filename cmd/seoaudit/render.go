package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"seoaudit/internal/analyzer"
	"seoaudit/internal/display"
	"seoaudit/internal/format"
	"seoaudit/internal/history"
	"seoaudit/internal/linkprobe"
	"seoaudit/internal/report"
)

var (
	scoreColors = map[string]*color.Color{
		"green":  color.New(color.FgGreen, color.Bold),
		"yellow": color.New(color.FgYellow, color.Bold),
		"red":    color.New(color.FgRed, color.Bold),
	}
	severityColors = map[analyzer.Severity]*color.Color{
		analyzer.SeverityCritical: color.New(color.FgRed),
		analyzer.SeverityWarning:  color.New(color.FgYellow),
		analyzer.SeverityInfo:     color.New(color.FgCyan),
	}
	statusColors = map[linkprobe.Status]*color.Color{
		linkprobe.StatusWorking:     color.New(color.FgGreen),
		linkprobe.StatusRedirected:  color.New(color.FgYellow),
		linkprobe.StatusBroken:      color.New(color.FgRed),
		linkprobe.StatusUnreachable: color.New(color.FgHiBlack),
	}
)

func colorScore(scoreColor string, s string) string {
	if c, ok := scoreColors[scoreColor]; ok {
		return c.Sprint(s)
	}
	return s
}

func colorSeverity(sev analyzer.Severity) string {
	name := display.Severity(string(sev))
	if c, ok := severityColors[sev]; ok {
		return c.Sprint(name)
	}
	return name
}

func colorStatus(st linkprobe.Status) string {
	name := display.Outcome(string(st))
	if c, ok := statusColors[st]; ok {
		return c.Sprint(name)
	}
	return name
}

// renderReport writes the full audit report. Markdown mode drops the
// ANSI colors and uses pipe tables.
func renderReport(w io.Writer, rep *report.Report, mode format.Mode) {
	md := mode == format.Markdown

	if md {
		fmt.Fprintf(w, "# SEO audit: %s\n\n", rep.URL)
		fmt.Fprintf(w, "**Score: %d/100 (%s)** %s\n\n", rep.OverallScore, rep.Grade, display.GradeDescription(rep.Grade))
	} else {
		fmt.Fprintf(w, "Audit of %s\n", rep.URL)
		scoreLine := fmt.Sprintf("%d/100 (%s)", rep.OverallScore, rep.Grade)
		fmt.Fprintf(w, "Score: %s  %s\n", colorScore(rep.ScoreColor, scoreLine), format.ScoreBar(rep.OverallScore, 20))
		fmt.Fprintf(w, "%s\n", display.GradeDescription(rep.Grade))
	}
	fmt.Fprintln(w)

	renderCategoryTable(w, rep.Categories, mode)
	fmt.Fprintln(w)
	renderPriorityIssues(w, rep.PriorityIssues, md)
	renderRecommendations(w, rep.Recommendations, md)

	fmt.Fprintf(w, "Issues: %d total (%d high, %d medium, %d low)\n",
		rep.Summary.TotalIssues, rep.Summary.HighPriority, rep.Summary.MediumPriority, rep.Summary.LowPriority)
}

func renderCategoryTable(w io.Writer, categories map[string]analyzer.Result, mode format.Mode) {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	tb := format.NewTable(mode)
	tb.Header("Category", "Score", "", "Issues")
	for _, name := range names {
		res := categories[name]
		tb.Row(display.Category(name), res.Score, format.ScoreBar(res.Score, 10), len(res.Issues))
	}
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	fmt.Fprintln(w, tb.String())
}

func renderPriorityIssues(w io.Writer, pi report.PriorityIssues, md bool) {
	if pi.Total() == 0 {
		fmt.Fprintln(w, "No issues found.")
		fmt.Fprintln(w)
		return
	}
	buckets := []struct {
		code   string
		issues []report.CategoryIssue
	}{
		{"high", pi.High},
		{"medium", pi.Medium},
		{"low", pi.Low},
	}
	for _, b := range buckets {
		if len(b.issues) == 0 {
			continue
		}
		if md {
			fmt.Fprintf(w, "## %s\n\n", display.Bucket(b.code))
		} else {
			fmt.Fprintf(w, "%s:\n", display.Bucket(b.code))
		}
		for _, issue := range b.issues {
			if md {
				fmt.Fprintf(w, "- **%s** (%s): %s\n", display.Severity(string(issue.Severity)), display.Category(issue.Category), issue.Message)
			} else {
				fmt.Fprintf(w, "  [%s] %s: %s\n", colorSeverity(issue.Severity), display.Category(issue.Category), issue.Message)
			}
		}
		fmt.Fprintln(w)
	}
}

func renderRecommendations(w io.Writer, recs []report.Recommendation, md bool) {
	if len(recs) == 0 {
		return
	}
	if md {
		fmt.Fprintf(w, "## Recommendations\n\n")
	} else {
		fmt.Fprintln(w, "Recommendations:")
	}
	for i, r := range recs {
		if md {
			fmt.Fprintf(w, "%d. %s: %s\n", i+1, display.Category(r.Category), r.Action)
		} else {
			fmt.Fprintf(w, "  %d. %s: %s\n", i+1, display.Category(r.Category), r.Action)
		}
	}
	fmt.Fprintln(w)
}

// renderOutcomes writes the per-link probe table and the health
// summary.
func renderOutcomes(w io.Writer, health analyzer.Result, outcomes []linkprobe.Outcome, mode format.Mode) {
	md := mode == format.Markdown

	counts := map[linkprobe.Status]int{}
	tb := format.NewTable(mode)
	tb.Header("Link", "Status", "Code")
	for _, o := range outcomes {
		counts[o.Status]++
		status := display.Outcome(string(o.Status))
		if !md {
			status = colorStatus(o.Status)
		}
		code := "-"
		if o.StatusCode != 0 {
			code = fmt.Sprintf("%d", o.StatusCode)
		}
		tb.Row(format.Truncate(o.Target.URL, 70), status, code)
	}
	tb.Columns(format.ColumnConfig{Number: 3, Align: format.AlignRight})
	fmt.Fprintln(w, tb.String())

	fmt.Fprintf(w, "\n%d links: %d working, %d redirected, %d broken, %d unreachable\n",
		len(outcomes),
		counts[linkprobe.StatusWorking], counts[linkprobe.StatusRedirected],
		counts[linkprobe.StatusBroken], counts[linkprobe.StatusUnreachable])

	scoreLine := fmt.Sprintf("%d/100", health.Score)
	if md {
		fmt.Fprintf(w, "Link health: %s\n", scoreLine)
	} else {
		fmt.Fprintf(w, "Link health: %s %s\n", colorScore(report.ScoreColor(health.Score), scoreLine), format.ScoreBar(health.Score, 10))
	}
	for _, issue := range health.Issues {
		if md {
			fmt.Fprintf(w, "- %s: %s\n", display.Severity(string(issue.Severity)), issue.Message)
		} else {
			fmt.Fprintf(w, "  [%s] %s\n", colorSeverity(issue.Severity), issue.Message)
		}
	}
}

// renderScans writes the history listing, newest first.
func renderScans(w io.Writer, scans []*history.Scan, mode format.Mode) {
	if len(scans) == 0 {
		fmt.Fprintln(w, "No scans recorded yet.")
		return
	}
	tb := format.NewTable(mode)
	tb.Header("ID", "URL", "Score", "Grade", "Scanned")
	for _, s := range scans {
		tb.Row(s.ID, format.Truncate(s.URL, 60), s.Score, s.Grade, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	tb.Columns(
		format.ColumnConfig{Number: 1, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
	)
	fmt.Fprintln(w, tb.String())
}

// renderTrend writes a URL's score series, oldest first.
func renderTrend(w io.Writer, url string, points []history.TrendPoint, mode format.Mode) {
	if len(points) == 0 {
		fmt.Fprintf(w, "No scans recorded for %s\n", url)
		return
	}
	scores := make([]int, len(points))
	for i, p := range points {
		scores[i] = p.Score
	}
	fmt.Fprintf(w, "Trend for %s: %s\n\n", url, display.ScorePath(scores))

	tb := format.NewTable(mode)
	tb.Header("Scanned", "Score", "")
	for _, p := range points {
		tb.Row(p.CreatedAt.Format("2006-01-02 15:04"), p.Score, format.ScoreBar(p.Score, 10))
	}
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	fmt.Fprintln(w, tb.String())
}
