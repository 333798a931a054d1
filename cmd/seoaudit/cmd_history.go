package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"seoaudit/internal/format"
	"seoaudit/internal/history"
)

var historyFlags struct {
	limit   int
	trend   bool
	clear   bool
	jsonOut bool
	dbPath  string
}

var historyCmd = &cobra.Command{
	Use:   "history [url]",
	Short: "List or trend persisted scan scores",
	Long: `List persisted scans, newest first. With a URL argument the listing
is filtered to that page; --trend shows its score over time instead.

Usage:
  seoaudit history
  seoaudit history https://example.com/ --limit 5
  seoaudit history https://example.com/ --trend
  seoaudit history --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.IntVar(&historyFlags.limit, "limit", 20, "Max scans to show (0 = all)")
	f.BoolVar(&historyFlags.trend, "trend", false, "Show the score trend for a URL, oldest first")
	f.BoolVar(&historyFlags.clear, "clear", false, "Delete all persisted scans")
	f.BoolVar(&historyFlags.jsonOut, "json", false, "Print raw JSON")
	f.StringVar(&historyFlags.dbPath, "db", history.DefaultDBPath, "Scan history DB path")
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := history.Open(resolveDBPath(historyFlags.dbPath))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	if historyFlags.clear {
		if err := st.Clear(); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(out, "Scan history cleared.")
		return nil
	}

	var url string
	if len(args) > 0 {
		url = args[0]
	}

	if historyFlags.trend {
		if url == "" {
			return fmt.Errorf("--trend requires a URL argument")
		}
		points, err := st.Trend(url, historyFlags.limit)
		if err != nil {
			return fmt.Errorf("trend: %w", err)
		}
		if historyFlags.jsonOut {
			return printJSON(out, map[string]any{"url": url, "points": points})
		}
		renderTrend(out, url, points, format.ASCII)
		return nil
	}

	scans, err := st.ListScans(url, historyFlags.limit)
	if err != nil {
		return fmt.Errorf("list scans: %w", err)
	}
	if historyFlags.jsonOut {
		return printJSON(out, map[string]any{"count": len(scans), "scans": scans})
	}
	renderScans(out, scans, format.ASCII)
	return nil
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
