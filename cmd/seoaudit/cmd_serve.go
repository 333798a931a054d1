package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"seoaudit/internal/audit"
	"seoaudit/internal/history"
	"seoaudit/internal/server"
)

var serveFlags struct {
	addr   string
	dbPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON HTTP API",
	Long: `Serve the audit API over HTTP: POST /api/analyze, POST /api/quick-check,
GET /api/history, GET /api/history/trend and GET /api/health.
Every successful analyze is recorded in scan history.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.addr, "addr", "", "Listen address (default from config, :8080)")
	f.StringVar(&serveFlags.dbPath, "db", history.DefaultDBPath, "Scan history DB path")
}

func runServe(cmd *cobra.Command, _ []string) error {
	auditor, err := audit.New(cfg)
	if err != nil {
		return fmt.Errorf("configure auditor: %w", err)
	}

	st, err := history.Open(resolveDBPath(serveFlags.dbPath))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	addr := serveFlags.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(auditor, st, version).ListenAndServe(ctx, addr)
}
