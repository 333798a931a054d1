package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"seoaudit/internal/history"
	"seoaudit/internal/logging"
	mcpserver "seoaudit/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var mcpFlags struct {
	dbPath string
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server over stdio for agent integration",
	Long: `Starts an MCP server over stdin/stdout exposing audit_page, check_links
and score_history tools. Agent hosts connect via their MCP config and
call the tools directly.

The server monitors for parent process death. When the host disconnects,
the server self-terminates to prevent zombie processes.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.dbPath, "db", history.DefaultDBPath, "Scan history DB path")
}

func runMCP(cmd *cobra.Command, _ []string) error {
	st, err := history.Open(resolveDBPath(mcpFlags.dbPath))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer st.Close()

	srv, err := mcpserver.NewServer(cfg, st, version)
	if err != nil {
		return fmt.Errorf("configure mcp server: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchStdin(ctx, nil, cancel)

	logging.New("mcp").Info("starting seoaudit MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
