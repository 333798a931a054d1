package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seoaudit/internal/config"
	"seoaudit/internal/history"
	"seoaudit/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// cfg is loaded once in the persistent pre-run; commands read it for
// fetch, probe and weight settings.
var cfg = config.Default()

var rootFlags struct {
	logLevel  string
	logFormat string
	config    string
}

var rootCmd = &cobra.Command{
	Use:   "seoaudit",
	Short: "On-page SEO auditing from the command line",
	Long: "Seoaudit fetches a page, scores it across the on-page SEO categories,\n" +
		"probes its outbound links and keeps a history of scans.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logging.Init(rootFlags.logLevel, rootFlags.logFormat)
		c, err := config.Load(rootFlags.config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&rootFlags.config, "config", "", "Path to a YAML or JSON config file")

	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.Version = version
}

// resolveDBPath gives an explicit --db flag precedence over the config
// file's history path.
func resolveDBPath(flagVal string) string {
	if flagVal != history.DefaultDBPath {
		return flagVal
	}
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return flagVal
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
