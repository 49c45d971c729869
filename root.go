package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/spgo/sharepoint-go/internal/config"
	"github.com/spgo/sharepoint-go/internal/sp"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath   string
	flagSiteURL      string
	flagClientID     string
	flagClientSecret string
	flagChunkSize    string
	flagJSON         bool
	flagVerbose      bool
	flagQuiet        bool
)

// resolvedCfg holds the effective configuration loaded by
// PersistentPreRunE. It is available to all subcommands after the root
// pre-run phase completes.
var resolvedCfg *config.Resolved

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sharepoint-go",
		Short:   "SharePoint CLI client",
		Long:    "A CLI for SharePoint document libraries and lists using app-only credentials.",
		Version: version,
		// Silence Cobra's default error/usage printing — we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		// PersistentPreRunE loads configuration before every command so
		// subcommands can assume resolvedCfg is populated.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&flagSiteURL, "site", "", "site URL (e.g., https://contoso.sharepoint.com/sites/dev)")
	cmd.PersistentFlags().StringVar(&flagClientID, "client-id", "", "app-only client ID")
	cmd.PersistentFlags().StringVar(&flagClientSecret, "client-secret", "", "app-only client secret")
	cmd.PersistentFlags().StringVar(&flagChunkSize, "chunk-size", "", "upload chunk size (e.g., 10MiB, max 250MiB)")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	// Register subcommands.
	cmd.AddCommand(newLsCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newStatCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newGetFolderCmd())
	cmd.AddCommand(newPutCmd())
	cmd.AddCommand(newPutFolderCmd())
	cmd.AddCommand(newMkdirCmd())
	cmd.AddCommand(newRmCmd())
	cmd.AddCommand(newRmdirCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

// loadConfig resolves the effective configuration from the four-layer
// override chain and stores the result in resolvedCfg for use by
// subcommands.
func loadConfig() error {
	cli := config.CLIOverrides{
		ConfigPath:   flagConfigPath,
		SiteURL:      flagSiteURL,
		ClientID:     flagClientID,
		ClientSecret: flagClientSecret,
		ChunkSize:    flagChunkSize,
	}

	env := config.ReadEnvOverrides()

	resolved, err := config.Resolve(env, cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolvedCfg = resolved

	return nil
}

// buildLogger creates an slog.Logger configured by the resolved config
// and CLI flags. Config-file log level provides the baseline; --verbose
// and --quiet override it because CLI flags always win.
func buildLogger() *slog.Logger {
	level := slog.LevelInfo

	// Config-based log level (lower priority than CLI flags).
	if resolvedCfg != nil {
		switch resolvedCfg.Logging.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	// CLI flags override config (highest priority).
	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if useJSONLogs() {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// useJSONLogs decides the log handler: explicit config wins, "auto"
// emits JSON when stderr is not a terminal (e.g., piped into a
// collector).
func useJSONLogs() bool {
	format := "auto"
	if resolvedCfg != nil && resolvedCfg.Logging.LogFormat != "" {
		format = resolvedCfg.Logging.LogFormat
	}

	switch format {
	case "json":
		return true
	case "text":
		return false
	default:
		return !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
}

// newSPClient creates the SharePoint client from the resolved config.
func newSPClient() *sp.Client {
	return sp.NewClient(
		resolvedCfg.SiteURL,
		resolvedCfg.ClientID,
		resolvedCfg.ClientSecret,
		buildLogger(),
	)
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
