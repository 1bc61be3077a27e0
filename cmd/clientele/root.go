package main

import (
	"fmt"

	"clientele/internal/config"
	"clientele/internal/debug"
	apperrors "clientele/internal/errors"
	"clientele/internal/recent"
	"clientele/internal/ui/theme"

	"github.com/spf13/cobra"
)

var (
	flagDebug         bool
	flagRecentBackend string
	flagRecentPath    string
	flagTheme         string
)

var rootCmd = &cobra.Command{
	Use:   "clientele",
	Short: "Customer entry form with recency-aware autocomplete",
	Long: "clientele opens a small customer form whose fields suggest values as you type.\n" +
		"Suggestions are ranked by how well they match and by what you picked recently.",
	Args:              cobra.NoArgs,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { debug.Close() },
	RunE:              runForm,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "Write debug logs to ~/.clientele/debug.log")
	pf.StringVar(&flagRecentBackend, "recent-backend", "", "Recent selection backend: sqlite, bolt, memory")
	pf.StringVar(&flagRecentPath, "recent-path", "", "Recent selection database path")
	pf.StringVar(&flagTheme, "theme", "", "Color theme name")

	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, applies flag overrides, and starts logging.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.Initialize(); err != nil {
		return apperrors.New(apperrors.CodeConfigurationError, "load config", err)
	}

	overrides := map[string]any{}
	if flagRecentBackend != "" {
		overrides[config.KeyRecentBackend] = flagRecentBackend
	}
	if flagRecentPath != "" {
		overrides[config.KeyRecentPath] = flagRecentPath
	}
	if flagTheme != "" {
		overrides[config.KeyTheme] = flagTheme
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		return apperrors.New(apperrors.CodeConfigurationError, "apply flags", err)
	}

	if err := debug.Init(flagDebug); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: debug logging unavailable: %v\n", err)
	}
	if name := config.GetString(config.KeyTheme); !theme.SetTheme(name) {
		debug.Debug("unknown theme, keeping current", "theme", name, "current", theme.CurrentName())
	}
	return nil
}

// openRecentStore opens the configured recent-selection backend.
func openRecentStore() (*recent.Store, error) {
	kind := config.GetString(config.KeyRecentBackend)
	path := ""
	if kind != recent.KindMemory {
		p, err := config.RecentPath()
		if err != nil {
			return nil, apperrors.New(apperrors.CodeConfigurationError, "resolve recent path", err)
		}
		path = p
	}
	backend, err := recent.Open(kind, path)
	if err != nil {
		return nil, err
	}
	debug.Debug("recent store opened", "backend", kind, "path", path)
	return recent.NewStore(backend), nil
}
