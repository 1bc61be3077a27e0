package main

import (
	"context"
	"fmt"
	"io"

	"clientele/internal/config"
	"clientele/internal/datasource"
	"clientele/internal/debug"
	"clientele/internal/recent"
	"clientele/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var formCmd = &cobra.Command{
	Use:           "form",
	Short:         "Open the customer form (default)",
	Args:          cobra.NoArgs,
	RunE:          runForm,
	SilenceErrors: true,
	SilenceUsage:  true,
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(tea.Model) programRunner

// newProgram is replaced in tests.
var newProgram programFactory = func(m tea.Model) programRunner {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

// formFields lists the form's fields in display order with their source keys.
var formFields = []struct {
	name string
	key  string
}{
	{ui.FieldCustomer, config.KeySourceCustomers},
	{ui.FieldCountry, config.KeySourceCountries},
	{ui.FieldVendor, config.KeySourceVendors},
}

func runForm(cmd *cobra.Command, _ []string) error {
	store, err := openRecentStore()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: recent selections will not be saved: %v\n", err)
		store = recent.NewStore(nil)
	}
	defer func() {
		if err := store.Close(); err != nil {
			debug.Debug("close recent store", "err", err)
		}
	}()

	cfg := formConfig(cmd.Context(), store)

	var watcher *datasource.Watcher
	if paths := watchedPaths(cfg.Sources); len(paths) > 0 {
		watcher, err = datasource.NewWatcher()
		if err == nil {
			cfg.Changes, err = watcher.Reloads(paths...)
		}
		if err != nil {
			debug.Debug("source watching disabled", "err", err)
			cfg.Changes = nil
		}
	}
	if watcher != nil {
		defer func() { _ = watcher.Stop() }()
	}

	form := ui.NewCustomerForm(cfg)
	final, err := newProgram(form).Run()
	if err != nil {
		return fmt.Errorf("run form: %w", err)
	}
	if m, ok := final.(*ui.CustomerForm); ok && m.Submitted() {
		printValues(cmd.OutOrStdout(), m.Values())
	}
	return nil
}

// formConfig assembles field options and candidates from configuration.
func formConfig(ctx context.Context, store *recent.Store) ui.FormConfig {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := ui.FormConfig{
		Options:   autocompleteOptions(store),
		Sources:   configuredSources(),
		SaveTheme: config.SaveTheme,
	}
	cfg.Customers = loadSource(ctx, cfg.Sources[ui.FieldCustomer])
	cfg.Vendors = loadSource(ctx, cfg.Sources[ui.FieldVendor])
	if path := cfg.Sources[ui.FieldCountry]; path != "" {
		cfg.Countries = loadSource(ctx, path)
	} else {
		cfg.Countries = datasource.Countries()
	}
	return cfg
}

// loadSource returns an empty list for an unset path and degrades on failure.
func loadSource(ctx context.Context, path string) []string {
	if path == "" {
		return []string{}
	}
	return datasource.LoadOrEmpty(ctx, path)
}

func autocompleteOptions(store *recent.Store) ui.AutocompleteOptions {
	opts := ui.DefaultAutocompleteOptions()
	opts.MinChars = config.GetInt(config.KeyMinChars)
	opts.MaxResults = config.GetInt(config.KeyMaxResults)
	opts.MaxVisible = config.GetInt(config.KeyMaxVisible)
	opts.BlurDelay = config.GetDuration(config.KeyBlurDelay)
	opts.HighlightMatches = config.GetBool(config.KeyHighlight)
	opts.ShowRecentFirst = config.GetBool(config.KeyShowRecentFirst)
	opts.FuzzyFallback = config.GetBool(config.KeyFuzzyFallback)
	opts.EmptyMessage = config.GetString(config.KeyEmptyMessage)
	opts.Recents = store
	return opts
}

// configuredSources maps each field to its configured candidate file.
func configuredSources() map[string]string {
	out := make(map[string]string, len(formFields))
	for _, f := range formFields {
		if p := config.GetString(f.key); p != "" {
			out[f.name] = p
		}
	}
	return out
}

func watchedPaths(sources map[string]string) []string {
	var paths []string
	for _, f := range formFields {
		if p := sources[f.name]; p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func printValues(w io.Writer, values map[string]string) {
	for _, f := range formFields {
		fmt.Fprintf(w, "%s: %s\n", f.name, values[f.name])
	}
}
