package main

import (
	"fmt"
	"strings"

	"clientele/internal/datasource"
	"clientele/internal/recent"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Inspect and edit recent selections",
	Args:  cobra.NoArgs,
	RunE:  runRecentList,
}

var recentListCmd = &cobra.Command{
	Use:           "list [field]",
	Short:         "List recent selections, newest first",
	Args:          cobra.MaximumNArgs(1),
	RunE:          runRecentList,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var recentAddCmd = &cobra.Command{
	Use:           "add <field> <value>",
	Short:         "Record a value as the newest selection for a field",
	Args:          cobra.ExactArgs(2),
	RunE:          runRecentAdd,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var recentClearCmd = &cobra.Command{
	Use:           "clear <field>",
	Short:         "Forget every recent selection for a field",
	Args:          cobra.ExactArgs(1),
	RunE:          runRecentClear,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var recentExportCmd = &cobra.Command{
	Use:           "export <field> <file.xlsx>",
	Short:         "Write a field's recent selections to a spreadsheet",
	Args:          cobra.ExactArgs(2),
	RunE:          runRecentExport,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	recentCmd.AddCommand(recentListCmd)
	recentCmd.AddCommand(recentAddCmd)
	recentCmd.AddCommand(recentClearCmd)
	recentCmd.AddCommand(recentExportCmd)
}

// withRecentStore opens the configured store for the duration of fn.
func withRecentStore(fn func(*recent.Store) error) error {
	store, err := openRecentStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func runRecentList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	return withRecentStore(func(store *recent.Store) error {
		if len(args) == 1 {
			for _, v := range store.Load(recent.Namespace(args[0])) {
				fmt.Fprintln(out, v)
			}
			return nil
		}
		namespaces := store.Namespaces()
		if len(namespaces) == 0 {
			fmt.Fprintln(out, "No recent selections.")
			return nil
		}
		for _, ns := range namespaces {
			values := store.Load(ns)
			fmt.Fprintf(out, "%s (%d): %s\n", recent.FieldName(ns), len(values), strings.Join(values, ", "))
		}
		return nil
	})
}

func runRecentAdd(cmd *cobra.Command, args []string) error {
	field, value := args[0], strings.TrimSpace(args[1])
	if value == "" {
		return fmt.Errorf("value must not be blank")
	}
	return withRecentStore(func(store *recent.Store) error {
		list := store.Add(recent.Namespace(field), value)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d recent\n", field, len(list))
		return nil
	})
}

func runRecentClear(cmd *cobra.Command, args []string) error {
	return withRecentStore(func(store *recent.Store) error {
		store.Clear(recent.Namespace(args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared recent selections for %s.\n", args[0])
		return nil
	})
}

func runRecentExport(cmd *cobra.Command, args []string) error {
	field, path := args[0], args[1]
	return withRecentStore(func(store *recent.Store) error {
		values := store.Load(recent.Namespace(field))
		if err := datasource.WriteSpreadsheet(path, values); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d values to %s.\n", len(values), path)
		return nil
	})
}
