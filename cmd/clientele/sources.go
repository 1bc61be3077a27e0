package main

import (
	"fmt"
	"text/tabwriter"

	"clientele/internal/datasource"
	"clientele/internal/ui"

	"github.com/spf13/cobra"
)

var sourcesShowValues bool

var sourcesCmd = &cobra.Command{
	Use:   "sources [path ...]",
	Short: "Check candidate files",
	Long: "With no arguments, lists each field's configured candidate source and how\n" +
		"many values it yields. With paths, loads each file and reports its count.",
	RunE:          runSources,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	sourcesCmd.Flags().BoolVarP(&sourcesShowValues, "values", "v", false, "Print every loaded value")
}

func runSources(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return loadSourceFiles(cmd, args)
	}

	ctx := cmd.Context()
	sources := configuredSources()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tSOURCE\tVALUES")
	for _, f := range formFields {
		path := sources[f.name]
		var values []string
		switch {
		case path != "":
			values = datasource.LoadOrEmpty(ctx, path)
		case f.name == ui.FieldCountry:
			path = "(built-in)"
			values = datasource.Countries()
		default:
			path = "(none)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", f.name, path, len(values))
	}
	return tw.Flush()
}

func loadSourceFiles(cmd *cobra.Command, paths []string) error {
	out := cmd.OutOrStdout()
	for _, path := range paths {
		values, err := datasource.Load(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(out, "%s: %d values\n", path, len(values))
		if sourcesShowValues {
			for _, v := range values {
				fmt.Fprintf(out, "  %s\n", v)
			}
		}
	}
	return nil
}
