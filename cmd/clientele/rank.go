package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"clientele/internal/config"
	"clientele/internal/datasource"
	"clientele/internal/match"
	"clientele/internal/recent"
	"clientele/internal/ui"

	"github.com/spf13/cobra"
)

var (
	rankSource   string
	rankField    string
	rankMax      int
	rankNoRecent bool
	rankFuzzy    bool
)

var rankCmd = &cobra.Command{
	Use:   "rank <query>",
	Short: "Print ranked suggestions for a query",
	Long: "Ranks candidates for a field the same way the form does and prints each\n" +
		"suggestion with its score. Recent picks are marked and boosted.",
	Args:          cobra.ExactArgs(1),
	RunE:          runRank,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	f := rankCmd.Flags()
	f.StringVarP(&rankSource, "source", "s", "", "Candidate file (defaults to the field's configured source)")
	f.StringVarP(&rankField, "field", "f", ui.FieldCountry, "Field whose recents and source to use")
	f.IntVarP(&rankMax, "max", "n", 0, "Maximum suggestions (defaults to autocomplete.max-results)")
	f.BoolVar(&rankNoRecent, "no-recent", false, "Ignore recent selections")
	f.BoolVar(&rankFuzzy, "fuzzy", false, "Fall back to subsequence matches")
}

func runRank(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("query is blank")
	}
	if minChars := config.GetInt(config.KeyMinChars); utf8.RuneCountInString(query) < minChars {
		return fmt.Errorf("query %q is shorter than %s (%d)", query, config.KeyMinChars, minChars)
	}

	candidates, err := rankCandidates(cmd)
	if err != nil {
		return err
	}

	var recents []string
	if !rankNoRecent {
		store, err := openRecentStore()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: recent selections unavailable: %v\n", err)
		} else {
			recents = store.Load(recent.Namespace(rankField))
			_ = store.Close()
		}
	}

	limit := rankMax
	if limit <= 0 {
		limit = config.GetInt(config.KeyMaxResults)
	}
	results := match.Score(query, candidates, recents, match.Options{
		MaxResults:    limit,
		BoostRecent:   !rankNoRecent && config.GetBool(config.KeyShowRecentFirst),
		FuzzyFallback: rankFuzzy || config.GetBool(config.KeyFuzzyFallback),
	})

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, config.GetString(config.KeyEmptyMessage))
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tVALUE\tRECENT")
	for _, r := range results {
		marker := ""
		if r.Recent {
			marker = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Score, r.Value, marker)
	}
	return tw.Flush()
}

// rankCandidates loads --source, else the field's configured source, else
// the built-in country list for the country field.
func rankCandidates(cmd *cobra.Command) ([]string, error) {
	ctx := cmd.Context()
	if rankSource != "" {
		return datasource.Load(ctx, rankSource)
	}
	if path := configuredSources()[rankField]; path != "" {
		return datasource.Load(ctx, path)
	}
	if rankField == ui.FieldCountry {
		return datasource.Countries(), nil
	}
	return []string{}, nil
}
