// Package match ranks free-text queries against a candidate list.
//
// Scoring is tiered and case-insensitive: exact, prefix, word prefix and
// substring matches score 100, 80, 60 and 40. Candidates that were picked
// recently gain a flat bonus. Everything here is pure; callers own trimming
// and the minimum-length gate, so the query is assumed non-empty.
package match

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Tier scores.
const (
	ScoreExact      = 100
	ScorePrefix     = 80
	ScoreWordPrefix = 60
	ScoreSubstring  = 40
	ScoreFuzzy      = 20
	ScoreNone       = 0
)

// RecencyBoost is added to the tier score of a candidate found in the recents list.
const RecencyBoost = 20

// DefaultMaxResults caps the result list when Options.MaxResults is unset.
const DefaultMaxResults = 8

// ScoredCandidate is one ranked result. It is recomputed on every query.
type ScoredCandidate struct {
	Value  string
	Score  int
	Recent bool
}

// Options tune a single Score call.
type Options struct {
	MaxResults  int
	BoostRecent bool
	// FuzzyFallback lets subsequence matches that miss every tier through at ScoreFuzzy.
	FuzzyFallback bool
}

// TierScore returns the tier for candidate against query, ignoring case.
func TierScore(query, candidate string) int {
	return tierScoreLower(strings.ToLower(query), strings.ToLower(candidate))
}

func tierScoreLower(q, c string) int {
	switch {
	case c == q:
		return ScoreExact
	case strings.HasPrefix(c, q):
		return ScorePrefix
	case hasWordPrefix(c, q):
		return ScoreWordPrefix
	case strings.Contains(c, q):
		return ScoreSubstring
	}
	return ScoreNone
}

func hasWordPrefix(candidate, query string) bool {
	for _, word := range strings.Fields(candidate) {
		if strings.HasPrefix(word, query) {
			return true
		}
	}
	return false
}

// Score filters, boosts, ranks and caps candidates for query.
// Ties keep the original candidate order.
func Score(query string, candidates, recents []string, opts Options) []ScoredCandidate {
	if len(candidates) == 0 {
		return nil
	}
	limit := opts.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	recentSet := make(map[string]struct{}, len(recents))
	for _, r := range recents {
		recentSet[r] = struct{}{}
	}

	q := strings.ToLower(query)
	scored := make([]ScoredCandidate, 0, len(candidates))
	var misses []int
	for i, c := range candidates {
		s := tierScoreLower(q, strings.ToLower(c))
		if s == ScoreNone {
			if opts.FuzzyFallback {
				misses = append(misses, i)
			}
			continue
		}
		scored = append(scored, newScored(c, s, recentSet, opts.BoostRecent))
	}
	if len(misses) > 0 {
		scored = append(scored, fuzzyFallback(q, candidates, misses, recentSet, opts.BoostRecent)...)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Rank is Score reduced to the ranked values.
func Rank(query string, candidates, recents []string, opts Options) []string {
	scored := Score(query, candidates, recents, opts)
	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.Value
	}
	return out
}

func newScored(value string, tier int, recentSet map[string]struct{}, boost bool) ScoredCandidate {
	_, recent := recentSet[value]
	sc := ScoredCandidate{Value: value, Score: tier, Recent: recent}
	if boost && recent {
		sc.Score += RecencyBoost
	}
	return sc
}

// fuzzyFallback scores the tier misses that still contain query as a
// subsequence. Results are returned in original candidate order so the
// stable sort keeps them ordered like every other tie.
func fuzzyFallback(q string, candidates []string, misses []int, recentSet map[string]struct{}, boost bool) []ScoredCandidate {
	targets := make([]string, len(misses))
	for i, idx := range misses {
		targets[i] = strings.ToLower(candidates[idx])
	}
	hit := make([]bool, len(misses))
	for _, m := range fuzzy.Find(q, targets) {
		hit[m.Index] = true
	}
	var out []ScoredCandidate
	for i, idx := range misses {
		if hit[i] {
			out = append(out, newScored(candidates[idx], ScoreFuzzy, recentSet, boost))
		}
	}
	return out
}
