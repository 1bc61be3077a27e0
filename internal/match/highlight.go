package match

import (
	"strings"
	"unicode"
)

// Span splits a candidate around the first case-insensitive occurrence of a query.
type Span struct {
	Before string
	Match  string
	After  string
	Found  bool
}

// Highlight locates query inside text using the same lowercasing as the
// tier scoring, so every prefix or substring hit has a span to emphasize.
// The query is matched literally.
func Highlight(text, query string) Span {
	if query == "" || text == "" {
		return Span{Before: text}
	}

	// lowerAt[k] and textAt[k] are the byte offsets of rune k in the
	// lowercased text and in text; the final entries mark the ends.
	var lower strings.Builder
	lowerAt := make([]int, 0, len(text)+1)
	textAt := make([]int, 0, len(text)+1)
	for i, r := range text {
		lowerAt = append(lowerAt, lower.Len())
		textAt = append(textAt, i)
		lower.WriteRune(unicode.ToLower(r))
	}
	lowerAt = append(lowerAt, lower.Len())
	textAt = append(textAt, len(text))

	q := strings.ToLower(query)
	idx := strings.Index(lower.String(), q)
	if idx < 0 {
		return Span{Before: text}
	}
	start, ok := runeAt(lowerAt, idx)
	if !ok {
		return Span{Before: text}
	}
	end, ok := runeAt(lowerAt, idx+len(q))
	if !ok {
		return Span{Before: text}
	}
	from, to := textAt[start], textAt[end]
	return Span{
		Before: text[:from],
		Match:  text[from:to],
		After:  text[to:],
		Found:  true,
	}
}

// runeAt returns the rune index whose lowercased form starts at offset.
func runeAt(offsets []int, offset int) (int, bool) {
	for k, o := range offsets {
		if o == offset {
			return k, true
		}
		if o > offset {
			break
		}
	}
	return 0, false
}

// Apply renders the span with emphasize wrapped around the matched part.
func (s Span) Apply(emphasize func(string) string) string {
	if !s.Found || emphasize == nil {
		return s.Before + s.Match + s.After
	}
	return s.Before + emphasize(s.Match) + s.After
}
