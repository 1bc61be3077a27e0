package ui

import (
	"strings"

	"clientele/internal/match"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	selectedPrefix = "▸ "
	rowPrefix      = "  "
	recentMarker   = " ↺"
	moreAboveHint  = "  ▲ more above"
	moreBelowHint  = "  ▼ more below"
	minRowWidth    = 10
)

// listLayout describes which lines the open list draws, top to bottom.
type listLayout struct {
	header    bool
	moreAbove bool
	start     int // first visible row
	end       int // one past the last visible row
	moreBelow bool
}

func (a *Autocomplete) layout() listLayout {
	l := listLayout{header: a.recentView}
	if a.state != AutocompleteOpenListing {
		return l
	}
	l.start = a.scrollOffset
	l.end = min(a.scrollOffset+a.opts.MaxVisible, len(a.rows))
	l.moreAbove = l.start > 0
	l.moreBelow = l.end < len(a.rows)
	return l
}

// View renders the open list, or "" when closed.
func (a *Autocomplete) View() string {
	if a.state == AutocompleteClosed {
		return ""
	}
	l := a.layout()
	var lines []string
	if l.header {
		lines = append(lines, styleRecentHeader().Render(rowPrefix+a.opts.RecentHeader))
	}
	if a.state == AutocompleteOpenEmpty {
		lines = append(lines, styleEmptyMessage().Render(rowPrefix+a.opts.EmptyMessage))
		return strings.Join(lines, "\n")
	}
	if l.moreAbove {
		lines = append(lines, styleListHint().Render(moreAboveHint))
	}
	width := a.rowWidth()
	for i := l.start; i < l.end; i++ {
		lines = append(lines, a.renderRow(i, width))
	}
	if l.moreBelow {
		lines = append(lines, styleListHint().Render(moreBelowHint))
	}
	return strings.Join(lines, "\n")
}

func (a *Autocomplete) rowWidth() int {
	return max(a.field.Width, minRowWidth)
}

// renderRow draws one suggestion: cursor prefix, the value with its first
// query match emphasized, and the recency marker outside the recent view.
func (a *Autocomplete) renderRow(i, width int) string {
	row := a.rows[i]
	selected := i == a.selectedIndex
	base := styleRow()
	prefix := rowPrefix
	if selected {
		base = styleSelectedRow()
		prefix = selectedPrefix
	}

	marker := ""
	if row.Recent && !a.recentView {
		marker = recentMarker
	}
	room := width - ansi.StringWidth(prefix) - ansi.StringWidth(marker)
	text := row.Value
	if room > 1 && ansi.StringWidth(text) > room {
		text = truncate.StringWithTail(text, uint(room), "…")
	}

	var b strings.Builder
	b.WriteString(base.Render(prefix))
	span := match.Span{Before: text}
	if a.opts.HighlightMatches && a.query != "" {
		span = match.Highlight(text, a.query)
	}
	if span.Before != "" {
		b.WriteString(base.Render(span.Before))
	}
	if span.Found {
		b.WriteString(styleMatch(selected).Render(span.Match))
	}
	if span.After != "" {
		b.WriteString(base.Render(span.After))
	}
	if marker != "" {
		b.WriteString(styleRecentMarker(selected).Render(marker))
	}
	if pad := width - ansi.StringWidth(b.String()); pad > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", pad)))
	}
	return b.String()
}

// rowAt maps a screen cell to a suggestion index using the same layout the
// list is drawn with. Only suggestion rows are hit targets.
func (a *Autocomplete) rowAt(x, y int) (int, bool) {
	if a.state != AutocompleteOpenListing {
		return 0, false
	}
	originX, top := a.field.listOrigin()
	if x < originX || x >= originX+a.rowWidth() {
		return 0, false
	}
	l := a.layout()
	line := y - top
	if l.header {
		line--
	}
	if l.moreAbove {
		line--
	}
	if line < 0 || line >= l.end-l.start {
		return 0, false
	}
	return l.start + line, true
}
