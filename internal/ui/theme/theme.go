// Package theme provides the semantic colors used to draw fields and
// their suggestion lists.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colors of the form UI.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	Text() lipgloss.AdaptiveColor      // Field values and suggestion rows
	TextMuted() lipgloss.AdaptiveColor // Placeholders, hints, ghost text
	Label() lipgloss.AdaptiveColor     // Field labels

	Match() lipgloss.AdaptiveColor         // Emphasized query match inside a row
	Selection() lipgloss.AdaptiveColor     // Background of the selected row
	SelectionText() lipgloss.AdaptiveColor // Foreground of the selected row
	Recent() lipgloss.AdaptiveColor        // Recent header and recency marker

	Error() lipgloss.AdaptiveColor // Status line errors

	BorderNormal() lipgloss.AdaptiveColor  // Unfocused fields and the dropdown frame
	BorderFocused() lipgloss.AdaptiveColor // Focused field
}

// Palette is a Theme backed by plain values.
type Palette struct {
	TextColor          lipgloss.AdaptiveColor
	TextMutedColor     lipgloss.AdaptiveColor
	LabelColor         lipgloss.AdaptiveColor
	MatchColor         lipgloss.AdaptiveColor
	SelectionColor     lipgloss.AdaptiveColor
	SelectionTextColor lipgloss.AdaptiveColor
	RecentColor        lipgloss.AdaptiveColor
	ErrorColor         lipgloss.AdaptiveColor
	BorderColor        lipgloss.AdaptiveColor
	BorderFocusColor   lipgloss.AdaptiveColor
}

func (p Palette) Text() lipgloss.AdaptiveColor { return p.TextColor }
func (p Palette) TextMuted() lipgloss.AdaptiveColor { return p.TextMutedColor }
func (p Palette) Label() lipgloss.AdaptiveColor { return p.LabelColor }
func (p Palette) Match() lipgloss.AdaptiveColor { return p.MatchColor }
func (p Palette) Selection() lipgloss.AdaptiveColor { return p.SelectionColor }
func (p Palette) SelectionText() lipgloss.AdaptiveColor { return p.SelectionTextColor }
func (p Palette) Recent() lipgloss.AdaptiveColor { return p.RecentColor }
func (p Palette) Error() lipgloss.AdaptiveColor { return p.ErrorColor }
func (p Palette) BorderNormal() lipgloss.AdaptiveColor { return p.BorderColor }
func (p Palette) BorderFocused() lipgloss.AdaptiveColor { return p.BorderFocusColor }
