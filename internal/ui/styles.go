package ui

import (
	"clientele/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Styles are built on every call so a theme switch applies immediately.

func styleRow() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text())
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().SelectionText()).
		Background(theme.Current().Selection()).
		Bold(true)
}

func styleMatch(selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Foreground(theme.Current().Match()).
		Bold(true).
		Underline(true)
	if selected {
		s = s.Background(theme.Current().Selection())
	}
	return s
}

func styleRecentMarker(selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Foreground(theme.Current().Recent())
	if selected {
		s = s.Background(theme.Current().Selection())
	}
	return s
}

func styleRecentHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Recent()).
		Bold(true)
}

func styleEmptyMessage() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderNormal()).
		Italic(true)
}

func styleListHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleFieldLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Label()).
		Bold(true)
}

func styleFieldInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal()).
		Padding(0, 1)
}

func styleFieldInputFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(0, 1)
}

func styleGhostText() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

// styleGhostCursor: muted text on a muted block (inverted cursor)
func styleGhostCursor() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Selection()).
		Background(theme.Current().TextMuted())
}

func styleFormTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Label()).
		Bold(true).
		MarginBottom(1)
}

func styleStatus() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleStatusError() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error())
}
