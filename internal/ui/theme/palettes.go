package theme

import "github.com/charmbracelet/lipgloss"

func c(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

func init() {
	RegisterTheme("tokyonight", Palette{
		TextColor:          c("#c8d3f5", "#3760bf"),
		TextMutedColor:     c("#636da6", "#848cb5"),
		LabelColor:         c("#c099ff", "#9854f1"),
		MatchColor:         c("#ffc777", "#8c6c3e"),
		SelectionColor:     c("#2f334d", "#c8c9ce"),
		SelectionTextColor: c("#82aaff", "#2e7de9"),
		RecentColor:        c("#7dcfff", "#0db9d7"),
		ErrorColor:         c("#ff757f", "#f52a65"),
		BorderColor:        c("#3b4261", "#a8aecb"),
		BorderFocusColor:   c("#82aaff", "#2e7de9"),
	})

	// https://www.nordtheme.com/docs/colors-and-palettes
	RegisterTheme("nord", Palette{
		TextColor:          c("#D8DEE9", "#2E3440"),
		TextMutedColor:     c("#4C566A", "#7B88A1"),
		LabelColor:         c("#81A1C1", "#5E81AC"),
		MatchColor:         c("#EBCB8B", "#D08770"),
		SelectionColor:     c("#434C5E", "#D8DEE9"),
		SelectionTextColor: c("#88C0D0", "#5E81AC"),
		RecentColor:        c("#A3BE8C", "#4F894C"),
		ErrorColor:         c("#BF616A", "#BF616A"),
		BorderColor:        c("#3B4252", "#D8DEE9"),
		BorderFocusColor:   c("#88C0D0", "#5E81AC"),
	})

	RegisterTheme("dracula", Palette{
		TextColor:          c("#f8f8f2", "#282a36"),
		TextMutedColor:     c("#6272a4", "#6272a4"),
		LabelColor:         c("#bd93f9", "#7c4dff"),
		MatchColor:         c("#f1fa8c", "#a68b00"),
		SelectionColor:     c("#44475a", "#e0e0e6"),
		SelectionTextColor: c("#ff79c6", "#c2185b"),
		RecentColor:        c("#8be9fd", "#0097a7"),
		ErrorColor:         c("#ff5555", "#d32f2f"),
		BorderColor:        c("#44475a", "#bdbdbd"),
		BorderFocusColor:   c("#bd93f9", "#7c4dff"),
	})

	RegisterTheme("gruvbox", Palette{
		TextColor:          c("#ebdbb2", "#3c3836"),
		TextMutedColor:     c("#928374", "#7c6f64"),
		LabelColor:         c("#83a598", "#076678"),
		MatchColor:         c("#fabd2f", "#b57614"),
		SelectionColor:     c("#3c3836", "#ebdbb2"),
		SelectionTextColor: c("#fe8019", "#af3a03"),
		RecentColor:        c("#b8bb26", "#79740e"),
		ErrorColor:         c("#fb4934", "#9d0006"),
		BorderColor:        c("#504945", "#d5c4a1"),
		BorderFocusColor:   c("#fe8019", "#af3a03"),
	})

	RegisterTheme("solarized", Palette{
		TextColor:          c("#839496", "#657b83"),
		TextMutedColor:     c("#586e75", "#93a1a1"),
		LabelColor:         c("#268bd2", "#268bd2"),
		MatchColor:         c("#b58900", "#b58900"),
		SelectionColor:     c("#073642", "#eee8d5"),
		SelectionTextColor: c("#2aa198", "#2aa198"),
		RecentColor:        c("#859900", "#859900"),
		ErrorColor:         c("#dc322f", "#dc322f"),
		BorderColor:        c("#073642", "#eee8d5"),
		BorderFocusColor:   c("#268bd2", "#268bd2"),
	})

	RegisterTheme("catppuccin", Palette{
		TextColor:          c("#cdd6f4", "#4c4f69"),
		TextMutedColor:     c("#6c7086", "#9ca0b0"),
		LabelColor:         c("#cba6f7", "#8839ef"),
		MatchColor:         c("#f9e2af", "#df8e1d"),
		SelectionColor:     c("#313244", "#ccd0da"),
		SelectionTextColor: c("#89b4fa", "#1e66f5"),
		RecentColor:        c("#94e2d5", "#179299"),
		ErrorColor:         c("#f38ba8", "#d20f39"),
		BorderColor:        c("#45475a", "#bcc0cc"),
		BorderFocusColor:   c("#89b4fa", "#1e66f5"),
	})
}
