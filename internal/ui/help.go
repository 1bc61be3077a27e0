package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// helpMarkdown lists every binding as a markdown document.
func helpMarkdown(form FormKeyMap, list AutocompleteKeyMap) string {
	var b strings.Builder
	b.WriteString("# Keyboard\n\n## Suggestions\n\n")
	writeBindings(&b, list.Up, list.Accept, list.Tab, list.Close)
	b.WriteString("\nClick a suggestion to pick it.\n\n## Form\n\n")
	writeBindings(&b, form.Next, form.Prev, form.Submit, form.Copy, form.Theme, form.Help, form.Escape, form.Quit)
	return b.String()
}

func writeBindings(b *strings.Builder, bindings ...key.Binding) {
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, kb := range bindings {
		h := kb.Help()
		fmt.Fprintf(b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
}

func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
