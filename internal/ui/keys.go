package ui

import "github.com/charmbracelet/bubbles/key"

// AutocompleteKeyMap holds the keys a suggestion list intercepts from its
// host field. Typing keys are deliberately absent: they belong to the field.
type AutocompleteKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
	Tab    key.Binding
	Close  key.Binding
}

// DefaultAutocompleteKeyMap returns the default suggestion list bindings.
func DefaultAutocompleteKeyMap() AutocompleteKeyMap {
	return AutocompleteKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/↓", "Move through suggestions"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↑/↓", "Move through suggestions"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Pick the selected suggestion"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "Pick the selected or first suggestion"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close suggestions"),
		),
	}
}

// FormKeyMap defines the form-level shortcuts. They only fire for keys the
// focused field's suggestion list did not handle.
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Copy   key.Binding
	Theme  key.Binding
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultFormKeyMap returns the default form bindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "Next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Save the form"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("Ctrl+Y", "Copy field value"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "Next theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "Toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close suggestions, then quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Quit"),
		),
	}
}
