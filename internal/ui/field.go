package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultFieldWidth = 40
	fieldPrompt       = "> "
)

// InputField is a labelled single-line text input that can host an
// Autocomplete. Name identifies the field in notifications and keys its
// recency namespace.
type InputField struct {
	Name  string
	Label string
	Width int // Visual width including border

	input        textinput.Model
	autocomplete *Autocomplete

	// Screen cell of the field's top-left corner, set by the host layout.
	originX int
	originY int
}

// NewInputField creates an unfocused, empty field.
func NewInputField(name, label string) *InputField {
	ti := textinput.New()
	ti.Prompt = fieldPrompt
	ti.CharLimit = 100

	f := &InputField{
		Name:  name,
		Label: label,
		input: ti,
	}
	return f.WithWidth(defaultFieldWidth)
}

// WithWidth sets the visual width.
func (f *InputField) WithWidth(w int) *InputField {
	f.Width = w
	// Border and padding take two cells per side.
	f.input.Width = max(w-4-len(fieldPrompt)-1, 1)
	return f
}

// Autocomplete returns the attached controller, or nil.
func (f *InputField) Autocomplete() *Autocomplete {
	return f.autocomplete
}

// Value returns the raw text.
func (f *InputField) Value() string {
	return f.input.Value()
}

// SetValue replaces the text without running the autocomplete.
func (f *InputField) SetValue(v string) {
	f.input.SetValue(v)
	f.input.CursorEnd()
}

// Focus focuses the input and returns the cursor blink command.
func (f *InputField) Focus() tea.Cmd {
	cmd := f.input.Focus()
	if f.autocomplete != nil {
		f.autocomplete.OnFocus()
	}
	return cmd
}

// Blur removes focus. The returned command carries the delayed list close.
func (f *InputField) Blur() tea.Cmd {
	f.input.Blur()
	if f.autocomplete != nil {
		return f.autocomplete.OnBlur()
	}
	return nil
}

// Focused reports whether the input has focus.
func (f *InputField) Focused() bool {
	return f.input.Focused()
}

// SetOrigin records where the host draws the field so mouse events can be
// mapped to suggestion rows.
func (f *InputField) SetOrigin(x, y int) {
	f.originX = x
	f.originY = y
}

// Origin returns the cell set by SetOrigin.
func (f *InputField) Origin() (int, int) {
	return f.originX, f.originY
}

// Update offers msg to the autocomplete first, then to the text input.
// handled is true only when the autocomplete consumed msg; hosts skip their
// own handling of such keys (Enter submit, Tab focus move, Esc quit).
func (f *InputField) Update(msg tea.Msg) (bool, tea.Cmd) {
	if f.autocomplete != nil {
		if handled, cmd := f.autocomplete.Update(msg); handled {
			return true, cmd
		}
	}

	if _, ok := msg.(tea.KeyMsg); !ok || !f.input.Focused() {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return false, cmd
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.autocomplete != nil && f.input.Value() != before {
		f.autocomplete.OnInput()
	}
	return false, cmd
}

// View renders the label, the input box and any open suggestion list.
func (f *InputField) View() string {
	var b strings.Builder
	b.WriteString(f.headerView())
	if f.autocomplete != nil {
		if list := f.autocomplete.View(); list != "" {
			b.WriteString("\n")
			b.WriteString(list)
		}
	}
	return b.String()
}

func (f *InputField) headerView() string {
	box := f.inputView()
	if f.Label == "" {
		return box
	}
	return styleFieldLabel().Render(f.Label) + "\n" + box
}

// inputView draws the input box, previewing the selected suggestion as
// ghost text after the typed value.
func (f *InputField) inputView() string {
	var content string
	ghost := ""
	if f.autocomplete != nil && f.input.Focused() {
		ghost = f.autocomplete.GhostText()
	}
	if ghost != "" {
		runes := []rune(ghost)
		content = fieldPrompt + f.input.Value() +
			styleGhostCursor().Render(string(runes[0])) +
			styleGhostText().Render(string(runes[1:]))
	} else {
		content = f.input.View()
	}

	// Border adds 2 cells outside Width.
	style := styleFieldInput()
	if f.input.Focused() {
		style = styleFieldInputFocused()
	}
	return style.Width(f.Width - 2).Render(content)
}

// listOrigin is the cell of the first line drawn below the input box.
func (f *InputField) listOrigin() (int, int) {
	return f.originX, f.originY + lipgloss.Height(f.headerView())
}
