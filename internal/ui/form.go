package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"clientele/internal/datasource"
	"clientele/internal/debug"
	"clientele/internal/recent"
	"clientele/internal/ui/theme"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field names of the customer form. They double as recency namespaces.
const (
	FieldCustomer = "customer"
	FieldCountry  = "country"
	FieldVendor   = "vendor"
)

const (
	formTitle    = "New customer"
	formPadX     = 2
	helpMaxWidth = 80
)

// FormConfig supplies candidates and collaborators to NewCustomerForm.
type FormConfig struct {
	// Options is the base configuration applied to every field.
	Options AutocompleteOptions

	Customers []string
	Countries []string
	Vendors   []string

	// Sources maps a field name to the file its candidates came from, so
	// reloads arriving on Changes reach the right field.
	Sources map[string]string
	Changes <-chan datasource.ChangedMsg

	HelpStyle string
	// SaveTheme persists the theme picked with the theme key. Optional.
	SaveTheme func(name string) error
}

// CustomerForm is a small host form exercising three autocomplete fields.
type CustomerForm struct {
	fields []*InputField
	focus  int
	keys   FormKeyMap

	sources   map[string]string
	changes   <-chan datasource.ChangedMsg
	saveTheme func(string) error

	helpStyle string
	showHelp  bool

	status      string
	statusError bool
	statusSeq   int

	width     int
	submitted bool
}

// NewCustomerForm builds the form with the customer field focused on Init.
func NewCustomerForm(cfg FormConfig) *CustomerForm {
	opts := cfg.Options
	if opts.Recents == nil {
		// One store for the whole form so every field's recents live together.
		opts.Recents = recent.NewStore(nil)
	}

	specs := []struct {
		name, label, placeholder string
		values                   []string
	}{
		{FieldCustomer, "Customer", "Full name", cfg.Customers},
		{FieldCountry, "Country", "Start typing a country", cfg.Countries},
		{FieldVendor, "Vendor", "Start typing a vendor", cfg.Vendors},
	}

	m := &CustomerForm{
		keys:      DefaultFormKeyMap(),
		sources:   make(map[string]string),
		changes:   cfg.Changes,
		saveTheme: cfg.SaveTheme,
		helpStyle: cfg.HelpStyle,
	}
	for _, s := range specs {
		f := NewInputField(s.name, s.label)
		fieldOpts := opts
		fieldOpts.DataSource = s.values
		if fieldOpts.Placeholder == "" {
			fieldOpts.Placeholder = s.placeholder
		}
		Attach(f, fieldOpts)
		m.fields = append(m.fields, f)
	}
	for name, path := range cfg.Sources {
		if path == "" {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		m.sources[filepath.Clean(path)] = name
	}
	m.layout()
	return m
}

// Init implements tea.Model.
func (m *CustomerForm) Init() tea.Cmd {
	return tea.Batch(m.fields[m.focus].Focus(), datasource.WatchCmd(m.changes))
}

// Field returns the named field, or nil.
func (m *CustomerForm) Field(name string) *InputField {
	for _, f := range m.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Focused returns the focused field.
func (m *CustomerForm) Focused() *InputField {
	return m.fields[m.focus]
}

// Submitted reports whether the form was saved rather than abandoned.
func (m *CustomerForm) Submitted() bool {
	return m.submitted
}

// Values returns the current value of every field by name.
func (m *CustomerForm) Values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		out[f.Name] = strings.TrimSpace(f.Value())
	}
	return out
}

// Status returns the status line text.
func (m *CustomerForm) Status() string {
	return m.status
}

// Update implements tea.Model.
func (m *CustomerForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.layout()
	return model, cmd
}

func (m *CustomerForm) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case datasource.ChangedMsg:
		m.applySourceChange(msg)
		return m, datasource.WatchCmd(m.changes)

	case ChangeMsg:
		debug.Debug("field committed", "field", msg.Field, "value", msg.Value)
		return m, m.setStatus(fmt.Sprintf("%s set to %s", fieldLabel(m.Field(msg.Field)), msg.Value), false)

	case InputMsg:
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusError = false
		}
		return m, nil
	}

	// Timers and cursor blinks go to every field; each ignores what is not its own.
	var cmds []tea.Cmd
	for _, f := range m.fields {
		_, cmd := f.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *CustomerForm) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) {
			m.showHelp = false
		}
		return m, nil
	}

	handled, cmd := m.Focused().Update(msg)
	if handled {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m, tea.Batch(cmd, m.setFocus(m.focus+1))
	case key.Matches(msg, m.keys.Prev):
		return m, tea.Batch(cmd, m.setFocus(m.focus-1))
	case key.Matches(msg, m.keys.Submit):
		m.submitted = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Copy):
		return m, tea.Batch(cmd, m.copyFocused())
	case key.Matches(msg, m.keys.Theme):
		return m, tea.Batch(cmd, m.cycleTheme())
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, cmd
	}
	return m, cmd
}

// handleMouse lets open lists claim the event first, then focuses a field
// whose input box was pressed.
func (m *CustomerForm) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	for _, f := range m.fields {
		if handled, cmd := f.Update(msg); handled {
			return m, cmd
		}
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i, f := range m.fields {
		x, y := f.Origin()
		if msg.X >= x && msg.X < x+f.Width && msg.Y >= y && msg.Y < y+lipgloss.Height(f.headerView()) {
			if i == m.focus {
				return m, nil
			}
			return m, m.setFocus(i)
		}
	}
	return m, nil
}

// setFocus moves focus, wrapping at both ends. The old field's blur command
// is kept so its delayed list close still runs.
func (m *CustomerForm) setFocus(i int) tea.Cmd {
	n := len(m.fields)
	i = ((i % n) + n) % n
	blur := m.fields[m.focus].Blur()
	m.focus = i
	return tea.Batch(blur, m.fields[i].Focus())
}

func (m *CustomerForm) applySourceChange(msg datasource.ChangedMsg) {
	name, ok := m.sources[filepath.Clean(msg.Path)]
	if !ok {
		return
	}
	f := m.Field(name)
	if f == nil || f.Autocomplete() == nil {
		return
	}
	f.Autocomplete().UpdateDataSource(msg.Values)
	debug.Debug("candidate source reloaded", "field", name, "path", msg.Path, "count", len(msg.Values))
}

func (m *CustomerForm) copyFocused() tea.Cmd {
	v := strings.TrimSpace(m.Focused().Value())
	if v == "" {
		return nil
	}
	if err := clipboard.WriteAll(v); err != nil {
		return m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
	}
	return m.setStatus(fmt.Sprintf("Copied '%s' to clipboard.", v), false)
}

func (m *CustomerForm) cycleTheme() tea.Cmd {
	name := theme.CycleTheme()
	if m.saveTheme != nil {
		if err := m.saveTheme(name); err != nil {
			return m.setStatus(fmt.Sprintf("Theme %s (not saved: %v)", name, err), true)
		}
	}
	return m.setStatus("Theme: "+name, false)
}

func (m *CustomerForm) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusError = isErr
	return scheduleStatusClear(m.statusSeq)
}

// layout records each field's screen origin. It mirrors View.
func (m *CustomerForm) layout() {
	y := lipgloss.Height(styleFormTitle().Render(formTitle))
	for _, f := range m.fields {
		f.SetOrigin(formPadX, y)
		y += lipgloss.Height(f.View()) + 1
	}
}

// View implements tea.Model.
func (m *CustomerForm) View() string {
	if m.showHelp {
		width := helpMaxWidth
		if m.width > 0 {
			width = min(m.width-2*formPadX, helpMaxWidth)
		}
		render := buildMarkdownRenderer(m.helpStyle, width)
		return lipgloss.NewStyle().PaddingLeft(formPadX).Render(render(helpMarkdown(m.keys, DefaultAutocompleteKeyMap())))
	}

	parts := make([]string, 0, len(m.fields)+1)
	for _, f := range m.fields {
		parts = append(parts, f.View())
	}
	body := styleFormTitle().Render(formTitle) + "\n" + strings.Join(parts, "\n\n")

	status := m.status
	if status == "" {
		status = "F1 help • Enter save • Esc quit"
	}
	if m.statusError {
		status = styleStatusError().Render(status)
	} else {
		status = styleStatus().Render(status)
	}
	return lipgloss.NewStyle().PaddingLeft(formPadX).Render(body + "\n\n" + status)
}

func fieldLabel(f *InputField) string {
	if f == nil {
		return "Field"
	}
	return f.Label
}
