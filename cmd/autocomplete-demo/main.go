// Demo program to visually test a single autocomplete field
package main

import (
	"fmt"
	"os"
	"strings"

	"clientele/internal/datasource"
	"clientele/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type model struct {
	field    *ui.InputField
	selected string
	events   []string
	quit     bool
}

func initialModel() model {
	f := ui.NewInputField("country", "Country").WithWidth(40)
	opts := ui.DefaultAutocompleteOptions()
	opts.DataSource = datasource.Countries()
	opts.MinChars = 0
	opts.Placeholder = "Select or type a country..."
	ui.Attach(f, opts)
	// Title, its margin and the blank line below it.
	f.SetOrigin(0, 3)

	return model{field: f}
}

func (m model) Init() tea.Cmd {
	return m.field.Focus()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "esc":
			if !m.field.Autocomplete().IsOpen() {
				m.quit = true
				return m, tea.Quit
			}
		}

	case ui.InputMsg:
		m.events = lastEvents(append(m.events, "input: "+msg.Value))
		return m, nil

	case ui.ChangeMsg:
		m.selected = msg.Value
		m.events = lastEvents(append(m.events, "change: "+msg.Value))
		return m, nil
	}

	_, cmd := m.field.Update(msg)
	return m, cmd
}

func lastEvents(events []string) []string {
	if len(events) > 4 {
		return events[len(events)-4:]
	}
	return events
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

func (m model) View() string {
	if m.quit {
		return ""
	}

	s := titleStyle.Render("Autocomplete Demo")
	s += "\n\n"
	s += m.field.View()
	s += "\n\n"

	if m.selected != "" {
		s += "Selected: " + selectedStyle.Render(m.selected) + "\n"
	}
	if len(m.events) > 0 {
		s += helpStyle.Render(strings.Join(m.events, "\n")) + "\n"
	}

	s += helpStyle.Render("\n↑/↓ move • type to filter • Enter/Tab select • Esc close, then quit")

	return s
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
