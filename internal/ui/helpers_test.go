package ui

import (
	"reflect"
	"strings"
	"testing"

	"clientele/internal/recent"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

var netCandidates = []string{"Netflix", "Planet", "Internet", "Magnet"}

// newAutocompleteField returns a focused field wired to a fresh autocomplete.
func newAutocompleteField(t *testing.T, name string, values []string, tweak func(*AutocompleteOptions)) (*InputField, *Autocomplete) {
	t.Helper()
	opts := DefaultAutocompleteOptions()
	opts.DataSource = values
	opts.Recents = recent.NewStore(nil)
	if tweak != nil {
		tweak(&opts)
	}
	f := NewInputField(name, strings.ToUpper(name[:1])+name[1:])
	a := Attach(f, opts)
	f.Focus()
	return f, a
}

func typeText(f *InputField, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(f *InputField, k tea.KeyType) (bool, tea.Cmd) {
	return f.Update(tea.KeyMsg{Type: k})
}

// collectMsgs runs cmd and flattens sequences into their messages in order.
func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for i := 0; i < v.Len(); i++ {
		sub, ok := v.Index(i).Interface().(tea.Cmd)
		if !ok {
			t.Fatalf("unexpected element %T in sequence", v.Index(i).Interface())
		}
		out = append(out, collectMsgs(t, sub)...)
	}
	return out
}

func plain(s string) string {
	return ansi.Strip(s)
}
