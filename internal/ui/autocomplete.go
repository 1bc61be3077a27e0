package ui

import (
	"strings"
	"time"
	"unicode/utf8"

	"clientele/internal/match"
	"clientele/internal/recent"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// AutocompleteState is the visible state of a suggestion list.
type AutocompleteState int

const (
	// AutocompleteClosed - no list is shown.
	AutocompleteClosed AutocompleteState = iota
	// AutocompleteOpenEmpty - list shown with only the empty message.
	AutocompleteOpenEmpty
	// AutocompleteOpenListing - list shown with at least one suggestion.
	AutocompleteOpenListing
)

func (s AutocompleteState) String() string {
	switch s {
	case AutocompleteOpenEmpty:
		return "open-empty"
	case AutocompleteOpenListing:
		return "open-listing"
	default:
		return "closed"
	}
}

const (
	defaultMaxVisible   = 5
	defaultEmptyMessage = "No matches"
	defaultRecentHeader = "Recent"

	// recentViewLimit caps the rows shown when an empty field gains focus.
	recentViewLimit = 5
)

// DefaultBlurDelay keeps a blurred list alive long enough for a row press
// that is already in flight to commit.
const DefaultBlurDelay = 150 * time.Millisecond

// AutocompleteOptions configure one attached field.
type AutocompleteOptions struct {
	MinChars   int // Trimmed length needed before searching; 0 shows recents on empty input
	MaxResults int // Cap on ranked suggestions (default 8)
	MaxVisible int // Rows visible before the list scrolls (default 5)
	DataSource []string

	HighlightMatches bool
	ShowRecentFirst  bool // Boost recent picks and list them when an empty field gains focus
	FuzzyFallback    bool

	Placeholder  string
	EmptyMessage string
	RecentHeader string
	BlurDelay    time.Duration

	// Recents persists commits. Nil gets a private in-memory store.
	Recents  *recent.Store
	OnSelect func(value string)
}

// DefaultAutocompleteOptions returns the stock configuration.
func DefaultAutocompleteOptions() AutocompleteOptions {
	return AutocompleteOptions{
		MinChars:         1,
		MaxResults:       match.DefaultMaxResults,
		MaxVisible:       defaultMaxVisible,
		HighlightMatches: true,
		ShowRecentFirst:  true,
		EmptyMessage:     defaultEmptyMessage,
		RecentHeader:     defaultRecentHeader,
		BlurDelay:        DefaultBlurDelay,
	}
}

func (o AutocompleteOptions) normalized() AutocompleteOptions {
	if o.MinChars < 0 {
		o.MinChars = 0
	}
	if o.MaxResults <= 0 {
		o.MaxResults = match.DefaultMaxResults
	}
	if o.MaxVisible <= 0 {
		o.MaxVisible = defaultMaxVisible
	}
	if o.EmptyMessage == "" {
		o.EmptyMessage = defaultEmptyMessage
	}
	if o.RecentHeader == "" {
		o.RecentHeader = defaultRecentHeader
	}
	if o.BlurDelay < 0 {
		o.BlurDelay = 0
	}
	if o.Recents == nil {
		o.Recents = recent.NewStore(nil)
	}
	o.DataSource = append([]string(nil), o.DataSource...)
	return o
}

type suggestion struct {
	Value  string
	Recent bool
}

// Autocomplete drives the suggestion list of one InputField. The field holds
// the only reference to it; see Attach.
type Autocomplete struct {
	field *InputField
	opts  AutocompleteOptions
	keys  AutocompleteKeyMap

	state         AutocompleteState
	rows          []suggestion
	query         string // trimmed query the rows were ranked for; empty in the recent view
	recentView    bool
	selectedIndex int // -1 or a valid index into rows
	scrollOffset  int

	blurToken uint64
}

// Attach wires an autocomplete to field. Attaching an already wired field
// re-applies opts to the existing controller instead of stacking a second one.
func Attach(field *InputField, opts AutocompleteOptions) *Autocomplete {
	opts = opts.normalized()
	a := field.autocomplete
	if a == nil {
		a = &Autocomplete{
			field:         field,
			keys:          DefaultAutocompleteKeyMap(),
			selectedIndex: -1,
		}
		field.autocomplete = a
	}
	a.opts = opts
	if opts.Placeholder != "" {
		field.input.Placeholder = opts.Placeholder
	}
	return a
}

// UpdateDataSource replaces the candidates used by later searches. The
// current list is left as rendered.
func (a *Autocomplete) UpdateDataSource(list []string) {
	a.opts.DataSource = append([]string(nil), list...)
}

// DataSource returns a copy of the current candidates.
func (a *Autocomplete) DataSource() []string {
	return append([]string(nil), a.opts.DataSource...)
}

// Options returns the effective options.
func (a *Autocomplete) Options() AutocompleteOptions {
	return a.opts
}

// Field returns the host field.
func (a *Autocomplete) Field() *InputField {
	return a.field
}

// State returns the current list state.
func (a *Autocomplete) State() AutocompleteState {
	return a.state
}

// IsOpen reports whether any list, including the empty message, is shown.
func (a *Autocomplete) IsOpen() bool {
	return a.state != AutocompleteClosed
}

// SelectedIndex returns the cursor row, or -1 when nothing is selected.
func (a *Autocomplete) SelectedIndex() int {
	return a.selectedIndex
}

// Suggestions returns the rendered suggestion values in order.
func (a *Autocomplete) Suggestions() []string {
	out := make([]string, len(a.rows))
	for i, r := range a.rows {
		out[i] = r.Value
	}
	return out
}

// ShowingRecent reports whether the list is the on-focus recent view.
func (a *Autocomplete) ShowingRecent() bool {
	return a.IsOpen() && a.recentView
}

// Namespace is the recency namespace for the host field.
func (a *Autocomplete) Namespace() string {
	return recent.Namespace(a.field.Name)
}

// OnInput re-ranks after the host field's text changed.
func (a *Autocomplete) OnInput() {
	q := strings.TrimSpace(a.field.Value())
	if q == "" {
		if a.opts.MinChars > 0 || !a.openRecent() {
			a.Close()
		}
		return
	}
	if utf8.RuneCountInString(q) < a.opts.MinChars {
		a.Close()
		return
	}
	a.search(q)
}

// OnFocus opens the recent view for an empty field, or searches when the
// field already holds enough text. Any pending blur close is cancelled.
func (a *Autocomplete) OnFocus() {
	a.blurToken++
	q := strings.TrimSpace(a.field.Value())
	if q == "" {
		if !a.openRecent() {
			a.Close()
		}
		return
	}
	if utf8.RuneCountInString(q) >= a.opts.MinChars {
		a.search(q)
	}
}

// OnBlur schedules the list to close after BlurDelay. A row press that
// lands first commits and closes the list itself; the late close then
// finds nothing to do.
func (a *Autocomplete) OnBlur() tea.Cmd {
	a.blurToken++
	if a.state == AutocompleteClosed {
		return nil
	}
	if a.opts.BlurDelay == 0 {
		a.Close()
		return nil
	}
	return scheduleBlurClose(a, a.blurToken, a.opts.BlurDelay)
}

// Close hides the list and clears the cursor. Closing twice is harmless.
func (a *Autocomplete) Close() {
	a.state = AutocompleteClosed
	a.rows = nil
	a.query = ""
	a.recentView = false
	a.selectedIndex = -1
	a.scrollOffset = 0
}

// Update routes key, mouse and timer messages. handled reports that the
// list consumed msg and the host must not apply its own default for it.
func (a *Autocomplete) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.HandleKey(msg)
	case tea.MouseMsg:
		return a.HandleMouse(msg)
	case blurCloseMsg:
		if msg.owner != a {
			return false, nil
		}
		if msg.token == a.blurToken {
			a.Close()
		}
		return true, nil
	}
	return false, nil
}

// HandleKey applies list navigation and commit keys.
func (a *Autocomplete) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.state == AutocompleteClosed {
			q := strings.TrimSpace(a.field.Value())
			if q == "" || utf8.RuneCountInString(q) < a.opts.MinChars {
				return false, nil
			}
			a.search(q)
			return true, nil
		}
		a.move(1)
		return true, nil

	case key.Matches(msg, a.keys.Up):
		if a.state == AutocompleteClosed {
			return false, nil
		}
		a.move(-1)
		return true, nil

	case key.Matches(msg, a.keys.Accept):
		if a.state != AutocompleteOpenListing || a.selectedIndex < 0 {
			return false, nil
		}
		return true, a.commitRow(a.selectedIndex)

	case key.Matches(msg, a.keys.Tab):
		if a.state != AutocompleteOpenListing {
			return false, nil
		}
		idx := a.selectedIndex
		if idx < 0 {
			idx = 0
		}
		return true, a.commitRow(idx)

	case key.Matches(msg, a.keys.Close):
		wasOpen := a.IsOpen()
		a.Close()
		return wasOpen, nil
	}
	return false, nil
}

// HandleMouse commits a pressed row and hover-syncs the cursor on motion.
func (a *Autocomplete) HandleMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	row, ok := a.rowAt(msg.X, msg.Y)
	if !ok {
		return false, nil
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return true, a.commitRow(row)
	case msg.Action == tea.MouseActionMotion:
		a.selectedIndex = row
		return true, nil
	}
	return false, nil
}

// Select moves the cursor to index, clamped to the rendered rows.
func (a *Autocomplete) Select(index int) {
	if a.state != AutocompleteOpenListing {
		return
	}
	a.selectedIndex = clampIndex(index, len(a.rows))
	a.adjustScrollOffset()
}

// Commit writes value into the field, records it as recent, notifies
// listeners and closes the list.
func (a *Autocomplete) Commit(value string) tea.Cmd {
	a.field.SetValue(value)
	a.opts.Recents.Add(a.Namespace(), value)
	a.Close()
	if a.opts.OnSelect != nil {
		a.opts.OnSelect(value)
	}
	return commitNotifications(a.field.Name, value)
}

// GhostText is the untyped remainder of the selected row when that row
// starts with what the user typed.
func (a *Autocomplete) GhostText() string {
	if a.state != AutocompleteOpenListing || a.recentView {
		return ""
	}
	if a.selectedIndex < 0 || a.selectedIndex >= len(a.rows) {
		return ""
	}
	typed := a.field.Value()
	if typed == "" {
		return ""
	}
	// Compare rune by rune: lowercasing can change a rune's byte length.
	sr, tr := []rune(a.rows[a.selectedIndex].Value), []rune(typed)
	if len(tr) >= len(sr) || strings.ToLower(string(sr[:len(tr)])) != strings.ToLower(typed) {
		return ""
	}
	return string(sr[len(tr):])
}

func (a *Autocomplete) commitRow(i int) tea.Cmd {
	if i < 0 || i >= len(a.rows) {
		return nil
	}
	return a.Commit(a.rows[i].Value)
}

func (a *Autocomplete) search(q string) {
	scored := match.Score(q, a.opts.DataSource, a.opts.Recents.Load(a.Namespace()), match.Options{
		MaxResults:    a.opts.MaxResults,
		BoostRecent:   a.opts.ShowRecentFirst,
		FuzzyFallback: a.opts.FuzzyFallback,
	})
	rows := make([]suggestion, len(scored))
	for i, sc := range scored {
		rows[i] = suggestion{Value: sc.Value, Recent: sc.Recent}
	}
	a.render(rows, q, false)
}

// openRecent shows up to recentViewLimit recent picks that are still in the
// data source. It reports false when there is nothing to show.
func (a *Autocomplete) openRecent() bool {
	if !a.opts.ShowRecentFirst {
		return false
	}
	available := make(map[string]struct{}, len(a.opts.DataSource))
	for _, v := range a.opts.DataSource {
		available[v] = struct{}{}
	}
	var rows []suggestion
	for _, v := range a.opts.Recents.Load(a.Namespace()) {
		if _, ok := available[v]; !ok {
			continue
		}
		rows = append(rows, suggestion{Value: v, Recent: true})
		if len(rows) == recentViewLimit {
			break
		}
	}
	if len(rows) == 0 {
		return false
	}
	a.render(rows, "", true)
	return true
}

// render swaps in a fresh list. The cursor never survives a re-render.
func (a *Autocomplete) render(rows []suggestion, q string, recentView bool) {
	a.rows = rows
	a.query = q
	a.recentView = recentView
	a.selectedIndex = -1
	a.scrollOffset = 0
	if len(rows) == 0 {
		a.state = AutocompleteOpenEmpty
	} else {
		a.state = AutocompleteOpenListing
	}
}

func (a *Autocomplete) move(delta int) {
	if a.state != AutocompleteOpenListing {
		return
	}
	a.selectedIndex = clampIndex(a.selectedIndex+delta, len(a.rows))
	a.adjustScrollOffset()
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// adjustScrollOffset ensures the selected row is visible in the list window.
func (a *Autocomplete) adjustScrollOffset() {
	if a.selectedIndex < 0 {
		return
	}
	if a.selectedIndex < a.scrollOffset {
		a.scrollOffset = a.selectedIndex
	}
	if a.selectedIndex >= a.scrollOffset+a.opts.MaxVisible {
		a.scrollOffset = a.selectedIndex - a.opts.MaxVisible + 1
	}
	maxOffset := max(len(a.rows)-a.opts.MaxVisible, 0)
	a.scrollOffset = min(max(a.scrollOffset, 0), maxOffset)
}
