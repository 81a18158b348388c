package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jsonbrowse/internal/adapters/tui/styles"
)

// SearchKeyMap defines key bindings while the search bar has focus
type SearchKeyMap struct {
	Done  key.Binding
	Clear key.Binding
}

var SearchKeys = SearchKeyMap{
	Done: key.NewBinding(
		key.WithKeys("enter", "esc"),
		key.WithHelp("enter/esc", "done"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "clear"),
	),
}

// SearchBar is the query input shared by every view. Its value is applied
// to whatever listing is on screen and survives navigation.
type SearchBar struct {
	input textinput.Model
}

// NewSearchBar creates a search bar holding initial
func NewSearchBar(initial string) *SearchBar {
	input := textinput.New()
	input.Placeholder = "filter…"
	input.Prompt = "/ "
	input.CharLimit = 200
	input.SetValue(initial)
	return &SearchBar{input: input}
}

// Focus starts capturing keystrokes
func (s *SearchBar) Focus() tea.Cmd {
	s.input.Focus()
	s.input.CursorEnd()
	return textinput.Blink
}

// Blur stops capturing keystrokes; the query stays applied
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the search bar has keyboard focus
func (s *SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the raw query as typed
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// Update handles a message while focused. Every edit that changes the value
// emits a QueryChangedMsg.
func (s *SearchBar) Update(msg tea.Msg) tea.Cmd {
	before := s.input.Value()

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SearchKeys.Done):
			s.Blur()
			return nil
		case key.Matches(msg, SearchKeys.Clear):
			s.input.SetValue("")
			return s.changed(before)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return tea.Batch(cmd, s.changed(before))
}

func (s *SearchBar) changed(before string) tea.Cmd {
	after := s.input.Value()
	if after == before {
		return nil
	}
	return func() tea.Msg {
		return QueryChangedMsg{Query: after}
	}
}

// View renders the search bar
func (s *SearchBar) View() string {
	if s.input.Focused() {
		return styles.InputFocused.Render(s.input.View())
	}
	if s.input.Value() == "" {
		return styles.MutedText.Render("/ to filter")
	}
	return styles.InputField.Render(s.input.View())
}
