package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"jsonbrowse/internal/domain"
)

// FragmentChangedMsg is emitted whenever the location moves. It is the only
// thing that triggers a render besides query edits and store changes.
type FragmentChangedMsg struct {
	Fragment string
}

// Location is the in-memory address bar: the current fragment plus back and
// forward history.
type Location struct {
	current string
	back    []string
	forward []string
}

// NewLocation starts at fragment, or at #users when fragment is empty.
// No FragmentChangedMsg is emitted for the starting point.
func NewLocation(fragment string) *Location {
	f := domain.NormalizeFragment(fragment)
	if f == "" {
		f = domain.DefaultFragment
	}
	return &Location{current: f}
}

// Current returns the current fragment
func (l *Location) Current() string {
	return l.current
}

// Navigate moves to fragment, pushing the current one onto the back stack and
// clearing forward history. Moving to the fragment already shown does nothing.
func (l *Location) Navigate(fragment string) tea.Cmd {
	f := domain.NormalizeFragment(fragment)
	if f == "" {
		f = domain.DefaultFragment
	}
	if f == l.current {
		return nil
	}
	l.back = append(l.back, l.current)
	l.forward = nil
	l.current = f
	return l.changed()
}

// Back returns to the previous fragment, if any
func (l *Location) Back() tea.Cmd {
	if len(l.back) == 0 {
		return nil
	}
	l.forward = append(l.forward, l.current)
	l.current = l.back[len(l.back)-1]
	l.back = l.back[:len(l.back)-1]
	return l.changed()
}

// Forward re-applies the fragment undone by Back, if any
func (l *Location) Forward() tea.Cmd {
	if len(l.forward) == 0 {
		return nil
	}
	l.back = append(l.back, l.current)
	l.current = l.forward[len(l.forward)-1]
	l.forward = l.forward[:len(l.forward)-1]
	return l.changed()
}

// CanGoBack reports whether Back would move
func (l *Location) CanGoBack() bool {
	return len(l.back) > 0
}

// CanGoForward reports whether Forward would move
func (l *Location) CanGoForward() bool {
	return len(l.forward) > 0
}

func (l *Location) changed() tea.Cmd {
	f := l.current
	return func() tea.Msg {
		return FragmentChangedMsg{Fragment: f}
	}
}
