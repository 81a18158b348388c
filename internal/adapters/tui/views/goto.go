package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"jsonbrowse/internal/adapters/tui/styles"
	"jsonbrowse/internal/domain"
)

// GotoModel lets the user type a fragment and jump to it. The app returns to
// the page view when the NavigateMsg arrives.
type GotoModel struct {
	ViewState
	form *InputForm
}

// NewGotoModel creates a new goto view model
func NewGotoModel() *GotoModel {
	return &GotoModel{
		form: NewInputForm(NewInputField("Fragment", "#users#todos?userId=1", 200)),
	}
}

// Open focuses the input prefilled with the current fragment
func (m *GotoModel) Open(current string) tea.Cmd {
	m.form.SetValue(0, current)
	cmd := m.form.Focus()
	m.form.Fields[0].Input.CursorEnd()
	return cmd
}

// Init initializes the goto view
func (m *GotoModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the goto view
func (m *GotoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			m.form.Blur()
			return m, send(SwitchToPageMsg{})
		case key.Matches(msg, m.form.Keys.Submit):
			fragment := domain.NormalizeFragment(m.form.Value(0))
			m.form.Blur()
			if fragment == "" {
				return m, send(SwitchToPageMsg{})
			}
			return m, navigate(fragment)
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the goto view
func (m *GotoModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Go to"))
	b.WriteString("\n\n")
	b.WriteString(m.form.RenderInline())
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("A leading # is added when missing. Unknown fragments show the users."))
	b.WriteString("\n\n")
	b.WriteString(m.form.RenderHelp("go"))

	return styles.App.Render(b.String())
}
