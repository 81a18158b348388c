package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"jsonbrowse/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToPageMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("jsonbrowse help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Browse remote users next to the ones you created locally"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("pgup / pgdn", "Previous/next page"))
	b.WriteString(helpLine("enter / l", "Open todos of a user, comments of a post"))
	b.WriteString(helpLine("t / p", "Todos / posts of the selected user"))
	b.WriteString(helpLine("c", "Comments of the selected post"))
	b.WriteString(helpLine("1-9", "Jump to a breadcrumb"))
	b.WriteString(helpLine("b / f", "Back / forward in history"))
	b.WriteString(helpLine("g", "Go to a fragment"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine("/", "Filter the listing"))
	b.WriteString(helpLine("n", "New local user, or todo of a local user"))
	b.WriteString(helpLine("d", "Delete the selected local user"))
	b.WriteString(helpLine("y", "Copy the current fragment"))
	b.WriteString(helpLine("o", "Open the remote JSON in a browser"))
	b.WriteString(helpLine("r", "Reload"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Fragments"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  #users"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  #users#todos?userId=1"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  #users#posts?userId=1"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  #users#posts#comments?postId=1"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
