package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"jsonbrowse/internal/adapters/tui/styles"
	"jsonbrowse/internal/domain"
)

// DeleteModel asks for confirmation before a local user is removed.
// The delete itself runs in the app once DeleteUserMsg arrives.
type DeleteModel struct {
	ConfirmationModel
	target *domain.User
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel() *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
	}
}

// SetTarget sets the user to delete
func (m *DeleteModel) SetTarget(u domain.User) {
	m.target = &u
}

// Target returns the user awaiting confirmation
func (m *DeleteModel) Target() (domain.User, bool) {
	if m.target == nil {
		return domain.User{}, false
	}
	return *m.target, true
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.confirm,
			func() tea.Msg { return SwitchToPageMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) confirm() tea.Msg {
	if m.target == nil {
		return SwitchToPageMsg{}
	}
	return DeleteUserMsg{UserID: m.target.ID}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete local user"))
	b.WriteString("\n\n")

	if m.target == nil {
		b.WriteString(styles.MutedText.Render("Nothing selected."))
		return styles.App.Render(b.String())
	}

	b.WriteString(styles.ErrorMsg.Render("This action cannot be undone!"))
	b.WriteString("\n\n")

	u := m.target
	label := fmt.Sprintf("%d %s <%s>", u.ID, domain.Sanitize(u.Name), domain.Sanitize(u.Email))
	b.WriteString(RenderTargetInfo("Delete", label))
	b.WriteString("\n\n")

	if n := len(u.Todos); n > 0 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  Its %d todo(s) will be deleted too.", n)))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
