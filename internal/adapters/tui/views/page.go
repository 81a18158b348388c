package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"jsonbrowse/internal/adapters/tui/styles"
	"jsonbrowse/internal/application"
	"jsonbrowse/internal/domain"
)

// PageKeyMap defines key bindings for the listing view
type PageKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Open     key.Binding
	Todos    key.Binding
	Posts    key.Binding
	Comments key.Binding
	New      key.Binding
	Delete   key.Binding
	Search   key.Binding
	Crumb    key.Binding
	Back     key.Binding
	Forward  key.Binding
	Goto     key.Binding
	Copy     key.Binding
	Browse   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var PageKeys = PageKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("pgup", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("pgdn", "next page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "open"),
	),
	Todos: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "todos"),
	),
	Posts: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "posts"),
	),
	Comments: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "comments"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Crumb: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "crumb"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "h", "left"),
		key.WithHelp("b", "back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "forward"),
	),
	Goto: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	Browse: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open json"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RowKind identifies what a listing row holds
type RowKind int

const (
	RowUser RowKind = iota
	RowTodo
	RowPost
	RowComment
)

// Row is one selectable line of the listing
type Row struct {
	Kind    RowKind
	Section string
	User    domain.User
	Todo    domain.Todo
	Post    domain.Post
	Comment domain.Comment
}

// Section names on the users page
const (
	SectionLocal  = "Local users"
	SectionRemote = "Remote users"
)

// BuildRows flattens a page into selectable rows, local users first
func BuildRows(p *application.Page) []Row {
	if p == nil {
		return nil
	}
	var rows []Row
	switch {
	case p.Users != nil:
		for _, u := range p.Users.Local {
			rows = append(rows, Row{Kind: RowUser, Section: SectionLocal, User: u})
		}
		for _, u := range p.Users.Remote {
			rows = append(rows, Row{Kind: RowUser, Section: SectionRemote, User: u})
		}
	case p.Todos != nil:
		for _, t := range p.Todos.Todos {
			rows = append(rows, Row{Kind: RowTodo, Todo: t})
		}
	case p.Posts != nil:
		for _, post := range p.Posts.Posts {
			rows = append(rows, Row{Kind: RowPost, Post: post})
		}
	case p.Comments != nil:
		for _, c := range p.Comments.Comments {
			rows = append(rows, Row{Kind: RowComment, Comment: c})
		}
	}
	return rows
}

type pageFocus int

const (
	focusList pageFocus = iota
	focusSearch
	focusUserForm
	focusTodoForm
)

// PageModel shows the rendered page: breadcrumbs, search bar, creation form
// and the listing
type PageModel struct {
	ViewState
	page      *application.Page
	rows      []Row
	paginator *Paginator
	search    *SearchBar
	userForm  *InputForm
	todoForm  *InputForm
	focus     pageFocus
}

// NewPageModel creates a page view whose search bar starts with query
func NewPageModel(query string) *PageModel {
	return &PageModel{
		paginator: NewPaginator(10),
		search:    NewSearchBar(query),
		userForm: NewInputForm(
			NewInputField("Name", "Leanne Graham", 100),
			NewInputField("Email", "name@example.com", 100),
		),
		todoForm: NewInputForm(
			NewInputField("Title", "what needs doing", 200),
		),
	}
}

// SetPage replaces the displayed page. The cursor stays put when the
// location is unchanged (a re-filter or reload) and resets otherwise.
func (m *PageModel) SetPage(p application.Page) {
	samePlace := m.page != nil && m.page.State.Fragment == p.State.Fragment
	m.page = &p
	m.rows = BuildRows(m.page)
	if !samePlace {
		m.paginator.Reset()
		if m.focus == focusTodoForm && (p.Todos == nil || !p.Todos.CanCreate) {
			m.setFocus(focusList)
		}
		if m.focus == focusUserForm && p.Users == nil {
			m.setFocus(focusList)
		}
	}
	m.paginator.SetTotal(len(m.rows))
}

// Page returns the page on screen, or nil before the first render
func (m *PageModel) Page() *application.Page {
	return m.page
}

// Query returns the raw search input
func (m *PageModel) Query() string {
	return m.search.Value()
}

// Selected returns the row under the cursor
func (m *PageModel) Selected() (Row, bool) {
	i := m.paginator.Cursor()
	if i < 0 || i >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[i], true
}

// Capturing reports whether keystrokes go to a text input
func (m *PageModel) Capturing() bool {
	return m.focus != focusList
}

// Form names one of the page's creation forms
type Form int

const (
	NoForm Form = iota
	UserForm
	TodoForm
)

// ResetForm clears a creation form after its submit succeeded. The other
// form keeps whatever was typed into it.
func (m *PageModel) ResetForm(f Form) {
	switch f {
	case UserForm:
		m.userForm.Reset()
	case TodoForm:
		m.todoForm.Reset()
	}
}

// SetSize updates the view dimensions and the rows per page
func (m *PageModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// Chrome above and below the listing takes about 14 lines; posts and
	// comments use two lines per row.
	m.paginator.SetPageSize(max((height-14)/2, 3))
}

func (m *PageModel) setFocus(f pageFocus) tea.Cmd {
	m.search.Blur()
	m.userForm.Blur()
	m.todoForm.Blur()
	m.focus = f
	switch f {
	case focusSearch:
		return m.search.Focus()
	case focusUserForm:
		return m.userForm.Focus()
	case focusTodoForm:
		return m.todoForm.Focus()
	}
	return nil
}

// Init initializes the page view
func (m *PageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the page view
func (m *PageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case focusSearch:
			cmd := m.search.Update(msg)
			if !m.search.Focused() {
				m.focus = focusList
			}
			return m, cmd
		case focusUserForm:
			return m, m.updateForm(msg, m.userForm, m.submitUser)
		case focusTodoForm:
			return m, m.updateForm(msg, m.todoForm, m.submitTodo)
		}
		m.ClearMessage()
		return m, m.handleListKey(msg)
	}

	// Non-key messages (cursor blink) go to whichever input is focused
	switch m.focus {
	case focusSearch:
		return m, m.search.Update(msg)
	case focusUserForm:
		_, cmd := m.userForm.Update(msg)
		return m, cmd
	case focusTodoForm:
		_, cmd := m.todoForm.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *PageModel) updateForm(msg tea.KeyMsg, form *InputForm, submit func() tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, form.Keys.Cancel):
		m.setFocus(focusList)
		return nil
	case key.Matches(msg, form.Keys.Submit):
		return submit()
	}
	_, cmd := form.Update(msg)
	return cmd
}

func (m *PageModel) submitUser() tea.Cmd {
	name, email := m.userForm.Value(0), m.userForm.Value(1)
	return func() tea.Msg {
		return CreateUserMsg{Name: name, Email: email}
	}
}

func (m *PageModel) submitTodo() tea.Cmd {
	if m.page == nil || m.page.Todos == nil || !m.page.Todos.UserID.Valid {
		return nil
	}
	userID, title := m.page.Todos.UserID.Value, m.todoForm.Value(0)
	return func() tea.Msg {
		return CreateTodoMsg{UserID: userID, Title: title}
	}
}

func (m *PageModel) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, PageKeys.Quit):
		return tea.Quit

	case key.Matches(msg, PageKeys.Up):
		m.paginator.CursorUp()
	case key.Matches(msg, PageKeys.Down):
		m.paginator.CursorDown()
	case key.Matches(msg, PageKeys.PrevPage):
		m.paginator.PrevPage()
	case key.Matches(msg, PageKeys.NextPage):
		m.paginator.NextPage()

	case key.Matches(msg, PageKeys.Open):
		if row, ok := m.Selected(); ok {
			switch row.Kind {
			case RowUser:
				return navigate(domain.TodosFragment(row.User.ID))
			case RowPost:
				return navigate(application.PostLink(row.Post).Fragment)
			}
		}
	case key.Matches(msg, PageKeys.Todos):
		if row, ok := m.Selected(); ok && row.Kind == RowUser {
			return navigate(domain.TodosFragment(row.User.ID))
		}
	case key.Matches(msg, PageKeys.Posts):
		if row, ok := m.Selected(); ok && row.Kind == RowUser {
			return navigate(domain.PostsFragment(row.User.ID))
		}
	case key.Matches(msg, PageKeys.Comments):
		if row, ok := m.Selected(); ok && row.Kind == RowPost {
			return navigate(domain.CommentsFragment(row.Post.ID))
		}

	case key.Matches(msg, PageKeys.Delete):
		if row, ok := m.Selected(); ok && row.Kind == RowUser && row.User.Local {
			user := row.User
			return func() tea.Msg { return ConfirmDeleteMsg{User: user} }
		}
	case key.Matches(msg, PageKeys.New):
		switch {
		case m.page == nil:
		case m.page.Users != nil:
			return m.setFocus(focusUserForm)
		case m.page.Todos != nil && m.page.Todos.CanCreate:
			return m.setFocus(focusTodoForm)
		}
	case key.Matches(msg, PageKeys.Search):
		return m.setFocus(focusSearch)

	case key.Matches(msg, PageKeys.Crumb):
		if m.page != nil {
			i := int(msg.Runes[0] - '1')
			if i < len(m.page.Crumbs) {
				return navigate(m.page.Crumbs[i].Fragment)
			}
		}
	case key.Matches(msg, PageKeys.Back):
		return send(BackMsg{})
	case key.Matches(msg, PageKeys.Forward):
		return send(ForwardMsg{})
	case key.Matches(msg, PageKeys.Goto):
		return send(SwitchToGotoMsg{})
	case key.Matches(msg, PageKeys.Copy):
		return send(CopyFragmentMsg{})
	case key.Matches(msg, PageKeys.Browse):
		return send(OpenRemoteMsg{})
	case key.Matches(msg, PageKeys.Reload):
		return send(ReloadMsg{})
	case key.Matches(msg, PageKeys.Help):
		return send(SwitchToHelpMsg{})
	}
	return nil
}

func navigate(fragment string) tea.Cmd {
	return send(NavigateMsg{Fragment: fragment})
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the page
func (m *PageModel) View() string {
	v := NewViewBuilder()
	if m.page == nil {
		return v.Line("Loading…").String()
	}
	p := m.page

	v.Line(RenderCrumbs(p.Crumbs))
	v.BlankLine()
	v.Title(p.Title())
	v.Line(m.search.View())

	switch {
	case p.Users != nil:
		v.Line(m.formLine(m.userForm, "new user"))
	case p.Todos != nil && p.Todos.CanCreate:
		v.Line(m.formLine(m.todoForm, "new todo"))
	}

	m.renderRows(v)

	if pages := m.paginator.TotalPages(); pages > 1 {
		v.Muted(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), pages))
	}
	v.Message(m.Message, m.MessageErr)
	v.Help(m.helpBindings()...)
	return v.String()
}

func (m *PageModel) formLine(form *InputForm, what string) string {
	if form.Focused() {
		return form.RenderInline() + "\n" + form.RenderHelp("create")
	}
	return styles.MutedText.Render("n to add a " + what)
}

func (m *PageModel) renderRows(v *ViewBuilder) {
	p := m.page
	start, end := m.paginator.VisibleRange()

	if len(m.rows) == 0 {
		if p.Users != nil {
			v.Section(SectionRemote)
		}
		v.Muted("  nothing to show")
		return
	}

	section := ""
	for i := start; i < end; i++ {
		row := m.rows[i]
		if row.Section != "" && row.Section != section {
			section = row.Section
			v.Section(section)
		}
		v.Raw(m.renderRow(row, i == m.paginator.Cursor()))
	}

	// The remote section is always shown, even when only local users match
	if p.Users != nil && len(p.Users.Remote) == 0 && end == len(m.rows) {
		v.Section(SectionRemote)
		v.Muted("  no remote users")
	}
}

func (m *PageModel) renderRow(row Row, selected bool) string {
	query := m.page.State.Query
	width := m.Width - 8

	var title, detail, hint string
	switch row.Kind {
	case RowUser:
		u := row.User
		title = Highlight(domain.Sanitize(u.Name), query) + " " +
			styles.MutedText.Render("<"+domain.Sanitize(u.Email)+">")
		if u.Local {
			title += " " + styles.LocalTag.Render("(local)")
			hint = "t todos · p posts · d delete"
		} else {
			hint = "t todos · p posts"
		}
	case RowTodo:
		t := row.Todo
		title = Highlight(domain.Sanitize(t.Title), query) + " " + doneGlyph(t.Completed)
		if t.Local {
			title += " " + styles.LocalTag.Render("(local)")
		}
	case RowPost:
		post := row.Post
		title = Highlight(domain.Sanitize(post.Title), query)
		detail = Truncate(domain.Sanitize(post.Body), width)
		hint = "c comments"
	case RowComment:
		c := row.Comment
		title = Highlight(domain.Sanitize(c.Name), query) + " " +
			styles.MutedText.Render("<"+domain.Sanitize(c.Email)+">")
		detail = Truncate(domain.Sanitize(c.Body), width)
	}

	var b strings.Builder
	if selected {
		b.WriteString(styles.RowSelected.Render("▸") + " " + title)
		if hint != "" {
			b.WriteString("  " + styles.HelpDesc.Render(hint))
		}
	} else {
		b.WriteString("  " + title)
	}
	b.WriteString("\n")
	if detail != "" {
		b.WriteString("    " + styles.MutedText.Render(detail) + "\n")
	}
	return b.String()
}

func doneGlyph(done bool) string {
	if done {
		return styles.Done.Render("✅")
	}
	return styles.NotDone.Render("✗")
}

func (m *PageModel) helpBindings() []key.Binding {
	return []key.Binding{
		PageKeys.Up, PageKeys.Down, PageKeys.Open,
		PageKeys.Search, PageKeys.Crumb, PageKeys.Back,
		PageKeys.Goto, PageKeys.Help, PageKeys.Quit,
	}
}
