package views

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"jsonbrowse/internal/application"
	"jsonbrowse/internal/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs cmd and returns its message, or nil for a nil cmd
func exec(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func usersPage() application.Page {
	state := application.NewAppState("#users", "")
	return application.Page{
		State:  state,
		Target: state.Target(),
		Crumbs: domain.Breadcrumbs(state.Fragment),
		Users: &application.UsersPage{
			Local: []domain.User{
				{ID: 1700000000000, Name: "Ada", Email: "ada@example.com", Local: true, Todos: []domain.Todo{{ID: 1, Title: "x", Local: true}}},
			},
			Remote: []domain.User{
				{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
				{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"},
			},
		},
	}
}

func todosPage(userID int64, local bool) application.Page {
	state := application.NewAppState(domain.TodosFragment(userID), "")
	return application.Page{
		State:  state,
		Target: state.Target(),
		Crumbs: domain.Breadcrumbs(state.Fragment),
		Todos: &application.TodosPage{
			UserID:    domain.SomeID(userID),
			CanCreate: local,
			Todos: []domain.Todo{
				{ID: 1, UserID: userID, Title: "buy milk", Completed: true, Local: local},
				{ID: 2, UserID: userID, Title: "walk dog", Local: local},
			},
		},
	}
}

func TestBuildRows_LocalUsersFirst(t *testing.T) {
	p := usersPage()
	rows := BuildRows(&p)

	var got []string
	for _, r := range rows {
		got = append(got, r.Section+"/"+r.User.Name)
	}
	want := []string{
		"Local users/Ada",
		"Remote users/Leanne Graham",
		"Remote users/Ervin Howell",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRows_NilPage(t *testing.T) {
	if rows := BuildRows(nil); rows != nil {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestPageModel_OpenUserNavigatesToTodos(t *testing.T) {
	m := NewPageModel("")
	m.SetPage(usersPage())

	m.Update(runes("j"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := exec(cmd).(NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", exec(cmd))
	}
	if want := "#users#todos?userId=1"; got.Fragment != want {
		t.Errorf("fragment = %q, want %q", got.Fragment, want)
	}
}

func TestPageModel_PostsKey(t *testing.T) {
	m := NewPageModel("")
	m.SetPage(usersPage())

	_, cmd := m.Update(runes("p"))
	got, ok := exec(cmd).(NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", exec(cmd))
	}
	if want := "#users#posts?userId=1700000000000"; got.Fragment != want {
		t.Errorf("fragment = %q, want %q", got.Fragment, want)
	}
}

func TestPageModel_DeleteOnlyLocalUsers(t *testing.T) {
	m := NewPageModel("")
	m.SetPage(usersPage())

	_, cmd := m.Update(runes("d"))
	got, ok := exec(cmd).(ConfirmDeleteMsg)
	if !ok {
		t.Fatalf("expected ConfirmDeleteMsg, got %T", exec(cmd))
	}
	if got.User.ID != 1700000000000 {
		t.Errorf("user = %d, want the local user", got.User.ID)
	}

	m.Update(runes("j"))
	if _, cmd := m.Update(runes("d")); cmd != nil {
		t.Errorf("delete on a remote user should do nothing, got %T", exec(cmd))
	}
}

func TestPageModel_CrumbKeys(t *testing.T) {
	m := NewPageModel("")
	m.SetPage(todosPage(3, false))

	_, cmd := m.Update(runes("1"))
	got, ok := exec(cmd).(NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", exec(cmd))
	}
	if got.Fragment != "#users" {
		t.Errorf("fragment = %q, want #users", got.Fragment)
	}

	if _, cmd := m.Update(runes("5")); cmd != nil {
		t.Errorf("crumb past the end should do nothing, got %T", exec(cmd))
	}
}

func TestPageModel_SearchEmitsQueryChanges(t *testing.T) {
	m := NewPageModel("")
	m.SetPage(usersPage())

	m.Update(runes("/"))
	if !m.Capturing() {
		t.Fatal("expected search to capture keys")
	}

	_, cmd := m.Update(runes("a"))
	var found bool
	for _, msg := range flatten(cmd) {
		if q, ok := msg.(QueryChangedMsg); ok && q.Query == "a" {
			found = true
		}
	}
	if !found {
		t.Error("expected QueryChangedMsg{a}")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() {
		t.Error("esc should return focus to the list")
	}
	if m.Query() != "a" {
		t.Errorf("query = %q, want it kept after esc", m.Query())
	}
}

func TestPageModel_TodoFormOnlyForLocalUsers(t *testing.T) {
	m := NewPageModel("")
	m.SetPage(todosPage(3, false))
	m.Update(runes("n"))
	if m.Capturing() {
		t.Fatal("remote todos must not open the form")
	}

	m.SetPage(todosPage(1700000000000, true))
	m.Update(runes("n"))
	if !m.Capturing() {
		t.Fatal("local todos should open the form")
	}
	for _, r := range "pay rent" {
		m.Update(runes(string(r)))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := exec(cmd).(CreateTodoMsg)
	if !ok {
		t.Fatalf("expected CreateTodoMsg, got %T", exec(cmd))
	}
	want := CreateTodoMsg{UserID: 1700000000000, Title: "pay rent"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("msg mismatch (-want +got):\n%s", diff)
	}
}

func TestPageModel_UserFormKeepsValuesOnEsc(t *testing.T) {
	m := NewPageModel("")
	m.SetPage(usersPage())

	m.Update(runes("n"))
	for _, r := range "Grace" {
		m.Update(runes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() {
		t.Fatal("esc should blur the form")
	}

	m.Update(runes("n"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "grace@example.com" {
		m.Update(runes(string(r)))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := exec(cmd).(CreateUserMsg)
	if !ok {
		t.Fatalf("expected CreateUserMsg, got %T", exec(cmd))
	}
	want := CreateUserMsg{Name: "Grace", Email: "grace@example.com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("msg mismatch (-want +got):\n%s", diff)
	}

	m.ResetForm(UserForm)
	if v := m.userForm.Value(0); v != "" {
		t.Errorf("name after reset = %q, want empty", v)
	}
}

func TestPageModel_ResetFormLeavesOtherFormAlone(t *testing.T) {
	tests := []struct {
		name      string
		form      Form
		wantName  string
		wantTitle string
	}{
		{"user form", UserForm, "", "walk dog"},
		{"todo form", TodoForm, "Grace", ""},
		{"no form", NoForm, "Grace", "walk dog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPageModel("")
			m.userForm.SetValue(0, "Grace")
			m.todoForm.SetValue(0, "walk dog")

			m.ResetForm(tt.form)

			if got := m.userForm.Value(0); got != tt.wantName {
				t.Errorf("user name = %q, want %q", got, tt.wantName)
			}
			if got := m.todoForm.Value(0); got != tt.wantTitle {
				t.Errorf("todo title = %q, want %q", got, tt.wantTitle)
			}
		})
	}
}

func TestPageModel_IsTeaModel(t *testing.T) {
	var m tea.Model = NewPageModel("")
	if cmd := m.Init(); cmd != nil {
		t.Errorf("Init() = %v, want nil", cmd)
	}
}

func TestPageModel_SetPageKeepsCursorOnSameFragment(t *testing.T) {
	m := NewPageModel("")
	m.SetPage(usersPage())
	m.Update(runes("j"))
	m.Update(runes("j"))

	m.SetPage(usersPage())
	if row, _ := m.Selected(); row.User.Name != "Ervin Howell" {
		t.Errorf("selected %q after reload, want Ervin Howell", row.User.Name)
	}

	m.SetPage(todosPage(1, false))
	if m.paginator.Cursor() != 0 {
		t.Errorf("cursor = %d after navigating, want 0", m.paginator.Cursor())
	}
}

func TestPageModel_ViewShowsSectionsAndTodoState(t *testing.T) {
	m := NewPageModel("")
	m.SetSize(120, 40)

	p := usersPage()
	p.Users.Remote = nil
	m.SetPage(p)
	view := m.View()
	for _, want := range []string{"Local users", "Remote users", "Ada", "(local)"} {
		if !strings.Contains(view, want) {
			t.Errorf("users view missing %q", want)
		}
	}

	m.SetPage(todosPage(1700000000000, true))
	view = m.View()
	for _, want := range []string{"buy milk", "✅", "walk dog", "✗", "Todos of user 1700000000000"} {
		if !strings.Contains(view, want) {
			t.Errorf("todos view missing %q", want)
		}
	}
}

func TestPageModel_ViewSanitizesText(t *testing.T) {
	m := NewPageModel("")
	p := usersPage()
	p.Users.Remote[0].Name = "evil\x1b[2Jname"
	m.SetPage(p)

	if strings.Contains(m.View(), "\x1b[2J") {
		t.Error("escape sequence from data reached the screen")
	}
}

func TestDeleteModel_ConfirmAndCancel(t *testing.T) {
	m := NewDeleteModel()
	m.SetTarget(domain.User{ID: 1700000000000, Name: "Ada", Local: true})

	_, cmd := m.Update(runes("y"))
	if got, ok := exec(cmd).(DeleteUserMsg); !ok || got.UserID != 1700000000000 {
		t.Errorf("y = %#v, want DeleteUserMsg for the target", exec(cmd))
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := exec(cmd).(SwitchToPageMsg); !ok {
		t.Errorf("esc = %T, want SwitchToPageMsg", exec(cmd))
	}
}

func TestGotoModel_NormalizesFragment(t *testing.T) {
	m := NewGotoModel()
	m.Open("")
	for _, r := range "users#posts?userId=2" {
		m.Update(runes(string(r)))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := exec(cmd).(NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", exec(cmd))
	}
	if want := "#users#posts?userId=2"; got.Fragment != want {
		t.Errorf("fragment = %q, want %q", got.Fragment, want)
	}
}

func TestHighlight(t *testing.T) {
	if got := Highlight("Leanne", ""); got != "Leanne" {
		t.Errorf("empty query changed text: %q", got)
	}
	if got := Highlight("Leanne", "zz"); got != "Leanne" {
		t.Errorf("no match changed text: %q", got)
	}
	if got := Highlight("Leanne", "ANN"); !strings.Contains(got, "ann") {
		t.Errorf("match lost original text: %q", got)
	}
}

func TestHighlight_MixedWidthCaseMappings(t *testing.T) {
	// ẞ shrinks by a byte when lowercased and Ⱥ grows by one, so the total
	// length stays the same while the offsets shift.
	text := "ẞȺ ada"
	got := Highlight(text, "ADA")
	if !utf8.ValidString(got) {
		t.Fatalf("highlight split a character: %q", got)
	}
	if !strings.HasPrefix(got, "ẞȺ ") {
		t.Errorf("prefix mangled: %q", got)
	}
	if !strings.Contains(got, "ada") {
		t.Errorf("match lost original text: %q", got)
	}

	if got := Highlight("ẞtraße", "ß"); !strings.Contains(got, "ẞ") || !strings.Contains(got, "traße") || !utf8.ValidString(got) {
		t.Errorf("Highlight(ẞtraße, ß) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"héllo", 3, "hé…"},
		{"hello", 0, "hello"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

// flatten runs cmd and every command of a batch it expands to. Cursor blink
// commands block for about half a second before returning.
func flatten(cmd tea.Cmd) []tea.Msg {
	msg := exec(cmd)
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, exec(c))
	}
	return out
}
