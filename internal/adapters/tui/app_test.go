package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zaptest"

	"jsonbrowse/internal/adapters/tui/views"
	"jsonbrowse/internal/application"
	"jsonbrowse/internal/domain"
)

type fakeRemote struct{}

func (fakeRemote) FetchUsers(ctx context.Context) ([]domain.User, error) {
	return []domain.User{
		{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
		{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"},
	}, nil
}

func (fakeRemote) FetchTodos(ctx context.Context, userID int64) ([]domain.Todo, error) {
	return []domain.Todo{{ID: 1, UserID: userID, Title: "delectus aut autem"}}, nil
}

func (fakeRemote) FetchPosts(ctx context.Context, userID int64) ([]domain.Post, error) {
	return []domain.Post{{ID: 1, UserID: userID, Title: "sunt aut facere", Body: "quia et suscipit"}}, nil
}

func (fakeRemote) FetchComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	return nil, nil
}

type memStore struct {
	mu    sync.Mutex
	users []domain.User
}

func (s *memStore) LoadUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneUsers(s.users), nil
}

func (s *memStore) SaveUsers(ctx context.Context, users []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = domain.CloneUsers(users)
	return nil
}

func (s *memStore) UpdateUsers(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(domain.CloneUsers(s.users))
	if err != nil {
		return err
	}
	s.users = next
	return nil
}

func newTestApp(t *testing.T, opts Options) (*App, *memStore) {
	t.Helper()
	store := &memStore{users: []domain.User{
		{ID: 1700000000000, Name: "Ada", Email: "ada@example.com", Local: true, Todos: []domain.Todo{}},
	}}
	opts.Logger = zaptest.NewLogger(t)
	app := NewApp(application.NewRenderer(fakeRemote{}, store, opts.Logger), store, opts)
	t.Cleanup(app.Close)
	return app, store
}

// drive runs cmd and feeds the messages it produces back into the app until
// nothing is left. Only messages the app reacts to are fed back; cursor
// blinks and other timers are abandoned after a short wait.
func drive(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		ch := make(chan tea.Msg, 1)
		go func() { ch <- next() }()
		var msg tea.Msg
		select {
		case msg = <-ch:
		case <-time.After(100 * time.Millisecond):
			continue
		}

		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case PageMsg, FragmentChangedMsg, mutationDoneMsg, openedMsg,
			views.OpenRemoteMsg,
			views.NavigateMsg, views.BackMsg, views.ForwardMsg,
			views.QueryChangedMsg, views.ReloadMsg, views.CopyFragmentMsg,
			views.CreateUserMsg, views.CreateTodoMsg, views.DeleteUserMsg,
			views.ConfirmDeleteMsg, views.SwitchToPageMsg, views.SwitchToGotoMsg,
			views.SwitchToHelpMsg:
			_, c := app.Update(msg)
			queue = append(queue, c)
		}
	}
}

func send(t *testing.T, app *App, msg tea.Msg) {
	t.Helper()
	_, cmd := app.Update(msg)
	drive(t, app, cmd)
}

func typeText(t *testing.T, app *App, s string) {
	t.Helper()
	for _, r := range s {
		send(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestApp_InitRendersUsers(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	drive(t, app, app.Init())

	p := app.page.Page()
	if p == nil || p.Users == nil {
		t.Fatal("expected the users page")
	}
	if len(p.Users.Local) != 1 || len(p.Users.Remote) != 2 {
		t.Errorf("local=%d remote=%d, want 1 and 2", len(p.Users.Local), len(p.Users.Remote))
	}
	if app.Fragment() != "#users" {
		t.Errorf("fragment = %q, want #users", app.Fragment())
	}
}

func TestApp_NavigateBackForward(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	drive(t, app, app.Init())

	send(t, app, views.NavigateMsg{Fragment: domain.PostsFragment(1)})
	if p := app.page.Page(); p.Posts == nil || len(p.Posts.Posts) != 1 {
		t.Fatalf("expected posts page, got %+v", p.Target)
	}

	send(t, app, views.BackMsg{})
	if p := app.page.Page(); p.Users == nil {
		t.Errorf("back should show users, got view %v", p.Target.View)
	}

	send(t, app, views.ForwardMsg{})
	if app.Fragment() != "#users#posts?userId=1" {
		t.Errorf("fragment = %q after forward", app.Fragment())
	}
}

func TestApp_DropsStalePages(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	stale := app.render()
	fresh := app.render()

	drive(t, app, fresh)
	want := app.page.Page().Generation

	app.Update(stale())
	if got := app.page.Page().Generation; got != want {
		t.Errorf("stale page displayed: generation %d, want %d", got, want)
	}
}

func TestApp_QueryFiltersListing(t *testing.T) {
	app, _ := newTestApp(t, Options{Query: "ERVIN"})
	drive(t, app, app.Init())

	p := app.page.Page()
	if len(p.Users.Remote) != 1 || p.Users.Remote[0].Name != "Ervin Howell" {
		t.Errorf("remote = %+v, want only Ervin", p.Users.Remote)
	}
	if len(p.Users.Local) != 0 {
		t.Errorf("local = %+v, want none", p.Users.Local)
	}
}

func TestApp_CreateUserReRenders(t *testing.T) {
	app, store := newTestApp(t, Options{})
	drive(t, app, app.Init())

	send(t, app, views.CreateUserMsg{Name: "Grace", Email: "grace@example.com"})

	if len(store.users) != 2 {
		t.Fatalf("store has %d users, want 2", len(store.users))
	}
	if got := len(app.page.Page().Users.Local); got != 2 {
		t.Errorf("page shows %d local users, want 2", got)
	}
	if !strings.Contains(app.page.Message, "Created local user") || app.page.MessageErr {
		t.Errorf("message = %q (err=%v)", app.page.Message, app.page.MessageErr)
	}
}

func TestApp_InvalidCreateIsSilent(t *testing.T) {
	app, store := newTestApp(t, Options{})
	drive(t, app, app.Init())

	send(t, app, views.CreateUserMsg{Name: "", Email: "x@example.com"})

	if len(store.users) != 1 {
		t.Errorf("store changed: %d users", len(store.users))
	}
	if app.page.Message != "" {
		t.Errorf("expected no message, got %q", app.page.Message)
	}
}

func TestApp_CreateTodoThroughKeys(t *testing.T) {
	app, store := newTestApp(t, Options{Fragment: domain.TodosFragment(1700000000000)})
	drive(t, app, app.Init())

	typeText(t, app, "n")
	typeText(t, app, "pay rent")
	send(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	todos := store.users[0].Todos
	if len(todos) != 1 || todos[0].Title != "pay rent" {
		t.Fatalf("todos = %+v", todos)
	}
	if got := app.page.Page().Todos.Todos; len(got) != 1 {
		t.Errorf("page shows %d todos, want 1", len(got))
	}
}

func TestApp_DeleteFlow(t *testing.T) {
	app, store := newTestApp(t, Options{})
	drive(t, app, app.Init())

	typeText(t, app, "d")
	if app.state != ViewConfirm {
		t.Fatalf("state = %v, want confirm", app.state)
	}
	typeText(t, app, "y")

	if app.state != ViewPage {
		t.Errorf("state = %v, want page", app.state)
	}
	if len(store.users) != 0 {
		t.Errorf("store still has %d users", len(store.users))
	}
	if got := len(app.page.Page().Users.Local); got != 0 {
		t.Errorf("page still shows %d local users", got)
	}
}

func TestApp_DeleteVanishedUserIsNoop(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	drive(t, app, app.Init())

	send(t, app, views.DeleteUserMsg{UserID: 1700000000999})
	if app.page.MessageErr {
		t.Errorf("unexpected error message %q", app.page.Message)
	}
}

func TestApp_CopyFragment(t *testing.T) {
	var copied string
	app, _ := newTestApp(t, Options{
		Fragment:  "#users#todos?userId=2",
		Clipboard: func(s string) error { copied = s; return nil },
	})
	send(t, app, views.CopyFragmentMsg{})
	if copied != "#users#todos?userId=2" {
		t.Errorf("copied %q", copied)
	}

	app.copy = func(string) error { return errors.New("no clipboard") }
	send(t, app, views.CopyFragmentMsg{})
	if !app.page.MessageErr {
		t.Error("expected a copy error to be shown")
	}
}

func TestApp_GotoNavigates(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	drive(t, app, app.Init())

	typeText(t, app, "g")
	if app.state != ViewGoto {
		t.Fatalf("state = %v, want goto", app.state)
	}
	// The input is prefilled with the current fragment
	send(t, app, tea.KeyMsg{Type: tea.KeyCtrlU})
	typeText(t, app, "users#todos?userId=2")
	send(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	if app.state != ViewPage {
		t.Errorf("state = %v, want page", app.state)
	}
	if app.Fragment() != "#users#todos?userId=2" {
		t.Errorf("fragment = %q", app.Fragment())
	}
}

func TestApp_StoreChangedReRenders(t *testing.T) {
	app, store := newTestApp(t, Options{})
	drive(t, app, app.Init())

	store.SaveUsers(context.Background(), nil)
	send(t, app, StoreChangedMsg{})

	if got := len(app.page.Page().Users.Local); got != 0 {
		t.Errorf("page shows %d local users after external delete", got)
	}
}

func TestApp_OpenRemote(t *testing.T) {
	var opened domain.NavigationTarget
	app, _ := newTestApp(t, Options{
		Fragment: "#users#posts?userId=4",
		OpenRemote: func(target domain.NavigationTarget) (string, error) {
			opened = target
			return "https://example.com/posts?userId=4", nil
		},
	})
	drive(t, app, app.Init())

	typeText(t, app, "o")
	if opened.View != domain.ViewPosts || !opened.UserID.Is(4) {
		t.Errorf("opened %+v, want posts of user 4", opened)
	}
	if !strings.Contains(app.page.Message, "example.com/posts") {
		t.Errorf("message = %q", app.page.Message)
	}
}
