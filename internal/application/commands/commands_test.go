package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"jsonbrowse/internal/application"
	"jsonbrowse/internal/domain"
)

// memStore is an in-memory LocalStore
type memStore struct {
	users   []domain.User
	saveErr error
	writes  int
}

func (s *memStore) LoadUsers(ctx context.Context) ([]domain.User, error) {
	return domain.CloneUsers(s.users), nil
}

func (s *memStore) SaveUsers(ctx context.Context, users []domain.User) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.writes++
	s.users = domain.CloneUsers(users)
	return nil
}

func (s *memStore) UpdateUsers(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) error {
	next, err := fn(domain.CloneUsers(s.users))
	if err != nil {
		return err
	}
	return s.SaveUsers(ctx, next)
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func seededStore() *memStore {
	return &memStore{users: []domain.User{
		{ID: 100, Name: "Ada", Email: "ada@example.com", Local: true, Todos: []domain.Todo{
			{ID: 1000, Title: "first", Local: true},
		}},
		{ID: 200, Name: "Bob", Email: "bob@example.com", Local: true, Todos: []domain.Todo{
			{ID: 2000, Title: "bob's", Local: true},
			{ID: 2001, Title: "bob's other", Completed: true, Local: true},
		}},
	}}
}

func TestCreateUserCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		email   string
		wantErr string
	}{
		{"valid", "Ada", "ada@example.com", ""},
		{"empty name", "", "ada@example.com", "name is required"},
		{"whitespace name", "   ", "ada@example.com", "name is required"},
		{"empty email", "Ada", "", "email is required"},
		{"whitespace email", "Ada", "\t", "email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCreateUserCommand(&memStore{}, tt.user, tt.email).Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if !application.IsValidation(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestCreateUserCommand_Execute(t *testing.T) {
	store := seededStore()
	cmd := NewCreateUserCommand(store, "  Carol ", " carol@example.com")
	cmd.Now = fixedClock(1700000000000)

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.User{ID: 1700000000000, Name: "Carol", Email: "carol@example.com", Local: true, Todos: []domain.Todo{}}
	if diff := cmp.Diff(want, result.User); diff != "" {
		t.Errorf("created user mismatch (-want +got):\n%s", diff)
	}
	if len(store.users) != 3 || store.users[2].ID != want.ID {
		t.Errorf("store not appended: %+v", store.users)
	}
	if store.writes != 1 {
		t.Errorf("expected one write, got %d", store.writes)
	}
}

func TestCreateUserCommand_SameMillisecondGetsDistinctIDs(t *testing.T) {
	store := &memStore{}
	clock := fixedClock(1700000000000)

	for range 3 {
		cmd := NewCreateUserCommand(store, "Same", "same@example.com")
		cmd.Now = clock
		if _, err := cmd.Execute(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	seen := map[int64]bool{}
	for _, u := range store.users {
		if seen[u.ID] {
			t.Fatalf("duplicate id %d", u.ID)
		}
		seen[u.ID] = true
	}
}

func TestCreateUserCommand_InvalidDoesNotWrite(t *testing.T) {
	store := seededStore()
	if _, err := NewCreateUserCommand(store, "", "x@example.com").Execute(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	if store.writes != 0 {
		t.Errorf("store written on invalid input")
	}
}

func TestCreateTodoCommand_AppendsOnlyToOwner(t *testing.T) {
	store := seededStore()
	before := domain.CloneUsers(store.users)

	cmd := NewCreateTodoCommand(store, 100, " buy milk ")
	cmd.Now = fixedClock(1700000000000)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ada, _ := domain.FindUser(store.users, 100)
	if len(ada.Todos) != len(before[0].Todos)+1 {
		t.Fatalf("expected %d todos, got %d", len(before[0].Todos)+1, len(ada.Todos))
	}
	last := ada.Todos[len(ada.Todos)-1]
	want := domain.Todo{ID: 1700000000000, Title: "buy milk", Local: true}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Errorf("appended todo mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, result.Todo); diff != "" {
		t.Errorf("result todo mismatch (-want +got):\n%s", diff)
	}

	bob, _ := domain.FindUser(store.users, 200)
	if diff := cmp.Diff(before[1], bob); diff != "" {
		t.Errorf("other user's todos changed (-before +after):\n%s", diff)
	}
}

func TestCreateTodoCommand_UnknownUser(t *testing.T) {
	store := seededStore()
	_, err := NewCreateTodoCommand(store, 999, "orphan").Execute(context.Background())

	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if store.writes != 0 {
		t.Error("store written for unknown user")
	}
}

func TestCreateTodoCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		title   string
		wantErr string
	}{
		{"valid", 1, "title", ""},
		{"zero user", 0, "title", "invalid ID"},
		{"negative user", -4, "title", "invalid ID"},
		{"empty title", 1, " ", "title is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCreateTodoCommand(&memStore{}, tt.userID, tt.title).Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDeleteUserCommand_RemovesExactlyOne(t *testing.T) {
	store := seededStore()

	result, err := NewDeleteUserCommand(store, 100).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DeletedID != 100 {
		t.Errorf("DeletedID = %d", result.DeletedID)
	}

	want := seededStore().users[1:]
	if diff := cmp.Diff(want, store.users); diff != "" {
		t.Errorf("remaining users mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteUserCommand_UnknownUser(t *testing.T) {
	store := seededStore()
	_, err := NewDeleteUserCommand(store, 300).Execute(context.Background())

	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(store.users) != 2 || store.writes != 0 {
		t.Errorf("store changed on unknown delete: %+v", store.users)
	}
}

func TestDeleteUserCommand_WriteFailureSurfaces(t *testing.T) {
	store := seededStore()
	store.saveErr = errors.New("disk full")

	_, err := NewDeleteUserCommand(store, 100).Execute(context.Background())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected write error, got %v", err)
	}
}
