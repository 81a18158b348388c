package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jsonbrowse/internal/application"
	"jsonbrowse/internal/domain"
	"jsonbrowse/internal/ports"
)

// CreateUserResult contains the result of creating a local user
type CreateUserResult struct {
	User    domain.User
	Message string
}

// CreateUserCommand appends a user to the local store
type CreateUserCommand struct {
	store ports.LocalStore
	Name  string
	Email string
	Now   func() time.Time
}

// NewCreateUserCommand creates a new CreateUserCommand
func NewCreateUserCommand(store ports.LocalStore, name, email string) *CreateUserCommand {
	return &CreateUserCommand{
		store: store,
		Name:  name,
		Email: email,
		Now:   time.Now,
	}
}

// Validate checks if the create operation is valid
func (c *CreateUserCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	return application.ValidateRequired("email", c.Email)
}

// Execute runs the create user command
func (c *CreateUserCommand) Execute(ctx context.Context) (*CreateUserResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var created domain.User
	err := c.store.UpdateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		ids := make([]int64, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		created = domain.User{
			ID:    domain.NextLocalID(c.Now().UnixMilli(), ids...),
			Name:  strings.TrimSpace(c.Name),
			Email: strings.TrimSpace(c.Email),
			Local: true,
			Todos: []domain.Todo{},
		}
		return append(users, created), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &CreateUserResult{
		User:    created,
		Message: fmt.Sprintf("Created local user %d: %s", created.ID, created.Name),
	}, nil
}

// CreateTodoResult contains the result of creating a todo
type CreateTodoResult struct {
	Todo    domain.Todo
	Message string
}

// CreateTodoCommand appends a todo to a local user's list
type CreateTodoCommand struct {
	store  ports.LocalStore
	UserID int64
	Title  string
	Now    func() time.Time
}

// NewCreateTodoCommand creates a new CreateTodoCommand
func NewCreateTodoCommand(store ports.LocalStore, userID int64, title string) *CreateTodoCommand {
	return &CreateTodoCommand{
		store:  store,
		UserID: userID,
		Title:  title,
		Now:    time.Now,
	}
}

// Validate checks if the create operation is valid
func (c *CreateTodoCommand) Validate() error {
	if err := application.ValidateLocalID("userID", c.UserID); err != nil {
		return err
	}
	return application.ValidateRequired("title", c.Title)
}

// Execute runs the create todo command. Only the owning user's todos change.
func (c *CreateTodoCommand) Execute(ctx context.Context) (*CreateTodoResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var created domain.Todo
	err := c.store.UpdateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := -1
		var ids []int64
		for i, u := range users {
			if u.ID == c.UserID {
				idx = i
			}
			for _, t := range u.Todos {
				ids = append(ids, t.ID)
			}
		}
		if idx < 0 {
			return nil, &application.UserNotFoundError{UserID: c.UserID}
		}

		created = domain.Todo{
			ID:    domain.NextLocalID(c.Now().UnixMilli(), ids...),
			Title: strings.TrimSpace(c.Title),
			Local: true,
		}
		users[idx].Todos = append(users[idx].Todos, created)
		return users, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return &CreateTodoResult{
		Todo:    created,
		Message: fmt.Sprintf("Added todo %d to user %d", created.ID, c.UserID),
	}, nil
}
