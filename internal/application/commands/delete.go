package commands

import (
	"context"
	"fmt"

	"jsonbrowse/internal/application"
	"jsonbrowse/internal/domain"
	"jsonbrowse/internal/ports"
)

// DeleteUserResult contains the result of a delete operation
type DeleteUserResult struct {
	DeletedID int64
	Message   string
}

// DeleteUserCommand removes a local user and its todos
type DeleteUserCommand struct {
	store  ports.LocalStore
	UserID int64
}

// NewDeleteUserCommand creates a new DeleteUserCommand
func NewDeleteUserCommand(store ports.LocalStore, userID int64) *DeleteUserCommand {
	return &DeleteUserCommand{
		store:  store,
		UserID: userID,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteUserCommand) Validate() error {
	return application.ValidateLocalID("userID", c.UserID)
}

// Execute runs the delete command
func (c *DeleteUserCommand) Execute(ctx context.Context) (*DeleteUserResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	err := c.store.UpdateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		kept := make([]domain.User, 0, len(users))
		for _, u := range users {
			if u.ID != c.UserID {
				kept = append(kept, u)
			}
		}
		if len(kept) == len(users) {
			return nil, &application.UserNotFoundError{UserID: c.UserID}
		}
		return kept, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete user %d: %w", c.UserID, err)
	}

	return &DeleteUserResult{
		DeletedID: c.UserID,
		Message:   fmt.Sprintf("Deleted local user %d", c.UserID),
	}, nil
}
