package ports

import (
	"context"

	"jsonbrowse/internal/domain"
)

// LocalStore persists locally created users and their nested todos.
// The whole collection is one unit: every write replaces it entirely.
type LocalStore interface {
	// LoadUsers returns all local users. A missing or unparseable collection
	// yields an empty slice and no error; errors mean the store itself failed.
	LoadUsers(ctx context.Context) ([]domain.User, error)

	// SaveUsers replaces the stored collection
	SaveUsers(ctx context.Context, users []domain.User) error

	// UpdateUsers loads, transforms and saves the collection atomically.
	// If fn returns an error nothing is written.
	UpdateUsers(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) error
}

// LocationStore remembers the last visited fragment between runs
type LocationStore interface {
	LoadLocation(ctx context.Context) (string, error)
	SaveLocation(ctx context.Context, fragment string) error
}
