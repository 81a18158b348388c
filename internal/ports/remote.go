package ports

import (
	"context"

	"jsonbrowse/internal/domain"
)

// RemoteClient fetches read-only collections from the remote API.
// Filter arguments map to the userId / postId query parameters.
type RemoteClient interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
	FetchTodos(ctx context.Context, userID int64) ([]domain.Todo, error)
	FetchPosts(ctx context.Context, userID int64) ([]domain.Post, error)
	FetchComments(ctx context.Context, postID int64) ([]domain.Comment, error)
}
