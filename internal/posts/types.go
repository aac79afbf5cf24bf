// Package posts stores emoji micro-posts.
package posts

import (
	"context"
	"errors"
	"time"
)

// MaxListLimit caps every list query.
const MaxListLimit = 100

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidAuthor      = errors.New("author id is required")
	ErrStoreNotConfigured = errors.New("post store not configured")
)

// Post is a stored micro-post. Posts are immutable once created.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists posts. List results are ordered by CreatedAt descending,
// ties broken by ID descending.
type Store interface {
	Create(ctx context.Context, authorID, content string) (Post, error)
	ListRecent(ctx context.Context, limit int) ([]Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]Post, error)
	Get(ctx context.Context, id string) (Post, error)
}

// ClampLimit bounds limit to (0, MaxListLimit].
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
