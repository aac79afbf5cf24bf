package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/memohai/chirp/internal/db"
	"github.com/memohai/chirp/internal/db/sqlc"
)

// Queries is the subset of sqlc queries backing the Postgres store.
type Queries interface {
	CreatePost(ctx context.Context, arg sqlc.CreatePostParams) (sqlc.Post, error)
	GetPostByID(ctx context.Context, id pgtype.UUID) (sqlc.Post, error)
	ListRecentPosts(ctx context.Context, limit int32) ([]sqlc.Post, error)
	ListPostsByAuthor(ctx context.Context, arg sqlc.ListPostsByAuthorParams) ([]sqlc.Post, error)
}

// Service is the Postgres post store.
type Service struct {
	queries Queries
	logger  *slog.Logger
}

func NewService(log *slog.Logger, queries Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		logger:  log.With(slog.String("service", "posts")),
	}
}

func (s *Service) Create(ctx context.Context, authorID, content string) (Post, error) {
	if s.queries == nil {
		return Post{}, ErrStoreNotConfigured
	}
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return Post{}, ErrInvalidAuthor
	}
	row, err := s.queries.CreatePost(ctx, sqlc.CreatePostParams{
		ID:       pgtype.UUID{Bytes: uuid.New(), Valid: true},
		AuthorID: authorID,
		Content:  content,
	})
	if err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	s.logger.Debug("post created", slog.String("post_id", db.UUIDToString(row.ID)), slog.String("author_id", authorID))
	return toPost(row), nil
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]Post, error) {
	if s.queries == nil {
		return nil, ErrStoreNotConfigured
	}
	rows, err := s.queries.ListRecentPosts(ctx, int32(ClampLimit(limit)))
	if err != nil {
		return nil, fmt.Errorf("list recent posts: %w", err)
	}
	return toPosts(rows), nil
}

func (s *Service) ListByAuthor(ctx context.Context, authorID string, limit int) ([]Post, error) {
	if s.queries == nil {
		return nil, ErrStoreNotConfigured
	}
	rows, err := s.queries.ListPostsByAuthor(ctx, sqlc.ListPostsByAuthorParams{
		AuthorID: strings.TrimSpace(authorID),
		Limit:    int32(ClampLimit(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return toPosts(rows), nil
}

func (s *Service) Get(ctx context.Context, id string) (Post, error) {
	if s.queries == nil {
		return Post{}, ErrStoreNotConfigured
	}
	pgID, err := db.ParseUUID(id)
	if err != nil {
		return Post{}, ErrPostNotFound
	}
	row, err := s.queries.GetPostByID(ctx, pgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Post{}, ErrPostNotFound
		}
		return Post{}, fmt.Errorf("get post: %w", err)
	}
	return toPost(row), nil
}

func toPosts(rows []sqlc.Post) []Post {
	items := make([]Post, 0, len(rows))
	for _, row := range rows {
		items = append(items, toPost(row))
	}
	return items
}

func toPost(row sqlc.Post) Post {
	return Post{
		ID:        db.UUIDToString(row.ID),
		AuthorID:  row.AuthorID,
		Content:   row.Content,
		CreatedAt: db.TimeFromPg(row.CreatedAt),
	}
}
