// Package feed assembles author-joined post feeds and validates new posts.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/memohai/chirp/internal/directory"
	"github.com/memohai/chirp/internal/identity"
	"github.com/memohai/chirp/internal/posts"
)

// FeedLimit caps every listing.
const FeedLimit = 100

var errAuthorNotFound = errors.New("author not found")

// Author is the public author of a feed entry. Username is always set.
type Author struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// FeedEntry is a post joined with its author.
type FeedEntry struct {
	Post   posts.Post `json:"post"`
	Author Author     `json:"author"`
}

// Service joins posts with directory records.
type Service struct {
	store     posts.Store
	directory directory.Directory
	logger    *slog.Logger
}

func NewService(log *slog.Logger, store posts.Store, dir directory.Directory) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:     store,
		directory: dir,
		logger:    log.With(slog.String("service", "feed")),
	}
}

// ListRecentPosts returns the newest posts with their authors.
// Any post whose author cannot be resolved fails the whole call.
func (s *Service) ListRecentPosts(ctx context.Context) ([]FeedEntry, error) {
	items, err := s.store.ListRecent(ctx, FeedLimit)
	if err != nil {
		return nil, s.internal("list recent posts", err)
	}
	return s.join(ctx, items)
}

// ListPostsByAuthor returns userID's newest posts with their author.
func (s *Service) ListPostsByAuthor(ctx context.Context, userID string) ([]FeedEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, &ValidationError{Field: "userId", Message: "User id is required."}
	}
	if err := identity.ValidateUserID(userID); err != nil {
		return nil, &ValidationError{Field: "userId", Message: "User id is invalid."}
	}
	items, err := s.store.ListByAuthor(ctx, userID, FeedLimit)
	if err != nil {
		return nil, s.internal("list posts by author", err)
	}
	sortNewestFirst(items)
	return s.join(ctx, items)
}

// CreatePost stores content for authorID, the caller's session identity.
// A missing identity is rejected before content is looked at.
func (s *Service) CreatePost(ctx context.Context, authorID, content string) (posts.Post, error) {
	if strings.TrimSpace(authorID) == "" {
		return posts.Post{}, newError(ErrUnauthorized, "sign in to post", nil)
	}
	if err := ValidateContent(content); err != nil {
		return posts.Post{}, err
	}
	post, err := s.store.Create(ctx, authorID, content)
	if err != nil {
		return posts.Post{}, s.internal("create post", err)
	}
	return post, nil
}

// GetPost returns a single post joined with its author.
func (s *Service) GetPost(ctx context.Context, postID string) (FeedEntry, error) {
	post, err := s.store.Get(ctx, strings.TrimSpace(postID))
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			return FeedEntry{}, newError(ErrNotFound, "Post not found.", err)
		}
		return FeedEntry{}, s.internal("get post", err)
	}
	entries, err := s.join(ctx, []posts.Post{post})
	if err != nil {
		return FeedEntry{}, err
	}
	return entries[0], nil
}

// GetProfileByUsername resolves a username to its public profile.
func (s *Service) GetProfileByUsername(ctx context.Context, username string) (directory.AuthorSummary, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return directory.AuthorSummary{}, &ValidationError{Field: "username", Message: "Username is required."}
	}
	records, err := s.directory.ListByUsername(ctx, username)
	if err != nil {
		return directory.AuthorSummary{}, s.internal("lookup username", err)
	}
	if len(records) == 0 {
		return directory.AuthorSummary{}, newError(ErrNotFound, fmt.Sprintf("User with the username %s is not found.", username), nil)
	}
	return records[0].Summary(), nil
}

func (s *Service) join(ctx context.Context, items []posts.Post) ([]FeedEntry, error) {
	if len(items) == 0 {
		return []FeedEntry{}, nil
	}
	ids := distinctAuthorIDs(items)
	if len(ids) > directory.MaxBatchSize {
		return nil, s.internal("resolve authors", fmt.Errorf("%d distinct authors exceeds batch size %d", len(ids), directory.MaxBatchSize))
	}
	records, err := s.directory.ListByIDs(ctx, ids, directory.MaxBatchSize)
	if err != nil {
		return nil, s.internal("resolve authors", err)
	}
	authors := make(map[string]directory.AuthorSummary, len(records))
	for _, rec := range records {
		authors[rec.ID] = rec.Summary()
	}

	entries := make([]FeedEntry, 0, len(items))
	for _, post := range items {
		author, ok := authors[post.AuthorID]
		if !ok || author.Username == nil || *author.Username == "" {
			return nil, s.internal("resolve authors", fmt.Errorf("%w: post %s author %s", errAuthorNotFound, post.ID, post.AuthorID))
		}
		entries = append(entries, FeedEntry{
			Post: post,
			Author: Author{
				ID:              author.ID,
				Username:        *author.Username,
				ProfileImageURL: author.ProfileImageURL,
			},
		})
	}
	return entries, nil
}

func (s *Service) internal(op string, err error) error {
	s.logger.Error(op+" failed", slog.Any("error", err))
	return newError(ErrInternal, op, err)
}

func distinctAuthorIDs(items []posts.Post) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, post := range items {
		if _, ok := seen[post.AuthorID]; ok {
			continue
		}
		seen[post.AuthorID] = struct{}{}
		ids = append(ids, post.AuthorID)
	}
	return ids
}

func sortNewestFirst(items []posts.Post) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}
