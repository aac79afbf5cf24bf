package handlers

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"

	"github.com/memohai/chirp/internal/accounts"
	"github.com/memohai/chirp/internal/auth"
	"github.com/memohai/chirp/internal/db/sqlc"
	"github.com/memohai/chirp/internal/directory"
	"github.com/memohai/chirp/internal/feed"
	"github.com/memohai/chirp/internal/posts"
)

const testSecret = "handler-test-secret"

// memUsers backs both the accounts service and the local directory.
type memUsers struct {
	mu   sync.Mutex
	rows []sqlc.User
}

func (m *memUsers) CreateUser(_ context.Context, arg sqlc.CreateUserParams) (sqlc.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Username == arg.Username {
			return sqlc.User{}, &pgconn.PgError{Code: "23505"}
		}
	}
	row := sqlc.User{
		ID:              pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Username:        arg.Username,
		PasswordHash:    arg.PasswordHash,
		ProfileImageUrl: arg.ProfileImageUrl,
		CreatedAt:       pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	m.rows = append(m.rows, row)
	return row, nil
}

func (m *memUsers) GetUserByID(_ context.Context, id pgtype.UUID) (sqlc.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return sqlc.User{}, pgx.ErrNoRows
}

func (m *memUsers) GetUserByUsername(_ context.Context, username pgtype.Text) (sqlc.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Username == username {
			return row, nil
		}
	}
	return sqlc.User{}, pgx.ErrNoRows
}

func (m *memUsers) UpdateUserLastLogin(ctx context.Context, id pgtype.UUID) (sqlc.User, error) {
	return m.GetUserByID(ctx, id)
}

func (m *memUsers) ListUsersByIDs(_ context.Context, arg sqlc.ListUsersByIDsParams) ([]sqlc.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sqlc.User
	for _, row := range m.rows {
		for _, id := range arg.Ids {
			if row.ID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

type memPosts struct {
	mu    sync.Mutex
	items []posts.Post
	clock time.Time
}

func (m *memPosts) Create(_ context.Context, authorID, content string) (posts.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	p := posts.Post{ID: uuid.NewString(), AuthorID: authorID, Content: content, CreatedAt: m.clock}
	m.items = append(m.items, p)
	return p, nil
}

func (m *memPosts) list(filter func(posts.Post) bool, limit int) []posts.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []posts.Post{}
	for _, p := range m.items {
		if filter(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *memPosts) ListRecent(_ context.Context, limit int) ([]posts.Post, error) {
	return m.list(func(posts.Post) bool { return true }, limit), nil
}

func (m *memPosts) ListByAuthor(_ context.Context, authorID string, limit int) ([]posts.Post, error) {
	return m.list(func(p posts.Post) bool { return p.AuthorID == authorID }, limit), nil
}

func (m *memPosts) Get(_ context.Context, id string) (posts.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return posts.Post{}, posts.ErrPostNotFound
}

type testEnv struct {
	echo     *echo.Echo
	users    *memUsers
	posts    *memPosts
	accounts *accounts.Service
}

// newTestEnv wires real services over in-memory storage. Tokens are verified
// when present; anonymous requests reach the handlers.
func newTestEnv() *testEnv {
	log := slog.Default()
	users := &memUsers{}
	store := &memPosts{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	accountService := accounts.NewService(log, users)
	feedService := feed.NewService(log, store, directory.NewLocalDirectory(log, users))

	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Use(auth.JWTMiddleware(testSecret, func(c echo.Context) bool {
		return c.Request().Header.Get(echo.HeaderAuthorization) == ""
	}))
	NewPingHandler(log).Register(e)
	NewAuthHandler(log, accountService, testSecret, time.Hour).Register(e)
	NewPostsHandler(log, feedService).Register(e)
	NewProfileHandler(log, feedService).Register(e)

	return &testEnv{echo: e, users: users, posts: store, accounts: accountService}
}
