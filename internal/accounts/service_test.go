package accounts

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/chirp/internal/db/sqlc"
)

type fakeQueries struct {
	users   map[string]sqlc.User
	touched int
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{users: map[string]sqlc.User{}}
}

func (f *fakeQueries) CreateUser(_ context.Context, arg sqlc.CreateUserParams) (sqlc.User, error) {
	if _, ok := f.users[arg.Username.String]; ok {
		return sqlc.User{}, &pgconn.PgError{Code: "23505"}
	}
	row := sqlc.User{
		ID:              pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Username:        arg.Username,
		PasswordHash:    arg.PasswordHash,
		ProfileImageUrl: arg.ProfileImageUrl,
		CreatedAt:       pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.users[arg.Username.String] = row
	return row, nil
}

func (f *fakeQueries) GetUserByID(_ context.Context, id pgtype.UUID) (sqlc.User, error) {
	for _, row := range f.users {
		if row.ID == id {
			return row, nil
		}
	}
	return sqlc.User{}, pgx.ErrNoRows
}

func (f *fakeQueries) GetUserByUsername(_ context.Context, username pgtype.Text) (sqlc.User, error) {
	row, ok := f.users[username.String]
	if !ok {
		return sqlc.User{}, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeQueries) UpdateUserLastLogin(_ context.Context, id pgtype.UUID) (sqlc.User, error) {
	for name, row := range f.users {
		if row.ID == id {
			f.touched++
			row.LastLoginAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
			f.users[name] = row
			return row, nil
		}
	}
	return sqlc.User{}, pgx.ErrNoRows
}

func TestRegisterAndLogin(t *testing.T) {
	q := newFakeQueries()
	svc := NewService(slog.Default(), q)
	ctx := context.Background()

	acc, err := svc.Register(ctx, RegisterRequest{
		Username:        "  Alice ",
		Password:        "correct horse",
		ProfileImageURL: "https://img.example.com/alice.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Username)
	assert.NotEmpty(t, acc.ID)
	assert.NotEqual(t, "correct horse", q.users["alice"].PasswordHash)

	logged, err := svc.Login(ctx, "ALICE", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, logged.ID)
	assert.False(t, logged.LastLoginAt.IsZero())
	assert.Equal(t, 1, q.touched)

	got, err := svc.Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/alice.png", got.ProfileImageURL)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(nil, newFakeQueries())
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
		want error
	}{
		{"bad username", RegisterRequest{Username: "a!", Password: "long enough"}, ErrInvalidUsername},
		{"short password", RegisterRequest{Username: "alice", Password: "short"}, ErrInvalidPassword},
		{"long password", RegisterRequest{Username: "alice", Password: strings.Repeat("x", MaxPasswordLength+1)}, ErrInvalidPassword},
		{"bad image url", RegisterRequest{Username: "alice", Password: "long enough", ProfileImageURL: "ftp://x"}, ErrInvalidImageURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(nil, newFakeQueries())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "bob", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Username: "BOB", Password: "password2"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := NewService(nil, newFakeQueries())
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterRequest{Username: "carol", Password: "password1"})
	require.NoError(t, err)

	for _, tc := range []struct{ user, pass string }{
		{"carol", "wrong-pass"},
		{"nobody", "password1"},
		{"", "password1"},
		{"carol", ""},
	} {
		_, err := svc.Login(ctx, tc.user, tc.pass)
		assert.True(t, errors.Is(err, ErrInvalidCredentials), "login(%q) = %v", tc.user, err)
	}
}

func TestGetUnknownAccount(t *testing.T) {
	svc := NewService(nil, newFakeQueries())

	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestNilQueries(t *testing.T) {
	svc := NewService(nil, nil)
	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "password1"})
	assert.Error(t, err)
}

func TestRegisterMaxLengthPassword(t *testing.T) {
	svc := NewService(nil, newFakeQueries())
	ctx := context.Background()
	password := strings.Repeat("x", MaxPasswordLength)

	_, err := svc.Register(ctx, RegisterRequest{Username: "dave", Password: password})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "dave", password)
	assert.NoError(t, err)
}
