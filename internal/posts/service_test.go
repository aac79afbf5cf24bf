package posts

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/chirp/internal/db/sqlc"
)

type fakeQueries struct {
	rows    []sqlc.Post
	clock   time.Time
	limits  []int32
	failErr error
}

func (f *fakeQueries) CreatePost(_ context.Context, arg sqlc.CreatePostParams) (sqlc.Post, error) {
	if f.failErr != nil {
		return sqlc.Post{}, f.failErr
	}
	f.clock = f.clock.Add(time.Second)
	row := sqlc.Post{
		ID:        arg.ID,
		AuthorID:  arg.AuthorID,
		Content:   arg.Content,
		CreatedAt: pgtype.Timestamptz{Time: f.clock, Valid: true},
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeQueries) GetPostByID(_ context.Context, id pgtype.UUID) (sqlc.Post, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return sqlc.Post{}, pgx.ErrNoRows
}

func (f *fakeQueries) sorted(filter func(sqlc.Post) bool, limit int32) []sqlc.Post {
	var out []sqlc.Post
	for _, row := range f.rows {
		if filter(row) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Time.After(out[j].CreatedAt.Time)
	})
	if int32(len(out)) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeQueries) ListRecentPosts(_ context.Context, limit int32) ([]sqlc.Post, error) {
	f.limits = append(f.limits, limit)
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.sorted(func(sqlc.Post) bool { return true }, limit), nil
}

func (f *fakeQueries) ListPostsByAuthor(_ context.Context, arg sqlc.ListPostsByAuthorParams) ([]sqlc.Post, error) {
	f.limits = append(f.limits, arg.Limit)
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.sorted(func(p sqlc.Post) bool { return p.AuthorID == arg.AuthorID }, arg.Limit), nil
}

func TestCreateAndGet(t *testing.T) {
	q := &fakeQueries{clock: time.Unix(1700000000, 0)}
	svc := NewService(nil, q)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user_1", "🎉🔥")
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "user_1", created.AuthorID)
	assert.Equal(t, "🎉🔥", created.Content)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateRequiresAuthor(t *testing.T) {
	q := &fakeQueries{}
	_, err := NewService(nil, q).Create(context.Background(), "  ", "🎉")
	assert.ErrorIs(t, err, ErrInvalidAuthor)
	assert.Empty(t, q.rows)
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(nil, &fakeQueries{})
	_, err := svc.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListOrderingAndLimits(t *testing.T) {
	q := &fakeQueries{clock: time.Unix(1700000000, 0)}
	svc := NewService(nil, q)
	ctx := context.Background()
	for _, author := range []string{"a", "b", "a"} {
		_, err := svc.Create(ctx, author, "😀")
		require.NoError(t, err)
	}

	recent, err := svc.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.True(t, recent[0].CreatedAt.After(recent[1].CreatedAt))
	assert.True(t, recent[1].CreatedAt.After(recent[2].CreatedAt))

	mine, err := svc.ListByAuthor(ctx, "a", 500)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a", mine[0].AuthorID)

	assert.Equal(t, []int32{MaxListLimit, MaxListLimit}, q.limits)
}

func TestListEmptyIsNotNil(t *testing.T) {
	items, err := NewService(nil, &fakeQueries{}).ListByAuthor(context.Background(), "ghost", 10)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestStoreErrorsWrapped(t *testing.T) {
	boom := errors.New("pool closed")
	svc := NewService(nil, &fakeQueries{failErr: boom})
	_, err := svc.ListRecent(context.Background(), 10)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Create(context.Background(), "a", "😀")
	assert.ErrorIs(t, err, boom)
}

func TestNotConfigured(t *testing.T) {
	_, err := NewService(nil, nil).ListRecent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrStoreNotConfigured)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, MaxListLimit, ClampLimit(0))
	assert.Equal(t, MaxListLimit, ClampLimit(-3))
	assert.Equal(t, MaxListLimit, ClampLimit(101))
	assert.Equal(t, 7, ClampLimit(7))
}
