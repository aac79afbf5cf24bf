// Package mongostore is a MongoDB implementation of posts.Store.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/memohai/chirp/internal/posts"
)

const collectionName = "posts"

type postDocument struct {
	ID        string    `bson:"_id"`
	AuthorID  string    `bson:"authorId"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
}

// Store keeps posts in a single collection keyed by UUID string.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
	now        func() time.Time
}

// Connect dials MongoDB, verifies the connection and ensures the feed indexes.
func Connect(ctx context.Context, log *slog.Logger, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	store := NewWithCollection(log, client.Database(database).Collection(collectionName))
	store.client = client
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return store, nil
}

// NewWithCollection wraps an existing collection. Indexes are not touched.
func NewWithCollection(log *slog.Logger, collection *mongo.Collection) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		collection: collection,
		logger:     log.With(slog.String("service", "posts"), slog.String("driver", "mongo")),
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// EnsureIndexes creates the global and per-author feed indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "authorId", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	}
	if _, err := s.collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("ensure post indexes: %w", err)
	}
	return nil
}

// Close disconnects the client created by Connect.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Store) Create(ctx context.Context, authorID, content string) (posts.Post, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return posts.Post{}, posts.ErrInvalidAuthor
	}
	doc := postDocument{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return posts.Post{}, fmt.Errorf("insert post: %w", err)
	}
	s.logger.Debug("post created", slog.String("post_id", doc.ID), slog.String("author_id", authorID))
	return doc.toPost(), nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]posts.Post, error) {
	return s.find(ctx, bson.M{}, limit)
}

func (s *Store) ListByAuthor(ctx context.Context, authorID string, limit int) ([]posts.Post, error) {
	return s.find(ctx, bson.M{"authorId": strings.TrimSpace(authorID)}, limit)
}

func (s *Store) Get(ctx context.Context, id string) (posts.Post, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return posts.Post{}, posts.ErrPostNotFound
	}
	var doc postDocument
	err = s.collection.FindOne(ctx, bson.M{"_id": parsed.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return posts.Post{}, posts.ErrPostNotFound
		}
		return posts.Post{}, fmt.Errorf("find post: %w", err)
	}
	return doc.toPost(), nil
}

func (s *Store) find(ctx context.Context, filter bson.M, limit int) ([]posts.Post, error) {
	cursor, err := s.collection.Find(ctx, filter, findOptions(limit))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	items := make([]posts.Post, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toPost())
	}
	return items, nil
}

func findOptions(limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(posts.ClampLimit(limit)))
}

func (d postDocument) toPost() posts.Post {
	return posts.Post{
		ID:        d.ID,
		AuthorID:  d.AuthorID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}
