// Package directory resolves user ids and usernames to public author profiles.
package directory

import (
	"context"
	"errors"
)

// MaxBatchSize caps the number of ids resolved by a single ListByIDs call.
const MaxBatchSize = 100

var (
	ErrBatchTooLarge = errors.New("directory batch too large")
	ErrRateLimited   = errors.New("directory rate limited")
	ErrUnavailable   = errors.New("directory unavailable")
)

// Record is a directory entry. Username may be nil when the provider has none.
type Record struct {
	ID              string  `json:"id"`
	Username        *string `json:"username"`
	ProfileImageURL string  `json:"profile_image_url"`
}

// AuthorSummary is the public projection of a Record. No other directory field is exposed.
type AuthorSummary struct {
	ID              string  `json:"id"`
	Username        *string `json:"username"`
	ProfileImageURL string  `json:"profileImageUrl"`
}

// Summary projects the record to its public fields.
func (r Record) Summary() AuthorSummary {
	var username *string
	if r.Username != nil {
		u := *r.Username
		username = &u
	}
	return AuthorSummary{
		ID:              r.ID,
		Username:        username,
		ProfileImageURL: r.ProfileImageURL,
	}
}

// Directory is a keyed identity lookup. ListByIDs returns records in no particular
// order and omits ids it does not know.
type Directory interface {
	ListByIDs(ctx context.Context, ids []string, limit int) ([]Record, error)
	ListByUsername(ctx context.Context, username string) ([]Record, error)
}

func checkBatch(ids []string, limit int) error {
	if limit <= 0 || limit > MaxBatchSize {
		limit = MaxBatchSize
	}
	if len(ids) > limit {
		return ErrBatchTooLarge
	}
	return nil
}

func effectiveLimit(limit int) int {
	if limit <= 0 || limit > MaxBatchSize {
		return MaxBatchSize
	}
	return limit
}
