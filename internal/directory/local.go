package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/memohai/chirp/internal/db"
	"github.com/memohai/chirp/internal/db/sqlc"
	"github.com/memohai/chirp/internal/identity"
)

// UserQueries is the subset of sqlc queries the local directory reads.
type UserQueries interface {
	ListUsersByIDs(ctx context.Context, arg sqlc.ListUsersByIDsParams) ([]sqlc.User, error)
	GetUserByUsername(ctx context.Context, username pgtype.Text) (sqlc.User, error)
}

// LocalDirectory serves directory lookups from the users table.
type LocalDirectory struct {
	queries UserQueries
	logger  *slog.Logger
}

func NewLocalDirectory(log *slog.Logger, queries UserQueries) *LocalDirectory {
	if log == nil {
		log = slog.Default()
	}
	return &LocalDirectory{
		queries: queries,
		logger:  log.With(slog.String("service", "directory"), slog.String("provider", "local")),
	}
}

func (d *LocalDirectory) ListByIDs(ctx context.Context, ids []string, limit int) ([]Record, error) {
	if err := checkBatch(ids, limit); err != nil {
		return nil, err
	}
	pgIDs := make([]pgtype.UUID, 0, len(ids))
	for _, id := range ids {
		pgID, err := db.ParseUUID(id)
		if err != nil {
			// not a local id, so not in this directory
			d.logger.Debug("skip non-uuid id", slog.String("user_id", id))
			continue
		}
		pgIDs = append(pgIDs, pgID)
	}
	if len(pgIDs) == 0 {
		return []Record{}, nil
	}
	rows, err := d.queries.ListUsersByIDs(ctx, sqlc.ListUsersByIDsParams{
		Ids:        pgIDs,
		MaxResults: int32(effectiveLimit(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("list users by ids: %w", err)
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records, nil
}

func (d *LocalDirectory) ListByUsername(ctx context.Context, username string) ([]Record, error) {
	username = identity.NormalizeUsername(username)
	if username == "" {
		return []Record{}, nil
	}
	row, err := d.queries.GetUserByUsername(ctx, pgtype.Text{String: username, Valid: true})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return []Record{toRecord(row)}, nil
}

func toRecord(row sqlc.User) Record {
	return Record{
		ID:              db.UUIDToString(row.ID),
		Username:        db.TextToPtr(row.Username),
		ProfileImageURL: row.ProfileImageUrl,
	}
}
