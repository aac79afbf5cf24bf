package modules

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/memohai/chirp/internal/config"
	dbsqlc "github.com/memohai/chirp/internal/db/sqlc"
	"github.com/memohai/chirp/internal/posts"
	"github.com/memohai/chirp/internal/posts/mongostore"
)

var StorageModule = fx.Module(
	"storage",
	fx.Provide(providePostStore),
)

func providePostStore(lc fx.Lifecycle, log *slog.Logger, cfg config.Config, queries *dbsqlc.Queries) (posts.Store, error) {
	switch cfg.Storage.Driver {
	case "", config.StorageDriverPostgres:
		return posts.NewService(log, queries), nil
	case config.StorageDriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		store, err := mongostore.Connect(ctx, log, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return store.Close(ctx)
			},
		})
		log.Info("post store ready", slog.String("driver", config.StorageDriverMongo), slog.String("database", cfg.Mongo.Database))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
