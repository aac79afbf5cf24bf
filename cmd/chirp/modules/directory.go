package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"

	"github.com/memohai/chirp/internal/boot"
	"github.com/memohai/chirp/internal/config"
	dbsqlc "github.com/memohai/chirp/internal/db/sqlc"
	"github.com/memohai/chirp/internal/directory"
)

var DirectoryModule = fx.Module(
	"directory",
	fx.Provide(provideDirectory),
)

func provideDirectory(lc fx.Lifecycle, log *slog.Logger, cfg config.Config, rc *boot.RuntimeConfig, queries *dbsqlc.Queries) (directory.Directory, error) {
	var dir directory.Directory
	switch cfg.Directory.Provider {
	case "", config.DirectoryProviderLocal:
		dir = directory.NewLocalDirectory(log, queries)
	case config.DirectoryProviderHTTP:
		dir = directory.NewHTTPDirectory(log, directory.HTTPOptions{
			BaseURL:           cfg.Directory.BaseURL,
			SecretKey:         rc.DirectorySecretKey,
			Timeout:           rc.DirectoryTimeout,
			RequestsPerSecond: cfg.Directory.RequestsPerSecond,
		})
	default:
		return nil, fmt.Errorf("unknown directory provider %q", cfg.Directory.Provider)
	}
	if !cfg.Redis.Enabled {
		return dir, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	log.Info("directory cache enabled", slog.String("addr", cfg.Redis.Addr), slog.Duration("ttl", rc.CacheTTL))
	return directory.NewCachedDirectory(log, dir, directory.NewRedisCache(client, rc.CacheTTL)), nil
}
