package modules

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"github.com/memohai/chirp/internal/boot"
	"github.com/memohai/chirp/internal/config"
	"github.com/memohai/chirp/internal/db"
	dbsqlc "github.com/memohai/chirp/internal/db/sqlc"
	"github.com/memohai/chirp/internal/logger"
)

const connectTimeout = 10 * time.Second

// ConfigPath is the TOML file chosen on the command line. Empty falls back
// to $CONFIG_PATH and then config.toml.
type ConfigPath string

var InfraModule = fx.Module(
	"infra",
	fx.Provide(
		provideConfig,
		provideLogger,
		provideDBConn,
		provideDBQueries,
		boot.ProvideRuntimeConfig,
	),
)

// ---------------------------------------------------------------------------
// infrastructure providers
// ---------------------------------------------------------------------------

// ResolveConfigPath applies the flag > $CONFIG_PATH > default precedence.
func ResolveConfigPath(flag string) string {
	if p := strings.TrimSpace(flag); p != "" {
		return p
	}
	return os.Getenv("CONFIG_PATH")
}

func provideConfig(path ConfigPath) (config.Config, error) {
	cfg, err := config.Load(ResolveConfigPath(string(path)))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideDBConn(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	conn, err := db.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			conn.Close()
			return nil
		},
	})
	return conn, nil
}

func provideDBQueries(conn *pgxpool.Pool) *dbsqlc.Queries {
	return dbsqlc.New(conn)
}
