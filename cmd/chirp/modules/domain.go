package modules

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/memohai/chirp/internal/accounts"
	"github.com/memohai/chirp/internal/boot"
	dbsqlc "github.com/memohai/chirp/internal/db/sqlc"
	"github.com/memohai/chirp/internal/feed"
	"github.com/memohai/chirp/internal/handlers"
	"github.com/memohai/chirp/internal/server"
)

var DomainModule = fx.Module(
	"domain",
	fx.Provide(
		provideAccounts,
		feed.NewService,

		provideServerHandler(handlers.NewPingHandler),
		provideServerHandler(handlers.NewSwaggerHandler),
		provideServerHandler(provideAuthHandler),
		provideServerHandler(handlers.NewPostsHandler),
		provideServerHandler(handlers.NewProfileHandler),
	),
)

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideAccounts(log *slog.Logger, queries *dbsqlc.Queries) *accounts.Service {
	return accounts.NewService(log, queries)
}

func provideAuthHandler(log *slog.Logger, accountService *accounts.Service, rc *boot.RuntimeConfig) *handlers.AuthHandler {
	return handlers.NewAuthHandler(log, accountService, rc.JwtSecret, rc.JwtExpiresIn)
}
