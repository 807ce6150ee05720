package fx

import (
	"database/sql"

	"cricket-academy/internal/api"
	"cricket-academy/internal/auth"
	"cricket-academy/internal/config"
	"cricket-academy/internal/database"
	"cricket-academy/internal/db"
	"cricket-academy/internal/logger"
	"cricket-academy/internal/metrics"
	"cricket-academy/internal/repository"
	"cricket-academy/internal/server"
	"cricket-academy/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	metrics.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewDeliveryRepository),
	fx.Provide(repository.NewTournamentRepository),
	// auth
	fx.Provide(auth.NewAuthenticator),
	fx.Provide(auth.NewGuard),
	// outbound
	fx.Provide(api.NewResultNotifier),
	// svc
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewScoringService),
	fx.Provide(service.NewTournamentService),
	// server
	fx.Provide(server.NewServer),
)
