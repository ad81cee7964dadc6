package fx

import (
	"guild-tracker/internal/api"
	"guild-tracker/internal/config"
	"guild-tracker/internal/database"
	"guild-tracker/internal/logger"
	"guild-tracker/internal/repository"
	"guild-tracker/internal/scheduler"
	"guild-tracker/internal/server"
	"guild-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewCharacterRepository),
	fx.Provide(repository.NewGearSnapshotRepository),
	fx.Provide(repository.NewProgressRepository),
	fx.Provide(repository.NewDroptimizerRepository),
	fx.Provide(repository.NewLootRepository),
	fx.Provide(repository.NewSyncRunRepository),
	fx.Provide(repository.NewSettingsRepository),
	// api clients
	fx.Provide(api.NewBlizzardClient),
	fx.Provide(api.NewRaiderIOClient),
	fx.Provide(api.NewWowAuditClient),
	// svc
	fx.Provide(service.NewJobRunner),
	fx.Provide(service.NewRosterSyncService),
	fx.Provide(service.NewProgressSyncService),
	fx.Provide(service.NewAuditSyncService),
	fx.Provide(service.NewCleanupService),
	fx.Provide(service.NewRosterService),
	fx.Provide(service.NewLootService),
	fx.Provide(service.NewMountService),
	fx.Provide(service.NewDroptimizerService),
	// scheduler and server
	fx.Provide(scheduler.New),
	fx.Provide(server.New),
)
