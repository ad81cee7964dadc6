package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"guild-tracker/internal/config"
	"guild-tracker/internal/constants"
	fxmodules "guild-tracker/internal/fx"
	"guild-tracker/internal/scheduler"
	"guild-tracker/internal/server"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	srv *server.Server,
	sched *scheduler.Scheduler,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: srv.Handler(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := sched.Start(); err != nil {
				return err
			}
			go func() {
				logger.Info().Str("addr", httpSrv.Addr).Msg("server starting")
				if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			sched.Stop()

			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
