package scheduler

import (
	"context"

	"guild-tracker/internal/config"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the periodic sync jobs in-process. The same jobs stay
// reachable over the authenticated /cron endpoints for manual triggering.
type Scheduler struct {
	cron         *cron.Cron
	cfg          *config.Config
	jobRunner    *service.JobRunner
	rosterSync   *service.RosterSyncService
	progressSync *service.ProgressSyncService
	auditSync    *service.AuditSyncService
	cleanup      *service.CleanupService
	logger       zerolog.Logger
}

func New(
	cfg *config.Config,
	jobRunner *service.JobRunner,
	rosterSync *service.RosterSyncService,
	progressSync *service.ProgressSyncService,
	auditSync *service.AuditSyncService,
	cleanup *service.CleanupService,
	logger zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		cfg:          cfg,
		jobRunner:    jobRunner,
		rosterSync:   rosterSync,
		progressSync: progressSync,
		auditSync:    auditSync,
		cleanup:      cleanup,
		logger:       logger,
	}
}

func (s *Scheduler) Start() error {
	jobs := []struct {
		name     string
		schedule string
		fn       func(context.Context) (any, error)
	}{
		{
			name:     "sync-roster",
			schedule: s.cfg.RosterSyncSchedule,
			fn: func(ctx context.Context) (any, error) {
				summary, _, err := s.rosterSync.CheckAndSync(ctx)
				if summary == nil {
					return nil, err
				}
				return summary, err
			},
		},
		{
			name:     "sync-progress",
			schedule: s.cfg.ProgressSyncSchedule,
			fn: func(ctx context.Context) (any, error) {
				summary, _, err := s.progressSync.CheckAndSync(ctx)
				if summary == nil {
					return nil, err
				}
				return summary, err
			},
		},
		{
			name:     "sync-audit",
			schedule: s.cfg.SyncAllSchedule,
			fn: func(ctx context.Context) (any, error) {
				return s.auditSync.Sync(ctx)
			},
		},
		{
			name:     "cleanup",
			schedule: s.cfg.SyncAllSchedule,
			fn: func(ctx context.Context) (any, error) {
				return s.cleanup.Run(ctx)
			},
		},
	}

	for _, job := range jobs {
		if job.schedule == "" {
			s.logger.Info().Str("job", job.name).Msg("no schedule configured, job disabled")
			continue
		}
		name, fn := job.name, job.fn
		if _, err := s.cron.AddFunc(job.schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), constants.CronJobTimeout)
			defer cancel()
			if _, err := s.jobRunner.Run(ctx, name, fn); err != nil {
				s.logger.Error().Err(err).Str("job", name).Msg("scheduled job failed")
			}
		}); err != nil {
			return err
		}
		s.logger.Info().Str("job", name).Str("schedule", job.schedule).Msg("scheduled job registered")
	}

	s.cron.Start()
	s.logger.Info().Msg("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("scheduler stopped")
}
