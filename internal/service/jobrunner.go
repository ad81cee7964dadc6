package service

import (
	"context"
	"time"

	"guild-tracker/internal/domain"
	"guild-tracker/internal/repository"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// JobRunner executes one scheduled job and records a SyncRun row for it,
// whatever the outcome.
type JobRunner struct {
	syncRunRepo *repository.SyncRunRepository
	logger      zerolog.Logger
}

func NewJobRunner(syncRunRepo *repository.SyncRunRepository, logger zerolog.Logger) *JobRunner {
	return &JobRunner{syncRunRepo: syncRunRepo, logger: logger}
}

// Run invokes fn and persists the run log. The job's results and error are
// returned unchanged; a failure to persist the log row is itself only
// logged, never surfaced over the job outcome.
func (r *JobRunner) Run(ctx context.Context, jobName string, fn func(context.Context) (any, error)) (any, error) {
	startedAt := time.Now().UTC()
	r.logger.Info().Str("job", jobName).Msg("job started")

	results, jobErr := fn(ctx)
	completedAt := time.Now().UTC()

	run := &domain.SyncRun{
		JobName:     jobName,
		Status:      domain.SyncRunSuccess,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		DurationMS:  completedAt.Sub(startedAt).Milliseconds(),
	}
	if jobErr != nil {
		run.Status = domain.SyncRunFailed
		msg := jobErr.Error()
		run.ErrorMessage = &msg
	}
	if results != nil {
		if payload, err := json.Marshal(results); err == nil {
			s := string(payload)
			run.Results = &s
		} else {
			r.logger.Warn().Err(err).Str("job", jobName).Msg("failed to marshal job results")
		}
	}

	if err := r.syncRunRepo.Insert(ctx, run); err != nil {
		r.logger.Error().Err(err).Str("job", jobName).Msg("failed to persist sync run log")
	}

	r.logger.Info().
		Str("job", jobName).
		Str("status", run.Status).
		Int64("duration_ms", run.DurationMS).
		Msg("job completed")

	return results, jobErr
}

// History returns the most recent run logs, newest first.
func (r *JobRunner) History(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	return r.syncRunRepo.ListRecent(ctx, limit)
}
