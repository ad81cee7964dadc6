package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"guild-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// SyncRunRepository is append-only; run rows are never edited after insert.
type SyncRunRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSyncRunRepository(sqlDB *sql.DB, logger zerolog.Logger) *SyncRunRepository {
	return &SyncRunRepository{db: sqlDB, logger: logger}
}

func (r *SyncRunRepository) Insert(ctx context.Context, run *domain.SyncRun) error {
	if run.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		run.ID = id
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, job_name, status, results, error_message, started_at, completed_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.JobName, run.Status, run.Results, run.ErrorMessage, run.StartedAt, run.CompletedAt, run.DurationMS)
	if err != nil {
		return fmt.Errorf("failed to insert sync run %s: %w", run.JobName, err)
	}
	return nil
}

// DeleteOlderThan prunes run rows past the retention window; live rows are
// still never edited after insert.
func (r *SyncRunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sync_runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old sync runs: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.logger.Debug().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("sync run retention applied")
	return deleted, nil
}

func (r *SyncRunRepository) ListRecent(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, job_name, status, results, error_message, started_at, completed_at, duration_ms
		FROM sync_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.SyncRun
	for rows.Next() {
		var run domain.SyncRun
		if err := rows.Scan(&run.ID, &run.JobName, &run.Status, &run.Results, &run.ErrorMessage,
			&run.StartedAt, &run.CompletedAt, &run.DurationMS); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
