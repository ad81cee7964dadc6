package service

import (
	"context"
	"time"

	"guild-tracker/internal/constants"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// CleanupService applies retention policies: age-based bulk deletion of
// droptimizer uploads and of old sync run log rows.
type CleanupService struct {
	droptimizerRepo *repository.DroptimizerRepository
	syncRunRepo     *repository.SyncRunRepository
	logger          zerolog.Logger
}

func NewCleanupService(
	droptimizerRepo *repository.DroptimizerRepository,
	syncRunRepo *repository.SyncRunRepository,
	logger zerolog.Logger,
) *CleanupService {
	return &CleanupService{droptimizerRepo: droptimizerRepo, syncRunRepo: syncRunRepo, logger: logger}
}

type CleanupResult struct {
	DroptimizersDeleted int64 `json:"droptimizers_deleted"`
	SyncRunsDeleted     int64 `json:"sync_runs_deleted"`
}

func (s *CleanupService) Run(ctx context.Context) (*CleanupResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	droptimizers, err := s.droptimizerRepo.DeleteOlderThan(ctx, time.Now().Add(-constants.DroptimizerRetention))
	if err != nil {
		return nil, err
	}
	runs, err := s.syncRunRepo.DeleteOlderThan(ctx, time.Now().Add(-constants.SyncRunRetention))
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("droptimizers", droptimizers).
		Int64("sync_runs", runs).
		Msg("cleanup completed")
	return &CleanupResult{DroptimizersDeleted: droptimizers, SyncRunsDeleted: runs}, nil
}
