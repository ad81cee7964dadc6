package service

import (
	"context"
	"testing"
	"time"

	"guild-tracker/internal/domain"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCleanupService_PrunesOldRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	droptimizerRepo := repository.NewDroptimizerRepository(db, zerolog.Nop())
	syncRunRepo := repository.NewSyncRunRepository(db, zerolog.Nop())

	playerRepo := repository.NewPlayerRepository(db, zerolog.Nop())
	characterRepo := repository.NewCharacterRepository(db, zerolog.Nop())
	player, err := playerRepo.Create(ctx, "Alice")
	require.NoError(t, err)
	character := &domain.Character{PlayerID: player.ID, Name: "Frostina", Realm: "Silvermoon", Class: domain.ClassMage, Role: domain.RoleDPS}
	require.NoError(t, characterRepo.Upsert(ctx, character))

	now := time.Now().UTC()
	stale := &domain.Droptimizer{CharacterID: character.ID, SimDate: now, CreatedAt: now.Add(-10 * 24 * time.Hour)}
	require.NoError(t, droptimizerRepo.Insert(ctx, stale))
	fresh := &domain.Droptimizer{CharacterID: character.ID, SimDate: now, CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, droptimizerRepo.Insert(ctx, fresh))

	oldRun := &domain.SyncRun{
		JobName:     "sync-roster",
		Status:      domain.SyncRunSuccess,
		StartedAt:   now.Add(-45 * 24 * time.Hour),
		CompletedAt: now.Add(-45 * 24 * time.Hour),
	}
	require.NoError(t, syncRunRepo.Insert(ctx, oldRun))
	recentRun := &domain.SyncRun{
		JobName:     "sync-roster",
		Status:      domain.SyncRunSuccess,
		StartedAt:   now.Add(-time.Hour),
		CompletedAt: now.Add(-time.Hour),
	}
	require.NoError(t, syncRunRepo.Insert(ctx, recentRun))

	svc := NewCleanupService(droptimizerRepo, syncRunRepo, zerolog.Nop())
	result, err := svc.Run(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, result.DroptimizersDeleted)
	require.EqualValues(t, 1, result.SyncRunsDeleted)

	runs, err := syncRunRepo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, recentRun.ID, runs[0].ID)
}
