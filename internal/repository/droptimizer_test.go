package repository

import (
	"context"
	"testing"
	"time"

	"guild-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDroptimizerRepository_InsertAndList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewDroptimizerRepository(db, zerolog.Nop())

	player := seedPlayer(t, db, "Alice")
	character := seedCharacter(t, db, player.ID, "Frostina", "Silvermoon")

	report := &domain.Droptimizer{
		CharacterID: character.ID,
		FightStyle:  "Patchwerk",
		SimDate:     time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Upgrades: []domain.DroptimizerUpgrade{
			{ItemID: 212448, Slot: domain.SlotHead, DPSGain: 1234.5},
		},
	}
	require.NoError(t, repo.Insert(ctx, report))
	require.NotEmpty(t, report.ID)

	reports, err := repo.ListByCharacter(ctx, character.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, "Patchwerk", reports[0].FightStyle)
	require.Equal(t, report.Upgrades, reports[0].Upgrades)
}

func TestDroptimizerRepository_DeleteOlderThan(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewDroptimizerRepository(db, zerolog.Nop())

	player := seedPlayer(t, db, "Bob")
	character := seedCharacter(t, db, player.ID, "Tankard", "Moonglade")

	now := time.Now().UTC()
	stale := &domain.Droptimizer{CharacterID: character.ID, SimDate: now, CreatedAt: now.Add(-10 * 24 * time.Hour)}
	fresh := &domain.Droptimizer{CharacterID: character.ID, SimDate: now, CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, repo.Insert(ctx, stale))
	require.NoError(t, repo.Insert(ctx, fresh))

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	remaining, err := repo.ListByCharacter(ctx, character.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, fresh.ID, remaining[0].ID)
}
