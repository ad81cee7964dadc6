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

func newDroptimizerFixture(t *testing.T) (*DroptimizerService, *domain.Character) {
	t.Helper()

	db := openTestDB(t)
	ctx := context.Background()

	playerRepo := repository.NewPlayerRepository(db, zerolog.Nop())
	characterRepo := repository.NewCharacterRepository(db, zerolog.Nop())

	player, err := playerRepo.Create(ctx, "Alice")
	require.NoError(t, err)
	character := &domain.Character{PlayerID: player.ID, Name: "Frostina", Realm: "Silvermoon", Class: domain.ClassMage, Role: domain.RoleDPS}
	require.NoError(t, characterRepo.Upsert(ctx, character))

	svc := NewDroptimizerService(repository.NewDroptimizerRepository(db, zerolog.Nop()), characterRepo, zerolog.Nop())
	return svc, character
}

func TestDroptimizerService_StoreResolvesTrack(t *testing.T) {
	svc, character := newDroptimizerFixture(t)

	report, summary, err := svc.Store(context.Background(), DroptimizerUpload{
		CharacterID: character.ID,
		FightStyle:  "Patchwerk",
		SimDate:     time.Now().UTC(),
		Upgrades: []DroptimizerUploadUpgrade{
			{
				ItemID:     212448,
				Slot:       "HEAD",
				DPSGain:    1500,
				BaseLevel:  600,
				ItemString: "212448:0:0:0:0:0:0:0:80:268:0:5:2:10264:6652",
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Synced)
	require.Len(t, report.Upgrades, 1)
	require.Equal(t, 649, report.Upgrades[0].ItemLevel, "Hero track bonus overrides the base level")
	require.Equal(t, "Hero", report.Upgrades[0].Track)
}

func TestDroptimizerService_StoreSkipsMalformedUpgrades(t *testing.T) {
	svc, character := newDroptimizerFixture(t)

	report, summary, err := svc.Store(context.Background(), DroptimizerUpload{
		CharacterID: character.ID,
		SimDate:     time.Now().UTC(),
		Upgrades: []DroptimizerUploadUpgrade{
			{ItemID: 1, Slot: "CHEST", DPSGain: 100, BaseLevel: 610},
			{ItemID: 2, Slot: "CHEST", DPSGain: 50, ItemString: "2:0:0"},
			{ItemID: 3, Slot: "CHEST", DPSGain: 25, ItemString: "999:0:0:0:0:0:0:0:80:268:0:5:0"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Synced)
	require.Len(t, summary.Errors, 2, "short item string and ID mismatch both reported")
	require.Len(t, report.Upgrades, 1)
	require.Equal(t, 610, report.Upgrades[0].ItemLevel, "no item string keeps the base level")
}

func TestDroptimizerService_StoreRejectsEmptyReport(t *testing.T) {
	svc, character := newDroptimizerFixture(t)

	_, summary, err := svc.Store(context.Background(), DroptimizerUpload{
		CharacterID: character.ID,
		SimDate:     time.Now().UTC(),
		Upgrades: []DroptimizerUploadUpgrade{
			{ItemID: 2, Slot: "CHEST", ItemString: "2:0:0"},
		},
	})
	require.Error(t, err)
	require.Len(t, summary.Errors, 1)
}

func TestDroptimizerService_StoreRejectsUnknownCharacter(t *testing.T) {
	svc, _ := newDroptimizerFixture(t)

	_, _, err := svc.Store(context.Background(), DroptimizerUpload{
		CharacterID: "no-such-character",
		SimDate:     time.Now().UTC(),
		Upgrades:    []DroptimizerUploadUpgrade{{ItemID: 1, Slot: "HEAD"}},
	})
	require.Error(t, err)
}
