package repository

import (
	"context"
	"database/sql"
	"testing"

	"guild-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCharacterRepository_UpsertKeepsIdentityOnConflict(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepository(db, zerolog.Nop())

	player := seedPlayer(t, db, "Alice")
	original := seedCharacter(t, db, player.ID, "Frostina", "Silvermoon")

	update := &domain.Character{
		PlayerID: player.ID,
		Name:     "Frostina",
		Realm:    "Silvermoon",
		Class:    domain.ClassMage,
		Role:     domain.RoleHealer,
		Main:     true,
	}
	require.NoError(t, repo.Upsert(ctx, update))

	got, err := repo.GetByID(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleHealer, got.Role)
	require.True(t, got.Main)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "conflict updates in place, no second row")
}

func TestCharacterRepository_UpsertBatch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepository(db, zerolog.Nop())

	player := seedPlayer(t, db, "Bob")
	batch := []domain.Character{
		{PlayerID: player.ID, Name: "Tankard", Realm: "Moonglade", Class: domain.ClassWarrior, Role: domain.RoleTank},
		{PlayerID: player.ID, Name: "Healbot", Realm: "Moonglade", Class: domain.ClassPriest, Role: domain.RoleHealer},
	}
	require.NoError(t, repo.UpsertBatch(ctx, batch))

	batch[0].Role = domain.RoleDPS
	require.NoError(t, repo.UpsertBatch(ctx, batch))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := repo.GetByNameRealm(ctx, "Tankard", "Moonglade")
	require.NoError(t, err)
	require.Equal(t, domain.RoleDPS, got.Role)
}

func TestCharacterRepository_UpsertBatchUpdatesResolvedRowsInPlace(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepository(db, zerolog.Nop())

	player := seedPlayer(t, db, "Fred")
	original := seedCharacter(t, db, player.ID, "Aragorn", "Moonglade")

	// roster imports resolve case-variant spellings to the stored row
	replay := []domain.Character{{
		ID:       original.ID,
		PlayerID: player.ID,
		Name:     "ARAGORN",
		Realm:    "MOONGLADE",
		Class:    domain.ClassMage,
		Role:     domain.RoleHealer,
		Main:     true,
	}}
	require.NoError(t, repo.UpsertBatch(ctx, replay))

	got, err := repo.GetByID(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, "Aragorn", got.Name, "stored casing wins")
	require.Equal(t, domain.RoleHealer, got.Role)
	require.True(t, got.Main)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCharacterRepository_UpsertCaseVariantHitsSameRow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepository(db, zerolog.Nop())

	player := seedPlayer(t, db, "Gina")
	original := seedCharacter(t, db, player.ID, "Aragorn", "Moonglade")

	update := &domain.Character{
		PlayerID: player.ID,
		Name:     "aragorn",
		Realm:    "Moonglade",
		Class:    domain.ClassMage,
		Role:     domain.RoleHealer,
	}
	require.NoError(t, repo.Upsert(ctx, update))

	got, err := repo.GetByID(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleHealer, got.Role)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "case-variant insert must not create a second row")
}

func TestCharacterRepository_GetByNameRealmCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepository(db, zerolog.Nop())

	player := seedPlayer(t, db, "Carol")
	seedCharacter(t, db, player.ID, "Shadowmoon", "Draenor")

	got, err := repo.GetByNameRealm(ctx, "SHADOWMOON", "draenor")
	require.NoError(t, err)
	require.Equal(t, "Shadowmoon", got.Name)
}

func TestCharacterRepository_DeleteMissing(t *testing.T) {
	db := openTestDB(t)
	repo := NewCharacterRepository(db, zerolog.Nop())

	err := repo.Delete(context.Background(), "no-such-id")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCharacterRepository_CascadeOnPlayerDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	playerRepo := NewPlayerRepository(db, zerolog.Nop())
	characterRepo := NewCharacterRepository(db, zerolog.Nop())

	player := seedPlayer(t, db, "Dave")
	seedCharacter(t, db, player.ID, "Stabby", "Silvermoon")
	seedCharacter(t, db, player.ID, "Shooty", "Silvermoon")

	require.NoError(t, playerRepo.Delete(ctx, player.ID))

	all, err := characterRepo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCharacterRepository_ListByPlayerMainFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewCharacterRepository(db, zerolog.Nop())

	player := seedPlayer(t, db, "Erin")
	seedCharacter(t, db, player.ID, "Altchar", "Moonglade")

	main := &domain.Character{PlayerID: player.ID, Name: "Mainchar", Realm: "Moonglade", Class: domain.ClassDruid, Role: domain.RoleTank, Main: true}
	require.NoError(t, repo.Upsert(ctx, main))

	got, err := repo.ListByPlayer(ctx, player.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Mainchar", got[0].Name)
}
