package repository

import (
	"context"
	"database/sql"
	"testing"

	"guild-tracker/internal/database"
	"guild-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(database.DriverName, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// one in-memory database per test, not per pooled connection
	db.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db, zerolog.Nop()))
	return db
}

func seedPlayer(t *testing.T, db *sql.DB, name string) *domain.Player {
	t.Helper()
	player, err := NewPlayerRepository(db, zerolog.Nop()).Create(context.Background(), name)
	require.NoError(t, err)
	return player
}

func seedCharacter(t *testing.T, db *sql.DB, playerID, name, realm string) *domain.Character {
	t.Helper()
	c := &domain.Character{
		PlayerID: playerID,
		Name:     name,
		Realm:    realm,
		Class:    domain.ClassMage,
		Role:     domain.RoleDPS,
	}
	require.NoError(t, NewCharacterRepository(db, zerolog.Nop()).Upsert(context.Background(), c))
	return c
}
