package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"guild-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func openPooledDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "tracker.db")}
	db, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Holding the first connection open forces the pool to hand out a second one.
func pinTwoConns(t *testing.T, db *sql.DB) (*sql.Conn, *sql.Conn) {
	t.Helper()
	ctx := context.Background()
	first, err := db.Conn(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })
	second, err := db.Conn(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	return first, second
}

func TestNew_PragmasApplyToEveryPooledConnection(t *testing.T) {
	db := openPooledDB(t)
	first, second := pinTwoConns(t, db)
	ctx := context.Background()

	for _, conn := range []*sql.Conn{first, second} {
		var enabled int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled))
		require.Equal(t, 1, enabled)
	}
}

func TestNew_CascadeHoldsAcrossPooledConnections(t *testing.T) {
	db := openPooledDB(t)
	first, second := pinTwoConns(t, db)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := first.ExecContext(ctx,
		`INSERT INTO players (id, name, created_at, updated_at) VALUES ('p1', 'Alice', ?, ?)`, now, now)
	require.NoError(t, err)
	_, err = first.ExecContext(ctx, `
		INSERT INTO characters (id, player_id, name, realm, class, role, main, created_at, updated_at)
		VALUES ('c1', 'p1', 'Frostina', 'Silvermoon', 'Mage', 'DPS', 0, ?, ?)`, now, now)
	require.NoError(t, err)

	// delete on a connection other than the one that seeded
	_, err = second.ExecContext(ctx, `DELETE FROM players WHERE id = 'p1'`)
	require.NoError(t, err)

	var orphans int
	require.NoError(t, first.QueryRowContext(ctx, `SELECT COUNT(*) FROM characters`).Scan(&orphans))
	require.Zero(t, orphans)
}
