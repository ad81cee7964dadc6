package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"guild-tracker/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{db: sqlDB, logger: logger}
}

func (r *PlayerRepository) Create(ctx context.Context, name string) (*domain.Player, error) {
	now := time.Now().UTC()
	player := &domain.Player{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO players (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		player.ID, player.Name, player.CreatedAt, player.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create player %s: %w", name, err)
	}
	return player, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM players WHERE id = ?`, id))
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM players WHERE name = ?`, name))
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Delete removes the player; characters and their snapshots cascade.
func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PlayerRepository) scanOne(row *sql.Row) (*domain.Player, error) {
	var p domain.Player
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
