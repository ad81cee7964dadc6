package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"guild-tracker/internal/domain"

	"github.com/goccy/go-json"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type DroptimizerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewDroptimizerRepository(sqlDB *sql.DB, logger zerolog.Logger) *DroptimizerRepository {
	return &DroptimizerRepository{db: sqlDB, logger: logger}
}

// Insert stores an immutable simulation upload.
func (r *DroptimizerRepository) Insert(ctx context.Context, d *domain.Droptimizer) error {
	if d.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		d.ID = id
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	upgrades, err := json.Marshal(d.Upgrades)
	if err != nil {
		return fmt.Errorf("failed to marshal upgrades: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO droptimizers (id, character_id, fight_style, sim_date, upgrades, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.CharacterID, d.FightStyle, d.SimDate, upgrades, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert droptimizer for %s: %w", d.CharacterID, err)
	}
	return nil
}

func (r *DroptimizerRepository) ListByCharacter(ctx context.Context, characterID string) ([]domain.Droptimizer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, character_id, fight_style, sim_date, upgrades, created_at
		FROM droptimizers WHERE character_id = ? ORDER BY sim_date DESC`, characterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Droptimizer
	for rows.Next() {
		var d domain.Droptimizer
		var upgrades []byte
		if err := rows.Scan(&d.ID, &d.CharacterID, &d.FightStyle, &d.SimDate, &upgrades, &d.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(upgrades, &d.Upgrades); err != nil {
			return nil, fmt.Errorf("failed to unmarshal upgrades: %w", err)
		}
		reports = append(reports, d)
	}
	return reports, rows.Err()
}

// DeleteOlderThan bulk-deletes reports past the retention window and returns
// the number removed.
func (r *DroptimizerRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM droptimizers WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale droptimizers: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.logger.Debug().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("droptimizer retention applied")
	return deleted, nil
}
