package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type ProgressRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewProgressRepository(sqlDB *sql.DB, logger zerolog.Logger) *ProgressRepository {
	return &ProgressRepository{db: sqlDB, logger: logger}
}

const upsertProgressSQL = `
	INSERT INTO progress_records (character_id, keystone_score, raid_summary, normal_kills, heroic_kills, mythic_kills, synced_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(character_id) DO UPDATE SET
		keystone_score = excluded.keystone_score,
		raid_summary = excluded.raid_summary,
		normal_kills = excluded.normal_kills,
		heroic_kills = excluded.heroic_kills,
		mythic_kills = excluded.mythic_kills,
		synced_at = excluded.synced_at`

func (r *ProgressRepository) Upsert(ctx context.Context, p *domain.ProgressRecord) error {
	_, err := r.db.ExecContext(ctx, upsertProgressSQL,
		p.CharacterID, p.KeystoneScore, p.RaidSummary, p.NormalKills, p.HeroicKills, p.MythicKills, p.SyncedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert progress record for %s: %w", p.CharacterID, err)
	}
	return nil
}

func (r *ProgressRepository) UpsertBatch(ctx context.Context, records []domain.ProgressRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < len(records); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(records) {
			end = len(records)
		}

		for _, p := range records[i:end] {
			_, err := tx.ExecContext(ctx, upsertProgressSQL,
				p.CharacterID, p.KeystoneScore, p.RaidSummary, p.NormalKills, p.HeroicKills, p.MythicKills, p.SyncedAt)
			if err != nil {
				return fmt.Errorf("failed to upsert progress record for %s: %w", p.CharacterID, err)
			}
		}
	}

	return tx.Commit()
}

func (r *ProgressRepository) Get(ctx context.Context, characterID string) (*domain.ProgressRecord, error) {
	var p domain.ProgressRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT character_id, keystone_score, raid_summary, normal_kills, heroic_kills, mythic_kills, synced_at
		FROM progress_records WHERE character_id = ?`, characterID).
		Scan(&p.CharacterID, &p.KeystoneScore, &p.RaidSummary, &p.NormalKills, &p.HeroicKills, &p.MythicKills, &p.SyncedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) LatestSyncedAt(ctx context.Context) (*time.Time, error) {
	var t time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT synced_at FROM progress_records ORDER BY synced_at DESC LIMIT 1`).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
