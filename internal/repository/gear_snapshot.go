package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type GearSnapshotRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewGearSnapshotRepository(sqlDB *sql.DB, logger zerolog.Logger) *GearSnapshotRepository {
	return &GearSnapshotRepository{db: sqlDB, logger: logger}
}

// Upsert overwrites the character's snapshot, last write wins.
func (r *GearSnapshotRepository) Upsert(ctx context.Context, s *domain.GearSnapshot) error {
	equipped, mounts, vault, err := marshalSnapshotColumns(s)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, upsertGearSnapshotSQL,
		s.CharacterID, s.ItemLevel, equipped, mounts, vault, s.LastLoginAt, s.SyncedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert gear snapshot for %s: %w", s.CharacterID, err)
	}
	return nil
}

func (r *GearSnapshotRepository) UpsertBatch(ctx context.Context, snapshots []domain.GearSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < len(snapshots); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(snapshots) {
			end = len(snapshots)
		}

		for _, s := range snapshots[i:end] {
			equipped, mounts, vault, err := marshalSnapshotColumns(&s)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, upsertGearSnapshotSQL,
				s.CharacterID, s.ItemLevel, equipped, mounts, vault, s.LastLoginAt, s.SyncedAt)
			if err != nil {
				return fmt.Errorf("failed to upsert gear snapshot for %s: %w", s.CharacterID, err)
			}
		}
	}

	return tx.Commit()
}

func (r *GearSnapshotRepository) Get(ctx context.Context, characterID string) (*domain.GearSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT character_id, item_level, equipped_items, mount_ids, vault_slots, last_login_at, synced_at
		FROM gear_snapshots WHERE character_id = ?`, characterID)
	return scanGearSnapshot(row.Scan)
}

func (r *GearSnapshotRepository) List(ctx context.Context) ([]domain.GearSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT character_id, item_level, equipped_items, mount_ids, vault_slots, last_login_at, synced_at
		FROM gear_snapshots`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []domain.GearSnapshot
	for rows.Next() {
		s, err := scanGearSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *s)
	}
	return snapshots, rows.Err()
}

// LatestSyncedAt reports the most recent snapshot time across the roster,
// nil when nothing has synced yet.
func (r *GearSnapshotRepository) LatestSyncedAt(ctx context.Context) (*time.Time, error) {
	var t time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT synced_at FROM gear_snapshots ORDER BY synced_at DESC LIMIT 1`).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const upsertGearSnapshotSQL = `
	INSERT INTO gear_snapshots (character_id, item_level, equipped_items, mount_ids, vault_slots, last_login_at, synced_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(character_id) DO UPDATE SET
		item_level = excluded.item_level,
		equipped_items = excluded.equipped_items,
		mount_ids = excluded.mount_ids,
		vault_slots = excluded.vault_slots,
		last_login_at = excluded.last_login_at,
		synced_at = excluded.synced_at`

func marshalSnapshotColumns(s *domain.GearSnapshot) (equipped, mounts, vault []byte, err error) {
	if equipped, err = json.Marshal(orEmpty(s.EquippedItems)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal equipped items: %w", err)
	}
	if mounts, err = json.Marshal(orEmpty(s.MountIDs)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal mount IDs: %w", err)
	}
	if vault, err = json.Marshal(orEmpty(s.VaultSlots)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal vault slots: %w", err)
	}
	return equipped, mounts, vault, nil
}

func scanGearSnapshot(scan func(...any) error) (*domain.GearSnapshot, error) {
	var s domain.GearSnapshot
	var equipped, mounts, vault []byte
	var lastLogin sql.NullTime

	if err := scan(&s.CharacterID, &s.ItemLevel, &equipped, &mounts, &vault, &lastLogin, &s.SyncedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(equipped, &s.EquippedItems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal equipped items: %w", err)
	}
	if err := json.Unmarshal(mounts, &s.MountIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mount IDs: %w", err)
	}
	if err := json.Unmarshal(vault, &s.VaultSlots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault slots: %w", err)
	}
	if lastLogin.Valid {
		s.LastLoginAt = &lastLogin.Time
	}
	return &s, nil
}

// orEmpty keeps JSON columns as [] instead of null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
