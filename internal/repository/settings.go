package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// SettingsRepository is a flat string-keyed store for small persisted flags,
// mostly last-sync markers.
type SettingsRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSettingsRepository(sqlDB *sql.DB, logger zerolog.Logger) *SettingsRepository {
	return &SettingsRepository{db: sqlDB, logger: logger}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// GetTime reads an RFC3339 marker, nil when the key is absent.
func (r *SettingsRepository) GetTime(ctx context.Context, key string) (*time.Time, error) {
	value, err := r.Get(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid time value for setting %s: %w", key, err)
	}
	return &t, nil
}

func (r *SettingsRepository) SetTime(ctx context.Context, key string, t time.Time) error {
	return r.Set(ctx, key, t.UTC().Format(time.RFC3339))
}
