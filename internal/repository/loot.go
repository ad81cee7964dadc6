package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type LootRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewLootRepository(sqlDB *sql.DB, logger zerolog.Logger) *LootRepository {
	return &LootRepository{db: sqlDB, logger: logger}
}

func (r *LootRepository) CreateSession(ctx context.Context, name string, date time.Time) (*domain.RaidSession, error) {
	session := &domain.RaidSession{
		ID:        uuid.New().String(),
		Name:      name,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO raid_sessions (id, name, date, created_at) VALUES (?, ?, ?, ?)`,
		session.ID, session.Name, session.Date, session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create raid session %s: %w", name, err)
	}
	return session, nil
}

func (r *LootRepository) ListSessions(ctx context.Context) ([]domain.RaidSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, date, created_at FROM raid_sessions ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.RaidSession
	for rows.Next() {
		var s domain.RaidSession
		if err := rows.Scan(&s.ID, &s.Name, &s.Date, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *LootRepository) InsertBatch(ctx context.Context, loots []domain.Loot) error {
	if len(loots) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < len(loots); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(loots) {
			end = len(loots)
		}

		for _, l := range loots[i:end] {
			if l.ID == "" {
				id, err := gonanoid.New()
				if err != nil {
					return fmt.Errorf("failed to generate nanoid: %w", err)
				}
				l.ID = id
			}
			if l.CreatedAt.IsZero() {
				l.CreatedAt = time.Now().UTC()
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO loots (id, session_id, character_id, item_id, slot, difficulty, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				l.ID, l.SessionID, l.CharacterID, l.ItemID, l.Slot, l.Difficulty, l.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert loot %d: %w", l.ItemID, err)
			}
		}
	}

	return tx.Commit()
}

// Recap aggregates assigned loot per character, difficulty and slot over a
// session date range.
func (r *LootRepository) Recap(ctx context.Context, from, to time.Time) ([]domain.LootRecapRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, l.difficulty, l.slot, COUNT(*) AS n
		FROM loots l
		JOIN raid_sessions rs ON rs.id = l.session_id
		JOIN characters c ON c.id = l.character_id
		WHERE l.character_id IS NOT NULL AND rs.date >= ? AND rs.date <= ?
		GROUP BY c.id, c.name, l.difficulty, l.slot
		ORDER BY n DESC, c.name`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recap []domain.LootRecapRow
	for rows.Next() {
		var row domain.LootRecapRow
		if err := rows.Scan(&row.CharacterID, &row.CharacterName, &row.Difficulty, &row.Slot, &row.Count); err != nil {
			return nil, err
		}
		recap = append(recap, row)
	}
	return recap, rows.Err()
}
