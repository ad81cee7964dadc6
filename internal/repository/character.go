package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CharacterRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewCharacterRepository(sqlDB *sql.DB, logger zerolog.Logger) *CharacterRepository {
	return &CharacterRepository{db: sqlDB, logger: logger}
}

const characterColumns = `id, player_id, name, realm, class, role, main, created_at, updated_at`

// Upsert inserts the character or, on a name+realm conflict, overwrites
// every non-identity column with the incoming row. A row carrying an ID was
// already resolved to an existing character and is updated in place; an
// insert there would trip the primary key before the name+realm target.
func (r *CharacterRepository) Upsert(ctx context.Context, c *domain.Character) error {
	now := time.Now().UTC()
	c.UpdatedAt = now

	if c.ID != "" {
		return r.updateByID(ctx, r.db, c, now)
	}

	c.ID = uuid.New().String()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO characters (id, player_id, name, realm, class, role, main, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, realm) DO UPDATE SET
			player_id = excluded.player_id,
			class = excluded.class,
			role = excluded.role,
			main = excluded.main,
			updated_at = excluded.updated_at`,
		c.ID, c.PlayerID, c.Name, c.Realm, c.Class, c.Role, c.Main, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert character %s-%s: %w", c.Name, c.Realm, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *CharacterRepository) updateByID(ctx context.Context, db execer, c *domain.Character, now time.Time) error {
	_, err := db.ExecContext(ctx, `
		UPDATE characters SET player_id = ?, class = ?, role = ?, main = ?, updated_at = ?
		WHERE id = ?`,
		c.PlayerID, c.Class, c.Role, c.Main, now, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update character %s-%s: %w", c.Name, c.Realm, err)
	}
	return nil
}

func (r *CharacterRepository) UpsertBatch(ctx context.Context, characters []domain.Character) error {
	if len(characters) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < len(characters); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(characters) {
			end = len(characters)
		}

		for _, c := range characters[i:end] {
			now := time.Now().UTC()
			if c.ID != "" {
				if err := r.updateByID(ctx, tx, &c, now); err != nil {
					return err
				}
				continue
			}
			c.ID = uuid.New().String()
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO characters (id, player_id, name, realm, class, role, main, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(name, realm) DO UPDATE SET
					player_id = excluded.player_id,
					class = excluded.class,
					role = excluded.role,
					main = excluded.main,
					updated_at = excluded.updated_at`,
				c.ID, c.PlayerID, c.Name, c.Realm, c.Class, c.Role, c.Main, c.CreatedAt, now)
			if err != nil {
				return fmt.Errorf("failed to upsert character %s-%s: %w", c.Name, c.Realm, err)
			}
		}
	}

	return tx.Commit()
}

func (r *CharacterRepository) GetByID(ctx context.Context, id string) (*domain.Character, error) {
	return scanCharacter(r.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`, id))
}

func (r *CharacterRepository) GetByNameRealm(ctx context.Context, name, realm string) (*domain.Character, error) {
	return scanCharacter(r.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE name = ? COLLATE NOCASE AND realm = ? COLLATE NOCASE`,
		name, realm))
}

func (r *CharacterRepository) List(ctx context.Context) ([]domain.Character, error) {
	return r.queryMany(ctx, `SELECT `+characterColumns+` FROM characters ORDER BY name, realm`)
}

func (r *CharacterRepository) ListByPlayer(ctx context.Context, playerID string) ([]domain.Character, error) {
	return r.queryMany(ctx, `SELECT `+characterColumns+` FROM characters WHERE player_id = ? ORDER BY main DESC, name`, playerID)
}

func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete character %s: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CharacterRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Character, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var characters []domain.Character
	for rows.Next() {
		var c domain.Character
		if err := rows.Scan(&c.ID, &c.PlayerID, &c.Name, &c.Realm, &c.Class, &c.Role, &c.Main, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}
	return characters, rows.Err()
}

func scanCharacter(row *sql.Row) (*domain.Character, error) {
	var c domain.Character
	if err := row.Scan(&c.ID, &c.PlayerID, &c.Name, &c.Realm, &c.Class, &c.Role, &c.Main, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
