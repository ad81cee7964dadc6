package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"guild-tracker/internal/api"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/mapper"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// AuditSyncService imports the guild-spreadsheet roster: characters missing
// locally are created with class auto-detect, known ones get their tracked
// fields refreshed.
type AuditSyncService struct {
	wowAudit      *api.WowAuditClient
	playerRepo    *repository.PlayerRepository
	characterRepo *repository.CharacterRepository
	settingsRepo  *repository.SettingsRepository
	logger        zerolog.Logger
}

func NewAuditSyncService(
	wowAudit *api.WowAuditClient,
	playerRepo *repository.PlayerRepository,
	characterRepo *repository.CharacterRepository,
	settingsRepo *repository.SettingsRepository,
	logger zerolog.Logger,
) *AuditSyncService {
	return &AuditSyncService{
		wowAudit:      wowAudit,
		playerRepo:    playerRepo,
		characterRepo: characterRepo,
		settingsRepo:  settingsRepo,
		logger:        logger,
	}
}

func (s *AuditSyncService) Sync(ctx context.Context) (*domain.SyncSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CronJobTimeout)
	defer cancel()

	roster, err := s.wowAudit.GetRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audit roster: %w", err)
	}

	s.logger.Info().Int("entries", len(roster)).Msg("starting audit roster import")

	summary := &domain.SyncSummary{}
	var characters []domain.Character

	for _, entry := range roster {
		character, err := s.mapEntry(ctx, entry)
		if err != nil {
			s.logger.Warn().Err(err).Str("character", entry.Name).Str("realm", entry.Realm).Msg("skipping audit entry")
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s-%s: %v", entry.Name, entry.Realm, err))
			continue
		}
		characters = append(characters, *character)
		summary.Synced++
	}

	if err := s.characterRepo.UpsertBatch(ctx, characters); err != nil {
		return nil, fmt.Errorf("failed to persist audit roster: %w", err)
	}

	if err := s.settingsRepo.SetTime(ctx, constants.SettingAuditLastSync, time.Now()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record audit sync marker")
	}

	s.logger.Info().
		Int("synced", summary.Synced).
		Int("errors", len(summary.Errors)).
		Msg("audit roster import completed")

	return summary, nil
}

// mapEntry validates one audit roster entry. Unknown class or role values
// are mapping errors, never silently defaulted.
func (s *AuditSyncService) mapEntry(ctx context.Context, entry api.WowAuditCharacter) (*domain.Character, error) {
	class, err := mapper.ClassFromName(entry.Class)
	if err != nil {
		return nil, err
	}
	role, err := mapper.RoleFromName(entry.Role)
	if err != nil {
		return nil, err
	}

	character := &domain.Character{
		Name:  entry.Name,
		Realm: entry.Realm,
		Class: class,
		Role:  role,
	}

	if existing, err := s.characterRepo.GetByNameRealm(ctx, entry.Name, entry.Realm); err == nil {
		character.ID = existing.ID
		character.PlayerID = existing.PlayerID
		character.Main = existing.Main
		character.CreatedAt = existing.CreatedAt
		return character, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// New character: attach it to a player named after it, creating one if
	// needed. The first character imported for a player becomes its main.
	player, err := s.playerRepo.GetByName(ctx, entry.Name)
	if errors.Is(err, sql.ErrNoRows) {
		player, err = s.playerRepo.Create(ctx, entry.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve player for %s: %w", entry.Name, err)
	}

	character.PlayerID = player.ID
	siblings, err := s.characterRepo.ListByPlayer(ctx, player.ID)
	if err != nil {
		return nil, err
	}
	character.Main = len(siblings) == 0

	return character, nil
}
