package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"guild-tracker/internal/api"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/fetch"
	"guild-tracker/internal/mapper"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ProgressSyncService reconciles per-character progress metrics with the
// guild-progress API, falling back to the publisher encounter history when a
// character is not tracked there yet.
type ProgressSyncService struct {
	raiderIO      *api.RaiderIOClient
	blizzard      *api.BlizzardClient
	characterRepo *repository.CharacterRepository
	progressRepo  *repository.ProgressRepository
	settingsRepo  *repository.SettingsRepository
	logger        zerolog.Logger
}

func NewProgressSyncService(
	raiderIO *api.RaiderIOClient,
	blizzard *api.BlizzardClient,
	characterRepo *repository.CharacterRepository,
	progressRepo *repository.ProgressRepository,
	settingsRepo *repository.SettingsRepository,
	logger zerolog.Logger,
) *ProgressSyncService {
	return &ProgressSyncService{
		raiderIO:      raiderIO,
		blizzard:      blizzard,
		characterRepo: characterRepo,
		progressRepo:  progressRepo,
		settingsRepo:  settingsRepo,
		logger:        logger,
	}
}

func (s *ProgressSyncService) SyncAll(ctx context.Context) (*domain.SyncSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CronJobTimeout)
	defer cancel()

	characters, err := s.characterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	s.logger.Info().Int("characters", len(characters)).Msg("starting progress sync")

	summary := &domain.SyncSummary{}
	var mu sync.Mutex
	var records []domain.ProgressRecord

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.SyncWorkers)

	for _, c := range characters {
		c := c
		g.Go(func() error {
			record, err := s.syncOne(gCtx, c)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case fetch.IsNotFound(err):
				summary.Skipped++
			case err != nil:
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s-%s: %v", c.Name, c.Realm, err))
			default:
				records = append(records, *record)
				summary.Synced++
			}
			return nil
		})
	}
	g.Wait()

	if err := s.progressRepo.UpsertBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to persist progress records: %w", err)
	}

	if err := s.settingsRepo.SetTime(ctx, constants.SettingProgressLastSync, time.Now()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record progress sync marker")
	}

	s.logger.Info().
		Int("synced", summary.Synced).
		Int("skipped", summary.Skipped).
		Int("errors", len(summary.Errors)).
		Msg("progress sync completed")

	return summary, nil
}

func (s *ProgressSyncService) CheckAndSync(ctx context.Context) (*domain.SyncSummary, bool, error) {
	lastSync, err := s.settingsRepo.GetTime(ctx, constants.SettingProgressLastSync)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read progress sync marker: %w", err)
	}

	if !NeedsResync(lastSync, time.Now(), constants.SyncStaleThreshold) {
		s.logger.Info().Time("last_sync_at", *lastSync).Msg("progress up to date, skipping sync")
		return nil, false, nil
	}

	summary, err := s.SyncAll(ctx)
	return summary, true, err
}

func (s *ProgressSyncService) syncOne(ctx context.Context, c domain.Character) (*domain.ProgressRecord, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	profile, err := s.raiderIO.GetCharacter(apiCtx, c.Realm, c.Name)
	if err == nil {
		record := &domain.ProgressRecord{
			CharacterID:   c.ID,
			KeystoneScore: profile.KeystoneScore(),
			SyncedAt:      time.Now().UTC(),
		}
		if _, prog := profile.CurrentRaid(); prog != nil {
			record.RaidSummary = prog.Summary
			record.NormalKills = prog.NormalBossesKilled
			record.HeroicKills = prog.HeroicBossesKilled
			record.MythicKills = prog.MythicBossesKilled
		}
		return record, nil
	}
	if !fetch.IsNotFound(err) {
		return nil, err
	}

	// Not tracked by the progress API yet; derive kill counts from the
	// publisher encounter history instead.
	encounters, err := s.blizzard.GetCharacterEncounters(apiCtx, c.Realm, c.Name)
	if err != nil {
		return nil, err
	}

	normal, heroic, mythic := mapper.MapRaidKills(encounters)
	return &domain.ProgressRecord{
		CharacterID: c.ID,
		NormalKills: normal,
		HeroicKills: heroic,
		MythicKills: mythic,
		RaidSummary: fmt.Sprintf("%d/%d/%d", normal, heroic, mythic),
		SyncedAt:    time.Now().UTC(),
	}, nil
}
