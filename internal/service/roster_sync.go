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

// RosterSyncService reconciles every roster character's gear snapshot with
// the publisher profile API.
type RosterSyncService struct {
	blizzard      *api.BlizzardClient
	characterRepo *repository.CharacterRepository
	gearRepo      *repository.GearSnapshotRepository
	settingsRepo  *repository.SettingsRepository
	logger        zerolog.Logger
}

func NewRosterSyncService(
	blizzard *api.BlizzardClient,
	characterRepo *repository.CharacterRepository,
	gearRepo *repository.GearSnapshotRepository,
	settingsRepo *repository.SettingsRepository,
	logger zerolog.Logger,
) *RosterSyncService {
	return &RosterSyncService{
		blizzard:      blizzard,
		characterRepo: characterRepo,
		gearRepo:      gearRepo,
		settingsRepo:  settingsRepo,
		logger:        logger,
	}
}

// SyncAll fetches, maps and upserts a snapshot for every character.
// Per-character failures are collected into the summary; a persistence
// failure is fatal for the run.
func (s *RosterSyncService) SyncAll(ctx context.Context) (*domain.SyncSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CronJobTimeout)
	defer cancel()

	characters, err := s.characterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	s.logger.Info().Int("characters", len(characters)).Msg("starting roster sync")

	summary := &domain.SyncSummary{}
	var mu sync.Mutex
	var snapshots []domain.GearSnapshot

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.SyncWorkers)

	for _, c := range characters {
		c := c
		g.Go(func() error {
			snapshot, mapErrs, err := s.syncOne(gCtx, c)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case fetch.IsNotFound(err):
				s.logger.Debug().Str("character", c.Name).Str("realm", c.Realm).Msg("character not found upstream, skipping")
				summary.Skipped++
			case err != nil:
				s.logger.Warn().Err(err).Str("character", c.Name).Str("realm", c.Realm).Msg("failed to sync character")
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s-%s: %v", c.Name, c.Realm, err))
			default:
				for _, mapErr := range mapErrs {
					summary.Errors = append(summary.Errors, fmt.Sprintf("%s-%s: %v", c.Name, c.Realm, mapErr))
				}
				snapshots = append(snapshots, *snapshot)
				summary.Synced++
			}
			return nil
		})
	}
	g.Wait()

	if err := s.gearRepo.UpsertBatch(ctx, snapshots); err != nil {
		return nil, fmt.Errorf("failed to persist gear snapshots: %w", err)
	}

	if err := s.settingsRepo.SetTime(ctx, constants.SettingRosterLastSync, time.Now()); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record roster sync marker")
	}

	s.logger.Info().
		Int("synced", summary.Synced).
		Int("skipped", summary.Skipped).
		Int("errors", len(summary.Errors)).
		Msg("roster sync completed")

	return summary, nil
}

// CheckAndSync runs a full sync only when the last one is stale. The check
// is not transactionally guarded; concurrent duplicate runs are harmless
// because persistence is last-write-wins.
func (s *RosterSyncService) CheckAndSync(ctx context.Context) (*domain.SyncSummary, bool, error) {
	lastSync, err := s.settingsRepo.GetTime(ctx, constants.SettingRosterLastSync)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read roster sync marker: %w", err)
	}

	if !NeedsResync(lastSync, time.Now(), constants.SyncStaleThreshold) {
		s.logger.Info().Time("last_sync_at", *lastSync).Msg("roster up to date, skipping sync")
		return nil, false, nil
	}

	summary, err := s.SyncAll(ctx)
	return summary, true, err
}

func (s *RosterSyncService) syncOne(ctx context.Context, c domain.Character) (*domain.GearSnapshot, []error, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var profile *api.CharacterProfileResponse
	var equipment *api.CharacterEquipmentResponse
	var mounts *api.CharacterMountsResponse

	g.Go(func() error {
		var err error
		profile, err = s.blizzard.GetCharacterProfile(gCtx, c.Realm, c.Name)
		return err
	})
	g.Go(func() error {
		var err error
		equipment, err = s.blizzard.GetCharacterEquipment(gCtx, c.Realm, c.Name)
		return err
	})
	g.Go(func() error {
		var err error
		mounts, err = s.blizzard.GetCharacterMounts(gCtx, c.Realm, c.Name)
		// a missing mount collection is not worth failing the character over
		if fetch.IsNotFound(err) {
			mounts = nil
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	snapshot, mapErrs := mapper.MapGearSnapshot(c.ID, profile, equipment, mounts, time.Now().UTC())
	return snapshot, mapErrs, nil
}
