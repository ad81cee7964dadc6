package service

import (
	"context"
	"fmt"

	"guild-tracker/internal/api"
	"guild-tracker/internal/cache"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/mapper"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
)

const rosterCacheTag = "roster"

// RosterService covers player/character bookkeeping: CRUD, the text-based
// roster import, and the add-with-class-auto-detect flow.
type RosterService struct {
	blizzard      *api.BlizzardClient
	playerRepo    *repository.PlayerRepository
	characterRepo *repository.CharacterRepository
	listCache     *cache.Cache[[]domain.Character]
	logger        zerolog.Logger
}

func NewRosterService(
	blizzard *api.BlizzardClient,
	playerRepo *repository.PlayerRepository,
	characterRepo *repository.CharacterRepository,
	logger zerolog.Logger,
) *RosterService {
	return &RosterService{
		blizzard:      blizzard,
		playerRepo:    playerRepo,
		characterRepo: characterRepo,
		listCache:     cache.New[[]domain.Character](constants.RosterCacheTTL),
		logger:        logger,
	}
}

func (s *RosterService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.playerRepo.List(ctx)
}

func (s *RosterService) CreatePlayer(ctx context.Context, name string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.playerRepo.Create(ctx, name)
}

func (s *RosterService) DeletePlayer(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.listCache.Invalidate(rosterCacheTag)
	return nil
}

func (s *RosterService) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	if characters, ok := s.listCache.Get("characters"); ok {
		return characters, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	characters, err := s.characterRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.listCache.Set("characters", characters, rosterCacheTag)
	return characters, nil
}

// AddCharacter creates or updates a roster character. When no class is
// given, it is auto-detected from the publisher profile.
func (s *RosterService) AddCharacter(ctx context.Context, c domain.Character) (*domain.Character, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if _, err := s.playerRepo.GetByID(ctx, c.PlayerID); err != nil {
		return nil, fmt.Errorf("unknown player %s: %w", c.PlayerID, err)
	}

	if c.Class == "" {
		apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		defer apiCancel()

		profile, err := s.blizzard.GetCharacterProfile(apiCtx, c.Realm, c.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to auto-detect class: %w", err)
		}
		class, err := mapper.ClassFromID(profile.CharacterClass.ID)
		if err != nil {
			return nil, err
		}
		c.Class = class
	}

	if c.Role == "" {
		c.Role = domain.RoleDPS
	}

	if err := s.characterRepo.Upsert(ctx, &c); err != nil {
		return nil, err
	}
	s.listCache.Invalidate(rosterCacheTag)
	return &c, nil
}

func (s *RosterService) DeleteCharacter(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.characterRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.listCache.Invalidate(rosterCacheTag)
	return nil
}

func (s *RosterService) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.characterRepo.GetByID(ctx, id)
}

// ImportRoster resolves a newline-delimited name list against the known
// characters. Unresolved lines are dropped, as the import format specifies.
func (s *RosterService) ImportRoster(ctx context.Context, input string) ([]domain.Character, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	known, err := s.characterRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	roster := mapper.ResolveRosterImport(input, known)
	s.logger.Info().Int("resolved", len(roster)).Msg("roster import resolved")
	return roster, nil
}
