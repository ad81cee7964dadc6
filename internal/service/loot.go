package service

import (
	"context"
	"fmt"
	"time"

	"guild-tracker/internal/cache"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
)

const recapCacheTag = "loot"

// LootService manages raid sessions and loot assignments and serves the
// recap aggregation behind a short-TTL cache.
type LootService struct {
	lootRepo   *repository.LootRepository
	recapCache *cache.Cache[[]domain.LootRecapRow]
	logger     zerolog.Logger
}

func NewLootService(lootRepo *repository.LootRepository, logger zerolog.Logger) *LootService {
	return &LootService{
		lootRepo:   lootRepo,
		recapCache: cache.New[[]domain.LootRecapRow](constants.RecapCacheTTL),
		logger:     logger,
	}
}

func (s *LootService) CreateSession(ctx context.Context, name string, date time.Time) (*domain.RaidSession, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.lootRepo.CreateSession(ctx, name, date)
}

func (s *LootService) ListSessions(ctx context.Context) ([]domain.RaidSession, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.lootRepo.ListSessions(ctx)
}

func (s *LootService) AddLoots(ctx context.Context, loots []domain.Loot) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.lootRepo.InsertBatch(ctx, loots); err != nil {
		return err
	}
	s.recapCache.Invalidate(recapCacheTag)
	return nil
}

func (s *LootService) Recap(ctx context.Context, from, to time.Time) ([]domain.LootRecapRow, error) {
	key := fmt.Sprintf("recap:%d:%d", from.Unix(), to.Unix())
	if recap, ok := s.recapCache.Get(key); ok {
		return recap, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	recap, err := s.lootRepo.Recap(ctx, from, to)
	if err != nil {
		return nil, err
	}

	s.recapCache.Set(key, recap, recapCacheTag)
	return recap, nil
}
