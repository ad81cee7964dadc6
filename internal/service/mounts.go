package service

import (
	"context"
	"fmt"

	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// MountService computes farming priority: for each target mount, which
// roster characters are still missing it.
type MountService struct {
	characterRepo *repository.CharacterRepository
	gearRepo      *repository.GearSnapshotRepository
	logger        zerolog.Logger
}

func NewMountService(characterRepo *repository.CharacterRepository, gearRepo *repository.GearSnapshotRepository, logger zerolog.Logger) *MountService {
	return &MountService{characterRepo: characterRepo, gearRepo: gearRepo, logger: logger}
}

// Priority sorts characters into missing-lists per target mount. Characters
// that never synced count as missing everything.
func (s *MountService) Priority(ctx context.Context, targetMountIDs []int) ([]domain.MountPriority, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	characters, err := s.characterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	snapshots, err := s.gearRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gear snapshots: %w", err)
	}

	collected := make(map[string]map[int]bool, len(snapshots))
	for _, snap := range snapshots {
		owned := make(map[int]bool, len(snap.MountIDs))
		for _, id := range snap.MountIDs {
			owned[id] = true
		}
		collected[snap.CharacterID] = owned
	}

	priorities := make([]domain.MountPriority, 0, len(targetMountIDs))
	for _, mountID := range targetMountIDs {
		priority := domain.MountPriority{MountID: mountID, MissingOn: []string{}}
		for _, c := range characters {
			if collected[c.ID][mountID] {
				priority.CollectedN++
				continue
			}
			priority.MissingOn = append(priority.MissingOn, fmt.Sprintf("%s-%s", c.Name, c.Realm))
		}
		priorities = append(priorities, priority)
	}

	return priorities, nil
}
