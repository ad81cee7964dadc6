package service

import (
	"context"
	"fmt"
	"time"

	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/mapper"
	"guild-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// DroptimizerService validates and stores simulation-report uploads.
type DroptimizerService struct {
	droptimizerRepo *repository.DroptimizerRepository
	characterRepo   *repository.CharacterRepository
	logger          zerolog.Logger
}

func NewDroptimizerService(
	droptimizerRepo *repository.DroptimizerRepository,
	characterRepo *repository.CharacterRepository,
	logger zerolog.Logger,
) *DroptimizerService {
	return &DroptimizerService{
		droptimizerRepo: droptimizerRepo,
		characterRepo:   characterRepo,
		logger:          logger,
	}
}

// DroptimizerUpload is one incoming simulation report.
type DroptimizerUpload struct {
	CharacterID string                     `json:"character_id"`
	FightStyle  string                     `json:"fight_style"`
	SimDate     time.Time                  `json:"sim_date"`
	Upgrades    []DroptimizerUploadUpgrade `json:"upgrades"`
}

type DroptimizerUploadUpgrade struct {
	ItemID     int     `json:"item_id"`
	Slot       string  `json:"slot"`
	DPSGain    float64 `json:"dps_gain"`
	ItemString string  `json:"item_string"`
	BaseLevel  int     `json:"base_level"`
}

// Store persists the upload. Upgrades with malformed item strings are
// skipped and reported in the summary; the report itself is only rejected
// when the character is unknown or nothing valid remains.
func (s *DroptimizerService) Store(ctx context.Context, upload DroptimizerUpload) (*domain.Droptimizer, *domain.SyncSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.characterRepo.GetByID(ctx, upload.CharacterID); err != nil {
		return nil, nil, fmt.Errorf("unknown character %s: %w", upload.CharacterID, err)
	}

	summary := &domain.SyncSummary{}
	report := &domain.Droptimizer{
		CharacterID: upload.CharacterID,
		FightStyle:  upload.FightStyle,
		SimDate:     upload.SimDate,
	}

	for _, upgrade := range upload.Upgrades {
		mapped, err := s.mapUpgrade(upgrade)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("item %d: %v", upgrade.ItemID, err))
			continue
		}
		report.Upgrades = append(report.Upgrades, *mapped)
		summary.Synced++
	}

	if len(report.Upgrades) == 0 {
		return nil, summary, fmt.Errorf("no valid upgrades in upload")
	}

	if err := s.droptimizerRepo.Insert(ctx, report); err != nil {
		return nil, summary, err
	}
	return report, summary, nil
}

func (s *DroptimizerService) ListByCharacter(ctx context.Context, characterID string) ([]domain.Droptimizer, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.droptimizerRepo.ListByCharacter(ctx, characterID)
}

func (s *DroptimizerService) mapUpgrade(upgrade DroptimizerUploadUpgrade) (*domain.DroptimizerUpgrade, error) {
	slot, err := mapper.SlotFromType(upgrade.Slot)
	if err != nil {
		// uploads use the internal lower-case slot names; accept those too
		slot = domain.Slot(upgrade.Slot)
		if !knownSlot(slot) {
			return nil, err
		}
	}

	mapped := &domain.DroptimizerUpgrade{
		ItemID:     upgrade.ItemID,
		Slot:       slot,
		DPSGain:    upgrade.DPSGain,
		ItemLevel:  upgrade.BaseLevel,
		ItemString: upgrade.ItemString,
	}

	if upgrade.ItemString != "" {
		parsed, err := mapper.ParseItemString(upgrade.ItemString)
		if err != nil {
			return nil, err
		}
		if parsed.ItemID != upgrade.ItemID {
			return nil, fmt.Errorf("item string encodes item %d, upload says %d", parsed.ItemID, upgrade.ItemID)
		}
		mapped.ItemLevel = mapper.EffectiveItemLevel(parsed, mapper.CurrentSeason, upgrade.BaseLevel)
		if entry, ok := mapper.TrackForBonuses(parsed.BonusIDs, mapper.CurrentSeason); ok {
			mapped.Track = entry.Track
		}
	}

	return mapped, nil
}

func knownSlot(slot domain.Slot) bool {
	switch slot {
	case domain.SlotHead, domain.SlotNeck, domain.SlotShoulder, domain.SlotBack,
		domain.SlotChest, domain.SlotWrist, domain.SlotHands, domain.SlotWaist,
		domain.SlotLegs, domain.SlotFeet, domain.SlotFinger1, domain.SlotFinger2,
		domain.SlotTrinket1, domain.SlotTrinket2, domain.SlotMainHand, domain.SlotOffHand:
		return true
	}
	return false
}
