package mapper

import (
	"time"

	"guild-tracker/internal/api"
	"guild-tracker/internal/domain"
)

// MapEquippedItems translates the publisher equipment payload. Items in
// slots with no internal counterpart (tabards, shirts) are skipped; a
// genuinely unknown slot identifier is reported, not defaulted.
func MapEquippedItems(payload *api.CharacterEquipmentResponse) ([]domain.EquippedItem, []error) {
	var items []domain.EquippedItem
	var errs []error

	for _, eq := range payload.EquippedItems {
		slot, err := SlotFromType(eq.Slot.Type)
		if err != nil {
			if isIgnoredSlot(eq.Slot.Type) {
				continue
			}
			errs = append(errs, err)
			continue
		}

		item := domain.EquippedItem{
			Slot:      slot,
			ItemID:    eq.Item.ID,
			ItemLevel: eq.Level.Value,
			BonusIDs:  eq.BonusList,
			Name:      eq.Name,
		}
		for _, ench := range eq.Enchantments {
			if ench.EnchantmentSlot.ID == 0 {
				item.EnchantID = ench.EnchantmentID
				break
			}
		}
		items = append(items, item)
	}

	return items, errs
}

func isIgnoredSlot(slotType string) bool {
	switch slotType {
	case "SHIRT", "TABARD", "RANGED", "AMMO":
		return true
	}
	return false
}

// MapMountIDs flattens the publisher mount collection payload.
func MapMountIDs(payload *api.CharacterMountsResponse) []int {
	ids := make([]int, 0, len(payload.Mounts))
	for _, m := range payload.Mounts {
		ids = append(ids, m.Mount.ID)
	}
	return ids
}

// MapGearSnapshot assembles the per-character snapshot persisted after a
// roster sync. The snapshot is fully overwritten per sync, so every field is
// recomputed from the fresh payloads.
func MapGearSnapshot(characterID string, profile *api.CharacterProfileResponse, equipment *api.CharacterEquipmentResponse, mounts *api.CharacterMountsResponse, now time.Time) (*domain.GearSnapshot, []error) {
	items, errs := MapEquippedItems(equipment)

	snapshot := &domain.GearSnapshot{
		CharacterID:   characterID,
		ItemLevel:     profile.EquippedItemLevel,
		EquippedItems: items,
		SyncedAt:      now,
	}
	if mounts != nil {
		snapshot.MountIDs = MapMountIDs(mounts)
	}
	if profile.LastLoginTimestamp > 0 {
		t := time.UnixMilli(profile.LastLoginTimestamp).UTC()
		snapshot.LastLoginAt = &t
	}

	return snapshot, errs
}

// MapRaidKills reduces the encounter payload to per-difficulty boss-kill
// counts for the character's furthest expansion instance.
func MapRaidKills(payload *api.CharacterEncountersResponse) (normal, heroic, mythic int) {
	if len(payload.Expansions) == 0 {
		return 0, 0, 0
	}

	latest := payload.Expansions[len(payload.Expansions)-1]
	if len(latest.Instances) == 0 {
		return 0, 0, 0
	}

	instance := latest.Instances[len(latest.Instances)-1]
	for _, mode := range instance.Modes {
		difficulty, err := DifficultyFromType(mode.Difficulty.Type)
		if err != nil {
			continue
		}
		switch difficulty {
		case domain.DifficultyNormal:
			normal = mode.Progress.CompletedCount
		case domain.DifficultyHeroic:
			heroic = mode.Progress.CompletedCount
		case domain.DifficultyMythic:
			mythic = mode.Progress.CompletedCount
		}
	}
	return normal, heroic, mythic
}
