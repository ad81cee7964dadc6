package mapper

import (
	"fmt"

	"guild-tracker/internal/domain"
)

// UnknownMappingError reports an upstream identifier with no internal
// counterpart. Mapping never silently defaults.
type UnknownMappingError struct {
	Kind  string
	Value string
}

func (e *UnknownMappingError) Error() string {
	return fmt.Sprintf("unknown %s mapping: %q", e.Kind, e.Value)
}

// ClassFromID maps the publisher's playable-class IDs.
func ClassFromID(id int) (domain.Class, error) {
	switch id {
	case 1:
		return domain.ClassWarrior, nil
	case 2:
		return domain.ClassPaladin, nil
	case 3:
		return domain.ClassHunter, nil
	case 4:
		return domain.ClassRogue, nil
	case 5:
		return domain.ClassPriest, nil
	case 6:
		return domain.ClassDeathKnight, nil
	case 7:
		return domain.ClassShaman, nil
	case 8:
		return domain.ClassMage, nil
	case 9:
		return domain.ClassWarlock, nil
	case 10:
		return domain.ClassMonk, nil
	case 11:
		return domain.ClassDruid, nil
	case 12:
		return domain.ClassDemonHunter, nil
	case 13:
		return domain.ClassEvoker, nil
	}
	return "", &UnknownMappingError{Kind: "class", Value: fmt.Sprintf("%d", id)}
}

// ClassFromName maps spelled-out class names, as the spreadsheet API
// delivers them.
func ClassFromName(name string) (domain.Class, error) {
	switch name {
	case "Warrior":
		return domain.ClassWarrior, nil
	case "Paladin":
		return domain.ClassPaladin, nil
	case "Hunter":
		return domain.ClassHunter, nil
	case "Rogue":
		return domain.ClassRogue, nil
	case "Priest":
		return domain.ClassPriest, nil
	case "Death Knight":
		return domain.ClassDeathKnight, nil
	case "Shaman":
		return domain.ClassShaman, nil
	case "Mage":
		return domain.ClassMage, nil
	case "Warlock":
		return domain.ClassWarlock, nil
	case "Monk":
		return domain.ClassMonk, nil
	case "Druid":
		return domain.ClassDruid, nil
	case "Demon Hunter":
		return domain.ClassDemonHunter, nil
	case "Evoker":
		return domain.ClassEvoker, nil
	}
	return "", &UnknownMappingError{Kind: "class", Value: name}
}

// RoleFromName maps spreadsheet role labels.
func RoleFromName(role string) (domain.Role, error) {
	switch role {
	case "Tank":
		return domain.RoleTank, nil
	case "Heal", "Healer":
		return domain.RoleHealer, nil
	case "Melee", "Ranged", "DPS":
		return domain.RoleDPS, nil
	}
	return "", &UnknownMappingError{Kind: "role", Value: role}
}

// SlotFromType maps the publisher's equipment slot identifiers.
func SlotFromType(slotType string) (domain.Slot, error) {
	switch slotType {
	case "HEAD":
		return domain.SlotHead, nil
	case "NECK":
		return domain.SlotNeck, nil
	case "SHOULDER":
		return domain.SlotShoulder, nil
	case "BACK":
		return domain.SlotBack, nil
	case "CHEST":
		return domain.SlotChest, nil
	case "WRIST":
		return domain.SlotWrist, nil
	case "HANDS":
		return domain.SlotHands, nil
	case "WAIST":
		return domain.SlotWaist, nil
	case "LEGS":
		return domain.SlotLegs, nil
	case "FEET":
		return domain.SlotFeet, nil
	case "FINGER_1":
		return domain.SlotFinger1, nil
	case "FINGER_2":
		return domain.SlotFinger2, nil
	case "TRINKET_1":
		return domain.SlotTrinket1, nil
	case "TRINKET_2":
		return domain.SlotTrinket2, nil
	case "MAIN_HAND":
		return domain.SlotMainHand, nil
	case "OFF_HAND":
		return domain.SlotOffHand, nil
	}
	return "", &UnknownMappingError{Kind: "slot", Value: slotType}
}

// DifficultyFromType maps the publisher's raid difficulty identifiers.
func DifficultyFromType(difficultyType string) (domain.Difficulty, error) {
	switch difficultyType {
	case "LFR":
		return domain.DifficultyLFR, nil
	case "NORMAL":
		return domain.DifficultyNormal, nil
	case "HEROIC":
		return domain.DifficultyHeroic, nil
	case "MYTHIC":
		return domain.DifficultyMythic, nil
	}
	return "", &UnknownMappingError{Kind: "difficulty", Value: difficultyType}
}
