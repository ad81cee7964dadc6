package domain

import (
	"time"
)

type Class string

const (
	ClassWarrior     Class = "Warrior"
	ClassPaladin     Class = "Paladin"
	ClassHunter      Class = "Hunter"
	ClassRogue       Class = "Rogue"
	ClassPriest      Class = "Priest"
	ClassDeathKnight Class = "Death Knight"
	ClassShaman      Class = "Shaman"
	ClassMage        Class = "Mage"
	ClassWarlock     Class = "Warlock"
	ClassMonk        Class = "Monk"
	ClassDruid       Class = "Druid"
	ClassDemonHunter Class = "Demon Hunter"
	ClassEvoker      Class = "Evoker"
)

type Role string

const (
	RoleTank   Role = "Tank"
	RoleHealer Role = "Healer"
	RoleDPS    Role = "DPS"
)

type Slot string

const (
	SlotHead     Slot = "head"
	SlotNeck     Slot = "neck"
	SlotShoulder Slot = "shoulder"
	SlotBack     Slot = "back"
	SlotChest    Slot = "chest"
	SlotWrist    Slot = "wrist"
	SlotHands    Slot = "hands"
	SlotWaist    Slot = "waist"
	SlotLegs     Slot = "legs"
	SlotFeet     Slot = "feet"
	SlotFinger1  Slot = "finger1"
	SlotFinger2  Slot = "finger2"
	SlotTrinket1 Slot = "trinket1"
	SlotTrinket2 Slot = "trinket2"
	SlotMainHand Slot = "main_hand"
	SlotOffHand  Slot = "off_hand"
)

type Difficulty string

const (
	DifficultyLFR    Difficulty = "LFR"
	DifficultyNormal Difficulty = "Normal"
	DifficultyHeroic Difficulty = "Heroic"
	DifficultyMythic Difficulty = "Mythic"
)

type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Character struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	Name      string    `json:"name"`
	Realm     string    `json:"realm"`
	Class     Class     `json:"class"`
	Role      Role      `json:"role"`
	Main      bool      `json:"main"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EquippedItem is one slot of a character's equipped gear, decoded from the
// publisher equipment payload.
type EquippedItem struct {
	Slot      Slot   `json:"slot"`
	ItemID    int    `json:"item_id"`
	ItemLevel int    `json:"item_level"`
	BonusIDs  []int  `json:"bonus_ids,omitempty"`
	EnchantID int    `json:"enchant_id,omitempty"`
	Name      string `json:"name,omitempty"`
}

// VaultSlot is one weekly-reward option offered to a character.
type VaultSlot struct {
	Index     int `json:"index"`
	ItemLevel int `json:"item_level"`
}

// GearSnapshot is the last-synced publisher profile for one character.
// One row per character, fully overwritten on each sync.
type GearSnapshot struct {
	CharacterID   string         `json:"character_id"`
	ItemLevel     float64        `json:"item_level"`
	EquippedItems []EquippedItem `json:"equipped_items"`
	MountIDs      []int          `json:"mount_ids"`
	VaultSlots    []VaultSlot    `json:"vault_slots"`
	LastLoginAt   *time.Time     `json:"last_login_at,omitempty"`
	SyncedAt      time.Time      `json:"synced_at"`
}

// ProgressRecord is the last-synced guild-progress metrics for one character.
// One row per character, overwritten per sync.
type ProgressRecord struct {
	CharacterID   string    `json:"character_id"`
	KeystoneScore float64   `json:"keystone_score"`
	RaidSummary   string    `json:"raid_summary"`
	NormalKills   int       `json:"normal_kills"`
	HeroicKills   int       `json:"heroic_kills"`
	MythicKills   int       `json:"mythic_kills"`
	SyncedAt      time.Time `json:"synced_at"`
}

// DroptimizerUpgrade is one simulated item upgrade inside a report.
type DroptimizerUpgrade struct {
	ItemID     int     `json:"item_id"`
	Slot       Slot    `json:"slot"`
	DPSGain    float64 `json:"dps_gain"`
	ItemLevel  int     `json:"item_level,omitempty"`
	Track      string  `json:"track,omitempty"`
	ItemString string  `json:"item_string,omitempty"`
}

// Droptimizer is an immutable simulation upload for one character at one
// point in time. Eligible for age-based bulk deletion.
type Droptimizer struct {
	ID          string               `json:"id"`
	CharacterID string               `json:"character_id"`
	FightStyle  string               `json:"fight_style"`
	SimDate     time.Time            `json:"sim_date"`
	Upgrades    []DroptimizerUpgrade `json:"upgrades"`
	CreatedAt   time.Time            `json:"created_at"`
}

type RaidSession struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type Loot struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	CharacterID *string    `json:"character_id,omitempty"`
	ItemID      int        `json:"item_id"`
	Slot        Slot       `json:"slot"`
	Difficulty  Difficulty `json:"difficulty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SyncRun is one scheduled job execution. Append-only audit trail.
type SyncRun struct {
	ID           string    `json:"id"`
	JobName      string    `json:"job_name"`
	Status       string    `json:"status"` // "success" or "failed"
	Results      *string   `json:"results,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
	DurationMS   int64     `json:"duration_ms"`
}

const (
	SyncRunSuccess = "success"
	SyncRunFailed  = "failed"
)

type Setting struct {
	Key   string
	Value string
}

// SyncSummary is the outcome of one sync run.
type SyncSummary struct {
	Synced  int      `json:"synced"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// ItemString is the decoded colon-delimited positional encoding exported by
// the game client addon.
type ItemString struct {
	ItemID           int
	EnchantID        int
	GemIDs           [4]int
	SuffixID         int
	UniqueID         int
	LinkLevel        int
	SpecializationID int
	UpgradeID        int
	ContextID        int
	BonusIDs         []int
	UpgradeValue     *int
}

// LootRecapRow is one aggregate bucket of the loot recap.
type LootRecapRow struct {
	CharacterID   string     `json:"character_id"`
	CharacterName string     `json:"character_name"`
	Difficulty    Difficulty `json:"difficulty"`
	Slot          Slot       `json:"slot"`
	Count         int        `json:"count"`
}

// MountPriority lists the characters still missing one target mount.
type MountPriority struct {
	MountID    int      `json:"mount_id"`
	MissingOn  []string `json:"missing_on"`
	CollectedN int      `json:"collected_count"`
}
