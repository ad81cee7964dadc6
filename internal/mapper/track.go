package mapper

import "guild-tracker/internal/domain"

// TrackEntry ties one upgrade-track bonus ID to the item level it confers
// within a season.
type TrackEntry struct {
	BonusID   int
	Track     string
	Level     int
	MaxLevel  int
	ItemLevel int
}

// Season groups the upgrade-track bonus table in effect for a content
// season.
type Season struct {
	Slug    string
	Entries []TrackEntry
}

// CurrentSeason is the active upgrade-track table. Bonus IDs are taken from
// the game client's data export for the season.
var CurrentSeason = Season{
	Slug: "tww-2",
	Entries: []TrackEntry{
		{BonusID: 10256, Track: "Explorer", Level: 1, MaxLevel: 8, ItemLevel: 597},
		{BonusID: 10257, Track: "Explorer", Level: 2, MaxLevel: 8, ItemLevel: 600},
		{BonusID: 10258, Track: "Adventurer", Level: 1, MaxLevel: 8, ItemLevel: 610},
		{BonusID: 10259, Track: "Adventurer", Level: 2, MaxLevel: 8, ItemLevel: 613},
		{BonusID: 10260, Track: "Veteran", Level: 1, MaxLevel: 8, ItemLevel: 623},
		{BonusID: 10261, Track: "Veteran", Level: 2, MaxLevel: 8, ItemLevel: 626},
		{BonusID: 10262, Track: "Champion", Level: 1, MaxLevel: 8, ItemLevel: 636},
		{BonusID: 10263, Track: "Champion", Level: 2, MaxLevel: 8, ItemLevel: 639},
		{BonusID: 10264, Track: "Hero", Level: 1, MaxLevel: 6, ItemLevel: 649},
		{BonusID: 10265, Track: "Hero", Level: 2, MaxLevel: 6, ItemLevel: 652},
		{BonusID: 10266, Track: "Myth", Level: 1, MaxLevel: 6, ItemLevel: 662},
		{BonusID: 10267, Track: "Myth", Level: 2, MaxLevel: 6, ItemLevel: 665},
	},
}

// ItemLevelForBonuses resolves the effective item level of an item by
// locating a matching upgrade-track bonus entry in the season table. Absent
// a match, the item's base level stands.
func ItemLevelForBonuses(bonusIDs []int, season Season, baseLevel int) int {
	for _, id := range bonusIDs {
		for _, entry := range season.Entries {
			if entry.BonusID == id {
				return entry.ItemLevel
			}
		}
	}
	return baseLevel
}

// TrackForBonuses resolves the upgrade track an item sits on, empty when no
// track bonus is present.
func TrackForBonuses(bonusIDs []int, season Season) (TrackEntry, bool) {
	for _, id := range bonusIDs {
		for _, entry := range season.Entries {
			if entry.BonusID == id {
				return entry, true
			}
		}
	}
	return TrackEntry{}, false
}

// EffectiveItemLevel resolves a decoded item string against the season
// table, falling back to the given base level.
func EffectiveItemLevel(item *domain.ItemString, season Season, baseLevel int) int {
	return ItemLevelForBonuses(item.BonusIDs, season, baseLevel)
}
