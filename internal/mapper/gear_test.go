package mapper

import (
	"testing"
	"time"

	"guild-tracker/internal/api"
	"guild-tracker/internal/domain"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

const equipmentFixture = `{
	"equipped_items": [
		{
			"item": {"id": 212448},
			"slot": {"type": "HEAD", "name": "Head"},
			"name": "Crown of the Harvest",
			"level": {"value": 649},
			"bonus_list": [10264, 6652],
			"enchantments": [
				{"enchantment_id": 7340, "enchantment_slot": {"id": 0}},
				{"enchantment_id": 8888, "enchantment_slot": {"id": 2}}
			]
		},
		{
			"item": {"id": 45},
			"slot": {"type": "TABARD", "name": "Tabard"},
			"name": "Guild Tabard",
			"level": {"value": 1}
		},
		{
			"item": {"id": 99},
			"slot": {"type": "RELIC", "name": "Relic"},
			"name": "Mystery Relic",
			"level": {"value": 600}
		}
	]
}`

func TestMapEquippedItems(t *testing.T) {
	var payload api.CharacterEquipmentResponse
	require.NoError(t, json.Unmarshal([]byte(equipmentFixture), &payload))

	items, errs := MapEquippedItems(&payload)

	require.Len(t, items, 1, "tabard skipped, unknown slot reported")
	require.Equal(t, domain.SlotHead, items[0].Slot)
	require.Equal(t, 212448, items[0].ItemID)
	require.Equal(t, 649, items[0].ItemLevel)
	require.Equal(t, []int{10264, 6652}, items[0].BonusIDs)
	require.Equal(t, 7340, items[0].EnchantID, "only the primary enchantment slot counts")
	require.Equal(t, "Crown of the Harvest", items[0].Name)

	require.Len(t, errs, 1)
	var mapErr *UnknownMappingError
	require.ErrorAs(t, errs[0], &mapErr)
	require.Equal(t, "RELIC", mapErr.Value)
}

func TestMapGearSnapshot(t *testing.T) {
	var equipment api.CharacterEquipmentResponse
	require.NoError(t, json.Unmarshal([]byte(equipmentFixture), &equipment))

	profile := &api.CharacterProfileResponse{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"equipped_item_level": 645.5,
		"last_login_timestamp": 1756500000000
	}`), profile))

	mounts := &api.CharacterMountsResponse{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"mounts": [{"mount": {"id": 1222}}, {"mount": {"id": 441}}]
	}`), mounts))

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	snapshot, errs := MapGearSnapshot("char-1", profile, &equipment, mounts, now)

	require.Len(t, errs, 1)
	require.Equal(t, "char-1", snapshot.CharacterID)
	require.Equal(t, 645.5, snapshot.ItemLevel)
	require.Equal(t, []int{1222, 441}, snapshot.MountIDs)
	require.Equal(t, now, snapshot.SyncedAt)
	require.NotNil(t, snapshot.LastLoginAt)
	require.Equal(t, time.UnixMilli(1756500000000).UTC(), *snapshot.LastLoginAt)
}

func TestMapGearSnapshot_NoMountsNoLogin(t *testing.T) {
	equipment := &api.CharacterEquipmentResponse{}
	profile := &api.CharacterProfileResponse{}

	snapshot, errs := MapGearSnapshot("char-2", profile, equipment, nil, time.Now())
	require.Empty(t, errs)
	require.Nil(t, snapshot.MountIDs)
	require.Nil(t, snapshot.LastLoginAt)
}

func TestMapRaidKills(t *testing.T) {
	var payload api.CharacterEncountersResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"expansions": [
			{
				"expansion": {"id": 503, "name": "Dragonflight"},
				"instances": [{"instance": {"id": 1, "name": "Old Raid"}, "modes": []}]
			},
			{
				"expansion": {"id": 505, "name": "The War Within"},
				"instances": [
					{"instance": {"id": 2, "name": "Earlier Raid"}, "modes": []},
					{
						"instance": {"id": 3, "name": "Current Raid"},
						"modes": [
							{"difficulty": {"type": "NORMAL"}, "progress": {"completed_count": 8, "total_count": 8}},
							{"difficulty": {"type": "HEROIC"}, "progress": {"completed_count": 6, "total_count": 8}},
							{"difficulty": {"type": "MYTHIC"}, "progress": {"completed_count": 2, "total_count": 8}},
							{"difficulty": {"type": "LFR"}, "progress": {"completed_count": 8, "total_count": 8}}
						]
					}
				]
			}
		]
	}`), &payload))

	normal, heroic, mythic := MapRaidKills(&payload)
	require.Equal(t, 8, normal)
	require.Equal(t, 6, heroic)
	require.Equal(t, 2, mythic)
}

func TestMapRaidKills_Empty(t *testing.T) {
	normal, heroic, mythic := MapRaidKills(&api.CharacterEncountersResponse{})
	require.Zero(t, normal)
	require.Zero(t, heroic)
	require.Zero(t, mythic)
}
