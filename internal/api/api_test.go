package api

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	require.Equal(t, "tarren-mill", slugify("Tarren Mill"))
	require.Equal(t, "kiljaeden", slugify("Kil'jaeden"))
	require.Equal(t, "silvermoon", slugify("  Silvermoon "))
}

func TestRaiderIOCharacterResponse_KeystoneScore(t *testing.T) {
	var r RaiderIOCharacterResponse
	require.Zero(t, r.KeystoneScore())

	require.NoError(t, json.Unmarshal([]byte(`{
		"mythic_plus_scores_by_season": [
			{"season": "season-tww-2", "scores": {"all": 2750.5}},
			{"season": "season-tww-1", "scores": {"all": 3100.0}}
		]
	}`), &r))
	require.Equal(t, 2750.5, r.KeystoneScore(), "first entry is the current season")
}

func TestRaiderIOCharacterResponse_CurrentRaid(t *testing.T) {
	var r RaiderIOCharacterResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"raid_progression": {
			"old-raid": {"summary": "8/8 M", "mythic_bosses_killed": 8, "heroic_bosses_killed": 8, "normal_bosses_killed": 8},
			"current-raid": {"summary": "2/8 M", "mythic_bosses_killed": 2, "heroic_bosses_killed": 8, "normal_bosses_killed": 8}
		}
	}`), &r))

	name, prog := r.CurrentRaid()
	require.Equal(t, "old-raid", name, "most mythic kills wins")
	require.NotNil(t, prog)
	require.Equal(t, "8/8 M", prog.Summary)
}

func TestRaiderIOCharacterResponse_CurrentRaidEmpty(t *testing.T) {
	var r RaiderIOCharacterResponse
	name, prog := r.CurrentRaid()
	require.Empty(t, name)
	require.Nil(t, prog)
}
