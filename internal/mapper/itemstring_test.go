package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseItemString_FixedFields(t *testing.T) {
	item, err := ParseItemString("212448:7340:213743:0:0:0:0:12345:80:268:0:5:0")
	require.NoError(t, err)

	require.Equal(t, 212448, item.ItemID)
	require.Equal(t, 7340, item.EnchantID)
	require.Equal(t, [4]int{213743, 0, 0, 0}, item.GemIDs)
	require.Equal(t, 12345, item.UniqueID)
	require.Equal(t, 80, item.LinkLevel)
	require.Equal(t, 268, item.SpecializationID)
	require.Equal(t, 5, item.ContextID)
	require.Empty(t, item.BonusIDs)
	require.Nil(t, item.UpgradeValue)
}

func TestParseItemString_BonusIDs(t *testing.T) {
	item, err := ParseItemString("212448:0:0:0:0:0:0:0:80:268:0:5:3:10264:6652:10877")
	require.NoError(t, err)
	require.Equal(t, []int{10264, 6652, 10877}, item.BonusIDs)
	require.Nil(t, item.UpgradeValue)
}

func TestParseItemString_TrailingUpgradeValue(t *testing.T) {
	item, err := ParseItemString("212448:0:0:0:0:0:0:0:80:268:0:5:2:10264:6652:4")
	require.NoError(t, err)
	require.Equal(t, []int{10264, 6652}, item.BonusIDs)
	require.NotNil(t, item.UpgradeValue)
	require.Equal(t, 4, *item.UpgradeValue)
}

func TestParseItemString_EmptyTokensDecodeAsZero(t *testing.T) {
	item, err := ParseItemString("212448::::::::80:268:::0")
	require.NoError(t, err)
	require.Equal(t, 212448, item.ItemID)
	require.Equal(t, 0, item.EnchantID)
	require.Equal(t, [4]int{}, item.GemIDs)
	require.Equal(t, 0, item.UpgradeID)
}

func TestParseItemString_TooFewTokens(t *testing.T) {
	_, err := ParseItemString("212448:0:0")
	require.Error(t, err)
}

func TestParseItemString_BonusCountExceedsTokens(t *testing.T) {
	_, err := ParseItemString("212448:0:0:0:0:0:0:0:80:268:0:5:4:10264")
	require.Error(t, err)
}

func TestParseItemString_NonNumericToken(t *testing.T) {
	_, err := ParseItemString("abc:0:0:0:0:0:0:0:80:268:0:5:0")
	require.Error(t, err)
}

func TestItemLevelForBonuses(t *testing.T) {
	level := ItemLevelForBonuses([]int{6652, 10264}, CurrentSeason, 600)
	require.Equal(t, 649, level, "Hero track level 1")

	level = ItemLevelForBonuses([]int{6652, 40}, CurrentSeason, 600)
	require.Equal(t, 600, level, "no track bonus falls back to base level")
}

func TestTrackForBonuses(t *testing.T) {
	entry, ok := TrackForBonuses([]int{10267}, CurrentSeason)
	require.True(t, ok)
	require.Equal(t, "Myth", entry.Track)
	require.Equal(t, 2, entry.Level)
	require.Equal(t, 665, entry.ItemLevel)

	_, ok = TrackForBonuses(nil, CurrentSeason)
	require.False(t, ok)
}

func TestEffectiveItemLevel(t *testing.T) {
	item, err := ParseItemString("212448:0:0:0:0:0:0:0:80:268:0:5:1:10262")
	require.NoError(t, err)
	require.Equal(t, 636, EffectiveItemLevel(item, CurrentSeason, 600))
}
