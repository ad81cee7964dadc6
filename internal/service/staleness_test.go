package service

import (
	"testing"
	"time"

	"guild-tracker/internal/constants"

	"github.com/stretchr/testify/require"
)

func TestNeedsResync(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.True(t, NeedsResync(nil, now, constants.SyncStaleThreshold), "never synced")

	fiveHoursAgo := now.Add(-5 * time.Hour)
	require.True(t, NeedsResync(&fiveHoursAgo, now, constants.SyncStaleThreshold))

	oneHourAgo := now.Add(-time.Hour)
	require.False(t, NeedsResync(&oneHourAgo, now, constants.SyncStaleThreshold))
}

func TestNeedsResync_ThresholdBoundary(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	exactly := now.Add(-constants.SyncStaleThreshold)
	require.False(t, NeedsResync(&exactly, now, constants.SyncStaleThreshold), "exactly at threshold is still fresh")

	justOver := exactly.Add(-time.Second)
	require.True(t, NeedsResync(&justOver, now, constants.SyncStaleThreshold))
}
