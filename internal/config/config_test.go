package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BLIZZARD_CLIENT_ID", "id")
	t.Setenv("BLIZZARD_CLIENT_SECRET", "secret")
	t.Setenv("CRON_SECRET", "s3cret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, "0 */4 * * *", cfg.RosterSyncSchedule)
	require.Equal(t, "8080", cfg.ServerPort)
}

func TestLoad_ExplicitEmptyScheduleSticks(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ROSTER_SYNC_SCHEDULE", "")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	require.Empty(t, cfg.RosterSyncSchedule)
	require.Equal(t, "30 */4 * * *", cfg.ProgressSyncSchedule)
}

func TestLoad_MissingCronSecret(t *testing.T) {
	t.Setenv("BLIZZARD_CLIENT_ID", "id")
	t.Setenv("BLIZZARD_CLIENT_SECRET", "secret")
	t.Setenv("CRON_SECRET", "")

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
}
