package scheduler

import (
	"testing"

	"guild-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newScheduler(cfg *config.Config) *Scheduler {
	return New(cfg, nil, nil, nil, nil, nil, zerolog.Nop())
}

func TestScheduler_RegistersAllJobs(t *testing.T) {
	s := newScheduler(&config.Config{
		RosterSyncSchedule:   "0 */4 * * *",
		ProgressSyncSchedule: "30 */4 * * *",
		SyncAllSchedule:      "0 5 * * *",
	})
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Len(t, s.cron.Entries(), 4)
}

func TestScheduler_EmptyScheduleDisablesJob(t *testing.T) {
	s := newScheduler(&config.Config{
		RosterSyncSchedule:   "",
		ProgressSyncSchedule: "30 */4 * * *",
		SyncAllSchedule:      "0 5 * * *",
	})
	require.NoError(t, s.Start())
	defer s.Stop()

	// sync-audit and cleanup share the sync-all schedule
	require.Len(t, s.cron.Entries(), 3)
}

func TestScheduler_InvalidScheduleFailsStart(t *testing.T) {
	s := newScheduler(&config.Config{RosterSyncSchedule: "not a cron expression"})
	require.Error(t, s.Start())
}
