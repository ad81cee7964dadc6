package service

import "time"

// NeedsResync reports whether a sync marker is stale: true when no prior
// sync exists or the last one is older than the threshold.
func NeedsResync(lastSyncAt *time.Time, now time.Time, threshold time.Duration) bool {
	if lastSyncAt == nil {
		return true
	}
	return now.Sub(*lastSyncAt) > threshold
}
