package constants

import "time"

const (
	// Resync when the last successful sync is older than this.
	SyncStaleThreshold = 4 * time.Hour

	// Droptimizer uploads older than this are bulk-deleted by cleanup.
	DroptimizerRetention = 7 * 24 * time.Hour

	// Sync run log rows older than this are pruned by cleanup.
	SyncRunRetention = 30 * 24 * time.Hour

	RosterCacheTTL = 60 * time.Second
	RecapCacheTTL  = 60 * time.Second
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	CronJobTimeout     = 10 * time.Minute
)

const (
	// Publisher API allows 10 requests per second per client.
	PublisherRequestsPerSecond = 10

	// In-flight ceiling for the item detail scraper.
	ItemScrapeConcurrency = 40

	// Characters synced concurrently within one run.
	SyncWorkers = 10
)

const (
	RetryMaxAttempts = 3
	RetryBaseDelay   = 1 * time.Second
	RetryMaxDelay    = 16 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

// Settings keys for last-sync markers.
const (
	SettingRosterLastSync   = "sync.roster.last_sync_at"
	SettingProgressLastSync = "sync.progress.last_sync_at"
	SettingAuditLastSync    = "sync.audit.last_sync_at"
)
