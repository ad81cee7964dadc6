package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	BlizzardClientID     string
	BlizzardClientSecret string
	BlizzardRegion       string
	RaiderIOAPIKey       string
	WowAuditAPIKey       string

	// Shared secret checked on /cron endpoints.
	CronSecret string

	// Cron expressions for the in-process scheduler. Setting one to an
	// empty string disables that job.
	RosterSyncSchedule   string
	ProgressSyncSchedule string
	SyncAllSchedule      string

	DBPath     string
	ServerPort string
	LogLevel   string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		BlizzardClientID:     getEnv("BLIZZARD_CLIENT_ID", ""),
		BlizzardClientSecret: getEnv("BLIZZARD_CLIENT_SECRET", ""),
		BlizzardRegion:       getEnv("BLIZZARD_REGION", "eu"),
		RaiderIOAPIKey:       getEnv("RAIDERIO_API_KEY", ""),
		WowAuditAPIKey:       getEnv("WOWAUDIT_API_KEY", ""),
		CronSecret:           getEnv("CRON_SECRET", ""),
		RosterSyncSchedule:   getEnvAllowEmpty("ROSTER_SYNC_SCHEDULE", "0 */4 * * *"),
		ProgressSyncSchedule: getEnvAllowEmpty("PROGRESS_SYNC_SCHEDULE", "30 */4 * * *"),
		SyncAllSchedule:      getEnvAllowEmpty("SYNC_ALL_SCHEDULE", "0 5 * * *"),
		DBPath:               getEnv("DB_PATH", "guild.db"),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	if cfg.BlizzardClientID == "" || cfg.BlizzardClientSecret == "" {
		return nil, fmt.Errorf("BLIZZARD_CLIENT_ID and BLIZZARD_CLIENT_SECRET are required")
	}
	if cfg.CronSecret == "" {
		return nil, fmt.Errorf("CRON_SECRET is required")
	}

	logger.Info().
		Str("region", cfg.BlizzardRegion).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvAllowEmpty keeps an explicitly-set empty value instead of
// substituting the fallback. Schedules use it so setting a key to "" turns
// the job off.
func getEnvAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
