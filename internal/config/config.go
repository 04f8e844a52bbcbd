package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// FeedWindowMode selects how the weekly feed series window is anchored.
type FeedWindowMode string

const (
	// WindowRolling is a trailing 7-day lookback from the request instant.
	WindowRolling FeedWindowMode = "rolling"
	// WindowCalendar is the current Monday-anchored calendar week.
	WindowCalendar FeedWindowMode = "calendar"
)

// Config represents the full application configuration surface.
type Config struct {
	Server        ServerConfig
	MongoDB       MongoDBConfig
	Statistics    StatisticsConfig
	Notifications NotificationsConfig
	Snapshot      SnapshotConfig
	AI            AIConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// StatisticsConfig holds options for the statistics engine.
type StatisticsConfig struct {
	FeedWindowMode FeedWindowMode
}

// NotificationsConfig holds thresholds for the notification deriver.
type NotificationsConfig struct {
	VaccinationLookaheadDays int
	HealthCheckStaleDays     int
	ListLimit                int
}

// SnapshotConfig holds scheduler-related settings for nightly farm snapshots.
type SnapshotConfig struct {
	CronSchedule string
	Timezone     string
}

// AIConfig holds settings for the chat assistant provider. The key is
// optional; when absent the assistant endpoint is disabled.
type AIConfig struct {
	AnthropicKey string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	lookahead, err := getenvInt("NOTIFICATION_VACCINATION_LOOKAHEAD_DAYS", 3)
	if err != nil {
		return nil, err
	}
	staleDays, err := getenvInt("NOTIFICATION_HEALTH_CHECK_STALE_DAYS", 28)
	if err != nil {
		return nil, err
	}
	listLimit, err := getenvInt("NOTIFICATION_LIST_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "poultrycare"),
		},
		Statistics: StatisticsConfig{
			FeedWindowMode: FeedWindowMode(getenvWithDefault("FEED_WINDOW_MODE", string(WindowRolling))),
		},
		Notifications: NotificationsConfig{
			VaccinationLookaheadDays: lookahead,
			HealthCheckStaleDays:     staleDays,
			ListLimit:                listLimit,
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Conakry"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	switch c.Statistics.FeedWindowMode {
	case WindowRolling, WindowCalendar:
	default:
		return fmt.Errorf("FEED_WINDOW_MODE must be %q or %q", WindowRolling, WindowCalendar)
	}

	switch {
	case c.Notifications.VaccinationLookaheadDays < 0:
		return errors.New("NOTIFICATION_VACCINATION_LOOKAHEAD_DAYS must not be negative")
	case c.Notifications.HealthCheckStaleDays <= 0:
		return errors.New("NOTIFICATION_HEALTH_CHECK_STALE_DAYS must be positive")
	case c.Notifications.ListLimit <= 0:
		return errors.New("NOTIFICATION_LIST_LIMIT must be positive")
	}

	if c.Snapshot.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}
	if c.Snapshot.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
