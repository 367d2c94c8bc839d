package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cloud     CloudConfig
	Sheets    SheetsConfig
	Scheduler SchedulerConfig
	Mongo     MongoConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// DatabaseConfig locates the local SQLite database file.
type DatabaseConfig struct {
	Path string
}

// CloudConfig points at the backup server used for cloud sync. Sync is an
// optional feature: an empty BaseURL disables it entirely.
type CloudConfig struct {
	BaseURL string
	APIKey  string
}

// Enabled reports whether cloud sync has been configured.
func (c CloudConfig) Enabled() bool {
	return c.BaseURL != ""
}

// SheetsConfig contains configuration for the optional Google Sheets report
// export. Empty credentials disable the feature.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the Sheets export has been configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// SchedulerConfig holds the cron schedules for background maintenance.
type SchedulerConfig struct {
	// SweepSchedule runs the orphan-record sweep.
	SweepSchedule string
	// BackupSchedule runs the automatic cloud backup; empty disables it.
	BackupSchedule string
	Timezone       string
}

// MongoConfig holds settings for the backup server's MongoDB. Only the
// syncserver binary reads this; the farm app itself never talks to Mongo.
type MongoConfig struct {
	URI    string
	DBName string
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
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getenvWithDefault("DB_PATH", "./data/kukhura.db"),
		},
		Cloud: CloudConfig{
			BaseURL: os.Getenv("CLOUD_BASE_URL"),
			APIKey:  os.Getenv("CLOUD_API_KEY"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
		},
		Scheduler: SchedulerConfig{
			SweepSchedule:  getenvWithDefault("SWEEP_CRON_SCHEDULE", "30 2 * * *"),
			BackupSchedule: os.Getenv("BACKUP_CRON_SCHEDULE"),
			Timezone:       getenvWithDefault("TIMEZONE", "Asia/Kathmandu"),
		},
		Mongo: MongoConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "kukhura"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
// Optional features (cloud sync, sheets export, scheduled backup) only
// validate when switched on.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.Database.Path == "" {
		return errors.New("DB_PATH must be provided")
	}

	if c.Cloud.Enabled() && c.Cloud.APIKey == "" {
		return errors.New("CLOUD_API_KEY must be provided when CLOUD_BASE_URL is set")
	}

	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_REPORT_ID must be provided when sheets credentials are set")
	}

	if c.Scheduler.BackupSchedule != "" && !c.Cloud.Enabled() {
		return errors.New("BACKUP_CRON_SCHEDULE requires cloud sync to be configured")
	}

	if c.Scheduler.SweepSchedule == "" {
		return errors.New("SWEEP_CRON_SCHEDULE must be provided")
	}
	if c.Scheduler.Timezone == "" {
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
