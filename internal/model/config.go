package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. ":memory:" is valid for tests.
	Path string `mapstructure:"path" yaml:"path"`
}

// HTTPConfig holds the JSON API listener settings.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// SMTPConfig holds outbound email settings. Password may be left
// empty in the file and resolved from the system keyring instead.
type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	From     string `mapstructure:"from" yaml:"from"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`
}

// ReminderConfig controls the reminder engine and scheduler.
type ReminderConfig struct {
	// LookaheadDays is the reminder eligibility window: tasks due
	// within this many days (or already overdue) qualify.
	LookaheadDays int `mapstructure:"lookahead_days" yaml:"lookahead_days"`

	// ScanIntervalSec is the cadence between scheduled scans.
	ScanIntervalSec int `mapstructure:"scan_interval_sec" yaml:"scan_interval_sec"`

	// RetryIntervalSec is the shortened wait after a failed cycle.
	RetryIntervalSec int `mapstructure:"retry_interval_sec" yaml:"retry_interval_sec"`

	// RetentionDays is how long notification rows are kept before the
	// scheduler purges them. 0 disables purging.
	RetentionDays int `mapstructure:"retention_days" yaml:"retention_days"`

	// DedupePerDay suppresses repeat reminders for a task within the
	// same calendar day.
	DedupePerDay bool `mapstructure:"dedupe_per_day" yaml:"dedupe_per_day"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	HTTP     HTTPConfig     `mapstructure:"http" yaml:"http"`
	SMTP     SMTPConfig     `mapstructure:"smtp" yaml:"smtp"`
	Reminder ReminderConfig `mapstructure:"reminder" yaml:"reminder"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/projectms/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "projectms", "config.yaml")
}

// defaultDatabasePath returns ~/.local/share/projectms/projectms.db.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "projectms.db")
	}
	return filepath.Join(home, ".local", "share", "projectms", "projectms.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: defaultDatabasePath()},
		HTTP:     HTTPConfig{Addr: ":8080"},
		SMTP: SMTPConfig{
			Port: "587",
		},
		Reminder: ReminderConfig{
			LookaheadDays:    3,
			ScanIntervalSec:  86400,
			RetryIntervalSec: 3600,
			RetentionDays:    90,
			DedupePerDay:     true,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns a default
// configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", defaultDatabasePath())
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("reminder.lookahead_days", 3)
	v.SetDefault("reminder.scan_interval_sec", 86400)
	v.SetDefault("reminder.retry_interval_sec", 3600)
	v.SetDefault("reminder.retention_days", 90)
	v.SetDefault("reminder.dedupe_per_day", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("http", cfg.HTTP)
	v.Set("smtp", cfg.SMTP)
	v.Set("reminder", cfg.Reminder)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
