package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/khsu/projectms/internal/credential"
	"github.com/khsu/projectms/internal/model"
	"github.com/khsu/projectms/internal/notify"
	"github.com/khsu/projectms/internal/reminder"
	"github.com/khsu/projectms/internal/store"
)

var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "pm",
		Short:   "Project management service with task reminders",
		Version: Version,
	}

	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", model.DefaultConfigPath(), "config file path",
	)

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(remindCmd())
	rootCmd.AddCommand(upcomingCmd())
	rootCmd.AddCommand(testEmailCmd())
	rootCmd.AddCommand(credentialCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the wired components shared by the subcommands.
type app struct {
	cfg      *model.AppConfig
	store    *store.SQLiteStore
	notifier notify.Notifier
	engine   *reminder.Engine
}

// loadApp reads the config, opens the store, and wires the reminder
// engine. The caller must Close it.
func loadApp() (*app, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// The config file may omit the SMTP password in favor of the
	// system keyring.
	if cfg.SMTP.Password == "" {
		if pw, err := credential.Get(credential.SMTPPasswordKey); err == nil {
			cfg.SMTP.Password = pw
		}
	}

	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	notifier := notify.NewSMTPNotifier(cfg.SMTP)
	engine := reminder.NewEngine(s, notifier, reminder.Config{
		LookaheadDays: cfg.Reminder.LookaheadDays,
		DedupePerDay:  cfg.Reminder.DedupePerDay,
	})

	return &app{cfg: cfg, store: s, notifier: notifier, engine: engine}, nil
}

// Close releases the app's resources.
func (a *app) Close() error {
	return a.store.Close()
}
