// Package config loads the reference host process's configuration
// from the environment, the same minimal env-var-only style as the
// teacher's internal/config/config.go — no flags, no viper.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/punchamoorthee/ledgerops/internal/store"
)

// Config holds everything cmd/ledgerd needs to start.
type Config struct {
	Port         string
	Env          string
	DBSource     string // optional: enables the Postgres snapshot backend
	SnapshotPath string // optional: enables the file snapshot backend

	MaxAccounts  int
	MaxTransfers int
	MaxPending   int
}

// Load reads the process environment, applying the same defaults the
// teacher's config.Load used for Port/Env, plus the table-capacity and
// snapshot-backend variables this repo adds.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         envOr("SERVER_PORT", "8080"),
		Env:          envOr("ENVIRONMENT", "development"),
		DBSource:     os.Getenv("DB_SOURCE"),
		SnapshotPath: os.Getenv("LEDGER_SNAPSHOT_PATH"),
	}

	var err error
	if cfg.MaxAccounts, err = envIntOr("LEDGER_MAX_ACCOUNTS", store.DefaultMaxAccounts); err != nil {
		return nil, err
	}
	if cfg.MaxTransfers, err = envIntOr("LEDGER_MAX_TRANSFERS", store.DefaultMaxTransfers); err != nil {
		return nil, err
	}
	if cfg.MaxPending, err = envIntOr("LEDGER_MAX_PENDING", store.DefaultMaxPendingTransfers); err != nil {
		return nil, err
	}

	if cfg.DBSource != "" && cfg.SnapshotPath != "" {
		return nil, fmt.Errorf("DB_SOURCE and LEDGER_SNAPSHOT_PATH are mutually exclusive snapshot backends")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
