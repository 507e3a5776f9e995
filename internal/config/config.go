// Package config loads application configuration from an optional YAML
// file, applies environment variable overrides, then fills defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// defaultPepper is the shared secret mixed into salted PIN digests. It must
// match the value the existing data files were written with; override it
// via BANK_PIN_PEPPER for fresh installations.
const defaultPepper = "f6c6408a5b8a4680b7b8b7e7"

// Config holds all application configuration.
type Config struct {
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	Storage struct {
		Driver      string `yaml:"driver"` // csv | memory | sqlite | postgres
		SQLitePath  string `yaml:"sqlite_path"`
		PostgresDSN string `yaml:"postgres_dsn"`
	} `yaml:"storage"`
	Audit struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"audit"`
	Security struct {
		Pepper          string `yaml:"pepper"`
		SuspiciousLimit string `yaml:"suspicious_limit"`
		MaxAttempts     int    `yaml:"max_attempts"`
		LockoutMinutes  int    `yaml:"lockout_minutes"`
		IdleMinutes     int    `yaml:"idle_minutes"`
	} `yaml:"security"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; defaults cover everything.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BANK_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("BANK_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("BANK_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("BANK_POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("BANK_AUDIT_BROKERS"); v != "" {
		cfg.Audit.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("BANK_AUDIT_TOPIC"); v != "" {
		cfg.Audit.Topic = v
	}
	if v := os.Getenv("BANK_PIN_PEPPER"); v != "" {
		cfg.Security.Pepper = v
	}
	if v := os.Getenv("BANK_SUSPICIOUS_LIMIT"); v != "" {
		cfg.Security.SuspiciousLimit = v
	}
	if v := os.Getenv("BANK_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.MaxAttempts = n
		}
	}
	if v := os.Getenv("BANK_LOCKOUT_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.LockoutMinutes = n
		}
	}
	if v := os.Getenv("BANK_IDLE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.IdleMinutes = n
		}
	}

	// Defaults
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "csv"
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/gbanking.db"
	}
	if cfg.Audit.Topic == "" {
		cfg.Audit.Topic = "transaction_completed"
	}
	if cfg.Security.Pepper == "" {
		cfg.Security.Pepper = defaultPepper
	}
	if cfg.Security.SuspiciousLimit == "" {
		cfg.Security.SuspiciousLimit = "1000.00"
	}
	if cfg.Security.MaxAttempts == 0 {
		cfg.Security.MaxAttempts = 5
	}
	if cfg.Security.LockoutMinutes == 0 {
		cfg.Security.LockoutMinutes = 5
	}
	if cfg.Security.IdleMinutes == 0 {
		cfg.Security.IdleMinutes = 3
	}

	return cfg, nil
}

// Validate checks the fields that have no safe fallback.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "csv", "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("storage.driver must be csv, memory, sqlite or postgres, got %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.PostgresDSN == "" {
		return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
	}
	if _, err := decimal.NewFromString(c.Security.SuspiciousLimit); err != nil {
		return fmt.Errorf("security.suspicious_limit is not a decimal: %w", err)
	}
	return nil
}

// SuspiciousLimit returns the confirmation threshold as a decimal.
func (c *Config) SuspiciousLimit() decimal.Decimal {
	d, err := decimal.NewFromString(c.Security.SuspiciousLimit)
	if err != nil {
		return decimal.NewFromInt(1000)
	}
	return d
}

// LockoutWindow returns the lockout duration.
func (c *Config) LockoutWindow() time.Duration {
	return time.Duration(c.Security.LockoutMinutes) * time.Minute
}

// IdleWindow returns the inactivity window before a session is locked.
func (c *Config) IdleWindow() time.Duration {
	return time.Duration(c.Security.IdleMinutes) * time.Minute
}
