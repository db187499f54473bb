package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	Port      string
	LogLevel  string
	Session   SessionConfig
	Storage   StorageConfig
	AccessLog AccessLogConfig
}

type SessionConfig struct {
	Secret string
}

type StorageConfig struct {
	Driver string
	DBPath string
}

type AccessLogConfig struct {
	Retention     time.Duration
	PruneSchedule string
}

var defaults = map[string]any{
	"port":                      "3000",
	"log.level":                 "info",
	"session.secret":            "ctf-idor-secret",
	"storage.driver":            DriverSQLite,
	"db.path":                   ":memory:",
	"access_log.retention":      "24h",
	"access_log.prune_schedule": "@every 1m",
}

var envBindings = map[string]string{
	"port":                      "PORT",
	"log.level":                 "LOG_LEVEL",
	"session.secret":            "SESSION_SECRET",
	"storage.driver":            "STORAGE_DRIVER",
	"db.path":                   "DB_PATH",
	"access_log.retention":      "ACCESS_LOG_RETENTION",
	"access_log.prune_schedule": "ACCESS_LOG_PRUNE_SCHEDULE",
}

// Load reads config.yml from the given directories (first match wins),
// then applies environment overrides on top of built-in defaults.
// A missing config file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Port:     strings.TrimPrefix(strings.TrimSpace(v.GetString("port")), ":"),
		LogLevel: v.GetString("log.level"),
		Session: SessionConfig{
			Secret: v.GetString("session.secret"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
			DBPath: v.GetString("db.path"),
		},
		AccessLog: AccessLogConfig{
			Retention:     v.GetDuration("access_log.retention"),
			PruneSchedule: v.GetString("access_log.prune_schedule"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.Session.Secret == "" {
		return errors.New("session.secret must not be empty")
	}
	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	if c.AccessLog.Retention <= 0 {
		return errors.New("access_log.retention must be > 0")
	}
	if _, err := cron.ParseStandard(c.AccessLog.PruneSchedule); err != nil {
		return fmt.Errorf("access_log.prune_schedule: %w", err)
	}
	return nil
}
