package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "ctf-idor-secret", cfg.Session.Secret)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, ":memory:", cfg.Storage.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.AccessLog.Retention)
	assert.Equal(t, "@every 1m", cfg.AccessLog.PruneSchedule)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":8081")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("ACCESS_LOG_RETENTION", "90m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 90*time.Minute, cfg.AccessLog.Retention)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yml := "port: 4000\nsession:\n  secret: from-file\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "from-file", cfg.Session.Secret)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("SESSION_SECRET", "from-env")
	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Session.Secret)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":     {"STORAGE_DRIVER": "postgres"},
		"bad schedule":       {"ACCESS_LOG_PRUNE_SCHEDULE": "whenever"},
		"negative retention": {"ACCESS_LOG_RETENTION": "-1h"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
