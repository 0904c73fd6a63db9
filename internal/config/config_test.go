package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DB_TYPE", "SQLITE_PATH", "MONGO_HOST", "MONGO_DATABASE",
	"BADGER_PATH", "LOG_LEVEL", "STRICT_FILTERS", "METRICS_ENABLED",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "5556", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "data/strings.db", cfg.ConnectionString())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.StrictFilters)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables already present, so drop the empties
	for _, k := range envKeys {
		os.Unsetenv(k)
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=8080\nDB_TYPE=Badger\nBADGER_PATH=/tmp/b\nSTRICT_FILTERS=true\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "badger", cfg.DBType)
	assert.Equal(t, "/tmp/b", cfg.ConnectionString())
	assert.True(t, cfg.StrictFilters)
}

func TestLoad_MissingEnvFileIsNotFatal(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"db type":   {"DB_TYPE", "postgres"},
		"port":      {"PORT", "http"},
		"log level": {"LOG_LEVEL", "loud"},
		"bool":      {"STRICT_FILTERS", "maybe"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestConnectionString(t *testing.T) {
	cfg := &Config{DBType: "mongodb", MongoHost: "mongodb://db:27017/"}
	assert.Equal(t, "mongodb://db:27017/", cfg.ConnectionString())
	cfg.DBType = "memory"
	assert.Equal(t, "", cfg.ConnectionString())
}
