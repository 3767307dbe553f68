package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "parcels")
	t.Setenv("DB_NAME", "parcels")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaHost)
	assert.Equal(t, "*/2 * * * * *", cfg.OutboxSchedule)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, 10*time.Second, cfg.OutboxTimeout)
	assert.False(t, cfg.RequireKnownSender)
	assert.Equal(t, "host=db port=5432 user=parcels password= dbname=parcels sslmode=disable", cfg.DSN())
}

func TestLoadConfig_FromFileAndEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Cleanup(func() {
		for _, key := range []string{"KAFKA_HOST", "REQUIRE_KNOWN_SENDER", "LOG_LEVEL"} {
			_ = os.Unsetenv(key)
		}
	})
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"HTTP_PORT=7000\nKAFKA_HOST=k1:9092,k2:9092\nREQUIRE_KNOWN_SENDER=true\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTPPort, "environment wins over the file")
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaHost)
	assert.True(t, cfg.RequireKnownSender)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	require.NoError(t, os.Unsetenv("DB_HOST"))
	require.NoError(t, os.Unsetenv("DB_USER"))
	require.NoError(t, os.Unsetenv("DB_NAME"))

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}
