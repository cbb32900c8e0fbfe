package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "sudoku_arena", cfg.Postgres.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "arena-games", cfg.Kafka.Topic)
	assert.Equal(t, "arena-consumer", cfg.Kafka.GroupID)
	assert.Equal(t, 15*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 10, cfg.Leaderboard.DefaultLimit)
	assert.Equal(t, 100, cfg.Leaderboard.MaxLimit)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")
	path := writeConfig(t, "postgres:\n  password: ${TEST_PG_PASSWORD}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Postgres.Password)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Sync.Enabled)
}

func TestConnectionString(t *testing.T) {
	pg := PostgresConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "arena",
		Password: "pw",
		Database: "sudoku_arena",
	}
	assert.Equal(t,
		"postgres://arena:pw@db.internal:5433/sudoku_arena?sslmode=disable",
		pg.ConnectionString(),
	)
}
