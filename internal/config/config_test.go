package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("SEED_ACCOUNTS_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "helpdesk-service", cfg.App.Name)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	require.True(t, cfg.Postgres.InMemory())
	require.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
	require.Equal(t, "helpdesk.ticket-events", cfg.Events.RedisChannel)
	require.Empty(t, cfg.Seed.Accounts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/helpdesk")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("EVENTS_REDIS_CHANNEL", "tickets")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.App.Port)
	require.Zero(t, cfg.App.RequestTimeout())
	require.False(t, cfg.Postgres.InMemory())
	require.EqualValues(t, 10, cfg.Postgres.MaxConns)
	require.False(t, cfg.Postgres.RunMigrations)
	require.Equal(t, "tickets", cfg.Events.RedisChannel)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")
	_, err := Load()
	require.Error(t, err)
}

func writeSeedFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSeedAccounts(t *testing.T) {
	t.Setenv("SEED_ACCOUNTS_FILE", writeSeedFile(t, `[
		{"id": "c1", "name": "Ana", "email": "ana@example.com", "role": "Client"},
		{"id": "s1", "name": "Bruno", "email": "bruno@example.com", "role": "Support"}
	]`))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []SeedAccount{
		{ID: "c1", Name: "Ana", Email: "ana@example.com", Role: "Client"},
		{ID: "s1", Name: "Bruno", Email: "bruno@example.com", Role: "Support"},
	}, cfg.Seed.Accounts)
}

func TestLoadRejectsBadSeedAccounts(t *testing.T) {
	cases := map[string]string{
		"malformed":    `{"id":`,
		"missing id":   `[{"name": "Ana", "role": "Client"}]`,
		"unknown role": `[{"id": "x1", "role": "Admin"}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("SEED_ACCOUNTS_FILE", writeSeedFile(t, body))
			_, err := Load()
			require.Error(t, err)
		})
	}

	t.Setenv("SEED_ACCOUNTS_FILE", filepath.Join(t.TempDir(), "missing.json"))
	_, err := Load()
	require.Error(t, err)
}
