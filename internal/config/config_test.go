package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME", "SQLITE_PATH", "SERVER_PORT",
		"ENV", "ALLOWED_ORIGINS", "INACTIVITY_THRESHOLD", "SWEEP_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "batepapo", cfg.DBName)
	assert.Equal(t, "batepapo.db", cfg.SQLitePath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.InactivityThreshold)
	assert.Equal(t, 15*time.Second, cfg.SweepInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("ALLOWED_ORIGINS", " http://a.example , http://b.example")
	t.Setenv("INACTIVITY_THRESHOLD", "2s")
	t.Setenv("SWEEP_INTERVAL", "500ms")

	cfg := Load()

	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.InactivityThreshold)
	assert.Equal(t, 500*time.Millisecond, cfg.SweepInterval)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("INACTIVITY_THRESHOLD", "soon")
	t.Setenv("SWEEP_INTERVAL", "-1s")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.InactivityThreshold)
	assert.Equal(t, 15*time.Second, cfg.SweepInterval)
}
