package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8787", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "scheduled_items", cfg.Store.Table)
	assert.Equal(t, "local", cfg.Auth.LocalUser)
	assert.NotEmpty(t, cfg.Store.SQLitePath)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"
cors_origins = ["https://app.example.com"]

[store]
backend = "postgrest"
postgrest_url = "https://proj.supabase.co"
postgrest_key = "anon"
table = "items"

[auth]
jwt_secret = "s3cret"
jwt_issuer = "cadence"
local_user = "me"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "postgrest", cfg.Store.Backend)
	assert.Equal(t, "https://proj.supabase.co", cfg.Store.PostgRESTURL)
	assert.Equal(t, "items", cfg.Store.Table)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "me", cfg.Auth.LocalUser)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"
`)
	t.Setenv("CADENCE_ADDR", ":7000")
	t.Setenv("CADENCE_DB", "/tmp/cadence-test.db")
	t.Setenv("CADENCE_JWT_SECRET", "env-secret")
	t.Setenv("CADENCE_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "/tmp/cadence-test.db", cfg.Store.SQLitePath)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadRejectsBadBackend(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "dynamo"
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadPostgRESTRequiresURL(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "postgrest"
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[server`)
	_, err := Load(path)
	assert.Error(t, err)
}
