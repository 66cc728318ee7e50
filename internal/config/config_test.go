package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.Portal.LoginAttempts)
	assert.Equal(t, 15, cfg.Portal.WindowMinutes)
}

func TestLoadMissingBase(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base.yaml")
}

func TestLoadEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "server:\n  addr: \":9000\"\ndb:\n  name: workflow\n")
	writeConfig(t, dir, "staging.yaml", "db:\n  name: workflow_staging\n")
	t.Setenv("APP_ENV", "staging")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr, "base value survives overlay")
	assert.Equal(t, "workflow_staging", cfg.DB.Name, "overlay wins")
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "auth:\n  jwt_secret: from-file\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PORT", "5433")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 5433, cfg.DB.Port)
}

func TestLoadBadPortIgnored(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "")
	t.Setenv("DB_PORT", "not-a-port")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.DB.Port)
}
