package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("QTIGEN_CONFIG", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ModeOffline, cfg.Mode)
	assert.Equal(t, ":3002", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "Câu", cfg.ItemTitleLabel)
	assert.False(t, cfg.EscapeText)
	assert.True(t, cfg.EnableLocalAuth)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3002"}, cfg.CORSOrigins())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("QTIGEN_CONFIG", "")
	t.Setenv("MODE", "ONLINE")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("ESCAPE_TEXT", "true")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://a.example , ,https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ModeOnline, cfg.Mode)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.EscapeText)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}

func TestFromEnvConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qtigen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_ADDR: \":7000\"\nITEM_TITLE_LABEL: Question\n"), 0o644))
	t.Setenv("QTIGEN_CONFIG", path)
	t.Setenv("ITEM_TITLE_LABEL", "Q")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "Q", cfg.ItemTitleLabel, "environment wins over the file")
}

func TestFromEnvMissingConfigFile(t *testing.T) {
	t.Setenv("QTIGEN_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := FromEnv()
	require.Error(t, err)
}

func TestDevCredentials(t *testing.T) {
	t.Setenv("QTIGEN_CONFIG", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"AUTH_HMAC_SECRET", "ADMIN_PASS_HASH"}, cfg.DevCredentials())
	assert.NoError(t, cfg.Validate(), "offline mode starts with a warning")

	t.Setenv("AUTH_HMAC_SECRET", "a-real-secret")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"ADMIN_PASS_HASH"}, cfg.DevCredentials())

	t.Setenv("ENABLE_LOCAL_AUTH", "false")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.DevCredentials())
}

func TestValidateOnlineRejectsDevCredentials(t *testing.T) {
	t.Setenv("QTIGEN_CONFIG", "")
	t.Setenv("MODE", "online")

	cfg, err := FromEnv()
	require.NoError(t, err)
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_HMAC_SECRET")

	t.Setenv("AUTH_HMAC_SECRET", "a-real-secret")
	t.Setenv("ADMIN_PASS_HASH", "$2a$10$abcdefghijklmnopqrstuuN7kUoG9Jdx8X4rzXl6bTq3f1m2n3o4p")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	t.Setenv("AUTH_HMAC_SECRET", "")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
