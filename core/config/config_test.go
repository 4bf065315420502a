package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "library", cfg.Storage.Bucket)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "rekordbox.xml", cfg.Library.Document)
	assert.Equal(t, "mp3,aac,wav,flac", cfg.Library.Extensions)
	assert.Equal(t, 30, cfg.Library.CacheTTLSeconds)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LIBRARY_MUSIC_DIR", "/srv/music")
	t.Setenv("DATABASE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/srv/music", cfg.Library.MusicDir)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LIBRARY_DOCUMENT=/exports/collection.xml\nLOG_LEVEL=debug\n"), 0o644))
	t.Setenv("LIBRARY_DOCUMENT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/exports/collection.xml", cfg.Library.Document)
	assert.Equal(t, "debug", cfg.Log.Level)
}
