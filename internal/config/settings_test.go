package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_MissingFileIsNotAnError(t *testing.T) {
	err := LoadEnv(filepath.Join(t.TempDir(), ".env"))

	require.NoError(t, err)
}

func TestLoadEnv_SetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEKU_SOURCE=/tmp/legacy\n"), 0644))
	t.Setenv(EnvSource, "")
	os.Unsetenv(EnvSource)

	require.NoError(t, LoadEnv(path))

	assert.Equal(t, "/tmp/legacy", os.Getenv(EnvSource))
}

func TestLoadEnv_ExistingVariablesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEKU_DB=/from/file.db\n"), 0644))
	t.Setenv(EnvDB, "/from/env.db")

	require.NoError(t, LoadEnv(path))

	assert.Equal(t, "/from/env.db", os.Getenv(EnvDB))
}

func TestLayout_Paths(t *testing.T) {
	l := NewLayout("/data")

	assert.Equal(t, filepath.Join("/data", "settings.json"), l.SettingsPath())
	assert.Equal(t, filepath.Join("/data", "decks"), l.DecksPath())
	assert.Equal(t, filepath.Join("/data", "ai-sessions", "s1", "request.json"), l.RequestPath("s1"))
	assert.Equal(t, filepath.Join("/data", "ai-sessions", "s1", "state.json"), l.StatePath("s1"))
	assert.Equal(t, filepath.Join("/data", "ai-sessions", "s1", "history.json"), l.HistoryPath("s1"))
	assert.Equal(t, filepath.Join("/data", "ai-sessions", "s1", "suggestions"), l.SuggestionsPath("s1"))
}
