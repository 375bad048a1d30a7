package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("FITLY_STORAGE_PATH", "memory")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, "", cfg.StoragePath)
	assert.Equal(t, 10, cfg.FeedPageSize)
	assert.Equal(t, "/login", cfg.LoginPath)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("FITLY_API_BASE_URL", "https://api.fitly.test")
	t.Setenv("FITLY_STORAGE_PATH", "/tmp/fitly.db")
	t.Setenv("FITLY_HTTP_TIMEOUT", "15s")
	t.Setenv("FITLY_FEED_PAGE_SIZE", "0")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "https://api.fitly.test", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/fitly.db", cfg.StoragePath)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10, cfg.FeedPageSize)
}

func TestParseError(t *testing.T) {
	t.Setenv("FITLY_FEED_PAGE_SIZE", "ten")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestParseStoragePath(t *testing.T) {
	t.Run("unset uses the default file", func(t *testing.T) {
		t.Setenv("FITLY_STORAGE_PATH", "")
		require.NoError(t, os.Unsetenv("FITLY_STORAGE_PATH"))
		t.Setenv("HOME", "/home/asha")

		cfg, err := Parse()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/asha", ".fitly", "storage.db"), cfg.StoragePath)
	})

	t.Run("empty is in-memory", func(t *testing.T) {
		t.Setenv("FITLY_STORAGE_PATH", "")

		cfg, err := Parse()
		require.NoError(t, err)
		assert.Empty(t, cfg.StoragePath)
	})

	t.Run("memory is in-memory", func(t *testing.T) {
		t.Setenv("FITLY_STORAGE_PATH", "memory")

		cfg, err := Parse()
		require.NoError(t, err)
		assert.Empty(t, cfg.StoragePath)
	})
}
