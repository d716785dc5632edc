package models_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdash/models"
)

// unsetEnv clears key for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "LISTEN_ADDR", "REQUEST_TIMEOUT",
		"SEARCH_DEBOUNCE", "SESSION_TTL", "LOG_LEVEL", "VERBOSE"} {
		unsetEnv(t, models.EnvPrefix+"_"+key)
	}

	cfg, err := models.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFromEnvAndFile(t *testing.T) {
	unsetEnv(t, "INVDASH_LISTEN_ADDR")
	t.Setenv("INVDASH_API_BASE_URL", "https://inventory.example.com/api")
	t.Setenv("INVDASH_SEARCH_DEBOUNCE", "150ms")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "INVDASH_LISTEN_ADDR=:9100\nINVDASH_API_BASE_URL=http://ignored:1/api\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := models.LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.ListenAddr, "file fills unset variables")
	assert.Equal(t, "https://inventory.example.com/api", cfg.APIBaseURL, "environment wins over file")
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
}

func TestConfigValidate(t *testing.T) {
	valid := func() models.Config {
		return models.Config{
			APIBaseURL:     "http://localhost:5000/api",
			ListenAddr:     ":8000",
			RequestTimeout: time.Second,
			SearchDebounce: 300 * time.Millisecond,
			SessionTTL:     time.Hour,
			LogLevel:       "info",
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.Config)
		ok     bool
	}{
		{"valid", func(c *models.Config) {}, true},
		{"ftp scheme", func(c *models.Config) { c.APIBaseURL = "ftp://host/api" }, false},
		{"no host", func(c *models.Config) { c.APIBaseURL = "http:///api" }, false},
		{"zero timeout", func(c *models.Config) { c.RequestTimeout = 0 }, false},
		{"negative debounce", func(c *models.Config) { c.SearchDebounce = -time.Millisecond }, false},
		{"short ttl", func(c *models.Config) { c.SessionTTL = time.Second }, false},
		{"unknown level", func(c *models.Config) { c.LogLevel = "loud" }, false},
		{"no listen addr", func(c *models.Config) { c.ListenAddr = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
