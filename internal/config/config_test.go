package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/booking-window/internal/preview"
)

func b64(n int) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", n)))
}

func setKeys(t *testing.T) {
	t.Helper()
	t.Setenv("COOKIE_HASH_KEY", b64(32))
	t.Setenv("COOKIE_BLOCK_KEY", b64(32))
}

func TestFromEnv_Defaults(t *testing.T) {
	setKeys(t)
	for _, k := range []string{"LISTEN_ADDR", "ADMIN_PASSWORD_HASH", "DEFAULT_LANG", "LOG_LEVEL", "LOG_FORMAT", "REFRESH_SECONDS"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, preview.English, cfg.DefaultLang)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Len(t, cfg.CookieHashKey, 32)
	assert.Empty(t, cfg.AdminPasswordHash)
}

func TestFromEnv_KeyFromFile(t *testing.T) {
	setKeys(t)
	path := filepath.Join(t.TempDir(), "block")
	require.NoError(t, os.WriteFile(path, []byte(b64(16)+"\n"), 0o600))
	t.Setenv("COOKIE_BLOCK_KEY", path)
	t.Setenv("DEFAULT_LANG", "ja")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Len(t, cfg.CookieBlockKey, 16)
	assert.Equal(t, preview.Japanese, cfg.DefaultLang)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"missing hash key", "COOKIE_HASH_KEY", ""},
		{"short block key", "COOKIE_BLOCK_KEY", b64(10)},
		{"bad lang", "DEFAULT_LANG", "fr"},
		{"bad level", "LOG_LEVEL", "loud"},
		{"bad format", "LOG_FORMAT", "xml"},
		{"bad refresh", "REFRESH_SECONDS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setKeys(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()

			assert.Error(t, err)
		})
	}
}
