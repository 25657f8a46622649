package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/booking-window/internal/preview"
)

type Config struct {
	ListenAddr     string
	CookieHashKey  []byte
	CookieBlockKey []byte

	// bcrypt hash; empty disables the admin gate
	AdminPasswordHash string

	DefaultLang preview.Lang
	LogLevel    string
	LogFormat   string

	RefreshInterval time.Duration
}

func FromEnv() (Config, error) {
	cfg := Config{
		ListenAddr:        getenv("LISTEN_ADDR", ":8080"),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		LogLevel:          strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getenv("LOG_FORMAT", "json")),
	}

	switch lang := getenv("DEFAULT_LANG", "en"); lang {
	case "en", "ja":
		cfg.DefaultLang = preview.Lang(lang)
	default:
		return Config{}, fmt.Errorf("invalid DEFAULT_LANG %q (want en or ja)", lang)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	refreshSec, err := strconv.Atoi(getenv("REFRESH_SECONDS", "60"))
	if err != nil || refreshSec < 1 {
		return Config{}, fmt.Errorf("invalid REFRESH_SECONDS")
	}
	cfg.RefreshInterval = time.Duration(refreshSec) * time.Second

	hashKey := os.Getenv("COOKIE_HASH_KEY")
	blockKey := os.Getenv("COOKIE_BLOCK_KEY")
	if hashKey == "" || blockKey == "" {
		return Config{}, fmt.Errorf("COOKIE_HASH_KEY and COOKIE_BLOCK_KEY are required (bookingwin keys prints a pair)")
	}
	cfg.CookieHashKey, err = decodeB64(hashKey)
	if err != nil {
		return Config{}, fmt.Errorf("COOKIE_HASH_KEY: %w", err)
	}
	cfg.CookieBlockKey, err = decodeB64(blockKey)
	if err != nil {
		return Config{}, fmt.Errorf("COOKIE_BLOCK_KEY: %w", err)
	}
	switch len(cfg.CookieBlockKey) {
	case 16, 24, 32:
	default:
		return Config{}, fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes (got %d)", len(cfg.CookieBlockKey))
	}

	return cfg, nil
}

func decodeB64(s string) ([]byte, error) {
	b, err := os.ReadFile(s)
	if err == nil {
		// allow pointing to file path for k8s secret mounts
		s = string(b)
	}
	s = strings.TrimSpace(s)
	if dec, err := base64.StdEncoding.DecodeString(s); err == nil {
		return dec, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
