package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "ru", cfg.DefaultLang)
	require.Equal(t, 4*time.Second, cfg.TitleInterval)
	require.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	require.False(t, cfg.IsProd())
}

func TestPortFallback(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"PORT": "9090"})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)

	cfg, err = LoadFrom(map[string]string{"PORT": "9090", "DDC_ADDR": "127.0.0.1:7000"})
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7000", cfg.Addr)
}

func TestOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"DDC_ENV":                  "PROD",
		"DDC_TITLE_INTERVAL":       "2s",
		"DDC_SESSION_HASH_KEY":     strings.Repeat("k", 32),
		"DDC_SESSION_BLOCK_KEY":    strings.Repeat("b", 16),
		"DDC_SESSION_IDLE_TIMEOUT": "5m",
		"DDC_DEFAULT_LANG":         "EN",
	})
	require.NoError(t, err)
	require.True(t, cfg.IsProd())
	require.Equal(t, 2*time.Second, cfg.TitleInterval)
	require.Equal(t, 5*time.Minute, cfg.Session.IdleTimeout)
	require.Equal(t, "en", cfg.DefaultLang)
}

func TestProdRequiresHashKey(t *testing.T) {
	_, err := LoadFrom(map[string]string{"DDC_ENV": "prod"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestInvalidValues(t *testing.T) {
	_, err := LoadFrom(map[string]string{"DDC_TITLE_INTERVAL": "-1s"})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadFrom(map[string]string{"DDC_SESSION_BLOCK_KEY": "short"})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadFrom(map[string]string{"DDC_TITLE_INTERVAL": "soon"})
	require.Error(t, err, "unparsable durations fail at parse time")
}
