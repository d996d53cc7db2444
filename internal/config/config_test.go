package config_test

import (
	"testing"
	"time"

	"github.com/semdex/auth-service/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSigningSecret(t *testing.T) {
	t.Setenv("SIGNING_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRejectsInsecureDefaultSecret(t *testing.T) {
	t.Setenv("SIGNING_SECRET", "semdex-secret-key-2026")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "insecure default")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SIGNING_SECRET", "a-real-secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.GetPort())
	require.Equal(t, "semdex", cfg.GetMagicLinkScheme())
	require.Equal(t, 720*time.Hour, cfg.GetTokenLifetime())
	require.Equal(t, "DEV", cfg.GetEnv())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SIGNING_SECRET", "a-real-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_LIFETIME", "1h")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.GetPort())
	require.Equal(t, time.Hour, cfg.GetTokenLifetime())
}
