package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, NetworkLocal, c.Network)
	assert.Equal(t, "http://127.0.0.1:4943", c.Host)
	assert.Equal(t, "assets", c.AssetsCanisterID)
	assert.Equal(t, "marketplace", c.MarketplaceCanisterID)
	assert.Equal(t, "users", c.UsersCanisterID)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Minute, c.IdleTimeout)
	assert.True(t, c.IsLocal())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, NetworkLocal, cfg.Network)
	assert.Equal(t, "http://127.0.0.1:4943", cfg.Host)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DFX_NETWORK", NetworkIC)
	t.Setenv("CANISTER_ID_ASSETS", "aaaaa-aa")
	t.Setenv("CANISTER_ID_MARKETPLACE", "bbbbb-bb")
	t.Setenv("CANISTER_ID_USERS", "ccccc-cc")

	cfg := LoadConfig()

	assert.Equal(t, NetworkIC, cfg.Network)
	assert.Equal(t, "https://icp0.io", cfg.Host)
	assert.Equal(t, "aaaaa-aa", cfg.AssetsCanisterID)
	assert.Equal(t, "bbbbb-bb", cfg.MarketplaceCanisterID)
	assert.Equal(t, "ccccc-cc", cfg.UsersCanisterID)
	assert.False(t, cfg.IsLocal())
}
