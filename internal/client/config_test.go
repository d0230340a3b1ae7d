package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	content := `
server {
  node_ws_url = "ws://localhost:8545"
  proxy_url   = "http://localhost:8080"
}

player {
  private_key    = "abc123"
  default_buy_in = "50000000"
}

ui {
  log_level = "debug"
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:8545", cfg.Server.NodeWSURL)
	assert.Equal(t, "http://localhost:8080", cfg.Server.ProxyURL)
	assert.Equal(t, "abc123", cfg.Player.PrivateKey)
	assert.Equal(t, "50000000", cfg.Player.DefaultBuyIn)
	assert.Equal(t, "debug", cfg.UI.LogLevel)

	// Unset fields pick up defaults.
	assert.Equal(t, 3, cfg.Server.ReconnectAttempts)
	assert.Equal(t, 5, cfg.Server.ReconnectDelay)
	assert.Equal(t, "b52poker.log", cfg.UI.LogFile)
}

func TestLoadConfigInvalidHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults valid", mutate: func(c *Config) {}},
		{
			name:    "missing node url",
			mutate:  func(c *Config) { c.Server.NodeWSURL = "" },
			wantErr: "node websocket URL",
		},
		{
			name:    "missing proxy url",
			mutate:  func(c *Config) { c.Server.ProxyURL = "" },
			wantErr: "proxy URL",
		},
		{
			name:    "negative reconnect attempts",
			mutate:  func(c *Config) { c.Server.ReconnectAttempts = -1 },
			wantErr: "reconnect attempts",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.UI.LogLevel = "loud" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestPrivateKeyHex(t *testing.T) {
	t.Run("inline key wins", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Player.PrivateKey = "deadbeef"
		key, err := cfg.PrivateKeyHex()
		require.NoError(t, err)
		assert.Equal(t, "deadbeef", key)
	})

	t.Run("key file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "key")
		require.NoError(t, os.WriteFile(path, []byte("cafef00d\n"), 0600))

		cfg := DefaultConfig()
		cfg.Player.PrivateKeyFile = path
		key, err := cfg.PrivateKeyHex()
		require.NoError(t, err)
		assert.Equal(t, "cafef00d", key)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("B52_PRIVATE_KEY", "0bad1dea")
		cfg := DefaultConfig()
		key, err := cfg.PrivateKeyHex()
		require.NoError(t, err)
		assert.Equal(t, "0bad1dea", key)
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv("B52_PRIVATE_KEY", "")
		cfg := DefaultConfig()
		_, err := cfg.PrivateKeyHex()
		require.Error(t, err)
	})
}
