package client

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete table-client configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Player PlayerSettings `hcl:"player,block"`
	UI     UISettings     `hcl:"ui,block"`
}

// ServerSettings describes the poker VM endpoints.
type ServerSettings struct {
	NodeWSURL         string `hcl:"node_ws_url"`
	ProxyURL          string `hcl:"proxy_url"`
	ReconnectAttempts int    `hcl:"reconnect_attempts,optional"`
	ReconnectDelay    int    `hcl:"reconnect_delay,optional"`
}

// PlayerSettings holds the account and buy-in defaults.
type PlayerSettings struct {
	Name           string `hcl:"name,optional"`
	PrivateKey     string `hcl:"private_key,optional"`
	PrivateKeyFile string `hcl:"private_key_file,optional"`
	DefaultBuyIn   string `hcl:"default_buy_in,optional"`
}

// UISettings are the terminal client preferences.
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			NodeWSURL:         "ws://node1.block52.xyz",
			ProxyURL:          "https://proxy.block52.xyz",
			ReconnectAttempts: 3,
			ReconnectDelay:    5,
		},
		Player: PlayerSettings{
			DefaultBuyIn: "100000000",
		},
		UI: UISettings{
			LogLevel: "warn",
			LogFile:  "b52poker.log",
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.NodeWSURL == "" {
		config.Server.NodeWSURL = defaults.Server.NodeWSURL
	}
	if config.Server.ProxyURL == "" {
		config.Server.ProxyURL = defaults.Server.ProxyURL
	}
	if config.Server.ReconnectAttempts == 0 {
		config.Server.ReconnectAttempts = defaults.Server.ReconnectAttempts
	}
	if config.Server.ReconnectDelay == 0 {
		config.Server.ReconnectDelay = defaults.Server.ReconnectDelay
	}
	if config.Player.DefaultBuyIn == "" {
		config.Player.DefaultBuyIn = defaults.Player.DefaultBuyIn
	}
	if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = defaults.UI.LogFile
	}

	return &config, nil
}

// PrivateKeyHex resolves the signing key from config, file, or the
// B52_PRIVATE_KEY environment variable, in that order.
func (c *Config) PrivateKeyHex() (string, error) {
	if c.Player.PrivateKey != "" {
		return c.Player.PrivateKey, nil
	}
	if c.Player.PrivateKeyFile != "" {
		data, err := os.ReadFile(c.Player.PrivateKeyFile)
		if err != nil {
			return "", fmt.Errorf("reading private key file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if key := os.Getenv("B52_PRIVATE_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no private key configured: set player.private_key, player.private_key_file, or B52_PRIVATE_KEY")
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	if c.Server.NodeWSURL == "" {
		return fmt.Errorf("node websocket URL is required")
	}
	if c.Server.ProxyURL == "" {
		return fmt.Errorf("proxy URL is required")
	}
	if c.Server.ReconnectAttempts < 0 {
		return fmt.Errorf("reconnect attempts cannot be negative")
	}
	if c.Server.ReconnectDelay <= 0 {
		return fmt.Errorf("reconnect delay must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}
