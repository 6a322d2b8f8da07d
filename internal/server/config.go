package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableSettings  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableSettings configures every room's table. Rooms are created on
// demand and all share the same stakes.
type TableSettings struct {
	MaxPlayers           int `hcl:"max_players,optional"`
	SmallBlind           int `hcl:"small_blind,optional"`
	BigBlind             int `hcl:"big_blind,optional"`
	BuyIn                int `hcl:"buy_in,optional"`
	ActionTimeoutSeconds int `hcl:"action_timeout_seconds,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Table: TableSettings{
			MaxPlayers:           9,
			SmallBlind:           10,
			BigBlind:             20,
			BuyIn:                1000,
			ActionTimeoutSeconds: 30,
		},
	}
}

// LoadServerConfig loads server configuration from HCL file
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultServerConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Table.MaxPlayers == 0 {
		config.Table.MaxPlayers = defaults.Table.MaxPlayers
	}
	if config.Table.SmallBlind == 0 {
		config.Table.SmallBlind = defaults.Table.SmallBlind
	}
	if config.Table.BigBlind == 0 {
		config.Table.BigBlind = config.Table.SmallBlind * 2
	}
	if config.Table.BuyIn == 0 {
		config.Table.BuyIn = config.Table.BigBlind * 50
	}
	if config.Table.ActionTimeoutSeconds == 0 {
		config.Table.ActionTimeoutSeconds = defaults.Table.ActionTimeoutSeconds
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	t := c.Table
	if t.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if t.BigBlind <= t.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if t.MaxPlayers < 2 || t.MaxPlayers > 10 {
		return fmt.Errorf("max players must be between 2 and 10, got %d", t.MaxPlayers)
	}
	if t.BuyIn < t.BigBlind*10 {
		return fmt.Errorf("buy-in must cover at least 10 big blinds")
	}
	if t.ActionTimeoutSeconds < 5 {
		return fmt.Errorf("action timeout must be at least 5 seconds")
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
