package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerroom/internal/table"
)

// Config is the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	ListenAddr    string `hcl:"listen_addr,optional"`
	AdminAddr     string `hcl:"admin_addr,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	FlushInterval string `hcl:"flush_interval,optional"`
	IdleGrace     string `hcl:"idle_grace,optional"`
}

// TableConfig defines a table to create at startup
type TableConfig struct {
	Name        string `hcl:"name,label"`
	Seats       int    `hcl:"seats,optional"`
	SmallBlind  int    `hcl:"small_blind"`
	BigBlind    int    `hcl:"big_blind"`
	MinBuyIn    int    `hcl:"min_buy_in,optional"`
	MaxBuyIn    int    `hcl:"max_buy_in,optional"`
	TurnSeconds int    `hcl:"turn_seconds,optional"`
}

// TableConfigFor converts a startup table block to engine config
func (t TableConfig) TableConfigFor() table.Config {
	return table.Config{
		ID:           t.Name,
		Name:         t.Name,
		SmallBlind:   t.SmallBlind,
		BigBlind:     t.BigBlind,
		MinBuyIn:     t.MinBuyIn,
		MaxBuyIn:     t.MaxBuyIn,
		Seats:        t.Seats,
		TurnDuration: time.Duration(t.TurnSeconds) * time.Second,
	}
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			ListenAddr: "localhost:8080",
			AdminAddr:  "localhost:8081",
			LogLevel:   "info",
		},
	}
}

// LoadConfig loads the server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.ListenAddr == "" {
		config.Server.ListenAddr = "localhost:8080"
	}
	if config.Server.AdminAddr == "" {
		config.Server.AdminAddr = "localhost:8081"
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	for i := range config.Tables {
		if config.Tables[i].Seats == 0 {
			config.Tables[i].Seats = 9
		}
		if config.Tables[i].MinBuyIn == 0 {
			config.Tables[i].MinBuyIn = config.Tables[i].BigBlind * 20
		}
		if config.Tables[i].MaxBuyIn == 0 {
			config.Tables[i].MaxBuyIn = config.Tables[i].BigBlind * 100
		}
	}

	return &config, nil
}

// FlushInterval parses the configured flush interval, zero when unset
func (c *Config) FlushInterval() (time.Duration, error) {
	return parseOptionalDuration(c.Server.FlushInterval)
}

// IdleGrace parses the configured idle grace, zero when unset
func (c *Config) IdleGrace() (time.Duration, error) {
	return parseOptionalDuration(c.Server.IdleGrace)
}

func parseOptionalDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// Validate checks the configuration for mistakes worth refusing to boot on
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if _, err := c.FlushInterval(); err != nil {
		return fmt.Errorf("invalid flush_interval: %w", err)
	}
	if _, err := c.IdleGrace(); err != nil {
		return fmt.Errorf("invalid idle_grace: %w", err)
	}

	for _, t := range c.Tables {
		if t.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", t.Name)
		}
		if t.BigBlind <= t.SmallBlind {
			return fmt.Errorf("table %s: big blind must be greater than small blind", t.Name)
		}
		if t.Seats < 2 || t.Seats > 10 {
			return fmt.Errorf("table %s: seats must be between 2 and 10", t.Name)
		}
		if t.MinBuyIn >= t.MaxBuyIn {
			return fmt.Errorf("table %s: buy-in minimum must be less than maximum", t.Name)
		}
	}

	return nil
}
