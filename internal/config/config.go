package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr              string `yaml:"addr"`
		SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
		SweepCron         string `yaml:"sweep_cron"`
	} `yaml:"server"`
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "piquette"
	} `yaml:"data_source"`
	Defaults struct {
		Ticker       string `yaml:"ticker"`
		Window       int    `yaml:"window"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"defaults"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A .env file, if present, is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.SessionTTLMinutes = n
		}
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DEFAULT_TICKER"); v != "" {
		cfg.Defaults.Ticker = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.SessionTTLMinutes == 0 {
		cfg.Server.SessionTTLMinutes = 60
	}
	if cfg.Server.SweepCron == "" {
		cfg.Server.SweepCron = "0 */10 * * * *"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.Defaults.Ticker == "" {
		cfg.Defaults.Ticker = "SPY"
	}
	if cfg.Defaults.Window == 0 {
		cfg.Defaults.Window = 21
	}
	if cfg.Defaults.LookbackDays == 0 {
		cfg.Defaults.LookbackDays = 365
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.SessionTTLMinutes < 1 {
		return fmt.Errorf("server.session_ttl_minutes must be positive")
	}
	switch c.DataSource.Provider {
	case "yahoo", "piquette":
	default:
		return fmt.Errorf("data_source.provider must be \"yahoo\" or \"piquette\", got %q", c.DataSource.Provider)
	}
	if c.Defaults.Window < 1 {
		return fmt.Errorf("defaults.window must be >= 1")
	}
	if c.Defaults.LookbackDays < 2 {
		return fmt.Errorf("defaults.lookback_days must be >= 2")
	}
	return nil
}
