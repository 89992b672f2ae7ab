package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Stock is one entry of the supported-symbol registry.
type Stock struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Cache struct {
		Dir      string `yaml:"dir"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"cache"`
	Fetch struct {
		MaxAttempts       int `yaml:"max_attempts"`
		RetryDelaySeconds int `yaml:"retry_delay_seconds"`
		TimeoutSeconds    int `yaml:"timeout_seconds"`
	} `yaml:"fetch"`
	Anthropic struct {
		APIKey         string  `yaml:"api_key"`
		Model          string  `yaml:"model"`
		Temperature    float64 `yaml:"temperature"`
		MaxTokens      int     `yaml:"max_tokens"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"anthropic"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Stocks   []Stock `yaml:"stocks"`
	Currency string  `yaml:"currency"`
	Proxy    string  `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
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
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("CACHE_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLHours = n
		}
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_MODEL"); v != "" {
		cfg.Anthropic.Model = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = "data"
	}
	if cfg.Cache.TTLHours == 0 {
		cfg.Cache.TTLHours = 24
	}
	if cfg.Fetch.MaxAttempts == 0 {
		cfg.Fetch.MaxAttempts = 3
	}
	if cfg.Fetch.RetryDelaySeconds == 0 {
		cfg.Fetch.RetryDelaySeconds = 2
	}
	if cfg.Fetch.TimeoutSeconds == 0 {
		cfg.Fetch.TimeoutSeconds = 30
	}
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = "claude-sonnet-4-20250514"
	}
	if cfg.Anthropic.Temperature == 0 {
		cfg.Anthropic.Temperature = 0.2
	}
	if cfg.Anthropic.MaxTokens == 0 {
		cfg.Anthropic.MaxTokens = 1024
	}
	if cfg.Anthropic.TimeoutSeconds == 0 {
		cfg.Anthropic.TimeoutSeconds = 60
	}
	if cfg.Currency == "" {
		cfg.Currency = "₹"
	}
	if len(cfg.Stocks) == 0 {
		cfg.Stocks = []Stock{
			{Symbol: "RELIANCE.NS", Name: "Reliance Industries"},
			{Symbol: "TCS.NS", Name: "Tata Consultancy Services"},
			{Symbol: "INFY.NS", Name: "Infosys"},
			{Symbol: "HDFCBANK.NS", Name: "HDFC Bank"},
		}
	}

	return cfg, nil
}

// Registry returns the symbol → display name lookup.
func (c *Config) Registry() map[string]string {
	reg := make(map[string]string, len(c.Stocks))
	for _, s := range c.Stocks {
		reg[s.Symbol] = s.Name
	}
	return reg
}

// Symbols returns the registry symbols in configuration order.
func (c *Config) Symbols() []string {
	syms := make([]string, len(c.Stocks))
	for i, s := range c.Stocks {
		syms[i] = s.Symbol
	}
	return syms
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Cache.Dir == "" {
		return fmt.Errorf("cache.dir is required")
	}
	if c.Cache.TTLHours <= 0 {
		return fmt.Errorf("cache.ttl_hours must be positive")
	}
	if c.Fetch.MaxAttempts <= 0 {
		return fmt.Errorf("fetch.max_attempts must be positive")
	}
	if len(c.Stocks) == 0 {
		return fmt.Errorf("at least one stock must be configured")
	}
	for _, s := range c.Stocks {
		if s.Symbol == "" {
			return fmt.Errorf("stock entry with empty symbol")
		}
	}
	return nil
}
