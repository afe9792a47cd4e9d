package config

import "time"

// Config holds runtime settings for the Agent Synergy CLI.
//
// Units: RequestTimeout and OnlineCheckInterval are time.Duration values.
type Config struct {
	APIBaseURL          string
	APIPrefix           string
	CurrentUserPath     string
	RequestTimeout      time.Duration
	StorageDSN          string
	OnlineCheckInterval time.Duration
	LogFormat           string
	LogLevel            string
	Tracing             bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.APIPrefix = "/api/v1"
	c.CurrentUserPath = "/auth/me"
	c.RequestTimeout = 10 * time.Second
	c.StorageDSN = "agentsynergy_client.db"
	c.OnlineCheckInterval = 5 * time.Second
	c.LogFormat = "console"
	c.LogLevel = "warn"
	c.Tracing = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
