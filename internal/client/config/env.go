package config

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/flagx"
)

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL = "AGENTSYNERGY_API_URL"
	EnvStorageDSN = "AGENTSYNERGY_STORAGE_DSN"
	EnvLogLevel   = "AGENTSYNERGY_LOG_LEVEL"
	EnvTimeout    = "AGENTSYNERGY_REQUEST_TIMEOUT"
)

// parseEnv overlays cfg with environment variables. An unparsable timeout
// panics, like the other loaders.
func parseEnv(cfg *Config) {
	cfg.APIBaseURL = flagx.Env(EnvAPIBaseURL, cfg.APIBaseURL)
	cfg.StorageDSN = flagx.Env(EnvStorageDSN, cfg.StorageDSN)
	cfg.LogLevel = flagx.Env(EnvLogLevel, cfg.LogLevel)

	if v := flagx.Env(EnvTimeout, ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			secs, serr := strconv.Atoi(v)
			if serr != nil {
				panic(err)
			}
			d = time.Duration(secs) * time.Second
		}
		cfg.RequestTimeout = d
	}
}
