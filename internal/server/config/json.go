package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/agentsynergy/internal/flagx"
	"github.com/dmitrijs2005/agentsynergy/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Durations accept both "15m" strings and integer nanoseconds.
type JsonConfig struct {
	ListenAddr                   string          `json:"listen_addr"`
	SecretKey                    string          `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	LogFormat                    string          `json:"log_format"`
	LogLevel                     string          `json:"log_level"`
}

// parseJson loads configuration values from the file given by -c/-config
// (or AGENTSYNERGY_CONFIG) into config. Absent fields keep their value.
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFilePath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
