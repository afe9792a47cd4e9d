package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/agentsynergy/internal/flagx"
	"github.com/dmitrijs2005/agentsynergy/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent or
// empty fields leave the current value in place.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	APIPrefix           string          `json:"api_prefix"`
	CurrentUserPath     string          `json:"current_user_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	StorageDSN          string          `json:"storage_dsn"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogFormat           string          `json:"log_format"`
	LogLevel            string          `json:"log_level"`
	Tracing             *bool           `json:"tracing"`
}

// parseJson overlays cfg with the file named by -c/-config or
// AGENTSYNERGY_CONFIG. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.APIPrefix, jc.APIPrefix)
	setString(&cfg.CurrentUserPath, jc.CurrentUserPath)
	setString(&cfg.StorageDSN, jc.StorageDSN)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.Tracing != nil {
		cfg.Tracing = *jc.Tracing
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
