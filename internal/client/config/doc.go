// Package config loads runtime configuration for the Agent Synergy CLI.
//
// # Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c/-config or AGENTSYNERGY_CONFIG.
//  3. Environment: AGENTSYNERGY_API_URL, AGENTSYNERGY_STORAGE_DSN,
//     AGENTSYNERGY_LOG_LEVEL, AGENTSYNERGY_REQUEST_TIMEOUT.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://api.agentsynergy.io",
//	  "api_prefix": "/api/v1",
//	  "current_user_path": "/users/me",
//	  "request_timeout": "10s",
//	  "storage_dsn": "redis://localhost:6379/0",
//	  "online_check_interval": "5s",
//	  "log_format": "json",
//	  "log_level": "info",
//	  "tracing": true
//	}
package config
