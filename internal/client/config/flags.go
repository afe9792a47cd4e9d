package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/agentsynergy/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL
//	-d string   storage DSN: sqlite path, "memory", or redis:// URL
//	-u string   current-user endpoint ("/auth/me" or "/users/me")
//	-t int      request timeout (in seconds)
//	-i int      online check interval (in seconds)
//	-l string   log level
//	-trace      export OpenTelemetry traces
//
// Only these flags are taken from os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-u", "-t", "-i", "-l", "-trace"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.CurrentUserPath, "u", cfg.CurrentUserPath, "current user endpoint")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.Tracing, "trace", cfg.Tracing, "export OpenTelemetry traces")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
