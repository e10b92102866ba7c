package config

import (
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnvVar overrides the log level regardless of the verbose flag.
const LogLevelEnvVar = "BLOGBUILDER_LOG_LEVEL"

// ResolveLogLevel maps the verbose flag and the environment override to a
// slog level. The environment variable wins when set.
func ResolveLogLevel(verbose bool) slog.Level {
	if raw, ok := os.LookupEnv(LogLevelEnvVar); ok {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "debug":
			return slog.LevelDebug
		case "info":
			return slog.LevelInfo
		case "warn":
			return slog.LevelWarn
		case "error":
			return slog.LevelError
		}
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
