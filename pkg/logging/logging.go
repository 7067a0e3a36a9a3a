package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	// KeyError is the key for an error in a log entry.
	KeyError = "err"

	// KeyDal is the key for the data access layer name.
	KeyDal = "dal"

	// KeyGuild is the key for a guild ID.
	KeyGuild = "guild_id"

	// KeyChannel is the key for a channel ID.
	KeyChannel = "channel_id"

	// KeyUser is the key for a user ID.
	KeyUser = "user_id"

	// KeyCommand is the key for a command or button ID.
	KeyCommand = "command"

	// KeyApp is the key for the application name.
	KeyApp = "app"
)

// EnvLogLevel is the environment variable for the log level.
const EnvLogLevel = `LOG_LEVEL`

// Name is the name of the application that is logging.
type Name string

// Config is the configuration for the logger.
type Config struct {
	// appName is the name of the application.
	appName Name

	// level is the minimum level that will be logged.
	level slog.Level
}

// NewConfig creates a new logging configuration. The level is read from LOG_LEVEL and defaults to info.
func NewConfig(appName Name) *Config {
	return &Config{
		appName: appName,
		level:   ParseLevel(os.Getenv(EnvLogLevel)),
	}
}

// ParseLevel converts a level name into a slog.Level. Unknown names resolve to info.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CommonLogger creates the JSON logger used across the application and sets it as the default.
func CommonLogger(cfg *Config) (*slog.Logger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("logging config is nil")
	}

	if cfg.appName == "" {
		return nil, fmt.Errorf("logging config has no application name")
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: cfg.level == slog.LevelDebug,
		Level:     cfg.level,
	})

	l := slog.New(h).With(slog.String(KeyApp, string(cfg.appName)))
	slog.SetDefault(l)
	return l, nil
}
