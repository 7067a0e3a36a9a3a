package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when the startup configuration is missing or malformed. It is fatal.
var ErrInvalidConfig = errors.New("invalid startup configuration")

// Categories holds the channel categories that tickets move between.
type Categories struct {
	// Support is the category that open tickets live in.
	Support string

	// Closed is the category that closed tickets are moved to.
	Closed string
}

// Redis is the configuration for the optional Redis connection.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether Redis has been configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// Config is the process-wide configuration. It is loaded once at startup and never modified afterwards.
type Config struct {
	// AdminRoleID is the role that may run admin commands.
	AdminRoleID string

	// StaffRoleID is the role that may run staff commands and can see every ticket.
	StaffRoleID string

	// Categories are the ticket categories.
	Categories Categories

	// BotToken is the token for the bot.
	BotToken string

	// ApplicationID is the ID of the application.
	ApplicationID string

	// GuildID restricts slash command registration to a single guild.
	GuildID string

	// MongoURI is the URI for the audit database. The audit ledger is disabled when empty.
	MongoURI string

	// Redis is the configuration for the shared requester locks.
	Redis Redis

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string
}

// file is the layout of the ticket configuration file.
type file struct {
	AdminRoleID      *Snowflake `json:"admin_role_id"`
	StaffRoleID      *Snowflake `json:"staff_role_id"`
	TicketCategories *struct {
		Support *Snowflake `json:"support"`
		Closed  *Snowflake `json:"closed"`
	} `json:"ticket_categories"`
}

// LoadDotEnv loads a .env file from the working directory into the environment if one exists. Variables that are
// already set are left alone.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: error loading .env file: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Load reads the ticket configuration file at path and the runtime settings from the environment.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: error opening %s: %w", ErrInvalidConfig, path, err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes the ticket configuration file. Every key is required.
func Parse(r io.Reader) (*Config, error) {
	raw := new(file)
	if err := json.NewDecoder(r).Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: error decoding ticket configuration: %w", ErrInvalidConfig, err)
	}

	switch {
	case raw.AdminRoleID == nil:
		return nil, missingKey("admin_role_id")
	case raw.StaffRoleID == nil:
		return nil, missingKey("staff_role_id")
	case raw.TicketCategories == nil:
		return nil, missingKey("ticket_categories")
	case raw.TicketCategories.Support == nil:
		return nil, missingKey("ticket_categories.support")
	case raw.TicketCategories.Closed == nil:
		return nil, missingKey("ticket_categories.closed")
	}

	return &Config{
		AdminRoleID: raw.AdminRoleID.String(),
		StaffRoleID: raw.StaffRoleID.String(),
		Categories: Categories{
			Support: raw.TicketCategories.Support.String(),
			Closed:  raw.TicketCategories.Closed.String(),
		},
		MonitoringPort: DefaultMonitoringPort,
	}, nil
}

func missingKey(key string) error {
	return fmt.Errorf("%w: missing key %q", ErrInvalidConfig, key)
}

func (c *Config) applyEnv() error {
	c.BotToken = os.Getenv(EnvBotToken)
	c.ApplicationID = os.Getenv(EnvApplicationId)
	c.GuildID = os.Getenv(EnvGuildId)
	c.MongoURI = os.Getenv(EnvMongoUri)
	c.Redis.Addr = os.Getenv(EnvRedisAddr)
	c.Redis.Password = os.Getenv(EnvRedisPassword)

	if port := os.Getenv(EnvMonitoringPort); port != "" {
		c.MonitoringPort = port
	}

	if db := os.Getenv(EnvRedisDB); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("%w: invalid %s: %w", ErrInvalidConfig, EnvRedisDB, err)
		}
		c.Redis.DB = n
	}

	if c.BotToken == "" {
		return fmt.Errorf("%w: %s is not set", ErrInvalidConfig, EnvBotToken)
	}

	if c.ApplicationID == "" {
		return fmt.Errorf("%w: %s is not set", ErrInvalidConfig, EnvApplicationId)
	}
	return nil
}

// DefaultPath returns the ticket configuration path from CONFIG_PATH, falling back to DefaultConfigPath.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}
