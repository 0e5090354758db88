// Package config loads the service configuration from TOML files and MOODAI_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/moodai/internal/companion"
	"github.com/JaimeStill/moodai/internal/notifications"
	"github.com/JaimeStill/moodai/internal/payment"
	"github.com/JaimeStill/moodai/internal/reports"
	"github.com/JaimeStill/moodai/pkg/auth"
	"github.com/JaimeStill/moodai/pkg/cache"
	"github.com/JaimeStill/moodai/pkg/database"
	"github.com/JaimeStill/moodai/pkg/logging"
	"github.com/JaimeStill/moodai/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvMoodAIEnv             = "MOODAI_ENV"
	EnvMoodAIShutdownTimeout = "MOODAI_SHUTDOWN_TIMEOUT"
	EnvMoodAIVersion         = "MOODAI_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "MOODAI_DB_HOST",
	Port:            "MOODAI_DB_PORT",
	Name:            "MOODAI_DB_NAME",
	User:            "MOODAI_DB_USER",
	Password:        "MOODAI_DB_PASSWORD",
	SSLMode:         "MOODAI_DB_SSL_MODE",
	MaxOpenConns:    "MOODAI_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "MOODAI_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "MOODAI_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "MOODAI_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Enabled:          "MOODAI_STORAGE_ENABLED",
	ContainerName:    "MOODAI_STORAGE_CONTAINER_NAME",
	ConnectionString: "MOODAI_STORAGE_CONNECTION_STRING",
}

var cacheEnv = &cache.Env{
	Enabled:  "MOODAI_CACHE_ENABLED",
	Addr:     "MOODAI_CACHE_ADDR",
	Password: "MOODAI_CACHE_PASSWORD",
	DB:       "MOODAI_CACHE_DB",
	TTL:      "MOODAI_CACHE_TTL",
	Prefix:   "MOODAI_CACHE_PREFIX",
}

var loggingEnv = &logging.Env{
	Level:      "MOODAI_LOG_LEVEL",
	Format:     "MOODAI_LOG_FORMAT",
	File:       "MOODAI_LOG_FILE",
	MaxSizeMB:  "MOODAI_LOG_MAX_SIZE_MB",
	MaxBackups: "MOODAI_LOG_MAX_BACKUPS",
	MaxAgeDays: "MOODAI_LOG_MAX_AGE_DAYS",
}

var authEnv = &auth.Env{
	Secret:       "MOODAI_AUTH_SECRET",
	TokenTTL:     "MOODAI_AUTH_TOKEN_TTL",
	CookieName:   "MOODAI_AUTH_COOKIE_NAME",
	CookieSecure: "MOODAI_AUTH_COOKIE_SECURE",
}

// Config is the root configuration for the MoodAI service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	Cache           cache.Config         `toml:"cache"`
	Logging         logging.Config       `toml:"logging"`
	Auth            auth.Config          `toml:"auth"`
	API             APIConfig            `toml:"api"`
	Companion       companion.Config     `toml:"companion"`
	Mail            notifications.Config `toml:"mail"`
	Payment         payment.Config       `toml:"payment"`
	Reports         reports.Config       `toml:"reports"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the MOODAI_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvMoodAIEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(BaseConfigFile)
}

// LoadFrom is Load with an explicit base config path. The overlay is resolved
// next to it.
func LoadFrom(base string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(base); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Cache.Merge(&overlay.Cache)
	c.Logging.Merge(&overlay.Logging)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
	c.Companion.Merge(&overlay.Companion)
	c.Mail.Merge(&overlay.Mail)
	c.Payment.Merge(&overlay.Payment)
	c.Reports.Merge(&overlay.Reports)
}

// finalize settles the root fields, then each section in declaration order.
// The first failing section aborts with its name as the error prefix.
func (c *Config) finalize() error {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvMoodAIShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvMoodAIVersion); v != "" {
		c.Version = v
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"cache", func() error { return c.Cache.Finalize(cacheEnv) }},
		{"logging", func() error { return c.Logging.Finalize(loggingEnv) }},
		{"auth", func() error { return c.Auth.Finalize(authEnv) }},
		{"api", c.API.Finalize},
		{"companion", func() error { return c.Companion.Finalize(companionEnv) }},
		{"mail", func() error { return c.Mail.Finalize(mailEnv) }},
		{"payment", func() error { return c.Payment.Finalize(paymentEnv) }},
		{"reports", func() error { return c.Reports.Finalize(reportsEnv) }},
	}
	for _, sec := range sections {
		if err := sec.finalize(); err != nil {
			return fmt.Errorf("%s: %w", sec.name, err)
		}
	}
	return nil
}

// load decodes one TOML file. Unknown keys are rejected so a misspelled
// setting fails loudly instead of silently keeping its default.
func load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	cfg := &Config{}
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

func overlayPath(base string) string {
	env := os.Getenv(EnvMoodAIEnv)
	if env == "" {
		return ""
	}

	path := filepath.Join(filepath.Dir(base), fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
