package notifications

import (
	"fmt"
	"net/mail"
	"os"
	"strconv"
)

// Config holds outbound mail settings. An empty Host selects the log-only mailer.
type Config struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	From           string `toml:"from"`
	SessionSummary bool   `toml:"session_summary"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Host           string
	Port           string
	Username       string
	Password       string
	From           string
	SessionSummary string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. SessionSummary always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.Username != "" {
		c.Username = overlay.Username
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.From != "" {
		c.From = overlay.From
	}
	c.SessionSummary = overlay.SessionSummary
}

func (c *Config) loadDefaults() {
	if c.Port == 0 {
		c.Port = 587
	}
	if c.From == "" {
		c.From = `"MoodAI" <no-reply@moodai.app>`
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Host != "" {
		if v := os.Getenv(env.Host); v != "" {
			c.Host = v
		}
	}
	if env.Port != "" {
		if v := os.Getenv(env.Port); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				c.Port = port
			}
		}
	}
	if env.Username != "" {
		if v := os.Getenv(env.Username); v != "" {
			c.Username = v
		}
	}
	if env.Password != "" {
		if v := os.Getenv(env.Password); v != "" {
			c.Password = v
		}
	}
	if env.From != "" {
		if v := os.Getenv(env.From); v != "" {
			c.From = v
		}
	}
	if env.SessionSummary != "" {
		if v := os.Getenv(env.SessionSummary); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.SessionSummary = b
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := mail.ParseAddress(c.From); err != nil {
		return fmt.Errorf("invalid from: %w", err)
	}
	return nil
}
