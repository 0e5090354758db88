package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds token signing and session cookie settings.
type Config struct {
	Secret       string `toml:"secret"`
	TokenTTL     string `toml:"token_ttl"`
	CookieName   string `toml:"cookie_name"`
	CookieSecure bool   `toml:"cookie_secure"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Secret       string
	TokenTTL     string
	CookieName   string
	CookieSecure string
}

// TokenTTLDuration returns TokenTTL as a time.Duration.
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. CookieSecure always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	c.CookieSecure = overlay.CookieSecure
}

func (c *Config) loadDefaults() {
	if c.TokenTTL == "" {
		c.TokenTTL = "168h"
	}
	if c.CookieName == "" {
		c.CookieName = "token"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.TokenTTL != "" {
		if v := os.Getenv(env.TokenTTL); v != "" {
			c.TokenTTL = v
		}
	}
	if env.CookieName != "" {
		if v := os.Getenv(env.CookieName); v != "" {
			c.CookieName = v
		}
	}
	if env.CookieSecure != "" {
		if v := os.Getenv(env.CookieSecure); v != "" {
			if secure, err := strconv.ParseBool(v); err == nil {
				c.CookieSecure = secure
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("secret required")
	}
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	return nil
}
