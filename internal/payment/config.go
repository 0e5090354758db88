package payment

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds Razorpay credentials and consultation pricing.
type Config struct {
	KeyID              string `toml:"key_id"`
	KeySecret          string `toml:"key_secret"`
	BaseURL            string `toml:"base_url"`
	Currency           string `toml:"currency"`
	ConsultationAmount int    `toml:"consultation_amount"`
	Timeout            string `toml:"timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	KeyID              string
	KeySecret          string
	BaseURL            string
	Currency           string
	ConsultationAmount string
	Timeout            string
}

// Enabled reports whether gateway credentials are configured.
func (c *Config) Enabled() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
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

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.KeyID != "" {
		c.KeyID = overlay.KeyID
	}
	if overlay.KeySecret != "" {
		c.KeySecret = overlay.KeySecret
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Currency != "" {
		c.Currency = overlay.Currency
	}
	if overlay.ConsultationAmount != 0 {
		c.ConsultationAmount = overlay.ConsultationAmount
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.razorpay.com"
	}
	if c.Currency == "" {
		c.Currency = "INR"
	}
	if c.ConsultationAmount == 0 {
		c.ConsultationAmount = 999
	}
	if c.Timeout == "" {
		c.Timeout = "15s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.KeyID != "" {
		if v := os.Getenv(env.KeyID); v != "" {
			c.KeyID = v
		}
	}
	if env.KeySecret != "" {
		if v := os.Getenv(env.KeySecret); v != "" {
			c.KeySecret = v
		}
	}
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Currency != "" {
		if v := os.Getenv(env.Currency); v != "" {
			c.Currency = v
		}
	}
	if env.ConsultationAmount != "" {
		if v := os.Getenv(env.ConsultationAmount); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.ConsultationAmount = n
			}
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *Config) validate() error {
	if (c.KeyID == "") != (c.KeySecret == "") {
		return fmt.Errorf("key_id and key_secret must be set together")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("invalid currency: %s", c.Currency)
	}
	if c.ConsultationAmount < 1 {
		return fmt.Errorf("invalid consultation_amount: %d", c.ConsultationAmount)
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
