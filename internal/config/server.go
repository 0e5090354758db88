package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerConfig holds the HTTP listener settings. Chat requests wait on the
// companion provider, so the write timeout must outlast its request timeout.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

var serverEnv = map[string]func(*ServerConfig) *string{
	"MOODAI_SERVER_HOST":                func(c *ServerConfig) *string { return &c.Host },
	"MOODAI_SERVER_READ_TIMEOUT":        func(c *ServerConfig) *string { return &c.ReadTimeout },
	"MOODAI_SERVER_READ_HEADER_TIMEOUT": func(c *ServerConfig) *string { return &c.ReadHeaderTimeout },
	"MOODAI_SERVER_WRITE_TIMEOUT":       func(c *ServerConfig) *string { return &c.WriteTimeout },
	"MOODAI_SERVER_IDLE_TIMEOUT":        func(c *ServerConfig) *string { return &c.IdleTimeout },
	"MOODAI_SERVER_SHUTDOWN_TIMEOUT":    func(c *ServerConfig) *string { return &c.ShutdownTimeout },
}

const envServerPort = "MOODAI_SERVER_PORT"

// Addr is the host:port the listener binds.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Timeouts returns read, read-header, write, idle and shutdown durations.
// Values are validated by Finalize.
func (c *ServerConfig) Timeouts() (read, header, write, idle, shutdown time.Duration) {
	parse := func(s string) time.Duration {
		d, _ := time.ParseDuration(s)
		return d
	}
	return parse(c.ReadTimeout), parse(c.ReadHeaderTimeout), parse(c.WriteTimeout), parse(c.IdleTimeout), parse(c.ShutdownTimeout)
}

func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for _, field := range serverEnv {
		if v := *field(overlay); v != "" {
			*field(c) = v
		}
	}
}

func (c *ServerConfig) loadDefaults() {
	defaults := map[*string]string{
		&c.Host:              "0.0.0.0",
		&c.ReadTimeout:       "30s",
		&c.ReadHeaderTimeout: "5s",
		&c.WriteTimeout:      "2m",
		&c.IdleTimeout:       "2m",
		&c.ShutdownTimeout:   "30s",
	}
	for field, v := range defaults {
		if *field == "" {
			*field = v
		}
	}
	if c.Port == 0 {
		c.Port = 8080
	}
}

func (c *ServerConfig) loadEnv() {
	for name, field := range serverEnv {
		if v := os.Getenv(name); v != "" {
			*field(c) = v
		}
	}
	if v := os.Getenv(envServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for name, v := range map[string]string{
		"read_timeout":        c.ReadTimeout,
		"read_header_timeout": c.ReadHeaderTimeout,
		"write_timeout":       c.WriteTimeout,
		"idle_timeout":        c.IdleTimeout,
		"shutdown_timeout":    c.ShutdownTimeout,
	} {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
