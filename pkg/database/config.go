package database

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds PostgreSQL connection parameters.
type Config struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Name            string `toml:"name"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	SSLMode         string `toml:"ssl_mode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime string `toml:"conn_max_lifetime"`
	ConnTimeout     string `toml:"conn_timeout"`
}

// Env names the environment variables that override each Config field.
// Empty names are skipped.
type Env struct {
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    string
	MaxIdleConns    string
	ConnMaxLifetime string
	ConnTimeout     string
}

func (c *Config) ConnMaxLifetimeDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnMaxLifetime)
	return d
}

func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// Dsn is the key/value form handed to the pgx stdlib driver.
func (c *Config) Dsn() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Name, c.User, c.Password, c.SSLMode,
	)
}

// URL is the postgres:// form golang-migrate expects.
func (c *Config) URL() string {
	return (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}).String()
}

// Finalize fills defaults, applies env overrides and validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge copies every non-zero overlay field onto c.
func (c *Config) Merge(overlay *Config) {
	for dst, src := range c.stringFields(overlay) {
		if *src != "" {
			*dst = *src
		}
	}
	for dst, src := range c.intFields(overlay) {
		if *src != 0 {
			*dst = *src
		}
	}
}

// stringFields pairs each string field of c with the same field of o.
func (c *Config) stringFields(o *Config) map[*string]*string {
	return map[*string]*string{
		&c.Host:            &o.Host,
		&c.Name:            &o.Name,
		&c.User:            &o.User,
		&c.Password:        &o.Password,
		&c.SSLMode:         &o.SSLMode,
		&c.ConnMaxLifetime: &o.ConnMaxLifetime,
		&c.ConnTimeout:     &o.ConnTimeout,
	}
}

func (c *Config) intFields(o *Config) map[*int]*int {
	return map[*int]*int{
		&c.Port:         &o.Port,
		&c.MaxOpenConns: &o.MaxOpenConns,
		&c.MaxIdleConns: &o.MaxIdleConns,
	}
}

func (c *Config) loadDefaults() {
	defaults := Config{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: "15m",
		ConnTimeout:     "5s",
	}
	defaults.Merge(c)
	*c = defaults
}

func (c *Config) loadEnv(env *Env) {
	lookup := func(name string) (string, bool) {
		if name == "" {
			return "", false
		}
		v := os.Getenv(name)
		return v, v != ""
	}

	for name, field := range map[string]*string{
		env.Host:            &c.Host,
		env.Name:            &c.Name,
		env.User:            &c.User,
		env.Password:        &c.Password,
		env.SSLMode:         &c.SSLMode,
		env.ConnMaxLifetime: &c.ConnMaxLifetime,
		env.ConnTimeout:     &c.ConnTimeout,
	} {
		if v, ok := lookup(name); ok {
			*field = v
		}
	}

	for name, field := range map[string]*int{
		env.Port:         &c.Port,
		env.MaxOpenConns: &c.MaxOpenConns,
		env.MaxIdleConns: &c.MaxIdleConns,
	} {
		if v, ok := lookup(name); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*field = n
			}
		}
	}
}

func (c *Config) validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name required"))
	}
	if c.User == "" {
		errs = append(errs, errors.New("user required"))
	}
	if _, err := time.ParseDuration(c.ConnMaxLifetime); err != nil {
		errs = append(errs, fmt.Errorf("invalid conn_max_lifetime: %w", err))
	}
	if _, err := time.ParseDuration(c.ConnTimeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid conn_timeout: %w", err))
	}
	return errors.Join(errs...)
}
