package middleware

import (
	"net/http"
	"os"
	"strconv"
	"strings"
)

// CORSConfig is the browser-origin policy for the API. The frontend sends the
// session cookie, so AllowCredentials is normally on alongside an explicit
// origin list.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials string
	MaxAge           string
}

func (c *CORSConfig) Finalize(env *CORSEnv) error {
	c.AllowedMethods = orDefault(c.AllowedMethods, http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions)
	c.AllowedHeaders = orDefault(c.AllowedHeaders, "Content-Type", "Authorization")
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}
	if env == nil {
		return nil
	}

	for name, dst := range map[string]*bool{env.Enabled: &c.Enabled, env.AllowCredentials: &c.AllowCredentials} {
		if b, err := strconv.ParseBool(lookup(name)); err == nil {
			*dst = b
		}
	}
	for name, dst := range map[string]*[]string{env.Origins: &c.Origins, env.AllowedMethods: &c.AllowedMethods, env.AllowedHeaders: &c.AllowedHeaders} {
		if v := lookup(name); v != "" {
			*dst = splitList(v)
		}
	}
	if n, err := strconv.Atoi(lookup(env.MaxAge)); err == nil {
		c.MaxAge = n
	}
	return nil
}

// Merge takes both booleans from overlay unconditionally. Lists replace the
// base only when the overlay sets them.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled, c.AllowCredentials = overlay.Enabled, overlay.AllowCredentials
	for _, pair := range [][2]*[]string{
		{&c.Origins, &overlay.Origins},
		{&c.AllowedMethods, &overlay.AllowedMethods},
		{&c.AllowedHeaders, &overlay.AllowedHeaders},
	} {
		if *pair[1] != nil {
			*pair[0] = *pair[1]
		}
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

func orDefault(v []string, def ...string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

// lookup reads the variable named name, or "" when name is unset.
func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
