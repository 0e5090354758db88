package storage

import (
	"errors"
	"os"
	"strconv"
)

// Config locates the report archive container. With Enabled false nothing
// else is checked and Disabled() is used instead of a real client.
type Config struct {
	Enabled          bool   `toml:"enabled"`
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
}

type Env struct {
	Enabled          string
	ContainerName    string
	ConnectionString string
}

func (c *Config) Finalize(env *Env) error {
	if c.ContainerName == "" {
		c.ContainerName = "reports"
	}

	if env != nil {
		if b, err := strconv.ParseBool(lookup(env.Enabled)); err == nil {
			c.Enabled = b
		}
		if v := lookup(env.ContainerName); v != "" {
			c.ContainerName = v
		}
		if v := lookup(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}

	if !c.Enabled {
		return nil
	}
	if c.ContainerName == "" {
		return errors.New("container_name required")
	}
	if c.ConnectionString == "" {
		return errors.New("connection_string required")
	}
	return nil
}

// Merge applies non-empty overlay strings. Enabled is always taken from the
// overlay so a file can switch archiving off.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
