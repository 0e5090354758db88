package openapi

import "os"

// Config is the info block of the generated document.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

type ConfigEnv struct {
	Title       string
	Description string
}

const (
	defaultTitle       = "MoodAI API"
	defaultDescription = "Mood-aware wellness companion: chat, mood history, recommendations, and consultations."
)

// Finalize never fails; the error keeps the signature in line with the other
// sub-configs.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Description == "" {
		c.Description = defaultDescription
	}
	if env == nil {
		return nil
	}
	for name, dst := range map[string]*string{env.Title: &c.Title, env.Description: &c.Description} {
		if v := os.Getenv(name); name != "" && v != "" {
			*dst = v
		}
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}
