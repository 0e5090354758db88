package config

import (
	"cmp"
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/moodai/pkg/formatting"
	"github.com/JaimeStill/moodai/pkg/middleware"
	"github.com/JaimeStill/moodai/pkg/openapi"
	"github.com/JaimeStill/moodai/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "MOODAI_CORS_ENABLED",
	Origins:          "MOODAI_CORS_ORIGINS",
	AllowedMethods:   "MOODAI_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "MOODAI_CORS_ALLOWED_HEADERS",
	AllowCredentials: "MOODAI_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "MOODAI_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "MOODAI_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "MOODAI_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "MOODAI_OPENAPI_TITLE",
	Description: "MOODAI_OPENAPI_DESCRIPTION",
}

// APIConfig is everything mounted under the API prefix: the prefix itself,
// the request body cap and the CORS, pagination and document settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

const defaultMaxBody = 1 << 20

// MaxBodySizeBytes falls back to 1MB if MaxBodySize does not parse.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	if size, err := formatting.ParseBytes(c.MaxBodySize); err == nil {
		return size
	}
	return defaultMaxBody
}

func (c *APIConfig) Finalize() error {
	c.BasePath = cmp.Or(os.Getenv("MOODAI_API_BASE_PATH"), c.BasePath, "/api")
	c.MaxBodySize = cmp.Or(os.Getenv("MOODAI_API_MAX_BODY_SIZE"), c.MaxBodySize, "1MB")

	// The base path becomes a single module prefix.
	if !strings.HasPrefix(c.BasePath, "/") || len(c.BasePath) < 2 || strings.Contains(c.BasePath[1:], "/") {
		return fmt.Errorf("invalid base_path %q: want a single segment like /api", c.BasePath)
	}
	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return c.OpenAPI.Finalize(openapiEnv)
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	c.BasePath = cmp.Or(overlay.BasePath, c.BasePath)
	c.MaxBodySize = cmp.Or(overlay.MaxBodySize, c.MaxBodySize)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
