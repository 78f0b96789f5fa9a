package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lucasclyra-cmd/normative/pkg/middleware"
	"github.com/lucasclyra-cmd/normative/pkg/pagination"
)

const (
	EnvAPIBasePath        = "NORMATIVE_API_BASE_PATH"
	EnvAPIMaxUploadSizeMB = "NORMATIVE_API_MAX_UPLOAD_SIZE_MB"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "NORMATIVE_API_CORS_ENABLED",
	Origins:          "NORMATIVE_API_CORS_ORIGINS",
	AllowedMethods:   "NORMATIVE_API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "NORMATIVE_API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "NORMATIVE_API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "NORMATIVE_API_CORS_MAX_AGE",
}

var authEnv = &middleware.AuthEnv{
	Enabled: "NORMATIVE_API_AUTH_ENABLED",
	Secret:  "NORMATIVE_API_AUTH_SECRET",
	Issuer:  "NORMATIVE_API_AUTH_ISSUER",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "NORMATIVE_API_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "NORMATIVE_API_MAX_PAGE_SIZE",
}

// APIConfig holds settings for the API module.
type APIConfig struct {
	BasePath        string                `toml:"base_path"`
	MaxUploadSizeMB int64                 `toml:"max_upload_size_mb"`
	CORS            middleware.CORSConfig `toml:"cors"`
	Auth            middleware.AuthConfig `toml:"auth"`
	Pagination      pagination.Config     `toml:"pagination"`
}

// MaxUploadSizeBytes returns the upload limit in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	return c.MaxUploadSizeMB << 20
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSizeMB != 0 {
		c.MaxUploadSizeMB = overlay.MaxUploadSizeMB
	}
	c.CORS.Merge(&overlay.CORS)
	c.Auth.Merge(&overlay.Auth)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSizeMB == 0 {
		c.MaxUploadSizeMB = 50
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSizeMB); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxUploadSizeMB = n
		}
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %s", c.BasePath)
	}
	if c.MaxUploadSizeMB < 1 {
		return fmt.Errorf("max_upload_size_mb must be positive")
	}
	return nil
}
