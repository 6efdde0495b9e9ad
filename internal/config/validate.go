package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if !strings.HasPrefix(c.Straico.BaseURL, "http://") && !strings.HasPrefix(c.Straico.BaseURL, "https://") {
		return fmt.Errorf("straico.base_url must be an http(s) URL (got %q)", c.Straico.BaseURL)
	}

	if c.Straico.Temperature < 0 || c.Straico.Temperature > 2 {
		return fmt.Errorf("straico.temperature must be in [0,2] (got %v)", c.Straico.Temperature)
	}
	if c.Straico.MaxTokens <= 0 {
		return fmt.Errorf("straico.max_tokens must be > 0 (got %d)", c.Straico.MaxTokens)
	}

	if c.Analytics.QueueSize <= 0 {
		return fmt.Errorf("analytics.queue_size must be > 0 (got %d)", c.Analytics.QueueSize)
	}

	if c.Limits.MaxBookmarksPerUser <= 0 || c.Limits.MaxCategoriesPerUser <= 0 || c.Limits.MaxTagsPerUser <= 0 {
		return fmt.Errorf("limits must be > 0")
	}

	return nil
}
