// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime settings for the property translator.
type Config struct {
	DBPath     string // TRANSLATOR_DB_PATH (default "property_translations.db")
	Port       int    // PORT (default 8080)
	XAIAPIKey  string // XAI_API_KEY, falling back to GROK_API_KEY (optional)
	XAIBaseURL string // XAI_BASE_URL (default "https://api.x.ai/v1")
	XAIModel   string // XAI_MODEL (default "grok-3")
	FuzzyMatch bool   // TRANSLATOR_FUZZY_MATCH (default false)
}

// Load reads configuration from the environment. A missing API key is not
// an error: the AI layer degrades to its fallback translation without one.
func Load() (*Config, error) {
	c := &Config{
		DBPath:     envOrDefault("TRANSLATOR_DB_PATH", "property_translations.db"),
		XAIAPIKey:  os.Getenv("XAI_API_KEY"),
		XAIBaseURL: envOrDefault("XAI_BASE_URL", "https://api.x.ai/v1"),
		XAIModel:   envOrDefault("XAI_MODEL", "grok-3"),
	}
	if c.XAIAPIKey == "" {
		c.XAIAPIKey = os.Getenv("GROK_API_KEY")
	}

	portStr := envOrDefault("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("PORT: invalid value %q", portStr)
	}
	c.Port = port

	if v := os.Getenv("TRANSLATOR_FUZZY_MATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("TRANSLATOR_FUZZY_MATCH: %w", err)
		}
		c.FuzzyMatch = b
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
