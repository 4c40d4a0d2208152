package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/zootherapy/menagerie/capability"
	"github.com/zootherapy/menagerie/persona"
)

// Config holds the command configuration loaded from the environment.
type Config struct {
	// Persona selection
	Persona string
	Catalog string // optional YAML persona catalog

	LogLevel string // debug, info, warn, error

	// Runner
	MaxSteps       int
	HandlerTimeout time.Duration
}

// LoadConfig reads configuration from env and validates it.
func LoadConfig(env capability.Environment) (*Config, error) {
	cfg := &Config{
		Persona:        getEnvOrDefault(env, "MENAGERIE_PERSONA", persona.MainAgent),
		Catalog:        getEnvOrDefault(env, "MENAGERIE_CATALOG", ""),
		LogLevel:       getEnvOrDefault(env, "MENAGERIE_LOG_LEVEL", "warn"),
		MaxSteps:       getEnvIntOrDefault(env, "MENAGERIE_MAX_STEPS", 10),
		HandlerTimeout: getEnvDurationOrDefault(env, "MENAGERIE_HANDLER_TIMEOUT", 60*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Persona) == "" {
		return fmt.Errorf("MENAGERIE_PERSONA must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("MENAGERIE_LOG_LEVEL: %w", err)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("MENAGERIE_MAX_STEPS must not be negative")
	}
	if c.HandlerTimeout < 0 {
		return fmt.Errorf("MENAGERIE_HANDLER_TIMEOUT must not be negative")
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

func getEnvOrDefault(env capability.Environment, key, defaultValue string) string {
	if value, ok := env.Lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(env capability.Environment, key string, defaultValue int) int {
	if value, ok := env.Lookup(key); ok && value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(env capability.Environment, key string, defaultValue time.Duration) time.Duration {
	if value, ok := env.Lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
