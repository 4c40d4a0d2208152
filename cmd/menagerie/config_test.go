package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zootherapy/menagerie/capability"
	"github.com/zootherapy/menagerie/persona"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig(capability.MapEnv{})
		require.NoError(t, err)

		assert.Equal(t, persona.MainAgent, cfg.Persona)
		assert.Empty(t, cfg.Catalog)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 10, cfg.MaxSteps)
		assert.Equal(t, 60*time.Second, cfg.HandlerTimeout)
	})

	t.Run("reads environment", func(t *testing.T) {
		cfg, err := LoadConfig(capability.MapEnv{
			"MENAGERIE_PERSONA":         "Strategy Agent",
			"MENAGERIE_CATALOG":         "personas.yaml",
			"MENAGERIE_LOG_LEVEL":       "debug",
			"MENAGERIE_MAX_STEPS":       "3",
			"MENAGERIE_HANDLER_TIMEOUT": "5s",
		})
		require.NoError(t, err)

		assert.Equal(t, "Strategy Agent", cfg.Persona)
		assert.Equal(t, "personas.yaml", cfg.Catalog)
		assert.Equal(t, 3, cfg.MaxSteps)
		assert.Equal(t, 5*time.Second, cfg.HandlerTimeout)

		level, err := cfg.Level()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		cfg, err := LoadConfig(capability.MapEnv{
			"MENAGERIE_MAX_STEPS":       "many",
			"MENAGERIE_HANDLER_TIMEOUT": "soon",
		})
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.MaxSteps)
		assert.Equal(t, 60*time.Second, cfg.HandlerTimeout)
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		_, err := LoadConfig(capability.MapEnv{"MENAGERIE_LOG_LEVEL": "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MENAGERIE_LOG_LEVEL")
	})

	t.Run("rejects negative limits", func(t *testing.T) {
		_, err := LoadConfig(capability.MapEnv{"MENAGERIE_MAX_STEPS": "-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MENAGERIE_MAX_STEPS")

		_, err = LoadConfig(capability.MapEnv{"MENAGERIE_HANDLER_TIMEOUT": "-1s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MENAGERIE_HANDLER_TIMEOUT")
	})
}
