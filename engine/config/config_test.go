package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"A", "B", "C"}, cfg.GroupKeys)
	assert.Equal(t, "fabric_", cfg.GroupPrefix)
	assert.Equal(t, 2200*time.Millisecond, cfg.StatusTimeout())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
group_keys = ["top", "bottom"]
repeat = 2.5
rotation_degrees = 30
watch = true
log_level = "debug"

[window]
title = "fitting"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"top", "bottom"}, cfg.GroupKeys)
	assert.Equal(t, float32(2.5), cfg.Repeat)
	assert.Equal(t, float32(30), cfg.RotationDegrees)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "fitting", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "fabric_", cfg.GroupPrefix)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`colour = "red"`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"no keys":        func(c *Config) { c.GroupKeys = nil },
		"empty key":      func(c *Config) { c.GroupKeys = []string{"A", " "} },
		"duplicate key":  func(c *Config) { c.GroupKeys = []string{"A", "a"} },
		"reserved key":   func(c *Config) { c.GroupKeys = []string{"all"} },
		"zero repeat":    func(c *Config) { c.Repeat = 0 },
		"workers":        func(c *Config) { c.DecodeWorkers = -1 },
		"texture size":   func(c *Config) { c.MaxTextureSize = -1 },
		"log level":      func(c *Config) { c.LogLevel = "loud" },
		"status timeout": func(c *Config) { c.StatusTimeoutMS = -5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadResolvesModelPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`model_path = "models/shirt.glb"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "models", "shirt.glb"), cfg.ModelPath)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = ParseLevel("chatty")
	assert.ErrorIs(t, err, ErrInvalid)
}
