// Package config loads the preview settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "~/.config/oxy-fabric/config.toml"

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("invalid config")
)

// Window holds the viewer window settings.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Config is the full preview configuration.
type Config struct {
	ModelPath       string   `toml:"model_path"`
	GroupKeys       []string `toml:"group_keys"`
	GroupPrefix     string   `toml:"group_prefix"`
	Repeat          float32  `toml:"repeat"`
	RotationDegrees float32  `toml:"rotation_degrees"`
	StatusTimeoutMS int      `toml:"status_timeout_ms"`
	DecodeWorkers   int      `toml:"decode_workers"`
	MaxTextureSize  int      `toml:"max_texture_size"`
	Watch           bool     `toml:"watch"`
	LogLevel        string   `toml:"log_level"`
	Window          Window   `toml:"window"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		ModelPath:       "./assets/garment.glb",
		GroupKeys:       []string{"A", "B", "C"},
		GroupPrefix:     "fabric_",
		Repeat:          1,
		StatusTimeoutMS: 2200,
		DecodeWorkers:   2,
		LogLevel:        "info",
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "oxy-fabric",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. An empty path means DefaultPath. A missing
// file is not an error and yields the defaults. Unknown keys are rejected.
//
// Parameters:
//   - path: the config file, ~ is expanded
//
// Returns:
//   - Config: the loaded and validated configuration
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to expand %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", expanded)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", expanded, err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", expanded, err)
	}
	cfg.ModelPath = resolvePath(cfg.ModelPath, filepath.Dir(expanded))
	return cfg, nil
}

// Parse decodes TOML bytes on top of the defaults and validates the result.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the configuration
//   - error: a parse or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// resolvePath makes a relative model path relative to the config file's directory. Paths starting
// with ./ stay relative to the working directory.
func resolvePath(path, base string) string {
	if path == "" || filepath.IsAbs(path) || strings.HasPrefix(path, "./") || strings.HasPrefix(path, "~") {
		if expanded, err := homedir.Expand(path); err == nil {
			return expanded
		}
		return path
	}
	return filepath.Join(base, path)
}

// Validate checks the configuration for values the preview cannot run with.
//
// Returns:
//   - error: an error wrapping ErrInvalid, or nil
func (c Config) Validate() error {
	var errs []error
	if len(c.GroupKeys) == 0 {
		errs = append(errs, fmt.Errorf("%w: group_keys is empty", ErrInvalid))
	}
	seen := make(map[string]struct{})
	for _, k := range c.GroupKeys {
		norm := strings.ToUpper(strings.TrimSpace(k))
		switch {
		case norm == "":
			errs = append(errs, fmt.Errorf("%w: empty group key", ErrInvalid))
		case norm == "ALL":
			errs = append(errs, fmt.Errorf("%w: group key %q is reserved", ErrInvalid, k))
		default:
			if _, ok := seen[norm]; ok {
				errs = append(errs, fmt.Errorf("%w: duplicate group key %q", ErrInvalid, k))
			}
			seen[norm] = struct{}{}
		}
	}
	if c.Repeat <= 0 {
		errs = append(errs, fmt.Errorf("%w: repeat must be positive, got %v", ErrInvalid, c.Repeat))
	}
	if c.DecodeWorkers < 0 {
		errs = append(errs, fmt.Errorf("%w: decode_workers must not be negative", ErrInvalid))
	}
	if c.MaxTextureSize < 0 {
		errs = append(errs, fmt.Errorf("%w: max_texture_size must not be negative", ErrInvalid))
	}
	if c.StatusTimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("%w: status_timeout_ms must not be negative", ErrInvalid))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// StatusTimeout returns the status timeout as a duration.
func (c Config) StatusTimeout() time.Duration {
	return time.Duration(c.StatusTimeoutMS) * time.Millisecond
}

// ParseLevel maps a log_level value to a slog level.
//
// Parameters:
//   - level: debug, info, warn or error
//
// Returns:
//   - slog.Level: the level
//   - error: an error wrapping ErrInvalid for other values
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalid, level)
	}
	return l, nil
}
