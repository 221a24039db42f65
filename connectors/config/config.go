package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"ecommerce-stats/domain/config"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "./config.yml"

var validate = validator.New()

// Path returns the config file location from CONFIG_PATH.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load builds the configuration: defaults, then the YAML file at path when it exists, then
// environment overrides. The result is validated.
func Load(path string) (*config.Config, error) {
	c := config.Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("config.file.missing", "path", path)
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		slog.Info(fmt.Sprintf("Loaded config: %s", path))
	}
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field constraints and that the timezone exists.
func Validate(c *config.Config) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(c.Data.Timezone); err != nil {
		return fmt.Errorf("invalid config: timezone %q: %w", c.Data.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone.
func Location(c *config.Config) *time.Location {
	loc, err := time.LoadLocation(c.Data.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LogLevel maps the configured level name to slog.
func LogLevel(c *config.Config) slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
