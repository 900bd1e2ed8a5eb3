// Package config handles loading application configuration from YAML files,
// an optional .env file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FormDefaults are the values the form starts with.
type FormDefaults struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Eye        string `yaml:"eye"`
	Body       string `yaml:"body"`
}

// Config holds all application configuration values.
type Config struct {
	Port            int          `yaml:"port"`
	Output          string       `yaml:"output"`
	ModuleSize      int          `yaml:"module_size"`
	Border          int          `yaml:"border"`
	ErrorCorrection string       `yaml:"error_correction"`
	LogLevel        string       `yaml:"log_level"`
	ShutdownTimeout Duration     `yaml:"shutdown_timeout"`
	Defaults        FormDefaults `yaml:"defaults"`
}

// Duration is a wrapper around time.Duration that supports YAML unmarshalling
// from human-readable strings like "30s", "5m", "1h".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns a Config populated with the stock values.
func Defaults() *Config {
	return &Config{
		Port:            8556,
		Output:          "fancy_qr.png",
		ModuleSize:      10,
		Border:          4,
		ErrorCorrection: "high",
		LogLevel:        "info",
		ShutdownTimeout: Duration{10 * time.Second},
		Defaults: FormDefaults{
			Foreground: "#000000",
			Background: "#ffffff",
			Eye:        "square",
			Body:       "default",
		},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. Variables from envFile (if it exists)
// are loaded into the environment first, then FQR_* variables override any
// file or default values.
func Load(path, envFile string) (*Config, error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// File doesn't exist — proceed with defaults.
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv does not override variables already set in the environment.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies FQR_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FQR_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("FQR_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("FQR_MODULE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ModuleSize = n
		}
	}
	if v := os.Getenv("FQR_BORDER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Border = n
		}
	}
	if v := os.Getenv("FQR_ERROR_CORRECTION"); v != "" {
		cfg.ErrorCorrection = v
	}
	if v := os.Getenv("FQR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FQR_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = Duration{d}
		}
	}
}

// reservedOutputNames are served by fixed HTTP routes, so the output image
// cannot be published under them.
var reservedOutputNames = map[string]bool{
	"status":      true,
	"preview.png": true,
	"api":         true,
	".":           true,
	"/":           true,
}

// Validate checks the values that would otherwise fail late, at render time.
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	if base := filepath.Base(c.Output); reservedOutputNames[base] {
		return fmt.Errorf("output file name %q is reserved", base)
	}
	if c.ModuleSize < 1 || c.ModuleSize > 255 {
		return fmt.Errorf("module_size must be in [1,255], got %d", c.ModuleSize)
	}
	if c.Border < 0 {
		return fmt.Errorf("border must not be negative, got %d", c.Border)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}
