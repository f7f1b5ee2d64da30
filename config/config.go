package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is named explicitly.
const DefaultPath = "petadopt.yaml"

// DefaultDatabaseURL is used when no database is configured.
const DefaultDatabaseURL = "sqlite:///pet_adoption.db"

// Config is the runtime configuration. Precedence, lowest first: defaults,
// config file, environment (including .env), command-line flags.
type Config struct {
	DatabaseURL string `yaml:"database_url"`
	LogLevel    string `yaml:"log_level"`
	MaxConns    int32  `yaml:"max_conns"`
}

func Default() Config {
	return Config{
		DatabaseURL: DefaultDatabaseURL,
		LogLevel:    "warn",
	}
}

// Load builds the configuration. A missing DefaultPath is fine; a missing
// file that was asked for by name is an error.
func Load(path string) (Config, error) {
	LoadEnv()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		slog.Debug("no config file found, using defaults", "path", path)
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)

	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	if cfg.MaxConns < 0 {
		return Config{}, fmt.Errorf("max_conns must not be negative")
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Level parses LogLevel (debug, info, warn, error).
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return lvl, nil
}
