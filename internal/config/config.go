// Package config handles resolving configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to the environment variable overrides of each field.
// Fields with an envconfig tag also honour the bare tag name, e.g. PORT.
const EnvPrefix = "LECTERN"

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel   slog.Level `yaml:"log_level"   envconfig:"LOG_LEVEL"`
	DevMode    bool       `yaml:"dev_mode"    envconfig:"DEV_MODE"`
	Host       string     `yaml:"host"        envconfig:"HOST"`
	Port       int        `yaml:"port"        envconfig:"PORT"                        validate:"min=1,max=65535"`
	DBDriver   string     `yaml:"db_driver"   envconfig:"DB_DRIVER"                   validate:"oneof=sqlite postgres"`
	DBFilepath string     `yaml:"db_filepath" envconfig:"DB_FILEPATH"                 validate:"required_if=DBDriver sqlite"`
	DBDSN      string     `yaml:"db_dsn"      envconfig:"DB_DSN"                      validate:"required_if=DBDriver postgres"`
	LogErrors  bool       `yaml:"log_errors"  envconfig:"ENABLE_GLOBAL_ERROR_LOGGING"`
	BcryptCost int        `yaml:"bcrypt_cost" envconfig:"BCRYPT_COST"                 validate:"min=4,max=31"`
}

// Address is the host:port the API listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LogValue satisfies [slog.LogValuer]. The database DSN is redacted since it
// may carry a password.
func (c *Config) LogValue() slog.Value {
	dsn := ""
	if c.DBDSN != "" {
		dsn = "[REDACTED]"
	}
	return slog.GroupValue(
		slog.String("log_level", c.LogLevel.String()),
		slog.Bool("dev_mode", c.DevMode),
		slog.String("address", c.Address()),
		slog.String("db_driver", c.DBDriver),
		slog.String("db_filepath", c.DBFilepath),
		slog.String("db_dsn", dsn),
		slog.Bool("log_errors", c.LogErrors),
		slog.Int("bcrypt_cost", c.BcryptCost),
	)
}

// Default returns a version of the config with all default values populated.
func Default() *Config {
	return &Config{
		LogLevel:   slog.LevelInfo,
		Host:       "localhost",
		Port:       5000,
		DBDriver:   DriverSQLite,
		DBFilepath: filepath.Join(xdg.DataHome, "lectern", "db.sqlite"),
		BcryptCost: 10,
	}
}

// Load loads a YAML configuration file from a path, merges it with defaults,
// applies environment overrides, and validates it for completeness.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	return resolve(cfg)
}

// FromEnv builds a config from the defaults and the environment alone.
func FromEnv() (*Config, error) {
	return resolve(Default())
}

// Write persists cfg as YAML to path, readable only by the owner.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	const userOnlyDirPerms = 0o700
	if err = os.MkdirAll(filepath.Dir(path), userOnlyDirPerms); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil { //nolint:mnd // owner rw access
		return fmt.Errorf("failed to write config file to %s: %w", path, err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func resolve(cfg *Config) (*Config, error) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
