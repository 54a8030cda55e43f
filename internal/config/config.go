// Package config loads and validates settings from config.yaml, .env and MERMAIDER_* variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bassista/mermaider/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	// BackendNone models an execution context without persistent storage.
	BackendNone = "none"

	envPrefix = "MERMAIDER"
)

// Config is the full application configuration.
type Config struct {
	Storage  StorageConfig
	Snippets SnippetsConfig
	Misc     MiscConfig
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Backend       string        `validate:"required,oneof=file sqlite memory none"`
	Dir           string        `validate:"required_if=Backend file"`
	SQLitePath    string        `validate:"required_if=Backend sqlite"`
	Key           string        `validate:"required"`
	WatchDebounce time.Duration `validate:"gt=0"`
}

// SnippetsConfig holds snippet presentation settings.
type SnippetsConfig struct {
	// Timezone used to render snippet titles. Empty or "Local" means the host zone.
	Timezone string
}

// MiscConfig holds logging and error reporting settings.
type MiscConfig struct {
	LogLevel          string
	HoneybadgerAPIKey string
	Env               string
}

// LoadConfig reads config.yaml from confPath (or MERMAIDER_CONFIG_PATH, or ./config),
// applies defaults and environment overrides and validates the result.
// A missing config file is not an error.
func LoadConfig(confPath string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithComponent("config").Warnf("cannot load .env file: %v", err)
	}

	if confPath == "" {
		confPath = getEnvOrDefault(envPrefix+"_CONFIG_PATH", "./config")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(confPath)

	// Defaults to allow running without config file
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("storage.sqlite_path", "./data/mermaider.db")
	v.SetDefault("storage.key", "mermaider-snippets")
	v.SetDefault("storage.watch_debounce", 200*time.Millisecond)
	v.SetDefault("snippets.timezone", "Local")
	v.SetDefault("misc.log_level", "info")
	v.SetDefault("misc.env", "development")

	// Environment variables like MERMAIDER_STORAGE_DIR override storage.dir
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Debug("No config file found, using defaults and env vars")
	}

	cfg := &Config{
		Storage: StorageConfig{
			Backend:       strings.ToLower(v.GetString("storage.backend")),
			Dir:           v.GetString("storage.dir"),
			SQLitePath:    v.GetString("storage.sqlite_path"),
			Key:           v.GetString("storage.key"),
			WatchDebounce: v.GetDuration("storage.watch_debounce"),
		},
		Snippets: SnippetsConfig{
			Timezone: v.GetString("snippets.timezone"),
		},
		Misc: MiscConfig{
			LogLevel:          v.GetString("misc.log_level"),
			HoneybadgerAPIKey: getEnvOrDefault("HONEYBADGER_API_KEY", v.GetString("misc.honeybadger_api_key")),
			Env:               getEnvOrDefault("GO_ENV", v.GetString("misc.env")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves Snippets.Timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := c.Snippets.Timezone
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid snippets timezone %q: %w", c.Snippets.Timezone, err)
	}
	if c.Misc.LogLevel != "" {
		if _, err := logrus.ParseLevel(strings.ToLower(c.Misc.LogLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", c.Misc.LogLevel, err)
		}
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
