// Package config loads service settings from the environment
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers understood by the quote store factory
const (
	DriverBadger   = "badger"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPServer HTTPServer
	Provider   Provider
	Storage    Storage
	Log        Log
	App        App
}

type HTTPServer struct {
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Provider struct {
	BaseURL string        `env:"PROVIDER_BASE_URL" env-default:"https://api.vatcomply.com"`
	Timeout time.Duration `env:"PROVIDER_TIMEOUT" env-default:"10s"`
}

type Storage struct {
	Driver      string `env:"STORAGE_DRIVER" env-default:"badger"`
	BadgerPath  string `env:"STORAGE_BADGER_PATH" env-default:"./data"`
	SQLitePath  string `env:"STORAGE_SQLITE_PATH" env-default:"./cotacao.db"`
	PostgresDSN string `env:"STORAGE_POSTGRES_DSN"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" env-default:"INFO"`
}

type App struct {
	Timezone string `env:"APP_TIMEZONE" env-default:"Local"`
}

// Load reads an optional .env file and then the process environment
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// a missing .env is normal outside local development
	_ = godotenv.Load(envFiles...)

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that cleanenv cannot express with tags
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverBadger, DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("STORAGE_POSTGRES_DSN is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location resolves the timezone used to decide which calendar day is today
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.HTTPServer.Port
}
