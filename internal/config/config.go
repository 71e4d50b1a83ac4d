// Package config handles loading and parsing application configuration.
// It supports two sources for the config file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, when present, is loaded into the
// process environment first, so every env:"..." override below can also
// live there.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers understood by cmd/students-api.
const (
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true" validate:"oneof=dev staging prod"`

	Storage Storage `yaml:"storage"`

	// HTTPServer is embedded so its fields are promoted: cfg.Addr works
	// as well as cfg.HTTPServer.Addr.
	HTTPServer `yaml:"http_server"`
}

// Storage selects and configures the record store.
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo" validate:"oneof=mongo sqlite postgres memory"`

	// MongoURI and MongoDatabase default to the connection target the
	// registration form has always used: mongodb://localhost:27017/studentDB.
	MongoURI      string `yaml:"mongo_uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017" validate:"required_if=Driver mongo"`
	MongoDatabase string `yaml:"mongo_database" env:"MONGO_DATABASE" env-default:"studentDB" validate:"required_if=Driver mongo"`

	// SQLitePath is the filesystem path to the SQLite .db file.
	SQLitePath string `yaml:"sqlite_path" env:"STORAGE_PATH" env-default:"storage/storage.db" validate:"required_if=Driver sqlite"`

	// PostgresURL is a pgx connection string.
	PostgresURL string `yaml:"postgres_url" env:"DATABASE_URL" validate:"required_if=Driver postgres"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:5000".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:5000" validate:"required"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`

	// AllowedOrigins feeds the CORS middleware. "*" allows any origin,
	// which is what the browser form expects in development.
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// Load reads and validates the config file at configPath.
func Load(configPath string) (*Config, error) {
	// Verify the file exists before trying to read it, so the message is
	// clearer than a cryptic "open: no such file" later.
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// cleanenv.ReadConfig reads the YAML file, applies env-default values,
	// reads env:"..." overrides and checks env-required constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to exit on failure. If this
// function returns, the config is valid.
func MustLoad() *Config {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("cannot load .env file: %s", err.Error())
	}

	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	//   go run ./cmd/students-api --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
