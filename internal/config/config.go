// Package config loads process configuration from the environment,
// optionally seeded from a local .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIKey          = "HYPESCORE_API_KEY"
	EnvMongoURI        = "MONGO_URI"
	EnvMongoDB         = "MONGO_DB"
	EnvMongoCollection = "MONGO_COLLECTION"
	EnvPostgresDSN     = "POSTGRES_DSN"
)

// Defaults for optional values.
const (
	DefaultMongoDB         = "mobula"
	DefaultMongoCollection = "Token"
)

// ErrMissingRequired marks configuration values that must be present.
// main maps it to the configuration exit code.
var ErrMissingRequired = errors.New("missing required configuration")

// Backend selects the persistence backend for a run.
type Backend string

const (
	BackendMongo    Backend = "mongo"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

// ParseBackend validates a --store flag value.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendMongo, BackendPostgres, BackendMemory:
		return Backend(s), nil
	}
	return "", fmt.Errorf("unknown store backend %q (want mongo, postgres, or memory)", s)
}

// Config holds everything read from the environment. It is built once in
// main and passed down; no package reads the environment after Load.
type Config struct {
	APIKey          string
	MongoURI        string
	MongoDB         string
	MongoCollection string
	PostgresDSN     string
}

// Load reads envFile (if it exists) into the process environment and then
// gathers configuration. Values already set in the environment win over the
// file, matching godotenv semantics.
func Load(envFile string) Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	cfg := Config{
		APIKey:          os.Getenv(EnvAPIKey),
		MongoURI:        os.Getenv(EnvMongoURI),
		MongoDB:         os.Getenv(EnvMongoDB),
		MongoCollection: os.Getenv(EnvMongoCollection),
		PostgresDSN:     os.Getenv(EnvPostgresDSN),
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = DefaultMongoDB
	}
	if cfg.MongoCollection == "" {
		cfg.MongoCollection = DefaultMongoCollection
	}
	return cfg
}

// Validate checks that every value the chosen backend needs is present.
// The API key is always required; connection strings only for the backend
// that uses them.
func (c Config) Validate(backend Backend) error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: %s not found in environment or .env (copy .env.example -> .env and set your key)",
			ErrMissingRequired, EnvAPIKey)
	}
	switch backend {
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("%w: %s not found in environment or .env (set it to your MongoDB connection string)",
				ErrMissingRequired, EnvMongoURI)
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: %s not found in environment or .env (set it to your PostgreSQL connection string)",
				ErrMissingRequired, EnvPostgresDSN)
		}
	}
	return nil
}
