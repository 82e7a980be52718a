package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string `env:"PORT" envDefault:"3000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:4200"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"warn"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`

	// Database configuration
	DBType            string `env:"DB_TYPE" envDefault:"sqlite"` // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string `env:"DB_PORT" envDefault:"3306"`
	DBDatabase        string `env:"DB_DATABASE"`
	DBUser            string `env:"DB_USER"`
	DBPassword        string `env:"DB_PASSWORD"`
	DBConnectionLimit int    `env:"DB_CONNECTION_LIMIT" envDefault:"5"`

	// Simulation outputs and engine
	OutputRoot              string        `env:"OUTPUT_ROOT" envDefault:"./outputs"`
	EngineCommand           string        `env:"ENGINE_COMMAND" envDefault:"python3"`
	EngineArgs              []string      `env:"ENGINE_ARGS" envDefault:"-m,gatesim_engine" envSeparator:","`
	EngineMaxConcurrentRuns int64         `env:"ENGINE_MAX_CONCURRENT_RUNS" envDefault:"1"`
	EngineRunTimeout        time.Duration `env:"ENGINE_RUN_TIMEOUT" envDefault:"0s"`

	// Export blob storage
	Blob BlobConfig `envPrefix:"BLOB_"`
}

// BlobConfig selects and configures the export blob store
type BlobConfig struct {
	Driver        string `env:"DRIVER" envDefault:"fs"` // fs, s3, memory
	FSRoot        string `env:"FS_ROOT" envDefault:"./blobdata"`
	S3Bucket      string `env:"S3_BUCKET"`
	S3Region      string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint    string `env:"S3_ENDPOINT"`
	S3PathStyle   bool   `env:"S3_PATH_STYLE" envDefault:"false"`
	S3AccessKeyID string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey   string `env:"S3_SECRET_ACCESS_KEY"`
}

// Load loads configuration from a .env file, if present, and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Ignoring unreadable .env file: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBType != "sqlite3" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required for %s", cfg.DBType)
	}
	if cfg.OutputRoot == "" {
		return nil, fmt.Errorf("OUTPUT_ROOT is required")
	}
	if cfg.EngineCommand == "" {
		return nil, fmt.Errorf("ENGINE_COMMAND is required")
	}
	if cfg.EngineMaxConcurrentRuns < 1 {
		return nil, fmt.Errorf("ENGINE_MAX_CONCURRENT_RUNS must be at least 1")
	}
	if cfg.Blob.Driver == "s3" && cfg.Blob.S3Bucket == "" {
		return nil, fmt.Errorf("BLOB_S3_BUCKET is required for the s3 blob driver")
	}

	return cfg, nil
}
