package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSources is the fixed list of recipe files, relative to BaseURL.
var DefaultSources = []string{
	"recipes/1_50-thanksgiving-side-dishes.json",
	"recipes/2_roasting-turkey-breast-with-stuffing.json",
	"recipes/3_moms-cornbread-stuffing.json",
	"recipes/4_50-indulgent-thanksgiving-side-dishes-for-any-holiday-gathering.json",
	"recipes/5_healthy-thanksgiving-recipe-crockpot-turkey-breast.json",
	"recipes/6_one-pot-thanksgiving-dinner.json",
}

// Store kinds accepted by RECIPES_STORE.
const (
	StoreMemory    = "memory"
	StoreSQLite    = "sqlite"
	StoreFirestore = "firestore"
	StoreS3        = "s3"
)

type Config struct {
	Addr        string        `env:"RECIPES_ADDR" envDefault:":8080"`
	BaseURL     string        `env:"RECIPES_BASE_URL" envDefault:"http://localhost:8080/"`
	Sources     []string      `env:"RECIPES_SOURCES" envSeparator:","`
	HTTPTimeout time.Duration `env:"RECIPES_HTTP_TIMEOUT" envDefault:"10s"`
	LogLevel    string        `env:"RECIPES_LOG" envDefault:"info"`

	Store string `env:"RECIPES_STORE" envDefault:"sqlite"`

	SQLitePath string `env:"RECIPES_SQLITE_PATH" envDefault:"recipes.db"`

	FirestoreProject     string `env:"RECIPES_FIRESTORE_PROJECT"`
	FirestoreCollection  string `env:"RECIPES_FIRESTORE_COLLECTION" envDefault:"cache"`
	FirestoreCredentials string `env:"RECIPES_FIRESTORE_CREDENTIALS"`

	S3Bucket string `env:"RECIPES_S3_BUCKET"`
	S3Prefix string `env:"RECIPES_S3_PREFIX" envDefault:"recipes-cache/"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = append([]string(nil), DefaultSources...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected store has what it needs.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store) {
	case StoreMemory:
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("RECIPES_SQLITE_PATH is required for the sqlite store")
		}
	case StoreFirestore:
		if c.FirestoreProject == "" {
			return fmt.Errorf("RECIPES_FIRESTORE_PROJECT is required for the firestore store")
		}
	case StoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("RECIPES_S3_BUCKET is required for the s3 store")
		}
	default:
		return fmt.Errorf("invalid store %q: must be one of memory, sqlite, firestore, s3", c.Store)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("RECIPES_BASE_URL is required")
	}
	return nil
}
