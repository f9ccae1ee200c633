// Package config loads server and CLI settings from the environment.
//
// Variables are read with the RECEIPTS_ prefix (RECEIPTS_DB_PATH, ...).
// GEMINI_API_KEY, GEMINI_MODEL, LOG_LEVEL and LOG_FORMAT are also read
// without the prefix; the prefixed form wins when both are set. A .env file
// in the working directory is loaded first if present.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Prefix is prepended to every variable name.
const Prefix = "RECEIPTS_"

// Config holds the application configuration.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `koanf:"DB_PATH"`

	// Addr is the HTTP listen address.
	Addr string `koanf:"ADDR"`

	// StaticPath is served at / when the directory exists.
	StaticPath string `koanf:"STATIC_PATH"`

	// ProfilePath is the YAML file holding the store profile.
	ProfilePath string `koanf:"PROFILE_PATH"`

	// ExtractCachePath is the bbolt file caching extraction results.
	// Empty disables the cache.
	ExtractCachePath string `koanf:"EXTRACT_CACHE_PATH"`

	// GeminiAPIKey enables receipt extraction when set.
	GeminiAPIKey    string        `koanf:"GEMINI_API_KEY"`
	GeminiModel     string        `koanf:"GEMINI_MODEL"`
	ExtractTimeout  time.Duration `koanf:"EXTRACT_TIMEOUT"`
	ExtractAttempts uint          `koanf:"EXTRACT_ATTEMPTS"`

	// AdminPasswordHash is a bcrypt hash. Empty leaves admin calls open.
	AdminPasswordHash string        `koanf:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `koanf:"JWT_SECRET"`
	TokenTTL          time.Duration `koanf:"TOKEN_TTL"`

	LowStockThreshold int    `koanf:"LOW_STOCK_THRESHOLD"`
	Currency          string `koanf:"CURRENCY"`

	LogLevel  string `koanf:"LOG_LEVEL"`
	LogFormat string `koanf:"LOG_FORMAT"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DBPath:            "./data/expenses.db",
		Addr:              ":8080",
		StaticPath:        "./static",
		ProfilePath:       "./data/profile.yaml",
		ExtractCachePath:  "./data/extract.cache",
		GeminiModel:       "gemini-1.5-flash",
		ExtractTimeout:    60 * time.Second,
		ExtractAttempts:   3,
		TokenTTL:          12 * time.Hour,
		LowStockThreshold: 5,
		Currency:          "Rs.",
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// unprefixed are variables also honoured without Prefix.
var unprefixed = []string{"GEMINI_", "LOG_"}

// Load reads the configuration. An explicit env file must exist; without
// one, ./.env is loaded if present.
func Load(envFile ...string) (Config, error) {
	if len(envFile) > 0 && envFile[0] != "" {
		if err := godotenv.Load(envFile[0]); err != nil {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	k := koanf.New(".")
	for _, prefix := range unprefixed {
		if err := k.Load(env.ProviderWithValue(prefix, ".", skipEmpty("")), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load environment: %w", err)
		}
	}
	if err := k.Load(env.ProviderWithValue(Prefix, ".", skipEmpty(Prefix)), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// skipEmpty drops variables with empty values so defaults stay in effect,
// and strips trim from the key.
func skipEmpty(trim string) func(key, value string) (string, interface{}) {
	return func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.TrimPrefix(key, trim), value
	}
}

// Validate checks settings that would otherwise fail later.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}
	if c.AdminPasswordHash != "" && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required when ADMIN_PASSWORD_HASH is set"))
	}
	if c.LowStockThreshold < 0 {
		errs = append(errs, errors.New("LOW_STOCK_THRESHOLD must not be negative"))
	}
	if c.ExtractAttempts == 0 {
		errs = append(errs, errors.New("EXTRACT_ATTEMPTS must be at least 1"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// ExtractionEnabled reports whether a Gemini key is configured.
func (c Config) ExtractionEnabled() bool {
	return c.GeminiAPIKey != ""
}
