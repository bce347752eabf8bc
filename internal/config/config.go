// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	AI      AIConfig
	Prefs   PrefsConfig
	Redis   RedisConfig
	Logging LoggingConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// BackendConfig holds settings for the flight data backend.
type BackendConfig struct {
	BaseURL string `env:"BACKEND_BASE_URL" envDefault:"http://localhost:9090"`

	// Timeout bounds a single backend call
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"5s"`

	// SearchTimeout bounds a whole multi-leg search
	SearchTimeout time.Duration `env:"BACKEND_SEARCH_TIMEOUT" envDefault:"15s"`
}

// AIConfig holds settings for the natural-language query parser.
type AIConfig struct {
	APIKey  string        `env:"AI_API_KEY"`
	BaseURL string        `env:"AI_BASE_URL"`
	Model   string        `env:"AI_MODEL" envDefault:"gpt-4o-mini"`
	Timeout time.Duration `env:"AI_TIMEOUT" envDefault:"20s"`

	// RatePerSecond caps outbound parse calls
	RatePerSecond float64 `env:"AI_RATE_PER_SECOND" envDefault:"5"`
}

// PrefsConfig holds settings for the preference tracking sink.
type PrefsConfig struct {
	URL        string        `env:"PREFS_URL" envDefault:""`
	BufferSize int           `env:"PREFS_BUFFER_SIZE" envDefault:"256"`
	Timeout    time.Duration `env:"PREFS_TIMEOUT" envDefault:"3s"`
}

// RedisConfig holds cache settings. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:""`
	Password string        `env:"REDIS_PASSWORD" envDefault:""`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"5m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if cfg.Backend.SearchTimeout <= 0 {
		return fmt.Errorf("BACKEND_SEARCH_TIMEOUT must be positive")
	}

	// Validate per-call timeout is less than the whole-search timeout
	if cfg.Backend.Timeout >= cfg.Backend.SearchTimeout {
		return fmt.Errorf("BACKEND_TIMEOUT (%s) should be less than BACKEND_SEARCH_TIMEOUT (%s)",
			cfg.Backend.Timeout, cfg.Backend.SearchTimeout)
	}

	if cfg.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}

	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	if cfg.AI.RatePerSecond <= 0 {
		return fmt.Errorf("AI_RATE_PER_SECOND must be positive")
	}

	if cfg.Prefs.BufferSize < 1 {
		return fmt.Errorf("PREFS_BUFFER_SIZE must be at least 1")
	}

	if cfg.Redis.TTL <= 0 {
		return fmt.Errorf("REDIS_TTL must be positive")
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
