package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"motofibra/catalog/internal/constants"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	Database Database
	Cache    Cache
	Limits   Limits

	DetailsMergeMode   string        `env:"DETAILS_MERGE_MODE" envDefault:"skip-falsy"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:*"`
	StatsInterval      time.Duration `env:"STATS_INTERVAL" envDefault:"1m"`
}

type Database struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DB_DSN" envDefault:"catalog.db"`
}

type Cache struct {
	TTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
}

type Limits struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	Burst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load reads the process environment, loading .env files first when
// APP_ENV=local.
func Load(path ...string) (*Config, error) {
	const op = "config.Load"

	if os.Getenv("APP_ENV") == "local" {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.DetailsMergeMode {
	case constants.MergeModeSkipFalsy, constants.MergeModeExplicit:
	default:
		return fmt.Errorf("unsupported DETAILS_MERGE_MODE %q", c.DetailsMergeMode)
	}
	if c.Limits.RPS <= 0 || c.Limits.Burst <= 0 {
		return errors.New("rate limits must be positive")
	}
	if c.StatsInterval <= 0 {
		return errors.New("STATS_INTERVAL must be positive")
	}
	return nil
}
