// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type DB struct {
	// Driver is memory, postgres or sqlite.
	Driver          string        `env:"DB_DRIVER" envDefault:"memory"`
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
}

type AMQP struct {
	// URL empty keeps lifecycle events in process.
	URL   string `env:"AMQP_URL"`
	Queue string `env:"AMQP_QUEUE" envDefault:"campaign_events"`
}

type Config struct {
	HTTP     HTTP
	DB       DB
	AMQP     AMQP
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SeedOnStart                bool `env:"SEED_ON_START" envDefault:"true"`
	PatchEmptyTemplateNotFound bool `env:"PATCH_EMPTY_TEMPLATE_NOT_FOUND" envDefault:"true"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "memory":
	case "postgres", "sqlite":
		if c.DB.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for DB_DRIVER=%s", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.HTTP.RequestTimeout <= 0 {
		return errors.New("HTTP_REQUEST_TIMEOUT must be positive")
	}
	return nil
}
