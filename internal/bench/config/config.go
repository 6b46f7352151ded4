package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"shortlink/internal/bench/attack"
)

var ErrInvalid = errors.New("invalid bench config")

// Config drives cmd/bench. Seeding runs before redirect and mixed attacks.
type Config struct {
	BaseURL            string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	InsecureSkipVerify bool   `env:"INSECURE_SKIP_VERIFY" envDefault:"false"`

	Seed   SeedConfig
	Attack AttackConfig
}

type SeedConfig struct {
	Count     int           `env:"SEED_COUNT" envDefault:"100000"`
	BatchSize int           `env:"SEED_BATCH_SIZE" envDefault:"100"`
	Rate      float64       `env:"SEED_RATE" envDefault:"200"`
	Timeout   time.Duration `env:"SEED_TIMEOUT" envDefault:"30s"`
}

type AttackConfig struct {
	Type        string        `env:"BENCH_TYPE" envDefault:"mixed"`
	Rate        int           `env:"RATE" envDefault:"1000"`
	Duration    time.Duration `env:"DURATION" envDefault:"30s"`
	CreateRatio float64       `env:"CREATE_RATIO" envDefault:"0.1"`
	Connections int           `env:"CONNECTIONS" envDefault:"10000"`
	MaxWorkers  uint64        `env:"MAX_WORKERS" envDefault:"0"`
}

// Load reads envFiles when present and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Attack.Type {
	case attack.TypeCreate, attack.TypeRedirect, attack.TypeMixed:
	default:
		return fmt.Errorf("%w: BENCH_TYPE %q", ErrInvalid, c.Attack.Type)
	}
	if c.Attack.Rate <= 0 {
		return fmt.Errorf("%w: RATE must be positive", ErrInvalid)
	}
	if c.Attack.CreateRatio < 0 || c.Attack.CreateRatio > 1 {
		return fmt.Errorf("%w: CREATE_RATIO must be within [0, 1]", ErrInvalid)
	}
	if c.Attack.Type != attack.TypeCreate && c.Seed.Count <= 0 {
		return fmt.Errorf("%w: SEED_COUNT must be positive for %s", ErrInvalid, c.Attack.Type)
	}
	return nil
}

// NeedsSeed reports whether the attack replays existing codes.
func (c *Config) NeedsSeed() bool {
	return c.Attack.Type != attack.TypeCreate
}
