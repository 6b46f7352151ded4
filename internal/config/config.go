package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	GeneratorRandom = "random"
	GeneratorSqids  = "sqids"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Server     ServerConfig
	TLS        TLSConfig
	Store      StoreConfig
	Redis      RedisConfig
	Database   DatabaseConfig
	App        AppConfig
	Cache      CacheConfig
	Validation ValidationConfig
	Metrics    MetricsConfig
	Admin      AdminConfig
	Pprof      PprofConfig
	Password   PasswordConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"localhost"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	MaxConnections  int           `env:"SERVER_MAX_CONNECTIONS" envDefault:"0"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type TLSConfig struct {
	Enabled  bool   `env:"TLS_ENABLED" envDefault:"false"`
	Port     int    `env:"TLS_PORT" envDefault:"8443"`
	CertFile string `env:"TLS_CERT_FILE"`
	KeyFile  string `env:"TLS_KEY_FILE"`
}

type StoreConfig struct {
	Backend string `env:"STORE_BACKEND" envDefault:"memory"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"0"`
}

type DatabaseConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"POSTGRES_DB" envDefault:"shortlink"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxConns int    `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

// DSN renders the connection settings as a postgres:// URL.
func (c DatabaseConfig) DSN() string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	if c.MaxConns > 0 {
		q.Set("pool_max_conns", strconv.Itoa(c.MaxConns))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

type AppConfig struct {
	BaseURL          string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DefaultTTL       time.Duration `env:"DEFAULT_TTL" envDefault:"168h"`
	ExpiryGrace      time.Duration `env:"EXPIRY_GRACE" envDefault:"24h"`
	CodeLength       int           `env:"CODE_LENGTH" envDefault:"6"`
	CodeGenerator    string        `env:"CODE_GENERATOR" envDefault:"random"`
	MaxAttempts      int           `env:"CODE_MAX_ATTEMPTS" envDefault:"8"`
	StoreTimeout     time.Duration `env:"STORE_TIMEOUT" envDefault:"2s"`
	PurgeInterval    time.Duration `env:"PURGE_INTERVAL" envDefault:"10m"`
	BatchConcurrency int           `env:"BATCH_CONCURRENCY" envDefault:"8"`
}

type CacheConfig struct {
	Enabled     bool          `env:"CACHE_ENABLED" envDefault:"true"`
	MaxSizePow2 int           `env:"CACHE_MAX_SIZE_POW2" envDefault:"24"`
	TTL         time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

type ValidationConfig struct {
	MaxURLLength       int    `env:"MAX_URL_LENGTH" envDefault:"2048"`
	MaxBatchSize       int    `env:"MAX_BATCH_SIZE" envDefault:"100"`
	AllowPrivateIPs    bool   `env:"ALLOW_PRIVATE_IPS" envDefault:"false"`
	MaxRequestBodySize string `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1M"`
}

type MetricsConfig struct {
	Enabled         bool          `env:"METRICS_ENABLED" envDefault:"false"`
	BufferSize      int           `env:"METRICS_BUFFER_SIZE" envDefault:"10000"`
	FlushInterval   int           `env:"METRICS_FLUSH_INTERVAL_MS" envDefault:"1000"`
	FlushThreshold  int           `env:"METRICS_FLUSH_THRESHOLD" envDefault:"1000"`
	CollectInterval time.Duration `env:"METRICS_COLLECT_INTERVAL" envDefault:"10s"`
}

type AdminConfig struct {
	Secret string `env:"ADMIN_SECRET"`
}

type PprofConfig struct {
	Enabled bool   `env:"PPROF_ENABLED" envDefault:"false"`
	Secret  string `env:"PPROF_SECRET"`
}

type PasswordConfig struct {
	Time      uint32 `env:"ARGON2_TIME" envDefault:"1"`
	MemoryKiB uint32 `env:"ARGON2_MEMORY_KIB" envDefault:"65536"`
	Threads   uint8  `env:"ARGON2_THREADS" envDefault:"4"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// NewLogger builds the process logger. Unknown formats fall back to JSON.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return nil, fmt.Errorf("%w: LOG_LEVEL: %w", ErrInvalid, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

// Load reads .env files (when present) and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
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
	switch c.Store.Backend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("%w: STORE_BACKEND %q", ErrInvalid, c.Store.Backend)
	}

	switch c.App.CodeGenerator {
	case GeneratorRandom, GeneratorSqids:
	default:
		return fmt.Errorf("%w: CODE_GENERATOR %q", ErrInvalid, c.App.CodeGenerator)
	}

	if c.App.CodeLength < 4 || c.App.CodeLength > 32 {
		return fmt.Errorf("%w: CODE_LENGTH must be between 4 and 32", ErrInvalid)
	}

	base, err := url.Parse(c.App.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("%w: BASE_URL must be an absolute url", ErrInvalid)
	}

	if c.TLS.Enabled && (c.TLS.CertFile == "" || c.TLS.KeyFile == "") {
		return fmt.Errorf("%w: TLS_CERT_FILE and TLS_KEY_FILE are required with TLS_ENABLED", ErrInvalid)
	}

	if c.Metrics.Enabled && (c.Metrics.FlushInterval <= 0 || c.Metrics.CollectInterval <= 0) {
		return fmt.Errorf("%w: metrics intervals must be positive", ErrInvalid)
	}
	return nil
}
