package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// Cache backends for the response cache.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Theme store backends.
const (
	ThemeStoreBolt  = "bolt"
	ThemeStoreRedis = "redis"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"COUNTRIES_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"COUNTRIES_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// API configures the remote REST Countries service.
type API struct {
	BaseURL string `env:"COUNTRIES_API_BASE_URL" envDefault:"https://restcountries.com/v3.1/"`
	// Timeout bounds a whole remote request; 0 keeps the transport default.
	Timeout time.Duration `env:"COUNTRIES_HTTP_TIMEOUT" envDefault:"0s"`
}

// Log selects the log level and handler.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Cache configures the optional response cache.
type Cache struct {
	Backend string        `env:"CACHE_BACKEND" envDefault:"none"`
	TTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	Size    int           `env:"CACHE_SIZE" envDefault:"256"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Theme configures where the theme preference is persisted.
type Theme struct {
	Store  string `env:"THEME_STORE" envDefault:"bolt"`
	DBPath string `env:"THEME_DB_PATH" envDefault:"countries.db"`
}

// Session bounds the per-browser view registry.
type Session struct {
	TTL   time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	Limit int           `env:"SESSION_LIMIT" envDefault:"1024"`
}

// Config is the full process configuration.
type Config struct {
	Server  Server
	API     API
	Log     Log
	Cache   Cache
	Redis   RedisConfig
	Theme   Theme
	Session Session
}

// FromEnv loads an optional .env file, then builds and validates a Config from
// environment variables. Variables already set win over the file.
func FromEnv(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	cfg.Theme.Store = strings.ToLower(strings.TrimSpace(cfg.Theme.Store))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Server.Addr == "" {
		result = multierror.Append(result, errors.New("COUNTRIES_ADDR must not be empty"))
	}
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("COUNTRIES_API_BASE_URL %q must be an absolute URL", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		result = multierror.Append(result, errors.New("COUNTRIES_HTTP_TIMEOUT must not be negative"))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		result = multierror.Append(result, fmt.Errorf("LOG_FORMAT %q must be json or text", c.Log.Format))
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Redis.URL == "" {
			result = multierror.Append(result, errors.New("REDIS_URL is required when CACHE_BACKEND=redis"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("CACHE_BACKEND %q must be none, memory or redis", c.Cache.Backend))
	}
	if c.Cache.Backend == CacheMemory && c.Cache.Size <= 0 {
		result = multierror.Append(result, errors.New("CACHE_SIZE must be positive"))
	}
	switch c.Theme.Store {
	case ThemeStoreBolt:
		if c.Theme.DBPath == "" {
			result = multierror.Append(result, errors.New("THEME_DB_PATH is required when THEME_STORE=bolt"))
		}
	case ThemeStoreRedis:
		if c.Redis.URL == "" {
			result = multierror.Append(result, errors.New("REDIS_URL is required when THEME_STORE=redis"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("THEME_STORE %q must be bolt or redis", c.Theme.Store))
	}
	if c.Session.Limit <= 0 {
		result = multierror.Append(result, errors.New("SESSION_LIMIT must be positive"))
	}
	if c.Session.TTL <= 0 {
		result = multierror.Append(result, errors.New("SESSION_TTL must be positive"))
	}

	return result.ErrorOrNil()
}
