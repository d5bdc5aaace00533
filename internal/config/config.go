// Package config loads adrctl settings.
//
// Sources, highest priority first:
//  1. explicit --config path;
//  2. ADRCTL_CONFIG;
//  3. ./adrctl.yaml;
//  4. environment only.
//
// A .env file in the working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const localConfig = "adrctl.yaml"

// Storage backends.
const (
	BackendCookie = "cookie"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`

	CacheDir string `yaml:"cache_dir" env:"ADRCTL_CACHE_DIR"`

	// Derived from CacheDir.
	DBPath     string `yaml:"-"`
	CookiePath string `yaml:"-"`
	LogPath    string `yaml:"-"`
}

// APIConfig points at the remote REST API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"ADRCTL_API_URL" env-default:"http://localhost:8000/api/v1"`
	Timeout time.Duration `yaml:"timeout"  env:"ADRCTL_API_TIMEOUT" env-default:"10s"`
}

// StorageConfig selects where tokens are persisted.
type StorageConfig struct {
	Backend       string `yaml:"backend"        env:"ADRCTL_STORAGE"        env-default:"cookie"`
	RedisAddr     string `yaml:"redis_addr"     env:"ADRCTL_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"ADRCTL_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"       env:"ADRCTL_REDIS_DB"`
	RedisPrefix   string `yaml:"redis_prefix"   env:"ADRCTL_REDIS_PREFIX"   env-default:"adrctl:"`
}

// SessionConfig tunes the token lifecycle.
type SessionConfig struct {
	RefreshSkew time.Duration `yaml:"refresh_skew" env:"ADRCTL_REFRESH_SKEW" env-default:"30s"`
	Keepalive   time.Duration `yaml:"keepalive"    env:"ADRCTL_KEEPALIVE"    env-default:"1m"`
}

// LogConfig selects the log encoder; "prod" is JSON, anything else console.
type LogConfig struct {
	Env string `yaml:"env" env:"ADRCTL_LOG_ENV" env-default:"dev"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	cfg := Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000/api/v1",
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Backend:     BackendCookie,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "adrctl:",
		},
		Session: SessionConfig{RefreshSkew: 30 * time.Second, Keepalive: time.Minute},
		Log:     LogConfig{Env: "dev"},
	}
	cfg.derivePaths()
	return cfg
}

// Load reads the configuration from the first available source.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config

	read := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return cfg.finish()
	}

	if path != "" {
		return read(path)
	}
	if envPath := os.Getenv("ADRCTL_CONFIG"); envPath != "" {
		return read(envPath)
	}
	if _, err := os.Stat(localConfig); err == nil {
		return read(localConfig)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return cfg.finish()
}

func (c *Config) finish() (*Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.derivePaths()
	return c, nil
}

// Validate checks values cleanenv cannot.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendCookie, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.API.BaseURL == "" {
		return errors.New("api base url is empty")
	}
	if c.API.Timeout <= 0 {
		return errors.New("api timeout must be positive")
	}
	if c.Session.Keepalive <= 0 {
		return errors.New("session keepalive must be positive")
	}
	return nil
}

func (c *Config) derivePaths() {
	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(userConfigDir(), "adrctl")
	}
	c.DBPath = filepath.Join(c.CacheDir, "cache.db")
	c.CookiePath = filepath.Join(c.CacheDir, "cookies.json")
	c.LogPath = filepath.Join(c.CacheDir, "debug.log")
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
