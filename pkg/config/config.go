// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendRedis   = "redis"
	BackendLevelDB = "leveldb"
)

// Defaults.
const (
	DefaultPort            = 8080
	DefaultAdminPort       = 9090
	DefaultTable           = "redirects"
	DefaultCacheTTLSeconds = 300
	DefaultRedisAddr       = "localhost:6379"
	DefaultLevelDBPath     = "./data/redirects"
)

// Config is the full service configuration.
type Config struct {
	Server struct {
		// Port serves redirect traffic.
		Port int `yaml:"port"`

		// AdminPort serves /metrics, /healthz and /readyz.
		AdminPort int `yaml:"adminPort"`
	} `yaml:"server"`

	Store struct {
		// Backend selects the durable store: "redis" or "leveldb".
		Backend string `yaml:"backend"`

		// Table is the logical table name records live under.
		Table string `yaml:"table"`

		Redis struct {
			Addr     string `yaml:"addr"`
			DB       int    `yaml:"db"`
			Password string `yaml:"password"`
		} `yaml:"redis"`

		LevelDB struct {
			Path string `yaml:"path"`
		} `yaml:"leveldb"`
	} `yaml:"store"`

	Cache struct {
		// TTLSeconds is how long lookup outcomes are trusted.
		TTLSeconds int `yaml:"ttlSeconds"`
	} `yaml:"cache"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// TTL returns the cache TTL as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Load reads configuration from the YAML file at path (skipped when path
// is empty), fills in defaults, and applies environment overrides.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.AdminPort == 0 {
		cfg.Server.AdminPort = DefaultAdminPort
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendRedis
	}
	if cfg.Store.Table == "" {
		cfg.Store.Table = DefaultTable
	}
	if cfg.Store.Redis.Addr == "" {
		cfg.Store.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Store.LevelDB.Path == "" {
		cfg.Store.LevelDB.Path = DefaultLevelDBPath
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = DefaultCacheTTLSeconds
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Store.Backend, "STORE_BACKEND")
	setString(&cfg.Store.Table, "REDIRECT_TABLE_NAME")
	setString(&cfg.Store.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Store.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Store.LevelDB.Path, "LEVELDB_PATH")
	setString(&cfg.Log.Level, "LOG_LEVEL")

	setInt(&cfg.Server.Port, "PORT")
	setInt(&cfg.Server.AdminPort, "ADMIN_PORT")
	setInt(&cfg.Store.Redis.DB, "REDIS_DB")
	setInt(&cfg.Cache.TTLSeconds, "CACHE_TTL_SECONDS")

	if v := os.Getenv("LOG_PRETTY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Pretty = b
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case BackendRedis, BackendLevelDB:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q",
			BackendRedis, BackendLevelDB, cfg.Store.Backend)
	}
	if cfg.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttlSeconds must not be negative, got %d", cfg.Cache.TTLSeconds)
	}
	return nil
}
