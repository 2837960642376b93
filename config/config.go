// Package config loads the quiz settings from the environment
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jbarratt/rpsquiz/game"
	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendDynamo = "dynamo"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Region     string
	TableName  string
	Backend    string
	SessionTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	DevAddr string

	// Seed makes the quiz draws repeatable when HasSeed is set
	Seed    int64
	HasSeed bool
}

// Load reads a .env file if there is one and then the environment.
// defaultBackend is used when STORE_BACKEND is not set.
func Load(defaultBackend string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Region:        os.Getenv("AWS_REGION"),
		TableName:     os.Getenv("TABLE_NAME"),
		Backend:       strings.ToLower(os.Getenv("STORE_BACKEND")),
		SessionTTL:    time.Hour,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
		DevAddr:       os.Getenv("DEV_ADDR"),
	}
	if cfg.Backend == "" {
		cfg.Backend = defaultBackend
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DevAddr == "" {
		cfg.DevAddr = ":8080"
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL %q", v)
		}
		cfg.SessionTTL = d
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid REDIS_DB %q", v)
		}
		cfg.RedisDB = n
	}

	if v := os.Getenv("RANDOM_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED %q", v)
		}
		cfg.Seed = n
		cfg.HasSeed = true
	}

	switch cfg.Backend {
	case BackendDynamo:
		if cfg.TableName == "" {
			return nil, fmt.Errorf("TABLE_NAME is not set")
		}
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is not set")
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}

	return cfg, nil
}

// Source is the random source for quiz draws, seeded when RANDOM_SEED is set
func (c *Config) Source() game.Source {
	if c.HasSeed {
		return game.Locked(game.NewSeededSource(c.Seed))
	}
	return &game.CryptoSource{}
}
