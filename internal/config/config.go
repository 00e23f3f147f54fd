package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	AppEnv string
	Port   int

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string

	RedisAddr     string
	RedisPassword string

	// CacheBackend selects "memory" (go-cache) or "redis".
	CacheBackend string

	// PassSigningSecret signs boarding-pass render URLs.
	PassSigningSecret string

	// BotAPIKey authorizes the Discord bot's server-to-server calls.
	BotAPIKey string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnvInt("PORT", 8080),
		PGHost:            getEnv("PG_HOST", "localhost"),
		PGPort:            getEnv("PG_PORT", "5432"),
		PGUser:            getEnv("PG_USER", "concourse"),
		PGPassword:        os.Getenv("PG_PASSWORD"),
		PGDatabase:        getEnv("PG_DB", "concourse"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		CacheBackend:      getEnv("CACHE_BACKEND", "memory"),
		PassSigningSecret: os.Getenv("PASS_SIGNING_SECRET"),
		BotAPIKey:         os.Getenv("BOT_API_KEY"),
	}

	if cfg.AppEnv == "production" && cfg.PassSigningSecret == "" {
		return nil, fmt.Errorf("PASS_SIGNING_SECRET is required in production")
	}

	return cfg, nil
}

// PostgresDSN renders the connection string used by both sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
