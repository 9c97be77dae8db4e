package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DBDSN      string
	ServerPort string
	LogLevel   string

	// кеш результатов пересчёта; пустой RedisAddr = кеш выключен
	RedisAddr string
	CacheTTL  time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:      os.Getenv("DB_DSN"),
		ServerPort: os.Getenv("SERVER_PORT"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		CacheTTL:   5 * time.Minute,
	}

	if cfg.DBDSN == "" {
		log.Fatal().Msg("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatal().Err(err).Str("value", raw).Msg("invalid CACHE_TTL")
		}
		cfg.CacheTTL = ttl
	}

	return cfg
}
