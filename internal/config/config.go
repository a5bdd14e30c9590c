package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Keyword      string
	OutputFormat string
	WorkerCount  int
	MaxFileSize  int
	DatabaseURL  string
	Domain       string
}

// Load reads .env (when present) and the environment. Flags given on the
// command line take precedence over these values.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		Keyword:      getEnv("GETTEXT_KEYWORD", "gettext"),
		OutputFormat: getEnv("OUTPUT_FORMAT", "pot"),
		WorkerCount:  getEnvInt("WORKER_COUNT", 8),
		MaxFileSize:  getEnvInt("MAX_FILE_SIZE", 10*1024*1024),
		DatabaseURL:  getEnv("DATABASE_URL", "postgres://localhost:5432/gettext_catalog?sslmode=disable"),
		Domain:       getEnv("GETTEXT_DOMAIN", "messages"),
	}
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
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer, using default")
		return fallback
	}
	return n
}
