package config

import (
	"log"
	"os"
)

// Config holds the process configuration, loaded from the environment
type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
}

// Load reads configuration from environment variables with local
// development defaults.
func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=microgreens port=5432 sslmode=disable"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=microgreens port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN not set, using local development default")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
