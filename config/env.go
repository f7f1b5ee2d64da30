package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env from the working directory into the process
// environment. Variables already set are left alone.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, continuing")
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
