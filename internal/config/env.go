package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first if present; real environment
// variables take precedence over it.
//
// Recognized variables:
//
//	NOTEAPP_DB_PATH - SQLite database path
//	NOTEAPP_VERBOSE - "true" enables debug logging
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("NOTEAPP_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("NOTEAPP_VERBOSE"); v != "" {
		cfg.Verbose = v == "true"
	}
}
