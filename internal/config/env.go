package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// loadEnvFile loads environment variables from .env/.env.local files. It
// attempts each supported filename in order and stops at the first
// successfully parsed file. Existing process environment variables are not
// overwritten.
func loadEnvFile() {
	for _, path := range []string{".env", ".env.local"} {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("loaded environment variables", slog.String("path", path))
			return
		}
	}
}
