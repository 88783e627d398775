package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything read from the environment.
type Config struct {
	Port          string
	Backend       string // "json" or "sqlite"
	DataFile      string
	SQLitePath    string
	SessionSecret string
	WebOrigin     string
}

// Load reads the .env file from the current directory and falls back to
// the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, using environment variables from system")
	}

	return Config{
		Port:          getenv("PORT", "8080"),
		Backend:       getenv("DATA_BACKEND", "json"),
		DataFile:      getenv("DATA_FILE", "data.json"),
		SQLitePath:    getenv("SQLITE_PATH", "ledger.db"),
		SessionSecret: getenv("SESSION_SECRET", "secret"),
		WebOrigin:     getenv("WEB_ORIGIN", "http://localhost:5173"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
