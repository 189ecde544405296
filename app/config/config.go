package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

type Config struct {
	Env            string
	HTTPPort       string
	DataDir        string
	StorageBackend string
	SessionTTL     time.Duration
	RememberTTL    time.Duration
}

// Load reads the configuration from the environment, after loading an
// optional .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:            getEnv("APP_ENV", "dev"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DataDir:        getEnv("DATA_DIR", "data"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		SessionTTL:     time.Duration(getEnvInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		RememberTTL:    time.Duration(getEnvInt("REMEMBER_TTL_HOURS", 24*30)) * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
