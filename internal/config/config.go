package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	RedisURL        string
	Namespace       string
	SessionSecret   string
	SessionTTL      time.Duration
	SevereMarker    string
	SevereThreshold int
	// ArchiveDatabaseURL - empty by default, eviction archive disabled if not configured
	ArchiveDatabaseURL string
}

func Load() Config {
	return Config{
		RedisURL:        getenv("REDIS_URL", "redis://localhost:6379/0"),
		Namespace:       getenv("FAMBOARD_NAMESPACE", "famboard"),
		SessionSecret:   getenv("FAMBOARD_SESSION_SECRET", "famboard-dev-secret"),
		SessionTTL:      time.Duration(getenvInt("FAMBOARD_SESSION_TTL_SECONDS", 86400)) * time.Second,
		SevereMarker:    getenv("FAMBOARD_SEVERE_MARKER", "lie"),
		SevereThreshold: getenvInt("FAMBOARD_SEVERE_THRESHOLD", -50),

		ArchiveDatabaseURL: getenv("ARCHIVE_DATABASE_URL", ""),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
