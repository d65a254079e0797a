// Package config loads run settings from defaults, an optional .env file and
// HERB_* environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/herb-scraper/internal/gathermate"
	"github.com/pfrederiksen/herb-scraper/internal/scraper"
)

type Config struct {
	BaseURL   string
	DataDir   string
	LogDir    string
	Timeout   time.Duration
	TableName string
	LogLevel  string

	KeepUnresolved bool
}

// Load reads .env from the working directory if present, then the
// environment. Unset or unparsable values fall back to defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		BaseURL:        getEnv("HERB_BASE_URL", scraper.BaseURL),
		DataDir:        getEnv("HERB_DATA_DIR", "data"),
		LogDir:         getEnv("HERB_LOG_DIR", "logs"),
		Timeout:        time.Duration(getEnvInt("HERB_TIMEOUT_SEC", int(scraper.Timeout/time.Second))) * time.Second,
		TableName:      getEnv("HERB_LUA_TABLE", gathermate.DefaultTableName),
		LogLevel:       strings.ToUpper(getEnv("HERB_LOG_LEVEL", "INFO")),
		KeepUnresolved: getEnvBool("HERB_KEEP_UNRESOLVED", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(getEnv(key, ""))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
