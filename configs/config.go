package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// ConfigInt reads an integer setting, falling back to def when the variable
// is missing or malformed. Policy knobs (vote thresholds, review windows,
// bonus amounts) go through this so deployments can tune them without a rebuild.
func ConfigInt(key string, def int) int {
	raw := Config(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using default %d", raw, key, def)
		return def
	}
	return n
}
