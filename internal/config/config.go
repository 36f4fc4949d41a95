package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr string

	MongoURI string
	MongoDB  string

	// Caching is disabled when RedisAddr is empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTLSec   int

	// Scheduled backups are disabled when BackupCron is empty.
	BackupCron     string
	BackupDir      string
	BackupPassword string

	SessionSecret string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr: getenv("ADDR", ":37371"),

		MongoURI: getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGODB_DB", "easyblog"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvi("REDIS_DB", 0),
		CacheTTLSec:   getenvi("CACHE_TTL_SECONDS", 300),

		BackupCron:     getenv("BACKUP_CRON", ""),
		BackupDir:      getenv("BACKUP_DIR", "backups"),
		BackupPassword: getenv("BACKUP_PASSWORD", ""),

		SessionSecret: getenv("SESSION_SECRET", "secret-key-should-be-changed"),
	}
}
