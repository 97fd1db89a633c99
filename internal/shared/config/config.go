package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	BotToken         string
	WebAppURL        string
	WebAppDir        string
	CORSAllowOrigin  []string
	MetadataStore    string
	DatabaseURL      string
	RedisURL         string
	RedisKeyPrefix   string
	APITimeout       time.Duration
	DownloadTimeout  time.Duration
	RelayTimeout     time.Duration
	ResolveCacheTTL  time.Duration
	ResolveCacheSize int
	BotWorkers       int
	ShutdownTimeout  time.Duration
	SendRatePerMin   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	token := strings.TrimSpace(os.Getenv("BOT_TOKEN"))
	webAppURL := strings.TrimSpace(os.Getenv("WEBAPP_URL"))

	if token == "" {
		log.Printf("BOT_TOKEN is not set")
	}
	if webAppURL == "" {
		log.Printf("WEBAPP_URL is not set; menu button will be skipped")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		BotToken:         token,
		WebAppURL:        webAppURL,
		WebAppDir:        getEnv("WEBAPP_DIR", "../webapp"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		MetadataStore:    normalizeStoreType(getEnv("METADATA_STORE", "memory")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		RedisKeyPrefix:   getEnv("REDIS_KEY_PREFIX", "files"),
		APITimeout:       getEnvDuration("TELEGRAM_API_TIMEOUT", 75*time.Second),
		DownloadTimeout:  getEnvDuration("DOWNLOAD_TIMEOUT", 60*time.Second),
		RelayTimeout:     getEnvDuration("RELAY_TIMEOUT", 30*time.Second),
		ResolveCacheTTL:  getEnvDuration("RESOLVE_CACHE_TTL", 30*time.Minute),
		ResolveCacheSize: getEnvInt("RESOLVE_CACHE_SIZE", 1024),
		BotWorkers:       getEnvInt("BOT_WORKERS", 8),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		SendRatePerMin:   getEnvInt("RATE_LIMIT_SEND_PER_MIN", 30),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int %q, using default %d", key, raw, def)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid duration %q, using default %s", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "redis":
		return "redis"
	case "", "memory":
		return "memory"
	default:
		// Unknown stores pass through so bootstrap rejects them.
		return strings.ToLower(strings.TrimSpace(raw))
	}
}
