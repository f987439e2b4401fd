package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string
	RedisURL    string
	OpenAIKey   string
	MetricsPort string
	CacheTTL    time.Duration
}

func Load() *Config {
	// Load .env from the project root, then the current directory.
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:5000"),
		RedisURL:    os.Getenv("REDIS_URL"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		CacheTTL:    getMinutes("CACHE_TTL_MINUTES", 60),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getMinutes(k string, d int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return time.Duration(d) * time.Minute
}
