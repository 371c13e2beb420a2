package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Sweets API (the remote backend this frontend renders)
	SweetsAPIURL      string
	APITimeoutSeconds int
	// Session
	SessionCookie     string
	SessionTTLSeconds int
	CookieSecure      bool
	// Redis Configuration (optional - session store backend)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	UseRedis      bool // Whether to keep sessions in Redis or in process memory
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional, continue with environment variables
	}

	return &Config{
		Port:        getEnv("PORT", "8000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		// Sweets API
		SweetsAPIURL:      strings.TrimRight(getEnv("SWEETS_API_URL", "http://localhost:5000/api"), "/"),
		APITimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 10),
		// Session
		SessionCookie:     getEnv("SESSION_COOKIE", "sweetshop_session"),
		SessionTTLSeconds: getEnvAsInt("SESSION_TTL_SECONDS", 86400), // 24 hours default
		CookieSecure:      getEnvAsBool("COOKIE_SECURE", false),
		// Redis Configuration (optional)
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		UseRedis:      getEnvAsBool("USE_REDIS", false), // Redis is optional, default false
	}
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}
