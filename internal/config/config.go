// Package config provides configuration for the support assistant.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort    int
	AppEnv      string
	CORSOrigins []string

	// Logging
	LogLevel string
	LogFile  string

	// Sessions
	SessionBackend       string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	DatabaseURL          string
	RedisURL             string

	// Retrieval
	RetrieverMode    string
	RetrieverCommand string
	RetrieverArgs    []string
	RetrieverTimeout time.Duration
	RetrieverLimit   int
	KnowledgeFile    string

	// Events
	NATSURL string
}

// Load reads .env when present, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() *Config {
	cfg := &Config{
		HTTPPort:             getEnvInt("HTTP_PORT", 8080),
		AppEnv:               getEnv("APP_ENV", "development"),
		CORSOrigins:          getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFile:              getEnv("LOG_FILE", ""),
		SessionBackend:       strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendMemory)),
		SessionTTL:           getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionSweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		DatabaseURL:          getEnv("DATABASE_URL", ":memory:"),
		RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RetrieverMode:        strings.ToLower(getEnv("RETRIEVER_MODE", "subprocess")),
		RetrieverCommand:     getEnv("RETRIEVER_COMMAND", "python3"),
		RetrieverArgs:        strings.Fields(getEnv("RETRIEVER_ARGS", "data-extraction/search.py")),
		RetrieverTimeout:     getEnvDuration("RETRIEVER_TIMEOUT", 10*time.Second),
		RetrieverLimit:       getEnvInt("RETRIEVER_LIMIT", 5),
		KnowledgeFile:        getEnv("KNOWLEDGE_FILE", "data-extraction/data/scraped_data.json"),
		NATSURL:              getEnv("NATS_URL", ""),
	}
	return cfg
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go durations ("30s") or plain milliseconds.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
