package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "SESSION_BACKEND", "SESSION_TTL", "RETRIEVER_MODE", "RETRIEVER_ARGS", "RETRIEVER_TIMEOUT", "CORS_ALLOWED_ORIGINS", "NATS_URL"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "subprocess", cfg.RetrieverMode)
	assert.Equal(t, []string{"data-extraction/search.py"}, cfg.RetrieverArgs)
	assert.Equal(t, 10*time.Second, cfg.RetrieverTimeout)
	assert.Equal(t, 5, cfg.RetrieverLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.NATSURL)
	assert.False(t, cfg.IsProduction())
}

func TestOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_BACKEND", "SQLite")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("RETRIEVER_TIMEOUT", "2500")
	t.Setenv("RETRIEVER_ARGS", "-u search.py")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("APP_ENV", "Production")

	cfg := FromEnv()
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, SessionBackendSQLite, cfg.SessionBackend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2500*time.Millisecond, cfg.RetrieverTimeout)
	assert.Equal(t, []string{"-u", "search.py"}, cfg.RetrieverArgs)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("SESSION_TTL", "forever")
	cfg := FromEnv()
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}
