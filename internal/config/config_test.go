package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ENV", "ALLOWED_ORIGINS", "FRONTEND_URL", "AUTOSAVE_DEBOUNCE", "MINIO_ENDPOINT"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.AutosaveDebounce)
	assert.False(t, cfg.MinioEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", " Production ")
	t.Setenv("ALLOWED_ORIGINS", "https://bio.example, https://www.bio.example ,")
	t.Setenv("AUTOSAVE_DEBOUNCE", "750ms")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("MINIO_USE_SSL", "true")
	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://bio.example", "https://www.bio.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 750*time.Millisecond, cfg.AutosaveDebounce)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.MinioUseSSL)
}
