package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 6, cfg.RoomCodeLength)
	assert.Equal(t, 64, cfg.WS.SendBuffer)
	assert.False(t, cfg.ArchiveEnabled())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ROOM_CODE_LENGTH", "8")
	t.Setenv("WS_WRITE_TIMEOUT", "3s")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 8, cfg.RoomCodeLength)
	assert.Equal(t, 3*time.Second, cfg.WS.WriteTimeout)
	assert.True(t, cfg.ArchiveEnabled())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadFixesPingPeriod(t *testing.T) {
	t.Setenv("WS_PONG_WAIT", "10s")
	t.Setenv("WS_PING_PERIOD", "30s")
	t.Setenv("ROOM_CODE_LENGTH", "2")

	cfg := Load()

	assert.Equal(t, 9*time.Second, cfg.WS.PingPeriod)
	assert.Equal(t, 4, cfg.RoomCodeLength)
}

func TestBadNumbersFallBack(t *testing.T) {
	t.Setenv("WS_SEND_BUFFER", "lots")
	t.Setenv("ARCHIVE_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 64, cfg.WS.SendBuffer)
	assert.Equal(t, 2*time.Second, cfg.Archive.Timeout)
}
