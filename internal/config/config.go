package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type WebSocket struct {
	SendBuffer      int
	WriteTimeout    time.Duration
	PongWait        time.Duration
	PingPeriod      time.Duration
	MaxMessageBytes int64
}

type Archive struct {
	RedisURL  string
	Timeout   time.Duration
	MaxRounds int
}

type Config struct {
	HTTPAddr        string
	Env             string
	LogLevel        string
	AllowedOrigins  []string
	RoomCodeLength  int
	ShutdownTimeout time.Duration

	WS      WebSocket
	Archive Archive
}

// Load reads the configuration from the environment, after pulling in a
// .env file when one exists in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		Env:             getenv("APP_ENV", "development"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		AllowedOrigins:  getenvList("ALLOWED_ORIGINS", []string{"*"}),
		RoomCodeLength:  getenvInt("ROOM_CODE_LENGTH", 6),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		WS: WebSocket{
			SendBuffer:      getenvInt("WS_SEND_BUFFER", 64),
			WriteTimeout:    getenvDuration("WS_WRITE_TIMEOUT", 10*time.Second),
			PongWait:        getenvDuration("WS_PONG_WAIT", 60*time.Second),
			PingPeriod:      getenvDuration("WS_PING_PERIOD", 54*time.Second),
			MaxMessageBytes: int64(getenvInt("WS_MAX_MESSAGE_BYTES", 8192)),
		},
		Archive: Archive{
			RedisURL:  os.Getenv("REDIS_URL"),
			Timeout:   getenvDuration("ARCHIVE_TIMEOUT", 2*time.Second),
			MaxRounds: getenvInt("ARCHIVE_MAX_ROUNDS", 50),
		},
	}

	// pings must go out before the peer's read deadline expires
	if cfg.WS.PingPeriod >= cfg.WS.PongWait {
		cfg.WS.PingPeriod = cfg.WS.PongWait * 9 / 10
	}
	if cfg.RoomCodeLength < 4 {
		cfg.RoomCodeLength = 4
	}

	return cfg
}

// Default returns the configuration used when no environment is present.
func Default() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		Env:             "development",
		LogLevel:        "info",
		AllowedOrigins:  []string{"*"},
		RoomCodeLength:  6,
		ShutdownTimeout: 15 * time.Second,
		WS: WebSocket{
			SendBuffer:      64,
			WriteTimeout:    10 * time.Second,
			PongWait:        60 * time.Second,
			PingPeriod:      54 * time.Second,
			MaxMessageBytes: 8192,
		},
		Archive: Archive{
			Timeout:   2 * time.Second,
			MaxRounds: 50,
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) ArchiveEnabled() bool {
	return c.Archive.RedisURL != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, entry := range strings.Split(v, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
