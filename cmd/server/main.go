package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	// swagger docs
	_ "bingo-hall/docs"

	httpapi "bingo-hall/internal/api/http"
	"bingo-hall/internal/api/ws"
	"bingo-hall/internal/config"
	"bingo-hall/internal/game"
	"bingo-hall/internal/room"
	"bingo-hall/internal/store"
)

// @title Bingo Hall API
// @version 1.0
// @description Room coordination for real-time multiplayer bingo (Go + Gin)
// @BasePath /
func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	ctx := context.Background()

	// Round archive is optional
	var (
		archive room.Archive
		rounds  httpapi.RoundLister
	)
	if cfg.ArchiveEnabled() {
		ra, err := store.NewRedisArchive(ctx, cfg.Archive.RedisURL, cfg.Archive.MaxRounds)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer ra.Close()
		archive, rounds = ra, ra
		logger.Info().Msg("connected to Redis, round history enabled")
	}

	mem := store.NewMemoryStore(cfg.RoomCodeLength)
	rm, err := room.NewManager(&room.Config{
		Store:          mem,
		Archive:        archive,
		ArchiveTimeout: cfg.Archive.Timeout,
		Logger:         logger.With().Str("component", "rooms").Logger(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("room manager")
	}
	hub := ws.NewHub(rm, cfg.WS, cfg.AllowedOrigins, logger.With().Str("component", "ws").Logger())
	rm.SetHub(hub)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := httpapi.NewRouter(httpapi.RouterDeps{
		Rooms:  rm,
		Hub:    hub,
		Cards:  game.NewCardGenerator(0),
		Rounds: rounds,
		Config: cfg,
		Logger: logger.With().Str("component", "http").Logger(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.WithCORS(r, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.HTTPAddr).
			Str("env", cfg.Env).
			Msg("starting bingo server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// websocket connections are hijacked and not tracked by Shutdown
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
