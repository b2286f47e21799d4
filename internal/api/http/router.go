package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bingo-hall/internal/api/ws"
	"bingo-hall/internal/config"
	"bingo-hall/internal/game"
	"bingo-hall/internal/metrics"
	"bingo-hall/internal/room"
)

type RouterDeps struct {
	Rooms  *room.Manager
	Hub    *ws.Hub
	Cards  *game.CardGenerator
	Rounds RoundLister
	Config *config.Config
	Logger zerolog.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Logger), requestMetrics())

	// WebSocket for live room updates
	if d.Hub != nil {
		r.GET("/ws", d.Hub.HandleWS)
	}

	// --- ROOM ENDPOINTS ---
	api := r.Group("/api")
	api.POST("/rooms", CreateRoomHandler(d.Rooms))
	api.POST("/rooms/join", JoinRoomHandler(d.Rooms))
	api.GET("/rooms/:roomId", RoomStateHandler(d.Rooms))
	api.GET("/rooms/:roomId/rounds", RoundsHandler(d.Rounds))

	// --- GAME ENDPOINTS ---
	api.GET("/card", CardHandler(d.Cards))

	// --- CONFIG ENDPOINTS ---
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}
	ch := NewConfigHandler(cfg)
	api.GET("/config", ch.GetGameConfigHandler)
	api.GET("/config/server", ch.GetServerConfigHandler)

	// --- OPS ---
	r.GET("/health", HealthHandler(d.Rooms, d.Hub))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API docs, registered by importing bingo-hall/docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	return r
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := logger.Debug()
		if c.Writer.Status() >= 500 {
			ev = logger.Error()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// WithCORS wraps the engine so browsers on the allowed origins can call the
// JSON API.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}
