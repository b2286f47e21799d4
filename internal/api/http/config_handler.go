package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bingo-hall/internal/config"
	"bingo-hall/internal/game"
)

const columnLetters = "BINGO"

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// GetGameConfigHandler returns the card layout and the winning patterns
// @Summary Get card layout
// @Description Returns column ranges, free space and every pattern the server accepts as a win
// @Tags Config
// @Produce json
// @Success 200 {object} GameConfigResponse
// @Router /api/config [get]
func (h *ConfigHandler) GetGameConfigHandler(c *gin.Context) {
	cols := make([]ColumnInfo, 0, game.Size)
	for i := 0; i < game.Size; i++ {
		lo, hi := game.ColumnRange(i)
		cols = append(cols, ColumnInfo{Letter: string(columnLetters[i]), Min: lo, Max: hi})
	}

	patterns := make([]string, 0, len(game.Patterns))
	for _, p := range game.Patterns {
		patterns = append(patterns, p.Name)
	}

	c.JSON(http.StatusOK, GameConfigResponse{
		Columns:   cols,
		MaxNumber: game.MaxNumber,
		FreeSpace: true,
		Patterns:  patterns,
	})
}

// GetServerConfigHandler returns the transport limits a client should respect
// @Summary Get transport limits
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/config/server [get]
func (h *ConfigHandler) GetServerConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"roomCodeLength":  h.cfg.RoomCodeLength,
		"maxMessageBytes": h.cfg.WS.MaxMessageBytes,
		"pingPeriodMs":    h.cfg.WS.PingPeriod.Milliseconds(),
		"historyEnabled":  h.cfg.ArchiveEnabled(),
	})
}
