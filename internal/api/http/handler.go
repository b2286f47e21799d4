package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bingo-hall/internal/api/ws"
	"bingo-hall/internal/game"
	"bingo-hall/internal/room"
)

// RoundLister reads archived rounds. A nil RoundLister disables history.
type RoundLister interface {
	RecentRounds(ctx context.Context, roomID string, limit int) ([]room.RoundResult, error)
}

// @Summary Create new room
// @Description Registers an empty room. The first player to join becomes host.
// @Tags Room
// @Produce json
// @Success 201 {object} CreateRoomResponse
// @Router /api/rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := rm.CreateRoom()
		c.JSON(http.StatusCreated, CreateRoomResponse{RoomID: r.ID})
	}
}

// @Summary Check a join before connecting
// @Description Reports whether a join with this name would currently be accepted. The websocket join is authoritative.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body JoinRoomRequest true "Room code and player name"
// @Success 200 {object} JoinRoomResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/rooms/join [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode and playerName are required"})
			return
		}
		if room.SanitizeName(req.PlayerName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": room.ErrInvalidName.Message()})
			return
		}
		rx, ok := rm.Get(req.RoomCode)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": room.ErrRoomNotFound.Message()})
			return
		}
		if rx.HasName(req.PlayerName) {
			c.JSON(http.StatusConflict, gin.H{"error": room.ErrNameTaken.Message()})
			return
		}
		c.JSON(http.StatusOK, JoinRoomResponse{RoomID: rx.ID, Message: "Room is available"})
	}
}

// @Summary Get room state
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} shared.RoomState
// @Failure 404 {object} map[string]interface{}
// @Router /api/rooms/{roomId} [get]
func RoomStateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := rm.Snapshot(c.Param("roomId"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": room.ErrRoomNotFound.Message()})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// @Summary List finished rounds
// @Description Newest first. Requires the round archive to be configured.
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Param limit query int false "Maximum rounds to return"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/rounds [get]
func RoundsHandler(rounds RoundLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rounds == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "round history is disabled"})
			return
		}
		limit := 0
		if q := c.Query("limit"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			limit = n
		}
		list, err := rounds.RecentRounds(c.Request.Context(), c.Param("roomId"), limit)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "round history unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rounds": list})
	}
}

// @Summary Generate a card
// @Description Returns a random 5x5 card, column first. The center cell is a regular number.
// @Tags Game
// @Produce json
// @Success 200 {object} CardResponse
// @Router /api/card [get]
func CardHandler(gen *game.CardGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, CardResponse{Card: gen.Generate().Rows()})
	}
}

// @Summary Health check
// @Tags Ops
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{Status: "ok", Rooms: rm.RoomCount()}
		if hub != nil {
			resp.Connections = hub.Connections()
		}
		c.JSON(http.StatusOK, resp)
	}
}
