package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"bingo-hall/internal/config"
	"bingo-hall/internal/game"
	"bingo-hall/internal/metrics"
	"bingo-hall/internal/room"
	"bingo-hall/internal/shared"
)

// Hub owns every open connection and the room fan-out sets. It implements
// room.Broadcaster. The hub never calls into the room manager while holding
// its own lock.
type Hub struct {
	mu          sync.RWMutex
	clients     map[string]*Client
	rooms       map[string]map[string]*Client
	roomManager RoomManager

	upgrader websocket.Upgrader
	cfg      config.WebSocket
	logger   zerolog.Logger
}

func NewHub(roomManager RoomManager, cfg config.WebSocket, allowedOrigins []string, logger zerolog.Logger) *Hub {
	h := &Hub{
		clients:     map[string]*Client{},
		rooms:       map[string]map[string]*Client{},
		roomManager: roomManager,
		cfg:         withDefaults(cfg),
		logger:      logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func withDefaults(cfg config.WebSocket) config.WebSocket {
	def := config.Default().WS
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = def.SendBuffer
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = def.PongWait
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = cfg.PongWait * 9 / 10
	}
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = def.MaxMessageBytes
	}
	return cfg
}

// originChecker allows requests without an Origin header (non-browser
// clients) and any origin on the list. "*" allows everything.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := map[string]bool{}
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// HandleWS upgrades the request and serves the connection until it closes.
//
// @Summary      Realtime game connection
// @Tags         realtime
// @Router       /ws [get]
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.NewString()
	client := newClient(id, conn, h.cfg.SendBuffer, h.logger.With().Str("conn_id", id).Logger())

	h.mu.Lock()
	h.clients[id] = client
	h.mu.Unlock()
	metrics.ConnectionsActive.Inc()
	client.logger.Info().Str("remote", c.ClientIP()).Msg("connection opened")

	go client.writePump(h.cfg.WriteTimeout, h.cfg.PingPeriod)
	h.Send(id, shared.ActionConnected, shared.Connected{ConnectionID: id})

	h.readPump(client)
	h.disconnect(client)
}

func (h *Hub) readPump(c *Client) {
	c.conn.SetReadLimit(h.cfg.MaxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Msg("read failed")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
		h.dispatch(c, raw)
	}
}

func (h *Hub) dispatch(c *Client, raw []byte) {
	var env shared.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.EventsReceived.WithLabelValues("malformed").Inc()
		h.Send(c.ID, shared.ActionRoomError, shared.RoomError{Message: "Invalid payload"})
		return
	}

	payload, err := shared.Decode(env)
	if err != nil {
		if errors.Is(err, shared.ErrUnknownAction) {
			metrics.EventsReceived.WithLabelValues("unknown").Inc()
			h.Send(c.ID, shared.ActionRoomError, shared.RoomError{Message: "Unknown action"})
		} else {
			metrics.EventsReceived.WithLabelValues(env.Action).Inc()
			h.Send(c.ID, shared.ActionRoomError, shared.RoomError{Message: "Invalid payload"})
		}
		c.logger.Debug().Err(err).Msg("rejected frame")
		return
	}
	metrics.EventsReceived.WithLabelValues(env.Action).Inc()

	switch p := payload.(type) {
	case *shared.JoinRoom:
		err = h.roomManager.Join(room.JoinInput{
			RoomID:        p.RoomID,
			ConnID:        c.ID,
			DisplayName:   p.DisplayName,
			RequestedHost: p.RequestedHost,
		})
	case *shared.StartGame:
		err = h.roomManager.StartGame(p.RoomID, c.ID)
	case *shared.CallNumber:
		err = h.roomManager.CallNumber(p.RoomID, c.ID, p.Number)
	case *shared.ClaimBingo:
		card, perr := game.ParseCard(p.Card)
		if perr != nil {
			h.Send(c.ID, shared.ActionRoomError, shared.RoomError{Message: "Invalid payload"})
			return
		}
		err = h.roomManager.ClaimBingo(room.ClaimInput{
			RoomID:      p.RoomID,
			ConnID:      c.ID,
			DisplayName: p.DisplayName,
			Card:        card,
		})
	case *shared.LeaveRoom:
		err = h.roomManager.Leave(p.RoomID, c.ID)
	}
	if err != nil {
		c.logger.Debug().Err(err).Str("action", env.Action).Msg("intent not applied")
	}
}

// disconnect drops the client and leaves every room it had joined.
func (h *Hub) disconnect(c *Client) {
	c.close()

	h.mu.Lock()
	delete(h.clients, c.ID)
	joined := make([]string, 0, len(c.rooms))
	for roomID := range c.rooms {
		joined = append(joined, roomID)
	}
	h.mu.Unlock()

	for _, roomID := range joined {
		_ = h.roomManager.Leave(roomID, c.ID)
	}
	metrics.ConnectionsActive.Dec()
	c.logger.Info().Int("rooms", len(joined)).Msg("connection closed")
}

func (h *Hub) Subscribe(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	members, ok := h.rooms[roomID]
	if !ok {
		members = map[string]*Client{}
		h.rooms[roomID] = members
	}
	members[connID] = c
	c.rooms[roomID] = struct{}{}
}

func (h *Hub) Unsubscribe(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[roomID]; ok {
		if c, ok := members[connID]; ok {
			delete(c.rooms, roomID)
		}
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) Broadcast(roomID string, action string, data any) {
	msg, err := shared.Encode(action, data)
	if err != nil {
		h.logger.Error().Err(err).Str("action", action).Msg("encode broadcast")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[roomID] {
		c.enqueue(msg)
	}
}

func (h *Hub) Send(connID string, action string, data any) {
	msg, err := shared.Encode(action, data)
	if err != nil {
		h.logger.Error().Err(err).Str("action", action).Msg("encode send")
		return
	}

	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if ok {
		c.enqueue(msg)
	}
}

// Connections returns the number of open connections.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. Their read loops then leave their rooms.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.close()
	}
}
