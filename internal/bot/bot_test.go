package bot

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "bingo-hall/internal/api/http"
	"bingo-hall/internal/api/ws"
	"bingo-hall/internal/config"
	"bingo-hall/internal/game"
	"bingo-hall/internal/room"
	"bingo-hall/internal/shared"
	"bingo-hall/internal/store"
)

var card = game.Card{
	{3, 1, 5, 7, 9},
	{20, 16, 18, 22, 24},
	{34, 31, 33, 36, 38},
	{50, 46, 48, 52, 54},
	{61, 62, 64, 66, 68},
}

func TestShouldClaim(t *testing.T) {
	winner := "Alice"
	running := shared.RoomState{GameStarted: true, RoundID: "r1", CalledNumbers: []int{3, 20, 34, 50, 61}}

	tests := []struct {
		name      string
		st        shared.RoomState
		cardRound string
		claimed   string
		want      bool
	}{
		{"winning card", running, "r1", "", true},
		{"already claimed", running, "r1", "r1", false},
		{"card from older round", running, "r0", "", false},
		{"not enough called", shared.RoomState{GameStarted: true, RoundID: "r1", CalledNumbers: []int{3, 20}}, "r1", "", false},
		{"round over", shared.RoomState{RoundID: "r1", Winner: &winner, CalledNumbers: running.CalledNumbers}, "r1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldClaim(card, tt.cardRound, tt.st, tt.claimed))
		})
	}
}

func TestIsHost(t *testing.T) {
	st := shared.RoomState{Players: []shared.PlayerInfo{
		{ID: "a", Name: "Alice", IsHost: true},
		{ID: "b", Name: "Bob"},
	}}
	assert.True(t, isHost(st, "a"))
	assert.False(t, isHost(st, "b"))
	assert.False(t, isHost(st, "c"))
}

func TestWsURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/ws", wsURL("http://localhost:8080/"))
	assert.Equal(t, "wss://bingo.example/ws", wsURL("https://bingo.example"))
}

func TestNewValidates(t *testing.T) {
	_, err := New(Config{Name: "Bob"}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNoRoom)

	_, err = New(Config{RoomID: "ABCDEF", Name: "  "}, zerolog.Nop())
	assert.Error(t, err)
}

func TestHandleDealsCardPerRound(t *testing.T) {
	b, err := New(Config{RoomID: "ABCDEF", Name: "Bob", Seed: 7}, zerolog.Nop())
	require.NoError(t, err)

	frame := func(action string, data any) shared.Envelope {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		return shared.Envelope{Action: action, Data: raw}
	}

	_, err = b.handle(frame(shared.ActionConnected, shared.Connected{ConnectionID: "conn-bob"}))
	require.NoError(t, err)
	assert.Equal(t, "conn-bob", b.connID)

	_, err = b.handle(frame(shared.ActionRoomState, shared.RoomState{GameStarted: true, RoundID: "r1", Version: 3}))
	require.NoError(t, err)
	first := b.card
	assert.NoError(t, game.ValidateCard(first))
	assert.Equal(t, "r1", b.cardRound)

	// a stale snapshot is ignored
	_, err = b.handle(frame(shared.ActionRoomState, shared.RoomState{GameStarted: true, RoundID: "r0", Version: 2}))
	require.NoError(t, err)
	assert.Equal(t, "r1", b.cardRound)

	_, err = b.handle(frame(shared.ActionRoomState, shared.RoomState{GameStarted: true, RoundID: "r2", Version: 9}))
	require.NoError(t, err)
	assert.Equal(t, "r2", b.cardRound)
	assert.NotEqual(t, first, b.card)

	_, err = b.handle(frame(shared.ActionRoomError, shared.RoomError{Message: "Name already taken"}))
	assert.ErrorContains(t, err, "Name already taken")
}

func TestHostAndPlayerPlayARound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rm, err := room.NewManager(&room.Config{Store: store.NewMemoryStore(6), Logger: zerolog.Nop()})
	require.NoError(t, err)
	cfg := config.Default()
	hub := ws.NewHub(rm, cfg.WS, cfg.AllowedOrigins, zerolog.Nop())
	rm.SetHub(hub)

	srv := httptest.NewServer(apihttp.NewRouter(apihttp.RouterDeps{
		Rooms:  rm,
		Hub:    hub,
		Cards:  game.NewCardGenerator(1),
		Config: cfg,
		Logger: zerolog.Nop(),
	}))
	defer srv.Close()
	defer hub.Close()

	roomID := rm.CreateRoom().ID
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host, err := New(Config{
		ServerURL:  srv.URL,
		RoomID:     roomID,
		Name:       "Caller",
		Host:       true,
		AutoStart:  true,
		MinPlayers: 2,
		Interval:   5 * time.Millisecond,
		Rounds:     1,
		Seed:       11,
	}, zerolog.Nop())
	require.NoError(t, err)
	player, err := New(Config{
		ServerURL: srv.URL,
		RoomID:    roomID,
		Name:      "Bob",
		AutoClaim: true,
		Interval:  5 * time.Millisecond,
		Rounds:    1,
		Seed:      12,
	}, zerolog.Nop())
	require.NoError(t, err)

	hostErr := make(chan error, 1)
	go func() { hostErr <- host.Run(ctx) }()

	// the host has to be first in the room
	require.Eventually(t, func() bool {
		st, ok := rm.Snapshot(roomID)
		return ok && len(st.Players) == 1
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, player.Run(ctx))
	require.NoError(t, <-hostErr)
	assert.Equal(t, 1, player.finished)
	assert.Equal(t, player.cardRound, player.claimedRound)
}
