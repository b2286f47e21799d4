package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "bingo-hall/docs"
	"bingo-hall/internal/config"
	"bingo-hall/internal/game"
	"bingo-hall/internal/room"
	"bingo-hall/internal/shared"
	"bingo-hall/internal/store"
)

type fakeRounds struct {
	rounds []room.RoundResult
	err    error
	gotID  string
	gotN   int
}

func (f *fakeRounds) RecentRounds(_ context.Context, roomID string, limit int) ([]room.RoundResult, error) {
	f.gotID, f.gotN = roomID, limit
	return f.rounds, f.err
}

func setup(t *testing.T, rounds RoundLister) (*gin.Engine, *room.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rm, err := room.NewManager(&room.Config{Store: store.NewMemoryStore(6), Logger: zerolog.Nop()})
	require.NoError(t, err)

	r := NewRouter(RouterDeps{
		Rooms:  rm,
		Cards:  game.NewCardGenerator(42),
		Rounds: rounds,
		Config: config.Default(),
		Logger: zerolog.Nop(),
	})
	return r, rm
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRoom(t *testing.T) {
	r, rm := setup(t, nil)

	w := do(r, http.MethodPost, "/api/rooms", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp CreateRoomResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.RoomID, 6)

	_, ok := rm.Get(resp.RoomID)
	assert.True(t, ok)
}

func TestJoinRoomAdvisory(t *testing.T) {
	r, rm := setup(t, nil)
	id := rm.CreateRoom().ID
	require.NoError(t, rm.Join(room.JoinInput{RoomID: id, ConnID: "c1", DisplayName: "Alice"}))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"missing fields", `{"roomCode":"` + id + `"}`, http.StatusBadRequest},
		{"blank name", `{"roomCode":"` + id + `","playerName":"   "}`, http.StatusBadRequest},
		{"unknown room", `{"roomCode":"ZZZZZZ","playerName":"Bob"}`, http.StatusNotFound},
		{"name in use", `{"roomCode":"` + id + `","playerName":"Alice"}`, http.StatusConflict},
		{"available", `{"roomCode":"` + id + `","playerName":"Bob"}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/rooms/join", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestRoomState(t *testing.T) {
	r, rm := setup(t, nil)
	id := rm.CreateRoom().ID
	require.NoError(t, rm.Join(room.JoinInput{RoomID: id, ConnID: "c1", DisplayName: "Alice"}))

	w := do(r, http.MethodGet, "/api/rooms/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	var st shared.RoomState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, id, st.RoomID)
	require.Len(t, st.Players, 1)
	assert.True(t, st.Players[0].IsHost)
	assert.Equal(t, "lobby", st.Status)

	w = do(r, http.MethodGet, "/api/rooms/NOPE", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoundsDisabled(t *testing.T) {
	r, _ := setup(t, nil)
	w := do(r, http.MethodGet, "/api/rooms/ABCDEF/rounds", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRounds(t *testing.T) {
	fake := &fakeRounds{rounds: []room.RoundResult{{RoundID: "r1", RoomID: "ABCDEF", Winner: "Bob"}}}
	r, _ := setup(t, fake)

	w := do(r, http.MethodGet, "/api/rooms/ABCDEF/rounds?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ABCDEF", fake.gotID)
	assert.Equal(t, 5, fake.gotN)

	var resp struct {
		Rounds []room.RoundResult `json:"rounds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rounds, 1)
	assert.Equal(t, "Bob", resp.Rounds[0].Winner)

	w = do(r, http.MethodGet, "/api/rooms/ABCDEF/rounds?limit=lots", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fake.err = errors.New("connection refused")
	w = do(r, http.MethodGet, "/api/rooms/ABCDEF/rounds", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCard(t *testing.T) {
	r, _ := setup(t, nil)

	w := do(r, http.MethodGet, "/api/card", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	card, err := game.ParseCard(resp.Card)
	require.NoError(t, err)
	assert.NoError(t, game.ValidateCard(card))
}

func TestGameConfig(t *testing.T) {
	r, _ := setup(t, nil)

	w := do(r, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp GameConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Columns, 5)
	assert.Equal(t, ColumnInfo{Letter: "N", Min: 31, Max: 45}, resp.Columns[2])
	assert.Equal(t, 75, resp.MaxNumber)
	assert.Len(t, resp.Patterns, len(game.Patterns))
	assert.Contains(t, resp.Patterns, "diamond")
}

func TestHealthAndMetrics(t *testing.T) {
	r, rm := setup(t, nil)
	rm.CreateRoom()

	w := do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Rooms)

	w = do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bingo_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	r, _ := setup(t, nil)
	h := WithCORS(r, []string{"https://bingo.example"})

	req := httptest.NewRequest(http.MethodOptions, "/api/rooms", nil)
	req.Header.Set("Origin", "https://bingo.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://bingo.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSwaggerDoc(t *testing.T) {
	r, _ := setup(t, nil)

	w := do(r, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/rooms/join")

	w = do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/swagger/index.html", w.Header().Get("Location"))
}
