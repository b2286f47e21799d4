package room

import (
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"bingo-hall/internal/shared"
)

const maxNameLength = 32

type Status string

const (
	StatusLobby      Status = "lobby"
	StatusInProgress Status = "in_progress"
	StatusRoundOver  Status = "round_over"
)

type Player struct {
	ConnID string
	Name   string
	IsHost bool
}

// Room is one game session. Everything below mu is guarded by it; the
// manager holds it for the whole of each operation.
type Room struct {
	ID        string
	CreatedAt time.Time

	mu             sync.Mutex
	hostConnID     string
	players        []Player
	gameStarted    bool
	calledNumbers  []int
	winner         *string
	roundID        string
	roundStartedAt time.Time
	version        uint64
	closed         bool
}

func NewRoom(id string, createdAt time.Time) *Room {
	return &Room{
		ID:            id,
		CreatedAt:     createdAt,
		players:       []Player{},
		calledNumbers: []int{},
	}
}

// Snapshot returns a copy of the room's current state.
func (r *Room) Snapshot() shared.RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// HasName reports whether a player in the room already uses name.
func (r *Room) HasName(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nameTaken(SanitizeName(name), "")
}

func (r *Room) status() Status {
	switch {
	case r.gameStarted:
		return StatusInProgress
	case r.winner != nil:
		return StatusRoundOver
	}
	return StatusLobby
}

func (r *Room) snapshot() shared.RoomState {
	players := make([]shared.PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, shared.PlayerInfo{ID: p.ConnID, Name: p.Name, IsHost: p.IsHost})
	}
	var winner *string
	if r.winner != nil {
		w := *r.winner
		winner = &w
	}
	return shared.RoomState{
		RoomID:        r.ID,
		Players:       players,
		GameStarted:   r.gameStarted,
		CalledNumbers: append([]int{}, r.calledNumbers...),
		Winner:        winner,
		Status:        string(r.status()),
		Version:       r.version,
		RoundID:       r.roundID,
	}
}

func (r *Room) indexOf(connID string) int {
	for i, p := range r.players {
		if p.ConnID == connID {
			return i
		}
	}
	return -1
}

// nameTaken ignores the entry belonging to connID so a connection can
// re-join under its own name.
func (r *Room) nameTaken(name, connID string) bool {
	for _, p := range r.players {
		if p.Name == name && p.ConnID != connID {
			return true
		}
	}
	return false
}

func (r *Room) removePlayer(connID string) (Player, bool) {
	i := r.indexOf(connID)
	if i < 0 {
		return Player{}, false
	}
	p := r.players[i]
	r.players = append(r.players[:i], r.players[i+1:]...)
	return p, true
}

// promoteEarliest hands host to the player who joined first.
func (r *Room) promoteEarliest() {
	if len(r.players) == 0 {
		r.hostConnID = ""
		return
	}
	for i := range r.players {
		r.players[i].IsHost = i == 0
	}
	r.hostConnID = r.players[0].ConnID
}

func (r *Room) hasCalled(n int) bool {
	for _, c := range r.calledNumbers {
		if c == n {
			return true
		}
	}
	return false
}

// SanitizeName trims a display name, drops control characters and caps its
// length.
func SanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(name))

	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return strings.TrimSpace(name)
}
