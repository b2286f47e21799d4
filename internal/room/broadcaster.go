package room

import (
	"context"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_broadcaster.go bingo-hall/internal/room Broadcaster,Archive

// Broadcaster delivers events to connections. Implementations must not block
// on the network: the manager calls it while holding a room lock.
type Broadcaster interface {
	// Subscribe adds a connection to a room's fan-out.
	Subscribe(roomID, connID string)
	// Unsubscribe removes a connection from a room's fan-out.
	Unsubscribe(roomID, connID string)
	// Broadcast sends to every connection subscribed to the room.
	Broadcast(roomID string, action string, data any)
	// Send sends to a single connection.
	Send(connID string, action string, data any)
}

// RoundResult describes a finished round.
type RoundResult struct {
	RoundID       string    `json:"roundId"`
	RoomID        string    `json:"roomId"`
	Winner        string    `json:"winner"`
	Card          [][]int   `json:"card"`
	CalledNumbers []int     `json:"calledNumbers"`
	Players       int       `json:"players"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
}

// Archive records finished rounds somewhere outside the process.
type Archive interface {
	RecordRound(ctx context.Context, result RoundResult) error
}

type nopBroadcaster struct{}

func (nopBroadcaster) Subscribe(string, string) {}
func (nopBroadcaster) Unsubscribe(string, string) {}
func (nopBroadcaster) Broadcast(string, string, any) {}
func (nopBroadcaster) Send(string, string, any) {}
