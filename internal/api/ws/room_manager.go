package ws

import "bingo-hall/internal/room"

// RoomManager is what the hub dispatches decoded intents into.
type RoomManager interface {
	Join(in room.JoinInput) error
	StartGame(roomID, connID string) error
	CallNumber(roomID, connID string, number int) error
	ClaimBingo(in room.ClaimInput) error
	Leave(roomID, connID string) error
}
