package shared

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Client -> Server
//
//	join_room   {roomId, displayName, requestedHost}
//	start_game  {roomId}
//	call_number {roomId, number}
//	claim_bingo {roomId, displayName, card}
//	leave_room  {roomId}
//
// Server -> Client
//
//	connected             {connectionId}
//	room_state            {roomId, players, gameStarted, calledNumbers, winner, status, version, roundId}
//	room_error            {message}
//	round_ended           {winnerName, card, roundId}
//	number_already_called {number}
//	bingo_invalid         {}
//	player_left           {connectionId}
const (
	ActionJoinRoom   = "join_room"
	ActionStartGame  = "start_game"
	ActionCallNumber = "call_number"
	ActionClaimBingo = "claim_bingo"
	ActionLeaveRoom  = "leave_room"

	ActionConnected           = "connected"
	ActionRoomState           = "room_state"
	ActionRoomError           = "room_error"
	ActionRoundEnded          = "round_ended"
	ActionNumberAlreadyCalled = "number_already_called"
	ActionBingoInvalid        = "bingo_invalid"
	ActionPlayerLeft          = "player_left"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Envelope is the frame every message travels in.
type Envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type JoinRoom struct {
	RoomID        string `json:"roomId" validate:"required,max=64"`
	DisplayName   string `json:"displayName" validate:"required,max=64"`
	RequestedHost bool   `json:"requestedHost"`
}

type StartGame struct {
	RoomID string `json:"roomId" validate:"required,max=64"`
}

type CallNumber struct {
	RoomID string `json:"roomId" validate:"required,max=64"`
	Number int    `json:"number"`
}

type ClaimBingo struct {
	RoomID      string  `json:"roomId" validate:"required,max=64"`
	DisplayName string  `json:"displayName" validate:"max=64"`
	Card        [][]int `json:"card" validate:"required,len=5,dive,len=5"`
}

type LeaveRoom struct {
	RoomID string `json:"roomId" validate:"required,max=64"`
}

type Connected struct {
	ConnectionID string `json:"connectionId"`
}

type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// RoomState is the full snapshot broadcast after every change. Clients
// should ignore a snapshot whose Version is lower than one already applied.
type RoomState struct {
	RoomID        string       `json:"roomId"`
	Players       []PlayerInfo `json:"players"`
	GameStarted   bool         `json:"gameStarted"`
	CalledNumbers []int        `json:"calledNumbers"`
	Winner        *string      `json:"winner"`
	Status        string       `json:"status"`
	Version       uint64       `json:"version"`
	RoundID       string       `json:"roundId,omitempty"`
}

type RoomError struct {
	Message string `json:"message"`
}

type RoundEnded struct {
	WinnerName string  `json:"winnerName"`
	Card       [][]int `json:"card"`
	RoundID    string  `json:"roundId,omitempty"`
}

type NumberAlreadyCalled struct {
	Number int `json:"number"`
}

type BingoInvalid struct{}

type PlayerLeft struct {
	ConnectionID string `json:"connectionId"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode unpacks an inbound envelope into its typed payload and validates
// the payload's shape. The returned value is one of the inbound structs.
func Decode(env Envelope) (any, error) {
	var payload any
	switch env.Action {
	case ActionJoinRoom:
		payload = &JoinRoom{}
	case ActionStartGame:
		payload = &StartGame{}
	case ActionCallNumber:
		payload = &CallNumber{}
	case ActionClaimBingo:
		payload = &ClaimBingo{}
	case ActionLeaveRoom:
		payload = &LeaveRoom{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Action)
	}

	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%w: missing data", ErrInvalidPayload)
	}
	if err := json.Unmarshal(env.Data, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return payload, nil
}

// Encode builds an outbound frame.
func Encode(action string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", action, err)
	}
	return json.Marshal(Envelope{Action: action, Data: raw})
}
