package http

// JoinRoomRequest is the payload for the advisory join check.
type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode" binding:"required"`
	PlayerName string `json:"playerName" binding:"required"`
}

// CreateRoomResponse is returned by POST /api/rooms.
type CreateRoomResponse struct {
	RoomID string `json:"roomId"`
}

// JoinRoomResponse is returned when a join would be accepted.
type JoinRoomResponse struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

// CardResponse carries a freshly generated card, column first.
type CardResponse struct {
	Card [][]int `json:"card"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
}

// ColumnInfo describes the number range of one card column.
type ColumnInfo struct {
	Letter string `json:"letter"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

// GameConfigResponse is the card layout clients need to render and claim.
type GameConfigResponse struct {
	Columns   []ColumnInfo `json:"columns"`
	MaxNumber int          `json:"maxNumber"`
	FreeSpace bool         `json:"freeSpace"`
	Patterns  []string     `json:"patterns"`
}
