package room

// RoomError is the error type returned by the room state machine. None of
// these are fatal; they describe why an intent was not applied.
type RoomError string

func (e RoomError) Error() string {
	return string(e)
}

const (
	ErrRoomNotFound        RoomError = "room not found"
	ErrNameTaken           RoomError = "name already taken"
	ErrInvalidName         RoomError = "display name is required"
	ErrUnauthorized        RoomError = "only the host may do that"
	ErrNumberAlreadyCalled RoomError = "number already called"
	ErrInvalidClaim        RoomError = "bingo claim is not valid"
	ErrGameNotStarted      RoomError = "no round in progress"
	ErrNotInRoom           RoomError = "player not in room"

	ErrNilConfig RoomError = "config cannot be nil"
	ErrNilStore  RoomError = "store cannot be nil"
)

// Reason is a short label used for metrics.
func (e RoomError) Reason() string {
	switch e {
	case ErrRoomNotFound:
		return "room_not_found"
	case ErrNameTaken:
		return "name_taken"
	case ErrInvalidName:
		return "invalid_name"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrNumberAlreadyCalled:
		return "number_already_called"
	case ErrInvalidClaim:
		return "invalid_claim"
	case ErrGameNotStarted:
		return "game_not_started"
	case ErrNotInRoom:
		return "not_in_room"
	}
	return "other"
}

// Message is the text shown to players in a room_error event.
func (e RoomError) Message() string {
	switch e {
	case ErrRoomNotFound:
		return "Room not found"
	case ErrNameTaken:
		return "Name already taken"
	case ErrInvalidName:
		return "Display name is required"
	}
	return string(e)
}
