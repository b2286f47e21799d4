package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, raw string) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	return env
}

func TestDecodeJoin(t *testing.T) {
	payload, err := Decode(envelope(t, `{"action":"join_room","data":{"roomId":"ABC123","displayName":"Alice","requestedHost":true}}`))
	require.NoError(t, err)

	join, ok := payload.(*JoinRoom)
	require.True(t, ok)
	assert.Equal(t, JoinRoom{RoomID: "ABC123", DisplayName: "Alice", RequestedHost: true}, *join)
}

func TestDecodeClaim(t *testing.T) {
	payload, err := Decode(envelope(t, `{"action":"claim_bingo","data":{"roomId":"R","displayName":"Bob",
		"card":[[1,2,3,4,5],[16,17,18,19,20],[31,32,0,34,35],[46,47,48,49,50],[61,62,63,64,65]]}}`))
	require.NoError(t, err)

	claim := payload.(*ClaimBingo)
	assert.Len(t, claim.Card, 5)
	assert.Equal(t, 0, claim.Card[2][2])
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]struct {
		raw string
		err error
	}{
		"unknown action":   {`{"action":"dance","data":{}}`, ErrUnknownAction},
		"missing data":     {`{"action":"start_game"}`, ErrInvalidPayload},
		"missing room":     {`{"action":"start_game","data":{}}`, ErrInvalidPayload},
		"number as string": {`{"action":"call_number","data":{"roomId":"R","number":"7"}}`, ErrInvalidPayload},
		"empty name":       {`{"action":"join_room","data":{"roomId":"R","displayName":""}}`, ErrInvalidPayload},
		"short card":       {`{"action":"claim_bingo","data":{"roomId":"R","card":[[1,2,3,4,5]]}}`, ErrInvalidPayload},
		"ragged card": {`{"action":"claim_bingo","data":{"roomId":"R",
			"card":[[1,2,3,4,5],[16,17,18,19],[31,32,33,34,35],[46,47,48,49,50],[61,62,63,64,65]]}}`, ErrInvalidPayload},
		"no card":      {`{"action":"claim_bingo","data":{"roomId":"R"}}`, ErrInvalidPayload},
		"data is list": {`{"action":"leave_room","data":[1]}`, ErrInvalidPayload},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(envelope(t, tc.raw))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestEncode(t *testing.T) {
	winner := "Bob"
	raw, err := Encode(ActionRoomState, RoomState{
		RoomID:        "R",
		Players:       []PlayerInfo{{ID: "c1", Name: "Bob", IsHost: true}},
		CalledNumbers: []int{7},
		Winner:        &winner,
		Status:        "round_over",
		Version:       3,
	})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, ActionRoomState, env.Action)

	var state RoomState
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Equal(t, "Bob", *state.Winner)
	assert.Equal(t, uint64(3), state.Version)
	assert.True(t, state.Players[0].IsHost)
}

func TestEncodeEmptyPayload(t *testing.T) {
	raw, err := Encode(ActionBingoInvalid, BingoInvalid{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"bingo_invalid","data":{}}`, string(raw))
}
