// Package bot is a scripted websocket client. As host it starts rounds and
// calls numbers on a timer; as a player it holds a card and claims as soon
// as the card wins.
package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"bingo-hall/internal/game"
	"bingo-hall/internal/shared"
)

var ErrNoRoom = errors.New("room id is required unless hosting")

type Config struct {
	// ServerURL is the HTTP base of the server, e.g. http://localhost:8080.
	ServerURL string
	RoomID    string
	Name      string
	Host      bool
	// AutoStart lets a host start a round once MinPlayers have joined, and
	// the next one after each win.
	AutoStart  bool
	MinPlayers int
	Interval   time.Duration
	AutoClaim  bool
	// Rounds stops the bot after this many finished rounds. Zero runs until
	// cancelled.
	Rounds int
	Seed   int64
}

type Bot struct {
	cfg    Config
	logger zerolog.Logger
	http   *http.Client
	rng    *rand.Rand
	cards  *game.CardGenerator

	conn   *websocket.Conn
	connID string
	state  shared.RoomState
	card   game.Card
	// cardRound is the round the current card was dealt for
	cardRound    string
	claimedRound string
	finished     int
}

func New(cfg Config, logger zerolog.Logger) (*Bot, error) {
	if cfg.RoomID == "" && !cfg.Host {
		return nil, ErrNoRoom
	}
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, errors.New("name is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.MinPlayers <= 0 {
		cfg.MinPlayers = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Bot{
		cfg:    cfg,
		logger: logger.With().Str("name", cfg.Name).Logger(),
		http:   &http.Client{Timeout: 10 * time.Second},
		rng:    rand.New(rand.NewSource(seed)),
		cards:  game.NewCardGenerator(seed),
	}, nil
}

// Run connects, joins and plays until ctx is cancelled, the connection
// drops or the configured number of rounds is reached.
func (b *Bot) Run(ctx context.Context) error {
	if b.cfg.RoomID == "" {
		id, err := b.createRoom(ctx)
		if err != nil {
			return err
		}
		b.cfg.RoomID = id
		b.logger.Info().Str("room_id", id).Msg("room created")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL(b.cfg.ServerURL), nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	b.conn = conn
	defer conn.Close()

	frames := make(chan shared.Envelope, 16)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go b.readLoop(frames, readErr, stop)

	if err := b.send(shared.ActionJoinRoom, shared.JoinRoom{
		RoomID:        b.cfg.RoomID,
		DisplayName:   b.cfg.Name,
		RequestedHost: b.cfg.Host,
	}); err != nil {
		return err
	}

	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = b.send(shared.ActionLeaveRoom, shared.LeaveRoom{RoomID: b.cfg.RoomID})
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
			return nil
		case err := <-readErr:
			return err
		case env := <-frames:
			done, err := b.handle(env)
			if err != nil {
				return err
			}
			if done {
				_ = b.send(shared.ActionLeaveRoom, shared.LeaveRoom{RoomID: b.cfg.RoomID})
				return nil
			}
		case <-ticker.C:
			if err := b.tick(); err != nil {
				return err
			}
		}
	}
}

func (b *Bot) readLoop(frames chan<- shared.Envelope, errs chan<- error, stop <-chan struct{}) {
	for {
		_, raw, err := b.conn.ReadMessage()
		if err != nil {
			errs <- fmt.Errorf("read: %w", err)
			return
		}
		var env shared.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			b.logger.Warn().Err(err).Msg("unreadable frame")
			continue
		}
		select {
		case frames <- env:
		case <-stop:
			return
		}
	}
}

// handle applies one server frame. It reports true once the bot has played
// all the rounds it was asked to.
func (b *Bot) handle(env shared.Envelope) (bool, error) {
	switch env.Action {
	case shared.ActionConnected:
		var c shared.Connected
		if err := json.Unmarshal(env.Data, &c); err != nil {
			return false, err
		}
		b.connID = c.ConnectionID
		b.logger.Debug().Str("conn_id", c.ConnectionID).Msg("connected")

	case shared.ActionRoomState:
		var st shared.RoomState
		if err := json.Unmarshal(env.Data, &st); err != nil {
			return false, err
		}
		if st.Version < b.state.Version {
			return false, nil
		}
		b.state = st
		return false, b.onState()

	case shared.ActionRoundEnded:
		var ended shared.RoundEnded
		if err := json.Unmarshal(env.Data, &ended); err != nil {
			return false, err
		}
		b.finished++
		b.logger.Info().Str("winner", ended.WinnerName).Str("round_id", ended.RoundID).Msg("round ended")
		return b.cfg.Rounds > 0 && b.finished >= b.cfg.Rounds, nil

	case shared.ActionRoomError:
		var e shared.RoomError
		_ = json.Unmarshal(env.Data, &e)
		return false, fmt.Errorf("server refused: %s", e.Message)

	case shared.ActionBingoInvalid:
		b.logger.Warn().Msg("claim rejected")

	case shared.ActionNumberAlreadyCalled, shared.ActionPlayerLeft:
		b.logger.Debug().Str("action", env.Action).RawJSON("data", env.Data).Msg("notice")
	}
	return false, nil
}

func (b *Bot) onState() error {
	st := b.state
	if st.GameStarted && st.RoundID != b.cardRound {
		b.card = b.cards.Generate()
		b.cardRound = st.RoundID
		b.logger.Info().Str("round_id", st.RoundID).Interface("card", b.card.Rows()).Msg("new card")
	}

	if b.cfg.AutoClaim && shouldClaim(b.card, b.cardRound, st, b.claimedRound) {
		b.claimedRound = st.RoundID
		b.logger.Info().Strs("patterns", game.MatchedPatterns(b.card, st.CalledNumbers)).Msg("claiming bingo")
		return b.send(shared.ActionClaimBingo, shared.ClaimBingo{
			RoomID:      b.cfg.RoomID,
			DisplayName: b.cfg.Name,
			Card:        b.card.Rows(),
		})
	}
	if st.GameStarted && b.cardRound == st.RoundID {
		b.logger.Debug().Int("to_go", game.CellsToGo(b.card, st.CalledNumbers)).Msg("progress")
	}
	return nil
}

// tick is the host's clock: start a round when the lobby is ready, call a
// number while one is running.
func (b *Bot) tick() error {
	if !isHost(b.state, b.connID) {
		return nil
	}
	if b.state.GameStarted {
		n, ok := game.NextNumber(b.rng, b.state.CalledNumbers)
		if !ok {
			return nil
		}
		b.logger.Debug().Int("number", n).Msg("calling")
		return b.send(shared.ActionCallNumber, shared.CallNumber{RoomID: b.cfg.RoomID, Number: n})
	}
	if b.cfg.AutoStart && len(b.state.Players) >= b.cfg.MinPlayers {
		b.logger.Info().Int("players", len(b.state.Players)).Msg("starting round")
		return b.send(shared.ActionStartGame, shared.StartGame{RoomID: b.cfg.RoomID})
	}
	return nil
}

func (b *Bot) send(action string, data any) error {
	msg, err := shared.Encode(action, data)
	if err != nil {
		return err
	}
	_ = b.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := b.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("send %s: %w", action, err)
	}
	return nil
}

func (b *Bot) createRoom(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(b.cfg.ServerURL, "/")+"/api/rooms", nil)
	if err != nil {
		return "", err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create room: unexpected status %d", resp.StatusCode)
	}
	var out struct {
		RoomID string `json:"roomId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	return out.RoomID, nil
}

// shouldClaim reports whether card, dealt for cardRound, wins the running
// round and has not been claimed for it yet.
func shouldClaim(card game.Card, cardRound string, st shared.RoomState, claimedRound string) bool {
	if !st.GameStarted || st.Winner != nil {
		return false
	}
	if cardRound != st.RoundID || claimedRound == st.RoundID {
		return false
	}
	return game.IsWinningCard(card, st.CalledNumbers)
}

func isHost(st shared.RoomState, connID string) bool {
	for _, p := range st.Players {
		if p.ID == connID {
			return p.IsHost
		}
	}
	return false
}

func wsURL(base string) string {
	base = strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/ws"
}
