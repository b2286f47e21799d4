package room

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"bingo-hall/internal/game"
	"bingo-hall/internal/metrics"
	"bingo-hall/internal/shared"
)

// Store is the room registry.
type Store interface {
	CreateRoom() *Room
	GetRoom(id string) (*Room, bool)
	DeleteRoom(id string)
	Len() int
}

type Config struct {
	Store       Store
	Broadcaster Broadcaster

	// Archive is optional. Finished rounds are handed to it in the
	// background, bounded by ArchiveTimeout.
	Archive        Archive
	ArchiveTimeout time.Duration

	Logger zerolog.Logger
	Now    func() time.Time
}

// Manager is the room state machine. Every operation runs under the
// room's lock, so snapshots leave a room in the order its state changed.
type Manager struct {
	store          Store
	hub            Broadcaster
	archive        Archive
	archiveTimeout time.Duration
	logger         zerolog.Logger
	now            func() time.Time
}

type JoinInput struct {
	RoomID        string
	ConnID        string
	DisplayName   string
	RequestedHost bool
}

type ClaimInput struct {
	RoomID      string
	ConnID      string
	DisplayName string
	Card        game.Card
}

func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Store == nil {
		return nil, ErrNilStore
	}

	m := &Manager{
		store:          cfg.Store,
		hub:            cfg.Broadcaster,
		archive:        cfg.Archive,
		archiveTimeout: cfg.ArchiveTimeout,
		logger:         cfg.Logger,
		now:            cfg.Now,
	}
	if m.hub == nil {
		m.hub = nopBroadcaster{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.archiveTimeout <= 0 {
		m.archiveTimeout = 2 * time.Second
	}
	return m, nil
}

// SetHub wires the transport in after construction; the hub needs the
// manager to dispatch into, so one of the two has to come second.
func (m *Manager) SetHub(hub Broadcaster) {
	if hub == nil {
		hub = nopBroadcaster{}
	}
	m.hub = hub
}

func (m *Manager) CreateRoom() *Room {
	r := m.store.CreateRoom()
	metrics.RoomsActive.Inc()
	m.logger.Info().Str("room_id", r.ID).Msg("room created")
	return r
}

func (m *Manager) Get(id string) (*Room, bool) {
	return m.store.GetRoom(id)
}

// RoomCount returns the number of live rooms.
func (m *Manager) RoomCount() int {
	return m.store.Len()
}

// Snapshot returns the current state of a live room.
func (m *Manager) Snapshot(id string) (shared.RoomState, bool) {
	r, ok := m.store.GetRoom(id)
	if !ok {
		return shared.RoomState{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return shared.RoomState{}, false
	}
	return r.snapshot(), true
}

// lock returns the live room with its lock held, or false when the room is
// unknown or has already been destroyed.
func (m *Manager) lock(id string) (*Room, bool) {
	r, ok := m.store.GetRoom(id)
	if !ok {
		return nil, false
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, false
	}
	return r, true
}

func (m *Manager) Join(in JoinInput) error {
	log := m.logger.With().Str("room_id", in.RoomID).Str("conn_id", in.ConnID).Logger()

	r, ok := m.lock(in.RoomID)
	if !ok {
		return m.reject(log, in.ConnID, ErrRoomNotFound)
	}
	defer r.mu.Unlock()

	name := SanitizeName(in.DisplayName)
	if name == "" {
		return m.reject(log, in.ConnID, ErrInvalidName)
	}
	if r.nameTaken(name, in.ConnID) {
		return m.reject(log, in.ConnID, ErrNameTaken)
	}

	// a duplicate join replaces the earlier entry; a host stays host
	stale, rejoin := r.removePlayer(in.ConnID)
	isHost := (rejoin && stale.IsHost) || len(r.players) == 0
	if in.RequestedHost && !isHost {
		log.Debug().Msg("host requested on occupied room, ignored")
	}

	r.players = append(r.players, Player{ConnID: in.ConnID, Name: name, IsHost: isHost})
	if isHost {
		r.hostConnID = in.ConnID
	}
	r.version++

	m.hub.Subscribe(r.ID, in.ConnID)
	m.hub.Broadcast(r.ID, shared.ActionRoomState, r.snapshot())

	log.Info().Str("name", name).Bool("host", isHost).Bool("rejoin", rejoin).Msg("player joined")
	return nil
}

func (m *Manager) StartGame(roomID, connID string) error {
	log := m.logger.With().Str("room_id", roomID).Str("conn_id", connID).Logger()

	r, ok := m.lock(roomID)
	if !ok {
		return m.ignore(log, ErrRoomNotFound)
	}
	defer r.mu.Unlock()

	if connID != r.hostConnID {
		return m.ignore(log, ErrUnauthorized)
	}

	r.gameStarted = true
	r.calledNumbers = []int{}
	r.winner = nil
	r.roundID = ulid.Make().String()
	r.roundStartedAt = m.now()
	r.version++
	metrics.RoundsStarted.Inc()

	m.hub.Broadcast(r.ID, shared.ActionRoomState, r.snapshot())

	log.Info().Str("round_id", r.roundID).Int("players", len(r.players)).Msg("round started")
	return nil
}

// CallNumber appends number to the room's call ledger. The range of number
// is the caller's concern; only duplicates are refused.
func (m *Manager) CallNumber(roomID, connID string, number int) error {
	log := m.logger.With().Str("room_id", roomID).Str("conn_id", connID).Int("number", number).Logger()

	r, ok := m.lock(roomID)
	if !ok {
		return m.ignore(log, ErrRoomNotFound)
	}
	defer r.mu.Unlock()

	if connID != r.hostConnID {
		return m.ignore(log, ErrUnauthorized)
	}
	if r.hasCalled(number) {
		m.hub.Send(connID, shared.ActionNumberAlreadyCalled, shared.NumberAlreadyCalled{Number: number})
		return m.ignore(log, ErrNumberAlreadyCalled)
	}

	r.calledNumbers = append(r.calledNumbers, number)
	r.version++
	metrics.NumbersCalled.Inc()

	m.hub.Broadcast(r.ID, shared.ActionRoomState, r.snapshot())

	log.Debug().Int("called", len(r.calledNumbers)).Msg("number called")
	return nil
}

func (m *Manager) ClaimBingo(in ClaimInput) error {
	log := m.logger.With().Str("room_id", in.RoomID).Str("conn_id", in.ConnID).Logger()

	r, ok := m.lock(in.RoomID)
	if !ok {
		return m.ignore(log, ErrRoomNotFound)
	}
	defer r.mu.Unlock()

	if !r.gameStarted || r.winner != nil {
		return m.ignore(log, ErrGameNotStarted)
	}
	i := r.indexOf(in.ConnID)
	if i < 0 {
		return m.ignore(log, ErrNotInRoom)
	}
	claimant := r.players[i]

	if err := game.ValidateCard(in.Card); err != nil {
		log.Debug().Err(err).Msg("claimed card is malformed")
		return m.invalidClaim(log, in.ConnID)
	}
	if !game.IsWinningCard(in.Card, r.calledNumbers) {
		return m.invalidClaim(log, in.ConnID)
	}
	if in.DisplayName != "" && SanitizeName(in.DisplayName) != claimant.Name {
		log.Warn().Str("claimed_as", in.DisplayName).Str("name", claimant.Name).Msg("claim name differs from roster")
	}

	winner := claimant.Name
	r.winner = &winner
	r.gameStarted = false
	r.version++
	metrics.Claims.WithLabelValues("valid").Inc()

	m.hub.Broadcast(r.ID, shared.ActionRoomState, r.snapshot())
	m.hub.Broadcast(r.ID, shared.ActionRoundEnded, shared.RoundEnded{
		WinnerName: winner,
		Card:       in.Card.Rows(),
		RoundID:    r.roundID,
	})

	m.archiveRound(RoundResult{
		RoundID:       r.roundID,
		RoomID:        r.ID,
		Winner:        winner,
		Card:          in.Card.Rows(),
		CalledNumbers: append([]int(nil), r.calledNumbers...),
		Players:       len(r.players),
		StartedAt:     r.roundStartedAt,
		FinishedAt:    m.now(),
	})

	log.Info().
		Str("winner", winner).
		Strs("patterns", game.MatchedPatterns(in.Card, r.calledNumbers)).
		Int("called", len(r.calledNumbers)).
		Msg("round won")
	return nil
}

// Leave removes a player. The last player out destroys the room; the
// delete happens under the room lock so a concurrent join sees the room
// as gone rather than re-populating it.
func (m *Manager) Leave(roomID, connID string) error {
	log := m.logger.With().Str("room_id", roomID).Str("conn_id", connID).Logger()

	r, ok := m.lock(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	defer r.mu.Unlock()

	left, ok := r.removePlayer(connID)
	if !ok {
		return ErrNotInRoom
	}
	m.hub.Unsubscribe(r.ID, connID)

	if len(r.players) == 0 {
		r.closed = true
		r.hostConnID = ""
		m.store.DeleteRoom(r.ID)
		metrics.RoomsActive.Dec()
		log.Info().Msg("last player left, room closed")
		return nil
	}

	if left.IsHost || connID == r.hostConnID {
		r.promoteEarliest()
		log.Info().Str("new_host", r.hostConnID).Msg("host handed off")
	}
	r.version++

	m.hub.Broadcast(r.ID, shared.ActionPlayerLeft, shared.PlayerLeft{ConnectionID: connID})
	m.hub.Broadcast(r.ID, shared.ActionRoomState, r.snapshot())

	log.Info().Str("name", left.Name).Int("remaining", len(r.players)).Msg("player left")
	return nil
}

func (m *Manager) reject(log zerolog.Logger, connID string, err RoomError) error {
	m.hub.Send(connID, shared.ActionRoomError, shared.RoomError{Message: err.Message()})
	return m.ignore(log, err)
}

func (m *Manager) invalidClaim(log zerolog.Logger, connID string) error {
	metrics.Claims.WithLabelValues("invalid").Inc()
	m.hub.Send(connID, shared.ActionBingoInvalid, shared.BingoInvalid{})
	return m.ignore(log, ErrInvalidClaim)
}

func (m *Manager) ignore(log zerolog.Logger, err RoomError) error {
	metrics.Rejections.WithLabelValues(err.Reason()).Inc()
	log.Debug().Str("reason", err.Reason()).Msg("intent rejected")
	return err
}

func (m *Manager) archiveRound(res RoundResult) {
	if m.archive == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.archiveTimeout)
		defer cancel()
		if err := m.archive.RecordRound(ctx, res); err != nil {
			metrics.ArchiveErrors.Inc()
			level := zerolog.WarnLevel
			if errors.Is(err, context.DeadlineExceeded) {
				level = zerolog.ErrorLevel
			}
			m.logger.WithLevel(level).Err(err).Str("round_id", res.RoundID).Msg("archive round")
		}
	}()
}
