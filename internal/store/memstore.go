package store

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"bingo-hall/internal/room"
)

// codeAlphabet leaves out characters that are easy to misread (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// MemoryStore is the process-wide room registry.
type MemoryStore struct {
	mu      sync.RWMutex
	rooms   map[string]*room.Room
	codeLen int
	newCode func(n int) string
	now     func() time.Time
}

func NewMemoryStore(codeLen int) *MemoryStore {
	if codeLen <= 0 {
		codeLen = 6
	}
	return &MemoryStore{
		rooms:   map[string]*room.Room{},
		codeLen: codeLen,
		newCode: randCode,
		now:     time.Now,
	}
}

// CreateRoom registers an empty room under a code no live room uses.
func (m *MemoryStore) CreateRoom() *room.Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.newCode(m.codeLen)
	for {
		if _, taken := m.rooms[code]; !taken {
			break
		}
		code = m.newCode(m.codeLen)
	}

	r := room.NewRoom(code, m.now())
	m.rooms[code] = r
	return r
}

func (m *MemoryStore) GetRoom(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

func randCode(n int) string {
	size := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, size)
		if err != nil {
			panic(err)
		}
		b[i] = codeAlphabet[idx.Int64()]
	}
	return string(b)
}
