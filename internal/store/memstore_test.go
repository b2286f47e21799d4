package store

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateThenGet(t *testing.T) {
	s := NewMemoryStore(6)

	r := s.CreateRoom()
	require.Len(t, r.ID, 6)

	got, ok := s.GetRoom(r.ID)
	require.True(t, ok)
	assert.Same(t, r, got)

	snap := got.Snapshot()
	assert.Empty(t, snap.Players)
	assert.False(t, snap.GameStarted)
	assert.Nil(t, snap.Winner)
	assert.Equal(t, "lobby", snap.Status)
}

func TestDeleteRoom(t *testing.T) {
	s := NewMemoryStore(6)
	r := s.CreateRoom()

	s.DeleteRoom(r.ID)

	_, ok := s.GetRoom(r.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestUnknownRoom(t *testing.T) {
	_, ok := NewMemoryStore(6).GetRoom("NOPE")
	assert.False(t, ok)
}

func TestCreateSkipsLiveCodes(t *testing.T) {
	s := NewMemoryStore(4)
	codes := []string{"AAAA", "AAAA", "AAAA", "BBBB"}
	s.newCode = func(int) string {
		c := codes[0]
		codes = codes[1:]
		return c
	}

	first := s.CreateRoom()
	second := s.CreateRoom()

	assert.Equal(t, "AAAA", first.ID)
	assert.Equal(t, "BBBB", second.ID)
	assert.Equal(t, 2, s.Len())
}

func TestRandCodeAlphabet(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := randCode(8)
		require.Len(t, code, 8)
		for _, ch := range code {
			require.True(t, strings.ContainsRune(codeAlphabet, ch), "unexpected %q", ch)
		}
	}
}

func TestConcurrentCreateIsUnique(t *testing.T) {
	s := NewMemoryStore(4)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[string]bool{}
	)
	for i := 0; i < 500; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := s.CreateRoom()
			mu.Lock()
			defer mu.Unlock()
			ids[r.ID] = true
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 500)
	assert.Equal(t, 500, s.Len())
}
