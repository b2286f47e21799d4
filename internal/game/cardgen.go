package game

import (
	"math/rand"
	"sync"
	"time"
)

// CardGenerator deals fresh cards. It is safe for concurrent use.
type CardGenerator struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewCardGenerator creates a generator. A zero seed picks one from the clock.
func NewCardGenerator(seed int64) *CardGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &CardGenerator{random: rand.New(rand.NewSource(seed))}
}

// Generate returns a card whose column c holds 5 distinct numbers drawn
// without replacement from [15c+1, 15c+15].
func (g *CardGenerator) Generate() Card {
	g.mu.Lock()
	defer g.mu.Unlock()

	var c Card
	for col := 0; col < Size; col++ {
		lo, _ := ColumnRange(col)
		perm := g.random.Perm(ColumnSpan)
		for row := 0; row < Size; row++ {
			c[col][row] = lo + perm[row]
		}
	}
	return c
}
