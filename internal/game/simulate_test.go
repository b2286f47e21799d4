package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateStopsAtFirstWin(t *testing.T) {
	gen := NewCardGenerator(3)
	cards := make([]Card, 8)
	for i := range cards {
		cards[i] = gen.Generate()
	}

	res := Simulate(rand.New(rand.NewSource(3)), cards)

	require.NotEmpty(t, res.Winners)
	require.GreaterOrEqual(t, len(res.Calls), 4)
	before := res.Calls[:len(res.Calls)-1]
	for i, c := range cards {
		assert.False(t, IsWinningCard(c, before), "card %d won before the last call", i)
	}
	for _, w := range res.Winners {
		assert.True(t, IsWinningCard(cards[w], res.Calls))
		assert.NotEmpty(t, res.Patterns[w])
	}
}

func TestSimulateNoCards(t *testing.T) {
	res := Simulate(rand.New(rand.NewSource(1)), nil)
	assert.Empty(t, res.Calls)
	assert.Empty(t, res.Winners)
}
