package game

import "math/rand"

// SimulationResult is the outcome of an offline round.
type SimulationResult struct {
	// Calls in the order they were made. The last call completed a pattern.
	Calls []int
	// Winners are indexes into the simulated cards; several cards can win on
	// the same call.
	Winners  []int
	Patterns map[int][]string
}

// Simulate calls random numbers until at least one card wins.
func Simulate(r *rand.Rand, cards []Card) SimulationResult {
	res := SimulationResult{Patterns: map[int][]string{}}
	if len(cards) == 0 {
		return res
	}
	for {
		n, ok := NextNumber(r, res.Calls)
		if !ok {
			return res
		}
		res.Calls = append(res.Calls, n)
		for i, c := range cards {
			if IsWinningCard(c, res.Calls) {
				res.Winners = append(res.Winners, i)
				res.Patterns[i] = MatchedPatterns(c, res.Calls)
			}
		}
		if len(res.Winners) > 0 {
			return res
		}
	}
}
