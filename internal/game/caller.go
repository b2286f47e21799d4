package game

import "math/rand"

// NextNumber picks a uniformly random number in [1, MaxNumber] that is not in
// called. It returns false once every number has been called.
func NextNumber(r *rand.Rand, called []int) (int, bool) {
	seen := NewCalled(called)
	available := make([]int, 0, MaxNumber)
	for n := 1; n <= MaxNumber; n++ {
		if _, ok := seen[n]; !ok {
			available = append(available, n)
		}
	}
	if len(available) == 0 {
		return 0, false
	}
	return available[r.Intn(len(available))], true
}
