package game

// CellsToGo returns how many uncalled cells separate the card from its
// closest pattern. Zero means the card already wins.
func CellsToGo(card Card, calledNumbers []int) int {
	called := NewCalled(calledNumbers)
	best := Size * Size
	for _, p := range Patterns {
		missing := 0
		for _, cell := range p.Cells {
			if !called.Has(card.At(cell)) {
				missing++
			}
		}
		if missing < best {
			best = missing
		}
	}
	return best
}
