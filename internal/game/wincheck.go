package game

// Pattern is a named set of cells that wins once every one of them has
// been called.
type Pattern struct {
	Name  string
	Cells []Cell
}

// Patterns lists every recognised winning shape: 5 rows, 5 columns, both
// diagonals, the four corners, the center diamond and the four 2x2 corner
// stamps.
var Patterns = buildPatterns()

func buildPatterns() []Pattern {
	var ps []Pattern
	for row := 0; row < Size; row++ {
		p := Pattern{Name: "row-" + string(rune('1'+row))}
		for col := 0; col < Size; col++ {
			p.Cells = append(p.Cells, Cell{Col: col, Row: row})
		}
		ps = append(ps, p)
	}
	for col := 0; col < Size; col++ {
		p := Pattern{Name: "column-" + string("BINGO"[col])}
		for row := 0; row < Size; row++ {
			p.Cells = append(p.Cells, Cell{Col: col, Row: row})
		}
		ps = append(ps, p)
	}

	down := Pattern{Name: "diagonal-down"}
	up := Pattern{Name: "diagonal-up"}
	for i := 0; i < Size; i++ {
		down.Cells = append(down.Cells, Cell{Col: i, Row: i})
		up.Cells = append(up.Cells, Cell{Col: Size - 1 - i, Row: i})
	}
	ps = append(ps, down, up)

	last := Size - 1
	ps = append(ps, Pattern{Name: "corners", Cells: []Cell{
		{0, 0}, {last, 0}, {0, last}, {last, last},
	}})

	mid := Size / 2
	ps = append(ps, Pattern{Name: "diamond", Cells: []Cell{
		{mid, mid - 1}, {mid - 1, mid}, {mid + 1, mid}, {mid, mid + 1},
	}})

	stamps := []struct {
		name     string
		col, row int
	}{
		{"stamp-top-left", 0, 0},
		{"stamp-top-right", last - 1, 0},
		{"stamp-bottom-left", 0, last - 1},
		{"stamp-bottom-right", last - 1, last - 1},
	}
	for _, s := range stamps {
		ps = append(ps, Pattern{Name: s.name, Cells: []Cell{
			{s.col, s.row}, {s.col + 1, s.row}, {s.col, s.row + 1}, {s.col + 1, s.row + 1},
		}})
	}
	return ps
}

// Called is a lookup set over the numbers called so far.
type Called map[int]struct{}

func NewCalled(numbers []int) Called {
	set := make(Called, len(numbers))
	for _, n := range numbers {
		set[n] = struct{}{}
	}
	return set
}

func (c Called) Has(v int) bool {
	if v == FreeSpace {
		return true
	}
	_, ok := c[v]
	return ok
}

func (p Pattern) complete(card Card, called Called) bool {
	for _, cell := range p.Cells {
		if !called.Has(card.At(cell)) {
			return false
		}
	}
	return true
}

// IsWinningCard reports whether any pattern on the card is fully covered by
// the called numbers.
func IsWinningCard(card Card, calledNumbers []int) bool {
	called := NewCalled(calledNumbers)
	for _, p := range Patterns {
		if p.complete(card, called) {
			return true
		}
	}
	return false
}

// MatchedPatterns returns the names of every complete pattern.
func MatchedPatterns(card Card, calledNumbers []int) []string {
	called := NewCalled(calledNumbers)
	var out []string
	for _, p := range Patterns {
		if p.complete(card, called) {
			out = append(out, p.Name)
		}
	}
	return out
}
