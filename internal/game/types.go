package game

import (
	"errors"
	"fmt"
)

const (
	// Size is the number of rows and columns on a card.
	Size = 5
	// ColumnSpan is how many numbers each B/I/N/G/O column draws from.
	ColumnSpan = 15
	// MaxNumber is the highest number that can be called.
	MaxNumber = Size * ColumnSpan
	// FreeSpace marks the center cell as pre-called.
	FreeSpace = 0
)

var (
	ErrBadShape      = errors.New("card must have 5 columns of 5 numbers")
	ErrOutOfRange    = errors.New("number outside its column range")
	ErrDuplicate     = errors.New("number appears twice on card")
	ErrMisplacedFree = errors.New("free space is only allowed in the center")
)

// Card is indexed column first: Card[col][row]. This matches the shape
// clients send over the wire.
type Card [Size][Size]int

// Cell addresses one square of a card.
type Cell struct {
	Col int
	Row int
}

var center = Cell{Col: Size / 2, Row: Size / 2}

func (c Card) At(cell Cell) int {
	return c[cell.Col][cell.Row]
}

// Rows returns the wire form of the card.
func (c Card) Rows() [][]int {
	out := make([][]int, Size)
	for col := range c {
		out[col] = append([]int(nil), c[col][:]...)
	}
	return out
}

// ColumnRange returns the inclusive bounds for a column.
func ColumnRange(col int) (lo, hi int) {
	lo = col*ColumnSpan + 1
	return lo, lo + ColumnSpan - 1
}

// ParseCard converts the wire representation into a Card. Any shape other
// than exactly 5 columns of 5 numbers is rejected.
func ParseCard(cols [][]int) (Card, error) {
	var c Card
	if len(cols) != Size {
		return c, ErrBadShape
	}
	for i, col := range cols {
		if len(col) != Size {
			return c, ErrBadShape
		}
		copy(c[i][:], col)
	}
	return c, nil
}

// ValidateCard checks that every number sits inside its column range, that
// nothing repeats, and that a free space is only used in the center.
func ValidateCard(c Card) error {
	seen := make(map[int]struct{}, Size*Size)
	for col := 0; col < Size; col++ {
		lo, hi := ColumnRange(col)
		for row := 0; row < Size; row++ {
			v := c[col][row]
			if v == FreeSpace {
				if (Cell{Col: col, Row: row}) != center {
					return ErrMisplacedFree
				}
				continue
			}
			if v < lo || v > hi {
				return fmt.Errorf("%w: %d in column %d", ErrOutOfRange, v, col)
			}
			if _, dup := seen[v]; dup {
				return fmt.Errorf("%w: %d", ErrDuplicate, v)
			}
			seen[v] = struct{}{}
		}
	}
	return nil
}
