package maze

import "fmt"

// Side names one edge of a cell.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

var (
	// Sides lists every side in mask bit order.
	Sides = []Side{Top, Right, Bottom, Left}

	// Directions maps a side to the offset of the neighbour across it.
	Directions = map[Side]CellPosition{
		Top:    {X: 0, Y: -1},
		Right:  {X: 1, Y: 0},
		Bottom: {X: 0, Y: 1},
		Left:   {X: -1, Y: 0},
	}
)

// Valid reports whether s is one of the four sides.
func (s Side) Valid() bool {
	return s >= Top && s <= Left
}

// Opposite returns the side facing s on the neighbouring cell.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Right:
		return Left
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return s
	}
}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}
