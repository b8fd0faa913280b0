package maze

// Cell represents a single cell in a maze grid.
// Each flag reports whether a wall blocks movement across that edge.
type Cell struct {
	// Top indicates whether there is a wall on the top side of the cell.
	Top bool
	// Right indicates whether there is a wall on the right side of the cell.
	Right bool
	// Bottom indicates whether there is a wall on the bottom side of the cell.
	Bottom bool
	// Left indicates whether there is a wall on the left side of the cell.
	Left bool
}

// Wall bits used by Mask and CellFromMask.
const (
	TopBit    = 1 << iota // bit0
	RightBit              // bit1
	BottomBit             // bit2
	LeftBit               // bit3

	FullMask = TopBit | RightBit | BottomBit | LeftBit
)

// HasWall returns true if there is a wall on the given side of the cell.
func (c Cell) HasWall(side Side) bool {
	switch side {
	case Top:
		return c.Top
	case Right:
		return c.Right
	case Bottom:
		return c.Bottom
	case Left:
		return c.Left
	default:
		return false
	}
}

// setWall sets the presence of a wall on the given side of the cell.
func (c *Cell) setWall(side Side, present bool) {
	switch side {
	case Top:
		c.Top = present
	case Right:
		c.Right = present
	case Bottom:
		c.Bottom = present
	case Left:
		c.Left = present
	}
}

// IsClosed reports whether all four walls are present.
func (c Cell) IsClosed() bool {
	return c.Top && c.Right && c.Bottom && c.Left
}

// Mask packs the wall flags into a 4-bit mask.
func (c Cell) Mask() int {
	mask := 0
	if c.Top {
		mask |= TopBit
	}
	if c.Right {
		mask |= RightBit
	}
	if c.Bottom {
		mask |= BottomBit
	}
	if c.Left {
		mask |= LeftBit
	}
	return mask
}

// CellFromMask unpacks a 4-bit mask. Bits above bit3 are ignored.
func CellFromMask(mask int) Cell {
	return Cell{
		Top:    mask&TopBit != 0,
		Right:  mask&RightBit != 0,
		Bottom: mask&BottomBit != 0,
		Left:   mask&LeftBit != 0,
	}
}

// closedCell returns a cell with every wall present.
func closedCell() Cell {
	return Cell{Top: true, Right: true, Bottom: true, Left: true}
}
