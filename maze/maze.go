/*
Package maze provides the grid model of an editable maze.

A Maze is a rectangular grid of Cell values, each holding four wall flags, plus a
start and a goal position. Every mutator keeps the flags of a shared edge equal on
both adjacent cells, so movement checks only need to look at the current cell.

The package also provides neighbour lookup, move validation and an ASCII
visualization of the maze.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxDimension bounds the width and the height of a maze.
	MaxDimension = 100
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("position is out of the maze")
	ErrInvalidSide       = errors.New("invalid side")
	ErrInconsistentWalls = errors.New("shared walls do not match")
)

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	X int // Column index of the cell
	Y int // Row index of the cell
}

func (p CellPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Maze represents a rectangular maze with a start and a goal cell.
type Maze struct {
	Width  int          // Width of the maze (number of columns)
	Height int          // Height of the maze (number of rows)
	Grid   [][]Cell     // Row-major grid of cells, indexed [y][x]
	Start  CellPosition // Where the player enters the maze
	Goal   CellPosition // Where the player wins
}

// NewBlank creates a fully walled maze with the start in the top-left corner and
// the goal in the bottom-right corner.
func NewBlank(width, height int) (*Maze, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = make([]Cell, width)
		for x := range grid[y] {
			grid[y][x] = closedCell()
		}
	}

	return &Maze{
		Width:  width,
		Height: height,
		Grid:   grid,
		Start:  CellPosition{X: 0, Y: 0},
		Goal:   CellPosition{X: width - 1, Y: height - 1},
	}, nil
}

func checkDimensions(width, height int) error {
	if min(width, height) <= 0 || max(width, height) > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// InBound reports whether (x, y) lies inside the grid.
func (m *Maze) InBound(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Cell returns the cell at (x, y).
func (m *Maze) Cell(x, y int) (Cell, error) {
	if !m.InBound(x, y) {
		return Cell{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return m.Grid[y][x], nil
}

// Neighbor returns the position across the given side and whether it is inside the grid.
func (m *Maze) Neighbor(pos CellPosition, side Side) (CellPosition, bool) {
	delta, ok := Directions[side]
	if !ok {
		return pos, false
	}
	next := CellPosition{X: pos.X + delta.X, Y: pos.Y + delta.Y}
	return next, m.InBound(next.X, next.Y)
}

// SetWall sets the wall on the given side of (x, y) and mirrors it onto the
// neighbouring cell when there is one.
func (m *Maze) SetWall(x, y int, side Side, present bool) error {
	if !m.InBound(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	if !side.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSide, int(side))
	}

	m.setWall(x, y, side, present)
	return nil
}

// setWall assumes (x, y) is inside the grid.
func (m *Maze) setWall(x, y int, side Side, present bool) {
	m.Grid[y][x].setWall(side, present)

	if next, ok := m.Neighbor(CellPosition{X: x, Y: y}, side); ok {
		m.Grid[next.Y][next.X].setWall(side.Opposite(), present)
	}
}

// MoveStart relocates the start marker. Walls are not consulted.
func (m *Maze) MoveStart(x, y int) error {
	if !m.InBound(x, y) {
		return fmt.Errorf("%w: start (%d,%d)", ErrOutOfBounds, x, y)
	}
	m.Start = CellPosition{X: x, Y: y}
	return nil
}

// MoveGoal relocates the goal marker. Walls are not consulted.
func (m *Maze) MoveGoal(x, y int) error {
	if !m.InBound(x, y) {
		return fmt.Errorf("%w: goal (%d,%d)", ErrOutOfBounds, x, y)
	}
	m.Goal = CellPosition{X: x, Y: y}
	return nil
}

// CanMove checks whether a step from pos across side is allowed and returns the
// destination. Thanks to mirroring only the current cell's flag is checked.
func (m *Maze) CanMove(pos CellPosition, side Side) (CellPosition, bool) {
	if !m.InBound(pos.X, pos.Y) {
		return pos, false
	}
	if m.Grid[pos.Y][pos.X].HasWall(side) {
		return pos, false
	}
	next, ok := m.Neighbor(pos, side)
	if !ok {
		return pos, false
	}
	return next, true
}

// Validate checks every invariant of the maze.
func (m *Maze) Validate() error {
	if err := checkDimensions(m.Width, m.Height); err != nil {
		return err
	}
	if len(m.Grid) != m.Height {
		return fmt.Errorf("%w: %d rows for height %d", ErrInvalidDimensions, len(m.Grid), m.Height)
	}
	for y, row := range m.Grid {
		if len(row) != m.Width {
			return fmt.Errorf("%w: row %d has %d cells for width %d", ErrInvalidDimensions, y, len(row), m.Width)
		}
	}
	if !m.InBound(m.Start.X, m.Start.Y) {
		return fmt.Errorf("%w: start %s", ErrOutOfBounds, m.Start)
	}
	if !m.InBound(m.Goal.X, m.Goal.Y) {
		return fmt.Errorf("%w: goal %s", ErrOutOfBounds, m.Goal)
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cell := m.Grid[y][x]
			if x+1 < m.Width && cell.Right != m.Grid[y][x+1].Left {
				return fmt.Errorf("%w: between (%d,%d) and (%d,%d)", ErrInconsistentWalls, x, y, x+1, y)
			}
			if y+1 < m.Height && cell.Bottom != m.Grid[y+1][x].Top {
				return fmt.Errorf("%w: between (%d,%d) and (%d,%d)", ErrInconsistentWalls, x, y, x, y+1)
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the maze.
func (m *Maze) Clone() *Maze {
	grid := make([][]Cell, len(m.Grid))
	for y := range m.Grid {
		grid[y] = make([]Cell, len(m.Grid[y]))
		copy(grid[y], m.Grid[y])
	}

	return &Maze{
		Width:  m.Width,
		Height: m.Height,
		Grid:   grid,
		Start:  m.Start,
		Goal:   m.Goal,
	}
}

// Equal compares dimensions, markers and every wall flag.
func (m *Maze) Equal(o *Maze) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Width != o.Width || m.Height != o.Height || m.Start != o.Start || m.Goal != o.Goal {
		return false
	}
	if len(m.Grid) != len(o.Grid) {
		return false
	}
	for y := range m.Grid {
		if len(m.Grid[y]) != len(o.Grid[y]) {
			return false
		}
		for x := range m.Grid[y] {
			if m.Grid[y][x] != o.Grid[y][x] {
				return false
			}
		}
	}
	return true
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for x := 0; x < m.Width; x++ {
		if m.Grid[0][x].Top {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for y := 0; y < m.Height; y++ {
		// Cell rows
		if m.Grid[y][0].Left {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for x := 0; x < m.Width; x++ {
			cell := m.Grid[y][x]

			switch (CellPosition{X: x, Y: y}) {
			case m.Start:
				output.WriteString(" S ")
			case m.Goal:
				output.WriteString(" G ")
			default:
				output.WriteString("   ")
			}

			if cell.Right {
				output.WriteString("|")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for x := 0; x < m.Width; x++ {
			if m.Grid[y][x].Bottom {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
