// Package editor turns pointer input into maze edits.
//
// An Editor is a small state machine: a press picks up the start or goal marker,
// or starts painting walls, and following moves keep applying the same action
// until the pointer is released or leaves the surface.
package editor

import (
	"fmt"
	"image"

	"github.com/beka-birhanu/mazeshare/maze"
)

// State is the current drag state of the editor.
type State int

const (
	Idle State = iota
	DraggingWall
	DraggingStart
	DraggingGoal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingWall:
		return "draggingWall"
	case DraggingStart:
		return "draggingStart"
	case DraggingGoal:
		return "draggingGoal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Button is the pointer button that started a drag.
type Button int

const (
	// ButtonPrimary removes walls and picks up markers.
	ButtonPrimary Button = iota
	// ButtonSecondary adds walls.
	ButtonSecondary
)

// ParseButton converts "primary" or "secondary" into a Button.
func ParseButton(s string) (Button, error) {
	switch s {
	case "primary", "":
		return ButtonPrimary, nil
	case "secondary":
		return ButtonSecondary, nil
	default:
		return ButtonPrimary, fmt.Errorf("unknown button %q", s)
	}
}

// Geometry maps surface pixels onto cells and edges.
type Geometry struct {
	CellWidth  int
	CellHeight int
	EdgeMargin int // A press closer than this to a cell border selects that wall
}

// Edge identifies one wall of one cell.
type Edge struct {
	Cell maze.CellPosition
	Side maze.Side
}

// Editor applies pointer gestures to a maze.
type Editor struct {
	maze       *maze.Maze
	geometry   Geometry
	state      State
	removeMode bool
}

// New creates an idle editor working on m.
func New(m *maze.Maze, g Geometry) *Editor {
	return &Editor{maze: m, geometry: g}
}

// State returns the current drag state.
func (e *Editor) State() State {
	return e.state
}

// RemoveMode reports whether the current wall drag removes walls.
func (e *Editor) RemoveMode() bool {
	return e.removeMode
}

// SetMaze points the editor at another maze and drops any drag in progress.
func (e *Editor) SetMaze(m *maze.Maze) {
	e.maze = m
	e.Cancel()
}

// Cancel returns to Idle without touching the maze.
func (e *Editor) Cancel() {
	e.state = Idle
	e.removeMode = false
}

// PointerDown starts a gesture at p. It reports whether the maze changed.
func (e *Editor) PointerDown(p image.Point, button Button) bool {
	cell, inside := e.CellAt(p)
	if inside {
		switch cell {
		case e.maze.Start:
			e.state = DraggingStart
			return false
		case e.maze.Goal:
			e.state = DraggingGoal
			return false
		}
	}

	edge, onEdge := e.EdgeAt(p)
	if !inside && !onEdge {
		return false
	}

	// A press inside a cell but away from its edges still starts a wall drag.
	e.state = DraggingWall
	e.removeMode = button == ButtonPrimary
	if !onEdge {
		return false
	}
	return e.applyWall(edge)
}

// PointerMove continues the current gesture. It reports whether the maze changed.
func (e *Editor) PointerMove(p image.Point) bool {
	switch e.state {
	case DraggingWall:
		edge, ok := e.EdgeAt(p)
		if !ok {
			return false
		}
		return e.applyWall(edge)

	case DraggingStart:
		cell, ok := e.CellAt(p)
		if !ok || cell == e.maze.Start {
			return false
		}
		return e.maze.MoveStart(cell.X, cell.Y) == nil

	case DraggingGoal:
		cell, ok := e.CellAt(p)
		if !ok || cell == e.maze.Goal {
			return false
		}
		return e.maze.MoveGoal(cell.X, cell.Y) == nil
	}

	return false
}

// PointerUp ends the gesture.
func (e *Editor) PointerUp() {
	e.Cancel()
}

// PointerLeave ends the gesture when the pointer leaves the surface.
func (e *Editor) PointerLeave() {
	e.Cancel()
}

// CellAt returns the cell under p.
func (e *Editor) CellAt(p image.Point) (maze.CellPosition, bool) {
	g := e.geometry
	if p.X < 0 || p.Y < 0 || g.CellWidth <= 0 || g.CellHeight <= 0 {
		return maze.CellPosition{}, false
	}
	cell := maze.CellPosition{X: p.X / g.CellWidth, Y: p.Y / g.CellHeight}
	return cell, e.maze.InBound(cell.X, cell.Y)
}

// EdgeAt returns the wall under p, checking left, right, top and bottom in that order.
// Points just past the right or bottom border select the outer wall of the last
// column or row.
func (e *Editor) EdgeAt(p image.Point) (Edge, bool) {
	g := e.geometry
	cell, ok := e.CellAt(p)
	if !ok {
		return e.outerEdgeAt(p)
	}

	relX := p.X - cell.X*g.CellWidth
	relY := p.Y - cell.Y*g.CellHeight

	var side maze.Side
	switch {
	case relX < g.EdgeMargin:
		side = maze.Left
	case relX > g.CellWidth-g.EdgeMargin:
		side = maze.Right
	case relY < g.EdgeMargin:
		side = maze.Top
	case relY > g.CellHeight-g.EdgeMargin:
		side = maze.Bottom
	default:
		return Edge{}, false
	}

	return Edge{Cell: cell, Side: side}, true
}

func (e *Editor) outerEdgeAt(p image.Point) (Edge, bool) {
	g := e.geometry
	if g.CellWidth <= 0 || g.CellHeight <= 0 || p.X < 0 || p.Y < 0 {
		return Edge{}, false
	}
	gridW := e.maze.Width * g.CellWidth
	gridH := e.maze.Height * g.CellHeight

	switch {
	case p.X >= gridW && p.X < gridW+g.EdgeMargin && p.Y < gridH:
		return Edge{Cell: maze.CellPosition{X: e.maze.Width - 1, Y: p.Y / g.CellHeight}, Side: maze.Right}, true
	case p.Y >= gridH && p.Y < gridH+g.EdgeMargin && p.X < gridW:
		return Edge{Cell: maze.CellPosition{X: p.X / g.CellWidth, Y: e.maze.Height - 1}, Side: maze.Bottom}, true
	}
	return Edge{}, false
}

func (e *Editor) applyWall(edge Edge) bool {
	present := !e.removeMode
	cell, err := e.maze.Cell(edge.Cell.X, edge.Cell.Y)
	if err != nil || cell.HasWall(edge.Side) == present {
		return false
	}
	return e.maze.SetWall(edge.Cell.X, edge.Cell.Y, edge.Side, present) == nil
}
