package editor

import (
	"image"
	"testing"

	"github.com/beka-birhanu/mazeshare/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var browserGeometry = Geometry{CellWidth: 50, CellHeight: 50, EdgeMargin: 12}

func newEditor(t *testing.T, w, h int) (*Editor, *maze.Maze) {
	t.Helper()
	m, err := maze.NewBlank(w, h)
	require.NoError(t, err)
	return New(m, browserGeometry), m
}

func TestEdgeAt(t *testing.T) {
	e, _ := newEditor(t, 3, 3)

	cases := []struct {
		name string
		p    image.Point
		edge Edge
		ok   bool
	}{
		{"left margin", image.Pt(55, 75), Edge{maze.CellPosition{X: 1, Y: 1}, maze.Left}, true},
		{"right margin", image.Pt(95, 75), Edge{maze.CellPosition{X: 1, Y: 1}, maze.Right}, true},
		{"top margin", image.Pt(75, 52), Edge{maze.CellPosition{X: 1, Y: 1}, maze.Top}, true},
		{"bottom margin", image.Pt(75, 98), Edge{maze.CellPosition{X: 1, Y: 1}, maze.Bottom}, true},
		{"left wins in corner", image.Pt(51, 51), Edge{maze.CellPosition{X: 1, Y: 1}, maze.Left}, true},
		{"centre has no edge", image.Pt(75, 75), Edge{}, false},
		{"outer right border", image.Pt(151, 20), Edge{maze.CellPosition{X: 2, Y: 0}, maze.Right}, true},
		{"outer bottom border", image.Pt(20, 155), Edge{maze.CellPosition{X: 0, Y: 2}, maze.Bottom}, true},
		{"far outside", image.Pt(400, 400), Edge{}, false},
		{"negative", image.Pt(-3, 10), Edge{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edge, ok := e.EdgeAt(tc.p)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.edge, edge)
		})
	}
}

func TestPrimaryDragRemovesWalls(t *testing.T) {
	e, m := newEditor(t, 3, 3)

	changed := e.PointerDown(image.Pt(95, 75), ButtonPrimary)
	assert.True(t, changed)
	assert.Equal(t, DraggingWall, e.State())
	assert.True(t, e.RemoveMode())
	assert.False(t, m.Grid[1][1].Right)
	assert.False(t, m.Grid[1][2].Left)

	// Paint across the next cell's bottom edge in the same drag.
	assert.True(t, e.PointerMove(image.Pt(125, 98)))
	assert.False(t, m.Grid[1][2].Bottom)
	assert.False(t, m.Grid[2][2].Top)

	// Repeating the same edge changes nothing.
	assert.False(t, e.PointerMove(image.Pt(125, 98)))

	e.PointerUp()
	assert.Equal(t, Idle, e.State())
	assert.NoError(t, m.Validate())
}

func TestSecondaryDragAddsWalls(t *testing.T) {
	e, m := newEditor(t, 3, 3)
	require.NoError(t, m.SetWall(1, 1, maze.Top, false))

	assert.True(t, e.PointerDown(image.Pt(75, 52), ButtonSecondary))
	assert.False(t, e.RemoveMode())
	assert.True(t, m.Grid[1][1].Top)
	assert.True(t, m.Grid[0][1].Bottom)
}

func TestPressAwayFromEdgesStartsWallDrag(t *testing.T) {
	e, m := newEditor(t, 3, 3)
	before := m.Clone()

	assert.False(t, e.PointerDown(image.Pt(75, 75), ButtonPrimary))
	assert.Equal(t, DraggingWall, e.State())
	assert.True(t, before.Equal(m))

	assert.True(t, e.PointerMove(image.Pt(75, 98)))
	assert.False(t, m.Grid[1][1].Bottom)
}

func TestPressOutsideStaysIdle(t *testing.T) {
	e, _ := newEditor(t, 3, 3)

	assert.False(t, e.PointerDown(image.Pt(500, 500), ButtonPrimary))
	assert.Equal(t, Idle, e.State())
	assert.False(t, e.PointerMove(image.Pt(95, 75)))
}

func TestDragStartMarker(t *testing.T) {
	e, m := newEditor(t, 3, 3)

	assert.False(t, e.PointerDown(image.Pt(25, 25), ButtonPrimary))
	assert.Equal(t, DraggingStart, e.State())

	assert.True(t, e.PointerMove(image.Pt(125, 75)))
	assert.Equal(t, maze.CellPosition{X: 2, Y: 1}, m.Start)

	// Leaving the grid keeps the last cell.
	assert.False(t, e.PointerMove(image.Pt(900, 75)))
	assert.Equal(t, maze.CellPosition{X: 2, Y: 1}, m.Start)

	e.PointerLeave()
	assert.Equal(t, Idle, e.State())

	// Walls are untouched by marker drags.
	assert.True(t, m.Grid[1][2].IsClosed())
}

func TestDragGoalMarker(t *testing.T) {
	e, m := newEditor(t, 3, 3)

	// The goal cell wins over its edge margins.
	assert.False(t, e.PointerDown(image.Pt(101, 101), ButtonSecondary))
	assert.Equal(t, DraggingGoal, e.State())

	assert.True(t, e.PointerMove(image.Pt(25, 125)))
	assert.Equal(t, maze.CellPosition{X: 0, Y: 2}, m.Goal)
	assert.True(t, m.Grid[2][2].IsClosed())
}

func TestStartWinsWhenMarkersOverlap(t *testing.T) {
	e, m := newEditor(t, 2, 2)
	require.NoError(t, m.MoveGoal(0, 0))

	e.PointerDown(image.Pt(25, 25), ButtonPrimary)
	assert.Equal(t, DraggingStart, e.State())
}

func TestSetMazeCancelsDrag(t *testing.T) {
	e, _ := newEditor(t, 3, 3)
	e.PointerDown(image.Pt(75, 75), ButtonPrimary)

	other, err := maze.NewBlank(2, 2)
	require.NoError(t, err)
	e.SetMaze(other)

	assert.Equal(t, Idle, e.State())
	assert.True(t, e.PointerDown(image.Pt(55, 25), ButtonPrimary))
	assert.False(t, other.Grid[0][1].Left)
}

func TestTerminalGeometry(t *testing.T) {
	m, err := maze.NewBlank(2, 2)
	require.NoError(t, err)
	e := New(m, Geometry{CellWidth: 6, CellHeight: 3, EdgeMargin: 1})

	edge, ok := e.EdgeAt(image.Pt(6, 1))
	require.True(t, ok)
	assert.Equal(t, Edge{maze.CellPosition{X: 1, Y: 0}, maze.Left}, edge)

	edge, ok = e.EdgeAt(image.Pt(3, 3))
	require.True(t, ok)
	assert.Equal(t, Edge{maze.CellPosition{X: 0, Y: 1}, maze.Top}, edge)

	edge, ok = e.EdgeAt(image.Pt(12, 4))
	require.True(t, ok)
	assert.Equal(t, Edge{maze.CellPosition{X: 1, Y: 1}, maze.Right}, edge)

	_, ok = e.EdgeAt(image.Pt(3, 1))
	assert.False(t, ok)
}

func TestParseButton(t *testing.T) {
	b, err := ParseButton("secondary")
	require.NoError(t, err)
	assert.Equal(t, ButtonSecondary, b)

	b, err = ParseButton("")
	require.NoError(t, err)
	assert.Equal(t, ButtonPrimary, b)

	_, err = ParseButton("middle")
	assert.Error(t, err)
}
