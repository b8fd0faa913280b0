// Package play moves a player through a maze from the keyboard.
package play

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/mazeshare/maze"
)

var ErrUnknownKey = errors.New("unknown key")

// Outcome describes what a key press did.
type Outcome int

const (
	Moved Outcome = iota
	Finished
	Blocked
	OutOfBounds
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Finished:
		return "finished"
	case Blocked:
		return "blocked"
	case OutOfBounds:
		return "outOfBounds"
	case Ignored:
		return "ignored"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Changed reports whether the outcome moved the player.
func (o Outcome) Changed() bool {
	return o == Moved || o == Finished
}

var keySides = map[string]maze.Side{
	"ArrowUp":    maze.Top,
	"ArrowRight": maze.Right,
	"ArrowDown":  maze.Bottom,
	"ArrowLeft":  maze.Left,
}

// ParseKey maps an arrow key name to the side it moves through.
func ParseKey(key string) (maze.Side, error) {
	side, ok := keySides[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return side, nil
}

// Game is the state of one run through a maze.
type Game struct {
	maze      *maze.Maze
	position  maze.CellPosition
	steps     int
	startTime *time.Time
	endTime   *time.Time
	completed bool
	clock     func() time.Time
}

// New places a player on the start cell. A nil clock uses time.Now.
func New(m *maze.Maze, clock func() time.Time) *Game {
	if clock == nil {
		clock = time.Now
	}
	return &Game{maze: m, position: m.Start, clock: clock}
}

func (g *Game) Position() maze.CellPosition { return g.position }
func (g *Game) Steps() int                  { return g.steps }
func (g *Game) Completed() bool             { return g.completed }

// StartTime is nil until the first accepted move.
func (g *Game) StartTime() *time.Time { return g.startTime }

// EndTime is nil until the goal is reached.
func (g *Game) EndTime() *time.Time { return g.endTime }

// Press tries to move one cell through side.
func (g *Game) Press(side maze.Side) Outcome {
	if g.completed {
		return Ignored
	}
	if !side.Valid() {
		return Ignored
	}

	next, ok := g.maze.CanMove(g.position, side)
	if !ok {
		if g.maze.Grid[g.position.Y][g.position.X].HasWall(side) {
			return Blocked
		}
		return OutOfBounds
	}

	now := g.clock()
	if g.startTime == nil {
		g.startTime = &now
	}
	g.position = next
	g.steps++

	if next == g.maze.Goal {
		g.completed = true
		g.endTime = &now
		return Finished
	}
	return Moved
}

// Elapsed returns whole seconds since the first move, frozen once the goal is reached.
func (g *Game) Elapsed() int {
	if g.startTime == nil {
		return 0
	}
	end := g.clock()
	if g.endTime != nil {
		end = *g.endTime
	}
	return int(end.Sub(*g.startTime) / time.Second)
}
