package i

import (
	"image"

	"github.com/beka-birhanu/mazeshare/editor"
	"github.com/beka-birhanu/mazeshare/play"
	"github.com/beka-birhanu/mazeshare/render"
)

// Position is a cell coordinate as sent to clients.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlayerStatus is the visible state of a run through the maze.
type PlayerStatus struct {
	Position  Position `json:"position"`
	Steps     int      `json:"steps"`
	Elapsed   int      `json:"elapsed"` // whole seconds
	Completed bool     `json:"completed"`
}

// WorkspaceStatus is a snapshot of one editing session.
type WorkspaceStatus struct {
	Version     uint64        `json:"version"`
	Mode        string        `json:"mode"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Start       Position      `json:"start"`
	Goal        Position      `json:"goal"`
	EditorState string        `json:"editorState"`
	Player      *PlayerStatus `json:"player,omitempty"`
}

// Workspace is the state of one editing session driven by explicit commands.
// Every command that changes what is visible bumps the version.
type Workspace interface {
	// PointerDown starts an edit gesture. It reports whether the maze changed.
	PointerDown(p image.Point, b editor.Button) (bool, error)
	// PointerMove continues the current gesture. It reports whether the maze changed.
	PointerMove(p image.Point) (bool, error)
	PointerUp()
	PointerLeave()

	// KeyPress moves the player in play mode.
	KeyPress(key string) (play.Outcome, error)

	SetMode(mode render.Mode)
	ToggleMode() render.Mode

	// Export returns the token of the current maze.
	Export() (string, error)
	// Import replaces the maze with the decoded token. Nothing changes on failure.
	Import(token string) error
	// Reset replaces the maze with a blank one.
	Reset(width, height int) error

	Status() WorkspaceStatus
	// RenderPNG returns the current scene as PNG bytes.
	RenderPNG() ([]byte, error)

	// Subscribe streams a status after every change until cancel is called.
	Subscribe() (<-chan WorkspaceStatus, func())
}
