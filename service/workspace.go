package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"
	"time"

	"github.com/beka-birhanu/mazeshare/editor"
	"github.com/beka-birhanu/mazeshare/encoder"
	"github.com/beka-birhanu/mazeshare/maze"
	"github.com/beka-birhanu/mazeshare/play"
	"github.com/beka-birhanu/mazeshare/render"
	"github.com/beka-birhanu/mazeshare/service/i"
)

// Workspace errors.
var (
	ErrWrongMode = errors.New("command not allowed in current mode")
	ErrClosed    = errors.New("workspace is closed")
)

const (
	defaultWidth  = 10
	defaultHeight = 10
)

// WorkspaceConfig holds the settings of a new workspace.
type WorkspaceConfig struct {
	Width      int              // Width of the initial blank maze
	Height     int              // Height of the initial blank maze
	Layout     render.Layout    // Geometry used for pointer input and PNG output
	EdgeMargin int              // Pixels around a cell border that select its wall
	Clock      func() time.Time // Defaults to time.Now
}

// Workspace owns the state of one editing session: mode, maze, editor and player.
// All commands are serialized by its lock.
type Workspace struct {
	mode   render.Mode
	maze   *maze.Maze
	editor *editor.Editor
	game   *play.Game
	layout render.Layout
	clock  func() time.Time

	version    uint64
	lastActive time.Time
	closed     bool

	pngVersion uint64
	pngData    []byte

	subscribers map[int]chan i.WorkspaceStatus
	nextSubID   int

	sync.RWMutex
}

// NewWorkspace creates a workspace in edit mode holding a blank maze.
func NewWorkspace(c WorkspaceConfig) (*Workspace, error) {
	if c.Width == 0 {
		c.Width = defaultWidth
	}
	if c.Height == 0 {
		c.Height = defaultHeight
	}
	if c.Layout.CellWidth == 0 || c.Layout.CellHeight == 0 {
		c.Layout = render.DefaultLayout()
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}

	m, err := maze.NewBlank(c.Width, c.Height)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		mode:   render.ModeEdit,
		maze:   m,
		layout: c.Layout,
		clock:  c.Clock,
		editor: editor.New(m, editor.Geometry{
			CellWidth:  c.Layout.CellWidth,
			CellHeight: c.Layout.CellHeight,
			EdgeMargin: c.EdgeMargin,
		}),
		lastActive:  c.Clock(),
		subscribers: make(map[int]chan i.WorkspaceStatus),
	}, nil
}

func (w *Workspace) PointerDown(p image.Point, b editor.Button) (bool, error) {
	w.Lock()
	defer w.Unlock()
	if err := w.begin(render.ModeEdit); err != nil {
		return false, err
	}

	before := w.editor.State()
	changed := w.editor.PointerDown(p, b)
	if changed || w.editor.State() != before {
		w.markDirty()
	}
	return changed, nil
}

func (w *Workspace) PointerMove(p image.Point) (bool, error) {
	w.Lock()
	defer w.Unlock()
	if err := w.begin(render.ModeEdit); err != nil {
		return false, err
	}

	changed := w.editor.PointerMove(p)
	if changed {
		w.markDirty()
	}
	return changed, nil
}

// PointerUp ends any gesture. It is accepted in every mode.
func (w *Workspace) PointerUp() {
	w.endGesture()
}

// PointerLeave ends any gesture. It is accepted in every mode.
func (w *Workspace) PointerLeave() {
	w.endGesture()
}

func (w *Workspace) endGesture() {
	w.Lock()
	defer w.Unlock()
	if w.closed {
		return
	}
	w.lastActive = w.clock()
	if w.editor.State() == editor.Idle {
		return
	}
	w.editor.Cancel()
	w.markDirty()
}

func (w *Workspace) KeyPress(key string) (play.Outcome, error) {
	side, err := play.ParseKey(key)
	if err != nil {
		return play.Ignored, err
	}

	w.Lock()
	defer w.Unlock()
	if err := w.begin(render.ModePlay); err != nil {
		return play.Ignored, err
	}

	outcome := w.game.Press(side)
	if outcome.Changed() {
		w.markDirty()
	}
	return outcome, nil
}

// SetMode switches between edit and play. Entering play places a fresh player on
// the start cell; returning to edit discards it.
func (w *Workspace) SetMode(mode render.Mode) {
	w.Lock()
	defer w.Unlock()
	w.setMode(mode)
}

func (w *Workspace) ToggleMode() render.Mode {
	w.Lock()
	defer w.Unlock()
	if w.mode == render.ModeEdit {
		w.setMode(render.ModePlay)
	} else {
		w.setMode(render.ModeEdit)
	}
	return w.mode
}

func (w *Workspace) setMode(mode render.Mode) {
	if w.closed {
		return
	}
	w.lastActive = w.clock()
	if mode == w.mode {
		return
	}

	w.editor.Cancel()
	w.mode = mode
	if mode == render.ModePlay {
		w.game = play.New(w.maze, w.clock)
	} else {
		w.game = nil
	}
	w.markDirty()
}

func (w *Workspace) Export() (string, error) {
	w.Lock()
	defer w.Unlock()
	if err := w.begin(render.ModeEdit); err != nil {
		return "", err
	}
	return encoder.Encode(w.maze), nil
}

func (w *Workspace) Import(token string) error {
	w.Lock()
	defer w.Unlock()
	if err := w.begin(render.ModeEdit); err != nil {
		return err
	}

	m, err := encoder.Decode(token)
	if err != nil {
		return err
	}
	w.install(m)
	return nil
}

func (w *Workspace) Reset(width, height int) error {
	w.Lock()
	defer w.Unlock()
	if err := w.begin(render.ModeEdit); err != nil {
		return err
	}

	m, err := maze.NewBlank(width, height)
	if err != nil {
		return err
	}
	w.install(m)
	return nil
}

func (w *Workspace) install(m *maze.Maze) {
	w.maze = m
	w.editor.SetMaze(m)
	w.markDirty()
}

func (w *Workspace) Status() i.WorkspaceStatus {
	w.RLock()
	defer w.RUnlock()
	return w.status()
}

func (w *Workspace) Version() uint64 {
	w.RLock()
	defer w.RUnlock()
	return w.version
}

func (w *Workspace) Mode() render.Mode {
	w.RLock()
	defer w.RUnlock()
	return w.mode
}

func (w *Workspace) LastActive() time.Time {
	w.RLock()
	defer w.RUnlock()
	return w.lastActive
}

// Watched reports whether any subscription is live.
func (w *Workspace) Watched() bool {
	w.RLock()
	defer w.RUnlock()
	return len(w.subscribers) > 0
}

// Draw paints the current scene with layout l onto dst.
func (w *Workspace) Draw(dst draw.Image, l render.Layout) {
	w.RLock()
	defer w.RUnlock()
	l.Draw(dst, w.scene())
}

// Size returns the surface size of the current maze under layout l.
func (w *Workspace) Size(l render.Layout) image.Point {
	w.RLock()
	defer w.RUnlock()
	return l.Size(w.maze)
}

// RenderPNG encodes the scene once per version.
func (w *Workspace) RenderPNG() ([]byte, error) {
	w.Lock()
	defer w.Unlock()
	if w.pngData != nil && w.pngVersion == w.version {
		return w.pngData, nil
	}

	var buf bytes.Buffer
	if err := w.layout.EncodePNG(&buf, w.scene()); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	w.pngData = buf.Bytes()
	w.pngVersion = w.version
	return w.pngData, nil
}

// Subscribe returns a channel that receives the status after every change.
// A slow reader only sees the latest status. The channel is closed by cancel
// or when the workspace is closed.
func (w *Workspace) Subscribe() (<-chan i.WorkspaceStatus, func()) {
	w.Lock()
	defer w.Unlock()

	ch := make(chan i.WorkspaceStatus, 1)
	if w.closed {
		close(ch)
		return ch, func() {}
	}

	id := w.nextSubID
	w.nextSubID++
	w.subscribers[id] = ch
	ch <- w.status()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			w.Lock()
			defer w.Unlock()
			if sub, ok := w.subscribers[id]; ok {
				delete(w.subscribers, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Close ends every subscription. Later commands fail with ErrClosed.
func (w *Workspace) Close() {
	w.Lock()
	defer w.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	for id, ch := range w.subscribers {
		close(ch)
		delete(w.subscribers, id)
	}
}

// begin checks the workspace can run a command in mode and records activity.
func (w *Workspace) begin(mode render.Mode) error {
	if w.closed {
		return ErrClosed
	}
	w.lastActive = w.clock()
	if w.mode != mode {
		return fmt.Errorf("%w: %s", ErrWrongMode, w.mode)
	}
	return nil
}

// markDirty bumps the version and pushes the new status to subscribers.
func (w *Workspace) markDirty() {
	w.version++
	status := w.status()
	for _, ch := range w.subscribers {
		select {
		case ch <- status:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- status
		}
	}
}

func (w *Workspace) scene() render.Scene {
	s := render.Scene{Maze: w.maze, Mode: w.mode}
	if w.game != nil {
		s.Player = w.game.Position()
	}
	return s
}

func (w *Workspace) status() i.WorkspaceStatus {
	s := i.WorkspaceStatus{
		Version:     w.version,
		Mode:        w.mode.String(),
		Width:       w.maze.Width,
		Height:      w.maze.Height,
		Start:       i.Position{X: w.maze.Start.X, Y: w.maze.Start.Y},
		Goal:        i.Position{X: w.maze.Goal.X, Y: w.maze.Goal.Y},
		EditorState: w.editor.State().String(),
	}
	if w.game != nil {
		pos := w.game.Position()
		s.Player = &i.PlayerStatus{
			Position:  i.Position{X: pos.X, Y: pos.Y},
			Steps:     w.game.Steps(),
			Elapsed:   w.game.Elapsed(),
			Completed: w.game.Completed(),
		}
	}
	return s
}

func (w *Workspace) touch() {
	w.Lock()
	defer w.Unlock()
	w.lastActive = w.clock()
}
