// Package terminal runs a maze workspace in a terminal with tcell.
//
// Every character cell is one pixel of render.TerminalLayout, so the same
// renderer and editor geometry serve the terminal as the browser.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"time"
	"unicode"

	"github.com/beka-birhanu/mazeshare/editor"
	"github.com/beka-birhanu/mazeshare/play"
	"github.com/beka-birhanu/mazeshare/render"
	"github.com/beka-birhanu/mazeshare/service"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/gdamore/tcell/v2"
)

const (
	// edgeMargin selects the wall line a pointer is on; walls are one cell wide.
	edgeMargin = 1

	editHelp = "p:play  c:copy  v:paste  s:save  o:open  n:new  q:quit  (left drag removes, right drag adds)"
	playHelp = "arrows:move  p:edit  q:quit"
)

// quitRequest asks the event loop to stop.
type quitRequest struct{}

// App is the terminal frontend of one workspace.
type App struct {
	screen   tcell.Screen
	ws       *service.Workspace
	layout   render.Layout
	origin   image.Point
	width    int
	height   int
	mazeFile string
	sound    Sounder
	logger   general_i.Logger
	tick     time.Duration

	canvas       *image.RGBA
	drawn        bool
	drawnVersion uint64
	buttons      tcell.ButtonMask
	notice       string
}

// Config holds the dependencies of an App.
type Config struct {
	Screen       tcell.Screen     // Initialized screen
	Width        int              // Width of new blank mazes
	Height       int              // Height of new blank mazes
	MazeFile     string           // File used by save and open
	Sound        Sounder          // Defaults to Silent
	Logger       general_i.Logger // Receives file and clipboard failures
	TickInterval time.Duration    // Status refresh while playing, defaults to one second
}

// New creates an App holding a blank maze.
func New(c Config) (*App, error) {
	if c.Screen == nil || c.Logger == nil {
		return nil, errors.New("terminal app needs a screen and a logger")
	}
	if c.Sound == nil {
		c.Sound = Silent{}
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}

	layout := render.TerminalLayout()
	ws, err := service.NewWorkspace(service.WorkspaceConfig{
		Width:      c.Width,
		Height:     c.Height,
		Layout:     layout,
		EdgeMargin: edgeMargin,
	})
	if err != nil {
		return nil, err
	}
	initial := ws.Status()

	return &App{
		screen:   c.Screen,
		ws:       ws,
		layout:   layout,
		origin:   image.Pt(1, 1),
		width:    initial.Width,
		height:   initial.Height,
		mazeFile: c.MazeFile,
		sound:    c.Sound,
		logger:   c.Logger,
		tick:     c.TickInterval,
	}, nil
}

// Run handles events until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.screen.SetStyle(tcell.StyleDefault)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.ticker(ctx)

	a.draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.handle(ev) {
			return nil
		}
		a.draw()
	}
}

// ticker wakes the event loop so the play clock advances, and asks it to stop
// once ctx is done.
func (a *App) ticker(ctx context.Context) {
	t := time.NewTicker(a.tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
			return
		case <-t.C:
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}
}

// handle applies one event. It returns false when the app should stop.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.drawn = false
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventClipboard:
		a.importToken(string(ev.Data()), "clipboard")
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitRequest); ok {
			return false
		}
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.move("ArrowUp")
	case tcell.KeyDown:
		a.move("ArrowDown")
	case tcell.KeyLeft:
		a.move("ArrowLeft")
	case tcell.KeyRight:
		a.move("ArrowRight")
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'q':
			return false
		case 'p':
			mode := a.ws.ToggleMode()
			a.notify(fmt.Sprintf("%s mode", mode))
		case 'c':
			a.copyToken()
		case 'v':
			a.pasteToken()
		case 's':
			a.save()
		case 'o':
			a.open()
		case 'n':
			a.reset()
		}
	}
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := image.Pt(x, y).Sub(a.origin)
	buttons := ev.Buttons() & (tcell.ButtonPrimary | tcell.ButtonSecondary)

	prev := a.buttons
	a.buttons = buttons

	switch {
	case prev == tcell.ButtonNone && buttons != tcell.ButtonNone:
		button := editor.ButtonPrimary
		if buttons&tcell.ButtonPrimary == 0 {
			button = editor.ButtonSecondary
		}
		if _, err := a.ws.PointerDown(p, button); err != nil {
			a.notify("Press p to edit the maze")
		}
	case prev != tcell.ButtonNone && buttons != tcell.ButtonNone:
		_, _ = a.ws.PointerMove(p)
	case prev != tcell.ButtonNone:
		a.ws.PointerUp()
	}
}

func (a *App) move(key string) {
	outcome, err := a.ws.KeyPress(key)
	if err != nil {
		a.notify("Press p to play")
		return
	}

	switch outcome {
	case play.Blocked, play.OutOfBounds:
		a.sound.Blocked()
	case play.Finished:
		a.sound.Finished()
		if p := a.ws.Status().Player; p != nil {
			a.notify(fmt.Sprintf("You won in %d steps and %ds!", p.Steps, p.Elapsed))
			a.logger.Info(fmt.Sprintf("Maze solved in %d steps and %ds", p.Steps, p.Elapsed))
		}
	}
}

func (a *App) copyToken() {
	token, err := a.ws.Export()
	if err != nil {
		a.notify(exportError(err))
		return
	}
	a.screen.SetClipboard([]byte(token))
	a.notify("Maze token copied to clipboard")
}

// pasteToken asks the terminal for its clipboard; the answer arrives as an EventClipboard.
func (a *App) pasteToken() {
	if a.ws.Mode() != render.ModeEdit {
		a.notify("Switch to edit mode to load a maze")
		return
	}
	a.screen.GetClipboard()
	a.notify("Reading clipboard...")
}

func (a *App) save() {
	token, err := a.ws.Export()
	if err != nil {
		a.notify(exportError(err))
		return
	}
	if err := os.WriteFile(a.mazeFile, []byte(token), 0o644); err != nil {
		a.logger.Error(fmt.Sprintf("Saving maze to %s: %v", a.mazeFile, err))
		a.notify(fmt.Sprintf("Could not save %s", a.mazeFile))
		return
	}
	a.logger.Info(fmt.Sprintf("Saved maze to %s", a.mazeFile))
	a.notify(fmt.Sprintf("Saved %s", a.mazeFile))
}

func (a *App) open() {
	if a.ws.Mode() != render.ModeEdit {
		a.notify("Switch to edit mode to load a maze")
		return
	}
	data, err := os.ReadFile(a.mazeFile)
	if err != nil {
		a.logger.Warning(fmt.Sprintf("Opening %s: %v", a.mazeFile, err))
		a.notify(fmt.Sprintf("Could not open %s", a.mazeFile))
		return
	}
	a.importToken(string(data), a.mazeFile)
}

func (a *App) importToken(token, source string) {
	if err := a.ws.Import(token); err != nil {
		a.logger.Warning(fmt.Sprintf("Rejected maze from %s: %v", source, err))
		if errors.Is(err, service.ErrWrongMode) {
			a.notify("Switch to edit mode to load a maze")
			return
		}
		a.notify(fmt.Sprintf("Invalid maze token from %s", source))
		return
	}
	a.notify(fmt.Sprintf("Loaded maze from %s", source))
}

func (a *App) reset() {
	if err := a.ws.Reset(a.width, a.height); err != nil {
		a.notify(exportError(err))
		return
	}
	a.notify("New blank maze")
}

func exportError(err error) string {
	if errors.Is(err, service.ErrWrongMode) {
		return "Switch to edit mode first"
	}
	return err.Error()
}

func (a *App) notify(msg string) {
	a.notice = msg
}
