package terminal

import (
	"fmt"
	"image"

	"github.com/beka-birhanu/mazeshare/service/i"
	"github.com/gdamore/tcell/v2"
)

// draw repaints the maze when the workspace version moved, then the status lines.
func (a *App) draw() {
	status := a.ws.Status()
	size := a.ws.Size(a.layout)

	if a.canvas == nil || !a.drawn || status.Version != a.drawnVersion || a.canvas.Bounds().Size() != size {
		if a.canvas == nil || a.canvas.Bounds().Size() != size {
			a.canvas = image.NewRGBA(image.Rectangle{Max: size})
		}
		a.ws.Draw(a.canvas, a.layout)

		a.screen.Clear()
		a.blit()
		a.drawLabels(status)
		a.drawn = true
		a.drawnVersion = status.Version
	}

	a.drawStatus(status, size)
	a.screen.Show()
}

func (a *App) blit() {
	b := a.canvas.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a.screen.SetContent(a.origin.X+x, a.origin.Y+y, ' ', nil, tcell.StyleDefault.Background(a.colorAt(x, y)))
		}
	}
}

func (a *App) colorAt(x, y int) tcell.Color {
	c := a.canvas.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawLabels writes S and G over the markers unless the player covers them.
func (a *App) drawLabels(status i.WorkspaceStatus) {
	label := func(pos i.Position, r rune) {
		if p := status.Player; p != nil && p.Position == pos {
			return
		}
		cell := a.layout.CellRect(pos.X, pos.Y)
		x := cell.Min.X + a.layout.CellWidth/2 - 1
		y := cell.Min.Y + a.layout.CellHeight/2
		style := tcell.StyleDefault.
			Background(a.colorAt(x, y)).
			Foreground(tcell.ColorWhite).
			Bold(true)
		a.screen.SetContent(a.origin.X+x, a.origin.Y+y, r, nil, style)
	}

	label(status.Start, 'S')
	label(status.Goal, 'G')
}

func (a *App) drawStatus(status i.WorkspaceStatus, size image.Point) {
	row := a.origin.Y + size.Y + 1
	width, _ := a.screen.Size()

	var line, help string
	if p := status.Player; p != nil {
		line = fmt.Sprintf("PLAY  %dx%d  steps %d  time %ds", status.Width, status.Height, p.Steps, p.Elapsed)
		if p.Completed {
			line += "  solved!"
		}
		help = playHelp
	} else {
		line = fmt.Sprintf("EDIT  %dx%d", status.Width, status.Height)
		help = editHelp
	}

	a.drawText(row, width, line, tcell.StyleDefault.Bold(true))
	a.drawText(row+1, width, help, tcell.StyleDefault.Foreground(tcell.ColorGray))
	a.drawText(row+2, width, a.notice, tcell.StyleDefault.Foreground(tcell.ColorYellow))
}

// drawText writes text on row and blanks the rest of it.
func (a *App) drawText(row, width int, text string, style tcell.Style) {
	x := a.origin.X
	for _, r := range text {
		if x >= width {
			break
		}
		a.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		a.screen.SetContent(x, row, ' ', nil, tcell.StyleDefault)
	}
}
