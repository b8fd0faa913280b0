// Package render paints a maze scene onto any draw.Image.
//
// Drawing is a pure function of the scene: the same maze, mode and player
// position always produce the same pixels, and nothing but the destination
// image is touched.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/beka-birhanu/mazeshare/maze"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Mode selects between editing and playing a maze.
type Mode int

const (
	ModeEdit Mode = iota
	ModePlay
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModePlay:
		return "play"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "edit" or "play" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "edit":
		return ModeEdit, nil
	case "play":
		return ModePlay, nil
	default:
		return ModeEdit, fmt.Errorf("unknown mode %q", s)
	}
}

// Scene is everything that affects the picture.
type Scene struct {
	Maze   *maze.Maze
	Mode   Mode
	Player maze.CellPosition // only drawn in ModePlay
}

// Layout holds the pixel geometry of a rendered maze.
type Layout struct {
	CellWidth     int  // Width of one cell
	CellHeight    int  // Height of one cell
	WallWidth     int  // Thickness of a wall, centred on the edge line
	GridLineWidth int  // Thickness of the background grid, 0 disables it
	MarkerInset   int  // Gap between a cell border and the start/goal square
	MarkerFrame   int  // Width of the white frame around start/goal, 0 disables it
	PlayerRadius  int  // Radius of the player disc
	PlayerOutline int  // Width of the white ring around the player, 0 disables it
	Labels        bool // Draw "S" and "G" glyphs on the markers
}

// DefaultLayout is the geometry used for PNG output.
func DefaultLayout() Layout {
	return Layout{
		CellWidth:     50,
		CellHeight:    50,
		WallWidth:     3,
		GridLineWidth: 1,
		MarkerInset:   8,
		MarkerFrame:   2,
		PlayerRadius:  12,
		PlayerOutline: 2,
		Labels:        true,
	}
}

// TerminalLayout is the geometry used when one pixel is one character cell.
func TerminalLayout() Layout {
	return Layout{
		CellWidth:    6,
		CellHeight:   3,
		WallWidth:    1,
		MarkerInset:  1,
		PlayerRadius: 1,
	}
}

// Size returns the surface size needed to show the whole maze, outer walls included.
func (l Layout) Size(m *maze.Maze) image.Point {
	spill := l.WallWidth - l.WallWidth/2
	return image.Point{
		X: m.Width*l.CellWidth + spill,
		Y: m.Height*l.CellHeight + spill,
	}
}

// CellRect returns the area of cell (x, y) relative to the surface origin.
func (l Layout) CellRect(x, y int) image.Rectangle {
	return image.Rect(x*l.CellWidth, y*l.CellHeight, (x+1)*l.CellWidth, (y+1)*l.CellHeight)
}

// Image renders the scene into a new RGBA image.
func (l Layout) Image(s Scene) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: l.Size(s.Maze)})
	l.Draw(img, s)
	return img
}

// EncodePNG renders the scene and writes it as PNG.
func (l Layout) EncodePNG(w io.Writer, s Scene) error {
	return png.Encode(w, l.Image(s))
}

// Draw paints the scene onto dst, anchored at dst.Bounds().Min.
func (l Layout) Draw(dst draw.Image, s Scene) {
	origin := dst.Bounds().Min
	m := s.Maze

	fillRect(dst, dst.Bounds(), backgroundColor)
	l.drawGrid(dst, origin, m)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			l.drawWalls(dst, origin, x, y, m.Grid[y][x])
		}
	}

	l.drawMarker(dst, origin, m.Start, startFromColor, startToColor, "S")
	l.drawMarker(dst, origin, m.Goal, goalFromColor, goalToColor, "G")

	if s.Mode == ModePlay {
		l.drawPlayer(dst, origin, s.Player)
	}
}

func (l Layout) drawGrid(dst draw.Image, origin image.Point, m *maze.Maze) {
	if l.GridLineWidth <= 0 {
		return
	}
	size := l.Size(m)
	g := l.GridLineWidth

	for x := 0; x <= m.Width; x++ {
		e := x*l.CellWidth - g/2
		fillRect(dst, image.Rect(e, 0, e+g, size.Y).Add(origin), gridLineColor)
	}
	for y := 0; y <= m.Height; y++ {
		e := y*l.CellHeight - g/2
		fillRect(dst, image.Rect(0, e, size.X, e+g).Add(origin), gridLineColor)
	}
}

func (l Layout) drawWalls(dst draw.Image, origin image.Point, x, y int, cell maze.Cell) {
	r := l.CellRect(x, y)
	w := l.WallWidth
	lo := -w / 2
	hi := w - w/2

	// A closed cell is one blocking tile.
	if cell.IsClosed() {
		tile := image.Rect(r.Min.X+lo, r.Min.Y+lo, r.Max.X+hi, r.Max.Y+hi)
		fillRect(dst, tile.Add(origin), wallColor)
		return
	}

	if cell.Top {
		fillRect(dst, image.Rect(r.Min.X+lo, r.Min.Y+lo, r.Max.X+hi, r.Min.Y+hi).Add(origin), wallColor)
	}
	if cell.Right {
		fillRect(dst, image.Rect(r.Max.X+lo, r.Min.Y+lo, r.Max.X+hi, r.Max.Y+hi).Add(origin), wallColor)
	}
	if cell.Bottom {
		fillRect(dst, image.Rect(r.Min.X+lo, r.Max.Y+lo, r.Max.X+hi, r.Max.Y+hi).Add(origin), wallColor)
	}
	if cell.Left {
		fillRect(dst, image.Rect(r.Min.X+lo, r.Min.Y+lo, r.Min.X+hi, r.Max.Y+hi).Add(origin), wallColor)
	}
}

func (l Layout) drawMarker(dst draw.Image, origin image.Point, pos maze.CellPosition, from, to color.NRGBA, label string) {
	r := l.CellRect(pos.X, pos.Y).Inset(l.MarkerInset).Add(origin)
	if r.Empty() {
		return
	}

	span := float64(r.Dx()-1) + float64(r.Dy()-1)
	clip := r.Intersect(dst.Bounds())
	for py := clip.Min.Y; py < clip.Max.Y; py++ {
		for px := clip.Min.X; px < clip.Max.X; px++ {
			t := 0.0
			if span > 0 {
				t = float64((px-r.Min.X)+(py-r.Min.Y)) / span
			}
			dst.Set(px, py, lerpColor(from, to, t))
		}
	}

	if f := l.MarkerFrame; f > 0 {
		fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+f), markerFrameColor)
		fillRect(dst, image.Rect(r.Min.X, r.Max.Y-f, r.Max.X, r.Max.Y), markerFrameColor)
		fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+f, r.Max.Y), markerFrameColor)
		fillRect(dst, image.Rect(r.Max.X-f, r.Min.Y, r.Max.X, r.Max.Y), markerFrameColor)
	}

	if l.Labels {
		drawLabel(dst, r, label)
	}
}

func (l Layout) drawPlayer(dst draw.Image, origin image.Point, pos maze.CellPosition) {
	cell := l.CellRect(pos.X, pos.Y).Add(origin)
	cx := float64(cell.Min.X) + float64(l.CellWidth)/2
	cy := float64(cell.Min.Y) + float64(l.CellHeight)/2
	radius := float64(l.PlayerRadius)
	inner := radius - float64(l.PlayerOutline)

	bounds := image.Rect(
		int(cx-radius)-1, int(cy-radius)-1,
		int(cx+radius)+2, int(cy+radius)+2,
	).Intersect(dst.Bounds())

	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy
			d2 := dx*dx + dy*dy
			if d2 > radius*radius {
				continue
			}
			if l.PlayerOutline > 0 && d2 > inner*inner {
				dst.Set(px, py, markerFrameColor)
				continue
			}
			t := 0.0
			if radius > 0 {
				t = d2 / (radius * radius)
			}
			dst.Set(px, py, lerpColor(playerInnerColor, playerOuterColor, t))
		}
	}
}

// drawLabel centres a basicfont glyph string inside r.
func drawLabel(dst draw.Image, r image.Rectangle, label string) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	width := font.MeasureString(face, label).Round()
	textHeight := (metrics.Ascent + metrics.Descent).Round()
	if width > r.Dx() || textHeight > r.Dy() {
		return
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot: fixed.P(
			r.Min.X+(r.Dx()-width)/2,
			r.Min.Y+(r.Dy()-textHeight)/2+metrics.Ascent.Round(),
		),
	}
	d.DrawString(label)
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}
