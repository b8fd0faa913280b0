package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/beka-birhanu/mazeshare/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corridor(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.NewBlank(3, 1)
	require.NoError(t, err)
	require.NoError(t, m.SetWall(1, 0, maze.Right, false))
	return m
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestLayoutSize(t *testing.T) {
	m := corridor(t)

	assert.Equal(t, image.Point{X: 152, Y: 52}, DefaultLayout().Size(m))
	assert.Equal(t, image.Point{X: 19, Y: 4}, TerminalLayout().Size(m))
}

func TestDrawWalls(t *testing.T) {
	m := corridor(t)
	img := DefaultLayout().Image(Scene{Maze: m, Mode: ModeEdit})

	t.Run("open cell shows background", func(t *testing.T) {
		assert.Equal(t, rgba(backgroundColor), rgba(img.At(75, 25)))
	})

	t.Run("removed wall shows grid line", func(t *testing.T) {
		assert.Equal(t, rgba(gridLineColor), rgba(img.At(100, 25)))
	})

	t.Run("present wall is drawn", func(t *testing.T) {
		assert.Equal(t, rgba(wallColor), rgba(img.At(50, 25)))
		assert.Equal(t, rgba(wallColor), rgba(img.At(75, 0)))
	})
}

func TestDrawClosedCellAsTile(t *testing.T) {
	m, err := maze.NewBlank(3, 1)
	require.NoError(t, err)

	img := DefaultLayout().Image(Scene{Maze: m})
	assert.Equal(t, rgba(wallColor), rgba(img.At(75, 25)))
	assert.Equal(t, rgba(wallColor), rgba(img.At(60, 40)))
}

func TestDrawMarkers(t *testing.T) {
	m := corridor(t)
	img := DefaultLayout().Image(Scene{Maze: m})

	assert.Equal(t, rgba(markerFrameColor), rgba(img.At(8, 8)), "start frame")
	assert.Equal(t, rgba(lerpColor(startFromColor, startToColor, 6.0/66.0)), rgba(img.At(11, 11)), "start gradient")
	assert.Equal(t, rgba(lerpColor(goalFromColor, goalToColor, 6.0/66.0)), rgba(img.At(111, 11)), "goal gradient")
}

func TestDrawPlayerOnlyInPlayMode(t *testing.T) {
	m := corridor(t)
	scene := Scene{Maze: m, Mode: ModeEdit, Player: maze.CellPosition{X: 1, Y: 0}}
	layout := DefaultLayout()

	edit := layout.Image(scene)
	assert.Equal(t, rgba(backgroundColor), rgba(edit.At(75, 25)))

	scene.Mode = ModePlay
	play := layout.Image(scene)
	assert.Equal(t, rgba(lerpColor(playerInnerColor, playerOuterColor, 0.5/144.0)), rgba(play.At(75, 25)))
	assert.Equal(t, rgba(markerFrameColor), rgba(play.At(75, 14)), "outline")
}

func TestDrawIsIdempotent(t *testing.T) {
	m := corridor(t)
	scene := Scene{Maze: m, Mode: ModePlay, Player: m.Start}
	layout := DefaultLayout()

	img := layout.Image(scene)
	again := image.NewRGBA(img.Bounds())
	layout.Draw(again, scene)
	layout.Draw(again, scene)

	assert.Equal(t, img.Pix, again.Pix)
}

func TestDrawHonoursOrigin(t *testing.T) {
	m := corridor(t)
	layout := TerminalLayout()
	size := layout.Size(m)

	shifted := image.NewRGBA(image.Rect(10, 5, 10+size.X, 5+size.Y))
	layout.Draw(shifted, Scene{Maze: m})
	plain := layout.Image(Scene{Maze: m})

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			require.Equal(t, plain.At(x, y), shifted.At(x+10, y+5), "pixel (%d,%d)", x, y)
		}
	}
}

func TestEncodePNG(t *testing.T) {
	m := corridor(t)
	var buf bytes.Buffer

	require.NoError(t, DefaultLayout().EncodePNG(&buf, Scene{Maze: m}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 152, 52), img.Bounds())
}

func TestParseMode(t *testing.T) {
	for _, mode := range []Mode{ModeEdit, ModePlay} {
		parsed, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	_, err := ParseMode("spectate")
	assert.Error(t, err)
}
