package render

import "image/color"

var (
	backgroundColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	gridLineColor    = color.NRGBA{R: 221, G: 221, B: 221, A: 255}
	wallColor        = color.NRGBA{R: 51, G: 51, B: 51, A: 255}
	markerFrameColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	labelColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	startFromColor = color.NRGBA{R: 255, G: 107, B: 107, A: 255}
	startToColor   = color.NRGBA{R: 238, G: 90, B: 82, A: 255}

	goalFromColor = color.NRGBA{R: 254, G: 202, B: 87, A: 255}
	goalToColor   = color.NRGBA{R: 255, G: 159, B: 243, A: 255}

	playerInnerColor = color.NRGBA{R: 116, G: 185, B: 255, A: 255}
	playerOuterColor = color.NRGBA{R: 9, G: 132, B: 227, A: 255}
)

// lerpColor blends a towards b; t is clamped to [0, 1].
func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = max(0, min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
