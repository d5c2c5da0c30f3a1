package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x <= r.x+r.w && y >= r.y && y <= r.y+r.h
}

// screenSurface draws the cloud onto an ebiten image.
type screenSurface struct {
	img        *ebiten.Image
	background color.RGBA
}

func (s *screenSurface) Clear() { s.img.Fill(s.background) }

func (s *screenSurface) FillCircle(x, y, r float64, c color.RGBA) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

func touchDistance(x1, y1, x2, y2 int) float64 {
	return math.Hypot(float64(x1-x2), float64(y1-y2))
}

// dim scales the RGB channels of c, keeping alpha.
func dim(c color.RGBA, f float64) color.RGBA {
	f = clamp01(f)
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
