package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// cellSurface maps the cloud's virtual pixels onto terminal cells. A cell is
// about twice as tall as it is wide, so each row covers two virtual pixels.
type cellSurface struct {
	screen     tcell.Screen
	background tcell.Style
}

// virtualSize returns the drawing surface size for a screen of cols x rows.
func virtualSize(cols, rows int) (int, int) {
	return cols, rows * 2
}

// toCell maps a virtual pixel to the cell containing it.
func toCell(x, y float64) (int, int) {
	return int(x), int(y / 2)
}

// toVirtual maps a cell to the virtual pixel at its center.
func toVirtual(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row)*2 + 1
}

func (s *cellSurface) Clear() {
	s.screen.Fill(' ', s.background)
}

func (s *cellSurface) FillCircle(x, y, r float64, c color.RGBA) {
	if x < 0 || y < 0 {
		return
	}
	col, row := toCell(x, y)
	cols, rows := s.screen.Size()
	// The last row belongs to the status line.
	if col >= cols || row >= rows-1 {
		return
	}
	style := s.background.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	s.screen.SetContent(col, row, glyph(r), nil, style)
}

// glyph picks a heavier dot for particles closer to the camera.
func glyph(r float64) rune {
	switch {
	case r < 1.6:
		return '·'
	case r < 2.5:
		return '•'
	default:
		return '●'
	}
}
