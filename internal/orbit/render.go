package orbit

import "image/color"

// Surface is a 2D drawing target.
type Surface interface {
	Clear()
	FillCircle(x, y, radius float64, c color.RGBA)
}

// Render clears the surface and draws every electron of a visible shell.
// Electrons at or behind the camera are skipped for this frame.
func (c *Cloud) Render(s Surface) int {
	s.Clear()

	drawn := 0
	for i := range c.electrons {
		e := &c.electrons[i]
		if !c.Visible(e.Shell) {
			continue
		}

		x, y, z := e.Position()
		p, scale, ok := c.Project(x, y, z)
		if !ok {
			continue
		}
		radius := c.size * scale
		if radius <= 0 {
			continue
		}

		s.FillCircle(p.X, p.Y, radius, e.Color)
		drawn++
	}
	return drawn
}
