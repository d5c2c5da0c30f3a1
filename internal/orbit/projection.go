package orbit

import "github.com/iburimskiy/one137/internal/config"

// Perspective returns the camera-to-plane distance.
func (c *Cloud) Perspective() float64 { return c.perspective }

// Scale is the perspective divide for a point at depth z. It is only
// meaningful for z < perspective.
func (c *Cloud) Scale(z float64) float64 {
	return c.perspective / (c.perspective - z)
}

// Project maps a 3D point to the surface with a pinhole camera placed at
// distance perspective on the z axis, looking at the origin. ok is false
// when the point is at or behind the camera.
func (c *Cloud) Project(x, y, z float64) (p Point, scale float64, ok bool) {
	if z >= c.perspective {
		return Point{}, 0, false
	}
	scale = c.Scale(z)
	return Point{X: c.center.X + x*scale, Y: c.center.Y + y*scale}, scale, true
}

// ZoomIn moves the camera closer, down to the minimum perspective.
func (c *Cloud) ZoomIn() {
	c.perspective = max(config.MinPerspective, c.perspective*config.ZoomInFactor)
}

// ZoomOut moves the camera away, up to the maximum perspective.
func (c *Cloud) ZoomOut() {
	c.perspective = min(config.MaxPerspective, c.perspective*config.ZoomOutFactor)
}

// Pinch feeds the distance between two active touches. A shrinking distance
// zooms out and a growing one zooms in, relative to the previous call. An
// unchanged distance is not a move and leaves the zoom alone.
func (c *Cloud) Pinch(distance float64) {
	if c.lastPinch != 0 {
		if distance == c.lastPinch {
			return
		}
		if distance-c.lastPinch < 0 {
			c.ZoomOut()
		} else {
			c.ZoomIn()
		}
	}
	c.lastPinch = distance
}

// PinchEnd forgets the previous pinch distance once fewer than two touches remain.
func (c *Cloud) PinchEnd() { c.lastPinch = 0 }
