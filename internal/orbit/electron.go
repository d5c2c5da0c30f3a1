package orbit

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Electron is a point particle on one of the shells. Speeds are fixed at creation.
type Electron struct {
	OrbitRadius float64
	Color       color.RGBA
	Theta       float64
	Phi         float64
	ThetaSpeed  float64
	PhiSpeed    float64
	Shell       int
}

// Position converts the electron's spherical coordinates to Cartesian ones
// (physics convention: phi is the polar angle, theta the azimuth).
func (e *Electron) Position() (x, y, z float64) {
	sinPhi := math.Sin(e.Phi)
	x = e.OrbitRadius * sinPhi * math.Cos(e.Theta)
	y = e.OrbitRadius * sinPhi * math.Sin(e.Theta)
	z = e.OrbitRadius * math.Cos(e.Phi)
	return x, y, z
}

func (e *Electron) advance() {
	e.Theta += e.ThetaSpeed
	e.Phi += e.PhiSpeed
}

func randomSign(rng *rand.Rand) float64 {
	if rng.Float64() < 0.5 {
		return 1
	}
	return -1
}
