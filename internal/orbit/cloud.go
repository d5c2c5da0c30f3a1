package orbit

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/one137/internal/config"
)

// ShellCount is the number of concentric shells. A selection equal to
// ShellCount means the pointer is outside every shell and all are shown.
const ShellCount = config.ShellCount

// Options configure a Cloud. Zero values fall back to the defaults in
// internal/config.
type Options struct {
	InitialElectrons int
	Floor            int
	Perspective      float64
	MinSpeed         float64
	MaxSpeed         float64
	ElectronSize     float64

	// Rand drives every random draw; a fixed seed gives a reproducible cloud.
	Rand *rand.Rand
	// Links is notified of selection changes and shell activations.
	Links ShellLinks
}

// OptionsFromConfig maps the orbit section of the configuration to Options.
func OptionsFromConfig(c config.OrbitConfig) Options {
	opts := Options{
		InitialElectrons: c.InitialElectrons,
		Floor:            c.Floor,
		Perspective:      c.Perspective,
		MinSpeed:         c.MinSpeed,
		MaxSpeed:         c.MaxSpeed,
		ElectronSize:     c.ElectronSize,
	}
	if c.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
	}
	return opts
}

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// Cloud owns the electrons and all view state of the visualizer. It is not
// safe for concurrent use; front-ends touch it only from their loop goroutine.
type Cloud struct {
	electrons []Electron

	radii   [ShellCount]float64
	palette [ShellCount]color.RGBA
	center  Point

	perspective float64
	selected    int
	floor       int
	size        float64

	minSpeed, maxSpeed float64
	rng                *rand.Rand
	links              ShellLinks

	lastPinch float64
}

// New builds a cloud for a surface of the given size and populates it.
func New(width, height int, opts Options) *Cloud {
	if opts.InitialElectrons == 0 {
		opts.InitialElectrons = config.InitialElectrons
	}
	if opts.Floor == 0 {
		opts.Floor = config.FineStructure
	}
	if opts.Perspective == 0 {
		opts.Perspective = config.InitialPerspective
	}
	if opts.MinSpeed == 0 {
		opts.MinSpeed = config.MinElectronSpeed
	}
	if opts.MaxSpeed == 0 {
		opts.MaxSpeed = config.MaxElectronSpeed
	}
	if opts.ElectronSize == 0 {
		opts.ElectronSize = config.ElectronSize
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Links == nil {
		opts.Links = noLinks{}
	}

	c := &Cloud{
		center:      Point{X: float64(width) / 2, Y: float64(height) / 2},
		perspective: clamp(opts.Perspective, config.MinPerspective, config.MaxPerspective),
		selected:    ShellCount - 1,
		floor:       opts.Floor,
		size:        opts.ElectronSize,
		minSpeed:    opts.MinSpeed,
		maxSpeed:    opts.MaxSpeed,
		rng:         opts.Rand,
		links:       opts.Links,
	}

	// The outermost shell times the display factor spans half the smaller dimension.
	maxOrbitRadius := config.OrbitRadii[ShellCount-1]
	scalingFactor := config.NucleusDisplayScale * math.Min(float64(width), float64(height)) / (2 * maxOrbitRadius)
	for i, r := range config.OrbitRadii {
		c.radii[i] = r * scalingFactor
		c.palette[i] = mustParseHexColor(config.OrbitColors[i])
	}

	c.electrons = make([]Electron, 0, opts.InitialElectrons)
	c.AddElectrons(opts.InitialElectrons)
	return c
}

// AddElectrons appends count new electrons, each on a uniformly random shell.
func (c *Cloud) AddElectrons(count int) {
	for i := 0; i < count; i++ {
		shell := c.rng.IntN(ShellCount)
		speed := c.minSpeed + c.rng.Float64()*(c.maxSpeed-c.minSpeed)

		c.electrons = append(c.electrons, Electron{
			OrbitRadius: c.radii[shell],
			Color:       c.palette[shell],
			Theta:       c.rng.Float64() * 2 * math.Pi,
			Phi:         math.Acos(2*c.rng.Float64() - 1),
			ThetaSpeed:  speed * randomSign(c.rng),
			PhiSpeed:    speed * randomSign(c.rng),
			Shell:       shell,
		})
	}
}

// RemoveElectrons drops up to count electrons from the front of the list,
// never going below the floor. It returns how many were removed.
func (c *Cloud) RemoveElectrons(count int) int {
	n := min(count, len(c.electrons)-c.floor)
	if n <= 0 {
		return 0
	}
	c.electrons = append(c.electrons[:0], c.electrons[n:]...)
	return n
}

// Len returns the number of electrons.
func (c *Cloud) Len() int { return len(c.electrons) }

// Electrons exposes the electron list for read-only inspection.
func (c *Cloud) Electrons() []Electron { return c.electrons }

// Step advances every electron by one frame, hidden shells included.
func (c *Cloud) Step() {
	for i := range c.electrons {
		c.electrons[i].advance()
	}
}

// Center returns the fixed midpoint of the surface.
func (c *Cloud) Center() Point { return c.center }

// Radii returns the display radius of each shell.
func (c *Cloud) Radii() [ShellCount]float64 { return c.radii }

// ShellColor returns the display color of a shell.
func (c *Cloud) ShellColor(shell int) color.RGBA { return c.palette[shell] }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
