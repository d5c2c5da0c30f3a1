package orbit

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
)

func TestZoomStaysInRange(t *testing.T) {
	c := newTestCloud(t, nil)
	rng := rand.New(rand.NewPCG(11, 12))
	for i := 0; i < 5000; i++ {
		if rng.IntN(2) == 0 {
			c.ZoomIn()
		} else {
			c.ZoomOut()
		}
		if p := c.Perspective(); p < 20 || p > 5000 {
			t.Fatalf("step %d: perspective %v out of [20, 5000]", i, p)
		}
	}

	for i := 0; i < 200; i++ {
		c.ZoomIn()
	}
	if c.Perspective() != 20 {
		t.Errorf("expected perspective floored at 20, got %v", c.Perspective())
	}
	for i := 0; i < 200; i++ {
		c.ZoomOut()
	}
	if c.Perspective() != 5000 {
		t.Errorf("expected perspective capped at 5000, got %v", c.Perspective())
	}
}

func TestZoomFactors(t *testing.T) {
	c := newTestCloud(t, nil)
	c.ZoomIn()
	if want := 1370 * 0.95; math.Abs(c.Perspective()-want) > 1e-9 {
		t.Errorf("zoom in: got %v, want %v", c.Perspective(), want)
	}
	c.ZoomOut()
	if want := 1370 * 0.95 * 1.05; math.Abs(c.Perspective()-want) > 1e-9 {
		t.Errorf("zoom out: got %v, want %v", c.Perspective(), want)
	}
}

func TestProjectRadiusGrowsTowardCamera(t *testing.T) {
	c := newTestCloud(t, nil)
	p := c.Perspective()

	prev := 0.0
	for z := -p; z < p; z += p / 50 {
		_, scale, ok := c.Project(0, 0, z)
		if !ok {
			t.Fatalf("z=%v < perspective should be visible", z)
		}
		radius := 1.5 * scale
		if radius <= 0 {
			t.Fatalf("z=%v: radius %v not positive", z, radius)
		}
		if radius <= prev {
			t.Fatalf("z=%v: radius %v did not grow (previous %v)", z, radius, prev)
		}
		prev = radius
	}

	for _, z := range []float64{p, p + 0.001, 2 * p} {
		if _, _, ok := c.Project(0, 0, z); ok {
			t.Errorf("z=%v >= perspective should not be visible", z)
		}
	}
}

func TestProjectOrigin(t *testing.T) {
	c := newTestCloud(t, nil)
	pt, scale, ok := c.Project(10, -20, 0)
	if !ok || scale != 1 {
		t.Fatalf("z=0 should project with scale 1, got %v ok=%v", scale, ok)
	}
	if pt != (Point{X: 410, Y: 280}) {
		t.Errorf("got %+v", pt)
	}
}

func TestPinch(t *testing.T) {
	c := newTestCloud(t, nil)
	start := c.Perspective()

	c.Pinch(100) // first sample only records the distance
	if c.Perspective() != start {
		t.Fatal("first pinch sample should not zoom")
	}
	c.Pinch(120)
	if c.Perspective() >= start {
		t.Error("spreading fingers should zoom in")
	}
	zoomed := c.Perspective()
	c.Pinch(90)
	if c.Perspective() <= zoomed {
		t.Error("pinching fingers should zoom out")
	}

	c.PinchEnd()
	after := c.Perspective()
	c.Pinch(10)
	if c.Perspective() != after {
		t.Error("a new gesture should start without zooming")
	}
}

func TestPinchRestingFingers(t *testing.T) {
	c := newTestCloud(t, nil)
	start := c.Perspective()

	// One second of frames with both fingers held still.
	for i := 0; i < 60; i++ {
		c.Pinch(200)
	}
	if c.Perspective() != start {
		t.Errorf("perspective drifted from %v to %v without finger movement", start, c.Perspective())
	}

	c.Pinch(210)
	if c.Perspective() >= start {
		t.Error("spreading after a rest should still zoom in")
	}
}

type recordingSurface struct {
	clears  int
	circles []circle
}

type circle struct {
	x, y, r float64
	c       color.RGBA
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
}

func (s *recordingSurface) FillCircle(x, y, r float64, c color.RGBA) {
	s.circles = append(s.circles, circle{x, y, r, c})
}

func TestRenderSkipsHiddenShells(t *testing.T) {
	c := newTestCloud(t, nil)
	s := &recordingSurface{}

	all := c.Render(s)
	if s.clears != 1 {
		t.Fatalf("expected one clear, got %d", s.clears)
	}
	if all != c.Len() || len(s.circles) != c.Len() {
		t.Fatalf("with every shell visible, expected %d circles, got %d", c.Len(), len(s.circles))
	}

	c.SelectShell(1)
	visible := 0
	for _, e := range c.Electrons() {
		if e.Shell <= 1 {
			visible++
		}
	}
	if got := c.Render(s); got != visible {
		t.Errorf("with shells 0..1 visible, expected %d circles, got %d", visible, got)
	}
	inner := [2]color.RGBA{c.ShellColor(0), c.ShellColor(1)}
	for _, circ := range s.circles {
		if circ.c != inner[0] && circ.c != inner[1] {
			t.Fatalf("drew a circle in a hidden shell color %v", circ.c)
		}
	}
}

func TestRenderSkipsElectronsBehindCamera(t *testing.T) {
	c := newTestCloud(t, nil)
	for i := 0; i < 200; i++ {
		c.ZoomIn()
	}
	// The outer shell is far larger than the minimum perspective, so the
	// electrons near the pole closest to the camera fall behind it.
	behind := 0
	for _, e := range c.Electrons() {
		if _, _, z := e.Position(); z >= c.Perspective() {
			behind++
		}
	}
	if behind == 0 {
		t.Fatal("expected some electrons behind the camera")
	}

	s := &recordingSurface{}
	if got := c.Render(s); got != c.Len()-behind {
		t.Errorf("expected %d drawn, got %d", c.Len()-behind, got)
	}
	for _, circ := range s.circles {
		if circ.r <= 0 || math.IsInf(circ.r, 0) {
			t.Fatalf("drew an invalid radius %v", circ.r)
		}
	}
}
