package orbit

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
)

func newTestCloud(t *testing.T, links ShellLinks) *Cloud {
	t.Helper()
	return New(800, 600, Options{
		InitialElectrons: 20 * 137,
		Rand:             rand.New(rand.NewPCG(1, 2)),
		Links:            links,
	})
}

func TestNewPopulatesCloud(t *testing.T) {
	c := newTestCloud(t, nil)
	if c.Len() != 2740 {
		t.Fatalf("expected 2740 electrons, got %d", c.Len())
	}
	if c.Center() != (Point{X: 400, Y: 300}) {
		t.Errorf("unexpected center %+v", c.Center())
	}

	radii := c.Radii()
	want := 0.95 * 600 / 2
	if math.Abs(radii[ShellCount-1]-want) > 1e-9 {
		t.Errorf("outer radius: got %v, want %v", radii[ShellCount-1], want)
	}
	for i := 1; i < ShellCount; i++ {
		if radii[i] <= radii[i-1] {
			t.Errorf("radii not increasing at %d: %v", i, radii)
		}
	}

	for i, e := range c.Electrons() {
		if e.Shell < 0 || e.Shell >= ShellCount {
			t.Fatalf("electron %d has shell %d", i, e.Shell)
		}
		if e.OrbitRadius != radii[e.Shell] {
			t.Fatalf("electron %d radius %v does not match shell %d", i, e.OrbitRadius, e.Shell)
		}
		if e.Color != c.ShellColor(e.Shell) {
			t.Fatalf("electron %d color does not match shell %d", i, e.Shell)
		}
		if math.Abs(e.ThetaSpeed) < 0.0003 || math.Abs(e.ThetaSpeed) > 0.0015 {
			t.Fatalf("electron %d theta speed %v out of range", i, e.ThetaSpeed)
		}
		if math.Abs(e.PhiSpeed) < 0.0003 || math.Abs(e.PhiSpeed) > 0.0015 {
			t.Fatalf("electron %d phi speed %v out of range", i, e.PhiSpeed)
		}
		if e.Phi < 0 || e.Phi > math.Pi {
			t.Fatalf("electron %d phi %v outside [0, pi]", i, e.Phi)
		}
	}
}

func TestAddElectrons(t *testing.T) {
	c := newTestCloud(t, nil)
	for _, n := range []int{0, 1, 137, 500} {
		before := c.Len()
		c.AddElectrons(n)
		if got := c.Len(); got != before+n {
			t.Errorf("add %d: got %d, want %d", n, got, before+n)
		}
	}
}

func TestRemoveElectronsRespectsFloor(t *testing.T) {
	c := New(800, 600, Options{InitialElectrons: 300, Rand: rand.New(rand.NewPCG(3, 4))})

	tests := []struct {
		remove int
		want   int
	}{
		{100, 200},
		{137, 137},
		{137, 137},
		{0, 137},
	}
	for _, tt := range tests {
		before := c.Len()
		removed := c.RemoveElectrons(tt.remove)
		if c.Len() != tt.want {
			t.Errorf("remove %d from %d: got %d, want %d", tt.remove, before, c.Len(), tt.want)
		}
		if wantRemoved := min(tt.remove, before-137); removed != max(wantRemoved, 0) {
			t.Errorf("remove %d from %d: reported %d removed", tt.remove, before, removed)
		}
	}
}

func TestRemoveElectronsTakesFromFront(t *testing.T) {
	c := New(800, 600, Options{InitialElectrons: 400, Rand: rand.New(rand.NewPCG(5, 6))})
	tail := c.Electrons()[137]
	c.RemoveElectrons(137)
	if c.Electrons()[0] != tail {
		t.Error("expected the 138th electron to become the first after removing 137")
	}
}

func TestAddRemoveSequenceNeverBelowFloor(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	c := New(800, 600, Options{InitialElectrons: 137, Rand: rng})
	for i := 0; i < 500; i++ {
		n := rng.IntN(300)
		before := c.Len()
		if rng.IntN(2) == 0 {
			c.AddElectrons(n)
			if c.Len() != before+n {
				t.Fatalf("step %d: add %d from %d gave %d", i, n, before, c.Len())
			}
		} else {
			c.RemoveElectrons(n)
			if want := before - max(min(n, before-137), 0); c.Len() != want {
				t.Fatalf("step %d: remove %d from %d gave %d, want %d", i, n, before, c.Len(), want)
			}
		}
		if c.Len() < 137 {
			t.Fatalf("step %d: count %d below floor", i, c.Len())
		}
	}
}

func TestStepAdvancesHiddenElectrons(t *testing.T) {
	c := newTestCloud(t, nil)
	c.SelectShell(0)

	before := append([]Electron(nil), c.Electrons()...)
	c.Step()
	for i, e := range c.Electrons() {
		if e.Theta != before[i].Theta+before[i].ThetaSpeed || e.Phi != before[i].Phi+before[i].PhiSpeed {
			t.Fatalf("electron %d (shell %d) did not advance", i, e.Shell)
		}
	}
}

func TestPositionOnSphere(t *testing.T) {
	e := Electron{OrbitRadius: 10, Theta: 1.1, Phi: 0.4}
	x, y, z := e.Position()
	if r := math.Sqrt(x*x + y*y + z*z); math.Abs(r-10) > 1e-9 {
		t.Errorf("position radius %v, want 10", r)
	}

	e = Electron{OrbitRadius: 5, Theta: 0, Phi: 0}
	x, y, z = e.Position()
	if math.Abs(x) > 1e-12 || math.Abs(y) > 1e-12 || z != 5 {
		t.Errorf("north pole: got (%v, %v, %v)", x, y, z)
	}
}

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("#ef7383")
	if err != nil {
		t.Fatalf("ParseHexColor: %v", err)
	}
	if want := (color.RGBA{R: 0xef, G: 0x73, B: 0x83, A: 0xff}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, _ := ParseHexColor("#fff"); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("short form: got %v", got)
	}
	if _, err := ParseHexColor("#12345"); err == nil {
		t.Error("expected error for 5 digits")
	}
	if _, err := ParseHexColor("#zzzzzz"); err == nil {
		t.Error("expected error for non-hex digits")
	}
}
