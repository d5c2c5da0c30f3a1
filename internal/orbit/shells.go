package orbit

import "math"

// ShellLinks is the UI side of the shell selection. The cloud calls Highlight
// whenever the selection changes and Activate when the selected shell is
// clicked; the UI calls SelectShell when one of its links is hovered.
type ShellLinks interface {
	// Highlight marks link selected+1 and unmarks the others. selected is
	// ShellCount when the pointer is outside every shell.
	Highlight(selected int)
	// Activate follows the link of a shell (0-based).
	Activate(shell int)
}

type noLinks struct{}

func (noLinks) Highlight(int) {}
func (noLinks) Activate(int)  {}

// Selected returns the largest shell index currently displayed.
func (c *Cloud) Selected() int { return c.selected }

// Visible reports whether electrons of the given shell are drawn.
func (c *Cloud) Visible(shell int) bool { return shell <= c.selected }

// ShellAt returns the smallest shell whose display radius is at least d, or
// ShellCount when d lies outside every shell.
func (c *Cloud) ShellAt(d float64) int {
	idx := ShellCount
	for idx > 0 && d <= c.radii[idx-1] {
		idx--
	}
	return idx
}

// Hover updates the selection from a pointer position and reports whether
// it changed.
func (c *Cloud) Hover(x, y float64) bool {
	d := math.Hypot(x-c.center.X, y-c.center.Y)
	idx := c.ShellAt(d)
	if idx == c.selected {
		return false
	}
	c.selected = idx
	c.links.Highlight(idx)
	return true
}

// SelectShell sets the selection directly, as when a shell link is hovered.
func (c *Cloud) SelectShell(shell int) {
	if shell < 0 || shell > ShellCount {
		return
	}
	c.selected = shell
	c.links.Highlight(shell)
}

// Click activates the link of the shell under the pointer. It returns false
// when the pointer is outside every shell.
func (c *Cloud) Click() bool {
	if c.selected >= ShellCount {
		return false
	}
	c.links.Activate(c.selected)
	return true
}

// PointerOverShell reports whether the selection is a real shell, which is
// when front-ends show a pointer cursor.
func (c *Cloud) PointerOverShell() bool { return c.selected < ShellCount }
