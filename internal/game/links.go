package game

import (
	"github.com/iburimskiy/one137/internal/config"
	"github.com/iburimskiy/one137/internal/orbit"
)

// shellLinks is the on-screen list "Shell 1".."Shell 5". The cloud highlights
// it on hover; hovering a link feeds the selection back into the cloud.
type shellLinks struct {
	highlighted int // 0-based shell, -1 for none
	activate    func(shell int)
}

func newShellLinks(activate func(shell int)) *shellLinks {
	if activate == nil {
		activate = showShellInfo
	}
	return &shellLinks{highlighted: -1, activate: activate}
}

func (l *shellLinks) Highlight(selected int) {
	if selected >= 0 && selected < orbit.ShellCount {
		l.highlighted = selected
		return
	}
	l.highlighted = -1
}

func (l *shellLinks) Activate(shell int) { l.activate(shell) }

// linkAt returns the shell whose link contains the point, or -1.
func (l *shellLinks) linkAt(x, y int) int {
	for i := 0; i < orbit.ShellCount; i++ {
		if linkRect(i).contains(x, y) {
			return i
		}
	}
	return -1
}

func linkRect(shell int) rect {
	return rect{
		x: config.LinkX,
		y: config.LinkY + shell*(config.LinkHeight+config.LinkSpacing),
		w: config.LinkWidth,
		h: config.LinkHeight,
	}
}
