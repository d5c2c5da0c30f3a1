// Package term renders the electron cloud in a terminal with tcell.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/one137/internal/config"
	"github.com/iburimskiy/one137/internal/orbit"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// App owns a tcell screen and the cloud drawn on it. All state is touched
// from the Run goroutine only.
type App struct {
	screen tcell.Screen
	cloud  *orbit.Cloud
	batch  int

	background tcell.Style
	highlight  int // 0-based shell whose link is highlighted, -1 for none
	status     string
	prevButton tcell.ButtonMask
}

// New builds an App on an initialized screen. The cloud is sized to the
// screen at this point and keeps that geometry.
func New(screen tcell.Screen, cfg config.OrbitConfig) (*App, error) {
	bg, err := orbit.ParseHexColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("orbit.background: %w", err)
	}

	a := &App{
		screen:     screen,
		batch:      cfg.Batch,
		background: tcell.StyleDefault.Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))),
		highlight:  -1,
	}

	cols, rows := screen.Size()
	// The last row is the status line.
	w, h := virtualSize(cols, max(rows-1, 1))
	opts := orbit.OptionsFromConfig(cfg)
	opts.Links = a
	a.cloud = orbit.New(w, h, opts)
	return a, nil
}

// Cloud exposes the model driven by this app.
func (a *App) Cloud() *orbit.Cloud { return a.cloud }

// Highlight implements orbit.ShellLinks.
func (a *App) Highlight(selected int) {
	if selected >= 0 && selected < orbit.ShellCount {
		a.highlight = selected
		return
	}
	a.highlight = -1
}

// Activate implements orbit.ShellLinks by describing the shell in the status line.
func (a *App) Activate(shell int) {
	a.status = orbit.Describe(shell)
}

// pollEvents forwards screen events until the screen is finalized, which
// closes events, or until ctx is done.
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Run draws frames and handles input until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseMotionEvents)
	defer a.screen.DisableMouse()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go pollEvents(ctx, a.screen, eventChan)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok || !a.handleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			a.cloud.Step()
			a.draw()
		}
	}
}

// handleEvent applies one input event and reports whether to keep running.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp, tcell.KeyPgUp, tcell.KeyEnter:
		a.cloud.ZoomIn()
	case tcell.KeyDown, tcell.KeyPgDn, tcell.KeyBackspace, tcell.KeyBackspace2:
		a.cloud.ZoomOut()
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return false
		case r == 'w':
			a.cloud.ZoomIn()
		case r == 's' || r == '/':
			a.cloud.ZoomOut()
		case r == '+' || r == '=':
			a.cloud.AddElectrons(a.batch)
		case r == '-':
			a.cloud.RemoveElectrons(a.batch)
		case r >= '1' && r < '1'+rune(orbit.ShellCount):
			a.cloud.SelectShell(int(r - '1'))
		case r == '0':
			a.cloud.SelectShell(orbit.ShellCount)
		}
	}
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		a.cloud.ZoomIn()
	case btn&tcell.WheelDown != 0:
		a.cloud.ZoomOut()
	}

	col, row := ev.Position()
	x, y := toVirtual(col, row)
	a.cloud.Hover(x, y)

	// Click on release of the primary button.
	if a.prevButton&tcell.Button1 != 0 && btn&tcell.Button1 == 0 {
		a.cloud.Click()
	}
	a.prevButton = btn
}

func (a *App) draw() {
	a.cloud.Render(&cellSurface{screen: a.screen, background: a.background})
	a.drawStatus()
	a.screen.Show()
}

func (a *App) drawStatus() {
	_, rows := a.screen.Size()
	row := rows - 1

	col := 0
	put := func(s string, style tcell.Style) {
		for _, r := range s {
			a.screen.SetContent(col, row, r, nil, style)
			col++
		}
	}

	for i := 0; i < orbit.ShellCount; i++ {
		c := a.cloud.ShellColor(i)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		if i == a.highlight {
			style = style.Reverse(true)
		}
		put(fmt.Sprintf("[%d]", i+1), style)
		put(" ", tcell.StyleDefault)
	}

	info := fmt.Sprintf("e=%d p=%.0f", a.cloud.Len(), a.cloud.Perspective())
	if a.status != "" {
		info += " | " + a.status
	}
	put(info, tcell.StyleDefault)
}

// Run opens the terminal, runs the cloud until the user quits and restores
// the terminal.
func Run(ctx context.Context, cfg config.OrbitConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	app, err := New(screen, cfg)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
