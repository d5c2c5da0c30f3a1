package game

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/one137/internal/config"
	"github.com/iburimskiy/one137/internal/orbit"
	"github.com/iburimskiy/one137/internal/sound"
)

// zoomKeys maps keys to a zoom direction: +1 zooms in, -1 zooms out.
var zoomKeys = map[ebiten.Key]int{
	ebiten.KeyW:         +1,
	ebiten.KeyArrowUp:   +1,
	ebiten.KeyPageUp:    +1,
	ebiten.KeyEnter:     +1,
	ebiten.KeySlash:     -1,
	ebiten.KeyS:         -1,
	ebiten.KeyArrowDown: -1,
	ebiten.KeyPageDown:  -1,
	ebiten.KeyBackspace: -1,
}

type button struct {
	rect    rect
	label   string
	hovered bool
	pressed bool
	onClick func()
}

type Game struct {
	cloud  *orbit.Cloud
	links  *shellLinks
	player *sound.Player
	batch  int

	width, height int
	background    color.RGBA

	buttons []*button
	touches []ebiten.TouchID
	chars   []rune

	// input edge detection
	prevKey   map[ebiten.Key]bool
	pinching  bool
	hoverLink int

	// cue file dialog
	selectFile func() (string, error)
	picked     chan pickResult
	choosing   bool

	lastErr error
}

// NewGame builds the cloud for the configured window size and initializes
// audio. activate handles shell link clicks; nil opens a native info dialog.
func NewGame(cfg *config.Config, activate func(shell int)) (*Game, error) {
	bg, err := orbit.ParseHexColor(cfg.Orbit.Background)
	if err != nil {
		return nil, fmt.Errorf("orbit.background: %w", err)
	}

	g := &Game{
		batch:      cfg.Orbit.Batch,
		width:      cfg.Orbit.Width,
		height:     cfg.Orbit.Height,
		background: bg,
		prevKey:    map[ebiten.Key]bool{},
		hoverLink:  -1,
		selectFile: selectCueFile,
		picked:     make(chan pickResult, 1),
	}
	g.links = newShellLinks(activate)

	// Non-fatal, the cloud runs without sound
	g.player, err = sound.New(cfg.Sound)
	if err != nil {
		log.Printf("game: audio initialization failed: %v", err)
		g.lastErr = err
	}

	opts := orbit.OptionsFromConfig(cfg.Orbit)
	opts.Links = g.links
	g.cloud = orbit.New(g.width, g.height, opts)

	g.buttons = []*button{
		{
			rect:    rect{config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight},
			label:   fmt.Sprintf("+%d electrons", g.batch),
			onClick: g.addElectrons,
		},
		{
			rect:    rect{config.ButtonX + config.ButtonWidth + 10, config.ButtonY, config.ButtonWidth, config.ButtonHeight},
			label:   fmt.Sprintf("-%d electrons", g.batch),
			onClick: g.removeElectrons,
		},
		{
			rect:    rect{config.ButtonX + 2*(config.ButtonWidth+10), config.ButtonY, config.ButtonWidth, config.ButtonHeight},
			label:   "Cue sound...",
			onClick: g.chooseCueFile,
		},
	}
	return g, nil
}

// Cloud exposes the model driven by this game.
func (g *Game) Cloud() *orbit.Cloud { return g.cloud }

func (g *Game) addElectrons() {
	g.cloud.AddElectrons(g.batch)
	g.player.Play(sound.CueAdd)
}

func (g *Game) removeElectrons() {
	if g.cloud.RemoveElectrons(g.batch) > 0 {
		g.player.Play(sound.CueRemove)
	}
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	// Zoom keys repeat while held, like keydown auto-repeat.
	for k, dir := range zoomKeys {
		if keyRepeated(k) {
			g.zoom(dir)
		}
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		switch r {
		case '+':
			g.addElectrons()
		case '-':
			g.removeElectrons()
		}
	}

	if _, dy := ebiten.Wheel(); dy > 0 {
		g.cloud.ZoomIn()
	} else if dy < 0 {
		g.cloud.ZoomOut()
	}

	select {
	case res := <-g.picked:
		g.choosing = false
		g.applyCueFile(res)
	default:
	}

	g.updateTouches()
	g.updatePointer()

	g.cloud.Step()
	return nil
}

func (g *Game) zoom(dir int) {
	if dir > 0 {
		g.cloud.ZoomIn()
	} else {
		g.cloud.ZoomOut()
	}
}

// keyRepeated fires on the first frame of a press, then every few frames
// after an initial delay.
func keyRepeated(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%4 == 0)
}

// updateTouches turns a two-finger gesture into pinch zoom.
func (g *Game) updateTouches() {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) != 2 {
		if g.pinching {
			g.cloud.PinchEnd()
			g.pinching = false
		}
		return
	}
	x1, y1 := ebiten.TouchPosition(g.touches[0])
	x2, y2 := ebiten.TouchPosition(g.touches[1])
	g.cloud.Pinch(touchDistance(x1, y1, x2, y2))
	g.pinching = true
}

func (g *Game) updatePointer() {
	mouseX, mouseY := ebiten.CursorPosition()

	overControl := false
	for _, b := range g.buttons {
		b.hovered = b.rect.contains(mouseX, mouseY)
		if b.hovered {
			overControl = true
			if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
				b.pressed = true
			}
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			if b.pressed && b.hovered {
				b.onClick()
			}
			b.pressed = false
		}
	}

	link := g.links.linkAt(mouseX, mouseY)
	if link >= 0 {
		overControl = true
		if link != g.hoverLink {
			g.cloud.SelectShell(link)
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			g.links.Activate(link)
		}
	}
	g.hoverLink = link

	if !overControl {
		g.cloud.Hover(float64(mouseX), float64(mouseY))
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			g.cloud.Click()
		}
	}

	if overControl || g.cloud.PointerOverShell() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.cloud.Render(&screenSurface{img: screen, background: g.background})

	for _, b := range g.buttons {
		g.drawButton(screen, b)
	}
	g.drawLinks(screen)

	status := fmt.Sprintf("Electrons: %d | Perspective: %.0f | W/S, wheel or pinch: zoom | +/-: electrons | Esc/Q: quit",
		g.cloud.Len(), g.cloud.Perspective())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawButton(screen *ebiten.Image, b *button) {
	var bgColor color.Color
	if b.pressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if b.hovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	r := b.rect
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), bgColor, false)
	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 2, borderColor, false)

	textWidth := len(b.label) * 6 // debug font glyph width
	ebitenutil.DebugPrintAt(screen, b.label, r.x+(r.w-textWidth)/2, r.y+(r.h-16)/2)
}

func (g *Game) drawLinks(screen *ebiten.Image) {
	for i := 0; i < orbit.ShellCount; i++ {
		r := linkRect(i)
		c := g.cloud.ShellColor(i)
		fill := dim(c, 0.25)
		if i == g.links.highlighted {
			fill = dim(c, 0.7)
		}
		vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), fill, false)
		vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 1, c, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Shell %d", i+1), r.x+8, r.y+(r.h-16)/2)
	}
}

// Layout keeps the surface at its load-time size; the cloud's center and
// radii are fixed when it is built.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) error {
	ebiten.SetWindowSize(cfg.Orbit.Width, cfg.Orbit.Height)
	ebiten.SetWindowTitle("one137 - electron shells")

	g, err := NewGame(cfg, nil)
	if err != nil {
		return err
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
