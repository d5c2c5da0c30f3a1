package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/one137/internal/orbit"
	"github.com/iburimskiy/one137/internal/sound"
)

type pickResult struct {
	path string
	err  error
}

// showShellInfo opens a native dialog without blocking the game loop.
func showShellInfo(shell int) {
	go func() {
		err := zenity.Info(orbit.Describe(shell),
			zenity.Title(fmt.Sprintf("Shell %d", shell+1)),
			zenity.InfoIcon,
		)
		if err != nil && !errors.Is(err, zenity.ErrCanceled) {
			log.Printf("game: shell dialog: %v", err)
		}
	}()
}

func selectCueFile() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Choose the add-electrons sound"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
}

// chooseCueFile asks for a sound file off the game loop. Update picks up
// the answer.
func (g *Game) chooseCueFile() {
	if g.choosing {
		return
	}
	g.choosing = true
	go func() {
		path, err := g.selectFile()
		g.picked <- pickResult{path: path, err: err}
	}()
}

func (g *Game) applyCueFile(res pickResult) {
	if errors.Is(res.err, zenity.ErrCanceled) {
		return
	}
	if res.err != nil {
		log.Printf("game: file dialog: %v", res.err)
		g.lastErr = res.err
		return
	}
	if err := g.player.Replace(sound.CueAdd, res.path); err != nil {
		log.Printf("game: loading %s: %v", res.path, err)
		g.lastErr = err
		return
	}
	log.Printf("game: add cue set to %s", res.path)
	g.lastErr = nil
	g.player.Play(sound.CueAdd)
}
