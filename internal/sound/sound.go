// Package sound plays short audible cues when electrons are added or removed.
package sound

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/one137/internal/config"
)

// Cue identifies a sound.
type Cue int

const (
	CueAdd Cue = iota
	CueRemove
)

const (
	sampleRate   = beep.SampleRate(44100)
	cueDuration  = 70 * time.Millisecond
	addFrequency = 880
	remFrequency = 587
)

// Player holds pre-rendered cue buffers. A zero or disabled Player is silent.
type Player struct {
	cues   map[Cue]*beep.Buffer
	volume float64
	ready  bool
}

// New renders the cues and initializes the speaker. Files named in the
// config replace the synthesized tones. Speaker failures are returned
// alongside a silent player so callers can log and carry on.
func New(cfg config.SoundConfig) (*Player, error) {
	if !cfg.Enabled {
		return &Player{}, nil
	}

	p, err := build(cfg)
	if err != nil {
		return &Player{}, err
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return &Player{}, fmt.Errorf("initializing speaker: %w", err)
	}
	p.ready = true
	return p, nil
}

func build(cfg config.SoundConfig) (*Player, error) {
	p := &Player{cues: map[Cue]*beep.Buffer{}, volume: cfg.Volume}

	sources := []struct {
		cue  Cue
		file string
		freq float64
	}{
		{CueAdd, cfg.AddFile, addFrequency},
		{CueRemove, cfg.RemoveFile, remFrequency},
	}
	for _, src := range sources {
		buf := newBuffer()
		if src.file == "" {
			buf.Append(Tone(sampleRate, src.freq, cueDuration, cfg.Volume))
		} else if err := appendFile(buf, src.file, cfg.Volume); err != nil {
			return nil, err
		}
		p.cues[src.cue] = buf
	}
	return p, nil
}

// Replace loads the sound file at path as cue c.
func (p *Player) Replace(c Cue, path string) error {
	if p == nil || p.cues == nil {
		return errors.New("sound is disabled")
	}
	buf := newBuffer()
	if err := appendFile(buf, path, p.volume); err != nil {
		return err
	}
	p.cues[c] = buf
	return nil
}

func newBuffer() *beep.Buffer {
	return beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
}

// Play starts a cue without blocking.
func (p *Player) Play(c Cue) {
	if p == nil || !p.ready {
		return
	}
	buf, ok := p.cues[c]
	if !ok {
		return
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
}

// Tone is a sine wave with a linear fade-out, so back-to-back cues do not click.
func Tone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) beep.Streamer {
	n := sr.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			t := float64(pos) / float64(sr)
			envelope := 1 - float64(pos)/float64(n)
			v := volume * envelope * math.Sin(2*math.Pi*freq*t)
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return i, true
	})
}

func appendFile(buf *beep.Buffer, path string, volume float64) error {
	streamer, format, err := decode(path)
	if err != nil {
		return err
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, s)
	}
	buf.Append(&effects.Gain{Streamer: s, Gain: volume - 1})
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, errors.New("unsupported sound file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return streamer, format, nil
}
