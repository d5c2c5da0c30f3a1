package sound

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/one137/internal/config"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		out = append(out, chunk[:n]...)
		if !ok {
			return out
		}
	}
}

func TestToneLengthAndAmplitude(t *testing.T) {
	samples := drain(Tone(sampleRate, 440, 50*time.Millisecond, 0.3))
	if want := sampleRate.N(50 * time.Millisecond); len(samples) != want {
		t.Fatalf("expected %d samples, got %d", want, len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("tone should start at zero, got %v", samples[0][0])
	}
	peak := 0.0
	for i, s := range samples {
		if s[0] != s[1] {
			t.Fatalf("sample %d: channels differ", i)
		}
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak > 0.3 || peak < 0.1 {
		t.Errorf("peak %v outside (0.1, 0.3]", peak)
	}
	if last := math.Abs(samples[len(samples)-1][0]); last > 0.01 {
		t.Errorf("tone should fade out, last sample %v", last)
	}
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p, err := New(config.SoundConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.Play(CueAdd) // must not touch the speaker

	var nilPlayer *Player
	nilPlayer.Play(CueRemove)
}

func TestBuildSynthesizesBothCues(t *testing.T) {
	p, err := build(config.SoundConfig{Enabled: true, Volume: 0.5})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, c := range []Cue{CueAdd, CueRemove} {
		buf, ok := p.cues[c]
		if !ok {
			t.Fatalf("missing cue %d", c)
		}
		if buf.Len() != sampleRate.N(cueDuration) {
			t.Errorf("cue %d: got %d samples", c, buf.Len())
		}
	}
	if p.ready {
		t.Error("build must not mark the player ready without a speaker")
	}
}

func TestBuildLoadsWavFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "add.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, Tone(sampleRate, 660, 20*time.Millisecond, 0.8), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	p, err := build(config.SoundConfig{Enabled: true, Volume: 1, AddFile: path})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got, want := p.cues[CueAdd].Len(), sampleRate.N(20*time.Millisecond); got != want {
		t.Errorf("loaded cue: got %d samples, want %d", got, want)
	}
}

func TestBuildRejectsUnknownFileType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := build(config.SoundConfig{Enabled: true, RemoveFile: path}); err == nil {
		t.Fatal("expected an error for .ogg")
	}
	if _, err := build(config.SoundConfig{Enabled: true, AddFile: filepath.Join(t.TempDir(), "missing.wav")}); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestReplaceCue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pop.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, Tone(sampleRate, 330, 30*time.Millisecond, 0.5), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	p, err := build(config.SoundConfig{Enabled: true, Volume: 1})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := p.Replace(CueAdd, path); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got, want := p.cues[CueAdd].Len(), sampleRate.N(30*time.Millisecond); got != want {
		t.Errorf("replaced cue: got %d samples, want %d", got, want)
	}

	silent, _ := New(config.SoundConfig{})
	if err := silent.Replace(CueAdd, path); err == nil {
		t.Error("a disabled player should refuse new cues")
	}
}
