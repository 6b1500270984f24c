package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
)

// ErrNoTrack is returned when the ambient track cannot be opened.
var ErrNoTrack = errors.New("ambient track not found")

const bufferLatency = 100 * time.Millisecond

// Ambient plays one looping background track. Nothing is opened or played until
// Unlock, which the scene calls on the first cursor movement.
type Ambient struct {
	mu       sync.Mutex
	path     string
	volume   float64
	loop     bool
	stream   beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	unlocked bool
}

// NewAmbient prepares a player for the Ogg Vorbis file at path. volume is linear,
// 1 being the file's own level and 0 silent.
func NewAmbient(path string, volume float64, loop bool) *Ambient {
	return &Ambient{path: path, volume: volume, loop: loop}
}

// Unlock opens the track, starts the speaker and begins playback. Later calls do
// nothing, including after a failed first call.
func (a *Ambient) Unlock() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.unlocked {
		return nil
	}
	a.unlocked = true

	f, err := os.Open(a.path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNoTrack, a.path, err)
	}
	stream, format, err := vorbis.Decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", a.path, err)
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(bufferLatency)); err != nil {
		_ = stream.Close()
		return fmt.Errorf("speaker: %w", err)
	}

	a.stream = stream
	a.ctrl = Chain(stream, a.volume, a.loop)
	speaker.Play(a.ctrl)
	return nil
}

// Playing reports whether the track is currently audible.
func (a *Ambient) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctrl != nil && !a.ctrl.Paused
}

// SetPaused pauses or resumes playback.
func (a *Ambient) SetPaused(paused bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctrl == nil {
		return
	}
	speaker.Lock()
	a.ctrl.Paused = paused
	speaker.Unlock()
}

// Close stops playback and releases the track.
func (a *Ambient) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stream == nil {
		return nil
	}
	speaker.Clear()
	err := a.stream.Close()
	a.stream, a.ctrl = nil, nil
	return err
}

// Chain wraps s in an optional infinite loop, a volume stage and a pause control.
func Chain(s beep.StreamSeeker, volume float64, loop bool) *beep.Ctrl {
	var src beep.Streamer = s
	if loop {
		src = beep.Loop(-1, s)
	}
	level, silent := Gain(volume)
	return &beep.Ctrl{Streamer: &effects.Volume{
		Streamer: src,
		Base:     2,
		Volume:   level,
		Silent:   silent,
	}}
}

// Gain converts a linear volume to the base-2 exponent effects.Volume expects.
// Zero and below are silent.
func Gain(volume float64) (level float64, silent bool) {
	if volume <= 0 || math.IsNaN(volume) {
		return 0, true
	}
	return math.Log2(volume), false
}
