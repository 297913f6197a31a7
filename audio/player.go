// Package audio plays the short sound cues a platformer.World asks for,
// synthesized with beep. Attach a Player with World.SetAudio.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/phanxgames/platformer"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Player maps cue names to synthesized sounds and mixes them onto the
// speaker. PlayCue is safe to call from the game loop; before Init it does
// nothing, so worlds can run headless with a Player attached.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	cues        map[string]CueFunc
	initialized bool
}

var _ platformer.AudioCue = (*Player)(nil)

// NewPlayer creates a player with the built-in pickup, jump and crush cues.
func NewPlayer() *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		rate:   sampleRate,
		volume: 1,
		cues: map[string]CueFunc{
			platformer.CuePickup: PickupSound,
			platformer.CueJump:   JumpSound,
			platformer.CueCrush:  CrushSound,
		},
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every playing cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Register adds or replaces a cue.
func (p *Player) Register(name string, build CueFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cues[name] = build
}

// SetVolume sets the linear master volume; 0 mutes.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
}

// PlayCue implements platformer.AudioCue. Unknown names are ignored.
func (p *Player) PlayCue(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, ok := p.streamer(name)
	if !ok {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// streamer builds one playback of the named cue at the master volume.
// Callers hold p.mu.
func (p *Player) streamer(name string) (beep.Streamer, bool) {
	build, ok := p.cues[name]
	if !ok {
		return nil, false
	}
	return newVolume(build(p.rate), p.volume), true
}
