package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/platformer"
)

// drain streams s to the end and returns the sample count and peak level.
func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		sn, ok := s.Stream(buf)
		for _, smp := range buf[:sn] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		n += sn
		if !ok {
			break
		}
	}
	return n, peak
}

func TestOscillatorLength(t *testing.T) {
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, sampleRate)
	n, peak := drain(osc)
	assert.InDelta(t, 4800, n, 1)
	assert.LessOrEqual(t, peak, 1.0)
	assert.Greater(t, peak, 0.9)
	assert.NoError(t, osc.Err())
}

func TestOscillatorWaves(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw} {
		osc := NewSweep(200, 800, 20*time.Millisecond, wave, sampleRate)
		buf := make([][2]float64, 256)
		n, ok := osc.Stream(buf)
		require.True(t, ok)
		require.Equal(t, 256, n)
		for _, smp := range buf {
			assert.GreaterOrEqual(t, smp[0], -1.0)
			assert.LessOrEqual(t, smp[0], 1.0)
			assert.Equal(t, smp[0], smp[1])
		}
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	osc := NewOscillator(440, 50*time.Millisecond, WaveSquare, sampleRate)
	env := NewEnvelope(osc, 50*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, sampleRate)

	buf := make([][2]float64, 4)
	n, ok := env.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 4, n)
	assert.Equal(t, 0.0, buf[0][0])
	assert.Less(t, math.Abs(buf[1][0]), 0.01)
}

func TestBuiltinCues(t *testing.T) {
	tests := []struct {
		name    string
		build   CueFunc
		minSize int
	}{
		{"pickup", PickupSound, 7000},
		{"jump", JumpSound, 5700},
		{"crush", CrushSound, 11000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(tt.build(sampleRate))
			assert.GreaterOrEqual(t, n, tt.minSize)
			assert.Greater(t, peak, 0.0)
		})
	}
}

func TestPlayCueBeforeInit(t *testing.T) {
	p := NewPlayer()
	assert.NotPanics(t, func() {
		p.PlayCue(platformer.CueJump)
		p.PlayCue("unknown")
		p.Close()
	})
}

func TestPlayerStreamer(t *testing.T) {
	p := NewPlayer()

	for _, name := range []string{platformer.CuePickup, platformer.CueJump, platformer.CueCrush} {
		_, ok := p.streamer(name)
		assert.True(t, ok, "cue %q", name)
	}
	_, ok := p.streamer("unknown")
	assert.False(t, ok)

	p.Register("blip", func(rate beep.SampleRate) beep.Streamer {
		return NewOscillator(1000, 10*time.Millisecond, WaveSquare, rate)
	})
	s, ok := p.streamer("blip")
	require.True(t, ok)
	n, peak := drain(s)
	assert.InDelta(t, 480, n, 1)
	assert.InDelta(t, 1.0, peak, 1e-9)
}

func TestPlayerMuted(t *testing.T) {
	p := NewPlayer()
	p.SetVolume(0)

	s, ok := p.streamer(platformer.CuePickup)
	require.True(t, ok)
	_, peak := drain(s)
	assert.Equal(t, 0.0, peak)
}

func TestPlayerAttachedToWorld(t *testing.T) {
	level := platformer.Level{
		Name:   "audio",
		Width:  400,
		Height: 400,
		Spawn:  platformer.Vec2{X: 200, Y: 182.5},
		Obstacles: []platformer.Placement{
			{Kind: platformer.ObstacleWall, Box: platformer.Rect{X: 0, Y: 200, Width: 400, Height: 70}},
		},
	}
	w, err := platformer.NewWorld(platformer.DefaultConfig(), level)
	require.NoError(t, err)
	w.SetAudio(NewPlayer())

	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			w.Update(1.0/60, platformer.Input{JumpHeld: true, JumpPressed: i == 2})
		}
	})
}
