package platformer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefresh is how often, in seconds, the HUD text is rebuilt.
const hudRefresh = 0.5

// DebugHUD is an on-screen readout of frame rates and player state.
// Call Update once per tick and Draw from the game's Draw.
type DebugHUD struct {
	world *World
	text  string
	since float64
}

// NewDebugHUD creates a HUD for w. The first Update fills the text.
func NewDebugHUD(w *World) *DebugHUD {
	return &DebugHUD{world: w, since: hudRefresh}
}

// Update rebuilds the text every hudRefresh seconds.
func (h *DebugHUD) Update(dt float64) {
	h.since += dt
	if h.since < hudRefresh {
		return
	}
	h.since = 0
	h.text = hudText(h.world, ebiten.ActualFPS(), ebiten.ActualTPS())
}

// Text returns the current readout.
func (h *DebugHUD) Text() string { return h.text }

// Draw prints the readout in the top-left corner of screen.
func (h *DebugHUD) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, h.text)
}

func hudText(w *World, fps, tps float64) string {
	p := w.player
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s  %s  tick %d\npos (%.1f, %.1f)  vel (%.1f, %.1f)\nitems %d  gravity %+.0f",
		fps, tps, p.mode, p.State(), w.tick,
		p.position.X, p.position.Y, p.velocity.X, p.velocity.Y,
		len(w.items), p.gravity)
}
