package platformer

import (
	"fmt"
	"os"
)

// debugStats holds per-tick collision metrics.
// Only reported when World.debug is true.
type debugStats struct {
	tested  int // exact rectangle tests run by the broadphase
	pushes  int
	crushes int
	pickups int
}

// debugLog prints the tick's collision stats and the player state to stderr.
func (w *World) debugLog(stats debugStats) {
	if !w.debug {
		return
	}
	p := w.player
	_, _ = fmt.Fprintf(os.Stderr,
		"[platformer] tick %d | tested: %d | pushes: %d | crushes: %d | pickups: %d\n",
		w.tick, stats.tested, stats.pushes, stats.crushes, stats.pickups)
	_, _ = fmt.Fprintf(os.Stderr,
		"[platformer] pos: (%.2f, %.2f) | vel: (%.2f, %.2f) | state: %s | gravity: %+.0f\n",
		p.position.X, p.position.Y, p.velocity.X, p.velocity.Y, p.State(), p.gravity)
	debugCheckEmbedded(w)
}

// debugCheckEmbedded warns on stderr if the player ended the tick inside a
// solid obstacle.
func debugCheckEmbedded(w *World) {
	hits := w.overlaps(w.player.HitBox(), false, nil)
	for _, o := range hits {
		_, _ = fmt.Fprintf(os.Stderr, "[platformer] warning: player embedded in %s %d at %v\n",
			o.Kind, o.ID, o.Box)
	}
}

// debugMaxItems is the live item count above which SetDebugMode warns.
const debugMaxItems = 1000

func debugCheckItemCount(w *World) {
	if len(w.items) > debugMaxItems {
		_, _ = fmt.Fprintf(os.Stderr, "[platformer] warning: level %q has %d items (threshold %d)\n",
			w.level.Name, len(w.items), debugMaxItems)
	}
}
