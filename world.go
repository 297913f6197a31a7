package platformer

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// EntityStore is the interface for optional ECS integration.
// When set on a World, gameplay events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event Event)
}

// AudioCue plays short sound cues. Calls are fire-and-forget.
type AudioCue interface {
	PlayCue(name string)
}

// Cue names passed to AudioCue.
const (
	CuePickup = "pickup"
	CueJump   = "jump"
	CueCrush  = "crush"
)

// Event carries gameplay data for the ECS bridge and logs.
type Event struct {
	Type    EventType
	Tick    uint64
	Attempt uuid.UUID
	// EntityID is the obstacle or item involved, 0 if none.
	EntityID uint32
	// Kind is the item kind for EventPickup.
	Kind string
	X, Y float64
}

// World owns the player, the obstacles and the live items of one level, and
// steps them once per tick. A World is not safe for concurrent use; all
// calls are expected from the single game loop goroutine.
type World struct {
	cfg   Config
	level Level

	player    *Player
	obstacles []*Obstacle
	movers    []*Obstacle
	items     []*Item
	index     *spatialIndex
	queryBuf  []*Obstacle

	cameras []*Camera

	audio  AudioCue
	store  EntityStore
	logger *slog.Logger
	debug  bool
	stats  debugStats

	tick        uint64
	injectQueue []Input
	replay      *Replay
	pushTarget  playerPushTarget
}

// NewWorld validates cfg and level and builds every entity of the level.
func NewWorld(cfg Config, level Level) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}

	w := &World{
		cfg:      cfg,
		level:    level,
		index:    newSpatialIndex(level.Bounds(), cfg.TileSize),
		queryBuf: make([]*Obstacle, 0, 16),
		logger:   slog.New(slog.DiscardHandler),
	}
	w.pushTarget.w = w

	for _, pl := range level.Obstacles {
		var o *Obstacle
		if pl.Kind == ObstacleMovingWall {
			o = NewMovingWall(pl.Box, pl.Path)
			w.movers = append(w.movers, o)
		} else {
			o = NewWall(pl.Box)
		}
		o.Bounce = pl.bounce()
		w.obstacles = append(w.obstacles, o)
		w.index.add(o)
	}
	for _, ip := range level.Items {
		w.items = append(w.items, newItem(ip.Kind, ip.Position, &w.cfg))
	}
	w.player = newPlayer(level.Spawn, cfg.HitBox)
	return w, nil
}

// Player returns the player body.
func (w *World) Player() *Player { return w.player }

// Obstacles returns every obstacle of the level, static and moving.
// The returned slice MUST NOT be mutated.
func (w *World) Obstacles() []*Obstacle { return w.obstacles }

// Items returns the live items. Collected items are no longer listed.
// The returned slice MUST NOT be mutated.
func (w *World) Items() []*Item { return w.items }

// Level returns the level the world was built from.
func (w *World) Level() Level { return w.level }

// Config returns the tuning the world runs with.
func (w *World) Config() Config { return w.cfg }

// Tick returns the number of completed Update calls.
func (w *World) Tick() uint64 { return w.tick }

// SetAudio sets the sound cue sink. nil disables sound.
func (w *World) SetAudio(a AudioCue) { w.audio = a }

// SetEntityStore sets the optional ECS bridge.
func (w *World) SetEntityStore(store EntityStore) { w.store = store }

// SetLogger sets the logger for lifecycle records (respawns, crushes,
// pickups). nil discards them.
func (w *World) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	w.logger = l
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick
// collision stats are printed to stderr.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
	if enabled {
		debugCheckItemCount(w)
	}
}

// Update advances the world by dt seconds. dt is the measured frame duration
// and is never read from a clock here; negative values are treated as zero,
// and a zero dt leaves every body where it is.
//
// Order within a tick is fixed: queued or scripted input replaces in, then
// gravity-flip, respawn and move mode controls, the player's own motion, the moving
// obstacles (which may push the player), item animation and cameras.
// Every push and its crush check completes before Update returns.
func (w *World) Update(dt float64, in Input) {
	if dt < 0 {
		dt = 0
	}
	if w.replay != nil {
		w.replay.step(w)
	}
	if q, ok := w.nextInjected(); ok {
		in = q
	}
	w.tick++
	w.stats = debugStats{}
	w.index.tested = 0

	if in.FlipGravity {
		w.FlipGravity()
	}
	if in.Respawn {
		w.Respawn()
	}
	if m, ok := in.mode(); ok {
		w.SetMoveMode(m)
	}

	if dt > 0 {
		w.player.move(w, dt, in)
	}

	for _, o := range w.movers {
		o.Move(dt, &w.pushTarget)
		w.index.update(o)
	}
	for _, it := range w.items {
		it.Update()
	}
	for _, cam := range w.cameras {
		cam.update(dt)
	}

	if w.debug {
		w.stats.tested = w.index.tested
		w.debugLog(w.stats)
	}
}

// FlipGravity inverts the player's gravity orientation.
func (w *World) FlipGravity() {
	p := w.player
	p.gravity = -p.gravity
	p.onGround = false
	p.platform = nil
	w.emit(Event{Type: EventGravityFlipped, X: p.position.X, Y: p.position.Y})
	w.logger.Debug("gravity flipped", "tick", w.tick, "orientation", p.gravity)
}

// SetMoveMode switches the player between jump and spin movement. Switching
// drops any ground, jump and platform state; velocity is kept.
func (w *World) SetMoveMode(m MoveMode) {
	p := w.player
	if p.mode == m {
		return
	}
	p.mode = m
	p.onGround = false
	p.jumping = false
	p.platform = nil
	w.logger.Debug("move mode changed", "tick", w.tick, "mode", m)
}

// Respawn resets the player to the level's spawn point.
func (w *World) Respawn() {
	w.player.reset(w.level.Spawn)
	w.emit(Event{Type: EventRespawned, X: w.level.Spawn.X, Y: w.level.Spawn.Y})
	w.logger.Info("player respawned", "tick", w.tick, "attempt", w.player.attempt)
}

// crush handles a player pushed into solid geometry by a moving obstacle.
func (w *World) crush(by *Obstacle) {
	p := w.player
	w.stats.crushes++
	w.emit(Event{Type: EventCrushed, EntityID: by.ID, X: p.position.X, Y: p.position.Y})
	w.logger.Info("player crushed", "tick", w.tick, "obstacle", by.ID, "x", p.position.X, "y", p.position.Y)
	w.playCue(CueCrush)
	w.Respawn()
}

// collectItems removes every live item overlapping box.
func (w *World) collectItems(box Rect) {
	kept := w.items[:0]
	for _, it := range w.items {
		if !box.Intersects(it.HitBox()) {
			kept = append(kept, it)
			continue
		}
		w.stats.pickups++
		w.emit(Event{Type: EventPickup, EntityID: it.ID, Kind: it.Kind, X: it.position.X, Y: it.position.Y})
		w.logger.Debug("item collected", "tick", w.tick, "item", it.ID, "kind", it.Kind)
		w.playCue(CuePickup)
	}
	for i := len(kept); i < len(w.items); i++ {
		w.items[i] = nil
	}
	w.items = kept
}

func (w *World) emit(e Event) {
	if w.store == nil {
		return
	}
	e.Tick = w.tick
	e.Attempt = w.player.attempt
	w.store.EmitEvent(e)
}

func (w *World) playCue(name string) {
	if w.audio != nil {
		w.audio.PlayCue(name)
	}
}

// NewCamera creates a camera with the given viewport, bounded to the level,
// and adds it to the world. Cameras are updated at the end of every tick.
func (w *World) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	cam.SetBounds(w.level.Bounds())
	w.cameras = append(w.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the world.
func (w *World) RemoveCamera(cam *Camera) {
	for i, c := range w.cameras {
		if c == cam {
			w.cameras = append(w.cameras[:i], w.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the world's camera list. The returned slice MUST NOT be mutated.
func (w *World) Cameras() []*Camera { return w.cameras }

// playerPushTarget exposes the player to moving obstacles.
type playerPushTarget struct {
	w *World
}

func (t *playerPushTarget) HitBox() Rect { return t.w.player.HitBox() }

func (t *playerPushTarget) Push(p Push) { t.w.player.applyPush(t.w, p) }
