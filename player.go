package platformer

import (
	"math"

	"github.com/google/uuid"
)

// MotionState is the player's position in the jump state machine.
type MotionState uint8

const (
	StateGrounded MotionState = iota // standing on a floor or glued to a platform
	StateFalling                     // airborne without having jumped (walked off an edge)
	StateJumping                     // airborne after a jump
)

// String returns a short lowercase name for the state.
func (s MotionState) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateFalling:
		return "falling"
	case StateJumping:
		return "jumping"
	default:
		return "unknown"
	}
}

// MoveMode selects how input drives the player.
type MoveMode uint8

const (
	MoveJump MoveMode = iota // walk and jump under gravity
	MoveSpin                 // float free, turn and thrust along the heading
)

// String returns a short lowercase name for the mode.
func (m MoveMode) String() string {
	switch m {
	case MoveJump:
		return "jump"
	case MoveSpin:
		return "spin"
	default:
		return "unknown"
	}
}

// Player is the physics body the user controls. Its position is the center
// of its hit box, and the hit box is always derived from the position at the
// moment it is tested, never cached.
type Player struct {
	attempt uuid.UUID

	position     Vec2
	velocity     Vec2
	acceleration Vec2
	displacement Vec2 // last tick's integrated position delta
	size         Vec2

	onGround bool
	jumping  bool
	gravity  float64   // +1 pulls toward +Y, -1 toward -Y
	platform *Obstacle // moving obstacle being ridden, if any
	airJumps int

	mode      MoveMode
	heading   float64 // degrees in [0, 360), counterclockwise on screen from +X
	turnRate  float64 // degrees per second
	turnAccel float64
}

func newPlayer(spawn, size Vec2) *Player {
	return &Player{
		attempt:  uuid.New(),
		position: spawn,
		size:     size,
		gravity:  1,
	}
}

// Attempt identifies the current playthrough attempt. It changes on every
// respawn.
func (p *Player) Attempt() uuid.UUID { return p.attempt }

// Position returns the center of the hit box.
func (p *Player) Position() Vec2 { return p.position }

// Velocity returns the current velocity.
func (p *Player) Velocity() Vec2 { return p.velocity }

// Acceleration returns the acceleration used by the last tick.
func (p *Player) Acceleration() Vec2 { return p.acceleration }

// Displacement returns the position delta integrated by the last tick.
func (p *Player) Displacement() Vec2 { return p.displacement }

// HitBox returns the collision rectangle at the current position.
func (p *Player) HitBox() Rect { return hitBoxAt(p.position, p.size) }

// OnGround reports whether the player is supported this tick.
func (p *Player) OnGround() bool { return p.onGround }

// Jumping reports whether a jump is in progress.
func (p *Player) Jumping() bool { return p.jumping }

// GravityOrientation returns +1 for normal gravity and -1 when inverted.
func (p *Player) GravityOrientation() float64 { return p.gravity }

// Platform returns the moving obstacle the player is riding, or nil.
func (p *Player) Platform() *Obstacle { return p.platform }

// Mode returns the current move mode.
func (p *Player) Mode() MoveMode { return p.mode }

// Heading returns the spin mode facing in degrees, counterclockwise on
// screen from +X.
func (p *Player) Heading() float64 { return p.heading }

// TurnRate returns the heading's angular velocity in degrees per second.
func (p *Player) TurnRate() float64 { return p.turnRate }

// State returns the jump state machine state.
func (p *Player) State() MotionState {
	switch {
	case p.onGround:
		return StateGrounded
	case p.jumping:
		return StateJumping
	default:
		return StateFalling
	}
}

// reset puts the player back at spawn with a fresh attempt ID. Gravity
// orientation and move mode are kept.
func (p *Player) reset(spawn Vec2) {
	p.attempt = uuid.New()
	p.position = spawn
	p.velocity = Vec2{}
	p.acceleration = Vec2{}
	p.displacement = Vec2{}
	p.onGround = false
	p.jumping = false
	p.platform = nil
	p.airJumps = 0
	p.heading = 0
	p.turnRate = 0
	p.turnAccel = 0
}

// move runs one tick of the player: integrate, resolve X then Y against
// obstacles, then collect overlapping items.
func (p *Player) move(w *World, dt float64, in Input) {
	if p.mode == MoveSpin {
		p.spin(w, dt, in)
		return
	}
	cfg := &w.cfg
	prevY := p.position.Y

	p.acceleration = Vec2{0, cfg.Gravity * p.gravity}
	p.applyInput(w, in)

	// Linear drag. Friction is negative, so this opposes velocity.
	p.acceleration = p.acceleration.Add(p.velocity.Scale(cfg.Friction))

	// vf = vi + a*t
	p.velocity = p.velocity.Add(p.acceleration.Scale(dt))
	// d = v*t + a*t²/2
	p.displacement = p.velocity.Scale(dt).Add(p.acceleration.Scale(0.5 * dt * dt))
	p.position = p.position.Add(p.displacement)

	p.wrap(w)
	p.resolveX(w, prevY)
	p.resolveY(w, dt)
	w.collectItems(p.HitBox())
}

// spin runs one spin mode tick. There is no gravity: Left and Right turn,
// Forward and Back thrust along the heading, and obstacles bounce the player
// back instead of stopping it.
func (p *Player) spin(w *World, dt float64, in Input) {
	cfg := &w.cfg
	prevY := p.position.Y

	p.acceleration = Vec2{}
	p.turnAccel = 0
	if in.Left {
		p.turnAccel = cfg.SpinTurn
	}
	if in.Right {
		p.turnAccel = -cfg.SpinTurn
	}
	// Heading is counterclockwise on screen, Rotate is clockwise.
	if in.Forward {
		p.acceleration = Vec2{cfg.SpinThrust, 0}.Rotate(-p.heading)
	}
	if in.Back {
		p.acceleration = Vec2{-cfg.SpinThrust / 3, 0}.Rotate(-p.heading)
	}

	p.acceleration = p.acceleration.Add(p.velocity.Scale(cfg.SpinFriction))
	p.velocity = p.velocity.Add(p.acceleration.Scale(dt))
	p.displacement = p.velocity.Scale(dt).Add(p.acceleration.Scale(0.5 * dt * dt))
	p.position = p.position.Add(p.displacement)

	p.turnAccel += p.turnRate * cfg.SpinFriction
	p.turnRate += p.turnAccel * dt
	p.heading = math.Mod(p.heading+p.turnRate*dt+0.5*p.turnAccel*dt*dt, 360)
	if p.heading < 0 {
		p.heading += 360
	}

	p.wrap(w)
	p.rebound(w, prevY)
	w.collectItems(p.HitBox())
}

// wrap teleports the player to the opposite side of a wrapping level.
func (p *Player) wrap(w *World) {
	if !w.level.WrapHorizontal {
		return
	}
	if p.position.X < 0 {
		p.position.X = w.level.Width
	} else if p.position.X > w.level.Width {
		p.position.X = 0
	}
}

// rebound clamps a spinning player out of obstacles, X then Y, and reflects
// the velocity component scaled by the struck obstacle's Bounce.
func (p *Player) rebound(w *World, prevY float64) {
	if hits := w.collide(Vec2{p.position.X, prevY}, p.size, false); len(hits) > 0 {
		by, _ := p.clamp(hits, AxisX)
		p.velocity.X *= -by.Bounce
	}
	if hits := w.collide(p.position, p.size, false); len(hits) > 0 {
		by, _ := p.clamp(hits, AxisY)
		p.velocity.Y *= -by.Bounce
	}
}

// clamp moves the player out of hits along axis to the outer edge of the hit
// set. It returns the obstacle owning that edge and the side it lies on, +1
// when it is in the positive direction.
func (p *Player) clamp(hits []*Obstacle, axis Axis) (*Obstacle, float64) {
	o := axisExtremes(hits, axis)
	pos, vel, half := &p.position.X, p.velocity.X, p.size.X/2
	if axis == AxisY {
		pos, vel, half = &p.position.Y, p.velocity.Y, p.size.Y/2
	}
	if travelSide(vel, *pos, o) > 0 {
		*pos = o.near - half
		return o.nearBy, 1
	}
	*pos = o.far + half
	return o.farBy, -1
}

func (p *Player) applyInput(w *World, in Input) {
	cfg := &w.cfg
	if in.Left {
		p.acceleration.X = -cfg.Acceleration
	}
	if in.Right {
		p.acceleration.X = cfg.Acceleration
	}

	held := in.JumpHeld || in.JumpPressed
	switch {
	case held && p.onGround && !p.jumping:
		p.jump(w, 0)
	case in.JumpPressed && !p.onGround:
		if side := p.wallSide(w); side != 0 {
			p.jump(w, -side)
		} else if p.airJumps > 0 {
			p.airJumps--
			p.jump(w, 0)
		}
	}
}

// jump starts a jump. away is 0 for a plain jump, or ±1 to kick off a wall
// toward that X direction.
func (p *Player) jump(w *World, away float64) {
	p.jumping = true
	p.velocity.Y = w.cfg.JumpImpulse * p.gravity
	w.playCue(CueJump)
	if away != 0 {
		p.velocity.X = w.cfg.WallJumpImpulse * away
		w.emit(Event{Type: EventWallJumped, X: p.position.X, Y: p.position.Y})
		return
	}
	w.emit(Event{Type: EventJumped, X: p.position.X, Y: p.position.Y})
}

// wallSide looks one unit to each side for a wall and returns +1 for a wall
// on the right, -1 on the left, 0 for none. Grounded players never report a
// wall.
func (p *Player) wallSide(w *World) float64 {
	if p.onGround {
		return 0
	}
	if len(w.collide(p.position.Add(Vec2{1, 0}), p.size, false)) > 0 {
		return 1
	}
	if len(w.collide(p.position.Add(Vec2{-1, 0}), p.size, false)) > 0 {
		return -1
	}
	return 0
}

// resolveX clamps the player horizontally. The hit box keeps last tick's
// resolved Y so that floors and ceilings are not mistaken for walls.
func (p *Player) resolveX(w *World, prevY float64) {
	hits := w.collide(Vec2{p.position.X, prevY}, p.size, false)
	if len(hits) == 0 {
		return
	}
	p.clamp(hits, AxisX)
	p.velocity.X = 0

	// Slide down walls slowly when falling beside one.
	if !p.onGround && p.velocity.Y*p.gravity > 0 {
		p.velocity.Y *= w.cfg.WallSlide
	}
}

// resolveY clamps the player vertically and updates ground, jump and
// platform state.
func (p *Player) resolveY(w *World, dt float64) {
	wasGround := p.onGround

	hits := w.collide(p.position, p.size, false)
	if len(hits) > 0 {
		support, side := p.clamp(hits, AxisY)
		if side != p.gravity {
			// Ceiling bump.
			p.onGround = false
			p.velocity.Y = 0
			p.platform = nil
			return
		}

		p.onGround = true
		p.jumping = false
		p.airJumps = w.cfg.AirJumps
		if !wasGround {
			w.emit(Event{Type: EventLanded, EntityID: support.ID, X: p.position.X, Y: p.position.Y})
		}

		if support.Moving() {
			pv := support.Velocity()
			p.carry(w, support, dt)
			if pv.Y*p.gravity > 0 {
				// The platform is sinking away; ride it instead of stopping.
				p.velocity.Y = pv.Y
				p.platform = support
				return
			}
		}
		p.velocity.Y = 0
		p.platform = nil
		return
	}

	if p.platform != nil && !p.jumping {
		// Walked or got left behind off a platform: redo this tick's vertical
		// motion at the platform's speed so there is no velocity jump.
		pv := p.platform.Velocity()
		p.position.Y -= p.displacement.Y
		if pv.Y*p.gravity > 0 {
			p.velocity.Y = pv.Y
		} else {
			p.velocity.Y = 0
		}
		p.displacement.Y = p.velocity.Y * dt
		p.position.Y += p.displacement.Y
	}
	p.platform = nil

	// Stay glued to a moving platform just past the feet, unless heading
	// away from it.
	if p.velocity.Y*p.gravity >= 0 {
		near := p.HitBox().Offset(Vec2{0, w.cfg.PlatformProximity * p.gravity})
		if plats := w.overlaps(near, true, nil); len(plats) > 0 {
			p.onGround = true
			p.carry(w, plats[0], dt)
			return
		}
	}
	if wasGround && !p.jumping {
		// Walked off an edge: the unused ground jump costs an air jump.
		p.airJumps = max(p.airJumps-1, 0)
	}
	p.onGround = false
}

// carry moves the player along with a supporting platform's horizontal
// motion. A platform closing in on the player is skipped: its own push
// carries the player when it arrives. A carry that would end inside solid
// geometry is dropped.
func (p *Player) carry(w *World, by *Obstacle, dt float64) {
	v := by.Velocity()
	if v.X == 0 || v.Y*p.gravity < 0 {
		return
	}
	moved := p.position.Add(Vec2{v.X * dt, 0})
	if len(w.overlaps(hitBoxAt(moved, p.size), false, by)) > 0 {
		return
	}
	p.position = moved
}

// applyPush moves the player as instructed by a moving obstacle, then checks
// whether the push crushed it into solid geometry. A crush is not resolved
// softly: the player respawns.
func (p *Player) applyPush(w *World, push Push) {
	p.position = p.position.Add(push.Delta)
	w.stats.pushes++
	if len(w.overlaps(p.HitBox(), false, nil)) > 0 {
		w.crush(push.By)
	}
}
