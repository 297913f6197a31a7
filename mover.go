package platformer

import (
	"errors"
	"fmt"
	"math"
)

// Segment is one leg of a moving obstacle's route.
type Segment struct {
	// Speed in world units per second.
	Speed float64 `toml:"speed" json:"speed"`
	// Angle is the direction of travel in degrees, clockwise from +X on a
	// y-down screen (0 = right, 90 = down).
	Angle float64 `toml:"angle" json:"angle"`
	// Distance is how far the leg travels before the next one starts.
	Distance float64 `toml:"distance" json:"distance"`
}

// direction returns the unit vector of travel. Components within rounding
// noise of zero are zeroed so axis-aligned legs stay exactly axis-aligned.
func (s Segment) direction() Vec2 {
	d := Vec2{1, 0}.Rotate(s.Angle)
	if math.Abs(d.X) < 1e-12 {
		d.X = 0
	}
	if math.Abs(d.Y) < 1e-12 {
		d.Y = 0
	}
	return d
}

// Path is a scripted route. When LoopsBack is set the segments are followed
// by the same legs in reverse order with negated velocity, returning the
// obstacle to where it started.
type Path struct {
	Segments  []Segment `toml:"segments" json:"segments"`
	LoopsBack bool      `toml:"loops_back" json:"loopsBack"`
}

// ErrInvalidPath is wrapped by every error returned from Path.Validate.
var ErrInvalidPath = errors.New("invalid path")

// Validate checks the path at load time; per-tick code assumes it passed.
func (p Path) Validate() error {
	for i, s := range p.Segments {
		if !(s.Speed > 0) || math.IsInf(s.Speed, 0) {
			return fmt.Errorf("%w: segment %d speed %v must be positive", ErrInvalidPath, i, s.Speed)
		}
		if !(s.Distance > 0) || math.IsInf(s.Distance, 0) {
			return fmt.Errorf("%w: segment %d distance %v must be positive", ErrInvalidPath, i, s.Distance)
		}
		if math.IsNaN(s.Angle) || math.IsInf(s.Angle, 0) {
			return fmt.Errorf("%w: segment %d angle %v", ErrInvalidPath, i, s.Angle)
		}
	}
	return nil
}

// leg is a Segment as followed at runtime; return legs run backwards.
type leg struct {
	Segment
	returning bool
}

func (l leg) velocity() Vec2 {
	v := l.direction().Scale(l.Speed)
	if l.returning {
		v = v.Scale(-1)
	}
	return v
}

func (l leg) end(start Vec2) Vec2 {
	d := l.direction().Scale(l.Distance)
	if l.returning {
		d = d.Scale(-1)
	}
	return start.Add(d)
}

// mover is the path-following state of a moving obstacle.
type mover struct {
	legs      []leg
	index     int
	position  Vec2 // authoritative center
	start     Vec2 // where the current leg began
	velocity  Vec2
	completed int
}

func newMover(pos Vec2, path Path) *mover {
	legs := make([]leg, 0, 2*len(path.Segments))
	for _, s := range path.Segments {
		legs = append(legs, leg{Segment: s})
	}
	if path.LoopsBack {
		for i := len(path.Segments) - 1; i >= 0; i-- {
			legs = append(legs, leg{Segment: path.Segments[i], returning: true})
		}
	}
	m := &mover{legs: legs, position: pos, start: pos}
	if len(legs) > 0 {
		m.velocity = legs[0].velocity()
	}
	return m
}

// sweep returns the area box covers while following one full cycle of legs
// from the current position. Legs are straight, so the leg ends bound it.
func (m *mover) sweep(box Rect) Rect {
	out := box
	pos := m.position
	for _, l := range m.legs {
		pos = l.end(pos)
		out = unionRect(out, CenteredAt(pos, box.Size()))
	}
	return out
}

// advance moves to the next leg once the current one has been covered.
// Distance is measured from the leg start, so the result does not depend on
// the frame rate. At most one leg completes per call.
func (m *mover) advance() bool {
	if len(m.legs) == 0 {
		return false
	}
	cur := m.legs[m.index]
	if m.position.Dist(m.start) < cur.Distance {
		return false
	}
	end := cur.end(m.start)
	m.position = end
	m.start = end
	m.index = (m.index + 1) % len(m.legs)
	m.completed++
	m.velocity = m.legs[m.index].velocity()
	return true
}

// Axis names the axis a push was resolved on.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Push is the displacement a moving obstacle applies to a body it ran into.
type Push struct {
	By    *Obstacle
	Axis  Axis
	Delta Vec2
}

// Pushable is a body that moving obstacles shove out of their way.
type Pushable interface {
	HitBox() Rect
	Push(p Push)
}

// Move advances a moving obstacle by dt seconds, one axis at a time. After
// each axis, a target whose hit box the obstacle now overlaps is pushed to
// the outside edge on the side the obstacle is travelling towards. A push on
// the Y axis also carries the target horizontally by the obstacle's X motion.
// Static obstacles ignore Move. target may be nil.
func (o *Obstacle) Move(dt float64, target Pushable) {
	m := o.mover
	if m == nil || dt <= 0 {
		return
	}

	m.position.X += m.velocity.X * dt
	o.syncBox()
	if target != nil && m.velocity.X != 0 {
		body := target.HitBox()
		if penetrates(o.Box, body) {
			var x float64
			if m.velocity.X > 0 {
				x = o.Box.Right() + body.Width/2
			} else {
				x = o.Box.Left() - body.Width/2
			}
			target.Push(Push{By: o, Axis: AxisX, Delta: Vec2{x - body.Center().X, 0}})
		}
	}

	m.position.Y += m.velocity.Y * dt
	o.syncBox()
	if target != nil && m.velocity.Y != 0 {
		body := target.HitBox()
		if penetrates(o.Box, body) {
			var y float64
			if m.velocity.Y > 0 {
				y = o.Box.Bottom() + body.Height/2
			} else {
				y = o.Box.Top() - body.Height/2
			}
			target.Push(Push{By: o, Axis: AxisY, Delta: Vec2{m.velocity.X * dt, y - body.Center().Y}})
		}
	}

	if m.advance() {
		o.syncBox()
	}
}
