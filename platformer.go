package platformer

import "math"

// Vec2 is a 2D vector used for positions, velocities, accelerations and sizes
// throughout the API. Units are world units (pixels at zoom 1).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Rotate returns v rotated by deg degrees. With Y increasing downward a
// positive angle turns clockwise on screen: (1, 0) rotated by 90 is (0, 1).
func (v Vec2) Rotate(deg float64) Vec2 {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// CenteredAt returns a rectangle of the given size centered on c.
func CenteredAt(c, size Vec2) Rect {
	return Rect{X: c.X - size.X/2, Y: c.Y - size.Y/2, Width: size.X, Height: size.Y}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 {
	return Vec2{r.Width, r.Height}
}

// Offset returns the rectangle translated by d.
func (r Rect) Offset(d Vec2) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap with a non-zero area.
// Adjacent rectangles (sharing only an edge) do not intersect, so a body
// clamped flush against a wall is not in contact with it.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// contactEpsilon is the minimum penetration, per axis, that counts as an
// overlap during collision queries. Clamping computes edge - half and the
// hit box is rebuilt as pos + half, which can land one ulp inside the
// obstacle.
const contactEpsilon = 1e-7

// penetrates is Intersects with contactEpsilon slack on every edge.
func penetrates(a, b Rect) bool {
	return a.X < b.X+b.Width-contactEpsilon &&
		a.X+a.Width > b.X+contactEpsilon &&
		a.Y < b.Y+b.Height-contactEpsilon &&
		a.Y+a.Height > b.Y+contactEpsilon
}

// hitBoxAt is the collision geometry of a body of the given size whose
// authoritative position is its center.
func hitBoxAt(pos, size Vec2) Rect {
	return CenteredAt(pos, size)
}

// ObstacleKind tags a static or scripted collider.
type ObstacleKind uint8

const (
	ObstacleWall       ObstacleKind = iota // static solid rectangle
	ObstacleMovingWall                     // solid rectangle following a Path
)

// String returns the map type tag for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleWall:
		return "wall"
	case ObstacleMovingWall:
		return "moving-wall"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of world event.
type EventType uint8

const (
	EventLanded         EventType = iota // player resolved a floor contact after being airborne
	EventJumped                          // ground or air jump started
	EventWallJumped                      // jump off a wall while airborne
	EventPickup                          // item collected and removed
	EventCrushed                         // moving obstacle pushed the player into solid geometry
	EventRespawned                       // player reset to the level spawn point
	EventGravityFlipped                  // gravity orientation inverted
)

// String returns a short lowercase name for the event type.
func (t EventType) String() string {
	switch t {
	case EventLanded:
		return "landed"
	case EventJumped:
		return "jumped"
	case EventWallJumped:
		return "wall-jumped"
	case EventPickup:
		return "pickup"
	case EventCrushed:
		return "crushed"
	case EventRespawned:
		return "respawned"
	case EventGravityFlipped:
		return "gravity-flipped"
	default:
		return "unknown"
	}
}
