package platformer

// Obstacle is a solid rectangle the player cannot pass through. Static walls
// never change after placement. Moving walls carry a mover that advances
// Box along a scripted Path each tick; use Moving to tell them apart.
type Obstacle struct {
	ID   uint32
	Kind ObstacleKind
	// Box is the current collision geometry. Read-only for callers.
	Box Rect
	// Bounce scales the velocity a spinning player keeps when it rebounds
	// off this obstacle: 0 stops it dead, 1 is a perfect rebound.
	Bounce float64

	mover *mover
}

// obstacleIDCounter is a plain counter; worlds are stepped from one goroutine.
var obstacleIDCounter uint32

func nextObstacleID() uint32 {
	obstacleIDCounter++
	return obstacleIDCounter
}

// DefaultBounce is the Bounce of obstacles whose placement does not set one.
const DefaultBounce = 1.0

// NewWall creates a static obstacle.
func NewWall(box Rect) *Obstacle {
	return &Obstacle{ID: nextObstacleID(), Kind: ObstacleWall, Box: box, Bounce: DefaultBounce}
}

// NewMovingWall creates an obstacle that follows path starting from box.
// The path must already be valid (see Path.Validate).
func NewMovingWall(box Rect, path Path) *Obstacle {
	o := &Obstacle{ID: nextObstacleID(), Kind: ObstacleMovingWall, Box: box, Bounce: DefaultBounce}
	o.mover = newMover(box.Center(), path)
	return o
}

// Moving reports whether the obstacle follows a path.
func (o *Obstacle) Moving() bool {
	return o.mover != nil
}

// Velocity returns the current velocity, zero for static obstacles.
func (o *Obstacle) Velocity() Vec2 {
	if o.mover == nil {
		return Vec2{}
	}
	return o.mover.velocity
}

// Position returns the center of the obstacle.
func (o *Obstacle) Position() Vec2 {
	return o.Box.Center()
}

// SegmentIndex returns the 0-based index of the path leg currently followed,
// counting the mirrored return legs of a looping path. Static obstacles
// return -1.
func (o *Obstacle) SegmentIndex() int {
	if o.mover == nil {
		return -1
	}
	return o.mover.index
}

// CompletedSegments returns how many path legs the obstacle has finished.
func (o *Obstacle) CompletedSegments() int {
	if o.mover == nil {
		return 0
	}
	return o.mover.completed
}

// Traveled returns the distance covered along the current leg.
func (o *Obstacle) Traveled() float64 {
	if o.mover == nil {
		return 0
	}
	return o.mover.position.Dist(o.mover.start)
}

// syncBox recenters Box on the mover's authoritative position.
func (o *Obstacle) syncBox() {
	o.Box = CenteredAt(o.mover.position, o.Box.Size())
}
