package platformer

import "github.com/tanema/gween/ease"

// Item is a passive collectible. It bobs up and down for display; the bob
// never moves its hit box. Touching it collects it for good.
type Item struct {
	ID   uint32
	Kind string

	position Vec2
	size     Vec2

	// Bob animation: step runs 0..bobRange by bobSpeed per tick, then wraps
	// and flips dir so the ease plays back the other way.
	step     float64
	dir      float64
	bobRange float64
	bobSpeed float64
}

// itemIDCounter is a plain counter; worlds are stepped from one goroutine.
var itemIDCounter uint32

func newItem(kind string, pos Vec2, cfg *Config) *Item {
	itemIDCounter++
	return &Item{
		ID:       itemIDCounter,
		Kind:     kind,
		position: pos,
		size:     cfg.ItemSize,
		dir:      1,
		bobRange: cfg.BobRange,
		bobSpeed: cfg.BobSpeed,
	}
}

// Update advances the bob animation by one tick.
func (it *Item) Update() {
	it.step += it.bobSpeed
	if it.step > it.bobRange {
		it.step = 0
		it.dir = -it.dir
	}
}

// BobOffset returns the current vertical display offset in
// [-bobRange/2, bobRange/2].
func (it *Item) BobOffset() float64 {
	r := float32(it.bobRange)
	// InOutSine(t, b, c, d): eased from b to b+c over d.
	v := ease.InOutSine(float32(it.step), -r/2, r, r)
	return float64(v) * it.dir
}

// Position returns the item's fixed center.
func (it *Item) Position() Vec2 { return it.position }

// RenderPosition returns where the item should be drawn this tick.
func (it *Item) RenderPosition() Vec2 {
	return Vec2{it.position.X, it.position.Y + it.BobOffset()}
}

// HitBox returns the collision rectangle, centered on Position.
func (it *Item) HitBox() Rect { return hitBoxAt(it.position, it.size) }
