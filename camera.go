package platformer

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Followable is anything a camera can track. *Player and *Obstacle both
// qualify.
type Followable interface {
	Position() Vec2
}

// pan is a running ScrollTo: one eased progress tween from 0 to 1 shared by
// both axes.
type pan struct {
	from, to Vec2
	progress *gween.Tween
}

// Camera controls the view into the world: position, zoom, rotation, and viewport.
// Cameras are presentation only; nothing in the simulation reads them.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	followTarget Followable
	followOffset Vec2
	followLerp   float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	view    [6]float64
	invView [6]float64
	dirty   bool

	pan *pan
}

// newCamera creates a Camera with default values and the given viewport.
func newCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// Follow makes the camera track target with the given offset and lerp factor.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(target Followable, offset Vec2, lerp float64) {
	c.followTarget = target
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo pans to (x, y) over duration seconds, eased by easeFn. A follow
// target keeps pulling while the pan runs; Unfollow first for a clean pan.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.pan = &pan{
		from:     Vec2{c.X, c.Y},
		to:       Vec2{x, y},
		progress: gween.New(0, 1, duration, easeFn),
	}
}

// ScrollToTile scrolls to the center of the given map tile.
func (c *Camera) ScrollToTile(col, row int, tileSize float64, duration float32, easeFn ease.TweenFunc) {
	worldX := float64(col)*tileSize + tileSize/2
	worldY := float64(row)*tileSize + tileSize/2
	c.ScrollTo(worldX, worldY, duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is still running.
func (c *Camera) Scrolling() bool {
	return c.pan != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds immediately clamps the camera position so the visible area
// stays within Bounds. Call this after modifying X/Y directly. No-op if
// BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// update runs follow, then any pan, then the bounds clamp. World.Update calls
// it once per tick.
func (c *Camera) update(dt float64) {
	before := Vec2{c.X, c.Y}

	if c.followTarget != nil {
		goal := c.followTarget.Position().Add(c.followOffset)
		c.X += (goal.X - c.X) * c.followLerp
		c.Y += (goal.Y - c.Y) * c.followLerp
	}

	if p := c.pan; p != nil {
		t, done := p.progress.Update(float32(dt))
		at := p.from.Add(p.to.Sub(p.from).Scale(float64(t)))
		c.X, c.Y = at.X, at.Y
		if done {
			c.pan = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
	if c.X != before.X || c.Y != before.Y {
		c.dirty = true
	}
}

// clampToBounds keeps the visible area inside Bounds. On an axis where the
// bounds are narrower than the view, the camera centers on them instead.
func (c *Camera) clampToBounds() {
	c.X = clampAxis(c.X, c.Bounds.X, c.Bounds.Width, c.Viewport.Width/(2*c.Zoom))
	c.Y = clampAxis(c.Y, c.Bounds.Y, c.Bounds.Height, c.Viewport.Height/(2*c.Zoom))
}

func clampAxis(v, lo, size, half float64) float64 {
	if size <= 2*half {
		return lo + size/2
	}
	return math.Min(math.Max(v, lo+half), lo+size-half)
}

// ViewMatrix returns the world-to-screen affine matrix, recomputing it if
// the camera moved:
//
//	Translate(viewport center) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
func (c *Camera) ViewMatrix() [6]float64 {
	if c.dirty {
		center := c.Viewport.Center()
		m := translateAffine(center.X, center.Y)
		m = multiplyAffine(m, scaleAffine(c.Zoom))
		m = multiplyAffine(m, rotateAffine(-c.Rotation))
		c.view = multiplyAffine(m, translateAffine(-c.X, -c.Y))
		c.invView = invertAffine(c.view)
		c.dirty = false
	}
	return c.view
}

// WorldToScreen converts a world position to screen coordinates.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return transformPoint(c.ViewMatrix(), p)
}

// ScreenToWorld converts screen coordinates to a world position.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	c.ViewMatrix()
	return transformPoint(c.invView, p)
}

// RectToScreen returns the screen-space bounds of a world rectangle.
func (c *Camera) RectToScreen(r Rect) Rect {
	return transformRect(c.ViewMatrix(), r)
}

// VisibleBounds returns the world-space box around everything the viewport
// shows.
func (c *Camera) VisibleBounds() Rect {
	c.ViewMatrix()
	return transformRect(c.invView, c.Viewport)
}

// Visible reports whether a world rectangle is at least partly on screen.
// Drivers use it to skip drawing off-screen obstacles and items.
func (c *Camera) Visible(r Rect) bool {
	return c.VisibleBounds().Intersects(r)
}

// MarkDirty must be called after changing Zoom, Rotation or Viewport
// directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}
