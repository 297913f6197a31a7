package platformer

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"
)

// resolv tags.
const (
	tagSolid  = "solid"
	tagMoving = "moving"
	tagQuery  = "query"
)

// spatialMargin pads the indexed area, in cells, so bodies slightly outside
// it still find the walls they touch.
const spatialMargin = 4

// spatialIndex is the broadphase over obstacles. resolv buckets objects into
// grid cells; candidates it returns are then tested exactly with penetrates.
// resolv drops cells outside its space, so the covered area grows to take in
// every obstacle box and moving path it is given.
type spatialIndex struct {
	space    *resolv.Space
	cellSize float64
	area     Rect // world area covered by the space, margin included
	objects  map[*Obstacle]*resolv.Object
	order    []*Obstacle // insertion order, for rebuilds
	lookup   *resolv.Object

	tested  int // exact tests since the last reset
	rebuilt int // times the space had to grow
}

func newSpatialIndex(bounds Rect, cellSize float64) *spatialIndex {
	if cellSize < 1 {
		cellSize = 1
	}
	s := &spatialIndex{
		cellSize: cellSize,
		objects:  make(map[*Obstacle]*resolv.Object),
		lookup:   resolv.NewObject(0, 0, 1, 1, tagQuery),
	}
	s.build(bounds)
	return s
}

// build creates a fresh space covering r plus the margin and re-adds every
// indexed obstacle.
func (s *spatialIndex) build(r Rect) {
	pad := spatialMargin * s.cellSize
	cell := int(math.Ceil(s.cellSize))
	cols := int(math.Ceil((r.Width+2*pad)/float64(cell))) + 1
	rows := int(math.Ceil((r.Height+2*pad)/float64(cell))) + 1

	s.area = Rect{
		X:      r.X - pad,
		Y:      r.Y - pad,
		Width:  float64(cols * cell),
		Height: float64(rows * cell),
	}
	s.space = resolv.NewSpace(cols*cell, rows*cell, cell, cell)
	s.space.Add(s.lookup)
	for _, o := range s.order {
		obj := s.objects[o]
		s.place(obj, o.Box)
		s.space.Add(obj)
	}
}

// cover grows the space when r is not inside it.
func (s *spatialIndex) cover(r Rect) {
	if rectInside(r, s.area) {
		return
	}
	pad := spatialMargin * s.cellSize
	s.rebuilt++
	s.build(unionRect(Rect{X: s.area.X + pad, Y: s.area.Y + pad, Width: s.area.Width - 2*pad, Height: s.area.Height - 2*pad}, r))
}

// place moves obj to box in space coordinates.
func (s *spatialIndex) place(obj *resolv.Object, box Rect) {
	obj.Position.X = box.X - s.area.X
	obj.Position.Y = box.Y - s.area.Y
	obj.Size.X = box.Width
	obj.Size.Y = box.Height
}

func (s *spatialIndex) add(o *Obstacle) {
	reach := o.Box
	if o.mover != nil {
		reach = o.mover.sweep(o.Box)
	}
	s.cover(reach)

	tags := []string{tagSolid}
	if o.Moving() {
		tags = append(tags, tagMoving)
	}
	obj := resolv.NewObject(0, 0, 0, 0, tags...)
	s.place(obj, o.Box)
	obj.Data = o
	s.objects[o] = obj
	s.order = append(s.order, o)
	s.space.Add(obj)
}

// update re-buckets an obstacle after it moved.
func (s *spatialIndex) update(o *Obstacle) {
	obj, ok := s.objects[o]
	if !ok {
		return
	}
	s.cover(o.Box)
	s.place(obj, o.Box)
	obj.Update()
}

// query appends to buf every obstacle whose box penetrates box, ordered by ID.
// With movingOnly set, static walls are skipped. exclude may be nil.
func (s *spatialIndex) query(box Rect, movingOnly bool, exclude *Obstacle, buf []*Obstacle) []*Obstacle {
	tag := tagSolid
	if movingOnly {
		tag = tagMoving
	}

	// resolv maps the far edge to cells with a one unit inset; pad the query
	// so edge-touching cells are always visited.
	s.place(s.lookup, Rect{X: box.X - 1, Y: box.Y - 1, Width: box.Width + 2, Height: box.Height + 2})
	s.lookup.Update()

	col := s.lookup.Check(0, 0, tag)
	if col == nil {
		return buf
	}
	start := len(buf)
	for _, obj := range col.Objects {
		o, ok := obj.Data.(*Obstacle)
		if !ok || o == exclude {
			continue
		}
		s.tested++
		if !penetrates(box, o.Box) || containsObstacle(buf[start:], o) {
			continue
		}
		buf = append(buf, o)
	}
	found := buf[start:]
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return buf
}

func containsObstacle(list []*Obstacle, o *Obstacle) bool {
	for _, x := range list {
		if x == o {
			return true
		}
	}
	return false
}

// rectInside reports whether r lies within outer, edges included.
func rectInside(r, outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}

func unionRect(a, b Rect) Rect {
	x0 := math.Min(a.X, b.X)
	y0 := math.Min(a.Y, b.Y)
	x1 := math.Max(a.Right(), b.Right())
	y1 := math.Max(a.Bottom(), b.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
