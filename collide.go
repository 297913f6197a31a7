package platformer

// overlap summarises the obstacles a hit box penetrates along one axis.
// Resolution always clamps to the outermost boundary of the whole hit set,
// so deep multi-box overlaps resolve the same way regardless of the order
// the obstacles were found in.
type overlap struct {
	near   float64 // smallest left/top edge of the hit set
	far    float64 // largest right/bottom edge of the hit set
	nearBy *Obstacle
	farBy  *Obstacle
	center float64 // center of the hit set's extent
}

func axisExtremes(hits []*Obstacle, axis Axis) overlap {
	var o overlap
	for i, h := range hits {
		lo, hi := h.Box.Left(), h.Box.Right()
		if axis == AxisY {
			lo, hi = h.Box.Top(), h.Box.Bottom()
		}
		if i == 0 || lo < o.near {
			o.near, o.nearBy = lo, h
		}
		if i == 0 || hi > o.far {
			o.far, o.farBy = hi, h
		}
	}
	o.center = (o.near + o.far) / 2
	return o
}

// collide returns every obstacle penetrated by a body of the given size
// centered on pos. The result aliases a buffer owned by the world and is
// only valid until the next query.
func (w *World) collide(pos, size Vec2, movingOnly bool) []*Obstacle {
	return w.overlaps(hitBoxAt(pos, size), movingOnly, nil)
}

// overlaps is collide for an explicit rectangle. exclude may be nil.
func (w *World) overlaps(box Rect, movingOnly bool, exclude *Obstacle) []*Obstacle {
	w.queryBuf = w.index.query(box, movingOnly, exclude, w.queryBuf[:0])
	return w.queryBuf
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// travelSide is the direction a body is resolved towards on an axis: the
// sign of its velocity, or, when it is not moving on that axis, the side
// the hit set lies on.
func travelSide(vel, bodyCenter float64, o overlap) float64 {
	if s := sign(vel); s != 0 {
		return s
	}
	if o.center < bodyCenter {
		return -1
	}
	return 1
}
