package collide

import "github.com/pthm-cable/substep/physnum"

// AABB is an axis-aligned bounding box with inclusive bounds.
type AABB[T physnum.Num] struct {
	Min, Max physnum.Vec[T]
}

// Union returns the smallest box containing both a and o.
func (a AABB[T]) Union(o AABB[T]) AABB[T] {
	return AABB[T]{
		Min: physnum.Vec[T]{X: min(a.Min.X, o.Min.X), Y: min(a.Min.Y, o.Min.Y)},
		Max: physnum.Vec[T]{X: max(a.Max.X, o.Max.X), Y: max(a.Max.Y, o.Max.Y)},
	}
}

// Intersects reports whether a and o overlap or touch.
func (a AABB[T]) Intersects(o AABB[T]) bool {
	return a.Min.X <= o.Max.X && a.Max.X >= o.Min.X &&
		a.Min.Y <= o.Max.Y && a.Max.Y >= o.Min.Y
}

// Segment is a directed line segment. End - Start is its direction.
// It doubles as a shape variant: a one-edge obstacle.
type Segment[T physnum.Num] struct {
	Start, End physnum.Vec[T]
}

// Vector returns the segment's direction, End - Start.
func (s Segment[T]) Vector() physnum.Vec[T] {
	return s.End.Sub(s.Start)
}

// offset returns the segment translated by pos.
func (s Segment[T]) offset(pos physnum.Vec[T]) Segment[T] {
	return Segment[T]{Start: s.Start.Add(pos), End: s.End.Add(pos)}
}

// Shape is an immutable geometric descriptor positioned at an external
// per-entity position. Implementations enumerate their geometry into
// caller-owned slices so narrow-phase loops stay allocation-free.
type Shape[T physnum.Num] interface {
	// AABB returns the shape's bounding box when placed at pos.
	AABB(pos physnum.Vec[T]) AABB[T]
	// AppendVertices appends the shape's vertices at pos to dst.
	AppendVertices(pos physnum.Vec[T], dst []physnum.Vec[T]) []physnum.Vec[T]
	// AppendEdges appends the shape's edges at pos to dst.
	AppendEdges(pos physnum.Vec[T], dst []Segment[T]) []Segment[T]
}

// Rect is an axis-aligned rectangle; pos is its top-left corner.
type Rect[T physnum.Num] struct {
	Size physnum.Vec[T]
}

// AABB implements Shape.
func (r Rect[T]) AABB(pos physnum.Vec[T]) AABB[T] {
	return AABB[T]{Min: pos, Max: pos.Add(r.Size)}
}

// AppendVertices implements Shape. Corners are emitted clockwise from pos.
func (r Rect[T]) AppendVertices(pos physnum.Vec[T], dst []physnum.Vec[T]) []physnum.Vec[T] {
	return append(dst,
		pos,
		physnum.Vec[T]{X: pos.X + r.Size.X, Y: pos.Y},
		pos.Add(r.Size),
		physnum.Vec[T]{X: pos.X, Y: pos.Y + r.Size.Y},
	)
}

// AppendEdges implements Shape. The four sides, clockwise.
func (r Rect[T]) AppendEdges(pos physnum.Vec[T], dst []Segment[T]) []Segment[T] {
	tr := physnum.Vec[T]{X: pos.X + r.Size.X, Y: pos.Y}
	br := pos.Add(r.Size)
	bl := physnum.Vec[T]{X: pos.X, Y: pos.Y + r.Size.Y}
	return append(dst,
		Segment[T]{Start: pos, End: tr},
		Segment[T]{Start: tr, End: br},
		Segment[T]{Start: br, End: bl},
		Segment[T]{Start: bl, End: pos},
	)
}

// AABB implements Shape for a segment shape.
func (s Segment[T]) AABB(pos physnum.Vec[T]) AABB[T] {
	w := s.offset(pos)
	return AABB[T]{
		Min: physnum.Vec[T]{X: min(w.Start.X, w.End.X), Y: min(w.Start.Y, w.End.Y)},
		Max: physnum.Vec[T]{X: max(w.Start.X, w.End.X), Y: max(w.Start.Y, w.End.Y)},
	}
}

// AppendVertices implements Shape: the two endpoints.
func (s Segment[T]) AppendVertices(pos physnum.Vec[T], dst []physnum.Vec[T]) []physnum.Vec[T] {
	w := s.offset(pos)
	return append(dst, w.Start, w.End)
}

// AppendEdges implements Shape: the segment itself.
func (s Segment[T]) AppendEdges(pos physnum.Vec[T], dst []Segment[T]) []Segment[T] {
	return append(dst, s.offset(pos))
}
