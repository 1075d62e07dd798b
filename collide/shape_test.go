package collide

import "testing"

// TestRectAABB checks bounding boxes for both shape variants.
func TestRectAABB(t *testing.T) {
	r := Rect[int]{Size: v(4, 2)}
	got := r.AABB(v(10, 20))
	want := AABB[int]{Min: v(10, 20), Max: v(14, 22)}
	if got != want {
		t.Errorf("rect AABB = %v, want %v", got, want)
	}

	s := Segment[int]{Start: v(0, 0), End: v(5, -3)}
	got = s.AABB(v(10, 20))
	want = AABB[int]{Min: v(10, 17), Max: v(15, 20)}
	if got != want {
		t.Errorf("segment AABB = %v, want %v", got, want)
	}
}

func TestAABBUnionIntersects(t *testing.T) {
	a := AABB[int]{Min: v(0, 0), Max: v(4, 4)}
	b := AABB[int]{Min: v(2, 3), Max: v(9, 5)}

	u := a.Union(b)
	want := AABB[int]{Min: v(0, 0), Max: v(9, 5)}
	if u != want {
		t.Errorf("union = %v, want %v", u, want)
	}

	if !a.Intersects(b) || !b.Intersects(a) {
		t.Error("expected overlap")
	}
	far := AABB[int]{Min: v(10, 10), Max: v(12, 12)}
	if a.Intersects(far) {
		t.Error("expected no overlap")
	}
	touching := AABB[int]{Min: v(4, 0), Max: v(6, 2)}
	if !a.Intersects(touching) {
		t.Error("touching boxes should intersect")
	}
}

// TestShapeSweepRectIntoRect sweeps a small rect into the left face of a
// tall rect and expects contact one unit short of the face.
func TestShapeSweepRectIntoRect(t *testing.T) {
	mover := Rect[int]{Size: v(2, 2)}
	wall := Rect[int]{Size: v(2, 10)}

	c, ok := ShapeSweep[int](mover, v(0, 0), wall, v(6, -4), v(5, 0))
	if !ok {
		t.Fatal("expected contact")
	}
	if c.Allowed != v(3, 0) {
		t.Errorf("allowed = %v, want %v", c.Allowed, v(3, 0))
	}
	if c.DistSq != 9 {
		t.Errorf("distSq = %d, want 9", c.DistSq)
	}
	// The contacted surface must be the wall's vertical left face.
	if dir := c.Edge.Vector(); dir.X != 0 {
		t.Errorf("contact edge %v is not vertical", c.Edge)
	}
}

// TestShapeSweepRectIntoSegment sweeps a rect corner into a diagonal
// segment obstacle.
func TestShapeSweepRectIntoSegment(t *testing.T) {
	mover := Rect[int]{Size: v(2, 2)}
	ramp := Segment[int]{Start: v(0, 8), End: v(8, 0)}

	c, ok := ShapeSweep[int](mover, v(0, 0), ramp, v(0, 0), v(6, 6))
	if !ok {
		t.Fatal("expected contact")
	}
	if c.Allowed != v(1, 1) {
		t.Errorf("allowed = %v, want %v", c.Allowed, v(1, 1))
	}
	if c.DistSq != 2 {
		t.Errorf("distSq = %d, want 2", c.DistSq)
	}
}

// TestShapeSweepMiss checks that shapes passing near each other produce
// no contact.
func TestShapeSweepMiss(t *testing.T) {
	mover := Rect[int]{Size: v(2, 2)}
	wall := Rect[int]{Size: v(2, 10)}

	// Moving away from the wall.
	if _, ok := ShapeSweep[int](mover, v(0, 0), wall, v(6, -4), v(-5, 0)); ok {
		t.Error("moving away should not contact")
	}
	// Passing above it.
	if _, ok := ShapeSweep[int](mover, v(0, -20), wall, v(6, -4), v(10, 0)); ok {
		t.Error("passing above should not contact")
	}
}

// TestShapeSweepStartTouching verifies the overlap-at-start case reports
// a zero-distance contact with no allowed movement.
func TestShapeSweepStartTouching(t *testing.T) {
	mover := Rect[int]{Size: v(2, 2)}
	wall := Rect[int]{Size: v(2, 10)}

	// Mover's right face coincides with the wall's left face.
	c, ok := ShapeSweep[int](mover, v(4, 0), wall, v(6, -4), v(5, 0))
	if !ok {
		t.Fatal("expected contact")
	}
	if c.DistSq != 0 || !c.Allowed.IsZero() {
		t.Errorf("expected zero-distance contact, got %+v", c)
	}
}

// TestShapeSweepMirrored checks the reverse direction: the stationary
// body's vertex striking the mover's face.
func TestShapeSweepMirrored(t *testing.T) {
	// A wide, flat mover rising into a vertical spike segment hanging
	// above it. The spike is parallel to the movement, so none of the
	// mover's vertices can strike its edge; its lower endpoint strikes
	// the mover's top face instead.
	mover := Rect[int]{Size: v(10, 2)}
	spike := Segment[int]{Start: v(0, -10), End: v(0, -5)}

	// Spike world span: (4,-8)..(4,-3). Mover top face starts at y=0
	// and rises by 6, meeting the tip after 3 units.
	c, ok := ShapeSweep[int](mover, v(0, 0), spike, v(4, 2), v(0, -6))
	if !ok {
		t.Fatal("expected contact")
	}
	if c.Allowed != v(0, -2) {
		t.Errorf("allowed = %v, want %v", c.Allowed, v(0, -2))
	}
	if c.DistSq != 4 {
		t.Errorf("distSq = %d, want 4", c.DistSq)
	}
	// The blocking surface is the mover's own horizontal face.
	if dir := c.Edge.Vector(); dir.Y != 0 {
		t.Errorf("contact edge %v is not horizontal", c.Edge)
	}
}
