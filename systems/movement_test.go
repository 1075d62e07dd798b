package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/substep/collide"
	"github.com/pthm-cable/substep/components"
	"github.com/pthm-cable/substep/physnum"
)

type testWorld struct {
	world    *ecs.World
	mapper   *ecs.Map2[components.Position, components.Shape]
	index    *SpatialIndex
	resolver *MovementResolver
}

func newTestWorld() *testWorld {
	world := ecs.NewWorld()
	index := NewSpatialIndex(
		physnum.FromPixels(960),
		physnum.FromPixels(540),
		physnum.FromPixels(64),
	)
	return &testWorld{
		world:    world,
		mapper:   ecs.NewMap2[components.Position, components.Shape](world),
		index:    index,
		resolver: NewMovementResolver(world, index),
	}
}

func (w *testWorld) addRect(x, y, width, height float32) ecs.Entity {
	pos := components.Position{X: physnum.FromPixels(x), Y: physnum.FromPixels(y)}
	shape := components.Shape{
		Geom: collide.Rect[physnum.SubPixel]{Size: physnum.VFromPixels(width, height)},
	}
	e := w.mapper.NewEntity(&pos, &shape)
	w.index.Insert(shape.Geom.AABB(pos.Vec()), e)
	return e
}

func px(x, y float32) vec {
	return physnum.VFromPixels(x, y)
}

func TestResolveOpenSpace(t *testing.T) {
	w := newTestWorld()
	mover := w.addRect(100, 100, 10, 10)

	res, ok := w.resolver.Resolve(mover, px(40, 25))
	if !ok {
		t.Fatal("expected a resolution")
	}
	if want := px(140, 125); res.Position != want {
		t.Errorf("position = %v, want %v", res.Position, want)
	}
	if res.Collisions != 0 || res.Steps != 1 || res.Capped {
		t.Errorf("unexpected resolution stats: %+v", res)
	}
}

func TestResolveZeroMovement(t *testing.T) {
	w := newTestWorld()
	mover := w.addRect(100, 100, 10, 10)

	for i := 0; i < 2; i++ {
		res, ok := w.resolver.Resolve(mover, vec{})
		if !ok {
			t.Fatal("expected a resolution")
		}
		if want := px(100, 100); res.Position != want {
			t.Errorf("call %d: position = %v, want %v", i, res.Position, want)
		}
		if res.Collisions != 0 {
			t.Errorf("call %d: collisions = %d, want 0", i, res.Collisions)
		}
	}
}

func TestResolveMissingPosition(t *testing.T) {
	w := newTestWorld()
	shapeOnly := ecs.NewMap1[components.Shape](w.world)
	e := shapeOnly.NewEntity(&components.Shape{
		Geom: collide.Rect[physnum.SubPixel]{Size: physnum.VFromPixels(10, 10)},
	})

	if _, ok := w.resolver.Resolve(e, px(5, 0)); ok {
		t.Error("expected no resolution for an entity without a position")
	}
}

func TestResolveMissingShape(t *testing.T) {
	w := newTestWorld()
	posOnly := ecs.NewMap1[components.Position](w.world)
	pos := components.Position{X: physnum.FromPixels(50), Y: physnum.FromPixels(50)}
	e := posOnly.NewEntity(&pos)

	res, ok := w.resolver.Resolve(e, px(5, 0))
	if !ok {
		t.Fatal("expected a resolution")
	}
	if want := px(50, 50); res.Position != want {
		t.Errorf("position = %v, want %v", res.Position, want)
	}
}

// TestResolveIntoWall drives a rect straight into a wall and expects it
// to stop strictly before the wall's face.
func TestResolveIntoWall(t *testing.T) {
	w := newTestWorld()
	mover := w.addRect(100, 100, 10, 10)
	w.addRect(150, 0, 10, 540) // wall: left face at x=150

	res, ok := w.resolver.Resolve(mover, px(60, 0))
	if !ok {
		t.Fatal("expected a resolution")
	}
	if res.Collisions < 1 {
		t.Fatalf("expected at least one collision, got %+v", res)
	}

	// The mover's right face must end strictly left of the wall, but the
	// padding nudge only backs it off a fraction of a pixel.
	finalRight := res.Position.X + physnum.FromPixels(10)
	if finalRight >= physnum.FromPixels(150) {
		t.Errorf("mover ended at/inside the wall: right face %v px", finalRight.Pixels())
	}
	if finalRight < physnum.FromPixels(139) {
		t.Errorf("mover stopped far from the wall: right face %v px", finalRight.Pixels())
	}
	if res.Position.Y != physnum.FromPixels(100) {
		t.Errorf("head-on collision moved the Y axis: %v", res.Position.Y.Pixels())
	}
}

// TestResolveSlideAlongWall drives a rect diagonally into a wall and
// expects the blocked axis to stop while the other axis keeps its
// movement by sliding.
func TestResolveSlideAlongWall(t *testing.T) {
	w := newTestWorld()
	mover := w.addRect(100, 100, 10, 10)
	w.addRect(150, 0, 10, 540)

	res, ok := w.resolver.Resolve(mover, px(60, 20))
	if !ok {
		t.Fatal("expected a resolution")
	}
	if res.Collisions < 1 {
		t.Fatalf("expected a collision, got %+v", res)
	}
	if right := res.Position.X + physnum.FromPixels(10); right >= physnum.FromPixels(150) {
		t.Errorf("mover penetrated the wall: right face %v px", right.Pixels())
	}
	// Most of the vertical movement survives via the slide.
	if res.Position.Y < physnum.FromPixels(118) {
		t.Errorf("slide lost too much vertical movement: y = %v px", res.Position.Y.Pixels())
	}
	if res.Position.Y > physnum.FromPixels(121) {
		t.Errorf("slide overshot: y = %v px", res.Position.Y.Pixels())
	}
}

// TestResolveCorner wedges a mover into a corner; both axes block and
// the resolver terminates without using up its sub-step cap.
func TestResolveCorner(t *testing.T) {
	w := newTestWorld()
	mover := w.addRect(100, 100, 10, 10)
	w.addRect(150, 0, 10, 540) // right wall
	w.addRect(0, 150, 540, 10) // floor

	res, ok := w.resolver.Resolve(mover, px(200, 200))
	if !ok {
		t.Fatal("expected a resolution")
	}
	if right := res.Position.X + physnum.FromPixels(10); right >= physnum.FromPixels(150) {
		t.Errorf("penetrated right wall: %v px", right.Pixels())
	}
	if bottom := res.Position.Y + physnum.FromPixels(10); bottom >= physnum.FromPixels(150) {
		t.Errorf("penetrated floor: %v px", bottom.Pixels())
	}
}

// TestSlideProjection checks the post-contact slide directly: the
// unspent movement is projected onto the surface direction and nudged a
// tenth of a pixel off the surface.
func TestSlideProjection(t *testing.T) {
	// A wall's left face, running downward.
	edge := collide.Segment[physnum.SubPixel]{
		Start: px(150, 100),
		End:   px(150, 0),
	}

	got := slide(px(40, 10), px(30, 0), edge)
	want := vec{X: -25, Y: physnum.FromPixels(10)}
	if got != want {
		t.Errorf("slide = %v, want %v", got, want)
	}
}

// TestSlideOnSurface leaves a remainder that already lies along the
// surface untouched; the nudge is skipped rather than normalizing a
// zero off-surface vector.
func TestSlideOnSurface(t *testing.T) {
	edge := collide.Segment[physnum.SubPixel]{
		Start: px(150, 100),
		End:   px(150, 0),
	}

	got := slide(px(0, 30), px(0, 10), edge)
	if want := px(0, 20); got != want {
		t.Errorf("slide = %v, want %v", got, want)
	}
}

// TestResolveIgnoresSelf makes sure an entity's own index entry never
// blocks its movement.
func TestResolveIgnoresSelf(t *testing.T) {
	w := newTestWorld()
	mover := w.addRect(100, 100, 10, 10)

	res, ok := w.resolver.Resolve(mover, px(2, 2))
	if !ok {
		t.Fatal("expected a resolution")
	}
	if want := px(102, 102); res.Position != want {
		t.Errorf("position = %v, want %v", res.Position, want)
	}
	if res.Collisions != 0 {
		t.Errorf("collided with self: %+v", res)
	}
}
