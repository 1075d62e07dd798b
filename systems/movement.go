package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/substep/collide"
	"github.com/pthm-cable/substep/components"
	"github.com/pthm-cable/substep/physnum"
)

// MaxSubSteps caps the slide iterations per tick. Corner cases that are
// still unresolved after this many sub-steps keep the last position,
// best effort.
const MaxSubSteps = 16

// surfacePadding is the fraction of a pixel the next sub-step is nudged
// away from a contacted surface, countering rounding that would otherwise
// re-collide at distance zero.
const surfacePadding = 0.1

type vec = physnum.Vec[physnum.SubPixel]

// Resolution reports how a movement was resolved.
type Resolution struct {
	Position vec
	// Steps is the number of sub-steps taken, Collisions how many of
	// them ended in contact.
	Steps      int
	Collisions int
	// Capped is set when the sub-step limit ran out before the movement
	// terminated; Position is then best effort.
	Capped bool
}

// MovementResolver turns a desired per-tick displacement into a safe
// final position: move to the nearest contact, slide along the blocking
// surface, repeat. Positions are read from and written by the caller;
// the resolver itself only reads component tables.
type MovementResolver struct {
	posMap   *ecs.Map1[components.Position]
	shapeMap *ecs.Map1[components.Shape]
	index    *SpatialIndex
}

// NewMovementResolver creates a resolver over the given world and index.
func NewMovementResolver(w *ecs.World, index *SpatialIndex) *MovementResolver {
	return &MovementResolver{
		posMap:   ecs.NewMap1[components.Position](w),
		shapeMap: ecs.NewMap1[components.Shape](w),
		index:    index,
	}
}

type stepKind uint8

const (
	stepNoMovement stepKind = iota
	stepNoCollision
	stepCollision
)

type movementStep struct {
	kind    stepKind
	dest    vec
	allowed vec
	edge    collide.Segment[physnum.SubPixel]
}

// Resolve computes the entity's final position after attempting the given
// movement. It returns false when the entity has no recorded position;
// deciding whether that is an error is the caller's concern.
func (m *MovementResolver) Resolve(e ecs.Entity, movement vec) (Resolution, bool) {
	pos := m.posMap.Get(e)
	if pos == nil {
		return Resolution{}, false
	}

	res := Resolution{Position: pos.Vec()}
	for i := 0; i < MaxSubSteps; i++ {
		step := m.step(e, res.Position, movement)
		res.Steps++
		switch step.kind {
		case stepNoMovement:
			return res, true
		case stepNoCollision:
			res.Position = step.dest
			return res, true
		case stepCollision:
			res.Collisions++
			res.Position = step.dest
			movement = slide(movement, step.allowed, step.edge)
			if movement.IsZero() {
				return res, true
			}
		}
	}
	res.Capped = true
	return res, true
}

// step performs one sub-step: broad-phase query over the swept bounding
// box, narrow-phase tests against the candidates, nearest-contact
// selection with insert-if-less-or-equal semantics.
func (m *MovementResolver) step(e ecs.Entity, position, movement vec) movementStep {
	if movement.IsZero() {
		return movementStep{kind: stepNoMovement}
	}
	shape := m.shapeMap.Get(e)
	if shape == nil {
		return movementStep{kind: stepNoMovement}
	}

	swept := shape.Geom.AABB(position).Union(shape.Geom.AABB(position.Add(movement)))

	var (
		best  collide.Contact[physnum.SubPixel]
		found bool
	)
	m.index.ForEachIntersecting(swept, func(_ box, other ecs.Entity) {
		if other == e {
			return
		}
		otherPos := m.posMap.Get(other)
		otherShape := m.shapeMap.Get(other)
		if otherPos == nil || otherShape == nil {
			return
		}
		c, ok := collide.ShapeSweep(shape.Geom, position, otherShape.Geom, otherPos.Vec(), movement)
		if ok && (!found || c.DistSq <= best.DistSq) {
			best = c
			found = true
		}
	})

	if !found {
		return movementStep{kind: stepNoCollision, dest: position.Add(movement)}
	}
	return movementStep{
		kind:    stepCollision,
		dest:    position.Add(best.Allowed),
		allowed: best.Allowed,
		edge:    best.Edge,
	}
}

// slide projects the unspent movement onto the contacted surface and
// nudges it slightly off the surface, producing the next sub-step's
// movement. This is the only float computation in the resolver; the
// result is truncated back to fixed point.
func slide(movement, allowed vec, edge collide.Segment[physnum.SubPixel]) vec {
	remaining := physnum.ToR2(movement.Sub(allowed))
	surface := r2.Unit(physnum.ToR2(edge.Vector()))
	slid := r2.Scale(r2.Dot(remaining, surface), surface)

	// Push away from the surface so the next sub-step does not start in
	// contact. Skipped when the remainder already lies on the surface.
	off := r2.Sub(slid, remaining)
	if n := r2.Norm(off); n > 1e-9 {
		slid = r2.Add(slid, r2.Scale(surfacePadding*physnum.PerPixel/n, off))
	}
	return physnum.FromR2(slid)
}
