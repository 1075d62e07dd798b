package collide

import "github.com/pthm-cable/substep/physnum"

// Contact is the nearest blocking contact found by a shape sweep.
type Contact[T physnum.Num] struct {
	// DistSq is the squared length of the allowed movement; the narrow
	// phase ranks candidate contacts by it.
	DistSq T
	// Allowed is the largest prefix of the movement that stays clear of
	// the contacted edge, in the mover's frame.
	Allowed physnum.Vec[T]
	// Edge is the contacted surface; the resolver slides along it.
	Edge Segment[T]
}

// ShapeSweep finds the earliest contact between a moving shape and a
// stationary one. Every mover vertex is swept against every stationary
// edge, and every stationary vertex against every mover edge with the
// movement mirrored, so contacts are found regardless of which body's
// vertex strikes which body's face. Ties keep the later candidate
// (insert-if-less-or-equal).
func ShapeSweep[T physnum.Num](
	mover Shape[T], moverPos physnum.Vec[T],
	other Shape[T], otherPos physnum.Vec[T],
	movement physnum.Vec[T],
) (Contact[T], bool) {
	var (
		vertexBuf [4]physnum.Vec[T]
		edgeBuf   [4]Segment[T]

		best  Contact[T]
		found bool
	)
	record := func(s Sweep[T], edge Segment[T]) {
		var c Contact[T]
		switch s.Kind {
		case Collides:
			c = Contact[T]{DistSq: s.Allowed.LenSq(), Allowed: s.Allowed, Edge: edge}
		case StartInsideEdge:
			// Already touching: zero movement allowed along this pair.
			c = Contact[T]{Edge: edge}
		default:
			return
		}
		if !found || c.DistSq <= best.DistSq {
			best = c
			found = true
		}
	}

	for _, v := range mover.AppendVertices(moverPos, vertexBuf[:0]) {
		for _, e := range other.AppendEdges(otherPos, edgeBuf[:0]) {
			record(SweepVertexEdge(v, movement, e, T(1)), e)
		}
	}
	reversed := movement.Neg()
	for _, v := range other.AppendVertices(otherPos, vertexBuf[:0]) {
		for _, e := range mover.AppendEdges(moverPos, edgeBuf[:0]) {
			record(SweepVertexEdge(v, reversed, e, T(-1)), e)
		}
	}
	return best, found
}
