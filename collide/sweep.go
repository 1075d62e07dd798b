// Package collide implements the exact swept collision tests: a moving
// point against a stationary segment, and shape-vs-shape sweeps built on
// top of it. All arithmetic is integer-exact; there is no trigonometry and
// no division before the final scaling step.
package collide

import "github.com/pthm-cable/substep/physnum"

// Outcome classifies the result of a vertex-vs-edge sweep.
type Outcome uint8

const (
	// Collides means the moving vertex reaches the edge during this
	// movement; Allowed holds the movement prefix that stays clear of it.
	Collides Outcome = iota
	// StartInsideEdge means the vertex is coincident with the edge before
	// moving at all.
	StartInsideEdge
	// ColinearNonOverlapping means the vertex path lies on the edge's
	// line but never reaches the edge during this movement.
	ColinearNonOverlapping
	// ParallelNonColinear means the path is parallel to the edge on a
	// different line; they can never meet.
	ParallelNonColinear
	// NonParallelNonIntersecting means the lines cross, but outside the
	// edge's span or beyond this movement.
	NonParallelNonIntersecting
)

// String returns the outcome name for test output and logging.
func (o Outcome) String() string {
	switch o {
	case Collides:
		return "Collides"
	case StartInsideEdge:
		return "StartInsideEdge"
	case ColinearNonOverlapping:
		return "ColinearNonOverlapping"
	case ParallelNonColinear:
		return "ParallelNonColinear"
	case NonParallelNonIntersecting:
		return "NonParallelNonIntersecting"
	default:
		return "Unknown"
	}
}

// Sweep is the result of a vertex-vs-edge test. Allowed is only
// meaningful when Kind == Collides.
type Sweep[T physnum.Num] struct {
	Kind    Outcome
	Allowed physnum.Vec[T]
}

// Hit reports whether the sweep found contact, including the degenerate
// already-touching case.
func (s Sweep[T]) Hit() bool {
	return s.Kind == Collides || s.Kind == StartInsideEdge
}

// SweepVertexEdge tests a point at vertex moving by movement against a
// stationary edge. sign multiplies the returned allowed movement, letting
// one routine serve both "my vertex into your edge" and the mirrored
// "your vertex into my edge" case.
//
// The allowed movement is shortened by one fixed-point unit (applied in
// product space, before the final division) so the resolved position lands
// strictly before the edge, never exactly on it. Callers are expected to
// pass nonzero movement; a zero movement classifies as a parallel case.
func SweepVertexEdge[T physnum.Num](
	vertex, movement physnum.Vec[T],
	edge Segment[T],
	sign T,
) Sweep[T] {
	edgeVector := edge.Vector()
	cross := movement.Cross(edgeVector)
	toStart := edge.Start.Sub(vertex)

	if cross == 0 {
		return sweepParallel(movement, edgeVector, toStart, sign)
	}

	// The intersection point divides the edge at vertexMul/cross and the
	// movement at edgeMul/cross. Scale both against cross's sign so the
	// in-range checks read the same regardless of orientation.
	crossAbs := physnum.Abs(cross)
	crossSign := physnum.Sign(cross)

	vertexMul := toStart.Cross(edgeVector)
	if scaled := vertexMul * crossSign; scaled < 0 || scaled > crossAbs {
		return Sweep[T]{Kind: NonParallelNonIntersecting}
	}
	edgeMul := toStart.Cross(movement)
	if scaled := edgeMul * crossSign; scaled < 0 || scaled > crossAbs {
		return Sweep[T]{Kind: NonParallelNonIntersecting}
	}
	if vertexMul == 0 {
		return Sweep[T]{Kind: StartInsideEdge}
	}

	// movement * vertexMul / cross is the exact contact offset. Back each
	// axis off by one unit before dividing, skipping axes with no
	// displacement so no spurious motion appears there.
	toContact := movement.Scale(vertexMul)
	var allowed physnum.Vec[T]
	if toContact.X != 0 {
		allowed.X = physnum.ReduceOne(toContact.X) / cross
	}
	if toContact.Y != 0 {
		allowed.Y = physnum.ReduceOne(toContact.Y) / cross
	}
	return Sweep[T]{Kind: Collides, Allowed: allowed.Scale(sign)}
}

// sweepParallel handles movement parallel to the edge. When colinear, the
// edge endpoints are projected onto the movement via dot products, giving
// span multipliers in units of the squared movement length.
func sweepParallel[T physnum.Num](
	movement, edgeVector, toStart physnum.Vec[T],
	sign T,
) Sweep[T] {
	if toStart.Cross(movement) != 0 {
		return Sweep[T]{Kind: ParallelNonColinear}
	}

	mulA := toStart.Dot(movement)
	mulB := toStart.Add(edgeVector).Dot(movement)
	minMul, maxMul := mulA, mulB
	if maxMul < minMul {
		minMul, maxMul = maxMul, minMul
	}
	lenSq := movement.LenSq()

	if maxMul < 0 || minMul > lenSq {
		return Sweep[T]{Kind: ColinearNonOverlapping}
	}
	if minMul <= 0 {
		return Sweep[T]{Kind: StartInsideEdge}
	}

	scaled := movement.Scale(minMul)
	allowed := physnum.Vec[T]{
		X: (scaled.X - 1) / lenSq,
		Y: (scaled.Y - 1) / lenSq,
	}
	return Sweep[T]{Kind: Collides, Allowed: allowed.Scale(sign)}
}
