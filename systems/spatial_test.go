package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/substep/collide"
	"github.com/pthm-cable/substep/components"
	"github.com/pthm-cable/substep/physnum"
)

func b(minX, minY, maxX, maxY physnum.SubPixel) box {
	return box{
		Min: physnum.Vec[physnum.SubPixel]{X: minX, Y: minY},
		Max: physnum.Vec[physnum.SubPixel]{X: maxX, Y: maxY},
	}
}

func newTestEntities(t *testing.T, n int) []ecs.Entity {
	t.Helper()
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = mapper.NewEntity(&components.Position{})
	}
	return out
}

func collect(idx *SpatialIndex, query box) map[ecs.Entity]int {
	hits := make(map[ecs.Entity]int)
	idx.ForEachIntersecting(query, func(_ collide.AABB[physnum.SubPixel], e ecs.Entity) {
		hits[e]++
	})
	return hits
}

func TestSpatialIndexQuery(t *testing.T) {
	es := newTestEntities(t, 3)
	idx := NewSpatialIndex(10000, 10000, 100)

	idx.Insert(b(0, 0, 50, 50), es[0])
	idx.Insert(b(200, 200, 260, 260), es[1])
	idx.Insert(b(5000, 5000, 5010, 5010), es[2])

	hits := collect(idx, b(40, 40, 220, 220))
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2: %v", len(hits), hits)
	}
	if hits[es[0]] != 1 || hits[es[1]] != 1 {
		t.Errorf("wrong hits: %v", hits)
	}
}

// TestSpatialIndexDedup makes sure a box spanning many cells is reported
// once per query.
func TestSpatialIndexDedup(t *testing.T) {
	es := newTestEntities(t, 1)
	idx := NewSpatialIndex(10000, 10000, 100)

	// Spans a 10x10 block of cells.
	idx.Insert(b(0, 0, 999, 999), es[0])

	hits := collect(idx, b(0, 0, 999, 999))
	if hits[es[0]] != 1 {
		t.Errorf("entity reported %d times, want once", hits[es[0]])
	}
}

// TestSpatialIndexOutOfBounds checks that boxes beyond the covered area
// are clamped into the border cells, not lost.
func TestSpatialIndexOutOfBounds(t *testing.T) {
	es := newTestEntities(t, 1)
	idx := NewSpatialIndex(1000, 1000, 100)

	idx.Insert(b(5000, 5000, 5100, 5100), es[0])

	hits := collect(idx, b(4900, 4900, 5200, 5200))
	if hits[es[0]] != 1 {
		t.Errorf("out-of-bounds box not found: %v", hits)
	}
}

func TestSpatialIndexUpdate(t *testing.T) {
	es := newTestEntities(t, 1)
	idx := NewSpatialIndex(10000, 10000, 100)

	old := b(0, 0, 50, 50)
	idx.Insert(old, es[0])

	next := b(700, 700, 750, 750)
	idx.Update(es[0], old, next)

	if hits := collect(idx, b(0, 0, 60, 60)); len(hits) != 0 {
		t.Errorf("entity still at old location: %v", hits)
	}
	if hits := collect(idx, b(690, 690, 760, 760)); hits[es[0]] != 1 {
		t.Errorf("entity not at new location: %v", hits)
	}
}

func TestSpatialIndexRemove(t *testing.T) {
	es := newTestEntities(t, 2)
	idx := NewSpatialIndex(10000, 10000, 100)

	shared := b(0, 0, 150, 150)
	idx.Insert(shared, es[0])
	idx.Insert(b(10, 10, 40, 40), es[1])

	idx.Remove(shared, es[0])

	hits := collect(idx, b(0, 0, 200, 200))
	if len(hits) != 1 || hits[es[1]] != 1 {
		t.Errorf("got %v, want only the second entity", hits)
	}
}
