// Package systems provides the ECS systems of the simulation: the
// broad-phase spatial index and the movement resolver.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/substep/collide"
	"github.com/pthm-cable/substep/physnum"
)

type box = collide.AABB[physnum.SubPixel]

type spatialEntry struct {
	box    box
	entity ecs.Entity
}

// SpatialIndex is a uniform cell grid over entity bounding boxes. Boxes
// spanning several cells appear in each of them; queries deduplicate with
// an epoch stamp, so callbacks fire once per entity.
type SpatialIndex struct {
	cellSize physnum.SubPixel
	cols     int
	rows     int
	cells    [][]spatialEntry

	epoch uint32
	seen  map[uint32]uint32 // entity id -> epoch of last visit
}

// NewSpatialIndex creates an index covering a world of the given size.
// Boxes outside the covered area are clamped to the border cells, so they
// are still indexed, just more coarsely.
func NewSpatialIndex(width, height, cellSize physnum.SubPixel) *SpatialIndex {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]spatialEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]spatialEntry, 0, 4)
	}

	return &SpatialIndex{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
		seen:     make(map[uint32]uint32),
	}
}

// Insert adds an entity with its bounding box.
func (s *SpatialIndex) Insert(b box, e ecs.Entity) {
	c0, r0, c1, r1 := s.cellRange(b)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			idx := r*s.cols + c
			s.cells[idx] = append(s.cells[idx], spatialEntry{box: b, entity: e})
		}
	}
}

// Remove deletes the entity's entry inserted with the given box.
func (s *SpatialIndex) Remove(b box, e ecs.Entity) {
	c0, r0, c1, r1 := s.cellRange(b)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			idx := r*s.cols + c
			cell := s.cells[idx]
			for i := range cell {
				if cell[i].entity == e {
					cell[i] = cell[len(cell)-1]
					s.cells[idx] = cell[:len(cell)-1]
					break
				}
			}
		}
	}
}

// Update moves an entity's entry from its old box to its new one. Called
// after every resolved movement so moving entities keep colliding with
// each other accurately.
func (s *SpatialIndex) Update(e ecs.Entity, oldBox, newBox box) {
	if oldBox == newBox {
		return
	}
	s.Remove(oldBox, e)
	s.Insert(newBox, e)
}

// ForEachIntersecting calls fn for every indexed entity whose box
// intersects b, once per entity.
func (s *SpatialIndex) ForEachIntersecting(b box, fn func(box, ecs.Entity)) {
	s.epoch++
	c0, r0, c1, r1 := s.cellRange(b)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			for _, entry := range s.cells[r*s.cols+c] {
				id := entry.entity.ID()
				if s.seen[id] == s.epoch {
					continue
				}
				s.seen[id] = s.epoch
				if entry.box.Intersects(b) {
					fn(entry.box, entry.entity)
				}
			}
		}
	}
}

// cellRange returns the clamped cell rectangle covered by b.
func (s *SpatialIndex) cellRange(b box) (c0, r0, c1, r1 int) {
	c0 = s.clampCol(int(b.Min.X / s.cellSize))
	r0 = s.clampRow(int(b.Min.Y / s.cellSize))
	c1 = s.clampCol(int(b.Max.X / s.cellSize))
	r1 = s.clampRow(int(b.Max.Y / s.cellSize))
	return c0, r0, c1, r1
}

func (s *SpatialIndex) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= s.cols {
		return s.cols - 1
	}
	return c
}

func (s *SpatialIndex) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= s.rows {
		return s.rows - 1
	}
	return r
}
