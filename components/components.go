// Package components defines the ECS components for the simulation.
package components

import (
	"github.com/pthm-cable/substep/collide"
	"github.com/pthm-cable/substep/physnum"
)

// Position is an entity's world position in sub-pixels. It is written
// only by the movement resolver, or once at creation.
type Position struct {
	X, Y physnum.SubPixel
}

// Vec returns the position as a vector.
func (p Position) Vec() physnum.Vec[physnum.SubPixel] {
	return physnum.Vec[physnum.SubPixel]{X: p.X, Y: p.Y}
}

// Set overwrites the position from a vector.
func (p *Position) Set(v physnum.Vec[physnum.SubPixel]) {
	p.X, p.Y = v.X, v.Y
}

// Velocity is an entity's desired displacement for the next tick, in
// sub-pixels. Entities without a Velocity component are stationary.
type Velocity struct {
	X, Y physnum.SubPixel
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() physnum.Vec[physnum.SubPixel] {
	return physnum.Vec[physnum.SubPixel]{X: v.X, Y: v.Y}
}

// Set overwrites the velocity from a vector.
func (v *Velocity) Set(vec physnum.Vec[physnum.SubPixel]) {
	v.X, v.Y = vec.X, vec.Y
}

// Shape is an entity's immutable geometric descriptor, set at creation.
type Shape struct {
	Geom collide.Shape[physnum.SubPixel]
}

// Colour is an entity's render colour, RGB in [0, 1].
type Colour struct {
	R, G, B float32
}
