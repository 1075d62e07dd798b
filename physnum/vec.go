package physnum

// Vec is a 2D vector over an exact numeric type.
type Vec[T Num] struct {
	X, Y T
}

// V is shorthand for constructing a Vec.
func V[T Num](x, y T) Vec[T] {
	return Vec[T]{X: x, Y: y}
}

// Add returns v + o.
func (v Vec[T]) Add(o Vec[T]) Vec[T] {
	return Vec[T]{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec[T]) Sub(o Vec[T]) Vec[T] {
	return Vec[T]{X: v.X - o.X, Y: v.Y - o.Y}
}

// Neg returns -v.
func (v Vec[T]) Neg() Vec[T] {
	return Vec[T]{X: -v.X, Y: -v.Y}
}

// Scale returns v scaled component-wise by s.
func (v Vec[T]) Scale(s T) Vec[T] {
	return Vec[T]{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec[T]) Dot(o Vec[T]) T {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the 2D cross product (z component of the 3D cross).
func (v Vec[T]) Cross(o Vec[T]) T {
	return v.X*o.Y - v.Y*o.X
}

// LenSq returns the squared length of v.
func (v Vec[T]) LenSq() T {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether both components are exactly zero.
func (v Vec[T]) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
