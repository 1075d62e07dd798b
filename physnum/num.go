// Package physnum provides the exact-arithmetic numeric types used by the
// collision core: a generic integer constraint for the swept test and the
// production sub-pixel fixed-point type.
package physnum

// Num is the numeric capability the collision math is written against.
// Every intermediate value stays an integer, so cross products, dot
// products and the final truncating divisions are exact and deterministic.
// Plain int satisfies it for tests; SubPixel satisfies it in production.
type Num interface {
	~int | ~int32 | ~int64
}

// Sign returns -1, 0 or 1.
func Sign[T Num](v T) T {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Abs returns the absolute value of v.
func Abs[T Num](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// ReduceOne shrinks v's magnitude by one unit, preserving its sign.
func ReduceOne[T Num](v T) T {
	return Sign(v) * (Abs(v) - 1)
}
