package physnum

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SubPixel is the production fixed-point coordinate type: an integer count
// of 1/256ths of a pixel. Arithmetic on it is plain integer arithmetic, so
// the collision math never rounds until its final truncating division.
type SubPixel int64

// PerPixel is the number of sub-pixel units in one pixel.
const PerPixel = 256

// FromPixels converts a pixel quantity to the nearest sub-pixel count.
func FromPixels(pixels float32) SubPixel {
	return SubPixel(math.Round(float64(pixels) * PerPixel))
}

// Pixels converts back to pixels for rendering and logging.
func (s SubPixel) Pixels() float32 {
	return float32(s) / PerPixel
}

// ClampZeroOnePixel clamps s to the [0, 1] pixel range.
// Input axes are held in this range before being combined.
func (s SubPixel) ClampZeroOnePixel() SubPixel {
	if s < 0 {
		return 0
	}
	if s > PerPixel {
		return PerPixel
	}
	return s
}

// VFromPixels builds a sub-pixel vector from pixel coordinates.
func VFromPixels(x, y float32) Vec[SubPixel] {
	return Vec[SubPixel]{X: FromPixels(x), Y: FromPixels(y)}
}

// NormalizeIfLongerThanOnePixel scales v down to one pixel length when it
// is longer, and leaves it untouched otherwise. Keeps diagonal input from
// moving faster than cardinal input.
func NormalizeIfLongerThanOnePixel(v Vec[SubPixel]) Vec[SubPixel] {
	lenSq := float64(v.LenSq())
	if lenSq <= PerPixel*PerPixel {
		return v
	}
	scale := PerPixel / math.Sqrt(lenSq)
	return Vec[SubPixel]{
		X: SubPixel(math.Round(float64(v.X) * scale)),
		Y: SubPixel(math.Round(float64(v.Y) * scale)),
	}
}

// ToR2 converts to a float vector in sub-pixel units for the slide step.
func ToR2(v Vec[SubPixel]) r2.Vec {
	return r2.Vec{X: float64(v.X), Y: float64(v.Y)}
}

// FromR2 truncates a float sub-pixel vector back to fixed point.
// Truncation (not rounding) keeps the result on the near side of whatever
// boundary the float math approached.
func FromR2(v r2.Vec) Vec[SubPixel] {
	return Vec[SubPixel]{X: SubPixel(v.X), Y: SubPixel(v.Y)}
}
