package math

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

const (
	degToRad = math32.Pi / 180
	radToDeg = 180 / math32.Pi
)

func Radians(deg float32) float32 { return deg * degToRad }
func Degrees(rad float32) float32 { return rad * radToDeg }

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CosDeg is the cosine of an angle in degrees. Spotlight cutoffs are stored
// this way.
func CosDeg(deg float32) float32 {
	return math32.Cos(Radians(deg))
}
