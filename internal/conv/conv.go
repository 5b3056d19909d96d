// Package conv implements lossless float to integer conversion.
package conv

import (
	"math"
)

// Integer is a set of types supported by To.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// To converts v to T if v is finite, has no fractional part, and fits T range.
// Returns zero and false otherwise.
func To[T Integer](v float64) (T, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}

	lo, hi := bounds[T]()
	if v < lo || v >= hi {
		return 0, false
	}
	return T(v), true
}

// bounds returns [lo, hi) range of T as floats. Both bounds are exact powers of two (or zero).
func bounds[T Integer]() (lo, hi float64) {
	var zero T
	ones := ^zero
	if ones < zero {
		bits := 0
		for m := ones; m != 0; m <<= 1 {
			bits++
		}
		return -math.Ldexp(1, bits-1), math.Ldexp(1, bits-1)
	}

	bits := 0
	for m := ones; m != 0; m >>= 1 {
		bits++
	}
	return 0, math.Ldexp(1, bits)
}
