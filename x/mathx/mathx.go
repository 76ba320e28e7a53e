// Package mathx holds the integer helpers the control path needs.
package mathx

import "golang.org/x/exp/constraints"

// Clamp bounds v to the closed range between lo and hi, in either order.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	lo, hi = min(lo, hi), max(lo, hi)
	return min(max(v, lo), hi)
}

// Map re-scales x from [inMin,inMax] to [outMin,outMax] using integer
// arithmetic with truncation toward zero. The input is not clamped, so values
// outside the input range extrapolate; callers clamp the result.
// A degenerate input range returns outMin.
func Map[T constraints.Signed](x, inMin, inMax, outMin, outMax T) T {
	if inMax == inMin {
		return outMin
	}
	num := int64(x-inMin) * int64(outMax-outMin)
	return T(num/int64(inMax-inMin)) + outMin
}
