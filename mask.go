package tilecomp

import "math"

// MaskAlpha turns raw coverage and the tile backdrop into an alpha in [0, 1]
// under rule. MaskNone covers everything.
func MaskAlpha(coverage float32, backdrop int32, rule FillRule) float32 {
	v := coverage + float32(backdrop)
	switch rule {
	case NonZero:
		return min(float32(math.Abs(float64(v))), 1)
	case EvenOdd:
		m := v - 2*float32(math.Floor(float64(v)*0.5))
		return 1 - float32(math.Abs(float64(1-m)))
	default:
		return 1
	}
}

// CombineMasks intersects two mask alphas.
func CombineMasks(a, b float32) float32 {
	return min(a, b)
}
