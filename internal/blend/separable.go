package blend

import "math"

// Per-channel blend functions. cb is the backdrop, cs the source, both
// unpremultiplied.

func multiply(cb, cs float32) float32 { return cb * cs }

func screen(cb, cs float32) float32 { return cb + cs - cb*cs }

func overlay(cb, cs float32) float32 { return hardLight(cs, cb) }

func darken(cb, cs float32) float32 { return min(cb, cs) }

func lighten(cb, cs float32) float32 { return max(cb, cs) }

func colorDodge(cb, cs float32) float32 {
	switch {
	case cb <= 0:
		return 0
	case cs >= 1:
		return 1
	default:
		return min(1, cb/(1-cs))
	}
}

func colorBurn(cb, cs float32) float32 {
	switch {
	case cb >= 1:
		return 1
	case cs <= 0:
		return 0
	default:
		return 1 - min(1, (1-cb)/cs)
	}
}

func hardLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return multiply(cb, 2*cs)
	}
	return screen(cb, 2*cs-1)
}

func softLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float32
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = float32(math.Sqrt(float64(cb)))
	}
	return cb + (2*cs-1)*(d-cb)
}

func difference(cb, cs float32) float32 {
	if cb > cs {
		return cb - cs
	}
	return cs - cb
}

func exclusion(cb, cs float32) float32 { return cb + cs - 2*cb*cs }
