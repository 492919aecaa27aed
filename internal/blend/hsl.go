package blend

// Luma weights are the Rec. 709 coefficients.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Lum returns the Rec. 709 luma of an unpremultiplied color.
func Lum(r, g, b float32) float32 {
	return lumaR*r + lumaG*g + lumaB*b
}

// Sat returns max(r, g, b) - min(r, g, b).
func Sat(r, g, b float32) float32 {
	return max(r, g, b) - min(r, g, b)
}

// ClipColor pulls out of range channels back into [0,1] while keeping the
// luma. Zero denominators leave the color unchanged.
func ClipColor(r, g, b float32) (float32, float32, float32) {
	l := Lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)

	if n < 0 {
		if d := l - n; d > 0 {
			r = l + (r-l)*l/d
			g = l + (g-l)*l/d
			b = l + (b-l)*l/d
		}
	}
	if x > 1 {
		if d := x - l; d > 0 {
			r = l + (r-l)*(1-l)/d
			g = l + (g-l)*(1-l)/d
			b = l + (b-l)*(1-l)/d
		}
	}
	return r, g, b
}

// SetLum shifts the color to luma l and clips it.
func SetLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - Lum(r, g, b)
	return ClipColor(r+d, g+d, b+d)
}

// SetSat rescales the color to saturation s keeping the channel order.
// A gray input has no hue to scale and yields black.
func SetSat(r, g, b, s float32) (float32, float32, float32) {
	lo, mid, hi := sortRGB(&r, &g, &b)
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid = 0
		*hi = 0
	}
	*lo = 0
	return r, g, b
}

// sortRGB returns pointers to the channels ordered by value.
func sortRGB(r, g, b *float32) (lo, mid, hi *float32) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

func hslHue(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := SetSat(sr, sg, sb, Sat(dr, dg, db))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

func hslSaturation(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := SetSat(dr, dg, db, Sat(sr, sg, sb))
	return SetLum(r, g, b, Lum(dr, dg, db))
}

func hslColor(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return SetLum(sr, sg, sb, Lum(dr, dg, db))
}

func hslLuminosity(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return SetLum(dr, dg, db, Lum(sr, sg, sb))
}
