package dome

import "math"

// WrapSigned maps any angle in degrees into (-180, 180].
func WrapSigned(a float64) float64 {
	if a > -180 && a <= 180 {
		return a
	}
	w := math.Mod(math.Mod(a+180, 360)+360, 360) - 180
	if w <= -180 {
		return 180
	}
	return w
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
