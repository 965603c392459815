package anim

import "math"

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Standard CSS timing functions.
var (
	Linear    Easing = func(t float64) float64 { return t }
	EaseIn           = CubicBezier(0.42, 0, 1, 1)
	EaseOut          = CubicBezier(0, 0, 0.58, 1)
	EaseInOut        = CubicBezier(0.42, 0, 0.58, 1)
)

// CubicBezier returns the easing described by the control points
// (x1, y1) and (x2, y2), with the curve anchored at (0,0) and (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			err := sampleX(t) - x
			if math.Abs(err) < 1e-7 {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= err / d
		}

		// Newton did not converge; bisect.
		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 64 && lo < hi; i++ {
			v := sampleX(t)
			if math.Abs(v-x) < 1e-7 {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solve(t))
	}
}

// Map linearly transforms v from [inLo, inHi] to [outLo, outHi], clamping
// to the output range.
func Map(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outHi
	}
	p := (v - inLo) / (inHi - inLo)
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return outLo + (outHi-outLo)*p
}
