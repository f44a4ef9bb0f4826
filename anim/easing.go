// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/easing.go
// Summary: Cubic-Bézier easing evaluator driving fade interpolation.
// Notes: Parametric inversion via Newton-Raphson with a bisection fallback,
// the same construction CSS timing functions use.

package anim

import (
	"errors"
	"math"
)

// ErrInvalidCurve is returned by CubicBezier when the control points cannot
// produce a curve solvable for x.
var ErrInvalidCurve = errors.New("anim: invalid easing curve control points")

// Fn maps a normalized progress value in [0,1] to an eased value.
// Fn(0) == 0 and Fn(1) == 1 exactly.
type Fn func(progress float64) float64

const (
	newtonIterations  = 8
	newtonMinSlope    = 1e-6
	solveEpsilon      = 1e-7
	bisectionMaxSteps = 32
)

// CubicBezier builds an easing function from the Bézier curve through
// (0,0), (x1,y1), (x2,y2), (1,1). The x control coordinates must lie in
// [0,1] so that x(t) is invertible, and all four coordinates must be finite;
// validation happens here, once, and the returned Fn never fails.
func CubicBezier(x1, y1, x2, y2 float64) (Fn, error) {
	for _, v := range [...]float64{x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrInvalidCurve
		}
	}
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return nil, ErrInvalidCurve
	}

	// Horner coefficients for x(t) and y(t) with P0=(0,0), P3=(1,1).
	cx := 3.0 * x1
	bx := 3.0*(x2-x1) - cx
	ax := 1.0 - cx - bx
	cy := 3.0 * y1
	by := 3.0*(y2-y1) - cy
	ay := 1.0 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3.0*ax*t+2.0*bx)*t + cx }

	solveT := func(x float64) float64 {
		t := x
		for i := 0; i < newtonIterations; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < solveEpsilon {
				return t
			}
			slope := slopeX(t)
			if math.Abs(slope) < newtonMinSlope {
				break
			}
			t -= dx / slope
		}

		// Newton stalled on a flat stretch; x(t) is monotone for x1,x2
		// in [0,1], so bisection always converges.
		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < bisectionMaxSteps && hi-lo > solveEpsilon; i++ {
			if sampleX(t) < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(progress float64) float64 {
		if progress <= 0 {
			return 0
		}
		if progress >= 1 {
			return 1
		}
		return sampleY(solveT(progress))
	}, nil
}

// EaseInOut is the canonical ease-in-out curve used for focus fades.
// Construction cannot fail for these control points.
func EaseInOut() Fn {
	fn, _ := CubicBezier(0.42, 0.0, 0.58, 1.0)
	return fn
}
