// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/geom.go
// Summary: Integer rectangles and 2-D affine transforms for border placement.

package geom

import (
	"fmt"
	"math"
)

// Rect is a window rectangle in screen coordinates. Edges are
// inclusive-exclusive: [Left,Right) × [Top,Bottom).
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Center returns the geometric center of the rectangle.
func (r Rect) Center() (float64, float64) {
	return float64(r.Left) + float64(r.Width())/2, float64(r.Top) + float64(r.Height())/2
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Inset returns the rectangle shrunk by n on every edge. Negative n grows it.
func (r Rect) Inset(n int) Rect {
	return Rect{Left: r.Left + n, Top: r.Top + n, Right: r.Right - n, Bottom: r.Bottom - n}
}

// Matrix is a 2×3 affine transform,
//
//	| A C E |
//	| B D F |
//
// applied as x' = A·x + C·y + E, y' = B·x + D·y + F.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{A: 1, D: 1} }

// Rotation returns a transform rotating by angleDeg degrees
// counter-clockwise about the point (cx, cy).
func Rotation(angleDeg, cx, cy float64) Matrix {
	sin, cos := math.Sincos(angleDeg * math.Pi / 180)
	return Matrix{
		A: cos, C: -sin, E: cx - cos*cx + sin*cy,
		B: sin, D: cos, F: cy - sin*cx - cos*cy,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Angle recovers the rotation angle of the transform in degrees, in [0,360).
func (m Matrix) Angle() float64 {
	deg := math.Atan2(m.B, m.A) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Matrix) IsIdentity() bool { return m == Matrix{A: 1, D: 1} }
