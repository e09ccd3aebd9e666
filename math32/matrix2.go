// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "math"

// Matrix2 is a 2D affine transform in row-major a,b,c,d,e,f form:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// matching the convention used by 2D canvas-style APIs.
type Matrix2 struct {
	A, B, C, D, E, F float32
}

// Identity2 returns the identity transform.
func Identity2() Matrix2 { return Matrix2{A: 1, D: 1} }

// Translate2 returns a pure translation transform.
func Translate2(x, y float32) Matrix2 { return Matrix2{A: 1, D: 1, E: x, F: y} }

// Rotate2 returns a pure rotation transform (radians, counter-clockwise).
func Rotate2(angle float32) Matrix2 {
	s, c := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	return Matrix2{A: c, B: s, C: -s, D: c}
}

// Scale2 returns a pure scale transform.
func Scale2(sx, sy float32) Matrix2 { return Matrix2{A: sx, D: sy} }

// Mul returns m composed with o: applying the result is equivalent to
// applying o then m.
func (m Matrix2) Mul(o Matrix2) Matrix2 {
	return Matrix2{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// MulVector2 applies the transform to a point.
func (m Matrix2) MulVector2(v Vector2) Vector2 {
	return Vector2{
		X: m.A*v.X + m.C*v.Y + m.E,
		Y: m.B*v.X + m.D*v.Y + m.F,
	}
}
