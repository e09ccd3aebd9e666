// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 provides the float32 2D vector, box, and matrix types
// used throughout the document engine for geometry, picking, and
// tessellation. It deliberately stays float32-only: the engine's wire
// formats and digest canonicalization are defined in terms of float32.
package math32

import "math"

// Vector2 is a 2D vector/point with float32 components.
type Vector2 struct {
	X, Y float32
}

// Vec2 returns a new Vector2 with the given components.
func Vec2(x, y float32) Vector2 { return Vector2{x, y} }

// Vector2Scalar returns a Vector2 with both components set to s.
func Vector2Scalar(s float32) Vector2 { return Vector2{s, s} }

// Set sets the components of the vector.
func (v *Vector2) Set(x, y float32) { v.X, v.Y = x, y }

// Add returns the sum of v and o.
func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }

// Sub returns v minus o.
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }

// MulScalar returns v scaled by s.
func (v Vector2) MulScalar(s float32) Vector2 { return Vector2{v.X * s, v.Y * s} }

// AddScalar returns v with s added to both components.
func (v Vector2) AddScalar(s float32) Vector2 { return Vector2{v.X + s, v.Y + s} }

// SubScalar returns v with s subtracted from both components.
func (v Vector2) SubScalar(s float32) Vector2 { return Vector2{v.X - s, v.Y - s} }

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float32 { return v.X*o.X + v.Y*o.Y }

// Cross returns the 2D "cross product" (z component of the 3D cross).
func (v Vector2) Cross(o Vector2) float32 { return v.X*o.Y - v.Y*o.X }

// Length returns the Euclidean length of v.
func (v Vector2) Length() float32 { return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y))) }

// LengthSquared returns the squared length of v, avoiding the sqrt.
func (v Vector2) LengthSquared() float32 { return v.X*v.X + v.Y*v.Y }

// DistanceTo returns the distance between v and o.
func (v Vector2) DistanceTo(o Vector2) float32 { return v.Sub(o).Length() }

// Normal returns v normalized to unit length; the zero vector if v is zero.
func (v Vector2) Normal() Vector2 {
	l := v.Length()
	if l == 0 {
		return Vector2{}
	}
	return v.MulScalar(1 / l)
}

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (v Vector2) Perp() Vector2 { return Vector2{-v.Y, v.X} }

// Lerp returns the linear interpolation between v and o at t in [0,1].
func (v Vector2) Lerp(o Vector2, t float32) Vector2 {
	return Vector2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// RotateAround rotates v around pivot by angle radians.
func (v Vector2) RotateAround(pivot Vector2, angle float32) Vector2 {
	s, c := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	d := v.Sub(pivot)
	return Vector2{
		pivot.X + d.X*c - d.Y*s,
		pivot.Y + d.X*s + d.Y*c,
	}
}

// Min returns the componentwise minimum of v and o.
func (v Vector2) Min(o Vector2) Vector2 { return Vector2{min(v.X, o.X), min(v.Y, o.Y)} }

// Max returns the componentwise maximum of v and o.
func (v Vector2) Max(o Vector2) Vector2 { return Vector2{max(v.X, o.X), max(v.Y, o.Y)} }

// IsFinite reports whether both components are finite (no NaN/Inf).
func (v Vector2) IsFinite() bool {
	return !math.IsNaN(float64(v.X)) && !math.IsInf(float64(v.X), 0) &&
		!math.IsNaN(float64(v.Y)) && !math.IsInf(float64(v.Y), 0)
}
