// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Box2 is an axis-aligned bounding box in 2D space.
type Box2 struct {
	Min, Max Vector2
}

// B2 returns a Box2 from x, y, width, height.
func B2(x, y, w, h float32) Box2 {
	return Box2{Min: Vector2{x, y}, Max: Vector2{x + w, y + h}}
}

// BoxFromMinMax returns a Box2 from explicit min/max corners.
func BoxFromMinMax(min, max Vector2) Box2 { return Box2{Min: min, Max: max} }

// Empty returns an inverted box suitable as an accumulation seed.
func Empty() Box2 {
	return Box2{
		Min: Vector2{MaxFloat32, MaxFloat32},
		Max: Vector2{-MaxFloat32, -MaxFloat32},
	}
}

// MaxFloat32 is the largest representable float32, used to seed empty boxes.
const MaxFloat32 = 3.40282346638528859811704183484516925440e+38

// IsEmpty reports whether the box has no area (min past max on any axis).
func (b Box2) IsEmpty() bool { return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y }

// Size returns the width/height of the box.
func (b Box2) Size() Vector2 { return b.Max.Sub(b.Min) }

// Center returns the box's geometric center.
func (b Box2) Center() Vector2 { return b.Min.Lerp(b.Max, 0.5) }

// ExpandByPoint grows b to include p, returning the new box.
func (b Box2) ExpandByPoint(p Vector2) Box2 {
	return Box2{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both b and o.
func (b Box2) Union(o Box2) Box2 {
	return Box2{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// ExpandByScalar grows the box on all sides by s.
func (b Box2) ExpandByScalar(s float32) Box2 {
	return Box2{Min: b.Min.SubScalar(s), Max: b.Max.AddScalar(s)}
}

// Overlaps reports whether b and o share any area (touching edges count).
func (b Box2) Overlaps(o Box2) bool {
	if b.Max.X < o.Min.X || b.Min.X > o.Max.X {
		return false
	}
	if b.Max.Y < o.Min.Y || b.Min.Y > o.Max.Y {
		return false
	}
	return true
}

// ContainsBox reports whether b fully contains o.
func (b Box2) ContainsBox(o Box2) bool {
	return o.Min.X >= b.Min.X && o.Max.X <= b.Max.X && o.Min.Y >= b.Min.Y && o.Max.Y <= b.Max.Y
}

// ContainsPoint reports whether p lies within b, inclusive of edges.
func (b Box2) ContainsPoint(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// MulMatrix2 transforms b by m and returns the axis-aligned bounds of the
// result (the box's four corners are transformed and re-enclosed).
func (b Box2) MulMatrix2(m Matrix2) Box2 {
	corners := [4]Vector2{
		{b.Min.X, b.Min.Y},
		{b.Max.X, b.Min.Y},
		{b.Max.X, b.Max.Y},
		{b.Min.X, b.Max.Y},
	}
	out := Empty()
	for _, c := range corners {
		out = out.ExpandByPoint(m.MulVector2(c))
	}
	return out
}
