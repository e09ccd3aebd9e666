// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"

	"cogentcore.org/cadcore/math32"
)

const (
	minEllipseSegments = 8
	maxEllipseSegments = 128
)

// ChordTolerance converts a screen-space pixel tolerance into world units
// (spec.md §4.8: "chord-tolerance derived from tolerance_px / view_scale").
func ChordTolerance(tolerancePx, viewScale float32) float32 {
	if viewScale <= 0 {
		return tolerancePx
	}
	return tolerancePx / viewScale
}

// EllipseSegmentCount picks a flattening resolution that keeps the
// maximum chord deviation within tol world units, clamped to a sane
// range so degenerate (zero-radius or zero-tolerance) inputs never
// produce zero or unbounded segment counts.
func EllipseSegmentCount(rx, ry, tol float32) int {
	r := rx
	if ry > r {
		r = ry
	}
	if r <= 0 {
		return minEllipseSegments
	}
	if tol <= 0 {
		return maxEllipseSegments
	}
	arg := 1 - float64(tol)/float64(r)
	if arg < -1 {
		arg = -1
	}
	if arg > 1 {
		arg = 1
	}
	theta := 2 * math.Acos(arg)
	if theta <= 0 {
		return maxEllipseSegments
	}
	n := int(math.Ceil(2 * math.Pi / theta))
	if n < minEllipseSegments {
		n = minEllipseSegments
	}
	if n > maxEllipseSegments {
		n = maxEllipseSegments
	}
	return n
}

// EllipsePoints flattens a (possibly rotated, non-uniformly scaled)
// ellipse into a point ring of n vertices, starting at angle 0.
func EllipsePoints(center math32.Vector2, rx, ry, rotation, scale float32, n int) []math32.Vector2 {
	if n < 3 {
		n = 3
	}
	pts := make([]math32.Vector2, n)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		local := math32.Vec2(rx*scale*float32(math.Cos(t)), ry*scale*float32(math.Sin(t)))
		pts[i] = local.RotateAround(math32.Vector2{}, rotation).Add(center)
	}
	return pts
}
