// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pick

import (
	"math"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/math32"
)

// hitBody reports whether pt lies within tolerance of st's filled area or
// stroked outline (spec.md §4.3 "pick resolves to the topmost eligible
// entity whose body or stroke is within tolerance of the point").
func hitBody(st entity.State, pt math32.Vector2, tol float32) bool {
	switch st.Kind {
	case entity.Rect:
		return hitRect(st.Rect, pt, tol)
	case entity.Line:
		_, d := ClosestPointOnSegment(pt, st.Line.A, st.Line.B)
		return d <= tol+strokeHalf(st.Line.StrokeAttrs.StrokeWidth, st.Line.StrokeEnabled)
	case entity.Arrow:
		_, d := ClosestPointOnSegment(pt, st.Arrow.A, st.Arrow.B)
		return d <= tol+strokeHalf(st.Arrow.StrokeAttrs.StrokeWidth, st.Arrow.StrokeEnabled)+st.Arrow.HeadSize/2
	case entity.Polyline:
		pts := st.Polyline.Points
		for i := 0; i+1 < len(pts); i++ {
			_, d := ClosestPointOnSegment(pt, pts[i], pts[i+1])
			if d <= tol+strokeHalf(st.Polyline.StrokeWidth, st.Polyline.StrokeEnabled) {
				return true
			}
		}
		return false
	case entity.Circle:
		return hitEllipse(st.Circle.Center, st.Circle.RX, st.Circle.RY, st.Circle.Rotation, st.Circle.Scale,
			st.Circle.Fill.A > 0, st.Circle.StrokeEnabled, st.Circle.StrokeWidth, pt, tol)
	case entity.Polygon:
		// Regular n-gon hit-tested against its circumscribing ellipse; a
		// pragmatic over-approximation consistent with its bounding box.
		return hitEllipse(st.Polygon.Center, st.Polygon.RX, st.Polygon.RY, st.Polygon.Rotation, st.Polygon.Scale,
			st.Polygon.Fill.A > 0, st.Polygon.StrokeEnabled, st.Polygon.StrokeWidth, pt, tol)
	case entity.Text:
		if st.Text == nil {
			return false
		}
		box := TextAABB(st.Text.Pos, st.Text.Layout.Width, st.Text.Layout.Height, st.Text.Rotation)
		return box.ExpandByScalar(tol).ContainsPoint(pt)
	}
	return false
}

func strokeHalf(width float32, enabled bool) float32 {
	if !enabled || width <= 0 {
		return 0
	}
	return width / 2
}

func hitRect(r entity.RectRecord, pt math32.Vector2, tol float32) bool {
	box := math32.B2(r.Pos.X, r.Pos.Y, r.Size.X, r.Size.Y)
	if r.Fill.A > 0 && box.ContainsPoint(pt) {
		return true
	}
	if !r.StrokeEnabled {
		return false
	}
	half := strokeHalf(r.StrokeWidth, true) + tol
	corners := [4]math32.Vector2{
		{X: box.Min.X, Y: box.Min.Y}, {X: box.Max.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Max.Y}, {X: box.Min.X, Y: box.Max.Y},
	}
	for i := 0; i < 4; i++ {
		_, d := ClosestPointOnSegment(pt, corners[i], corners[(i+1)%4])
		if d <= half {
			return true
		}
	}
	return false
}

// hitEllipse transforms pt into the ellipse's local, unrotated unit-circle
// space and tests containment (fill) or proximity to the rim (stroke).
func hitEllipse(center math32.Vector2, rx, ry, angle, scale float32, filled, stroked bool, strokeWidth float32, pt math32.Vector2, tol float32) bool {
	if scale == 0 {
		scale = 1
	}
	rx, ry = rx*scale, ry*scale
	if rx <= 0 || ry <= 0 {
		return pt.DistanceTo(center) <= tol
	}
	local := pt.Sub(center).RotateAround(math32.Vector2{}, -angle)
	u, v := local.X/rx, local.Y/ry
	r2 := u*u + v*v
	if filled && r2 <= 1 {
		return true
	}
	// distance in normalized space isn't a true Euclidean distance, but for
	// a pick tolerance check it is a reasonable and cheap proxy.
	rim := float32(math.Sqrt(float64(r2)))
	tolNorm := tol / ((rx + ry) / 2)
	half := strokeHalf(strokeWidth, stroked)
	halfNorm := half / ((rx + ry) / 2)
	return stroked && rim >= 1-halfNorm-tolNorm && rim <= 1+halfNorm+tolNorm
}
