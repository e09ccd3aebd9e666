// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tessellate assembles the interleaved render vertex buffers for
// fills and strokes, and flattens curves for both tessellation and
// overlay use (spec.md §4.8). No third-party triangulation/geometry
// library is wired here: the pack carries no polygon-triangulation or
// curve-flattening dependency, so this stays on plain float32 math and
// the stdlib, the same way the teacher's own renderer packages assemble
// vertex data by hand.
package tessellate

import (
	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
)

// floatsPerVertex is the interleaved vertex stride: x,y,z,r,g,b,a
// (spec.md §4.8).
const floatsPerVertex = 7

// Buffers holds one render epoch's assembled vertex data.
type Buffers struct {
	Fill   []float32 // triangle list
	Stroke []float32 // triangle list (stroke expanded into quads)
}

// Build assembles fill and stroke vertex buffers for every visible, live
// entity in draw order. tolerancePx/viewScale set the curve-flattening
// chord tolerance (spec.md §4.8).
func Build(st *entity.Store, ls *layer.Store, tolerancePx, viewScale float32) Buffers {
	tol := ChordTolerance(tolerancePx, viewScale)
	var b Buffers
	for _, id := range st.DrawOrder() {
		s, ok := st.GetState(id)
		if !ok || !visible(ls, s.Attrs) {
			continue
		}
		appendEntity(&b, s, tol)
	}
	return b
}

func visible(ls *layer.Store, a entity.Attrs) bool {
	return a.Flags&protocol.FlagVisible != 0 && ls.IsVisible(a.LayerID)
}

func appendEntity(b *Buffers, s entity.State, tol float32) {
	switch s.Kind {
	case entity.Rect:
		corners := []math32.Vector2{
			{X: s.Rect.Pos.X, Y: s.Rect.Pos.Y},
			{X: s.Rect.Pos.X + s.Rect.Size.X, Y: s.Rect.Pos.Y},
			{X: s.Rect.Pos.X + s.Rect.Size.X, Y: s.Rect.Pos.Y + s.Rect.Size.Y},
			{X: s.Rect.Pos.X, Y: s.Rect.Pos.Y + s.Rect.Size.Y},
		}
		appendFillIfOpaque(b, corners, s.Rect.Fill)
		appendStrokeLoop(b, corners, true, s.Rect.StrokeAttrs)
	case entity.Line:
		appendStrokeLoop(b, []math32.Vector2{s.Line.A, s.Line.B}, false, s.Line.StrokeAttrs)
	case entity.Arrow:
		appendStrokeLoop(b, []math32.Vector2{s.Arrow.A, s.Arrow.B}, false, s.Arrow.StrokeAttrs)
		appendArrowHead(b, s.Arrow)
	case entity.Polyline:
		appendStrokeLoop(b, s.Polyline.Points, false, s.Polyline.StrokeAttrs)
	case entity.Circle:
		n := EllipseSegmentCount(s.Circle.RX, s.Circle.RY, tol)
		pts := EllipsePoints(s.Circle.Center, s.Circle.RX, s.Circle.RY, s.Circle.Rotation, s.Circle.Scale, n)
		appendFillIfOpaque(b, pts, s.Circle.Fill)
		appendStrokeLoop(b, pts, true, s.Circle.StrokeAttrs)
	case entity.Polygon:
		n := EllipseSegmentCount(s.Polygon.RX, s.Polygon.RY, tol)
		if s.Polygon.Sides > 0 && int(s.Polygon.Sides) < n {
			n = int(s.Polygon.Sides)
		}
		pts := EllipsePoints(s.Polygon.Center, s.Polygon.RX, s.Polygon.RY, s.Polygon.Rotation, s.Polygon.Scale, n)
		appendFillIfOpaque(b, pts, s.Polygon.Fill)
		appendStrokeLoop(b, pts, true, s.Polygon.StrokeAttrs)
	}
}

func hasAlpha(c colors.RGBA) bool { return c.A > 0 }

func appendFillIfOpaque(b *Buffers, pts []math32.Vector2, fill colors.RGBA) {
	if !hasAlpha(fill) || len(pts) < 3 {
		return
	}
	for _, tri := range earClip(pts) {
		for _, i := range tri {
			appendVertex(&b.Fill, pts[i], fill)
		}
	}
}

// appendStrokeLoop expands each segment of pts into a quad (two
// triangles). If closed, an extra segment connects the last point back
// to the first.
func appendStrokeLoop(b *Buffers, pts []math32.Vector2, closed bool, stroke entity.StrokeAttrs) {
	if !stroke.StrokeEnabled || stroke.StrokeWidth <= 0 || len(pts) < 2 {
		return
	}
	segs := len(pts) - 1
	if closed {
		segs = len(pts)
	}
	half := stroke.StrokeWidth / 2
	for i := 0; i < segs; i++ {
		a := pts[i]
		bp := pts[(i+1)%len(pts)]
		dir := bp.Sub(a)
		if dir.Length() == 0 {
			continue
		}
		n := dir.Perp().Normal().MulScalar(half)
		p0, p1, p2, p3 := a.Add(n), bp.Add(n), bp.Sub(n), a.Sub(n)
		appendVertex(&b.Stroke, p0, stroke.Stroke)
		appendVertex(&b.Stroke, p1, stroke.Stroke)
		appendVertex(&b.Stroke, p2, stroke.Stroke)
		appendVertex(&b.Stroke, p0, stroke.Stroke)
		appendVertex(&b.Stroke, p2, stroke.Stroke)
		appendVertex(&b.Stroke, p3, stroke.Stroke)
	}
}

// appendArrowHead appends a filled triangle at B pointing away from A,
// using the stroke color since ArrowRecord carries no separate fill.
func appendArrowHead(b *Buffers, a entity.ArrowRecord) {
	if !a.StrokeAttrs.StrokeEnabled || a.HeadSize <= 0 {
		return
	}
	dir := a.B.Sub(a.A)
	if dir.Length() == 0 {
		return
	}
	dir = dir.Normal()
	back := a.B.Sub(dir.MulScalar(a.HeadSize))
	side := dir.Perp().MulScalar(a.HeadSize / 2)
	appendVertex(&b.Stroke, a.B, a.Stroke)
	appendVertex(&b.Stroke, back.Add(side), a.Stroke)
	appendVertex(&b.Stroke, back.Sub(side), a.Stroke)
}

func appendVertex(buf *[]float32, p math32.Vector2, c colors.RGBA) {
	*buf = append(*buf, p.X, p.Y, 0, c.R, c.G, c.B, c.A)
}
