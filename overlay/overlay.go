// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package overlay produces the selection outline, selection handle, and
// snap-feedback primitive streams consumed by the host UI (spec.md
// §4.8).
package overlay

import (
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/pick"
	"cogentcore.org/cadcore/tessellate"
)

// Kind tags the geometric interpretation of a Primitive's point run
// (spec.md §4.8: "kind: Polyline|Polygon|Segment|Rect|Point").
type Kind uint16

const (
	Polyline Kind = iota
	Polygon
	Segment
	Rect
	Point
)

// Primitive describes one run of points within a Stream's Data, matching
// the wire-ready 12-byte record layout (u16 kind, u16 flags, u32 count,
// u32 offset).
type Primitive struct {
	Kind   Kind
	Flags  uint16
	Count  uint32
	Offset uint32
}

// Stream is one overlay query's result: a primitive directory plus the
// flat x,y point data every primitive's Offset/Count slices into
// (spec.md §4.8: "{primitive_count, float_count, primitives_ptr,
// data_ptr}").
type Stream struct {
	Primitives []Primitive
	Data       []float32 // x,y pairs
}

// FloatCount is the number of floats in Data (2 per point).
func (s Stream) FloatCount() int { return len(s.Data) }

type builder struct{ s Stream }

func (b *builder) add(kind Kind, flags uint16, pts []math32.Vector2) {
	off := len(b.s.Data) / 2
	for _, p := range pts {
		b.s.Data = append(b.s.Data, p.X, p.Y)
	}
	b.s.Primitives = append(b.s.Primitives, Primitive{Kind: kind, Flags: flags, Count: uint32(len(pts)), Offset: uint32(off)})
}

// SelectionOutline builds one outline primitive per selected entity:
// a closed Polygon for Rect/Circle/Polygon, a Segment for Line/Arrow, a
// Polyline for Polyline, and nothing for Text (text has no resize/outline
// geometry).
func SelectionOutline(st *entity.Store, ids []uint32, tolerancePx, viewScale float32) Stream {
	tol := tessellate.ChordTolerance(tolerancePx, viewScale)
	b := &builder{}
	for _, id := range ids {
		s, ok := st.GetState(id)
		if !ok {
			continue
		}
		switch s.Kind {
		case entity.Rect:
			b.add(Polygon, 0, rectCorners(s.Rect.Pos, s.Rect.Size))
		case entity.Circle:
			n := tessellate.EllipseSegmentCount(s.Circle.RX, s.Circle.RY, tol)
			b.add(Polygon, 0, tessellate.EllipsePoints(s.Circle.Center, s.Circle.RX, s.Circle.RY, s.Circle.Rotation, s.Circle.Scale, n))
		case entity.Polygon:
			n := tessellate.EllipseSegmentCount(s.Polygon.RX, s.Polygon.RY, tol)
			b.add(Polygon, 0, tessellate.EllipsePoints(s.Polygon.Center, s.Polygon.RX, s.Polygon.RY, s.Polygon.Rotation, s.Polygon.Scale, n))
		case entity.Line:
			b.add(Segment, 0, []math32.Vector2{s.Line.A, s.Line.B})
		case entity.Arrow:
			b.add(Segment, 0, []math32.Vector2{s.Arrow.A, s.Arrow.B})
		case entity.Polyline:
			b.add(Polyline, 0, s.Polyline.Points)
		}
	}
	return b.s
}

// Selection-handle flags distinguish what a Point primitive represents.
const (
	HandleResize uint16 = 1 << iota
	HandleVertex
	HandleEdgeMidpoint
)

// SelectionHandles builds one Point primitive per interactive handle for
// a single selected entity: resize-handle corners for Rect/Circle/
// Polygon, vertex handles for Line/Polyline/Arrow (spec.md §4.3: handle
// precedence for line-like selections).
func SelectionHandles(st *entity.Store, id uint32) Stream {
	s, ok := st.GetState(id)
	if !ok {
		return Stream{}
	}
	b := &builder{}
	switch s.Kind {
	case entity.Rect, entity.Circle, entity.Polygon:
		box := pick.ComputeAABB(s)
		corners := []math32.Vector2{
			{X: box.Min.X, Y: box.Min.Y}, {X: box.Max.X, Y: box.Min.Y},
			{X: box.Max.X, Y: box.Max.Y}, {X: box.Min.X, Y: box.Max.Y},
		}
		for _, c := range corners {
			b.add(Point, HandleResize, []math32.Vector2{c})
		}
	case entity.Line:
		b.add(Point, HandleVertex, []math32.Vector2{s.Line.A})
		b.add(Point, HandleVertex, []math32.Vector2{s.Line.B})
	case entity.Arrow:
		b.add(Point, HandleVertex, []math32.Vector2{s.Arrow.A})
		b.add(Point, HandleVertex, []math32.Vector2{s.Arrow.B})
	case entity.Polyline:
		for _, p := range s.Polyline.Points {
			b.add(Point, HandleVertex, []math32.Vector2{p})
		}
	}
	return b.s
}

// SnapFeedback builds a Point primitive per active snap candidate and,
// when the candidate aligns on an axis with the moving reference point,
// a Segment primitive showing the alignment guide line.
func SnapFeedback(reference math32.Vector2, candidates []math32.Vector2) Stream {
	b := &builder{}
	for _, c := range candidates {
		b.add(Point, 0, []math32.Vector2{c})
		if c.X == reference.X || c.Y == reference.Y {
			b.add(Segment, 0, []math32.Vector2{reference, c})
		}
	}
	return b.s
}

func rectCorners(pos, size math32.Vector2) []math32.Vector2 {
	return []math32.Vector2{
		{X: pos.X, Y: pos.Y}, {X: pos.X + size.X, Y: pos.Y},
		{X: pos.X + size.X, Y: pos.Y + size.Y}, {X: pos.X, Y: pos.Y + size.Y},
	}
}
