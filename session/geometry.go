// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"math"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/pick"
)

// applyState re-dispatches a mutated State back into the store through the
// same kind-specific Upsert call used to create it, leaving any style
// override untouched.
func applyState(st *entity.Store, s entity.State) {
	switch s.Kind {
	case entity.Rect:
		st.UpsertRect(s.ID, s.Rect, s.Attrs)
	case entity.Line:
		st.UpsertLine(s.ID, s.Line, s.Attrs)
	case entity.Arrow:
		st.UpsertArrow(s.ID, s.Arrow, s.Attrs)
	case entity.Circle:
		st.UpsertCircle(s.ID, s.Circle, s.Attrs)
	case entity.Polygon:
		st.UpsertPolygon(s.ID, s.Polygon, s.Attrs)
	case entity.Polyline:
		st.UpsertPolyline(s.ID, s.Polyline.Points, s.Polyline.StrokeAttrs, s.Attrs)
	case entity.Text:
		if s.Text != nil {
			st.UpsertText(s.ID, *s.Text, s.Attrs)
		}
	}
}

// translateState returns a copy of orig shifted by delta, recomputed from
// orig (not from any intermediate state) so repeated calls are idempotent.
func translateState(orig entity.State, delta math32.Vector2) entity.State {
	out := orig.Clone()
	switch out.Kind {
	case entity.Rect:
		out.Rect.Pos = out.Rect.Pos.Add(delta)
	case entity.Line:
		out.Line.A = out.Line.A.Add(delta)
		out.Line.B = out.Line.B.Add(delta)
	case entity.Arrow:
		out.Arrow.A = out.Arrow.A.Add(delta)
		out.Arrow.B = out.Arrow.B.Add(delta)
	case entity.Polyline:
		for i := range out.Polyline.Points {
			out.Polyline.Points[i] = out.Polyline.Points[i].Add(delta)
		}
	case entity.Circle:
		out.Circle.Center = out.Circle.Center.Add(delta)
	case entity.Polygon:
		out.Polygon.Center = out.Polygon.Center.Add(delta)
	case entity.Text:
		if out.Text != nil {
			out.Text.Pos = out.Text.Pos.Add(delta)
		}
	}
	return out
}

// rotateState rotates orig's position/points around pivot by angle
// radians. Rect carries no intrinsic rotation field in the data model, so
// only its anchor point rotates; Circle/Polygon/Text additionally
// accumulate angle into their own Rotation field, and Line/Polyline/Arrow
// rotate every point, which is a fully rigid transform for those kinds.
func rotateState(orig entity.State, pivot math32.Vector2, angle float32) entity.State {
	out := orig.Clone()
	switch out.Kind {
	case entity.Rect:
		out.Rect.Pos = out.Rect.Pos.RotateAround(pivot, angle)
	case entity.Line:
		out.Line.A = out.Line.A.RotateAround(pivot, angle)
		out.Line.B = out.Line.B.RotateAround(pivot, angle)
	case entity.Arrow:
		out.Arrow.A = out.Arrow.A.RotateAround(pivot, angle)
		out.Arrow.B = out.Arrow.B.RotateAround(pivot, angle)
	case entity.Polyline:
		for i := range out.Polyline.Points {
			out.Polyline.Points[i] = out.Polyline.Points[i].RotateAround(pivot, angle)
		}
	case entity.Circle:
		out.Circle.Center = out.Circle.Center.RotateAround(pivot, angle)
		out.Circle.Rotation += angle
	case entity.Polygon:
		out.Polygon.Center = out.Polygon.Center.RotateAround(pivot, angle)
		out.Polygon.Rotation += angle
	case entity.Text:
		if out.Text != nil {
			out.Text.Pos = out.Text.Pos.RotateAround(pivot, angle)
			out.Text.Rotation += angle
		}
	}
	return out
}

// resizeState rewrites orig's bounding geometry to box. Only Rect, Circle
// and Polygon reach here; Resize is refused at begin_transform for
// line-like kinds.
func resizeState(orig entity.State, box math32.Box2) entity.State {
	out := orig.Clone()
	switch out.Kind {
	case entity.Rect:
		out.Rect.Pos = box.Min
		out.Rect.Size = box.Size()
	case entity.Circle:
		out.Circle.Center = box.Center()
		out.Circle.RX = box.Size().X / 2
		out.Circle.RY = box.Size().Y / 2
		out.Circle.Scale = 1
	case entity.Polygon:
		out.Polygon.Center = box.Center()
		out.Polygon.RX = box.Size().X / 2
		out.Polygon.RY = box.Size().Y / 2
		out.Polygon.Scale = 1
	}
	return out
}

// withVertex returns a copy of orig with the idx'th vertex moved to pt.
func withVertex(orig entity.State, idx int, pt math32.Vector2) entity.State {
	out := orig.Clone()
	switch out.Kind {
	case entity.Line:
		if idx == 0 {
			out.Line.A = pt
		} else {
			out.Line.B = pt
		}
	case entity.Arrow:
		if idx == 0 {
			out.Arrow.A = pt
		} else {
			out.Arrow.B = pt
		}
	case entity.Polyline:
		if idx >= 0 && idx < len(out.Polyline.Points) {
			out.Polyline.Points[idx] = pt
		}
	}
	return out
}

// referenceVertex returns the current position of the idx'th vertex.
func referenceVertex(s entity.State, idx int) math32.Vector2 {
	switch s.Kind {
	case entity.Line:
		if idx == 0 {
			return s.Line.A
		}
		return s.Line.B
	case entity.Arrow:
		if idx == 0 {
			return s.Arrow.A
		}
		return s.Arrow.B
	case entity.Polyline:
		if idx >= 0 && idx < len(s.Polyline.Points) {
			return s.Polyline.Points[idx]
		}
	}
	return math32.Vector2{}
}

// anchorForHandle returns the box corner opposite the grabbed resize
// handle (spec.md §4.4 corner numbering: 0=BottomLeft,1=BottomRight,
// 2=TopRight,3=TopLeft).
func anchorForHandle(box math32.Box2, handle int) math32.Vector2 {
	switch handle {
	case 0:
		return math32.Vec2(box.Max.X, box.Max.Y)
	case 1:
		return math32.Vec2(box.Min.X, box.Max.Y)
	case 2:
		return math32.Vec2(box.Min.X, box.Min.Y)
	default:
		return math32.Vec2(box.Max.X, box.Min.Y)
	}
}

// normalizeBox swaps min/max components so Min <= Max on both axes.
func normalizeBox(b math32.Box2) math32.Box2 {
	return math32.BoxFromMinMax(b.Min.Min(b.Max), b.Min.Max(b.Max))
}

const minResizeDimension = 1e-3

// clampBoxSize floors box's width/height at minResizeDimension, growing
// away from anchor, to avoid degenerate zero-area geometry (spec.md
// §4.4).
func clampBoxSize(box math32.Box2, anchor math32.Vector2) math32.Box2 {
	size := box.Size()
	if size.X < minResizeDimension {
		if box.Max.X >= anchor.X {
			box.Max.X = box.Min.X + minResizeDimension
		} else {
			box.Min.X = box.Max.X - minResizeDimension
		}
	}
	if size.Y < minResizeDimension {
		if box.Max.Y >= anchor.Y {
			box.Max.Y = box.Min.Y + minResizeDimension
		} else {
			box.Min.Y = box.Max.Y - minResizeDimension
		}
	}
	return box
}

// axisLock snaps delta onto whichever of the X or Y axis has the larger
// magnitude (Shift-constrained move/vertex-drag).
func axisLock(delta math32.Vector2) math32.Vector2 {
	if math.Abs(float64(delta.X)) >= math.Abs(float64(delta.Y)) {
		return math32.Vec2(delta.X, 0)
	}
	return math32.Vec2(0, delta.Y)
}

// snap45 returns a point at the same distance from base as target, with
// its direction rounded to the nearest 45-degree increment.
func snap45(base, target math32.Vector2) math32.Vector2 {
	d := target.Sub(base)
	dist := d.Length()
	if dist == 0 {
		return target
	}
	angle := math.Atan2(float64(d.Y), float64(d.X))
	step := math.Pi / 4
	snapped := math.Round(angle/step) * step
	return base.Add(math32.Vec2(float32(math.Cos(snapped))*dist, float32(math.Sin(snapped))*dist))
}

// angleTo returns the angle in radians from pivot to p.
func angleTo(pivot, p math32.Vector2) float32 {
	d := p.Sub(pivot)
	return float32(math.Atan2(float64(d.Y), float64(d.X)))
}

// snapMoveDelta adjusts delta so the moving selection's bounding-box
// candidate points (corners, edge midpoints, center, per the enabled
// categories) align with the nearest in-tolerance candidate point of
// another eligible entity, or the grid, in priority order endpoint >
// midpoint > center > grid (spec.md §4.4). Ties within a category resolve
// to the smallest offset found.
func (s *Session) snapMoveDelta(ctx Context, delta math32.Vector2) math32.Vector2 {
	if len(s.targetIDs()) == 0 {
		return delta
	}
	box := math32.Empty()
	for _, id := range s.targetIDs() {
		if orig, ok := s.snapshot[id]; ok {
			box = box.Union(pick.ComputeAABB(translateState(orig, delta)))
		}
	}
	tol := ctx.Snap.TolerancePx
	if ctx.Snap.TolerancePx > 0 && s.viewScale > 0 {
		tol = ctx.Snap.TolerancePx / s.viewScale
	}
	if tol <= 0 {
		tol = 1
	}

	moving := map[string][]math32.Vector2{
		"endpoint": corners(box),
		"midpoint": edgeMidpoints(box),
		"center":   {box.Center()},
	}

	var others []math32.Box2
	if ctx.Entities != nil {
		targeted := map[uint32]bool{}
		for _, id := range s.targetIDs() {
			targeted[id] = true
		}
		for _, id := range ctx.Entities.DrawOrder() {
			if targeted[id] {
				continue
			}
			if st, ok := ctx.Entities.GetState(id); ok {
				others = append(others, pick.ComputeAABB(st))
			}
		}
	}

	best := math32.Vector2{}
	bestDist := float32(math.Inf(1))
	found := false

	for _, category := range []string{"endpoint", "midpoint", "center"} {
		if !snapCategoryEnabled(ctx.Snap, category) {
			continue
		}
		pts := moving[category]
		var candidates []math32.Vector2
		for _, ob := range others {
			candidates = append(candidates, categoryPoints(ob, category)...)
		}
		for _, mp := range pts {
			for _, cp := range candidates {
				d := cp.Sub(mp)
				dist := d.Length()
				if dist <= tol && dist < bestDist {
					bestDist, best, found = dist, d, true
				}
			}
		}
		if found {
			return delta.Add(best)
		}
	}

	if ctx.Snap.GridEnabled && ctx.Snap.GridSize > 0 {
		c := box.Center()
		gx := float32(math.Round(float64(c.X/ctx.Snap.GridSize))) * ctx.Snap.GridSize
		gy := float32(math.Round(float64(c.Y/ctx.Snap.GridSize))) * ctx.Snap.GridSize
		g := math32.Vec2(gx, gy).Sub(c)
		if g.Length() <= tol {
			return delta.Add(g)
		}
	}
	return delta
}

func snapCategoryEnabled(p SnapPolicy, category string) bool {
	switch category {
	case "endpoint":
		return p.Endpoint
	case "midpoint":
		return p.Midpoint
	case "center":
		return p.Center
	}
	return false
}

func corners(b math32.Box2) []math32.Vector2 {
	return []math32.Vector2{
		{X: b.Min.X, Y: b.Min.Y}, {X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y}, {X: b.Min.X, Y: b.Max.Y},
	}
}

func edgeMidpoints(b math32.Box2) []math32.Vector2 {
	c := b.Center()
	return []math32.Vector2{
		{X: c.X, Y: b.Min.Y}, {X: c.X, Y: b.Max.Y},
		{X: b.Min.X, Y: c.Y}, {X: b.Max.X, Y: c.Y},
	}
}

func categoryPoints(b math32.Box2, category string) []math32.Vector2 {
	switch category {
	case "endpoint":
		return corners(b)
	case "midpoint":
		return edgeMidpoints(b)
	case "center":
		return []math32.Vector2{b.Center()}
	}
	return nil
}
