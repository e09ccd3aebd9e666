// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pick

import (
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
)

// Index caches per-entity world-space AABBs and the draw order they were
// computed against, rebuilding lazily whenever the entity store's
// generation has advanced since the last build (spec.md §4.3, §5: "the
// pick index is a read-side cache, never a source of truth").
type Index struct {
	aabbs   map[uint32]math32.Box2
	order   []uint32
	lastGen uint64
	built   bool
}

// NewIndex returns an empty Index.
func NewIndex() *Index { return &Index{aabbs: map[uint32]math32.Box2{}} }

// EnsureFresh rebuilds the cache if the store has mutated since the last
// build; a no-op otherwise.
func (idx *Index) EnsureFresh(st *entity.Store) {
	if idx.built && idx.lastGen == st.Generation() {
		return
	}
	idx.Rebuild(st)
}

// Rebuild unconditionally recomputes every cached AABB from the store.
func (idx *Index) Rebuild(st *entity.Store) {
	idx.aabbs = map[uint32]math32.Box2{}
	idx.order = st.DrawOrder()
	for _, id := range idx.order {
		s, ok := st.GetState(id)
		if !ok {
			continue
		}
		idx.aabbs[id] = aabbFor(s)
	}
	idx.lastGen = st.Generation()
	idx.built = true
}

func aabbFor(s entity.State) math32.Box2 {
	if s.Kind == entity.Text {
		if s.Text == nil {
			return math32.B2(0, 0, 0, 0)
		}
		return TextAABB(s.Text.Pos, s.Text.Layout.Width, s.Text.Layout.Height, s.Text.Rotation)
	}
	return ComputeAABB(s)
}

// GetEntityAABB returns the cached bounding box of id.
func (idx *Index) GetEntityAABB(id uint32) (math32.Box2, bool) {
	b, ok := idx.aabbs[id]
	return b, ok
}

// GetSelectionBounds returns the union bounding box of every id in ids
// that has a cached AABB.
func (idx *Index) GetSelectionBounds(ids []uint32) (math32.Box2, bool) {
	out := math32.Empty()
	found := false
	for _, id := range ids {
		if b, ok := idx.aabbs[id]; ok {
			out = out.Union(b)
			found = true
		}
	}
	return out, found
}

// Eligible reports whether id may be picked: visible and unlocked both at
// the entity level and at its layer's level (spec.md §4.3).
func Eligible(st *entity.Store, ls *layer.Store, id uint32) bool {
	a, ok := st.Attrs(id)
	if !ok {
		return false
	}
	if a.Flags&protocol.FlagVisible == 0 || a.Flags&protocol.FlagLocked != 0 {
		return false
	}
	return ls.IsVisible(a.LayerID) && !ls.IsLocked(a.LayerID)
}

// Pick returns the topmost eligible entity whose body or stroke is within
// tolerance of pt, or false if none (spec.md §4.3).
func (idx *Index) Pick(st *entity.Store, ls *layer.Store, pt math32.Vector2, tolerance float32) (uint32, bool) {
	idx.EnsureFresh(st)
	for i := len(idx.order) - 1; i >= 0; i-- {
		id := idx.order[i]
		if !Eligible(st, ls, id) {
			continue
		}
		box, ok := idx.aabbs[id]
		if !ok || !box.ExpandByScalar(tolerance).ContainsPoint(pt) {
			continue
		}
		s, ok := st.GetState(id)
		if !ok {
			continue
		}
		if hitBody(s, pt, tolerance) {
			return id, true
		}
	}
	return 0, false
}

// HandleHit describes a hit on a transform-handle sub-target rather than
// an entity's body.
type HandleHit struct {
	EntityID uint32
	Target   protocol.SubTarget
	Index    int
}

// PickEx extends Pick with handle precedence for the current selection:
// vertex handles on line-like entities take precedence over edge handles,
// which take precedence over whole-body hits; resize handles are only
// offered for non-line-like single selections, never alongside vertex
// handles (spec.md §4.3, §4.4).
func (idx *Index) PickEx(st *entity.Store, ls *layer.Store, pt math32.Vector2, tolerance, handleSize float32, selection []uint32) (HandleHit, bool) {
	idx.EnsureFresh(st)
	if len(selection) == 1 {
		id := selection[0]
		if Eligible(st, ls, id) {
			if s, ok := st.GetState(id); ok {
				if hh, ok := pickLineHandle(s, pt, tolerance, handleSize); ok {
					hh.EntityID = id
					return hh, true
				}
				lineLike := s.Kind == entity.Line || s.Kind == entity.Arrow || s.Kind == entity.Polyline
				if !lineLike {
					if hh, ok := pickResizeHandle(idx, id, pt, handleSize); ok {
						return hh, true
					}
				}
			}
		}
	}
	if id, ok := idx.Pick(st, ls, pt, tolerance); ok {
		return HandleHit{EntityID: id, Target: protocol.SubBody}, true
	}
	return HandleHit{}, false
}

// pickLineHandle checks vertex and edge handles for line-like kinds.
func pickLineHandle(s entity.State, pt math32.Vector2, tolerance, handleSize float32) (HandleHit, bool) {
	r := handleSize/2 + tolerance
	var pts []math32.Vector2
	switch s.Kind {
	case entity.Line:
		pts = []math32.Vector2{s.Line.A, s.Line.B}
	case entity.Arrow:
		pts = []math32.Vector2{s.Arrow.A, s.Arrow.B}
	case entity.Polyline:
		pts = s.Polyline.Points
	default:
		return HandleHit{}, false
	}
	for i, p := range pts {
		if pt.DistanceTo(p) <= r {
			return HandleHit{Target: protocol.SubVertexHandle, Index: i}, true
		}
	}
	for i := 0; i+1 < len(pts); i++ {
		_, d := ClosestPointOnSegment(pt, pts[i], pts[i+1])
		if d <= r {
			return HandleHit{Target: protocol.SubEdgeHandle, Index: i}, true
		}
	}
	return HandleHit{}, false
}

// pickResizeHandle checks the four corner resize handles of a non-line-like
// entity's bounding box. Corners are numbered 0=bottom-left, 1=bottom-right,
// 2=top-right, 3=top-left in the box's own min/max coordinate frame.
func pickResizeHandle(idx *Index, id uint32, pt math32.Vector2, handleSize float32) (HandleHit, bool) {
	box, ok := idx.aabbs[id]
	if !ok {
		return HandleHit{}, false
	}
	r := handleSize / 2
	corners := [4]math32.Vector2{
		{X: box.Min.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Max.Y},
		{X: box.Min.X, Y: box.Max.Y},
	}
	for i, c := range corners {
		if pt.DistanceTo(c) <= r {
			return HandleHit{EntityID: id, Target: protocol.SubResizeHandle, Index: i}, true
		}
	}
	return HandleHit{}, false
}

// QueryArea returns every entity whose cached AABB overlaps box, in
// bottom-to-top draw order, irrespective of visibility/lock state (spec.md
// §4.3: "query_area -> candidate id list, bounds-overlap only").
func (idx *Index) QueryArea(st *entity.Store, box math32.Box2) []uint32 {
	idx.EnsureFresh(st)
	var out []uint32
	for _, id := range idx.order {
		if b, ok := idx.aabbs[id]; ok && b.Overlaps(box) {
			out = append(out, id)
		}
	}
	return out
}

// QueryMarquee returns entities contained in (Window mode) or intersecting
// (Crossing mode) box, restricted to eligible (visible, unlocked) entities
// (spec.md §4.3). Crossing uses exact segment/edge intersection via
// Liang-Barsky for line-like entities; other kinds fall back to an AABB
// overlap test against box, which is exact for axis-aligned rects and a
// safe over-approximation for rotated/curved shapes.
func (idx *Index) QueryMarquee(st *entity.Store, ls *layer.Store, box math32.Box2, mode protocol.MarqueeMode) []uint32 {
	idx.EnsureFresh(st)
	var out []uint32
	for _, id := range idx.order {
		if !Eligible(st, ls, id) {
			continue
		}
		b, ok := idx.aabbs[id]
		if !ok {
			continue
		}
		switch mode {
		case protocol.MarqueeWindow:
			if box.ContainsBox(b) {
				out = append(out, id)
			}
		default: // MarqueeCrossing
			if !b.Overlaps(box) {
				continue
			}
			if box.ContainsBox(b) {
				out = append(out, id)
				continue
			}
			s, ok := st.GetState(id)
			if !ok {
				continue
			}
			if marqueeCrosses(s, box) {
				out = append(out, id)
			}
		}
	}
	return out
}

func marqueeCrosses(s entity.State, box math32.Box2) bool {
	switch s.Kind {
	case entity.Line:
		return SegmentIntersectsBox(s.Line.A, s.Line.B, box)
	case entity.Arrow:
		return SegmentIntersectsBox(s.Arrow.A, s.Arrow.B, box)
	case entity.Polyline:
		pts := s.Polyline.Points
		for i := 0; i+1 < len(pts); i++ {
			if SegmentIntersectsBox(pts[i], pts[i+1], box) {
				return true
			}
		}
		return false
	default:
		// AABB already overlaps and does not fully contain the shape's box,
		// which for a rect is exactly a crossing and for other kinds an
		// over-approximation.
		return true
	}
}
