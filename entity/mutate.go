// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"sort"

	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/text"
)

// Result describes the outcome of a mutating Store call, enough for the
// caller (the command dispatcher) to decide whether to bump generation,
// emit events, and record a history delta (spec.md §3 invariant 6,
// §9 Open Question 1: "bump only on effective change").
type Result struct {
	Changed bool
	Created bool
	Before  *State // nil if Created
	After   State
}

// insertNewID records a freshly-created id's kind and attrs and appends
// it to the back of the draw order (newly created entities draw on top).
func (s *Store) insertNewID(id ID, kind Kind, attrs Attrs) {
	s.kindOf[id] = kind
	s.attrs[id] = attrs
	s.order = append(s.order, id)
}

// UpsertRect creates or replaces a Rect entity by id.
func (s *Store) UpsertRect(id ID, rec RectRecord, attrs Attrs) Result {
	before, existed := s.GetState(id)
	if existed && before.Kind != Rect {
		s.deleteRecord(id)
		existed = false
	}
	s.rects[id] = rec
	if !existed {
		s.insertNewID(id, Rect, attrs)
	} else {
		s.attrs[id] = attrs
	}
	after := s.stateFor(id)
	return s.finish(existed, before, after)
}

// UpsertLine creates or replaces a Line entity by id.
func (s *Store) UpsertLine(id ID, rec LineRecord, attrs Attrs) Result {
	before, existed := s.GetState(id)
	if existed && before.Kind != Line {
		s.deleteRecord(id)
		existed = false
	}
	s.lines[id] = rec
	if !existed {
		s.insertNewID(id, Line, attrs)
	} else {
		s.attrs[id] = attrs
	}
	return s.finish(existed, before, s.stateFor(id))
}

// UpsertArrow creates or replaces an Arrow entity by id.
func (s *Store) UpsertArrow(id ID, rec ArrowRecord, attrs Attrs) Result {
	before, existed := s.GetState(id)
	if existed && before.Kind != Arrow {
		s.deleteRecord(id)
		existed = false
	}
	s.arrows[id] = rec
	if !existed {
		s.insertNewID(id, Arrow, attrs)
	} else {
		s.attrs[id] = attrs
	}
	return s.finish(existed, before, s.stateFor(id))
}

// UpsertCircle creates or replaces a Circle entity by id.
func (s *Store) UpsertCircle(id ID, rec CircleRecord, attrs Attrs) Result {
	before, existed := s.GetState(id)
	if existed && before.Kind != Circle {
		s.deleteRecord(id)
		existed = false
	}
	s.circles[id] = rec
	if !existed {
		s.insertNewID(id, Circle, attrs)
	} else {
		s.attrs[id] = attrs
	}
	return s.finish(existed, before, s.stateFor(id))
}

// UpsertPolygon creates or replaces a Polygon entity by id.
func (s *Store) UpsertPolygon(id ID, rec PolygonRecord, attrs Attrs) Result {
	before, existed := s.GetState(id)
	if existed && before.Kind != Polygon {
		s.deleteRecord(id)
		existed = false
	}
	s.polygons[id] = rec
	if !existed {
		s.insertNewID(id, Polygon, attrs)
	} else {
		s.attrs[id] = attrs
	}
	return s.finish(existed, before, s.stateFor(id))
}

// UpsertPolyline creates or replaces a Polyline entity by id. If the
// supplied point count is below 2, the entity is deleted instead (spec.md
// §3 invariant 4).
func (s *Store) UpsertPolyline(id ID, points []math32.Vector2, stroke StrokeAttrs, attrs Attrs) Result {
	before, existed := s.GetState(id)
	if len(points) < 2 {
		if !existed {
			return Result{Before: nil, After: State{}}
		}
		s.removeFromOrder(id)
		deleted := s.deleteRecord(id)
		s.bump()
		return Result{Changed: true, Before: &deleted, After: State{}}
	}
	if existed && before.Kind == Polyline {
		sl := s.polylines[id]
		newOffset, newCount, delta := s.pool.replace(sl.Offset, sl.Count, points)
		if delta != 0 {
			s.rewriteOffsetsAfter(sl.Offset+sl.Count, delta)
		}
		s.polylines[id] = polylineSlot{Offset: newOffset, Count: newCount, Stroke: stroke}
	} else {
		if existed {
			s.deleteRecord(id)
			existed = false
		}
		offset, count := s.pool.alloc(points)
		s.polylines[id] = polylineSlot{Offset: offset, Count: count, Stroke: stroke}
	}
	if !existed {
		s.insertNewID(id, Polyline, attrs)
	} else {
		s.attrs[id] = attrs
	}
	return s.finish(existed, before, s.stateFor(id))
}

// UpsertText creates or replaces a Text entity by id.
func (s *Store) UpsertText(id ID, rec text.Record, attrs Attrs) Result {
	before, existed := s.GetState(id)
	if existed && before.Kind != protocol.KindText {
		s.deleteRecord(id)
		existed = false
	}
	rec.MarkLayoutDirty()
	s.texts[id] = &rec
	if !existed {
		s.insertNewID(id, protocol.KindText, attrs)
	} else {
		s.attrs[id] = attrs
	}
	return s.finish(existed, before, s.stateFor(id))
}

// TextRecord returns the live mutable text record for id, or nil.
func (s *Store) TextRecord(id ID) *text.Record {
	if s.kindOf[id] != protocol.KindText {
		return nil
	}
	return s.texts[id]
}

func (s *Store) finish(existed bool, before State, after State) Result {
	if existed && StatesEqual(before, after) {
		return Result{Changed: false, Created: false, Before: &before, After: after}
	}
	s.bump()
	if !existed {
		return Result{Changed: true, Created: true, After: after}
	}
	b := before
	return Result{Changed: true, Created: false, Before: &b, After: after}
}

// DeleteEntity removes id if live (idempotent: deleting a missing id is a
// semantic no-op per spec.md §7).
func (s *Store) DeleteEntity(id ID) Result {
	before, existed := s.GetState(id)
	if !existed {
		return Result{}
	}
	s.removeFromOrder(id)
	s.deleteRecord(id)
	s.bump()
	return Result{Changed: true, Before: &before, After: State{}}
}

// ClearAll drops every entity (layers are untouched), returning the
// removed states in draw order for inverse-delta capture.
func (s *Store) ClearAll() []State {
	removed := make([]State, 0, len(s.order))
	for _, id := range s.order {
		removed = append(removed, s.stateFor(id))
	}
	if len(removed) == 0 {
		return nil
	}
	*s = Store{
		nextID:     s.nextID,
		generation: s.generation,
		kindOf:    map[ID]Kind{},
		attrs:     map[ID]Attrs{},
		styles:    map[ID]*StyleOverride{},
		rects:     map[ID]RectRecord{},
		lines:     map[ID]LineRecord{},
		arrows:    map[ID]ArrowRecord{},
		circles:   map[ID]CircleRecord{},
		polygons:  map[ID]PolygonRecord{},
		polylines: map[ID]polylineSlot{},
		texts:     map[ID]*text.Record{},
	}
	s.bump()
	return removed
}

// SetDrawOrder replaces the draw-order sequence. Ids in want that are not
// live are ignored; live ids omitted from want keep their previous
// relative order, appended at the back (spec.md §9 Open Question 2).
func (s *Store) SetDrawOrder(want []ID) (prev []ID) {
	prev = s.DrawOrder()
	seen := make(map[ID]bool, len(want))
	next := make([]ID, 0, len(s.order))
	for _, id := range want {
		if s.Exists(id) && !seen[id] {
			next = append(next, id)
			seen[id] = true
		}
	}
	for _, id := range prev {
		if !seen[id] {
			next = append(next, id)
		}
	}
	s.order = next
	s.bump()
	return prev
}

// RestoreDrawOrder sets the draw order verbatim, for history undo/redo
// and snapshot load (no liveness filtering, no generation bump decision
// made here — callers bump explicitly when this represents an effective
// change).
func (s *Store) RestoreDrawOrder(order []ID) { s.order = append([]ID(nil), order...) }

// SetEntityFlags updates the flags bitmask for a live entity.
func (s *Store) SetEntityFlags(id ID, flags protocol.EntityFlags) Result {
	before, existed := s.GetState(id)
	if !existed {
		return Result{}
	}
	if before.Attrs.Flags == flags {
		return Result{Before: &before, After: before}
	}
	a := s.attrs[id]
	a.Flags = flags
	s.attrs[id] = a
	s.bump()
	return Result{Changed: true, Before: &before, After: s.stateFor(id)}
}

// SetEntityLayer reassigns a live entity to a different layer.
func (s *Store) SetEntityLayer(id ID, layerID uint32) Result {
	before, existed := s.GetState(id)
	if !existed {
		return Result{}
	}
	if before.Attrs.LayerID == layerID {
		return Result{Before: &before, After: before}
	}
	a := s.attrs[id]
	a.LayerID = layerID
	s.attrs[id] = a
	s.bump()
	return Result{Changed: true, Before: &before, After: s.stateFor(id)}
}

// SetStyleOverride replaces the style override for id (nil clears it).
func (s *Store) SetStyleOverride(id ID, ov *StyleOverride) Result {
	before, existed := s.GetState(id)
	if !existed {
		return Result{}
	}
	if ov != nil && ov.IsZero() {
		ov = nil
	}
	if equalStyleOverride(before.Style, ov) {
		return Result{Before: &before, After: before}
	}
	if ov == nil {
		delete(s.styles, id)
	} else {
		cp := *ov
		s.styles[id] = &cp
	}
	s.bump()
	return Result{Changed: true, Before: &before, After: s.stateFor(id)}
}

// RestoreState writes a full State back verbatim (used by history
// undo/redo, snapshot load, and duplicate-on-drag). It does not bump
// generation or compute a Result; callers own that bookkeeping since a
// restore may be part of a larger batch.
func (s *Store) RestoreState(st State) {
	if s.Exists(st.ID) {
		s.deleteRecord(st.ID)
		s.removeFromOrder(st.ID)
	}
	switch st.Kind {
	case Rect:
		s.rects[st.ID] = st.Rect
	case Line:
		s.lines[st.ID] = st.Line
	case Arrow:
		s.arrows[st.ID] = st.Arrow
	case Circle:
		s.circles[st.ID] = st.Circle
	case Polygon:
		s.polygons[st.ID] = st.Polygon
	case Polyline:
		offset, count := s.pool.alloc(st.Polyline.Points)
		s.polylines[st.ID] = polylineSlot{Offset: offset, Count: count, Stroke: st.Polyline.StrokeAttrs}
	case protocol.KindText:
		if st.Text != nil {
			c := st.Text.Clone()
			s.texts[st.ID] = &c
		}
	}
	s.kindOf[st.ID] = st.Kind
	s.attrs[st.ID] = st.Attrs
	if st.Style != nil {
		cp := *st.Style
		s.styles[st.ID] = &cp
	}
	// A paired DeltaDrawOrder in the same history entry may already have
	// placed st.ID back into s.order (it replays first only when the two
	// deltas were recorded in the opposite of the usual relative order);
	// only append here if it isn't already present, so a mis-ordered pair
	// of deltas can't silently duplicate the id.
	found := false
	for _, id := range s.order {
		if id == st.ID {
			found = true
			break
		}
	}
	if !found {
		s.order = append(s.order, st.ID)
	}
	s.ReserveID(st.ID)
}

// RestoreRemoveEntity deletes id without any liveness/no-op semantics,
// used by history undo of a creation.
func (s *Store) RestoreRemoveEntity(id ID) {
	s.removeFromOrder(id)
	if s.Exists(id) {
		s.deleteRecord(id)
	}
}

// SortedLiveIDs returns every live id in ascending numeric order, used
// for deterministic iteration (spec.md §3 invariant 2 tie-break, §4.6
// event ordering).
func (s *Store) SortedLiveIDs() []ID {
	out := make([]ID, 0, len(s.kindOf))
	for id := range s.kindOf {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func equalStyleOverride(a, b *StyleOverride) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
