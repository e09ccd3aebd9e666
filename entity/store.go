// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/text"
)

// Store owns per-kind entity records, the id-to-kind map, per-entity
// attributes, the shared polyline point pool, and the draw-order
// sequence (spec.md §3, §4.1). It is mutated only through this package's
// exported methods; callers outside the engine hold ids, never records.
type Store struct {
	nextID     uint32
	generation uint64

	kindOf map[ID]Kind
	attrs  map[ID]Attrs
	styles map[ID]*StyleOverride

	rects     map[ID]RectRecord
	lines     map[ID]LineRecord
	arrows    map[ID]ArrowRecord
	circles   map[ID]CircleRecord
	polygons  map[ID]PolygonRecord
	polylines map[ID]polylineSlot
	texts     map[ID]*text.Record

	pool pointPool

	order []ID
}

// polylineSlot is the Store's internal reference into the shared point
// pool for one polyline (spec.md §3 invariant 3).
type polylineSlot struct {
	Offset, Count int
	Stroke        StrokeAttrs
}

// NewStore returns an empty Store. Entity ids begin allocating from 1.
func NewStore() *Store {
	return &Store{
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
}

// Generation returns the monotonic counter bumped on each effective
// mutation (spec.md §3 invariant 6).
func (s *Store) Generation() uint64 { return s.generation }

func (s *Store) bump() { s.generation++ }

// RestoreGeneration sets the generation counter verbatim. It exists for
// the command dispatcher's atomic-abort path: a buffer that fails after
// partially mutating the store must leave generation exactly where it
// was before the buffer started (spec.md §4.1: "no generation bump").
func (s *Store) RestoreGeneration(g uint64) { s.generation = g }

// Touch bumps the generation counter without otherwise mutating the
// store. History-driven undo/redo restores entity state via RestoreState,
// which intentionally does not bump (a restore may be one of several
// deltas replayed as a batch); the top-level orchestrator calls Touch once
// per successful undo/redo so invariant 6 ("every successful mutation
// increments generation") still holds for history replay itself.
func (s *Store) Touch() { s.bump() }

// AllocID returns the next monotonically-increasing, non-zero id and
// reserves it, without creating any record (spec.md §3).
func (s *Store) AllocID() ID {
	s.nextID++
	return s.nextID
}

// ReserveID advances the id counter so that id values up to and
// including want are never reissued; used when restoring a snapshot's
// next-id counter (spec.md §4.2).
func (s *Store) ReserveID(want uint32) {
	if want > s.nextID {
		s.nextID = want
	}
}

// NextID returns the id counter's current value (the last allocated id).
func (s *Store) NextID() uint32 { return s.nextID }

// Exists reports whether id names a live entity.
func (s *Store) Exists(id ID) bool {
	_, ok := s.kindOf[id]
	return ok
}

// KindOf returns the kind of a live entity.
func (s *Store) KindOf(id ID) (Kind, bool) {
	k, ok := s.kindOf[id]
	return k, ok
}

// DrawOrder returns a copy of the current draw-order sequence.
func (s *Store) DrawOrder() []ID { return append([]ID(nil), s.order...) }

// LiveCount returns the number of live entities.
func (s *Store) LiveCount() int { return len(s.kindOf) }

// Attrs returns the per-entity attributes for id.
func (s *Store) Attrs(id ID) (Attrs, bool) {
	a, ok := s.attrs[id]
	return a, ok
}

// StyleOverride returns the style override for id, or nil if none set.
func (s *Store) StyleOverride(id ID) *StyleOverride { return s.styles[id] }

// removeFromOrder removes id from the draw order, if present.
func (s *Store) removeFromOrder(id ID) {
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// deleteRecord removes every trace of id's kind-specific record (but not
// its attrs/order, which the caller handles) and returns its prior
// State for inverse-delta capture.
func (s *Store) deleteRecord(id ID) State {
	st := s.stateFor(id)
	switch s.kindOf[id] {
	case Rect:
		delete(s.rects, id)
	case Line:
		delete(s.lines, id)
	case Arrow:
		delete(s.arrows, id)
	case Circle:
		delete(s.circles, id)
	case Polygon:
		delete(s.polygons, id)
	case Polyline:
		sl := s.polylines[id]
		delta := s.pool.remove(sl.Offset, sl.Count)
		s.rewriteOffsetsAfter(sl.Offset, delta)
		delete(s.polylines, id)
	case protocol.KindText:
		delete(s.texts, id)
	}
	delete(s.kindOf, id)
	delete(s.attrs, id)
	delete(s.styles, id)
	return st
}

// rewriteOffsetsAfter shifts every polyline slot whose offset is at or
// past at by delta, keeping the pool-compaction invariant intact.
func (s *Store) rewriteOffsetsAfter(at, delta int) {
	for id, sl := range s.polylines {
		if sl.Offset >= at {
			sl.Offset += delta
			s.polylines[id] = sl
		}
	}
}

// stateFor builds a full State snapshot for a live id.
func (s *Store) stateFor(id ID) State {
	st := State{ID: id, Kind: s.kindOf[id], Attrs: s.attrs[id]}
	switch st.Kind {
	case Rect:
		st.Rect = s.rects[id]
	case Line:
		st.Line = s.lines[id]
	case Arrow:
		st.Arrow = s.arrows[id]
	case Circle:
		st.Circle = s.circles[id]
	case Polygon:
		st.Polygon = s.polygons[id]
	case Polyline:
		sl := s.polylines[id]
		st.Polyline = PolylineRecord{
			Points:      append([]math32.Vector2(nil), s.pool.slice(sl.Offset, sl.Count)...),
			StrokeAttrs: sl.Stroke,
		}
	case protocol.KindText:
		if tr, ok := s.texts[id]; ok {
			c := tr.Clone()
			st.Text = &c
		}
	}
	if ov, ok := s.styles[id]; ok {
		cp := *ov
		st.Style = &cp
	}
	return st
}

// GetState returns a full snapshot of a live entity.
func (s *Store) GetState(id ID) (State, bool) {
	if !s.Exists(id) {
		return State{}, false
	}
	return s.stateFor(id), true
}
