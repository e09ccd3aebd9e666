// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events implements the bounded event ring and epoch coalescing
// described in spec.md §4.6: per-entity change masks are ORed and
// emitted once per mutation epoch, with overflow collapsing to a single
// Overflow record that the consumer must acknowledge.
package events

import "cogentcore.org/cadcore/protocol"

// Record is one coalesced event (spec.md §4.6, §6: 20 bytes on the wire
// as u16,u16,u32,u32,u32,u32).
type Record struct {
	Type  protocol.EventType
	Flags uint16
	A, B, C, D uint32
}

// Capacity is the default ring size; chosen generously enough that
// ordinary interactive sessions never overflow in a single epoch, while
// still bounding memory (spec.md §5: no unbounded growth).
const Capacity = 1024

// Stream is the bounded ring buffer plus the in-flight coalescing state
// for the current mutation epoch.
type Stream struct {
	ring       []Record
	overflowed bool
	resyncGen  uint64

	// per-epoch coalescing state
	docMask       protocol.ChangeMask
	docDirty      bool
	entityCreated map[uint32]bool
	entityMask    map[uint32]protocol.ChangeMask
	entityDeleted map[uint32]bool
	layerMask     map[uint32]uint32
	selectionHit  bool
	orderHit      bool
	historyHit    bool
}

// NewStream returns an empty Stream.
func NewStream() *Stream {
	return &Stream{
		entityCreated: map[uint32]bool{},
		entityMask:    map[uint32]protocol.ChangeMask{},
		entityDeleted: map[uint32]bool{},
		layerMask:     map[uint32]uint32{},
	}
}

// BeginEpoch resets per-epoch coalescing state (called at the start of a
// command buffer apply or a transform commit, spec.md §4.6 "Epoch").
func (s *Stream) BeginEpoch() {
	s.docMask = 0
	s.docDirty = false
	s.entityCreated = map[uint32]bool{}
	s.entityMask = map[uint32]protocol.ChangeMask{}
	s.entityDeleted = map[uint32]bool{}
	s.layerMask = map[uint32]uint32{}
	s.selectionHit = false
	s.orderHit = false
	s.historyHit = false
}

// MarkDocChanged ORs mask into the epoch's aggregate document-level mask.
func (s *Stream) MarkDocChanged(mask protocol.ChangeMask) {
	s.docMask |= mask
	s.docDirty = true
}

// MarkEntityCreated records that id was created this epoch.
func (s *Stream) MarkEntityCreated(id uint32) {
	s.entityCreated[id] = true
	delete(s.entityDeleted, id)
}

// MarkEntityChanged ORs mask into id's aggregate change mask this epoch.
func (s *Stream) MarkEntityChanged(id uint32, mask protocol.ChangeMask) {
	if s.entityDeleted[id] {
		return
	}
	s.entityMask[id] |= mask
}

// MarkEntityDeleted records that id was deleted this epoch, superseding
// any create/change mark for the same id within the epoch.
func (s *Stream) MarkEntityDeleted(id uint32) {
	s.entityDeleted[id] = true
	delete(s.entityCreated, id)
	delete(s.entityMask, id)
}

// MarkLayerChanged ORs propMask into layerID's aggregate mask this epoch.
func (s *Stream) MarkLayerChanged(layerID uint32, propMask uint32) {
	s.layerMask[layerID] |= propMask
}

// MarkSelectionChanged flags that the selection changed this epoch.
func (s *Stream) MarkSelectionChanged() { s.selectionHit = true }

// MarkOrderChanged flags that the draw order changed this epoch.
func (s *Stream) MarkOrderChanged() { s.orderHit = true }

// MarkHistoryChanged flags that history changed this epoch.
func (s *Stream) MarkHistoryChanged() { s.historyHit = true }

// FlushEpoch emits the coalesced events for the epoch in the fixed order
// required by spec.md §4.6: DocChanged, then Entity{Created,Changed,
// Deleted} in id order, then LayerChanged, then SelectionChanged, then
// OrderChanged, then HistoryChanged.
func (s *Stream) FlushEpoch(generation uint64) {
	var batch []Record
	if s.docDirty {
		batch = append(batch, Record{Type: protocol.EventDocChanged, A: uint32(s.docMask)})
	}
	ids := mergedSortedIDs(s.entityCreated, s.entityMask, s.entityDeleted)
	for _, id := range ids {
		switch {
		case s.entityDeleted[id]:
			batch = append(batch, Record{Type: protocol.EventEntityDeleted, A: id})
		case s.entityCreated[id]:
			batch = append(batch, Record{Type: protocol.EventEntityCreated, A: id})
			if m := s.entityMask[id]; m != 0 {
				batch = append(batch, Record{Type: protocol.EventEntityChanged, A: id, B: uint32(m)})
			}
		default:
			if m := s.entityMask[id]; m != 0 {
				batch = append(batch, Record{Type: protocol.EventEntityChanged, A: id, B: uint32(m)})
			}
		}
	}
	for _, layerID := range sortedKeys(s.layerMask) {
		batch = append(batch, Record{Type: protocol.EventLayerChanged, A: layerID, B: s.layerMask[layerID]})
	}
	if s.selectionHit {
		batch = append(batch, Record{Type: protocol.EventSelectionChanged})
	}
	if s.orderHit {
		batch = append(batch, Record{Type: protocol.EventOrderChanged})
	}
	if s.historyHit {
		batch = append(batch, Record{Type: protocol.EventHistoryChanged})
	}
	s.push(batch, generation)
}

// push appends records to the ring, collapsing to a single Overflow
// record if capacity would be exceeded (spec.md §4.6).
func (s *Stream) push(batch []Record, generation uint64) {
	if len(batch) == 0 {
		return
	}
	if s.overflowed {
		s.resyncGen = generation
		return
	}
	if len(s.ring)+len(batch) > Capacity {
		s.ring = nil
		s.overflowed = true
		s.resyncGen = generation
		return
	}
	s.ring = append(s.ring, batch...)
}

// PollEvents returns up to max pending events and drains them from the
// ring. The generation argument is not used, and the returned records
// carry no generation stamp of their own. While overflowed, it returns
// exactly one Overflow event until AckResync is called (spec.md §4.6,
// §8 boundary behavior).
func (s *Stream) PollEvents(max int, generation uint64) []Record {
	if s.overflowed {
		return []Record{{Type: protocol.EventOverflow, A: uint32(s.resyncGen)}}
	}
	if max <= 0 || len(s.ring) == 0 {
		return nil
	}
	n := max
	if n > len(s.ring) {
		n = len(s.ring)
	}
	out := append([]Record(nil), s.ring[:n]...)
	s.ring = s.ring[n:]
	return out
}

// AckResync clears the overflow state once the consumer has reloaded
// from a full snapshot at generation gen (spec.md §4.6).
func (s *Stream) AckResync(gen uint64) {
	if s.overflowed && uint64(s.resyncGen) == gen {
		s.overflowed = false
		s.ring = nil
	}
}

// Overflowed reports whether the stream is currently in overflow state.
func (s *Stream) Overflowed() bool { return s.overflowed }

func mergedSortedIDs(created map[uint32]bool, changed map[uint32]protocol.ChangeMask, deleted map[uint32]bool) []uint32 {
	seen := map[uint32]bool{}
	var out []uint32
	add := func(m map[uint32]bool) {
		for id := range m {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	add(created)
	for id := range changed {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	add(deleted)
	sortUint32(out)
	return out
}

func sortedKeys(m map[uint32]uint32) []uint32 {
	out := make([]uint32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortUint32(out)
	return out
}

func sortUint32(s []uint32) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
