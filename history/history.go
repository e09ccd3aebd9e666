// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package history implements grouped undo/redo with deterministic replay
// (spec.md §4.5): an ordered sequence of entries, each a set of inverse
// deltas, with a cursor that moves on undo/redo and truncates forward
// history on the next mutating entry.
package history

import (
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/layer"
)

// DeltaKind tags what a Delta records, so Applier knows which fields are
// meaningful.
type DeltaKind uint8

const (
	DeltaEntity DeltaKind = iota
	DeltaDrawOrder
	DeltaSelection
	DeltaLayer
	DeltaLayerDelete
)

// Delta is one inverse-delta record within an Entry. Only the fields
// relevant to Kind are populated; the rest are zero (spec.md §4.5:
// "entity created -> delete; entity deleted -> recreate with pre-state;
// entity mutated -> restore pre-state fields; layer/selection/draw-order
// changes recorded symmetrically").
type Delta struct {
	Kind DeltaKind

	EntityID     uint32
	EntityBefore *entity.State // nil if the entity did not exist before
	EntityAfter  *entity.State // nil if the entity does not exist after

	OrderBefore, OrderAfter []uint32

	SelectionBefore, SelectionAfter []uint32

	LayerBefore, LayerAfter *layer.Record
}

// Entry is a group of deltas that undo/redo as one unit (spec.md §4.5:
// "nested opens coalesce into the outermost").
type Entry struct {
	Deltas []Delta
}

// Applier is implemented by the orchestrator (doc.Document) that owns
// the entity store, layer store, and selection, so the history package
// itself stays free of a dependency on the full document type.
type Applier interface {
	ApplyEntityDelta(before, after *entity.State)
	ApplyDrawOrder(order []uint32)
	ApplySelection(ids []uint32)
	ApplyLayer(before, after *layer.Record, layerID uint32)
}

// Engine owns the entry list and cursor (spec.md §4.5).
type Engine struct {
	entries []Entry
	cursor  int // index of the next entry a redo would apply; undo applies entries[cursor-1]

	openDepth    int
	current      *Entry
	touchedIDs   map[uint32]bool
	touchedOrder bool
	touchedSel   bool
	touchedLayer map[uint32]bool
}

// NewEngine returns an empty history Engine.
func NewEngine() *Engine {
	return &Engine{touchedIDs: map[uint32]bool{}, touchedLayer: map[uint32]bool{}}
}

// BeginEntry opens a new entry; nested opens coalesce into the outermost
// (spec.md §4.5).
func (e *Engine) BeginEntry() {
	e.openDepth++
	if e.openDepth == 1 {
		e.current = &Entry{}
		e.touchedIDs = map[uint32]bool{}
		e.touchedOrder = false
		e.touchedSel = false
		e.touchedLayer = map[uint32]bool{}
	}
}

// IsOpen reports whether an entry is currently open.
func (e *Engine) IsOpen() bool { return e.openDepth > 0 }

// RecordEntity records the pre/post state of an entity mutation, once
// per entity per entry (spec.md §4.5: "Mutations between begin/commit
// record their pre-state exactly once per entity per entry").
// firstBefore is the state as of entry open; it is only stored the first
// time this id is touched within the current entry.
func (e *Engine) RecordEntity(id uint32, firstBefore, latestAfter *entity.State) {
	if e.current == nil {
		return
	}
	if e.touchedIDs[id] {
		for i := range e.current.Deltas {
			d := &e.current.Deltas[i]
			if d.Kind == DeltaEntity && d.EntityID == id {
				d.EntityAfter = latestAfter
				return
			}
		}
	}
	e.touchedIDs[id] = true
	e.current.Deltas = append(e.current.Deltas, Delta{
		Kind:         DeltaEntity,
		EntityID:     id,
		EntityBefore: firstBefore,
		EntityAfter:  latestAfter,
	})
}

// RecordDrawOrder records the draw order as of entry open (once) and
// updates the latest order on every call within the entry.
func (e *Engine) RecordDrawOrder(firstBefore, latestAfter []uint32) {
	if e.current == nil {
		return
	}
	if e.touchedOrder {
		for i := range e.current.Deltas {
			d := &e.current.Deltas[i]
			if d.Kind == DeltaDrawOrder {
				d.OrderAfter = latestAfter
				return
			}
		}
	}
	e.touchedOrder = true
	e.current.Deltas = append(e.current.Deltas, Delta{Kind: DeltaDrawOrder, OrderBefore: firstBefore, OrderAfter: latestAfter})
}

// RecordSelection records the selection as of entry open (once).
func (e *Engine) RecordSelection(firstBefore, latestAfter []uint32) {
	if e.current == nil {
		return
	}
	if e.touchedSel {
		for i := range e.current.Deltas {
			d := &e.current.Deltas[i]
			if d.Kind == DeltaSelection {
				d.SelectionAfter = latestAfter
				return
			}
		}
	}
	e.touchedSel = true
	e.current.Deltas = append(e.current.Deltas, Delta{Kind: DeltaSelection, SelectionBefore: firstBefore, SelectionAfter: latestAfter})
}

// RecordLayer records a layer mutation's pre/post state.
func (e *Engine) RecordLayer(id uint32, firstBefore, latestAfter *layer.Record) {
	if e.current == nil {
		return
	}
	if e.touchedLayer[id] {
		for i := range e.current.Deltas {
			d := &e.current.Deltas[i]
			if d.Kind == DeltaLayer && d.LayerBefore != nil && d.LayerBefore.ID == id {
				d.LayerAfter = latestAfter
				return
			}
			if d.Kind == DeltaLayer && d.LayerAfter != nil && d.LayerAfter.ID == id {
				d.LayerAfter = latestAfter
				return
			}
		}
	}
	e.touchedLayer[id] = true
	e.current.Deltas = append(e.current.Deltas, Delta{Kind: DeltaLayer, LayerBefore: firstBefore, LayerAfter: latestAfter})
}

// CommitEntry closes the current entry; an empty entry is discarded;
// committing truncates any forward (redo) history (spec.md §4.5: "Cursor
// moves truncate forward history on the next mutating entry" — this
// engine truncates eagerly at commit time, which is equivalent since a
// commit only ever follows a mutation).
func (e *Engine) CommitEntry() {
	if e.openDepth == 0 {
		return
	}
	e.openDepth--
	if e.openDepth > 0 {
		return
	}
	entry := e.current
	e.current = nil
	if entry == nil || len(entry.Deltas) == 0 {
		return
	}
	e.entries = e.entries[:e.cursor]
	e.entries = append(e.entries, *entry)
	e.cursor = len(e.entries)
}

// DiscardEntry abandons the currently open entry without committing it
// (used by cancel_transform, spec.md §4.4: "leaves no history entry").
func (e *Engine) DiscardEntry() {
	e.openDepth = 0
	e.current = nil
}

// Abort reverses every delta recorded so far in the currently open entry,
// in reverse order, then discards it — used by the command dispatcher to
// roll a partially-applied buffer back to its pre-buffer state before
// failing atomically (spec.md §4.1: "the entity store is unchanged").
func (e *Engine) Abort(a Applier) {
	if e.current != nil {
		for i := len(e.current.Deltas) - 1; i >= 0; i-- {
			applyReverse(a, e.current.Deltas[i])
		}
	}
	e.DiscardEntry()
}

// CanUndo reports whether there is an entry to undo.
func (e *Engine) CanUndo() bool { return e.cursor > 0 }

// CanRedo reports whether there is an entry to redo.
func (e *Engine) CanRedo() bool { return e.cursor < len(e.entries) }

// Undo applies the entry before the cursor in reverse delta order, and
// moves the cursor back (spec.md §4.5: "undo() applies inverse deltas in
// reverse"; idempotent at the boundary).
func (e *Engine) Undo(a Applier) bool {
	if !e.CanUndo() {
		return false
	}
	e.cursor--
	entry := e.entries[e.cursor]
	for i := len(entry.Deltas) - 1; i >= 0; i-- {
		applyReverse(a, entry.Deltas[i])
	}
	return true
}

// Redo re-applies the entry at the cursor forward, and advances the
// cursor (idempotent at the boundary).
func (e *Engine) Redo(a Applier) bool {
	if !e.CanRedo() {
		return false
	}
	entry := e.entries[e.cursor]
	for _, d := range entry.Deltas {
		applyForward(a, d)
	}
	e.cursor++
	return true
}

func applyReverse(a Applier, d Delta) {
	switch d.Kind {
	case DeltaEntity:
		a.ApplyEntityDelta(d.EntityAfter, d.EntityBefore)
	case DeltaDrawOrder:
		a.ApplyDrawOrder(d.OrderBefore)
	case DeltaSelection:
		a.ApplySelection(d.SelectionBefore)
	case DeltaLayer:
		id := layerID(d)
		a.ApplyLayer(d.LayerAfter, d.LayerBefore, id)
	}
}

func applyForward(a Applier, d Delta) {
	switch d.Kind {
	case DeltaEntity:
		a.ApplyEntityDelta(d.EntityBefore, d.EntityAfter)
	case DeltaDrawOrder:
		a.ApplyDrawOrder(d.OrderAfter)
	case DeltaSelection:
		a.ApplySelection(d.SelectionAfter)
	case DeltaLayer:
		id := layerID(d)
		a.ApplyLayer(d.LayerBefore, d.LayerAfter, id)
	}
}

func layerID(d Delta) uint32 {
	if d.LayerBefore != nil {
		return d.LayerBefore.ID
	}
	if d.LayerAfter != nil {
		return d.LayerAfter.ID
	}
	return 0
}

// Entries returns a copy of every committed entry, in order, for
// serialization (spec.md §4.2/§4.5: history is part of the persisted
// document).
func (e *Engine) Entries() []Entry { return append([]Entry(nil), e.entries...) }

// Restore replaces the entry list and cursor verbatim (snapshot load);
// any currently open entry is discarded.
func (e *Engine) Restore(entries []Entry, cursor int) {
	e.entries = entries
	e.cursor = cursor
	e.openDepth = 0
	e.current = nil
}

// EntryCount returns the total number of committed entries (for
// diagnostics/tests), irrespective of cursor position.
func (e *Engine) EntryCount() int { return len(e.entries) }

// Cursor returns the current cursor position.
func (e *Engine) Cursor() int { return e.cursor }
