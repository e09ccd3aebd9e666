// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layer implements the layer store: per-layer name, flags, order
// index, and style-default block (spec.md §3). Cascading a layer deletion
// to its entities is left to the caller.
package layer

import (
	"sort"

	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/protocol"
)

// Defaults is the style block inherited by entities on a layer that do
// not carry their own override (spec.md §3).
type Defaults struct {
	Stroke         colors.RGBA
	StrokeEnabled  bool
	Fill           colors.RGBA
	FillEnabled    bool
	TextColor      colors.RGBA
	TextBackground colors.RGBA
}

// Record is one layer: id, name, flags, order index, and style defaults.
type Record struct {
	ID       uint32
	Name     string
	Flags    protocol.LayerFlags
	Order    int
	Defaults Defaults
}

// Store owns every layer record, keyed by id.
type Store struct {
	layers map[uint32]Record
	nextID uint32
}

// NewStore returns a Store pre-populated with the default layer 1
// (visible, unlocked), matching spec.md §3's "layer_id defaults to 1".
func NewStore() *Store {
	s := &Store{layers: map[uint32]Record{}}
	s.layers[1] = Record{ID: 1, Name: "Layer 1", Flags: protocol.LayerVisible, Order: 0}
	s.nextID = 1
	return s
}

// NewEmptyStore returns a Store with no layers at all, used by snapshot
// load which restores the complete layer set from the serialized block
// (spec.md §4.2) instead of starting from the default layer 1.
func NewEmptyStore() *Store { return &Store{layers: map[uint32]Record{}} }

// Get returns the layer record for id.
func (s *Store) Get(id uint32) (Record, bool) {
	r, ok := s.layers[id]
	return r, ok
}

// Exists reports whether id names a layer.
func (s *Store) Exists(id uint32) bool {
	_, ok := s.layers[id]
	return ok
}

// Create allocates a new layer with the given name, appended after every
// existing layer, and returns its id.
func (s *Store) Create(name string) uint32 {
	s.nextID++
	id := s.nextID
	s.layers[id] = Record{ID: id, Name: name, Flags: protocol.LayerVisible, Order: len(s.layers)}
	return id
}

// Delete removes a layer record. The caller (doc.Document) is
// responsible for cascading entity deletion/reassignment beforehand,
// since the layer package has no visibility into the entity store
// (spec.md §3 "Lifecycle": "destroyed by ... layer deletion cascade").
func (s *Store) Delete(id uint32) (Record, bool) {
	r, ok := s.layers[id]
	if !ok {
		return Record{}, false
	}
	delete(s.layers, id)
	return r, true
}

// Restore writes a layer record back verbatim (history undo/redo,
// snapshot load).
func (s *Store) Restore(r Record) {
	s.layers[r.ID] = r
	if r.ID > s.nextID {
		s.nextID = r.ID
	}
}

// SetFlags updates a layer's flag bitmask.
func (s *Store) SetFlags(id uint32, flags protocol.LayerFlags) (Record, bool, bool) {
	r, ok := s.layers[id]
	if !ok {
		return Record{}, false, false
	}
	if r.Flags == flags {
		return r, true, false
	}
	r.Flags = flags
	s.layers[id] = r
	return r, true, true
}

// SetDefaults updates a layer's inherited style defaults.
func (s *Store) SetDefaults(id uint32, d Defaults) (Record, bool, bool) {
	r, ok := s.layers[id]
	if !ok {
		return Record{}, false, false
	}
	if r.Defaults == d {
		return r, true, false
	}
	r.Defaults = d
	s.layers[id] = r
	return r, true, true
}

// Rename updates a layer's name.
func (s *Store) Rename(id uint32, name string) (Record, bool, bool) {
	r, ok := s.layers[id]
	if !ok {
		return Record{}, false, false
	}
	if r.Name == name {
		return r, true, false
	}
	r.Name = name
	s.layers[id] = r
	return r, true, true
}

// All returns every layer record, ordered by id ascending (spec.md §4.2:
// "layers in id order" for the digest).
func (s *Store) All() []Record {
	out := make([]Record, 0, len(s.layers))
	for _, r := range s.layers {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsVisible reports whether a layer is visible (missing layer => false).
func (s *Store) IsVisible(id uint32) bool {
	r, ok := s.layers[id]
	return ok && r.Flags&protocol.LayerVisible != 0
}

// IsLocked reports whether a layer is locked.
func (s *Store) IsLocked(id uint32) bool {
	r, ok := s.layers[id]
	return ok && r.Flags&protocol.LayerLocked != 0
}
