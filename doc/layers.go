// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/protocol"
)

// DefaultLayerID is the always-present layer every entity defaults onto
// (spec.md §3: "layer_id defaults to 1"); it can never be deleted.
const DefaultLayerID uint32 = 1

// CreateLayer allocates a new layer and records its creation as one
// undoable history entry.
func (d *Document) CreateLayer(name string) uint32 {
	d.History.BeginEntry()
	id := d.Layers.Create(name)
	rec, _ := d.Layers.Get(id)
	d.History.RecordLayer(id, nil, &rec)
	d.History.CommitEntry()
	d.Events.BeginEpoch()
	d.Events.MarkLayerChanged(id, uint32(protocol.ChangeFlags))
	d.Events.MarkHistoryChanged()
	d.flushEpoch()
	return id
}

// DeleteLayer removes a layer, cascading every entity currently assigned
// to it onto DefaultLayerID first (spec.md §3 "Lifecycle": entities are
// "destroyed by ... layer deletion cascade"; this engine reassigns rather
// than destroys, since the source leaves the exact cascade behavior
// unspecified and reassignment is the non-destructive reading). The
// default layer can never be deleted. Returns false if id does not name a
// deletable layer.
func (d *Document) DeleteLayer(id uint32) bool {
	if id == DefaultLayerID || !d.Layers.Exists(id) {
		return false
	}
	d.History.BeginEntry()
	for _, eid := range d.Entities.SortedLiveIDs() {
		a, ok := d.Entities.Attrs(eid)
		if ok && a.LayerID == id {
			res := d.Entities.SetEntityLayer(eid, DefaultLayerID)
			recordEntityChange(d, eid, res, protocol.ChangeLayer)
		}
	}
	before, _ := d.Layers.Get(id)
	d.Layers.Delete(id)
	d.History.RecordLayer(id, &before, nil)
	d.History.CommitEntry()
	d.Events.BeginEpoch()
	d.Events.MarkLayerChanged(id, uint32(protocol.ChangeFlags))
	d.Events.MarkHistoryChanged()
	d.flushEpoch()
	d.pruneSelection()
	return true
}

// RenameLayer updates a layer's display name.
func (d *Document) RenameLayer(id uint32, name string) bool {
	return d.mutateLayer(id, func() (layer.Record, bool, bool) { return d.Layers.Rename(id, name) })
}

// SetLayerFlags updates a layer's visible/locked bitmask.
func (d *Document) SetLayerFlags(id uint32, flags protocol.LayerFlags) bool {
	ok := d.mutateLayer(id, func() (layer.Record, bool, bool) { return d.Layers.SetFlags(id, flags) })
	if ok {
		d.pruneSelection()
	}
	return ok
}

// SetLayerDefaults updates a layer's inherited style defaults.
func (d *Document) SetLayerDefaults(id uint32, defaults layer.Defaults) bool {
	return d.mutateLayer(id, func() (layer.Record, bool, bool) { return d.Layers.SetDefaults(id, defaults) })
}

// mutateLayer runs a Store mutator that returns (record, exists,
// changed), recording history and events the same way for every layer
// property setter.
func (d *Document) mutateLayer(id uint32, mutate func() (layer.Record, bool, bool)) bool {
	before, ok := d.Layers.Get(id)
	if !ok {
		return false
	}
	after, _, changed := mutate()
	if !changed {
		return true
	}
	d.History.BeginEntry()
	d.History.RecordLayer(id, &before, &after)
	d.History.CommitEntry()
	d.Events.BeginEpoch()
	d.Events.MarkLayerChanged(id, uint32(protocol.ChangeFlags))
	d.Events.MarkHistoryChanged()
	d.flushEpoch()
	return true
}
