// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"sort"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/pick"
	"cogentcore.org/cadcore/protocol"
)

// SetSelection combines ids into the current selection per mode (spec.md
// §6 SelectionMode), prunes the result to live/visible/unlocked entities
// (spec.md §3 invariant 5), and records the change as one undoable
// history entry if it had any effect. It returns the resulting selection.
func (d *Document) SetSelection(ids []uint32, mode protocol.SelectionMode) []uint32 {
	combined := combineSelection(d.selection, ids, mode)
	next := filterEligible(d.Entities, d.Layers, dedupeIDs(combined))
	if sameIDs(d.selection, next) {
		return d.Selection()
	}
	before := d.Selection()
	d.History.BeginEntry()
	d.History.RecordSelection(before, next)
	d.History.CommitEntry()
	d.selection = next
	d.Events.BeginEpoch()
	d.Events.MarkSelectionChanged()
	d.Events.MarkHistoryChanged()
	d.flushEpoch()
	return d.Selection()
}

// ClearSelection empties the selection (equivalent to SetSelection(nil,
// SelectionReplace)).
func (d *Document) ClearSelection() { d.SetSelection(nil, protocol.SelectionReplace) }

func combineSelection(current, ids []uint32, mode protocol.SelectionMode) []uint32 {
	switch mode {
	case protocol.SelectionAdd:
		return append(append([]uint32(nil), current...), ids...)
	case protocol.SelectionRemove:
		return subtractIDs(current, ids)
	case protocol.SelectionToggle:
		return toggleIDs(current, ids)
	default: // SelectionReplace
		return append([]uint32(nil), ids...)
	}
}

func subtractIDs(current, remove []uint32) []uint32 {
	drop := toSet(remove)
	out := make([]uint32, 0, len(current))
	for _, id := range current {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}

func toggleIDs(current, toggle []uint32) []uint32 {
	have := toSet(current)
	out := append([]uint32(nil), current...)
	for _, id := range toggle {
		if have[id] {
			out = subtractIDs(out, []uint32{id})
			delete(have, id)
		} else {
			out = append(out, id)
			have[id] = true
		}
	}
	return out
}

func toSet(ids []uint32) map[uint32]bool {
	m := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func dedupeIDs(ids []uint32) []uint32 {
	seen := map[uint32]bool{}
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func filterEligible(st *entity.Store, ls *layer.Store, ids []uint32) []uint32 {
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if pick.Eligible(st, ls, id) {
			out = append(out, id)
		}
	}
	return out
}

func sameIDs(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]uint32(nil), a...)
	bs := append([]uint32(nil), b...)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
