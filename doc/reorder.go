// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import "cogentcore.org/cadcore/protocol"

// Reorder restacks ids within the draw order per action (spec.md §6
// ReorderAction), recording one undoable history entry and emitting
// OrderChanged if the order actually changed. Returns false if ids names
// no live entity or the restack had no effect.
func (d *Document) Reorder(ids []uint32, action protocol.ReorderAction) bool {
	live := filterExisting(d.Entities.Exists, ids)
	if len(live) == 0 {
		return false
	}
	before := d.Entities.DrawOrder()
	var want []uint32
	switch action {
	case protocol.ReorderBringToFront:
		want = moveToEnd(before, live)
	case protocol.ReorderSendToBack:
		want = moveToFront(before, live)
	case protocol.ReorderBringForward:
		want = shiftBy(before, live, 1)
	case protocol.ReorderSendBackward:
		want = shiftBy(before, live, -1)
	default:
		return false
	}
	if sameOrder(before, want) {
		return false
	}
	d.History.BeginEntry()
	prev := d.Entities.SetDrawOrder(want)
	d.History.RecordDrawOrder(prev, d.Entities.DrawOrder())
	d.History.CommitEntry()
	d.Events.BeginEpoch()
	d.Events.MarkOrderChanged()
	d.Events.MarkHistoryChanged()
	d.flushEpoch()
	return true
}

func filterExisting(exists func(uint32) bool, ids []uint32) []uint32 {
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if exists(id) {
			out = append(out, id)
		}
	}
	return out
}

func sameOrder(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// moveToEnd restacks the selected ids to the top (end) of the draw order,
// preserving both groups' internal relative order.
func moveToEnd(order, ids []uint32) []uint32 {
	set := toSet(ids)
	rest := make([]uint32, 0, len(order))
	sel := make([]uint32, 0, len(ids))
	for _, id := range order {
		if set[id] {
			sel = append(sel, id)
		} else {
			rest = append(rest, id)
		}
	}
	return append(rest, sel...)
}

// moveToFront restacks the selected ids to the bottom (front) of the
// draw order.
func moveToFront(order, ids []uint32) []uint32 {
	set := toSet(ids)
	rest := make([]uint32, 0, len(order))
	sel := make([]uint32, 0, len(ids))
	for _, id := range order {
		if set[id] {
			sel = append(sel, id)
		} else {
			rest = append(rest, id)
		}
	}
	return append(sel, rest...)
}

// shiftBy moves each selected id one position toward the end (dir=+1) or
// start (dir=-1) of the draw order. Ids are processed in the order that
// lets each one clear its own path first (topmost first for dir=+1,
// bottommost first for dir=-1), so a contiguous run of selected ids
// shifts together instead of piling up on its leading neighbor.
func shiftBy(order, ids []uint32, dir int) []uint32 {
	out := append([]uint32(nil), order...)
	set := toSet(ids)
	var sel []uint32
	for _, id := range out {
		if set[id] {
			sel = append(sel, id)
		}
	}
	if dir > 0 {
		for i, j := 0, len(sel)-1; i < j; i, j = i+1, j-1 {
			sel[i], sel[j] = sel[j], sel[i]
		}
	}
	for _, id := range sel {
		i := indexOfID(out, id)
		j := i + dir
		if i < 0 || j < 0 || j >= len(out) {
			continue
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func indexOfID(order []uint32, id uint32) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}
