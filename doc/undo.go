// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

// CanUndo reports whether there is a history entry to undo.
func (d *Document) CanUndo() bool { return d.History.CanUndo() }

// CanRedo reports whether there is a history entry to redo.
func (d *Document) CanRedo() bool { return d.History.CanRedo() }

// Undo reverses the most recent history entry (spec.md §4.5). Generation
// is bumped explicitly since history replay restores entity state without
// bumping on its own (entity.Store.RestoreState may be one of several
// deltas applied as a batch) — invariant 6 still requires undo itself to
// count as a successful mutation.
func (d *Document) Undo() bool {
	if !d.History.Undo(d) {
		return false
	}
	d.Entities.Touch()
	d.pick.EnsureFresh(d.Entities)
	d.Events.BeginEpoch()
	d.Events.MarkHistoryChanged()
	d.flushEpoch()
	d.pruneSelection()
	return true
}

// Redo re-applies the most recently undone history entry.
func (d *Document) Redo() bool {
	if !d.History.Redo(d) {
		return false
	}
	d.Entities.Touch()
	d.pick.EnsureFresh(d.Entities)
	d.Events.BeginEpoch()
	d.Events.MarkHistoryChanged()
	d.flushEpoch()
	d.pruneSelection()
	return true
}
