// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/session"
)

// BeginTransform opens an interactive transform session over ids (spec.md
// §4.4). The event epoch spans the whole begin/update/commit sequence, so
// intermediate drag updates never themselves emit events — only the final
// commit does (spec.md GLOSSARY "Epoch": "command buffer or transform
// commit").
func (d *Document) BeginTransform(ids []uint32, mode session.Mode, specificID uint32, handleOrVertexIndex int,
	startScreenXY, startViewXY math32.Vector2, viewSize math32.Vector2, modifiers protocol.SelectionModifier) bool {
	return d.session.BeginTransform(d.sessionCtx(), ids, mode, specificID, handleOrVertexIndex,
		startScreenXY, startViewXY, d.viewScale, viewSize, modifiers)
}

// UpdateTransform recomputes every target's geometry against the current
// pointer position.
func (d *Document) UpdateTransform(curScreenXY, curViewXY math32.Vector2, modifiers protocol.SelectionModifier) bool {
	return d.session.UpdateTransform(d.sessionCtx(), curScreenXY, curViewXY, modifiers)
}

// CommitTransform finalizes the active transform, updates the selection to
// track the transform's targets (which are clones, not the originals, on
// an Alt+drag duplicate: spec.md §8 scenario 6), and flushes one event
// epoch covering every touched entity plus selection/history changes.
func (d *Document) CommitTransform() ([]session.TransformResult, bool) {
	preSelection := d.Selection()
	entriesBefore := d.History.EntryCount()
	results, ok := d.session.CommitTransform(d.sessionCtx())
	if !ok {
		return nil, false
	}
	historyChanged := d.History.EntryCount() > entriesBefore
	ids := make([]uint32, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	selectionChanged := !sameIDs(preSelection, ids)
	if selectionChanged {
		d.selection = filterEligible(d.Entities, d.Layers, ids)
	}
	d.pick.EnsureFresh(d.Entities)
	d.Events.BeginEpoch()
	for _, id := range ids {
		if d.Entities.Exists(id) {
			d.Events.MarkEntityChanged(id, protocol.ChangeGeometry|protocol.ChangeBounds)
		}
	}
	if selectionChanged {
		d.Events.MarkSelectionChanged()
	}
	if historyChanged {
		d.Events.MarkHistoryChanged()
	}
	d.flushEpoch()
	return results, true
}

// CancelTransform restores every target to its begin-time snapshot and
// discards any partial history entry, emitting no events since the
// document ends up exactly where it started (spec.md §4.4, §8: "restores
// the pre-begin snapshot byte-exactly").
func (d *Document) CancelTransform() bool {
	ok := d.session.CancelTransform(d.sessionCtx())
	if ok {
		d.Events.BeginEpoch()
		d.pick.EnsureFresh(d.Entities)
	}
	return ok
}

// TransformPhase reports the interaction session's current state.
func (d *Document) TransformPhase() session.Phase { return d.session.Phase() }

// AddDraftPoint appends a point to the in-progress point-by-point draft.
func (d *Document) AddDraftPoint(pt math32.Vector2) { d.session.AddDraftPoint(pt) }

// CancelDraft discards the in-progress draft.
func (d *Document) CancelDraft() { d.session.CancelDraft() }

// FinishDraft materializes the accumulated draft points into a new
// entity, records its creation, and emits the corresponding events.
func (d *Document) FinishDraft(kind entity.Kind, stroke entity.StrokeAttrs, attrs entity.Attrs) (uint32, bool) {
	id, ok := d.session.FinishDraft(d.sessionCtx(), kind, stroke, attrs)
	if !ok {
		return 0, false
	}
	d.pick.EnsureFresh(d.Entities)
	d.Events.BeginEpoch()
	d.Events.MarkEntityCreated(id)
	d.Events.MarkEntityChanged(id, protocol.ChangeGeometry|protocol.ChangeBounds)
	d.Events.MarkHistoryChanged()
	d.flushEpoch()
	return id, true
}
