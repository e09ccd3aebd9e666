// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package doc is the document engine orchestrator (spec.md §2): it wires
// the entity store, layer store, pick index, interaction session, history
// engine, and event stream into the single public surface a host UI shell
// drives — command buffer apply, snapshot save/load, selection and layer
// management, draw-order reorder, interactive transforms, event polling,
// and render/overlay buffer assembly.
package doc

import (
	"fmt"
	"log/slog"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/events"
	"cogentcore.org/cadcore/history"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/pick"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/session"
)

// Options configures a new Document. There is no file/env/CLI
// configuration surface at this layer (spec.md §6); Options is a plain
// struct of initialization values, the same shape the teacher's
// core/config.go uses for its own startup options.
type Options struct {
	// Logger receives a warning when Load fails; nothing else in the
	// package logs. Defaults to slog.Default() if nil.
	Logger *slog.Logger
	// DragThresholdPx gates below-threshold transform commits (spec.md
	// §4.4, §8: "Below-threshold drag commits add no history entry").
	// Defaults to 4.
	DragThresholdPx float32
}

// EngineError wraps the protocol.ErrorKind taxonomy exposed via
// last_error (spec.md §7), plus the underlying cause where one exists.
type EngineError struct {
	Kind  protocol.ErrorKind
	Cause error
}

func (e EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("doc: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("doc: %s", e.Kind)
}

func (e EngineError) Unwrap() error { return e.Cause }

// Ok reports whether the error represents success.
func (e EngineError) Ok() bool { return e.Kind == protocol.Ok }

// Document is the engine's single stateful root.
type Document struct {
	opts Options

	Entities *entity.Store
	Layers   *layer.Store
	History  *history.Engine
	Events   *events.Stream

	pick    *pick.Index
	session *session.Session

	selection []uint32
	viewScale float32
	snap      session.SnapPolicy

	lastErr     EngineError
	lastApplyMs float64
}

// New returns an empty Document: one default layer (id 1), no entities,
// view scale 1.
func New(opts Options) *Document {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DragThresholdPx <= 0 {
		opts.DragThresholdPx = 4
	}
	return &Document{
		opts:      opts,
		Entities:  entity.NewStore(),
		Layers:    layer.NewStore(),
		History:   history.NewEngine(),
		Events:    events.NewStream(),
		pick:      pick.NewIndex(),
		session:   session.NewSession(opts.DragThresholdPx),
		viewScale: 1,
	}
}

// Generation returns the entity store's monotonic mutation counter
// (spec.md §3 invariant 6).
func (d *Document) Generation() uint64 { return d.Entities.Generation() }

// LastError returns the EngineError of the most recent mutating call
// (spec.md §7).
func (d *Document) LastError() EngineError { return d.lastErr }

// LastApplyMillis returns the wall-clock duration of the most recent
// ApplyCommandBuffer call, or 0 if that call failed (spec.md §8 scenario
// 2: "last_apply_ms == 0" on a failed apply).
func (d *Document) LastApplyMillis() float64 { return d.lastApplyMs }

// Selection returns a copy of the current selection id list.
func (d *Document) Selection() []uint32 { return append([]uint32(nil), d.selection...) }

// ViewScale returns the current render view scale, a hint consumed by
// snap tolerance and curve-flattening chord tolerance, not document
// state (spec.md §4.4, §4.8).
func (d *Document) ViewScale() float32 { return d.viewScale }

// SetViewScale updates the view scale hint.
func (d *Document) SetViewScale(s float32) { d.viewScale = s }

// SetSnapPolicy replaces the snap configuration consulted by transform
// sessions (spec.md §4.4).
func (d *Document) SetSnapPolicy(p session.SnapPolicy) { d.snap = p }

// SnapPolicy returns the current snap configuration.
func (d *Document) SnapPolicy() session.SnapPolicy { return d.snap }

func (d *Document) sessionCtx() session.Context {
	return session.Context{Entities: d.Entities, Pick: d.pick, History: d.History, Snap: d.snap}
}

// flushEpoch is the single point through which every doc-level operation
// (outside a raw command buffer, which drives events.Stream itself)
// reports its event marks, so every caller gets the same
// BeginEpoch/.../FlushEpoch shape (spec.md §4.6 "Epoch").
func (d *Document) flushEpoch() { d.Events.FlushEpoch(d.Entities.Generation()) }

// pruneSelection drops any selected id that is no longer live, visible,
// and unlocked at both the entity and layer level (spec.md §3 invariant
// 5), emitting a SelectionChanged event if anything was dropped.
func (d *Document) pruneSelection() {
	if len(d.selection) == 0 {
		return
	}
	next := make([]uint32, 0, len(d.selection))
	dropped := false
	for _, id := range d.selection {
		if pick.Eligible(d.Entities, d.Layers, id) {
			next = append(next, id)
		} else {
			dropped = true
		}
	}
	if !dropped {
		return
	}
	d.selection = next
	d.Events.BeginEpoch()
	d.Events.MarkSelectionChanged()
	d.flushEpoch()
}

// --- history.Applier -------------------------------------------------

// ApplyEntityDelta implements history.Applier for top-level Undo/Redo.
func (d *Document) ApplyEntityDelta(before, after *entity.State) {
	if after == nil {
		if before != nil {
			d.Entities.RestoreRemoveEntity(before.ID)
		}
		return
	}
	d.Entities.RestoreState(*after)
}

// ApplyDrawOrder implements history.Applier.
func (d *Document) ApplyDrawOrder(order []uint32) { d.Entities.RestoreDrawOrder(order) }

// ApplySelection implements history.Applier: unlike command.Target (the
// command buffer never touches selection), Document's own SetSelection
// records selection deltas, so undo/redo of a pure selection change is
// real here.
func (d *Document) ApplySelection(ids []uint32) { d.selection = append([]uint32(nil), ids...) }

// ApplyLayer implements history.Applier.
func (d *Document) ApplyLayer(before, after *layer.Record, layerID uint32) {
	if after == nil {
		d.Layers.Delete(layerID)
		return
	}
	d.Layers.Restore(*after)
}

// recordEntityChange mirrors command.recordEntity for doc-level mutating
// operations (layer cascade, future direct-entity APIs): records the
// pre-state once per entity per open history entry and marks the
// appropriate event.
func recordEntityChange(d *Document, id uint32, res entity.Result, mask protocol.ChangeMask) {
	if !res.Changed {
		return
	}
	stillLive := d.Entities.Exists(id)
	var after *entity.State
	if res.Created || stillLive {
		a := res.After
		after = &a
	}
	d.History.RecordEntity(id, res.Before, after)
	switch {
	case res.Created:
		d.Events.MarkEntityCreated(id)
		d.Events.MarkEntityChanged(id, mask)
	case !stillLive:
		d.Events.MarkEntityDeleted(id)
	default:
		d.Events.MarkEntityChanged(id, mask)
	}
}
