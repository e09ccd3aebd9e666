// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package command implements the binary command buffer parser and
// dispatcher (spec.md §4.1): a 16-byte header, a table of fixed-stride
// records, and a per-op payload blob, applied atomically against the
// entity store, layer store, history engine, and event stream.
package command

import (
	"encoding/binary"
	"fmt"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/events"
	"cogentcore.org/cadcore/history"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/protocol"
)

const (
	headerSize = 16
	recordSize = 16
)

// Error wraps the protocol.ErrorKind of a failed buffer apply, keeping
// the raw enum available to callers that key off it (spec.md §4.1, §7
// "lastError").
type Error struct {
	Kind protocol.ErrorKind
	msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("command: %s: %s", e.Kind, e.msg) }

func fail(kind protocol.ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// record is one decoded header record, not yet payload-validated.
type record struct {
	op      protocol.Op
	id      uint32
	payload []byte
}

// Target bundles the mutable collaborators a buffer apply touches
// (spec.md §4.1: entities, layers, history, events). ViewScale is written
// by SetViewScale and is owned by the caller (doc.Document), not this
// package, since view scale is a render hint rather than document state.
type Target struct {
	Entities  *entity.Store
	Layers    *layer.Store
	History   *history.Engine
	Events    *events.Stream
	ViewScale *float32
}

// Apply parses and applies buf against t. On any failure the opened
// history entry is discarded and t.Entities/t.Layers are left exactly as
// they were before the call (spec.md §4.1: "Any failure aborts the
// entire buffer"). On success it returns the number of ops applied.
func Apply(t *Target, buf []byte) (int, error) {
	recs, err := parse(buf)
	if err != nil {
		return 0, err
	}
	genBefore := t.Entities.Generation()
	t.History.BeginEntry()
	t.Events.BeginEpoch()
	applied := 0
	for _, r := range recs {
		if err := dispatch(t, r); err != nil {
			t.History.Abort(t)
			t.Entities.RestoreGeneration(genBefore)
			t.Events.BeginEpoch() // drop any coalescing state the failed buffer accumulated
			return 0, err
		}
		applied++
	}
	t.History.CommitEntry()
	if t.Entities.Generation() != genBefore {
		t.Events.MarkHistoryChanged()
	}
	t.Events.FlushEpoch(t.Entities.Generation())
	return applied, nil
}

func parse(buf []byte) ([]record, error) {
	if len(buf) < headerSize {
		return nil, fail(protocol.InvalidHeader, "buffer too short for header (%d bytes)", len(buf))
	}
	magic := binary.LittleEndian.Uint32(buf[0:4])
	version := binary.LittleEndian.Uint32(buf[4:8])
	count := binary.LittleEndian.Uint32(buf[8:12])
	if magic != protocol.CommandMagic {
		return nil, fail(protocol.InvalidHeader, "bad magic %#x", magic)
	}
	if version != protocol.CommandVersion {
		return nil, fail(protocol.InvalidHeader, "unsupported version %d", version)
	}

	recs := make([]record, 0, count)
	off := headerSize
	for i := uint32(0); i < count; i++ {
		if off+recordSize > len(buf) {
			return nil, fail(protocol.InvalidHeader, "truncated record table at record %d", i)
		}
		op := binary.LittleEndian.Uint32(buf[off : off+4])
		id := binary.LittleEndian.Uint32(buf[off+4 : off+8])
		payloadBytes := binary.LittleEndian.Uint32(buf[off+8 : off+12])
		off += recordSize

		if off+int(payloadBytes) > len(buf) {
			return nil, fail(protocol.InvalidPayloadSize, "record %d declares %d payload bytes past end of buffer", i, payloadBytes)
		}
		payload := buf[off : off+int(payloadBytes)]
		off += align4(int(payloadBytes))

		recs = append(recs, record{op: protocol.Op(op), id: id, payload: payload})
	}
	return recs, nil
}

func align4(n int) int { return (n + 3) &^ 3 }

func dispatch(t *Target, r record) error {
	switch r.op {
	case protocol.OpClearAll:
		return opClearAll(t, r)
	case protocol.OpDeleteEntity:
		return opDeleteEntity(t, r)
	case protocol.OpSetViewScale:
		return opSetViewScale(t, r)
	case protocol.OpSetDrawOrder:
		return opSetDrawOrder(t, r)
	case protocol.OpUpsertRect:
		return opUpsertRect(t, r)
	case protocol.OpUpsertLine:
		return opUpsertLine(t, r)
	case protocol.OpUpsertPolyline:
		return opUpsertPolyline(t, r)
	case protocol.OpUpsertCircle:
		return opUpsertCircle(t, r)
	case protocol.OpUpsertPolygon:
		return opUpsertPolygon(t, r)
	case protocol.OpUpsertArrow:
		return opUpsertArrow(t, r)
	case protocol.OpUpsertText:
		return opUpsertText(t, r)
	case protocol.OpDeleteText:
		return opDeleteText(t, r)
	case protocol.OpSetTextCaret:
		return opSetTextCaret(t, r)
	case protocol.OpSetTextSelection:
		return opSetTextSelection(t, r)
	case protocol.OpInsertTextContent:
		return opInsertTextContent(t, r)
	case protocol.OpDeleteTextContent:
		return opDeleteTextContent(t, r)
	case protocol.OpApplyTextStyle:
		return opApplyTextStyle(t, r)
	case protocol.OpSetTextAlign:
		return opSetTextAlign(t, r)
	default:
		return fail(protocol.UnknownCommand, "unrecognized op %d", r.op)
	}
}

// Target implements history.Applier so Apply can reverse a partially
// applied buffer through the same inverse-delta machinery Undo uses
// (spec.md §4.1 atomic-abort, §4.5). Selection and layer deltas are
// never recorded by this package's ops (the command buffer carries no
// selection or layer op): ApplySelection is a no-op, and ApplyLayer
// deletes or restores the layer record if it is ever reached.
func (t *Target) ApplyEntityDelta(before, after *entity.State) {
	if after == nil {
		if before != nil {
			t.Entities.RestoreRemoveEntity(before.ID)
		}
		return
	}
	t.Entities.RestoreState(*after)
}
func (t *Target) ApplyDrawOrder(order []uint32) { t.Entities.RestoreDrawOrder(order) }
func (t *Target) ApplySelection(ids []uint32)   {}
func (t *Target) ApplyLayer(before, after *layer.Record, layerID uint32) {
	if after == nil {
		t.Layers.Delete(layerID)
		return
	}
	t.Layers.Restore(*after)
}

// expectSize validates a fixed-size payload, returning InvalidPayloadSize
// on mismatch.
func expectSize(r record, want int) error {
	if len(r.payload) != want {
		return fail(protocol.InvalidPayloadSize, "op %d: want %d payload bytes, got %d", r.op, want, len(r.payload))
	}
	return nil
}

// recordEntity tells the open history entry about a mutation, recording
// the entry-open pre-state once, and marks the change on the event
// stream for this epoch (spec.md §4.5, §4.6).
func recordEntity(t *Target, id uint32, res entity.Result, mask protocol.ChangeMask) {
	if !res.Changed {
		return
	}
	stillLive := t.Entities.Exists(id)
	var after *entity.State
	if res.Created || stillLive {
		a := res.After
		after = &a
	}
	t.History.RecordEntity(id, res.Before, after)
	switch {
	case res.Created:
		t.Events.MarkEntityCreated(id)
		t.Events.MarkEntityChanged(id, mask)
	case !stillLive:
		t.Events.MarkEntityDeleted(id)
	default:
		t.Events.MarkEntityChanged(id, mask)
	}
}
