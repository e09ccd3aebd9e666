// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"encoding/binary"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/text"
)

// Fixed payload strides for the text ops that carry one.
const (
	textHeaderSize = 8 + 4 + 4 + 4 + 4 + 8 + 4 + 4 // pos,rotation,mode,align,width,attrs,runCount,contentLen
	textRunSize    = 4 + 4 + 4 + 4 + 16 + 4         // start,length,fontID,size,color,flags
	caretPayload   = 4
	selectionPayload = 8
	deleteRangePayload = 8
	applyStylePayload  = 16
	alignPayload       = 4
)

// textTarget resolves id to a live Text entity, failing the buffer with
// InvalidOperation if id is missing or names a different kind (spec.md
// §4.1's failure table only enumerates header/payload/op errors, but an
// op addressed at the wrong kind of entity is equally not a well-formed
// buffer).
func textTarget(t *Target, id uint32) (*text.Record, error) {
	rec := t.Entities.TextRecord(id)
	if rec == nil {
		return nil, fail(protocol.InvalidOperation, "entity %d is not a live text entity", id)
	}
	return rec, nil
}

// applyTextMutation re-upserts the mutated record through entity.Store so
// the usual Result/history/event bookkeeping fires (UpsertText already
// implements the create-or-replace Result logic; mutation ops just reuse
// it with an unchanged Attrs).
func applyTextMutation(t *Target, id uint32, mutate func(*text.Record)) {
	rec := t.Entities.TextRecord(id)
	attrs, _ := t.Entities.Attrs(id)
	cp := rec.Clone()
	mutate(&cp)
	res := t.Entities.UpsertText(id, cp, attrs)
	recordEntity(t, id, res, protocol.ChangeText|protocol.ChangeBounds)
}

func opUpsertText(t *Target, r record) error {
	if len(r.payload) < textHeaderSize {
		return fail(protocol.InvalidPayloadSize, "text payload shorter than header")
	}
	c := &cursor{b: r.payload}
	pos := c.vec2()
	rotation := c.f32()
	mode := c.u32()
	align := c.u32()
	constraintWidth := c.f32()
	attrs := c.attrs()
	runCount := c.u32()
	contentLen := c.u32()

	want := textHeaderSize + int(runCount)*textRunSize + int(contentLen)
	if err := expectSize(r, want); err != nil {
		return err
	}

	runs := make([]text.Run, runCount)
	for i := range runs {
		runs[i] = text.Run{
			Start:  int(c.i32()),
			Length: int(c.i32()),
			FontID: c.u32(),
			Size:   c.f32(),
			Color:  c.color(),
			Flags:  text.StyleFlags(c.u32()),
		}
	}
	content := c.bytesN(int(contentLen))

	rec := text.NewRecord(pos, text.BoxMode(mode), text.Align(align), constraintWidth, text.Run{})
	rec.Rotation = rotation
	rec.Content.Bytes = content
	rec.Content.Runs = runs

	res := t.Entities.UpsertText(r.id, rec, attrs)
	recordEntity(t, r.id, res, protocol.ChangeGeometry|protocol.ChangeText)
	return nil
}

func opDeleteText(t *Target, r record) error {
	if err := expectSize(r, 0); err != nil {
		return err
	}
	if t.Entities.Exists(r.id) {
		if k, _ := t.Entities.KindOf(r.id); k != entity.Text {
			return fail(protocol.InvalidOperation, "entity %d is not a text entity", r.id)
		}
	}
	before := t.Entities.DrawOrder()
	res := t.Entities.DeleteEntity(r.id)
	if !res.Changed {
		return nil
	}
	after := t.Entities.DrawOrder()
	if !sameOrder(before, after) {
		// Recorded before the entity delta for the same reason as
		// opDeleteEntity: it must be the last delta this entry reverses
		// on undo.
		t.History.RecordDrawOrder(before, after)
		t.Events.MarkOrderChanged()
	}
	t.History.RecordEntity(r.id, res.Before, nil)
	t.Events.MarkEntityDeleted(r.id)
	return nil
}

func opSetTextCaret(t *Target, r record) error {
	if err := expectSize(r, caretPayload); err != nil {
		return err
	}
	if _, err := textTarget(t, r.id); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	pos := int(c.i32())
	applyTextMutation(t, r.id, func(rec *text.Record) {
		rec.EnsureCaret().SetCaret(pos, rec.Content.Len())
	})
	return nil
}

func opSetTextSelection(t *Target, r record) error {
	if err := expectSize(r, selectionPayload); err != nil {
		return err
	}
	if _, err := textTarget(t, r.id); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	anchor := int(c.i32())
	pos := int(c.i32())
	applyTextMutation(t, r.id, func(rec *text.Record) {
		rec.EnsureCaret().SetSelection(anchor, pos, rec.Content.Len())
	})
	return nil
}

func opInsertTextContent(t *Target, r record) error {
	if len(r.payload) < 8 {
		return fail(protocol.InvalidPayloadSize, "insert-text payload shorter than header")
	}
	dataLen := binary.LittleEndian.Uint32(r.payload[4:8])
	if err := expectSize(r, 8+int(dataLen)); err != nil {
		return err
	}
	if _, err := textTarget(t, r.id); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	pos := int(c.i32())
	_ = c.u32() // dataLen, already consumed above
	data := c.bytesN(int(dataLen))
	applyTextMutation(t, r.id, func(rec *text.Record) {
		rec.Content.InsertContent(pos, data)
		if rec.Caret != nil {
			rec.Caret.SetCaret(pos+len(data), rec.Content.Len())
		}
		rec.MarkLayoutDirty()
	})
	return nil
}

func opDeleteTextContent(t *Target, r record) error {
	if err := expectSize(r, deleteRangePayload); err != nil {
		return err
	}
	if _, err := textTarget(t, r.id); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	start := int(c.i32())
	end := int(c.i32())
	applyTextMutation(t, r.id, func(rec *text.Record) {
		rec.Content.DeleteContent(start, end)
		if rec.Caret != nil {
			rec.Caret.SetCaret(start, rec.Content.Len())
		}
		rec.MarkLayoutDirty()
	})
	return nil
}

func opApplyTextStyle(t *Target, r record) error {
	if err := expectSize(r, applyStylePayload); err != nil {
		return err
	}
	if _, err := textTarget(t, r.id); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	start := int(c.i32())
	end := int(c.i32())
	set := text.StyleFlags(c.u32())
	clear := text.StyleFlags(c.u32())
	applyTextMutation(t, r.id, func(rec *text.Record) {
		rec.Content.ApplyStyle(start, end, set, clear)
	})
	return nil
}

func opSetTextAlign(t *Target, r record) error {
	if err := expectSize(r, alignPayload); err != nil {
		return err
	}
	if _, err := textTarget(t, r.id); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	align := text.Align(c.u32())
	applyTextMutation(t, r.id, func(rec *text.Record) {
		rec.Align = align
		rec.MarkLayoutDirty()
	})
	return nil
}
