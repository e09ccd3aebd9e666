// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/events"
	"cogentcore.org/cadcore/history"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/protocol"
	"github.com/stretchr/testify/assert"
)

// bufBuilder assembles a command buffer by hand, mirroring exactly the
// layout command.parse expects, so tests exercise the real wire contract
// rather than a shortcut.
type bufBuilder struct {
	recs []builtRecord
}

type builtRecord struct {
	op      protocol.Op
	id      uint32
	payload []byte
}

func (b *bufBuilder) add(op protocol.Op, id uint32, payload []byte) {
	b.recs = append(b.recs, builtRecord{op: op, id: id, payload: payload})
}

func (b *bufBuilder) build() []byte {
	buf := &bytes.Buffer{}
	u32 := func(v uint32) { var a [4]byte; binary.LittleEndian.PutUint32(a[:], v); buf.Write(a[:]) }
	u32(protocol.CommandMagic)
	u32(protocol.CommandVersion)
	u32(uint32(len(b.recs)))
	u32(0)
	for _, r := range b.recs {
		u32(uint32(r.op))
		u32(r.id)
		u32(uint32(len(r.payload)))
		u32(0)
		buf.Write(r.payload)
		for pad := align4(len(r.payload)) - len(r.payload); pad > 0; pad-- {
			buf.WriteByte(0)
		}
	}
	return buf.Bytes()
}

func f32b(v float32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	return b[:]
}
func u32b(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}
func vec2b(x, y float32) []byte { return append(f32b(x), f32b(y)...) }
func colorb(r, g, bl, a float32) []byte {
	return append(append(append(f32b(r), f32b(g)...), f32b(bl)...), f32b(a)...)
}
func strokeb(enabled bool, width float32) []byte {
	out := colorb(1, 0, 0, 1)
	out = append(out, u32b(boolU32(enabled))...)
	out = append(out, f32b(width)...)
	return out
}
func attrsb(layerID uint32, flags protocol.EntityFlags) []byte {
	return append(u32b(layerID), u32b(uint32(flags))...)
}

func rectPayload() []byte {
	out := vec2b(0, 0)
	out = append(out, vec2b(10, 20)...)
	out = append(out, colorb(0, 1, 0, 1)...)
	out = append(out, strokeb(true, 2)...)
	out = append(out, attrsb(1, protocol.FlagVisible)...)
	return out
}

func newTarget() *Target {
	return &Target{
		Entities: entity.NewStore(),
		Layers:   layer.NewStore(),
		History:  history.NewEngine(),
		Events:   events.NewStream(),
	}
}

func TestApplyUpsertRectCreatesEntityAndBumpsGeneration(t *testing.T) {
	tgt := newTarget()
	b := &bufBuilder{}
	b.add(protocol.OpUpsertRect, 1, rectPayload())
	n, err := Apply(tgt, b.build())
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, tgt.Entities.Exists(1))
	assert.Equal(t, uint64(1), tgt.Entities.Generation())
	assert.Equal(t, 1, tgt.History.EntryCount())
}

func TestApplyBadMagicFails(t *testing.T) {
	tgt := newTarget()
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], 0xdeadbeef)
	_, err := Apply(tgt, buf)
	var cmdErr *Error
	assert.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, protocol.InvalidHeader, cmdErr.Kind)
}

func TestApplyUnknownOpAbortsEntireBuffer(t *testing.T) {
	tgt := newTarget()
	b := &bufBuilder{}
	b.add(protocol.OpUpsertRect, 1, rectPayload())
	b.add(protocol.Op(9999), 2, nil)
	genBefore := tgt.Entities.Generation()
	_, err := Apply(tgt, b.build())
	var cmdErr *Error
	assert.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, protocol.UnknownCommand, cmdErr.Kind)
	assert.False(t, tgt.Entities.Exists(1), "first op must be rolled back on later failure")
	assert.Equal(t, genBefore, tgt.Entities.Generation())
	assert.Equal(t, 0, tgt.History.EntryCount())
}

func TestApplyPayloadSizeMismatchFails(t *testing.T) {
	tgt := newTarget()
	b := &bufBuilder{}
	b.add(protocol.OpUpsertRect, 1, rectPayload()[:10])
	_, err := Apply(tgt, b.build())
	var cmdErr *Error
	assert.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, protocol.InvalidPayloadSize, cmdErr.Kind)
}

func TestApplyDeleteEntityIsIdempotent(t *testing.T) {
	tgt := newTarget()
	b := &bufBuilder{}
	b.add(protocol.OpDeleteEntity, 42, nil)
	n, err := Apply(tgt, b.build())
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, tgt.History.EntryCount(), "deleting a missing id records no history")
}

func TestApplySetDrawOrderReordersAndRecordsHistory(t *testing.T) {
	tgt := newTarget()
	setup := &bufBuilder{}
	setup.add(protocol.OpUpsertRect, 1, rectPayload())
	setup.add(protocol.OpUpsertRect, 2, rectPayload())
	_, err := Apply(tgt, setup.build())
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, tgt.Entities.DrawOrder())

	reorder := &bufBuilder{}
	payload := append(u32b(2), u32b(2)...)
	payload = append(payload, u32b(1)...)
	reorder.add(protocol.OpSetDrawOrder, 0, payload)
	_, err = Apply(tgt, reorder.build())
	assert.NoError(t, err)
	assert.Equal(t, []uint32{2, 1}, tgt.Entities.DrawOrder())
	assert.Equal(t, 2, tgt.History.EntryCount())
}

func TestApplyUndoDeleteEntityNotLastInDrawOrderLeavesNoDuplicate(t *testing.T) {
	tgt := newTarget()
	setup := &bufBuilder{}
	setup.add(protocol.OpUpsertRect, 1, rectPayload())
	setup.add(protocol.OpUpsertRect, 2, rectPayload())
	setup.add(protocol.OpUpsertRect, 3, rectPayload())
	_, err := Apply(tgt, setup.build())
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, tgt.Entities.DrawOrder())

	del := &bufBuilder{}
	del.add(protocol.OpDeleteEntity, 1, nil)
	_, err = Apply(tgt, del.build())
	assert.NoError(t, err)
	assert.Equal(t, []uint32{2, 3}, tgt.Entities.DrawOrder())

	assert.True(t, tgt.History.Undo(tgt))
	order := tgt.Entities.DrawOrder()
	assert.Equal(t, []uint32{1, 2, 3}, order)
	seen := map[uint32]bool{}
	for _, id := range order {
		assert.False(t, seen[id], "id %d appears twice in draw order after undo", id)
		seen[id] = true
	}
}

func TestApplyUndoReversesRectCreation(t *testing.T) {
	tgt := newTarget()
	b := &bufBuilder{}
	b.add(protocol.OpUpsertRect, 1, rectPayload())
	_, err := Apply(tgt, b.build())
	assert.NoError(t, err)
	assert.True(t, tgt.Entities.Exists(1))

	assert.True(t, tgt.History.Undo(tgt))
	assert.False(t, tgt.Entities.Exists(1))
}

func textPayload() []byte {
	out := vec2b(0, 0)
	out = append(out, f32b(0)...)    // rotation
	out = append(out, u32b(0)...)    // mode
	out = append(out, u32b(0)...)    // align
	out = append(out, f32b(0)...)    // constraint width
	out = append(out, attrsb(1, protocol.FlagVisible)...)
	out = append(out, u32b(0)...) // run count
	out = append(out, u32b(5)...) // content length
	out = append(out, []byte("hello")...)
	return out
}

func TestApplyUndoDeleteTextNotLastInDrawOrderLeavesNoDuplicate(t *testing.T) {
	tgt := newTarget()
	setup := &bufBuilder{}
	setup.add(protocol.OpUpsertText, 1, textPayload())
	setup.add(protocol.OpUpsertRect, 2, rectPayload())
	setup.add(protocol.OpUpsertRect, 3, rectPayload())
	_, err := Apply(tgt, setup.build())
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, tgt.Entities.DrawOrder())

	del := &bufBuilder{}
	del.add(protocol.OpDeleteText, 1, nil)
	_, err = Apply(tgt, del.build())
	assert.NoError(t, err)
	assert.Equal(t, []uint32{2, 3}, tgt.Entities.DrawOrder())

	assert.True(t, tgt.History.Undo(tgt))
	order := tgt.Entities.DrawOrder()
	assert.Equal(t, []uint32{1, 2, 3}, order)
	seen := map[uint32]bool{}
	for _, id := range order {
		assert.False(t, seen[id], "id %d appears twice in draw order after undo", id)
		seen[id] = true
	}
}

func TestApplyInsertTextContentAppendsBytes(t *testing.T) {
	tgt := newTarget()
	b := &bufBuilder{}
	b.add(protocol.OpUpsertText, 1, textPayload())
	_, err := Apply(tgt, b.build())
	assert.NoError(t, err)

	insert := &bufBuilder{}
	ip := append(i32b(5), u32b(1)...)
	ip = append(ip, []byte("!")...)
	insert.add(protocol.OpInsertTextContent, 1, ip)
	_, err = Apply(tgt, insert.build())
	assert.NoError(t, err)

	rec := tgt.Entities.TextRecord(1)
	assert.Equal(t, "hello!", string(rec.Content.Bytes))
}

func i32b(v int32) []byte { return u32b(uint32(v)) }
