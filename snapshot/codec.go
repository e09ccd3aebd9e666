// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snapshot implements the deterministic document serialization
// codec and content-addressed document digest (spec.md §4.2): a
// self-describing little-endian byte block covering layers, every entity
// kind's records (including style overrides), the shared point pool
// indirectly via each polyline's own point list, text records, the
// draw-order and selection id lists, the next-id counter, and history.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/history"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/text"
)

// Document is everything a snapshot captures (spec.md §4.2, §4.5: "history
// is preserved across snapshot round-trips").
type Document struct {
	Layers    *layer.Store
	Entities  *entity.Store
	Selection []uint32
	History   *history.Engine
}

// Save serializes d into a versioned byte block.
func Save(d Document) []byte {
	w := &writer{buf: &bytes.Buffer{}}
	w.u32(protocol.SnapshotMagic)
	w.u32(protocol.SnapshotVersion)
	w.u32(d.Entities.NextID())

	layers := d.Layers.All()
	w.u32(uint32(len(layers)))
	for _, l := range layers {
		writeLayer(w, l)
	}

	order := d.Entities.DrawOrder()
	w.u32(uint32(len(order)))
	for _, id := range order {
		st, _ := d.Entities.GetState(id)
		writeState(w, st)
	}

	w.u32(uint32(len(d.Selection)))
	for _, id := range d.Selection {
		w.u32(id)
	}

	entries := d.History.Entries()
	w.u32(uint32(len(entries)))
	w.i32(int32(d.History.Cursor()))
	for _, e := range entries {
		writeEntry(w, e)
	}

	return w.buf.Bytes()
}

// Load deserializes a byte block produced by Save. It fails on truncation,
// a bad magic, or an unsupported version (spec.md §4.2).
func Load(data []byte) (Document, error) {
	r := &reader{r: bytes.NewReader(data)}
	magic := r.u32()
	if r.err == nil && magic != protocol.SnapshotMagic {
		return Document{}, fmt.Errorf("snapshot: bad magic %#x", magic)
	}
	version := r.u32()
	if r.err == nil && version != protocol.SnapshotVersion {
		return Document{}, fmt.Errorf("snapshot: unsupported version %d", version)
	}
	nextID := r.u32()

	ls := layer.NewEmptyStore()
	layerCount := r.u32()
	for i := uint32(0); i < layerCount && r.err == nil; i++ {
		ls.Restore(readLayer(r))
	}

	st := entity.NewStore()
	entityCount := r.u32()
	var order []uint32
	for i := uint32(0); i < entityCount && r.err == nil; i++ {
		s := readState(r)
		if r.err != nil {
			break
		}
		st.RestoreState(s)
		order = append(order, s.ID)
	}
	st.RestoreDrawOrder(order)
	st.ReserveID(nextID)

	selCount := r.u32()
	selection := make([]uint32, 0, selCount)
	for i := uint32(0); i < selCount && r.err == nil; i++ {
		selection = append(selection, r.u32())
	}

	entryCount := r.u32()
	cursor := int(r.i32())
	entries := make([]history.Entry, 0, entryCount)
	for i := uint32(0); i < entryCount && r.err == nil; i++ {
		entries = append(entries, readEntry(r))
	}
	h := history.NewEngine()
	h.Restore(entries, cursor)

	if r.err != nil {
		return Document{}, fmt.Errorf("snapshot: truncated or malformed block: %w", r.err)
	}
	return Document{Layers: ls, Entities: st, Selection: selection, History: h}, nil
}

func writeLayer(w *writer, l layer.Record) {
	w.u32(l.ID)
	w.str(l.Name)
	w.u32(uint32(l.Flags))
	w.i32(int32(l.Order))
	writeColor(w, l.Defaults.Stroke)
	w.boolean(l.Defaults.StrokeEnabled)
	writeColor(w, l.Defaults.Fill)
	w.boolean(l.Defaults.FillEnabled)
	writeColor(w, l.Defaults.TextColor)
	writeColor(w, l.Defaults.TextBackground)
}

func readLayer(r *reader) layer.Record {
	var l layer.Record
	l.ID = r.u32()
	l.Name = r.str()
	l.Flags = protocol.LayerFlags(r.u32())
	l.Order = int(r.i32())
	l.Defaults.Stroke = readColor(r)
	l.Defaults.StrokeEnabled = r.boolean()
	l.Defaults.Fill = readColor(r)
	l.Defaults.FillEnabled = r.boolean()
	l.Defaults.TextColor = readColor(r)
	l.Defaults.TextBackground = readColor(r)
	return l
}

func writeColor(w *writer, c colors.RGBA) {
	w.f32(c.R)
	w.f32(c.G)
	w.f32(c.B)
	w.f32(c.A)
}

func readColor(r *reader) colors.RGBA {
	return colors.RGBA{R: r.f32(), G: r.f32(), B: r.f32(), A: r.f32()}
}

func writeVec2(w *writer, v math32.Vector2) { w.f32(v.X); w.f32(v.Y) }
func readVec2(r *reader) math32.Vector2     { return math32.Vec2(r.f32(), r.f32()) }

func writeStroke(w *writer, s entity.StrokeAttrs) {
	writeColor(w, s.Stroke)
	w.boolean(s.StrokeEnabled)
	w.f32(s.StrokeWidth)
}

func readStroke(r *reader) entity.StrokeAttrs {
	return entity.StrokeAttrs{Stroke: readColor(r), StrokeEnabled: r.boolean(), StrokeWidth: r.f32()}
}

func writeAttrs(w *writer, a entity.Attrs) {
	w.u32(a.LayerID)
	w.u32(uint32(a.Flags))
}

func readAttrs(r *reader) entity.Attrs {
	return entity.Attrs{LayerID: r.u32(), Flags: protocol.EntityFlags(r.u32())}
}

func writeStyleOverride(w *writer, s *entity.StyleOverride) {
	if s == nil {
		w.boolean(false)
		return
	}
	w.boolean(true)
	for _, t := range []entity.OverrideTarget{entity.TargetStroke, entity.TargetFill, entity.TargetTextColor, entity.TargetTextBackground} {
		c := s.Get(t)
		writeColor(w, c.Color)
		w.boolean(c.Enabled)
	}
}

func readStyleOverride(r *reader) *entity.StyleOverride {
	if !r.boolean() {
		return nil
	}
	s := &entity.StyleOverride{}
	for _, t := range []entity.OverrideTarget{entity.TargetStroke, entity.TargetFill, entity.TargetTextColor, entity.TargetTextBackground} {
		col := readColor(r)
		en := r.boolean()
		s.Set(t, entity.ColorOverride{Color: col, Enabled: en})
	}
	return s
}

func writeState(w *writer, s entity.State) {
	w.u32(s.ID)
	w.u8(uint8(s.Kind))
	writeAttrs(w, s.Attrs)
	switch s.Kind {
	case entity.Rect:
		writeVec2(w, s.Rect.Pos)
		writeVec2(w, s.Rect.Size)
		writeColor(w, s.Rect.Fill)
		writeStroke(w, s.Rect.StrokeAttrs)
	case entity.Line:
		writeVec2(w, s.Line.A)
		writeVec2(w, s.Line.B)
		writeStroke(w, s.Line.StrokeAttrs)
	case entity.Arrow:
		writeVec2(w, s.Arrow.A)
		writeVec2(w, s.Arrow.B)
		w.f32(s.Arrow.HeadSize)
		writeStroke(w, s.Arrow.StrokeAttrs)
	case entity.Polyline:
		w.u32(uint32(len(s.Polyline.Points)))
		for _, p := range s.Polyline.Points {
			writeVec2(w, p)
		}
		writeStroke(w, s.Polyline.StrokeAttrs)
	case entity.Circle:
		writeVec2(w, s.Circle.Center)
		w.f32(s.Circle.RX)
		w.f32(s.Circle.RY)
		w.f32(s.Circle.Rotation)
		w.f32(s.Circle.Scale)
		writeColor(w, s.Circle.Fill)
		writeStroke(w, s.Circle.StrokeAttrs)
	case entity.Polygon:
		writeVec2(w, s.Polygon.Center)
		w.f32(s.Polygon.RX)
		w.f32(s.Polygon.RY)
		w.f32(s.Polygon.Rotation)
		w.f32(s.Polygon.Scale)
		w.u32(s.Polygon.Sides)
		writeColor(w, s.Polygon.Fill)
		writeStroke(w, s.Polygon.StrokeAttrs)
	case protocol.KindText:
		writeText(w, s.Text)
	}
	writeStyleOverride(w, s.Style)
}

func readState(r *reader) entity.State {
	var s entity.State
	s.ID = r.u32()
	s.Kind = protocol.EntityKind(r.u8())
	s.Attrs = readAttrs(r)
	switch s.Kind {
	case entity.Rect:
		s.Rect.Pos = readVec2(r)
		s.Rect.Size = readVec2(r)
		s.Rect.Fill = readColor(r)
		s.Rect.StrokeAttrs = readStroke(r)
	case entity.Line:
		s.Line.A = readVec2(r)
		s.Line.B = readVec2(r)
		s.Line.StrokeAttrs = readStroke(r)
	case entity.Arrow:
		s.Arrow.A = readVec2(r)
		s.Arrow.B = readVec2(r)
		s.Arrow.HeadSize = r.f32()
		s.Arrow.StrokeAttrs = readStroke(r)
	case entity.Polyline:
		n := r.u32()
		pts := make([]math32.Vector2, n)
		for i := range pts {
			pts[i] = readVec2(r)
		}
		s.Polyline.Points = pts
		s.Polyline.StrokeAttrs = readStroke(r)
	case entity.Circle:
		s.Circle.Center = readVec2(r)
		s.Circle.RX = r.f32()
		s.Circle.RY = r.f32()
		s.Circle.Rotation = r.f32()
		s.Circle.Scale = r.f32()
		s.Circle.Fill = readColor(r)
		s.Circle.StrokeAttrs = readStroke(r)
	case entity.Polygon:
		s.Polygon.Center = readVec2(r)
		s.Polygon.RX = r.f32()
		s.Polygon.RY = r.f32()
		s.Polygon.Rotation = r.f32()
		s.Polygon.Scale = r.f32()
		s.Polygon.Sides = r.u32()
		s.Polygon.Fill = readColor(r)
		s.Polygon.StrokeAttrs = readStroke(r)
	case protocol.KindText:
		s.Text = readText(r)
	}
	s.Style = readStyleOverride(r)
	return s
}

func writeText(w *writer, t *text.Record) {
	if t == nil {
		w.boolean(false)
		return
	}
	w.boolean(true)
	writeVec2(w, t.Pos)
	w.f32(t.Rotation)
	w.u8(uint8(t.Mode))
	w.u8(uint8(t.Align))
	w.f32(t.ConstraintWidth)
	w.bytesField(t.Content.Bytes)
	w.u32(uint32(len(t.Content.Runs)))
	for _, run := range t.Content.Runs {
		w.i32(int32(run.Start))
		w.i32(int32(run.Length))
		w.u32(run.FontID)
		w.f32(run.Size)
		writeColor(w, run.Color)
		w.u8(uint8(run.Flags))
	}
	if t.Caret == nil {
		w.boolean(false)
	} else {
		w.boolean(true)
		w.i32(int32(t.Caret.Pos))
		w.i32(int32(t.Caret.Anchor))
		w.boolean(t.Caret.HasSelection)
	}
}

func readText(r *reader) *text.Record {
	if !r.boolean() {
		return nil
	}
	t := &text.Record{}
	t.Pos = readVec2(r)
	t.Rotation = r.f32()
	t.Mode = text.BoxMode(r.u8())
	t.Align = text.Align(r.u8())
	t.ConstraintWidth = r.f32()
	t.Content.Bytes = r.bytesField()
	n := r.u32()
	t.Content.Runs = make([]text.Run, n)
	for i := range t.Content.Runs {
		t.Content.Runs[i] = text.Run{
			Start:  int(r.i32()),
			Length: int(r.i32()),
			FontID: r.u32(),
			Size:   r.f32(),
			Color:  readColor(r),
			Flags:  text.StyleFlags(r.u8()),
		}
	}
	if r.boolean() {
		t.Caret = &text.Caret{Pos: int(r.i32()), Anchor: int(r.i32()), HasSelection: r.boolean()}
	}
	t.MarkLayoutDirty()
	return t
}

func writeEntry(w *writer, e history.Entry) {
	w.u32(uint32(len(e.Deltas)))
	for _, d := range e.Deltas {
		writeDelta(w, d)
	}
}

func readEntry(r *reader) history.Entry {
	n := r.u32()
	e := history.Entry{Deltas: make([]history.Delta, n)}
	for i := range e.Deltas {
		e.Deltas[i] = readDelta(r)
	}
	return e
}

func writeDelta(w *writer, d history.Delta) {
	w.u8(uint8(d.Kind))
	switch d.Kind {
	case history.DeltaEntity:
		w.u32(d.EntityID)
		writeOptionalState(w, d.EntityBefore)
		writeOptionalState(w, d.EntityAfter)
	case history.DeltaDrawOrder:
		writeIDs(w, d.OrderBefore)
		writeIDs(w, d.OrderAfter)
	case history.DeltaSelection:
		writeIDs(w, d.SelectionBefore)
		writeIDs(w, d.SelectionAfter)
	case history.DeltaLayer, history.DeltaLayerDelete:
		writeOptionalLayer(w, d.LayerBefore)
		writeOptionalLayer(w, d.LayerAfter)
	}
}

func readDelta(r *reader) history.Delta {
	d := history.Delta{Kind: history.DeltaKind(r.u8())}
	switch d.Kind {
	case history.DeltaEntity:
		d.EntityID = r.u32()
		d.EntityBefore = readOptionalState(r)
		d.EntityAfter = readOptionalState(r)
	case history.DeltaDrawOrder:
		d.OrderBefore = readIDs(r)
		d.OrderAfter = readIDs(r)
	case history.DeltaSelection:
		d.SelectionBefore = readIDs(r)
		d.SelectionAfter = readIDs(r)
	case history.DeltaLayer, history.DeltaLayerDelete:
		d.LayerBefore = readOptionalLayer(r)
		d.LayerAfter = readOptionalLayer(r)
	}
	return d
}

func writeOptionalState(w *writer, s *entity.State) {
	if s == nil {
		w.boolean(false)
		return
	}
	w.boolean(true)
	writeState(w, *s)
}

func readOptionalState(r *reader) *entity.State {
	if !r.boolean() {
		return nil
	}
	s := readState(r)
	return &s
}

func writeOptionalLayer(w *writer, l *layer.Record) {
	if l == nil {
		w.boolean(false)
		return
	}
	w.boolean(true)
	writeLayer(w, *l)
}

func readOptionalLayer(r *reader) *layer.Record {
	if !r.boolean() {
		return nil
	}
	l := readLayer(r)
	return &l
}

func writeIDs(w *writer, ids []uint32) {
	w.u32(uint32(len(ids)))
	for _, id := range ids {
		w.u32(id)
	}
}

func readIDs(r *reader) []uint32 {
	n := r.u32()
	if n == 0 {
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.u32()
	}
	return out
}

// writer accumulates a snapshot block; a malformed write is impossible by
// construction (bytes.Buffer.Write never fails), so it carries no sticky
// error, unlike reader.
type writer struct{ buf *bytes.Buffer }

func (w *writer) u8(v uint8)   { w.buf.WriteByte(v) }
func (w *writer) u32(v uint32) { var b [4]byte; binary.LittleEndian.PutUint32(b[:], v); w.buf.Write(b[:]) }
func (w *writer) i32(v int32)  { w.u32(uint32(v)) }
func (w *writer) f32(v float32) { w.u32(math.Float32bits(v)) }
func (w *writer) boolean(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}
func (w *writer) str(s string) { w.bytesField([]byte(s)) }
func (w *writer) bytesField(b []byte) {
	w.u32(uint32(len(b)))
	w.buf.Write(b)
}

// reader decodes a snapshot block, accumulating the first error so callers
// can chain reads without checking after every field (sticky-error idiom,
// the same shape as bufio.Scanner's Err()).
type reader struct {
	r   *bytes.Reader
	err error
}

func (r *reader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.err = err
	}
	return b
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	var b [4]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		r.err = err
		return 0
	}
	return binary.LittleEndian.Uint32(b[:])
}

func (r *reader) i32() int32    { return int32(r.u32()) }
func (r *reader) f32() float32  { return math.Float32frombits(r.u32()) }
func (r *reader) boolean() bool { return r.u8() != 0 }

func (r *reader) bytesField() []byte {
	n := r.u32()
	if r.err != nil || n == 0 {
		return nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		r.err = err
		return nil
	}
	return b
}

func (r *reader) str() string { return string(r.bytesField()) }
