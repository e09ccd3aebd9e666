// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"

	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/layer"
)

// Digest computes the document's 128-bit content-addressed fingerprint
// (spec.md §4.2): a canonicalized fold over layers in id order, entities
// in draw order (kind tag, canonical floats, effective flags, layer id),
// style overrides in id order, and the draw-order id sequence. Two
// documents that load to the same state produce the same digest regardless
// of the mutation path taken to reach that state, since nothing
// path-dependent (history, generation counters) is folded in.
func Digest(ls *layer.Store, st *entity.Store) [16]byte {
	h := fnv.New128a()
	dw := &digestWriter{h: h}

	for _, l := range ls.All() {
		dw.u32(l.ID)
		dw.u32(uint32(l.Flags))
		dw.i32(int32(l.Order))
		dw.color(l.Defaults.Stroke)
		dw.boolean(l.Defaults.StrokeEnabled)
		dw.color(l.Defaults.Fill)
		dw.boolean(l.Defaults.FillEnabled)
		dw.color(l.Defaults.TextColor)
		dw.color(l.Defaults.TextBackground)
	}

	order := st.DrawOrder()
	for _, id := range order {
		s, ok := st.GetState(id)
		if !ok {
			continue
		}
		dw.u32(uint32(s.Kind))
		dw.u32(uint32(s.Attrs.Flags))
		dw.u32(s.Attrs.LayerID)
		dw.entityGeometry(s)
	}

	for _, id := range st.SortedLiveIDs() {
		ov := st.StyleOverride(id)
		if ov == nil {
			continue
		}
		dw.u32(id)
		for _, t := range []entity.OverrideTarget{entity.TargetStroke, entity.TargetFill, entity.TargetTextColor, entity.TargetTextBackground} {
			c := ov.Get(t)
			dw.color(c.Color)
			dw.boolean(c.Enabled)
		}
	}

	for _, id := range order {
		dw.u32(id)
	}

	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out
}

// canonicalFloatBits maps a float32 to a canonical bit pattern: -0.0 folds
// to +0.0, and every NaN payload folds to a single bit pattern, so digests
// are stable across float encodings whose bits differ but which denote the
// same value (spec.md §4.2).
func canonicalFloatBits(f float32) uint32 {
	if f == 0 {
		return 0
	}
	if math.IsNaN(float64(f)) {
		return 0x7fc00000
	}
	return math.Float32bits(f)
}

type digestWriter struct{ h hash.Hash }

func (d *digestWriter) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	d.h.Write(b[:])
}
func (d *digestWriter) i32(v int32)   { d.u32(uint32(v)) }
func (d *digestWriter) f32(v float32) { d.u32(canonicalFloatBits(v)) }
func (d *digestWriter) boolean(v bool) {
	if v {
		d.u32(1)
	} else {
		d.u32(0)
	}
}
func (d *digestWriter) color(c colors.RGBA) {
	d.f32(c.R)
	d.f32(c.G)
	d.f32(c.B)
	d.f32(c.A)
}
func (d *digestWriter) vec2(v [2]float32) {
	d.f32(v[0])
	d.f32(v[1])
}

func (d *digestWriter) entityGeometry(s entity.State) {
	switch s.Kind {
	case entity.Rect:
		d.vec2([2]float32{s.Rect.Pos.X, s.Rect.Pos.Y})
		d.vec2([2]float32{s.Rect.Size.X, s.Rect.Size.Y})
		d.color(s.Rect.Fill)
		d.strokeAttrs(s.Rect.StrokeAttrs)
	case entity.Line:
		d.vec2([2]float32{s.Line.A.X, s.Line.A.Y})
		d.vec2([2]float32{s.Line.B.X, s.Line.B.Y})
		d.strokeAttrs(s.Line.StrokeAttrs)
	case entity.Arrow:
		d.vec2([2]float32{s.Arrow.A.X, s.Arrow.A.Y})
		d.vec2([2]float32{s.Arrow.B.X, s.Arrow.B.Y})
		d.f32(s.Arrow.HeadSize)
		d.strokeAttrs(s.Arrow.StrokeAttrs)
	case entity.Polyline:
		d.u32(uint32(len(s.Polyline.Points)))
		for _, p := range s.Polyline.Points {
			d.vec2([2]float32{p.X, p.Y})
		}
		d.strokeAttrs(s.Polyline.StrokeAttrs)
	case entity.Circle:
		d.vec2([2]float32{s.Circle.Center.X, s.Circle.Center.Y})
		d.f32(s.Circle.RX)
		d.f32(s.Circle.RY)
		d.f32(s.Circle.Rotation)
		d.f32(s.Circle.Scale)
		d.color(s.Circle.Fill)
		d.strokeAttrs(s.Circle.StrokeAttrs)
	case entity.Polygon:
		d.vec2([2]float32{s.Polygon.Center.X, s.Polygon.Center.Y})
		d.f32(s.Polygon.RX)
		d.f32(s.Polygon.RY)
		d.f32(s.Polygon.Rotation)
		d.f32(s.Polygon.Scale)
		d.u32(s.Polygon.Sides)
		d.color(s.Polygon.Fill)
		d.strokeAttrs(s.Polygon.StrokeAttrs)
	case entity.Text:
		if s.Text == nil {
			return
		}
		d.vec2([2]float32{s.Text.Pos.X, s.Text.Pos.Y})
		d.f32(s.Text.Rotation)
		d.u32(uint32(s.Text.Mode))
		d.u32(uint32(s.Text.Align))
		d.f32(s.Text.ConstraintWidth)
		d.h.Write(s.Text.Content.Bytes)
		for _, r := range s.Text.Content.Runs {
			d.i32(int32(r.Start))
			d.i32(int32(r.Length))
			d.u32(r.FontID)
			d.f32(r.Size)
			d.color(r.Color)
			d.u32(uint32(r.Flags))
		}
	}
}

func (d *digestWriter) strokeAttrs(s entity.StrokeAttrs) {
	d.color(s.Stroke)
	d.boolean(s.StrokeEnabled)
	d.f32(s.StrokeWidth)
}
