// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"encoding/binary"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
)

// Fixed payload strides for the shape upsert ops. A vec2 is 8 bytes, a
// color 16, a StrokeAttrs 24 (color + u32 enabled + f32 width), and
// Attrs 8 (layer id + flags) — see payload.go's cursor methods.
const (
	rectPayloadSize  = 8 + 8 + 16 + 24 + 8
	linePayloadSize  = 8 + 8 + 24 + 8
	arrowPayloadSize = 8 + 8 + 4 + 24 + 8
	circlePayloadSize = 8 + 4 + 4 + 4 + 4 + 16 + 24 + 8
	polygonPayloadSize = circlePayloadSize + 4
	polylineHeaderSize = 4 // point count
	polylineFixedSize  = 24 + 8
)

func opUpsertRect(t *Target, r record) error {
	if err := expectSize(r, rectPayloadSize); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	rec := entity.RectRecord{Pos: c.vec2(), Size: c.vec2(), Fill: c.color(), StrokeAttrs: c.stroke()}
	attrs := c.attrs()
	res := t.Entities.UpsertRect(r.id, rec, attrs)
	recordEntity(t, r.id, res, protocol.ChangeGeometry|protocol.ChangeStyle)
	return nil
}

func opUpsertLine(t *Target, r record) error {
	if err := expectSize(r, linePayloadSize); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	rec := entity.LineRecord{A: c.vec2(), B: c.vec2(), StrokeAttrs: c.stroke()}
	attrs := c.attrs()
	res := t.Entities.UpsertLine(r.id, rec, attrs)
	recordEntity(t, r.id, res, protocol.ChangeGeometry|protocol.ChangeStyle)
	return nil
}

func opUpsertArrow(t *Target, r record) error {
	if err := expectSize(r, arrowPayloadSize); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	rec := entity.ArrowRecord{A: c.vec2(), B: c.vec2(), HeadSize: c.f32(), StrokeAttrs: c.stroke()}
	attrs := c.attrs()
	res := t.Entities.UpsertArrow(r.id, rec, attrs)
	recordEntity(t, r.id, res, protocol.ChangeGeometry|protocol.ChangeStyle)
	return nil
}

func opUpsertCircle(t *Target, r record) error {
	if err := expectSize(r, circlePayloadSize); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	rec := entity.CircleRecord{
		Center: c.vec2(), RX: c.f32(), RY: c.f32(), Rotation: c.f32(), Scale: c.f32(),
		Fill: c.color(), StrokeAttrs: c.stroke(),
	}
	attrs := c.attrs()
	res := t.Entities.UpsertCircle(r.id, rec, attrs)
	recordEntity(t, r.id, res, protocol.ChangeGeometry|protocol.ChangeStyle)
	return nil
}

func opUpsertPolygon(t *Target, r record) error {
	if err := expectSize(r, polygonPayloadSize); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	rec := entity.PolygonRecord{
		Center: c.vec2(), RX: c.f32(), RY: c.f32(), Rotation: c.f32(), Scale: c.f32(),
	}
	rec.Fill = c.color()
	rec.StrokeAttrs = c.stroke()
	rec.Sides = c.u32()
	attrs := c.attrs()
	res := t.Entities.UpsertPolygon(r.id, rec, attrs)
	recordEntity(t, r.id, res, protocol.ChangeGeometry|protocol.ChangeStyle)
	return nil
}

func opUpsertPolyline(t *Target, r record) error {
	if len(r.payload) < polylineHeaderSize {
		return fail(protocol.InvalidPayloadSize, "polyline payload shorter than header")
	}
	n := binary.LittleEndian.Uint32(r.payload[0:4])
	want := polylineHeaderSize + 8*int(n) + polylineFixedSize
	if err := expectSize(r, want); err != nil {
		return err
	}
	c := &cursor{b: r.payload, pos: 4}
	pts := make([]math32.Vector2, n)
	for i := range pts {
		pts[i] = c.vec2()
	}
	stroke := c.stroke()
	attrs := c.attrs()
	res := t.Entities.UpsertPolyline(r.id, pts, stroke, attrs)
	recordEntity(t, r.id, res, protocol.ChangeGeometry|protocol.ChangeStyle)
	return nil
}
