// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"encoding/binary"
	"math"

	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
)

// cursor decodes a fixed-layout payload left to right. Callers validate
// the total payload length against a known stride before constructing
// one, so cursor itself never needs bounds checks or a sticky error.
type cursor struct {
	b   []byte
	pos int
}

func (c *cursor) u32() uint32 {
	v := binary.LittleEndian.Uint32(c.b[c.pos : c.pos+4])
	c.pos += 4
	return v
}
func (c *cursor) i32() int32     { return int32(c.u32()) }
func (c *cursor) f32() float32   { return math.Float32frombits(c.u32()) }
func (c *cursor) u8flag() bool   { return c.u32() != 0 }
func (c *cursor) vec2() math32.Vector2 {
	x := c.f32()
	y := c.f32()
	return math32.Vec2(x, y)
}
func (c *cursor) color() colors.RGBA {
	return colors.RGBA{R: c.f32(), G: c.f32(), B: c.f32(), A: c.f32()}
}
func (c *cursor) stroke() entity.StrokeAttrs {
	col := c.color()
	en := c.u8flag()
	w := c.f32()
	return entity.StrokeAttrs{Stroke: col, StrokeEnabled: en, StrokeWidth: w}
}
func (c *cursor) attrs() entity.Attrs {
	layerID := c.u32()
	flags := c.u32()
	return entity.Attrs{LayerID: layerID, Flags: protocol.EntityFlags(flags)}
}
func (c *cursor) bytesN(n int) []byte {
	out := append([]byte(nil), c.b[c.pos:c.pos+n]...)
	c.pos += n
	return out
}

// boolU32 encodes a bool as a 4-byte little-endian 0/1, matching how
// cursor.u8flag decodes it. Payload encoders are symmetric test helpers
// only (real producers live on the other side of the process boundary);
// keeping the encode/decode pair here documents the exact wire shape.
func boolU32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
