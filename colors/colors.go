// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors provides the RGBA color representation shared by entity
// styles, layer defaults, and style overrides.
package colors

import "image/color"

// RGBA is a straight-alpha, float32-component color in [0,1], used for
// wire payloads and canonicalization (unlike image/color.RGBA, which is
// premultiplied 8-bit and loses precision across snapshot round-trips).
type RGBA struct {
	R, G, B, A float32
}

// FromRGBA8 builds an RGBA from 8-bit straight-alpha components.
func FromRGBA8(r, g, b, a uint8) RGBA {
	return RGBA{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// AsImageColor converts to a premultiplied image/color.RGBA for renderer
// handoff (the engine itself never renders pixels).
func (c RGBA) AsImageColor() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Equal reports whether two colors are exactly component-equal (used by
// no-op detection on re-upsert, not by the digest, which canonicalizes
// floats separately).
func (c RGBA) Equal(o RGBA) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B && c.A == o.A
}

// Transparent is the zero-value color: fully transparent black.
var Transparent = RGBA{}

// Black is opaque black, a common layer/style default.
var Black = RGBA{0, 0, 0, 1}

// White is opaque white.
var White = RGBA{1, 1, 1, 1}
