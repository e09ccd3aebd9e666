// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import "image"

// GlyphKey identifies one (font, glyph, style) combination in the atlas.
type GlyphKey struct {
	FontID  uint32
	GlyphID uint32
	Size    float32
	Flags   StyleFlags
}

// GlyphEntry is what GetGlyph returns: a normalized UV rect within the
// atlas texture plus placement metrics (spec.md §4.7).
type GlyphEntry struct {
	U0, V0, U1, V1 float32
	AtlasW, AtlasH int
	BearingX       float32
	BearingY       float32
	Advance        float32
}

// shelf is one horizontal packing row.
type shelf struct {
	y, height, nextX int
}

// Atlas is a shelf-packed glyph atlas. It owns no pixels itself (glyph
// rasterization is an external collaborator, spec.md §1); it only tracks
// placement rectangles, dirty state, and a monotonic version for the
// renderer to detect when to re-upload (spec.md §4.7, §5).
type Atlas struct {
	Width, Height int
	entries       map[GlyphKey]GlyphEntry
	shelves       []shelf
	dirty         bool
	version       uint64
}

// NewAtlas returns an empty atlas with the given initial dimensions.
func NewAtlas(w, h int) *Atlas {
	return &Atlas{Width: w, Height: h, entries: make(map[GlyphKey]GlyphEntry), dirty: true}
}

// GetGlyph returns the packed entry for key, rasterizing (via pack) a new
// shelf slot on first access. measure supplies the glyph's pixel size and
// placement metrics, as reported by the external rasterizer.
func (a *Atlas) GetGlyph(key GlyphKey, measure func() (w, h int, bearingX, bearingY, advance float32)) GlyphEntry {
	if e, ok := a.entries[key]; ok {
		return e
	}
	w, h, bx, by, adv := measure()
	x, y, ok := a.pack(w, h)
	if !ok {
		a.grow()
		x, y, _ = a.pack(w, h)
	}
	e := GlyphEntry{
		U0:       float32(x) / float32(a.Width),
		V0:       float32(y) / float32(a.Height),
		U1:       float32(x+w) / float32(a.Width),
		V1:       float32(y+h) / float32(a.Height),
		AtlasW:   a.Width,
		AtlasH:   a.Height,
		BearingX: bx,
		BearingY: by,
		Advance:  adv,
	}
	a.entries[key] = e
	a.dirty = true
	a.version++
	return e
}

// pack finds or opens a shelf row tall enough for h and wide enough for
// w, returning its top-left corner.
func (a *Atlas) pack(w, h int) (int, int, bool) {
	for i := range a.shelves {
		s := &a.shelves[i]
		if h <= s.height && s.nextX+w <= a.Width {
			x := s.nextX
			s.nextX += w
			return x, s.y, true
		}
	}
	y := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		y = last.y + last.height
	}
	if y+h > a.Height {
		return 0, 0, false
	}
	a.shelves = append(a.shelves, shelf{y: y, height: h, nextX: w})
	return 0, y, true
}

// grow doubles the atlas height and invalidates all existing entries,
// since normalized UVs depend on the texture dimensions.
func (a *Atlas) grow() {
	a.Height *= 2
	a.entries = make(map[GlyphKey]GlyphEntry)
	a.shelves = nil
	a.dirty = true
	a.version++
}

// Meta is the (width, height, version) tuple exported to the renderer;
// the pixel data pointer itself is owned by the external rasterizer and
// not modeled here (spec.md §1, §4.7).
type Meta struct {
	Width, Height int
	Version       uint64
}

// TakeDirty returns whether the atlas changed since the last call and
// clears the dirty bit (spec.md §5 lazy-cache dirty-bit pattern).
func (a *Atlas) TakeDirty() bool {
	d := a.dirty
	a.dirty = false
	return d
}

// CurrentMeta returns the atlas's current Meta without clearing dirty.
func (a *Atlas) CurrentMeta() Meta { return Meta{Width: a.Width, Height: a.Height, Version: a.version} }

// Bounds returns the atlas's pixel bounds, for renderer upload sizing.
func (a *Atlas) Bounds() image.Rectangle { return image.Rect(0, 0, a.Width, a.Height) }
