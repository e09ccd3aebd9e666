// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/math/fixed"
)

// Glyph is one shaped glyph placement in a Layout (spec.md §4.7).
type Glyph struct {
	GlyphID uint32
	FontID  uint32
	PenX    fixed.Int26_6
	PenY    fixed.Int26_6
	Advance fixed.Int26_6
	W, H    float32
}

// Line describes one laid-out line of text by byte range.
type Line struct {
	ByteStart int
	ByteEnd   int
	BaselineY float32
	Ascent    float32
	Height    float32
}

// Layout is the derived layout of a text entity: overall bounds, glyph
// placements, and the line table (spec.md §3, §4.7).
type Layout struct {
	Width, Height  float32
	MinX, MinY     float32
	MaxX, MaxY     float32
	Glyphs         []Glyph
	Lines          []Line
}

// Metrics abstracts the opaque font rasterization back-end's per-glyph
// measurements; the engine never rasterizes, only positions (spec.md §1).
type Metrics interface {
	// Advance returns the horizontal advance of the glyph for r at size,
	// in the same units as Layout's Width/Height.
	Advance(fontID uint32, r rune, size float32) float32
	// LineHeight returns the line height for fontID at size.
	LineHeight(fontID uint32, size float32) float32
	// Ascent returns the ascent for fontID at size.
	Ascent(fontID uint32, size float32) float32
	// GlyphIndex maps a rune to a glyph id for fontID (0 if unmapped).
	GlyphIndex(fontID uint32, r rune) uint32
}

// DefaultMetrics is a deterministic, rasterizer-free Metrics used when a
// text entity has no associated font back-end wired up (e.g. headless
// digest/snapshot tests); every rune advances by a fraction of its size.
type DefaultMetrics struct{}

func (DefaultMetrics) Advance(_ uint32, r rune, size float32) float32 {
	if r == ' ' {
		return size * 0.3
	}
	return size * 0.55
}
func (DefaultMetrics) LineHeight(_ uint32, size float32) float32 { return size * 1.2 }
func (DefaultMetrics) Ascent(_ uint32, size float32) float32     { return size * 0.8 }
func (DefaultMetrics) GlyphIndex(_ uint32, r rune) uint32        { return uint32(r) }

// LayoutOptions parameterizes LayoutText.
type LayoutOptions struct {
	Mode            BoxMode
	ConstraintWidth float32
	Align           Align
	Metrics         Metrics
}

// LayoutText computes the Layout for content under the given options.
// Explicit '\n' always breaks a line; FixedWidth mode additionally
// word-wraps at whitespace boundaries; AutoWidth never wraps (spec.md
// §4.7). opt.Align is not applied: every line starts at pen x 0.
func LayoutText(c *Content, opt LayoutOptions) Layout {
	metrics := opt.Metrics
	if metrics == nil {
		metrics = DefaultMetrics{}
	}
	var out Layout
	penY := float32(0)
	lineStart := 0
	var pending []Glyph
	pendingWidth := float32(0)
	lastBreak := -1       // byte offset of last whitespace break opportunity in current pending run
	lastBreakWidth := float32(0)
	lastBreakGlyphCount := 0

	flushLine := func(end int, lineWidth float32, glyphs []Glyph) {
		maxAscent, maxHeight := float32(0), float32(0)
		for i := range glyphs {
			g := &glyphs[i]
			fontID := g.FontID
			sz := runAt(c, g)
			a := metrics.Ascent(fontID, sz)
			h := metrics.LineHeight(fontID, sz)
			if a > maxAscent {
				maxAscent = a
			}
			if h > maxHeight {
				maxHeight = h
			}
		}
		if maxHeight == 0 {
			maxHeight = 12
			maxAscent = 9.6
		}
		baseline := penY + maxAscent
		for i := range glyphs {
			glyphs[i].PenY = fixed.I(int(baseline))
		}
		out.Glyphs = append(out.Glyphs, glyphs...)
		out.Lines = append(out.Lines, Line{
			ByteStart: lineStart,
			ByteEnd:   end,
			BaselineY: baseline,
			Ascent:    maxAscent,
			Height:    maxHeight,
		})
		if lineWidth > out.Width {
			out.Width = lineWidth
		}
		penY += maxHeight
		lineStart = end
	}

	penX := float32(0)
	i := 0
	for i < len(c.Bytes) {
		r, sz := utf8.DecodeRune(c.Bytes[i:])
		if r == '\n' {
			flushLine(i, pendingWidth, pending)
			pending = nil
			pendingWidth = 0
			penX = 0
			lastBreak = -1
			i += sz
			lineStart = i
			continue
		}
		fontID, fsize := runStyleAt(c, i)
		adv := metrics.Advance(fontID, r, fsize)
		g := Glyph{
			GlyphID: metrics.GlyphIndex(fontID, r),
			FontID:  fontID,
			PenX:    fixed.I(int(penX)),
			Advance: fixed.I(int(adv)),
			W:       adv,
			H:       fsize,
		}
		next := penX + adv
		if opt.Mode == FixedWidth && opt.ConstraintWidth > 0 && next > opt.ConstraintWidth && len(pending) > 0 {
			if lastBreak >= 0 {
				// wrap at the last whitespace boundary
				wrapGlyphs := pending[:lastBreakGlyphCount]
				flushLine(lastBreak, lastBreakWidth, wrapGlyphs)
				rest := pending[lastBreakGlyphCount:]
				pending = nil
				pendingWidth = 0
				penX = 0
				for _, rg := range rest {
					rg.PenX = fixed.I(int(pendingWidth))
					pending = append(pending, rg)
					pendingWidth += rg.W
					penX += rg.W
				}
				lastBreak = -1
			} else {
				flushLine(i, pendingWidth, pending)
				pending = nil
				pendingWidth = 0
				penX = 0
			}
			g.PenX = fixed.I(int(penX))
		}
		pending = append(pending, g)
		pendingWidth += adv
		penX += adv
		if unicode.IsSpace(r) {
			lastBreak = i + sz
			lastBreakWidth = pendingWidth
			lastBreakGlyphCount = len(pending)
		}
		i += sz
	}
	flushLine(len(c.Bytes), pendingWidth, pending)
	out.MaxX, out.MaxY = out.Width, penY
	out.Height = penY
	return out
}

func runStyleAt(c *Content, pos int) (fontID uint32, size float32) {
	for _, r := range c.Runs {
		if r.Length > 0 && pos >= r.Start && pos < r.End() {
			return r.FontID, sizeOrDefault(r.Size)
		}
	}
	return 0, 14
}

func sizeOrDefault(s float32) float32 {
	if s <= 0 {
		return 14
	}
	return s
}

func runAt(c *Content, g *Glyph) float32 { return g.H }
