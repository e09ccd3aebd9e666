// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package text implements the engine's text subsystem at the
// layout/shaping-and-atlas contract level (spec.md §4.7): content and
// style runs, layout results, caret/selection navigation, and the glyph
// atlas. Font rasterization itself is an opaque external collaborator.
package text

import "cogentcore.org/cadcore/colors"

// StyleFlags is a bitmask of run-level style toggles.
type StyleFlags uint8

const (
	Bold StyleFlags = 1 << iota
	Italic
	Underline
	Strike
)

// Run is a contiguous byte range of content sharing one style, keyed by
// byte offsets into the owning Content (spec.md §3, §4.7).
type Run struct {
	Start   int
	Length  int
	FontID  uint32
	Size    float32
	Color   colors.RGBA
	Flags   StyleFlags
}

// End returns the exclusive end byte offset of the run.
func (r Run) End() int { return r.Start + r.Length }

// BoxMode controls how a text entity's width is determined.
type BoxMode uint8

const (
	AutoWidth BoxMode = iota
	FixedWidth
)

// Align is horizontal text alignment within the constraint box.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)
