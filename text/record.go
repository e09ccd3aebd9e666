// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import "cogentcore.org/cadcore/math32"

// Record is the full per-entity text state: placement, box sizing,
// content, caret, and derived layout (spec.md §3).
type Record struct {
	Pos             math32.Vector2
	Rotation        float32
	Mode            BoxMode
	Align           Align
	ConstraintWidth float32
	Content         Content
	Caret           *Caret // nil if no caret/selection has ever been set
	Layout          Layout
	layoutDirty     bool
}

// NewRecord returns a Record with empty content and a dirty layout.
func NewRecord(pos math32.Vector2, mode BoxMode, align Align, constraintWidth float32, def Run) Record {
	return Record{
		Pos:             pos,
		Mode:            mode,
		Align:           align,
		ConstraintWidth: constraintWidth,
		Content:         NewContent(def),
		layoutDirty:     true,
	}
}

// MarkLayoutDirty flags the Record's derived layout as stale.
func (r *Record) MarkLayoutDirty() { r.layoutDirty = true }

// LayoutDirty reports whether the layout needs recomputation.
func (r *Record) LayoutDirty() bool { return r.layoutDirty }

// RecomputeLayout rebuilds Layout from Content under the Record's box
// mode and constraint, and clears the dirty bit (spec.md §5: lazy cache
// rebuilt on demand in a read context). Align is passed to LayoutText but
// does not move any glyph; see LayoutText.
func (r *Record) RecomputeLayout(metrics Metrics) {
	r.Layout = LayoutText(&r.Content, LayoutOptions{
		Mode:            r.Mode,
		ConstraintWidth: r.ConstraintWidth,
		Align:           r.Align,
		Metrics:         metrics,
	})
	r.layoutDirty = false
}

// EnsureCaret lazily allocates the caret state on first use.
func (r *Record) EnsureCaret() *Caret {
	if r.Caret == nil {
		r.Caret = &Caret{}
	}
	return r.Caret
}

// Clone returns a deep copy, used for history snapshots and
// duplicate-on-drag (spec.md §4.4, §4.5).
func (r *Record) Clone() Record {
	out := *r
	out.Content.Bytes = append([]byte(nil), r.Content.Bytes...)
	out.Content.Runs = append([]Run(nil), r.Content.Runs...)
	out.Layout.Glyphs = append([]Glyph(nil), r.Layout.Glyphs...)
	out.Layout.Lines = append([]Line(nil), r.Layout.Lines...)
	if r.Caret != nil {
		c := *r.Caret
		out.Caret = &c
	}
	return out
}
