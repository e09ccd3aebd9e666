// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/overlay"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/tessellate"
)

// TessellationBuffers assembles the interleaved fill/stroke vertex
// buffers for every visible, live entity in draw order (spec.md §4.8).
func (d *Document) TessellationBuffers(tolerancePx float32) tessellate.Buffers {
	return tessellate.Build(d.Entities, d.Layers, tolerancePx, d.viewScale)
}

// SelectionOutline returns the overlay primitive stream outlining the
// current selection (spec.md §4.8).
func (d *Document) SelectionOutline(tolerancePx float32) overlay.Stream {
	return overlay.SelectionOutline(d.Entities, d.selection, tolerancePx, d.viewScale)
}

// SelectionHandles returns the overlay primitive stream for id's
// transform handles (vertex handles for line-like entities, resize
// corners otherwise).
func (d *Document) SelectionHandles(id uint32) overlay.Stream {
	return overlay.SelectionHandles(d.Entities, id)
}

// SnapFeedback returns the overlay primitive stream showing alignment
// guides from reference to any candidate it matches on an axis.
func (d *Document) SnapFeedback(reference math32.Vector2, candidates []math32.Vector2) overlay.Stream {
	return overlay.SnapFeedback(reference, candidates)
}

// ProtocolInfo returns the constant protocol compatibility record
// (spec.md §6): versions, ABI hash, and advertised feature flags.
func (d *Document) ProtocolInfo() protocol.Info { return protocol.BuildInfo() }
