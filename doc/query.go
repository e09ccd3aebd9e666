// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/pick"
	"cogentcore.org/cadcore/protocol"
)

// Pick returns the topmost eligible entity under pt, within tolerance
// (spec.md §4.3).
func (d *Document) Pick(pt math32.Vector2, tolerance float32) (uint32, bool) {
	d.pick.EnsureFresh(d.Entities)
	return d.pick.Pick(d.Entities, d.Layers, pt, tolerance)
}

// PickEx extends Pick with handle precedence against the current
// selection (spec.md §4.3, §4.4).
func (d *Document) PickEx(pt math32.Vector2, tolerance, handleSize float32) (pick.HandleHit, bool) {
	d.pick.EnsureFresh(d.Entities)
	return d.pick.PickEx(d.Entities, d.Layers, pt, tolerance, handleSize, d.selection)
}

// QueryArea returns every entity whose cached AABB overlaps box,
// irrespective of visibility/lock (spec.md §4.3).
func (d *Document) QueryArea(box math32.Box2) []uint32 {
	d.pick.EnsureFresh(d.Entities)
	return d.pick.QueryArea(d.Entities, box)
}

// QueryMarquee returns eligible entities contained in or crossing box,
// per mode (spec.md §4.3).
func (d *Document) QueryMarquee(box math32.Box2, mode protocol.MarqueeMode) []uint32 {
	d.pick.EnsureFresh(d.Entities)
	return d.pick.QueryMarquee(d.Entities, d.Layers, box, mode)
}

// GetEntityAABB returns the cached world-space bounding box of id.
func (d *Document) GetEntityAABB(id uint32) (math32.Box2, bool) {
	d.pick.EnsureFresh(d.Entities)
	return d.pick.GetEntityAABB(id)
}

// GetSelectionBounds returns the union bounding box of the current
// selection.
func (d *Document) GetSelectionBounds() (math32.Box2, bool) {
	d.pick.EnsureFresh(d.Entities)
	return d.pick.GetSelectionBounds(d.selection)
}
