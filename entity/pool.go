// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import "cogentcore.org/cadcore/math32"

// pointPool is the shared, compacted backing array for polyline vertices
// (spec.md §3 invariant 3: "after any delete the pool is compacted and
// remaining polylines' offsets are rewritten").
type pointPool struct {
	points []math32.Vector2
}

// alloc appends pts to the pool and returns the resulting (offset, count).
func (p *pointPool) alloc(pts []math32.Vector2) (offset, count int) {
	offset = len(p.points)
	p.points = append(p.points, pts...)
	return offset, len(pts)
}

// slice returns the live point slice for (offset, count).
func (p *pointPool) slice(offset, count int) []math32.Vector2 {
	if offset < 0 || offset+count > len(p.points) {
		return nil
	}
	return p.points[offset : offset+count]
}

// replace overwrites the region [offset,offset+oldCount) with pts,
// compacting or growing the pool as needed, and returns the new
// (offset, count) plus the point-count delta so callers can rewrite the offsets
// of every other polyline that follows in the pool.
func (p *pointPool) replace(offset, oldCount int, pts []math32.Vector2) (newOffset, newCount, delta int) {
	tail := append([]math32.Vector2(nil), p.points[offset+oldCount:]...)
	p.points = append(p.points[:offset:offset], pts...)
	p.points = append(p.points, tail...)
	return offset, len(pts), len(pts) - oldCount
}

// remove deletes [offset,offset+count) from the pool, returning the
// negative delta to rewrite later offsets.
func (p *pointPool) remove(offset, count int) (delta int) {
	p.points = append(p.points[:offset:offset], p.points[offset+count:]...)
	return -count
}
