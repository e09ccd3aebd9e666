// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tessellate

import "cogentcore.org/cadcore/math32"

// signedArea returns twice the signed area of the polygon (positive for
// counter-clockwise winding in a standard x-right, y-up frame).
func signedArea(pts []math32.Vector2) float32 {
	var a float32
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a
}

func isConvex(prev, cur, next math32.Vector2, ccw bool) bool {
	cross := cur.Sub(prev).Cross(next.Sub(cur))
	if ccw {
		return cross > 0
	}
	return cross < 0
}

func pointInTriangle(p, a, b, c math32.Vector2) bool {
	d1 := p.Sub(a).Cross(b.Sub(a))
	d2 := p.Sub(b).Cross(c.Sub(b))
	d3 := p.Sub(c).Cross(a.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// earClip triangulates a simple (non-self-intersecting) polygon, convex or
// concave, returning index triples into pts (spec.md §4.8: "Concave
// polygon fills use ear-clipping"). Degenerate input (fewer than 3 points,
// or a polygon the algorithm cannot reduce due to numerical degeneracy)
// yields as many triangles as could be safely extracted.
func earClip(pts []math32.Vector2) [][3]int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	ccw := signedArea(pts) > 0

	var tris [][3]int
	guard := 0
	for len(idx) > 3 && guard < n*n+8 {
		guard++
		earFound := false
		for i := 0; i < len(idx); i++ {
			prevI := idx[(i-1+len(idx))%len(idx)]
			curI := idx[i]
			nextI := idx[(i+1)%len(idx)]
			prev, cur, next := pts[prevI], pts[curI], pts[nextI]
			if !isConvex(prev, cur, next, ccw) {
				continue
			}
			clipped := true
			for _, other := range idx {
				if other == prevI || other == curI || other == nextI {
					continue
				}
				if pointInTriangle(pts[other], prev, cur, next) {
					clipped = false
					break
				}
			}
			if !clipped {
				continue
			}
			tris = append(tris, [3]int{prevI, curI, nextI})
			idx = append(idx[:i], idx[i+1:]...)
			earFound = true
			break
		}
		if !earFound {
			break // numerically degenerate remainder; stop rather than loop forever
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}
