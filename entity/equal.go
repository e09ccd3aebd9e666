// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/text"
)

// StatesEqual reports whether two entity states are identical in every
// field relevant to generation bumping (spec.md §9 Open Question 1:
// "bump only on effective change"). Ids are not compared, since callers
// only use this to compare the before/after of a single id's upsert.
func StatesEqual(a, b State) bool {
	if a.Kind != b.Kind || a.Attrs != b.Attrs {
		return false
	}
	if !equalStyleOverride(a.Style, b.Style) {
		return false
	}
	switch a.Kind {
	case Rect:
		return a.Rect == b.Rect
	case Line:
		return a.Line == b.Line
	case Arrow:
		return a.Arrow == b.Arrow
	case Circle:
		return a.Circle == b.Circle
	case Polygon:
		return a.Polygon == b.Polygon
	case Polyline:
		return equalPoints(a.Polyline, b.Polyline)
	case protocol.KindText:
		return equalText(a.Text, b.Text)
	}
	return true
}

func equalPoints(a, b PolylineRecord) bool {
	if a.StrokeAttrs != b.StrokeAttrs || len(a.Points) != len(b.Points) {
		return false
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			return false
		}
	}
	return true
}

func equalText(a, b *text.Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Pos != b.Pos || a.Rotation != b.Rotation || a.Mode != b.Mode ||
		a.Align != b.Align || a.ConstraintWidth != b.ConstraintWidth {
		return false
	}
	if string(a.Content.Bytes) != string(b.Content.Bytes) {
		return false
	}
	if len(a.Content.Runs) != len(b.Content.Runs) {
		return false
	}
	for i := range a.Content.Runs {
		if a.Content.Runs[i] != b.Content.Runs[i] {
			return false
		}
	}
	return true
}
