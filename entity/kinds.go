// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package entity implements the entity store: per-kind record maps keyed
// by id, the id-to-kind map, the draw-order sequence, and per-entity
// attributes (spec.md §3, §4.1).
package entity

import (
	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/text"
)

// ID is a 32-bit non-zero entity identifier, allocated monotonically and
// never reused (spec.md §3).
type ID = uint32

// Kind re-exports protocol.EntityKind for convenience within this
// package's API.
type Kind = protocol.EntityKind

const (
	Rect     = protocol.KindRect
	Line     = protocol.KindLine
	Polyline = protocol.KindPolyline
	Circle   = protocol.KindCircle
	Polygon  = protocol.KindPolygon
	Arrow    = protocol.KindArrow
	Text     = protocol.KindText
)

// StrokeAttrs is the common stroke styling shared by every shape kind.
type StrokeAttrs struct {
	Stroke        colors.RGBA
	StrokeEnabled bool
	StrokeWidth   float32
}

// RectRecord is the Rect shape schema (spec.md §3).
type RectRecord struct {
	Pos, Size math32.Vector2
	Fill      colors.RGBA
	StrokeAttrs
}

// LineRecord is the Line shape schema.
type LineRecord struct {
	A, B math32.Vector2
	StrokeAttrs
}

// ArrowRecord is the Arrow shape schema (Line plus a head size).
type ArrowRecord struct {
	A, B     math32.Vector2
	HeadSize float32
	StrokeAttrs
}

// PolylineRecord is the Polyline shape schema. Points holds the entity's
// own copy of its vertices; the Store additionally mirrors them into a
// shared, compacted point pool for the wire format (spec.md §3 invariant
// 3).
type PolylineRecord struct {
	Points []math32.Vector2
	StrokeAttrs
}

// CircleRecord is the Circle (ellipse) shape schema.
type CircleRecord struct {
	Center         math32.Vector2
	RX, RY         float32
	Rotation       float32
	Scale          float32
	Fill           colors.RGBA
	StrokeAttrs
}

// PolygonRecord is the regular n-gon shape schema.
type PolygonRecord struct {
	Center         math32.Vector2
	RX, RY         float32
	Rotation       float32
	Scale          float32
	Sides          uint32
	Fill           colors.RGBA
	StrokeAttrs
}

// Attrs holds the per-entity attributes common to every kind (spec.md
// §3): layer assignment and the visible/locked flag bitmask. Draw order
// position is tracked separately by the Store.
type Attrs struct {
	LayerID uint32
	Flags   protocol.EntityFlags
}

// DefaultAttrs returns the default per-entity attributes: layer 1,
// visible and unlocked.
func DefaultAttrs() Attrs {
	return Attrs{LayerID: 1, Flags: protocol.FlagVisible}
}

// State is a complete, kind-tagged snapshot of one entity, used for
// history deltas, duplicate-on-drag, and snapshot round-trips. Exactly
// one of the kind-specific fields is meaningful, selected by Kind.
type State struct {
	ID    ID
	Kind  Kind
	Attrs Attrs

	Rect     RectRecord
	Line     LineRecord
	Polyline PolylineRecord
	Circle   CircleRecord
	Polygon  PolygonRecord
	Arrow    ArrowRecord
	Text     *text.Record

	Style *StyleOverride
}

// Clone returns a deep copy of the state suitable for independent
// mutation (history storage, duplicate-on-drag).
func (s State) Clone() State {
	out := s
	out.Polyline.Points = append([]math32.Vector2(nil), s.Polyline.Points...)
	if s.Text != nil {
		t := s.Text.Clone()
		out.Text = &t
	}
	if s.Style != nil {
		st := *s.Style
		out.Style = &st
	}
	return out
}
