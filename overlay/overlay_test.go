// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overlay

import (
	"testing"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/math32"
	"github.com/stretchr/testify/assert"
)

func TestSelectionOutlineRectIsClosedPolygon(t *testing.T) {
	st := entity.NewStore()
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 20)}, entity.DefaultAttrs())

	s := SelectionOutline(st, []uint32{id}, 1, 1)
	assert.Len(t, s.Primitives, 1)
	assert.Equal(t, Polygon, s.Primitives[0].Kind)
	assert.Equal(t, uint32(4), s.Primitives[0].Count)
	assert.Equal(t, 8, s.FloatCount())
}

func TestSelectionOutlineLineIsSegment(t *testing.T) {
	st := entity.NewStore()
	id := st.AllocID()
	st.UpsertLine(id, entity.LineRecord{A: math32.Vec2(0, 0), B: math32.Vec2(5, 5)}, entity.DefaultAttrs())

	s := SelectionOutline(st, []uint32{id}, 1, 1)
	assert.Len(t, s.Primitives, 1)
	assert.Equal(t, Segment, s.Primitives[0].Kind)
	assert.Equal(t, uint32(2), s.Primitives[0].Count)
}

func TestSelectionHandlesRectProducesFourResizeCorners(t *testing.T) {
	st := entity.NewStore()
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	s := SelectionHandles(st, id)
	assert.Len(t, s.Primitives, 4)
	for _, p := range s.Primitives {
		assert.Equal(t, Point, p.Kind)
		assert.Equal(t, HandleResize, p.Flags)
	}
}

func TestSelectionHandlesLineProducesTwoVertexHandles(t *testing.T) {
	st := entity.NewStore()
	id := st.AllocID()
	st.UpsertLine(id, entity.LineRecord{A: math32.Vec2(0, 0), B: math32.Vec2(5, 5)}, entity.DefaultAttrs())

	s := SelectionHandles(st, id)
	assert.Len(t, s.Primitives, 2)
	for _, p := range s.Primitives {
		assert.Equal(t, HandleVertex, p.Flags)
	}
}

func TestSnapFeedbackAddsAlignmentSegmentOnAxisMatch(t *testing.T) {
	s := SnapFeedback(math32.Vec2(10, 10), []math32.Vector2{{X: 10, Y: 40}, {X: 99, Y: 99}})
	// one Point per candidate, plus one Segment for the axis-aligned candidate
	assert.Len(t, s.Primitives, 3)
	assert.Equal(t, Point, s.Primitives[0].Kind)
	assert.Equal(t, Segment, s.Primitives[1].Kind)
	assert.Equal(t, Point, s.Primitives[2].Kind)
}
