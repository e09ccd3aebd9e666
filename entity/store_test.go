// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"testing"

	"cogentcore.org/cadcore/math32"
	"github.com/stretchr/testify/assert"
)

func TestUpsertRectCreatesAndBumpsGeneration(t *testing.T) {
	s := NewStore()
	id := s.AllocID()
	g0 := s.Generation()
	res := s.UpsertRect(id, RectRecord{Pos: math32.Vec2(1, 2), Size: math32.Vec2(10, 10)}, DefaultAttrs())
	assert.True(t, res.Created)
	assert.True(t, res.Changed)
	assert.Greater(t, s.Generation(), g0)
	assert.True(t, s.Exists(id))
	k, _ := s.KindOf(id)
	assert.Equal(t, Rect, k)
}

func TestUpsertIdenticalRectDoesNotBumpGeneration(t *testing.T) {
	s := NewStore()
	id := s.AllocID()
	rec := RectRecord{Pos: math32.Vec2(1, 2), Size: math32.Vec2(10, 10)}
	s.UpsertRect(id, rec, DefaultAttrs())
	g1 := s.Generation()
	res := s.UpsertRect(id, rec, DefaultAttrs())
	assert.False(t, res.Changed)
	assert.Equal(t, g1, s.Generation())
}

func TestDeleteEntityIdempotent(t *testing.T) {
	s := NewStore()
	id := s.AllocID()
	s.UpsertRect(id, RectRecord{}, DefaultAttrs())
	g1 := s.Generation()
	res := s.DeleteEntity(id)
	assert.True(t, res.Changed)
	assert.False(t, s.Exists(id))

	g2 := s.Generation()
	res2 := s.DeleteEntity(id)
	assert.False(t, res2.Changed)
	assert.Equal(t, g2, s.Generation())
	assert.Greater(t, g2, g1)
}

func TestPolylineCountBelowTwoDeletes(t *testing.T) {
	s := NewStore()
	id := s.AllocID()
	res := s.UpsertPolyline(id, []math32.Vector2{math32.Vec2(0, 0), math32.Vec2(1, 1), math32.Vec2(2, 2)}, StrokeAttrs{}, DefaultAttrs())
	assert.True(t, res.Created)
	assert.True(t, s.Exists(id))

	res2 := s.UpsertPolyline(id, []math32.Vector2{math32.Vec2(0, 0)}, StrokeAttrs{}, DefaultAttrs())
	assert.True(t, res2.Changed)
	assert.False(t, s.Exists(id))
}

func TestPolylinePoolCompactionKeepsOffsetsValid(t *testing.T) {
	s := NewStore()
	id1 := s.AllocID()
	id2 := s.AllocID()
	s.UpsertPolyline(id1, []math32.Vector2{math32.Vec2(0, 0), math32.Vec2(1, 0), math32.Vec2(2, 0)}, StrokeAttrs{}, DefaultAttrs())
	s.UpsertPolyline(id2, []math32.Vector2{math32.Vec2(5, 0), math32.Vec2(6, 0)}, StrokeAttrs{}, DefaultAttrs())

	s.DeleteEntity(id1)

	st2, ok := s.GetState(id2)
	assert.True(t, ok)
	assert.Equal(t, []math32.Vector2{math32.Vec2(5, 0), math32.Vec2(6, 0)}, st2.Polyline.Points)
}

func TestSetDrawOrderPartialListAppendsOmittedAtBack(t *testing.T) {
	s := NewStore()
	var ids []ID
	for i := 0; i < 4; i++ {
		id := s.AllocID()
		s.UpsertRect(id, RectRecord{}, DefaultAttrs())
		ids = append(ids, id)
	}
	// supply order for only ids[2], ids[0]; ids[1], ids[3] should follow,
	// in their previous relative order
	s.SetDrawOrder([]ID{ids[2], ids[0]})
	got := s.DrawOrder()
	assert.Equal(t, []ID{ids[2], ids[0], ids[1], ids[3]}, got)
}

func TestDrawOrderIsPermutationOfLiveIDs(t *testing.T) {
	s := NewStore()
	var ids []ID
	for i := 0; i < 5; i++ {
		id := s.AllocID()
		s.UpsertRect(id, RectRecord{}, DefaultAttrs())
		ids = append(ids, id)
	}
	s.DeleteEntity(ids[2])
	order := s.DrawOrder()
	assert.Equal(t, s.LiveCount(), len(order))
	for _, id := range order {
		assert.True(t, s.Exists(id))
	}
}

func TestClearAllKeepsLayersReturnsRemoved(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		id := s.AllocID()
		s.UpsertRect(id, RectRecord{}, DefaultAttrs())
	}
	removed := s.ClearAll()
	assert.Len(t, removed, 3)
	assert.Equal(t, 0, s.LiveCount())
}
