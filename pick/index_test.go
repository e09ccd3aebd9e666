// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pick

import (
	"testing"

	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
	"github.com/stretchr/testify/assert"
)

func setupRect(t *testing.T, st *entity.Store) uint32 {
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{
		Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10),
		Fill: colors.RGBA{R: 1, A: 1},
	}, entity.DefaultAttrs())
	return id
}

func TestPickTopmostWins(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	a := setupRect(t, st)
	b := setupRect(t, st)

	idx := NewIndex()
	hit, ok := idx.Pick(st, ls, math32.Vec2(5, 5), 0.5)
	assert.True(t, ok)
	assert.Equal(t, b, hit)
	_ = a
}

func TestPickMissesOutsideTolerance(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	setupRect(t, st)
	idx := NewIndex()
	_, ok := idx.Pick(st, ls, math32.Vec2(50, 50), 0.5)
	assert.False(t, ok)
}

func TestPickSkipsHiddenEntity(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	id := setupRect(t, st)
	st.SetEntityFlags(id, 0)

	idx := NewIndex()
	_, ok := idx.Pick(st, ls, math32.Vec2(5, 5), 0.5)
	assert.False(t, ok)
}

func TestPickExResolvesVertexHandleNotResize(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	id := st.AllocID()
	st.UpsertLine(id, entity.LineRecord{
		A: math32.Vec2(0, 0), B: math32.Vec2(100, 0),
		StrokeAttrs: entity.StrokeAttrs{StrokeEnabled: true, StrokeWidth: 2},
	}, entity.DefaultAttrs())

	idx := NewIndex()
	idx.Rebuild(st)
	hit, ok := idx.PickEx(st, ls, math32.Vec2(0, 0), 1, 8, []uint32{id})
	assert.True(t, ok)
	assert.Equal(t, protocol.SubVertexHandle, hit.Target)
	assert.Equal(t, 0, hit.Index)
}

func TestPickExResizeHandleOnRect(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	id := setupRect(t, st)

	idx := NewIndex()
	idx.Rebuild(st)
	hit, ok := idx.PickEx(st, ls, math32.Vec2(0, 0), 1, 8, []uint32{id})
	assert.True(t, ok)
	assert.Equal(t, protocol.SubResizeHandle, hit.Target)
	assert.Equal(t, 0, hit.Index)
}

func TestQueryMarqueeWindowRequiresFullContainment(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	id := setupRect(t, st)

	idx := NewIndex()
	idx.Rebuild(st)
	inside := idx.QueryMarquee(st, ls, math32.B2(-5, -5, 20, 20), protocol.MarqueeWindow)
	assert.Contains(t, inside, id)

	partial := idx.QueryMarquee(st, ls, math32.B2(5, 5, 20, 20), protocol.MarqueeWindow)
	assert.NotContains(t, partial, id)
}

func TestQueryMarqueeCrossingIncludesPartialOverlap(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	id := setupRect(t, st)

	idx := NewIndex()
	idx.Rebuild(st)
	crossing := idx.QueryMarquee(st, ls, math32.B2(5, 5, 20, 20), protocol.MarqueeCrossing)
	assert.Contains(t, crossing, id)
}

func TestGetSelectionBoundsUnion(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	_ = ls
	a := st.AllocID()
	st.UpsertRect(a, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())
	b := st.AllocID()
	st.UpsertRect(b, entity.RectRecord{Pos: math32.Vec2(20, 20), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	idx := NewIndex()
	idx.Rebuild(st)
	box, ok := idx.GetSelectionBounds([]uint32{a, b})
	assert.True(t, ok)
	assert.Equal(t, math32.Vec2(0, 0), box.Min)
	assert.Equal(t, math32.Vec2(30, 30), box.Max)
}
