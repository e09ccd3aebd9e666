// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"testing"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/history"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/pick"
	"cogentcore.org/cadcore/protocol"
	"github.com/stretchr/testify/assert"
)

func newCtx() (Context, *entity.Store, *history.Engine) {
	st := entity.NewStore()
	h := history.NewEngine()
	return Context{Entities: st, Pick: pick.NewIndex(), History: h, Snap: SnapPolicy{}}, st, h
}

func TestMoveCommitAppliesDeltaAndRecordsHistory(t *testing.T) {
	ctx, st, h := newCtx()
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	s := NewSession(4)
	ok := s.BeginTransform(ctx, []uint32{id}, Move, 0, 0, math32.Vec2(0, 0), math32.Vec2(0, 0), 1, math32.Vec2(800, 600), 0)
	assert.True(t, ok)
	assert.Equal(t, Active, s.Phase())

	s.UpdateTransform(ctx, math32.Vec2(20, 0), math32.Vec2(20, 0), 0)
	results, ok := s.CommitTransform(ctx)
	assert.True(t, ok)
	assert.Equal(t, Idle, s.Phase())
	assert.Len(t, results, 1)
	assert.Equal(t, OpMove, results[0].Op)

	got, _ := st.GetState(id)
	assert.Equal(t, float32(20), got.Rect.Pos.X)
	assert.Equal(t, 1, h.EntryCount())
	assert.True(t, h.CanUndo())
}

func TestBelowThresholdCommitSkipsHistoryEntry(t *testing.T) {
	ctx, st, h := newCtx()
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	s := NewSession(4)
	s.BeginTransform(ctx, []uint32{id}, Move, 0, 0, math32.Vec2(0, 0), math32.Vec2(0, 0), 1, math32.Vec2(800, 600), 0)
	s.UpdateTransform(ctx, math32.Vec2(1, 0), math32.Vec2(1, 0), 0)
	_, ok := s.CommitTransform(ctx)
	assert.True(t, ok)
	assert.Equal(t, 0, h.EntryCount())
}

func TestCancelTransformRestoresOriginalGeometry(t *testing.T) {
	ctx, st, _ := newCtx()
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{Pos: math32.Vec2(5, 5), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	s := NewSession(4)
	s.BeginTransform(ctx, []uint32{id}, Move, 0, 0, math32.Vec2(0, 0), math32.Vec2(0, 0), 1, math32.Vec2(800, 600), 0)
	s.UpdateTransform(ctx, math32.Vec2(50, 0), math32.Vec2(50, 0), 0)
	ok := s.CancelTransform(ctx)
	assert.True(t, ok)
	assert.Equal(t, Idle, s.Phase())

	got, _ := st.GetState(id)
	assert.Equal(t, float32(5), got.Rect.Pos.X)
}

func TestResizeIsRefusedForLineLikeTarget(t *testing.T) {
	ctx, st, _ := newCtx()
	id := st.AllocID()
	st.UpsertLine(id, entity.LineRecord{A: math32.Vec2(0, 0), B: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	s := NewSession(4)
	ok := s.BeginTransform(ctx, nil, Resize, id, 0, math32.Vec2(0, 0), math32.Vec2(0, 0), 1, math32.Vec2(800, 600), 0)
	assert.False(t, ok)
	assert.Equal(t, Idle, s.Phase())
}

func TestResizeRectMovesOppositeCorner(t *testing.T) {
	ctx, st, _ := newCtx()
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	s := NewSession(4)
	// handle 0 = BottomLeft; dragging it leaves the TopRight corner fixed.
	ok := s.BeginTransform(ctx, nil, Resize, id, 0, math32.Vec2(0, 0), math32.Vec2(0, 0), 1, math32.Vec2(800, 600), 0)
	assert.True(t, ok)

	s.UpdateTransform(ctx, math32.Vec2(30, 0), math32.Vec2(-5, -5), 0)
	results, ok := s.CommitTransform(ctx)
	assert.True(t, ok)
	assert.Equal(t, OpResize, results[0].Op)

	got, _ := st.GetState(id)
	assert.Equal(t, float32(-5), got.Rect.Pos.X)
	assert.Equal(t, float32(-5), got.Rect.Pos.Y)
	assert.InDelta(t, 15, got.Rect.Size.X, 1e-4)
	assert.InDelta(t, 15, got.Rect.Size.Y, 1e-4)
}

func TestVertexDragMovesOnlyTargetedEndpoint(t *testing.T) {
	ctx, st, _ := newCtx()
	id := st.AllocID()
	st.UpsertLine(id, entity.LineRecord{A: math32.Vec2(0, 0), B: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	s := NewSession(4)
	ok := s.BeginTransform(ctx, nil, VertexDrag, id, 0, math32.Vec2(0, 0), math32.Vec2(0, 0), 1, math32.Vec2(800, 600), 0)
	assert.True(t, ok)

	s.UpdateTransform(ctx, math32.Vec2(20, 20), math32.Vec2(3, 4), 0)
	results, ok := s.CommitTransform(ctx)
	assert.True(t, ok)
	assert.Equal(t, OpVertexSet, results[0].Op)

	got, _ := st.GetState(id)
	assert.Equal(t, math32.Vec2(3, 4), got.Line.A)
	assert.Equal(t, math32.Vec2(10, 10), got.Line.B)
}

func TestAltDragDuplicatesSelectionAndUndoRemovesClone(t *testing.T) {
	ctx, st, h := newCtx()
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())
	liveBefore := st.LiveCount()

	s := NewSession(4)
	ok := s.BeginTransform(ctx, []uint32{id}, Move, 0, 0, math32.Vec2(0, 0), math32.Vec2(0, 0), 1, math32.Vec2(800, 600), protocol.ModAlt)
	assert.True(t, ok)
	assert.Equal(t, liveBefore+1, st.LiveCount())

	s.UpdateTransform(ctx, math32.Vec2(40, 0), math32.Vec2(40, 0), protocol.ModAlt)
	_, ok = s.CommitTransform(ctx)
	assert.True(t, ok)
	assert.Equal(t, liveBefore+1, st.LiveCount())

	orig, _ := st.GetState(id)
	assert.Equal(t, float32(0), orig.Rect.Pos.X)

	assert.True(t, h.Undo(applierFor(st)))
	assert.Equal(t, liveBefore, st.LiveCount())
}

func TestDraftBuildsRectFromTwoPoints(t *testing.T) {
	ctx, st, h := newCtx()
	s := NewSession(4)
	s.AddDraftPoint(math32.Vec2(1, 1))
	s.AddDraftPoint(math32.Vec2(11, 21))

	id, ok := s.FinishDraft(ctx, entity.Rect, entity.StrokeAttrs{StrokeEnabled: true, StrokeWidth: 1}, entity.DefaultAttrs())
	assert.True(t, ok)
	assert.Empty(t, s.DraftPoints())

	got, _ := st.GetState(id)
	assert.Equal(t, math32.Vec2(1, 1), got.Rect.Pos)
	assert.Equal(t, math32.Vec2(10, 20), got.Rect.Size)
	assert.Equal(t, 1, h.EntryCount())
}

// testApplier adapts an entity.Store to the history.Applier interface for
// undo/redo in tests.
type testApplier struct{ st *entity.Store }

func (a testApplier) ApplyEntityDelta(before, after *entity.State) {
	if after == nil {
		a.st.RestoreRemoveEntity(before.ID)
		return
	}
	a.st.RestoreState(*after)
}
func (a testApplier) ApplyDrawOrder(order []uint32) { a.st.RestoreDrawOrder(order) }
func (a testApplier) ApplySelection(ids []uint32)   {}
func (a testApplier) ApplyLayer(before, after *layer.Record, layerID uint32) {}

func applierFor(st *entity.Store) history.Applier { return testApplier{st: st} }
