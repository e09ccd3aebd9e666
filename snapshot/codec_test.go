// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"math"
	"testing"

	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/history"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/math32"
	"github.com/stretchr/testify/assert"
)

func buildSampleDocument() Document {
	ls := layer.NewStore()
	ls.Create("Details")

	st := entity.NewStore()
	r1 := st.AllocID()
	st.UpsertRect(r1, entity.RectRecord{
		Pos: math32.Vec2(1, 2), Size: math32.Vec2(30, 40),
		Fill:        colors.RGBA{R: 1, A: 1},
		StrokeAttrs: entity.StrokeAttrs{StrokeEnabled: true, StrokeWidth: 2, Stroke: colors.RGBA{A: 1}},
	}, entity.DefaultAttrs())
	p1 := st.AllocID()
	st.UpsertPolyline(p1, []math32.Vector2{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}}, entity.StrokeAttrs{StrokeEnabled: true, StrokeWidth: 1}, entity.DefaultAttrs())
	st.SetStyleOverride(r1, &entity.StyleOverride{Fill: entity.ColorOverride{Color: colors.RGBA{G: 1, A: 1}, Enabled: true}})

	h := history.NewEngine()
	h.BeginEntry()
	before := (*entity.State)(nil)
	s, _ := st.GetState(r1)
	h.RecordEntity(r1, before, &s)
	h.CommitEntry()

	return Document{Layers: ls, Entities: st, Selection: []uint32{r1}, History: h}
}

func TestSaveLoadRoundTripPreservesDigest(t *testing.T) {
	d := buildSampleDocument()
	before := Digest(d.Layers, d.Entities)

	data := Save(d)
	loaded, err := Load(data)
	assert.NoError(t, err)

	after := Digest(loaded.Layers, loaded.Entities)
	assert.Equal(t, before, after)
	assert.Equal(t, d.Selection, loaded.Selection)
	assert.Equal(t, 1, loaded.History.EntryCount())
	assert.True(t, loaded.History.CanUndo())
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := Save(buildSampleDocument())
	data[0] ^= 0xFF
	_, err := Load(data)
	assert.Error(t, err)
}

func TestLoadRejectsTruncatedBlock(t *testing.T) {
	data := Save(buildSampleDocument())
	_, err := Load(data[:len(data)-4])
	assert.Error(t, err)
}

func TestDigestStableAcrossNegativeZeroAndNaN(t *testing.T) {
	st1 := entity.NewStore()
	id1 := st1.AllocID()
	st1.UpsertRect(id1, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(1, 1)}, entity.DefaultAttrs())

	st2 := entity.NewStore()
	id2 := st2.AllocID()
	negZero := math32.Vec2(float32(math.Copysign(0, -1)), 0)
	st2.UpsertRect(id2, entity.RectRecord{Pos: negZero, Size: math32.Vec2(1, 1)}, entity.DefaultAttrs())

	ls := layer.NewStore()
	assert.Equal(t, Digest(ls, st1), Digest(ls, st2))

	st3 := entity.NewStore()
	id3 := st3.AllocID()
	st3.UpsertRect(id3, entity.RectRecord{Pos: math32.Vec2(float32(math.NaN()), 0), Size: math32.Vec2(1, 1)}, entity.DefaultAttrs())

	st4 := entity.NewStore()
	id4 := st4.AllocID()
	otherNaN := math.Float32frombits(0x7fc00001)
	st4.UpsertRect(id4, entity.RectRecord{Pos: math32.Vec2(otherNaN, 0), Size: math32.Vec2(1, 1)}, entity.DefaultAttrs())

	assert.Equal(t, Digest(ls, st3), Digest(ls, st4))
}

func TestDigestIndependentOfMutationPath(t *testing.T) {
	ls := layer.NewStore()

	direct := entity.NewStore()
	id := direct.AllocID()
	direct.UpsertRect(id, entity.RectRecord{Pos: math32.Vec2(5, 5), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	viaMoves := entity.NewStore()
	id2 := viaMoves.AllocID()
	viaMoves.UpsertRect(id2, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())
	viaMoves.UpsertRect(id2, entity.RectRecord{Pos: math32.Vec2(2, 2), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())
	viaMoves.UpsertRect(id2, entity.RectRecord{Pos: math32.Vec2(5, 5), Size: math32.Vec2(10, 10)}, entity.DefaultAttrs())

	assert.Equal(t, Digest(ls, direct), Digest(ls, viaMoves))
}
