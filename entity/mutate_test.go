// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import (
	"testing"

	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/text"
	"github.com/stretchr/testify/assert"
)

func TestSetStyleOverrideEffectiveOrLayerDefault(t *testing.T) {
	s := NewStore()
	id := s.AllocID()
	s.UpsertRect(id, RectRecord{}, DefaultAttrs())
	assert.Nil(t, s.StyleOverride(id))

	s.SetStyleOverride(id, &StyleOverride{Fill: ColorOverride{Color: colors.RGBA{R: 1}, Enabled: true}})
	ov := s.StyleOverride(id)
	assert.NotNil(t, ov)
	assert.True(t, ov.Fill.Enabled)

	s.SetStyleOverride(id, nil)
	assert.Nil(t, s.StyleOverride(id))
}

func TestUpsertTextCreatesRecord(t *testing.T) {
	s := NewStore()
	id := s.AllocID()
	rec := text.NewRecord(math32.Vec2(0, 0), text.AutoWidth, text.AlignStart, 0, text.Run{Size: 14})
	rec.Content.InsertContent(0, []byte("hello"))
	res := s.UpsertText(id, rec, DefaultAttrs())
	assert.True(t, res.Created)

	tr := s.TextRecord(id)
	assert.Equal(t, "hello", string(tr.Content.Bytes))
}

func TestSetEntityLayerAndFlags(t *testing.T) {
	s := NewStore()
	id := s.AllocID()
	s.UpsertRect(id, RectRecord{}, DefaultAttrs())

	res := s.SetEntityLayer(id, 3)
	assert.True(t, res.Changed)
	a, _ := s.Attrs(id)
	assert.Equal(t, uint32(3), a.LayerID)

	res2 := s.SetEntityFlags(id, protocol.FlagLocked)
	assert.True(t, res2.Changed)
	a2, _ := s.Attrs(id)
	assert.Equal(t, protocol.FlagLocked, a2.Flags)
}

func TestRestoreStateRoundTrip(t *testing.T) {
	s := NewStore()
	id := s.AllocID()
	s.UpsertRect(id, RectRecord{Pos: math32.Vec2(3, 4)}, DefaultAttrs())
	before, _ := s.GetState(id)

	s.DeleteEntity(id)
	assert.False(t, s.Exists(id))

	s.RestoreState(before)
	assert.True(t, s.Exists(id))
	after, _ := s.GetState(id)
	assert.True(t, StatesEqual(before, after))
}
