// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"testing"

	"cogentcore.org/cadcore/protocol"
	"github.com/stretchr/testify/assert"
)

func TestNewStoreHasDefaultLayer(t *testing.T) {
	s := NewStore()
	r, ok := s.Get(1)
	assert.True(t, ok)
	assert.True(t, r.Flags&protocol.LayerVisible != 0)
}

func TestCreateDeleteLayer(t *testing.T) {
	s := NewStore()
	id := s.Create("Background")
	assert.True(t, s.Exists(id))

	r, ok := s.Delete(id)
	assert.True(t, ok)
	assert.Equal(t, "Background", r.Name)
	assert.False(t, s.Exists(id))
}

func TestSetFlagsNoopReturnsFalseChanged(t *testing.T) {
	s := NewStore()
	_, ok, changed := s.SetFlags(1, protocol.LayerVisible)
	assert.True(t, ok)
	assert.False(t, changed)

	_, ok2, changed2 := s.SetFlags(1, protocol.LayerLocked)
	assert.True(t, ok2)
	assert.True(t, changed2)
	assert.True(t, s.IsLocked(1))
	assert.False(t, s.IsVisible(1))
}

func TestAllOrderedByID(t *testing.T) {
	s := NewStore()
	s.Create("B")
	s.Create("A")
	all := s.All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}
