// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtlasPacksAndCachesGlyphs(t *testing.T) {
	a := NewAtlas(64, 64)
	key := GlyphKey{FontID: 1, GlyphID: 65, Size: 12}
	calls := 0
	measure := func() (int, int, float32, float32, float32) {
		calls++
		return 8, 10, 0, 8, 9
	}
	e1 := a.GetGlyph(key, measure)
	e2 := a.GetGlyph(key, measure)
	assert.Equal(t, e1, e2)
	assert.Equal(t, 1, calls)
	assert.True(t, e1.U1 > e1.U0)
	assert.True(t, a.TakeDirty())
	assert.False(t, a.TakeDirty())
}

func TestAtlasGrowsWhenFull(t *testing.T) {
	a := NewAtlas(8, 8)
	for i := 0; i < 20; i++ {
		key := GlyphKey{FontID: 1, GlyphID: uint32(i), Size: 12}
		a.GetGlyph(key, func() (int, int, float32, float32, float32) { return 4, 4, 0, 4, 5 })
	}
	assert.GreaterOrEqual(t, a.Height, 8)
	// grow clears the cache; only glyphs 12..19, packed after the last
	// growth to height 32, remain.
	assert.Equal(t, 8, len(a.entries))
}
