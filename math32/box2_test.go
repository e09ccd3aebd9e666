// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox2Basics(t *testing.T) {
	b := B2(1, 2, 3, 4)
	assert.Equal(t, Vec2(4, 6), b.Max)
	assert.Equal(t, Vec2(3, 4), b.Size())
	assert.Equal(t, Vec2(2.5, 4), b.Center())
}

func TestBox2Overlaps(t *testing.T) {
	a := B2(0, 0, 10, 10)
	b := B2(5, 5, 10, 10)
	c := B2(20, 20, 1, 1)
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestBox2ContainsBox(t *testing.T) {
	outer := B2(0, 0, 100, 100)
	inner := B2(10, 10, 5, 5)
	assert.True(t, outer.ContainsBox(inner))
	assert.False(t, inner.ContainsBox(outer))
}

func TestBox2MulMatrix2Translate(t *testing.T) {
	b := B2(0, 0, 10, 10)
	m := Translate2(5, 5)
	got := b.MulMatrix2(m)
	assert.Equal(t, B2(5, 5, 10, 10), got)
}

func TestBox2Union(t *testing.T) {
	a := B2(0, 0, 10, 10)
	b := B2(20, 20, 5, 5)
	u := a.Union(b)
	assert.Equal(t, Vec2(0, 0), u.Min)
	assert.Equal(t, Vec2(25, 25), u.Max)
}
