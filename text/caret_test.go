// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPrevCharUTF8(t *testing.T) {
	b := []byte("aéb") // a, e-acute (2 bytes), b
	assert.Equal(t, 1, NextCharPos(b, 0))
	assert.Equal(t, 3, NextCharPos(b, 1))
	assert.Equal(t, 4, NextCharPos(b, 3))
	assert.Equal(t, 3, PrevCharPos(b, 4))
	assert.Equal(t, 1, PrevCharPos(b, 3))
	assert.Equal(t, 0, PrevCharPos(b, 1))
}

func TestWordLeftRight(t *testing.T) {
	b := []byte("hello world foo")
	assert.Equal(t, 6, WordRight(b, 0))
	assert.Equal(t, 12, WordRight(b, 6))
	assert.Equal(t, 6, WordLeft(b, 11))
	assert.Equal(t, 0, WordLeft(b, 5))
}

func TestCaretClamping(t *testing.T) {
	var c Caret
	c.SetCaret(100, 5)
	assert.Equal(t, 5, c.Pos)
	assert.False(t, c.HasSelection)

	c.SetSelection(-3, 4, 5)
	assert.Equal(t, 0, c.Anchor)
	assert.Equal(t, 4, c.Pos)
	assert.True(t, c.HasSelection)
	s, e := c.Range()
	assert.Equal(t, 0, s)
	assert.Equal(t, 4, e)
}

func TestLineNavigation(t *testing.T) {
	lines := []Line{
		{ByteStart: 0, ByteEnd: 5},
		{ByteStart: 5, ByteEnd: 12},
		{ByteStart: 12, ByteEnd: 12},
	}
	assert.Equal(t, 0, LineStart(lines, 3))
	assert.Equal(t, 5, LineEnd(lines, 3))
	assert.Equal(t, 8, LineDown(lines, 3))
	assert.Equal(t, 3, LineUp(lines, 8))
}
