// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentInsertDelete(t *testing.T) {
	c := NewContent(Run{FontID: 1, Size: 14})
	c.InsertContent(0, []byte("hello"))
	assert.Equal(t, "hello", string(c.Bytes))

	c.InsertContent(5, []byte(" world"))
	assert.Equal(t, "hello world", string(c.Bytes))

	c.DeleteContent(5, 11)
	assert.Equal(t, "hello", string(c.Bytes))
}

func TestContentApplyStyleSplitsRuns(t *testing.T) {
	c := NewContent(Run{FontID: 1, Size: 14})
	c.InsertContent(0, []byte("hello world"))
	c.ApplyStyle(6, 11, Bold, 0)

	total := 0
	for _, r := range c.Runs {
		total += r.Length
	}
	assert.Equal(t, len("hello world"), total)

	foundBold := false
	for _, r := range c.Runs {
		if r.Start == 6 && r.Length == 5 {
			assert.NotZero(t, r.Flags&Bold)
			foundBold = true
		} else {
			assert.Zero(t, r.Flags&Bold)
		}
	}
	assert.True(t, foundBold)
}

func TestContentRunsPartitionInvariant(t *testing.T) {
	c := NewContent(Run{})
	c.InsertContent(0, []byte("abcdef"))
	c.ApplyStyle(2, 4, Italic, 0)
	c.DeleteContent(1, 3)

	pos := 0
	for _, r := range c.Runs {
		if r.Length == 0 {
			continue
		}
		assert.Equal(t, pos, r.Start)
		pos = r.End()
	}
	assert.Equal(t, c.Len(), pos)
}

func TestSeedTypingRunExtendsOnInsert(t *testing.T) {
	c := NewContent(Run{})
	c.InsertContent(0, []byte("ab"))
	c.SeedTypingRun(2, Run{FontID: 9, Size: 20})
	c.InsertContent(2, []byte("c"))

	last := c.Runs[len(c.Runs)-1]
	assert.Equal(t, uint32(9), last.FontID)
	assert.Equal(t, 1, last.Length)
}
