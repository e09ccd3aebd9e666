// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutAutoWidthNeverWraps(t *testing.T) {
	c := NewContent(Run{Size: 14})
	c.InsertContent(0, []byte("a fairly long single line of text"))
	l := LayoutText(&c, LayoutOptions{Mode: AutoWidth, Metrics: DefaultMetrics{}})
	assert.Len(t, l.Lines, 1)
}

func TestLayoutExplicitNewlineAlwaysBreaks(t *testing.T) {
	c := NewContent(Run{Size: 14})
	c.InsertContent(0, []byte("line one\nline two\nline three"))
	l := LayoutText(&c, LayoutOptions{Mode: AutoWidth, Metrics: DefaultMetrics{}})
	assert.Len(t, l.Lines, 3)
}

func TestLayoutFixedWidthWordWraps(t *testing.T) {
	c := NewContent(Run{Size: 10})
	c.InsertContent(0, []byte("one two three four five"))
	l := LayoutText(&c, LayoutOptions{Mode: FixedWidth, ConstraintWidth: 40, Metrics: DefaultMetrics{}})
	assert.Greater(t, len(l.Lines), 1)
	for _, ln := range l.Lines {
		assert.GreaterOrEqual(t, ln.ByteEnd, ln.ByteStart)
	}
}

func TestLayoutFinitOutputs(t *testing.T) {
	c := NewContent(Run{Size: 12})
	c.InsertContent(0, []byte("finite check"))
	l := LayoutText(&c, LayoutOptions{Mode: AutoWidth, Metrics: DefaultMetrics{}})
	assert.GreaterOrEqual(t, l.Width, float32(0))
	assert.GreaterOrEqual(t, l.Height, float32(0))
}
