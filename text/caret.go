// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import "unicode/utf8"

// Caret is the current insertion point and optional selection anchor, in
// byte offsets (spec.md §3, §4.7).
type Caret struct {
	Pos          int
	Anchor       int
	HasSelection bool
}

// SetCaret sets the caret to pos, clamped to [0,len], clearing selection.
func (c *Caret) SetCaret(pos, length int) {
	c.Pos = clampPos(pos, length)
	c.Anchor = c.Pos
	c.HasSelection = false
}

// SetSelection sets an active selection [anchor,pos), both clamped.
func (c *Caret) SetSelection(anchor, pos, length int) {
	c.Anchor = clampPos(anchor, length)
	c.Pos = clampPos(pos, length)
	c.HasSelection = c.Anchor != c.Pos
}

// Range returns the ordered [start,end) selection range.
func (c *Caret) Range() (int, int) {
	if c.Anchor <= c.Pos {
		return c.Anchor, c.Pos
	}
	return c.Pos, c.Anchor
}

func clampPos(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}

// NextCharPos returns the byte offset of the next rune boundary after
// pos, respecting UTF-8 continuation bytes.
func NextCharPos(b []byte, pos int) int {
	if pos >= len(b) {
		return len(b)
	}
	_, size := utf8.DecodeRune(b[pos:])
	if size == 0 {
		size = 1
	}
	return pos + size
}

// PrevCharPos returns the byte offset of the previous rune boundary
// before pos, respecting UTF-8 continuation bytes.
func PrevCharPos(b []byte, pos int) int {
	if pos <= 0 {
		return 0
	}
	p := pos - 1
	for p > 0 && isUTF8Continuation(b[p]) {
		p--
	}
	return p
}

func isUTF8Continuation(b byte) bool { return b&0xC0 == 0x80 }

// LineAt returns the index of the Line containing byte offset pos.
func LineAt(lines []Line, pos int) int {
	for i, ln := range lines {
		if pos >= ln.ByteStart && pos <= ln.ByteEnd {
			return i
		}
	}
	if len(lines) == 0 {
		return -1
	}
	return len(lines) - 1
}

// LineStart returns the byte offset of the start of the line containing
// pos.
func LineStart(lines []Line, pos int) int {
	i := LineAt(lines, pos)
	if i < 0 {
		return 0
	}
	return lines[i].ByteStart
}

// LineEnd returns the byte offset of the end of the line containing pos.
func LineEnd(lines []Line, pos int) int {
	i := LineAt(lines, pos)
	if i < 0 {
		return 0
	}
	return lines[i].ByteEnd
}

// LineUp returns the byte offset one line above pos, preserving the
// column (byte offset within the line) as closely as possible.
func LineUp(lines []Line, pos int) int {
	i := LineAt(lines, pos)
	if i <= 0 {
		return pos
	}
	col := pos - lines[i].ByteStart
	target := lines[i-1]
	np := target.ByteStart + col
	if np > target.ByteEnd {
		np = target.ByteEnd
	}
	return np
}

// LineDown returns the byte offset one line below pos, preserving column.
func LineDown(lines []Line, pos int) int {
	i := LineAt(lines, pos)
	if i < 0 || i >= len(lines)-1 {
		return pos
	}
	col := pos - lines[i].ByteStart
	target := lines[i+1]
	np := target.ByteStart + col
	if np > target.ByteEnd {
		np = target.ByteEnd
	}
	return np
}

// WordLeft returns the byte offset of the start of the word at or before
// pos (skipping whitespace), UTF-8 aware.
func WordLeft(b []byte, pos int) int {
	p := pos
	for p > 0 && isSpaceByteAt(b, PrevCharPos(b, p)) {
		p = PrevCharPos(b, p)
	}
	for p > 0 && !isSpaceByteAt(b, PrevCharPos(b, p)) {
		p = PrevCharPos(b, p)
	}
	return p
}

// WordRight returns the byte offset of the start of the next word: it skips
// the rest of the word at pos and then the whitespace after it, UTF-8 aware.
func WordRight(b []byte, pos int) int {
	p := pos
	for p < len(b) && !isSpaceByteAt(b, p) {
		p = NextCharPos(b, p)
	}
	for p < len(b) && isSpaceByteAt(b, p) {
		p = NextCharPos(b, p)
	}
	return p
}

func isSpaceByteAt(b []byte, pos int) bool {
	if pos < 0 || pos >= len(b) {
		return false
	}
	r, _ := utf8.DecodeRune(b[pos:])
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
