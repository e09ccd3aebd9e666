// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

// Content holds a text entity's UTF-8 bytes and its ordered style runs.
// Run ranges partition [0, len(Bytes)), except a single permitted
// zero-length "typing" run that carries the pending style for the next
// inserted byte at the caret (spec.md §4.7).
type Content struct {
	Bytes []byte
	Runs  []Run
}

// NewContent returns an empty Content with a single zero-length typing
// run carrying the given default style.
func NewContent(def Run) Content {
	def.Start, def.Length = 0, 0
	return Content{Runs: []Run{def}}
}

// Len returns the byte length of the content.
func (c *Content) Len() int { return len(c.Bytes) }

// runAt returns the index of the run containing byte offset pos (clamped
// to [0, Len()]). For pos == Len() with no zero-length typing run at the
// end, the last real run is returned.
func (c *Content) runAt(pos int) int {
	for i, r := range c.Runs {
		if pos >= r.Start && pos < r.End() {
			return i
		}
		if r.Length == 0 && r.Start == pos {
			return i
		}
	}
	if len(c.Runs) == 0 {
		return -1
	}
	return len(c.Runs) - 1
}

// splitRunAt splits the run covering pos into two runs at pos, returning
// the index of the run that now starts at pos. No-op (returns the
// existing index) if pos already falls on a run boundary.
func (c *Content) splitRunAt(pos int) int {
	for i, r := range c.Runs {
		if r.Length == 0 {
			continue
		}
		if pos == r.Start {
			return i
		}
		if pos > r.Start && pos < r.End() {
			left := r
			left.Length = pos - r.Start
			right := r
			right.Start = pos
			right.Length = r.End() - pos
			c.Runs = append(c.Runs[:i], append([]Run{left, right}, c.Runs[i+1:]...)...)
			return i + 1
		}
	}
	// pos is at the end or no run contains it: find insertion point.
	for i, r := range c.Runs {
		if r.Start >= pos {
			return i
		}
	}
	return len(c.Runs)
}

// shiftRuns shifts the Start of every run beginning at or after at by
// delta bytes (delta may be negative for deletes).
func (c *Content) shiftRuns(at, delta int) {
	for i := range c.Runs {
		r := &c.Runs[i]
		if r.Start >= at {
			r.Start += delta
		}
	}
}

// InsertContent inserts data at byte offset pos (clamped to [0,Len()]),
// extending the zero-length typing run if one sits exactly at pos,
// otherwise growing the run that covers pos.
func (c *Content) InsertContent(pos int, data []byte) {
	if pos < 0 {
		pos = 0
	}
	if pos > c.Len() {
		pos = c.Len()
	}
	if len(data) == 0 {
		return
	}
	c.Bytes = append(c.Bytes[:pos], append(append([]byte{}, data...), c.Bytes[pos:]...)...)

	// extend a zero-length typing run sitting at pos, if present
	for i := range c.Runs {
		r := &c.Runs[i]
		if r.Length == 0 && r.Start == pos {
			r.Length = len(data)
			c.shiftRunsAfter(i, pos, len(data))
			c.normalize()
			return
		}
	}
	idx := c.splitRunAt(pos)
	if idx < len(c.Runs) && c.Runs[idx].Start == pos && c.Runs[idx].Length > 0 {
		c.Runs[idx].Length += len(data)
		c.shiftRunsAfter(idx, pos, len(data))
	} else if idx > 0 {
		c.Runs[idx-1].Length += len(data)
		c.shiftRunsAfter(idx, pos, len(data))
	} else if len(c.Runs) > 0 {
		c.Runs[0].Length += len(data)
		c.shiftRunsAfter(0, pos, len(data))
	} else {
		c.Runs = []Run{{Start: 0, Length: len(data)}}
	}
	c.normalize()
}

// shiftRunsAfter shifts the start of every run beginning strictly after
// pos (not the run that absorbed the insert at index idx).
func (c *Content) shiftRunsAfter(idx, pos, delta int) {
	for i := range c.Runs {
		if i == idx {
			continue
		}
		if c.Runs[i].Start >= pos {
			c.Runs[i].Start += delta
		}
	}
}

// DeleteContent deletes the byte range [start,end) (clamped), splitting
// and shrinking runs as needed, and removing runs that become empty
// except when a single zero-length typing run must remain.
func (c *Content) DeleteContent(start, end int) {
	n := c.Len()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return
	}
	c.splitRunAt(start)
	c.splitRunAt(end)
	c.Bytes = append(c.Bytes[:start], c.Bytes[end:]...)
	delta := end - start

	kept := c.Runs[:0]
	for _, r := range c.Runs {
		switch {
		case r.End() <= start:
			kept = append(kept, r)
		case r.Start >= end:
			r.Start -= delta
			kept = append(kept, r)
		case r.Start >= start && r.End() <= end && r.Length > 0:
			// fully removed
		default:
			kept = append(kept, r)
		}
	}
	c.Runs = kept
	if len(c.Runs) == 0 {
		c.Runs = []Run{{Start: 0, Length: 0}}
	}
	c.normalize()
}

// ApplyStyle toggles the given flag bits on every run intersecting
// [start,end), splitting runs at the boundaries as needed.
func (c *Content) ApplyStyle(start, end int, set, clear StyleFlags) {
	if start >= end {
		return
	}
	c.splitRunAt(start)
	c.splitRunAt(end)
	for i := range c.Runs {
		r := &c.Runs[i]
		if r.Length == 0 {
			continue
		}
		if r.Start >= start && r.End() <= end {
			r.Flags = (r.Flags &^ clear) | set
		}
	}
	c.normalize()
}

// normalize merges adjacent non-empty runs that share identical style.
// Zero-length runs are kept as they are; callers that maintain a caret
// re-seed the typing run explicitly via SeedTypingRun.
func (c *Content) normalize() {
	if len(c.Runs) < 2 {
		return
	}
	out := c.Runs[:1]
	for _, r := range c.Runs[1:] {
		last := &out[len(out)-1]
		if last.Length > 0 && r.Length > 0 && last.End() == r.Start && sameStyle(*last, r) {
			last.Length += r.Length
			continue
		}
		out = append(out, r)
	}
	c.Runs = out
}

func sameStyle(a, b Run) bool {
	return a.FontID == b.FontID && a.Size == b.Size && a.Color == b.Color && a.Flags == b.Flags
}

// SeedTypingRun ensures a zero-length run exists at pos carrying style,
// for subsequent InsertContent calls at the caret to pick up (spec.md
// §4.7: "zero-length typing run extends on adjacent typed bytes").
func (c *Content) SeedTypingRun(pos int, style Run) {
	for _, r := range c.Runs {
		if r.Length == 0 && r.Start == pos {
			return
		}
	}
	style.Start, style.Length = pos, 0
	idx := c.splitRunAt(pos)
	tail := append([]Run{}, c.Runs[idx:]...)
	c.Runs = append(append(c.Runs[:idx:idx], style), tail...)
}
