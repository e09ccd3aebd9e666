// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"encoding/binary"

	"cogentcore.org/cadcore/protocol"
)

func opClearAll(t *Target, r record) error {
	if err := expectSize(r, 0); err != nil {
		return err
	}
	before := t.Entities.DrawOrder()
	removed := t.Entities.ClearAll()
	if len(removed) == 0 {
		return nil
	}
	t.History.RecordDrawOrder(before, nil)
	for _, st := range removed {
		s := st
		t.History.RecordEntity(s.ID, &s, nil)
		t.Events.MarkEntityDeleted(s.ID)
	}
	t.Events.MarkOrderChanged()
	return nil
}

func opDeleteEntity(t *Target, r record) error {
	if err := expectSize(r, 0); err != nil {
		return err
	}
	before := t.Entities.DrawOrder()
	res := t.Entities.DeleteEntity(r.id)
	if !res.Changed {
		return nil
	}
	after := t.Entities.DrawOrder()
	if !sameOrder(before, after) {
		// Recorded before the entity delta: history replays an entry's
		// deltas last-added-first, so this draw-order delta must be the
		// last one reversed on undo, overwriting the unconditional
		// back-append RestoreState does while the id is still absent
		// from the order (entity/mutate.go RestoreState).
		t.History.RecordDrawOrder(before, after)
		t.Events.MarkOrderChanged()
	}
	t.History.RecordEntity(r.id, res.Before, nil)
	t.Events.MarkEntityDeleted(r.id)
	return nil
}

func opSetViewScale(t *Target, r record) error {
	if err := expectSize(r, 4); err != nil {
		return err
	}
	c := &cursor{b: r.payload}
	if t.ViewScale != nil {
		*t.ViewScale = c.f32()
	}
	return nil
}

func opSetDrawOrder(t *Target, r record) error {
	if len(r.payload) < 4 {
		return fail(protocol.InvalidPayloadSize, "draw order payload shorter than count header")
	}
	n := binary.LittleEndian.Uint32(r.payload[0:4])
	if err := expectSize(r, 4+4*int(n)); err != nil {
		return err
	}
	want := make([]uint32, n)
	off := 4
	for i := range want {
		want[i] = binary.LittleEndian.Uint32(r.payload[off : off+4])
		off += 4
	}
	prev := t.Entities.SetDrawOrder(want)
	next := t.Entities.DrawOrder()
	if sameOrder(prev, next) {
		return nil
	}
	t.History.RecordDrawOrder(prev, next)
	t.Events.MarkOrderChanged()
	return nil
}

func sameOrder(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
