// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"testing"

	"cogentcore.org/cadcore/protocol"
	"github.com/stretchr/testify/assert"
)

func TestFlushEpochOrdering(t *testing.T) {
	s := NewStream()
	s.BeginEpoch()
	s.MarkOrderChanged()
	s.MarkSelectionChanged()
	s.MarkEntityChanged(5, protocol.ChangeGeometry)
	s.MarkEntityCreated(2)
	s.MarkDocChanged(protocol.ChangeGeometry)
	s.MarkLayerChanged(1, uint32(protocol.ChangeStyle))
	s.MarkHistoryChanged()
	s.FlushEpoch(1)

	got := s.PollEvents(100, 1)
	var order []protocol.EventType
	for _, r := range got {
		order = append(order, r.Type)
	}
	assert.Equal(t, []protocol.EventType{
		protocol.EventDocChanged,
		protocol.EventEntityCreated,
		protocol.EventEntityChanged,
		protocol.EventLayerChanged,
		protocol.EventSelectionChanged,
		protocol.EventOrderChanged,
		protocol.EventHistoryChanged,
	}, order)
}

func TestOverflowCollapsesToSingleEvent(t *testing.T) {
	s := NewStream()
	for i := 0; i < Capacity+10; i++ {
		s.BeginEpoch()
		s.MarkEntityCreated(uint32(i + 1))
		s.FlushEpoch(uint64(i))
	}
	got := s.PollEvents(1024, 999)
	assert.Len(t, got, 1)
	assert.Equal(t, protocol.EventOverflow, got[0].Type)

	more := s.PollEvents(1024, 999)
	assert.Len(t, more, 1)
	assert.Equal(t, protocol.EventOverflow, more[0].Type)

	s.AckResync(uint64(got[0].A))
	after := s.PollEvents(1024, 999)
	assert.Len(t, after, 0)
}

func TestDeleteSupersedesCreateInSameEpoch(t *testing.T) {
	s := NewStream()
	s.BeginEpoch()
	s.MarkEntityCreated(7)
	s.MarkEntityChanged(7, protocol.ChangeGeometry)
	s.MarkEntityDeleted(7)
	s.FlushEpoch(1)

	got := s.PollEvents(10, 1)
	assert.Len(t, got, 1)
	assert.Equal(t, protocol.EventEntityDeleted, got[0].Type)
}
