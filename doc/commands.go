// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"errors"
	"time"

	"cogentcore.org/cadcore/command"
	"cogentcore.org/cadcore/protocol"
)

// ApplyCommandBuffer parses and applies a binary command buffer (spec.md
// §4.1) against the document. On success it returns the number of ops
// applied and a nil error; LastError() reads Ok and LastApplyMillis()
// reports the wall-clock cost. On failure nothing in the document changed
// (spec.md §4.1/§7 "all or nothing"), LastError() carries the failing
// protocol.ErrorKind, and LastApplyMillis() reads 0.
func (d *Document) ApplyCommandBuffer(buf []byte) (int, error) {
	start := time.Now()
	tgt := &command.Target{
		Entities:  d.Entities,
		Layers:    d.Layers,
		History:   d.History,
		Events:    d.Events,
		ViewScale: &d.viewScale,
	}
	n, err := command.Apply(tgt, buf)
	if err != nil {
		d.lastApplyMs = 0
		var cmdErr *command.Error
		if errors.As(err, &cmdErr) {
			d.lastErr = EngineError{Kind: cmdErr.Kind, Cause: err}
		} else {
			d.lastErr = EngineError{Kind: protocol.InvalidOperation, Cause: err}
		}
		return 0, d.lastErr
	}
	d.lastApplyMs = time.Since(start).Seconds() * 1000
	d.lastErr = EngineError{Kind: protocol.Ok}
	d.pruneSelection()
	return n, nil
}
