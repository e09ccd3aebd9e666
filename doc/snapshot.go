// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package doc

import (
	"cogentcore.org/cadcore/events"
	"cogentcore.org/cadcore/pick"
	"cogentcore.org/cadcore/protocol"
	"cogentcore.org/cadcore/snapshot"
)

// Save serializes the full document (layers, entities, selection, and
// history) to a versioned byte block (spec.md §4.2).
func (d *Document) Save() []byte {
	return snapshot.Save(snapshot.Document{
		Layers:    d.Layers,
		Entities:  d.Entities,
		Selection: d.selection,
		History:   d.History,
	})
}

// Load replaces the document's entire state from a byte block produced
// by Save. On failure the document is left untouched (spec.md §7: "for
// loads, by leaving the prior state intact") and LastError carries the
// cause.
func (d *Document) Load(data []byte) error {
	sd, err := snapshot.Load(data)
	if err != nil {
		d.lastErr = EngineError{Kind: protocol.InvalidOperation, Cause: err}
		d.opts.Logger.Warn("snapshot load failed", "error", err)
		return d.lastErr
	}
	d.Layers = sd.Layers
	d.Entities = sd.Entities
	d.History = sd.History
	d.selection = filterEligible(d.Entities, d.Layers, sd.Selection)
	d.pick = pick.NewIndex()
	d.Events = events.NewStream()
	d.lastErr = EngineError{Kind: protocol.Ok}
	return nil
}

// Digest returns the document's content-addressed fingerprint (spec.md
// §4.2): two documents with the same entities, layers, style overrides,
// and draw order digest identically regardless of the mutation path
// taken to reach that state.
func (d *Document) Digest() [16]byte {
	return snapshot.Digest(d.Layers, d.Entities)
}
