// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protocol defines the stable numeric contracts of the document
// engine's external interfaces: the command buffer header, snapshot
// versions, event record layout, feature flags, and the enums whose
// numeric tags are load-bearing across the process boundary (spec.md §6).
package protocol

import "hash/fnv"

// CommandMagic is the 32-bit magic at the start of every command buffer,
// the little-endian bytes of the ASCII string "EWDC".
const CommandMagic uint32 = 0x43445745

// CommandVersion is the command buffer wire version understood by this
// engine.
const CommandVersion uint32 = 2

// SnapshotMagic is the 32-bit magic at the start of every snapshot block,
// the little-endian bytes of the ASCII string "EWDS".
const SnapshotMagic uint32 = 0x53445745

// SnapshotVersion is the snapshot wire version produced by this engine.
const SnapshotVersion uint32 = 1

// EventStreamVersion is the version of the event record layout (spec.md
// §6): 20-byte records of u16,u16,u32,u32,u32,u32.
const EventStreamVersion uint32 = 1

// ProtocolVersion is the overall protocol version gating command,
// snapshot, and event stream compatibility together.
const ProtocolVersion uint32 = 1

// Op identifies a command buffer operation (spec.md §4.1).
type Op uint32

const (
	OpClearAll Op = iota + 1
	OpDeleteEntity
	OpSetViewScale
	OpSetDrawOrder
	OpUpsertRect
	OpUpsertLine
	OpUpsertPolyline
	OpUpsertCircle
	OpUpsertPolygon
	OpUpsertArrow
	OpUpsertText
	OpDeleteText
	OpSetTextCaret
	OpSetTextSelection
	OpInsertTextContent
	OpDeleteTextContent
	OpApplyTextStyle
	OpSetTextAlign
)

// EntityKind tags the variant of an entity record (spec.md §3).
type EntityKind uint8

const (
	KindRect EntityKind = iota + 1
	KindLine
	KindPolyline
	KindCircle
	KindPolygon
	KindArrow
	KindText
)

// EntityFlags is a bitmask of per-entity attributes (spec.md §3).
type EntityFlags uint32

const (
	FlagVisible EntityFlags = 1 << iota
	FlagLocked
)

// LayerFlags mirrors EntityFlags for layer records.
type LayerFlags uint32

const (
	LayerVisible LayerFlags = 1 << iota
	LayerLocked
)

// SelectionMode controls how a selection op combines with the current
// selection (spec.md §6).
type SelectionMode uint32

const (
	SelectionReplace SelectionMode = iota
	SelectionAdd
	SelectionRemove
	SelectionToggle
)

// MarqueeMode controls rectangular-selection containment semantics.
type MarqueeMode uint32

const (
	MarqueeWindow MarqueeMode = iota
	MarqueeCrossing
)

// ReorderAction identifies a draw-order restack operation.
type ReorderAction uint32

const (
	ReorderBringToFront ReorderAction = iota + 1
	ReorderSendToBack
	ReorderBringForward
	ReorderSendBackward
)

// SelectionModifier is a bitmask of held input modifiers during a pick or
// transform, numbered per spec.md §6.
type SelectionModifier uint32

const (
	ModShift SelectionModifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// ChangeMask is a bitmask of what changed about an entity or document,
// carried on coalesced events (spec.md §6).
type ChangeMask uint32

const (
	ChangeGeometry ChangeMask = 1 << iota
	ChangeStyle
	ChangeFlags
	ChangeLayer
	ChangeOrder
	ChangeText
	ChangeBounds
	ChangeRenderData
)

// SubTarget identifies what part of an entity a pick hit.
type SubTarget uint32

const (
	SubBody SubTarget = iota
	SubVertexHandle
	SubEdgeHandle
	SubResizeHandle
)

// FeatureFlags are the bit positions advertised in ProtocolInfo.
type FeatureFlags uint32

const (
	FeatureProtocol FeatureFlags = 1 << iota
	FeatureLayersFlags
	FeatureSelectionOrder
	FeatureSnapshotVNext
	FeatureEventStream
	FeatureOverlayQueries
	FeatureInteractiveTransform
)

// AllFeatures is every feature flag this engine implements.
const AllFeatures = FeatureProtocol | FeatureLayersFlags | FeatureSelectionOrder |
	FeatureSnapshotVNext | FeatureEventStream | FeatureOverlayQueries | FeatureInteractiveTransform

// ErrorKind is the taxonomy exposed via last_error (spec.md §6/§7).
type ErrorKind uint32

const (
	Ok ErrorKind = iota
	InvalidHeader
	InvalidPayloadSize
	UnknownCommand
	InvalidOperation
	OutOfMemory
)

func (k ErrorKind) String() string {
	switch k {
	case Ok:
		return "Ok"
	case InvalidHeader:
		return "InvalidHeader"
	case InvalidPayloadSize:
		return "InvalidPayloadSize"
	case UnknownCommand:
		return "UnknownCommand"
	case InvalidOperation:
		return "InvalidOperation"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// Info is the constant record a consumer reads once at startup to verify
// wire compatibility (spec.md §6).
type Info struct {
	ProtocolVersion    uint32
	CommandVersion     uint32
	SnapshotVersion    uint32
	EventStreamVersion uint32
	ABIHash            uint64
	FeatureFlags       FeatureFlags
}

// BuildInfo computes the constant protocol Info, including the ABI hash.
func BuildInfo() Info {
	return Info{
		ProtocolVersion:    ProtocolVersion,
		CommandVersion:     CommandVersion,
		SnapshotVersion:    SnapshotVersion,
		EventStreamVersion: EventStreamVersion,
		ABIHash:            abiHash(),
		FeatureFlags:       AllFeatures,
	}
}

// abiHash folds an FNV-1a 64-bit hash over the op codes, event types,
// entity/layer flags, selection/marquee/reorder enums, and the event,
// overlay-primitive, command-header and command-record strides, so a
// consumer built against a divergent engine fails fast (spec.md §6). The
// per-op payload sizes and field offsets are not folded in.
func abiHash() uint64 {
	h := fnv.New64a()
	write := func(v uint64) {
		var b [8]byte
		for i := 0; i < 8; i++ {
			b[i] = byte(v >> (8 * i))
		}
		h.Write(b[:])
	}
	for op := OpClearAll; op <= OpSetTextAlign; op++ {
		write(uint64(op))
	}
	for _, ev := range []EventType{
		EventDocChanged, EventEntityCreated, EventEntityChanged, EventEntityDeleted,
		EventLayerChanged, EventSelectionChanged, EventOrderChanged, EventHistoryChanged, EventOverflow,
	} {
		write(uint64(ev))
	}
	write(uint64(FlagVisible))
	write(uint64(FlagLocked))
	write(uint64(LayerVisible))
	write(uint64(LayerLocked))
	write(uint64(SelectionReplace))
	write(uint64(SelectionAdd))
	write(uint64(SelectionRemove))
	write(uint64(SelectionToggle))
	write(uint64(MarqueeWindow))
	write(uint64(MarqueeCrossing))
	write(uint64(ReorderBringToFront))
	write(uint64(ReorderSendToBack))
	write(uint64(ReorderBringForward))
	write(uint64(ReorderSendBackward))
	write(20) // event record stride
	write(12) // overlay primitive stride
	write(16) // command buffer header stride
	write(16) // command record stride
	return h.Sum64()
}

// EventType identifies an event stream record kind (spec.md §4.6).
type EventType uint16

const (
	EventDocChanged EventType = iota + 1
	EventEntityCreated
	EventEntityChanged
	EventEntityDeleted
	EventLayerChanged
	EventSelectionChanged
	EventOrderChanged
	EventHistoryChanged
	EventOverflow
)
