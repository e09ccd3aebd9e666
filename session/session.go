// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package session implements the interaction session state machine (spec.md
// §4.4): Idle -> Active(mode) -> Committed|Cancelled -> Idle, driving move,
// vertex-drag, edge-drag, resize, rotate and point-by-point draft authoring
// directly against the entity store and history engine.
package session

import (
	"math"

	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/history"
	"cogentcore.org/cadcore/math32"
	"cogentcore.org/cadcore/pick"
	"cogentcore.org/cadcore/protocol"
)

// Mode identifies the kind of interactive transform in progress.
type Mode uint8

const (
	Move Mode = iota + 1
	VertexDrag
	EdgeDrag
	Resize
	Rotate
	Draft
)

// Phase is the session's position in the Idle/Active/Committed/Cancelled
// state machine.
type Phase uint8

const (
	Idle Phase = iota
	Active
	Committed
	Cancelled
)

// OpCode tags the kind of result payload commit_transform produces per
// entity.
type OpCode uint8

const (
	OpMove OpCode = iota + 1
	OpVertexSet
	OpResize
	OpRotate
)

// TransformResult is the per-entity outcome of a committed transform
// (spec.md §4.4: "{id, op_code, payload[4]}").
type TransformResult struct {
	ID      uint32
	Op      OpCode
	Payload [4]float32
}

// SnapPolicy configures candidate snapping during move/resize (spec.md
// §4.4).
type SnapPolicy struct {
	Enabled      bool
	GridEnabled  bool
	GridSize     float32
	TolerancePx  float32
	Endpoint     bool
	Midpoint     bool
	Center       bool
}

// Context is the explicit set of collaborators a session needs, passed at
// every call instead of the session holding a back-reference to the owning
// document (spec.md §9 redesign flag: "re-express as an explicit context
// value passed to sub-system entry points").
type Context struct {
	Entities *entity.Store
	Pick     *pick.Index
	History  *history.Engine
	Snap     SnapPolicy
}

// Session holds the state of one in-flight interactive transform. Only one
// transform may be active at a time.
type Session struct {
	phase    Phase
	mode     Mode
	ids      []uint32 // Move/Rotate targets; may be swapped for clones on Alt+drag
	duplicated bool

	specificID int64 // VertexDrag/EdgeDrag/Resize target; -1 if unused
	handleIdx  int

	startScreen, lastScreen math32.Vector2
	startView               math32.Vector2
	viewScale               float32
	viewSize                math32.Vector2
	modifiers               protocol.SelectionModifier

	snapshot map[uint32]entity.State

	pivot       math32.Vector2
	anchor      math32.Vector2
	lastDelta   math32.Vector2
	lastAngle   float32
	thresholdPx float32

	draftPoints []math32.Vector2
}

// NewSession returns an Idle session gated by the given screen-space
// drag-noise threshold in pixels (spec.md §4.4).
func NewSession(thresholdPx float32) *Session {
	return &Session{thresholdPx: thresholdPx, phase: Idle, specificID: -1}
}

// Phase reports the session's current state-machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Mode reports the active transform mode (meaningful only while Active).
func (s *Session) Mode() Mode { return s.mode }

func isLineLike(k entity.Kind) bool {
	return k == entity.Line || k == entity.Polyline || k == entity.Arrow
}

// targetIDs returns the ids a Move/Rotate operates over, or the single
// specific id for VertexDrag/EdgeDrag/Resize.
func (s *Session) targetIDs() []uint32 {
	if s.mode == Move || s.mode == Rotate {
		return s.ids
	}
	if s.specificID < 0 {
		return nil
	}
	return []uint32{uint32(s.specificID)}
}

// BeginTransform opens a transform session, snapshotting the initial
// geometry of every target entity. Returns false if the session is already
// active, the target does not exist, or the mode/target combination is
// invalid — notably Resize against a line-like entity (Line/Polyline/
// Arrow), which has no resize-handle geometry (spec.md §9 Open Question 3).
func (s *Session) BeginTransform(ctx Context, ids []uint32, mode Mode, specificID uint32, handleOrVertexIndex int,
	startScreenXY, startViewXY math32.Vector2, viewScale float32, viewSize math32.Vector2, modifiers protocol.SelectionModifier) bool {
	if s.phase == Active {
		return false
	}
	if mode == Resize {
		k, ok := ctx.Entities.KindOf(specificID)
		if !ok || !(k == entity.Rect || k == entity.Circle || k == entity.Polygon) {
			return false
		}
	}
	if (mode == VertexDrag || mode == EdgeDrag || mode == Resize) && !ctx.Entities.Exists(specificID) {
		return false
	}

	s.phase = Active
	s.mode = mode
	s.specificID = int64(specificID)
	s.handleIdx = handleOrVertexIndex
	s.startScreen, s.lastScreen = startScreenXY, startScreenXY
	s.startView = startViewXY
	s.viewScale = viewScale
	s.viewSize = viewSize
	s.modifiers = modifiers
	s.ids = append([]uint32(nil), ids...)
	s.duplicated = false
	s.lastDelta = math32.Vector2{}
	s.lastAngle = 0
	s.draftPoints = nil

	ctx.History.BeginEntry()

	s.snapshot = map[uint32]entity.State{}
	for _, id := range s.targetIDs() {
		if st, ok := ctx.Entities.GetState(id); ok {
			s.snapshot[id] = st.Clone()
		}
	}

	if mode == Move && modifiers&protocol.ModAlt != 0 {
		s.duplicateSelection(ctx)
	}

	switch mode {
	case Resize:
		box := pick.ComputeAABB(s.snapshot[uint32(s.specificID)])
		s.anchor = anchorForHandle(box, handleOrVertexIndex)
	case Rotate:
		box := math32.Empty()
		for _, id := range s.ids {
			box = box.Union(pick.ComputeAABB(s.snapshot[id]))
		}
		s.pivot = box.Center()
	}
	return true
}

// duplicateSelection clones every currently-targeted entity into a new id,
// recording the clone's creation in history, and repoints the session's
// working id set and snapshot baseline at the clones (spec.md §4.4: "Alt =
// duplicate-on-drag ... the session operates on clones; original remains").
func (s *Session) duplicateSelection(ctx Context) {
	next := make([]uint32, len(s.ids))
	for i, id := range s.ids {
		orig, ok := s.snapshot[id]
		if !ok {
			next[i] = id
			continue
		}
		clone := orig.Clone()
		clone.ID = ctx.Entities.AllocID()
		ctx.Entities.RestoreState(clone)
		ctx.History.RecordEntity(clone.ID, nil, &clone)
		delete(s.snapshot, id)
		s.snapshot[clone.ID] = clone
		next[i] = clone.ID
	}
	s.ids = next
	s.duplicated = true
}

// UpdateTransform recomputes every target's geometry from its begin-time
// snapshot and the delta to the current pointer position, so repeated calls
// within one session are idempotent (spec.md §4.4). Modifiers are
// re-evaluated on every call.
func (s *Session) UpdateTransform(ctx Context, curScreenXY, curViewXY math32.Vector2, modifiers protocol.SelectionModifier) bool {
	if s.phase != Active {
		return false
	}
	s.modifiers = modifiers
	s.lastScreen = curScreenXY
	delta := curViewXY.Sub(s.startView)

	switch s.mode {
	case Move, EdgeDrag:
		if modifiers&protocol.ModShift != 0 {
			delta = axisLock(delta)
		}
		if ctx.Snap.Enabled && modifiers&protocol.ModCtrl == 0 {
			delta = s.snapMoveDelta(ctx, delta)
		}
		s.lastDelta = delta
		for _, id := range s.targetIDs() {
			orig, ok := s.snapshot[id]
			if !ok {
				continue
			}
			moved := translateState(orig, delta)
			applyState(ctx.Entities, moved)
			ctx.History.RecordEntity(id, cloneState(orig), cloneState(moved))
		}
	case VertexDrag:
		id := uint32(s.specificID)
		orig, ok := s.snapshot[id]
		if !ok {
			return true
		}
		target := curViewXY
		if modifiers&protocol.ModShift != 0 {
			target = snap45(referenceVertex(orig, s.handleIdx), curViewXY)
		}
		moved := withVertex(orig, s.handleIdx, target)
		applyState(ctx.Entities, moved)
		ctx.History.RecordEntity(id, cloneState(orig), cloneState(moved))
	case Resize:
		id := uint32(s.specificID)
		orig, ok := s.snapshot[id]
		if !ok {
			return true
		}
		box := normalizeBox(math32.BoxFromMinMax(s.anchor, curViewXY))
		box = clampBoxSize(box, s.anchor)
		resized := resizeState(orig, box)
		applyState(ctx.Entities, resized)
		ctx.History.RecordEntity(id, cloneState(orig), cloneState(resized))
	case Rotate:
		startAngle := angleTo(s.pivot, s.startView)
		curAngle := angleTo(s.pivot, curViewXY)
		angle := curAngle - startAngle
		s.lastAngle = angle
		for _, id := range s.targetIDs() {
			orig, ok := s.snapshot[id]
			if !ok {
				continue
			}
			rotated := rotateState(orig, s.pivot, angle)
			applyState(ctx.Entities, rotated)
			ctx.History.RecordEntity(id, cloneState(orig), cloneState(rotated))
		}
	}
	return true
}

// CommitTransform closes the session, finalizing a TransformResult per
// entity. A commit whose screen-space displacement is below the
// drag-noise threshold discards the opened history entry while leaving the
// already-applied geometry in place (spec.md §4.4, §8: "Below-threshold
// drag commits add no history entry").
func (s *Session) CommitTransform(ctx Context) ([]TransformResult, bool) {
	if s.phase != Active {
		return nil, false
	}
	results := make([]TransformResult, 0, len(s.targetIDs()))
	for _, id := range s.targetIDs() {
		results = append(results, s.resultFor(ctx, id))
	}
	if s.lastScreen.DistanceTo(s.startScreen) < s.thresholdPx {
		ctx.History.DiscardEntry()
	} else {
		ctx.History.CommitEntry()
	}
	s.phase = Idle
	return results, true
}

func (s *Session) resultFor(ctx Context, id uint32) TransformResult {
	switch s.mode {
	case Move, EdgeDrag:
		return TransformResult{ID: id, Op: OpMove, Payload: [4]float32{s.lastDelta.X, s.lastDelta.Y, 0, 0}}
	case VertexDrag:
		st, _ := ctx.Entities.GetState(id)
		p := referenceVertex(st, s.handleIdx)
		return TransformResult{ID: id, Op: OpVertexSet, Payload: [4]float32{float32(s.handleIdx), p.X, p.Y, 0}}
	case Resize:
		st, _ := ctx.Entities.GetState(id)
		box := pick.ComputeAABB(st)
		return TransformResult{ID: id, Op: OpResize, Payload: [4]float32{box.Min.X, box.Min.Y, box.Size().X, box.Size().Y}}
	case Rotate:
		deg := float32(s.lastAngle * 180 / math.Pi)
		return TransformResult{ID: id, Op: OpRotate, Payload: [4]float32{deg, 0, 0, 0}}
	}
	return TransformResult{ID: id}
}

// CancelTransform restores every target to its begin-time snapshot and
// discards the open history entry (spec.md §4.4, §5: "the only in-flight
// cancellation... restores the begin-snapshot").
func (s *Session) CancelTransform(ctx Context) bool {
	if s.phase != Active {
		return false
	}
	if s.duplicated {
		for _, id := range s.ids {
			ctx.Entities.RestoreRemoveEntity(id)
		}
	} else {
		for _, orig := range s.snapshot {
			ctx.Entities.RestoreState(orig)
		}
	}
	ctx.History.DiscardEntry()
	s.phase = Idle
	return true
}

// --- Draft authoring -------------------------------------------------

// AddDraftPoint appends a point to the in-progress draft entity (spec.md
// §4.4: "Draft: Author a new entity point-by-point").
func (s *Session) AddDraftPoint(pt math32.Vector2) { s.draftPoints = append(s.draftPoints, pt) }

// DraftPoints returns the points collected so far.
func (s *Session) DraftPoints() []math32.Vector2 { return append([]math32.Vector2(nil), s.draftPoints...) }

// CancelDraft discards the in-progress draft without touching history.
func (s *Session) CancelDraft() { s.draftPoints = nil }

// FinishDraft materializes the accumulated points into a new entity of the
// given kind and records its creation as a single history entry. Each kind
// interprets the point list as: Rect spans the bounding box of every point;
// Line/Arrow use the first and last points as endpoints; Polyline uses every
// point; Circle/Polygon take their center and radii from the points'
// bounding box (Polygon gets 6 sides). Other kinds are refused.
func (s *Session) FinishDraft(ctx Context, kind entity.Kind, stroke entity.StrokeAttrs, attrs entity.Attrs) (uint32, bool) {
	if len(s.draftPoints) < 2 {
		s.draftPoints = nil
		return 0, false
	}
	id := ctx.Entities.AllocID()
	ctx.History.BeginEntry()
	switch kind {
	case entity.Rect:
		box := math32.Empty()
		for _, p := range s.draftPoints {
			box = box.ExpandByPoint(p)
		}
		ctx.Entities.UpsertRect(id, entity.RectRecord{Pos: box.Min, Size: box.Size(), StrokeAttrs: stroke}, attrs)
	case entity.Line:
		ctx.Entities.UpsertLine(id, entity.LineRecord{A: s.draftPoints[0], B: s.draftPoints[len(s.draftPoints)-1], StrokeAttrs: stroke}, attrs)
	case entity.Arrow:
		ctx.Entities.UpsertArrow(id, entity.ArrowRecord{A: s.draftPoints[0], B: s.draftPoints[len(s.draftPoints)-1], HeadSize: 10, StrokeAttrs: stroke}, attrs)
	case entity.Polyline:
		ctx.Entities.UpsertPolyline(id, s.draftPoints, stroke, attrs)
	case entity.Circle, entity.Polygon:
		box := math32.Empty()
		for _, p := range s.draftPoints {
			box = box.ExpandByPoint(p)
		}
		rx, ry := box.Size().X/2, box.Size().Y/2
		if kind == entity.Circle {
			ctx.Entities.UpsertCircle(id, entity.CircleRecord{Center: box.Center(), RX: rx, RY: ry, Scale: 1, StrokeAttrs: stroke}, attrs)
		} else {
			ctx.Entities.UpsertPolygon(id, entity.PolygonRecord{Center: box.Center(), RX: rx, RY: ry, Scale: 1, Sides: 6, StrokeAttrs: stroke}, attrs)
		}
	default:
		ctx.History.DiscardEntry()
		s.draftPoints = nil
		return 0, false
	}
	if st, ok := ctx.Entities.GetState(id); ok {
		ctx.History.RecordEntity(id, nil, &st)
	}
	ctx.History.CommitEntry()
	s.draftPoints = nil
	return id, true
}

func cloneState(s entity.State) *entity.State {
	c := s.Clone()
	return &c
}
