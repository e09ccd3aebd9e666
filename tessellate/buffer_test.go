// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"
	"testing"

	"cogentcore.org/cadcore/colors"
	"cogentcore.org/cadcore/entity"
	"cogentcore.org/cadcore/layer"
	"cogentcore.org/cadcore/math32"
	"github.com/stretchr/testify/assert"
)

func assertFinite(t *testing.T, vals []float32) {
	for _, v := range vals {
		assert.False(t, math.IsNaN(float64(v)), "unexpected NaN")
		assert.False(t, math.IsInf(float64(v), 0), "unexpected Inf")
	}
}

func TestBuildRectProducesTwoFillTrianglesAndFourStrokeQuads(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{
		Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10),
		Fill:        colors.RGBA{R: 1, A: 1},
		StrokeAttrs: entity.StrokeAttrs{StrokeEnabled: true, StrokeWidth: 2, Stroke: colors.RGBA{A: 1}},
	}, entity.DefaultAttrs())

	b := Build(st, ls, 1, 1)
	assert.Len(t, b.Fill, 2*3*floatsPerVertex)
	assert.Len(t, b.Stroke, 4*6*floatsPerVertex)
	assertFinite(t, b.Fill)
	assertFinite(t, b.Stroke)
}

func TestBuildSkipsHiddenLayer(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	hidden := ls.Create("Hidden")
	ls.SetFlags(hidden, 0)
	id := st.AllocID()
	st.UpsertRect(id, entity.RectRecord{Pos: math32.Vec2(0, 0), Size: math32.Vec2(10, 10), Fill: colors.RGBA{A: 1}}, entity.Attrs{LayerID: hidden, Flags: 1})

	b := Build(st, ls, 1, 1)
	assert.Empty(t, b.Fill)
	assert.Empty(t, b.Stroke)
}

func TestBuildCircleIsFiniteAndNonEmpty(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	id := st.AllocID()
	st.UpsertCircle(id, entity.CircleRecord{
		Center: math32.Vec2(5, 5), RX: 5, RY: 5, Scale: 1,
		Fill:        colors.RGBA{G: 1, A: 1},
		StrokeAttrs: entity.StrokeAttrs{StrokeEnabled: true, StrokeWidth: 1, Stroke: colors.RGBA{A: 1}},
	}, entity.DefaultAttrs())

	b := Build(st, ls, 1, 1)
	assert.NotEmpty(t, b.Fill)
	assert.NotEmpty(t, b.Stroke)
	assertFinite(t, b.Fill)
	assertFinite(t, b.Stroke)
}

func TestEarClipConcaveArrowPolygon(t *testing.T) {
	// A concave arrow/chevron shape: the indentation forces a reflex vertex.
	pts := []math32.Vector2{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 1}, {X: 0, Y: 2},
	}
	tris := earClip(pts)
	assert.Len(t, tris, len(pts)-2)
	for _, tri := range tris {
		for _, i := range tri {
			assert.True(t, i >= 0 && i < len(pts))
		}
	}
}

func TestLineHasNoFillOnlyStroke(t *testing.T) {
	st := entity.NewStore()
	ls := layer.NewStore()
	id := st.AllocID()
	st.UpsertLine(id, entity.LineRecord{A: math32.Vec2(0, 0), B: math32.Vec2(10, 0), StrokeAttrs: entity.StrokeAttrs{StrokeEnabled: true, StrokeWidth: 1, Stroke: colors.RGBA{A: 1}}}, entity.DefaultAttrs())

	b := Build(st, ls, 1, 1)
	assert.Empty(t, b.Fill)
	assert.Len(t, b.Stroke, 6*floatsPerVertex)
}
