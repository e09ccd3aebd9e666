// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector2Arith(t *testing.T) {
	a := Vec2(1, 2)
	b := Vec2(3, 4)
	assert.Equal(t, Vec2(4, 6), a.Add(b))
	assert.Equal(t, Vec2(-2, -2), a.Sub(b))
	assert.Equal(t, Vec2(2, 4), a.MulScalar(2))
	assert.Equal(t, float32(11), a.Dot(b))
}

func TestVector2Length(t *testing.T) {
	v := Vec2(3, 4)
	assert.Equal(t, float32(5), v.Length())
	assert.Equal(t, float32(25), v.LengthSquared())
}

func TestVector2Lerp(t *testing.T) {
	a := Vec2(0, 0)
	b := Vec2(10, 20)
	assert.Equal(t, Vec2(5, 10), a.Lerp(b, 0.5))
}

func TestVector2RotateAround(t *testing.T) {
	v := Vec2(1, 0)
	pivot := Vec2(0, 0)
	r := v.RotateAround(pivot, 3.14159265/2)
	assert.InDelta(t, 0, r.X, 1e-4)
	assert.InDelta(t, 1, r.Y, 1e-4)
}

func TestVector2IsFinite(t *testing.T) {
	assert.True(t, Vec2(1, 2).IsFinite())
	assert.False(t, Vec2(float32(math32NaN()), 0).IsFinite())
}

func math32NaN() float64 {
	var zero float64
	return zero / zero
}
