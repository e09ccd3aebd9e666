// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package entity

import "cogentcore.org/cadcore/colors"

// OverrideTarget identifies which style channel an override applies to
// (spec.md §3).
type OverrideTarget uint8

const (
	TargetStroke OverrideTarget = iota
	TargetFill
	TargetTextColor
	TargetTextBackground
)

// ColorOverride is one style channel's override: a color plus whether
// the override is active (an override can exist but be disabled, falling
// back to the layer default).
type ColorOverride struct {
	Color   colors.RGBA
	Enabled bool
}

// StyleOverride is the sparse per-entity override record (spec.md §3):
// "the effective style for an entity is override if present else
// layer-default".
type StyleOverride struct {
	Stroke         ColorOverride
	Fill           ColorOverride
	TextColor      ColorOverride
	TextBackground ColorOverride
}

// Get returns the override for the given target.
func (s *StyleOverride) Get(t OverrideTarget) ColorOverride {
	switch t {
	case TargetStroke:
		return s.Stroke
	case TargetFill:
		return s.Fill
	case TargetTextColor:
		return s.TextColor
	case TargetTextBackground:
		return s.TextBackground
	}
	return ColorOverride{}
}

// Set stores the override for the given target.
func (s *StyleOverride) Set(t OverrideTarget, c ColorOverride) {
	switch t {
	case TargetStroke:
		s.Stroke = c
	case TargetFill:
		s.Fill = c
	case TargetTextColor:
		s.TextColor = c
	case TargetTextBackground:
		s.TextBackground = c
	}
}

// IsZero reports whether no channel has an active override, meaning the
// sparse map entry can be dropped entirely.
func (s *StyleOverride) IsZero() bool {
	return *s == StyleOverride{}
}
