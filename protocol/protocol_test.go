// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandMagicBytes(t *testing.T) {
	// little-endian bytes of CommandMagic must spell "EWDC"
	var b [4]byte
	v := CommandMagic
	for i := 0; i < 4; i++ {
		b[i] = byte(v >> (8 * i))
	}
	assert.Equal(t, "EWDC", string(b[:]))
}

func TestBuildInfoStable(t *testing.T) {
	a := BuildInfo()
	b := BuildInfo()
	assert.Equal(t, a, b)
	assert.NotZero(t, a.ABIHash)
}

func TestAllFeaturesIncludesEveryFlag(t *testing.T) {
	for _, f := range []FeatureFlags{
		FeatureProtocol, FeatureLayersFlags, FeatureSelectionOrder, FeatureSnapshotVNext,
		FeatureEventStream, FeatureOverlayQueries, FeatureInteractiveTransform,
	} {
		assert.NotZero(t, AllFeatures&f)
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "Ok", Ok.String())
	assert.Equal(t, "InvalidHeader", InvalidHeader.String())
}
