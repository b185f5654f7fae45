// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoFalseNegatives(t *testing.T) {
	f := New(1000, 0.01)
	for k := int64(0); k < 1000; k++ {
		f.Add(k)
	}
	for k := int64(0); k < 1000; k++ {
		require.True(t, f.MightContain(k), "key %d must be possible after Add", k)
	}
}

func TestFalsePositiveRateBounded(t *testing.T) {
	f := New(1000, 0.01)
	for k := int64(0); k < 1000; k++ {
		f.Add(k)
	}

	falsePositives := 0
	total := 9000
	for k := int64(1000); k < int64(1000+total); k++ {
		if f.MightContain(k) {
			falsePositives++
		}
	}
	rate := float64(falsePositives) / float64(total)
	require.Lessf(t, rate, 0.02, "false positive rate %f exceeded generous 2%% bound", rate)
}

func TestEmptyFilterRejectsEverything(t *testing.T) {
	f := New(100, 0.01)
	require.False(t, f.MightContain(42))
}

func TestRoundTripSerialization(t *testing.T) {
	f := New(500, 0.02)
	for k := int64(0); k < 500; k++ {
		f.Add(k * 3)
	}

	restored := NewFromBits(append([]byte(nil), f.Bits()...), f.M(), f.K())
	for k := int64(0); k < 500; k++ {
		require.True(t, restored.MightContain(k*3))
	}
}

func TestDerivedParametersScaleWithN(t *testing.T) {
	small := New(10, 0.01)
	large := New(10000, 0.01)
	require.Less(t, small.M(), large.M())
}
