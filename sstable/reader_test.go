// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"intkv/internal/cache"
)

func newTestCache() *cache.Cache {
	return cache.New(cache.Options{
		InitialGlobalDepth: 2,
		MaxGlobalDepth:     8,
		BucketCapacity:     4,
		MaxPages:           4096,
		EvictionEnabled:    true,
	})
}

func buildTestRun(t *testing.T, n int) (*Reader, []int64) {
	t.Helper()
	pairs := seqPairs(n)
	path := filepath.Join(t.TempDir(), "run.sst")
	_, err := Build(path, pairs, 1, 0.01)
	require.NoError(t, err)

	r, err := Open(path, newTestCache())
	require.NoError(t, err)

	keys := make([]int64, n)
	for i, p := range pairs {
		keys[i] = int64(p.Key)
	}
	return r, keys
}

func TestGetTreeModeFindsEveryKey(t *testing.T) {
	r, keys := buildTestRun(t, 900)
	for _, k := range keys {
		v, found, err := r.Get(k, ModeTree)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, k+1, v)
	}
}

func TestGetBinaryModeFindsEveryKey(t *testing.T) {
	r, keys := buildTestRun(t, 900)
	for _, k := range keys {
		v, found, err := r.Get(k, ModeBinary)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, k+1, v)
	}
}

func TestGetRejectsOutOfBoundsWithoutError(t *testing.T) {
	r, _ := buildTestRun(t, 100)
	_, found, err := r.Get(-1, ModeTree)
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = r.Get(r.MaxKey()+1000, ModeBinary)
	require.NoError(t, err)
	require.False(t, found)
}

func TestGetRejectsAbsentKeyWithinBounds(t *testing.T) {
	r, _ := buildTestRun(t, 100)
	// keys are even; every odd key in range is absent.
	_, found, err := r.Get(1, ModeTree)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRangeScanReturnsAscendingSubrange(t *testing.T) {
	r, _ := buildTestRun(t, 300)
	pairs, err := r.RangeScan(50, 150, ModeTree)
	require.NoError(t, err)
	require.NotEmpty(t, pairs)
	for i, p := range pairs {
		require.GreaterOrEqual(t, int64(p.Key), int64(50))
		require.LessOrEqual(t, int64(p.Key), int64(150))
		if i > 0 {
			require.Greater(t, p.Key, pairs[i-1].Key)
		}
	}
}

func TestRangeScanEmptyOutsideBounds(t *testing.T) {
	r, _ := buildTestRun(t, 50)
	pairs, err := r.RangeScan(int64(r.MaxKey())+10, int64(r.MaxKey())+20, ModeTree)
	require.NoError(t, err)
	require.Empty(t, pairs)
}

func TestRangeScanAgreesAcrossModes(t *testing.T) {
	r, _ := buildTestRun(t, 600)
	treeResult, err := r.RangeScan(10, 500, ModeTree)
	require.NoError(t, err)
	binResult, err := r.RangeScan(10, 500, ModeBinary)
	require.NoError(t, err)
	require.Equal(t, treeResult, binResult)
}

func TestFilterNeverFalseNegatesInsertedKeys(t *testing.T) {
	r, keys := buildTestRun(t, 400)
	for _, k := range keys {
		require.True(t, r.Filter().MightContain(k))
	}
}
