// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"intkv/internal/base"
)

func buildRunFromPairs(t *testing.T, pairs []base.Pair, level int) *Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.sst")
	_, err := Build(path, pairs, level, 0.01)
	require.NoError(t, err)
	r, err := Open(path, newTestCache())
	require.NoError(t, err)
	return r
}

func TestMergeUnionsDisjointKeys(t *testing.T) {
	older := buildRunFromPairs(t, []base.Pair{{Key: 0, Value: 10}, {Key: 4, Value: 40}}, 0)
	younger := buildRunFromPairs(t, []base.Pair{{Key: 2, Value: 20}, {Key: 6, Value: 60}}, 0)

	outPath := filepath.Join(t.TempDir(), "merged.sst")
	info, err := Merge(older, younger, outPath, 1, 0.01)
	require.NoError(t, err)
	require.Equal(t, uint64(4), info.EntryCount)

	merged, err := Open(outPath, newTestCache())
	require.NoError(t, err)
	pairs, err := merged.RangeScan(0, 6, ModeTree)
	require.NoError(t, err)
	require.Len(t, pairs, 4)
	require.Equal(t, []base.Pair{
		{Key: 0, Value: 10}, {Key: 2, Value: 20}, {Key: 4, Value: 40}, {Key: 6, Value: 60},
	}, pairs)
}

func TestMergeYoungerWinsOnConflict(t *testing.T) {
	older := buildRunFromPairs(t, []base.Pair{{Key: 1, Value: 100}, {Key: 2, Value: 200}}, 0)
	younger := buildRunFromPairs(t, []base.Pair{{Key: 2, Value: 999}, {Key: 3, Value: 300}}, 0)

	outPath := filepath.Join(t.TempDir(), "merged.sst")
	_, err := Merge(older, younger, outPath, 1, 0.01)
	require.NoError(t, err)

	merged, err := Open(outPath, newTestCache())
	require.NoError(t, err)
	v, found, err := merged.Get(2, ModeTree)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(999), v)
}

func TestMergeRetainsTombstones(t *testing.T) {
	older := buildRunFromPairs(t, []base.Pair{{Key: 1, Value: 111}}, 0)
	younger := buildRunFromPairs(t, []base.Pair{{Key: 1, Value: base.Tombstone}}, 0)

	outPath := filepath.Join(t.TempDir(), "merged.sst")
	_, err := Merge(older, younger, outPath, 1, 0.01)
	require.NoError(t, err)

	merged, err := Open(outPath, newTestCache())
	require.NoError(t, err)
	v, found, err := merged.Get(1, ModeTree)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, base.IsTombstone(v))
}
