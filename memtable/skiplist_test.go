// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package memtable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"intkv/internal/base"
)

func TestInsertLookupUpdate(t *testing.T) {
	m := New(10)
	require.Equal(t, Inserted, m.Insert(5, 500))
	require.Equal(t, Updated, m.Insert(5, 501))

	v, ok := m.Lookup(5)
	require.True(t, ok)
	require.Equal(t, base.Value(501), v)
}

func TestInsertFullWhenAtCapacity(t *testing.T) {
	m := New(2)
	require.Equal(t, Inserted, m.Insert(1, 10))
	require.Equal(t, Inserted, m.Insert(2, 20))
	require.Equal(t, Full, m.Insert(3, 30))

	// Updating an existing key must still succeed even when full.
	require.Equal(t, Updated, m.Insert(1, 11))
}

func TestLookupAbsent(t *testing.T) {
	m := New(10)
	_, ok := m.Lookup(99)
	require.False(t, ok)
}

func TestRangeAscendingOrder(t *testing.T) {
	m := New(100)
	keys := []base.Key{5, 1, 9, 3, 7, 2, 8, 4, 6}
	for _, k := range keys {
		m.Insert(k, k*10)
	}

	got := m.Range(2, 7)
	require.Equal(t, []base.Pair{
		{Key: 2, Value: 20}, {Key: 3, Value: 30}, {Key: 4, Value: 40},
		{Key: 5, Value: 50}, {Key: 6, Value: 60}, {Key: 7, Value: 70},
	}, got)
}

func TestRangeEmptyWhenLoAfterHi(t *testing.T) {
	m := New(10)
	m.Insert(1, 1)
	require.Nil(t, m.Range(5, 1))
}

func TestMinMaxKey(t *testing.T) {
	m := New(10)
	for _, k := range []base.Key{5, 1, 9, 3} {
		m.Insert(k, k)
	}
	require.Equal(t, base.Key(1), m.MinKey())
	require.Equal(t, base.Key(9), m.MaxKey())
}

func TestClearResetsState(t *testing.T) {
	m := New(10)
	m.Insert(1, 1)
	m.Clear()
	require.Equal(t, 0, m.Size())
	require.True(t, m.Empty())
	require.Equal(t, Inserted, m.Insert(1, 1))
}

func TestSingleElementRange(t *testing.T) {
	m := New(10)
	m.Insert(4, 40)
	require.Equal(t, []base.Pair{{Key: 4, Value: 40}}, m.Range(4, 4))
	require.Nil(t, m.Range(5, 5))
}
