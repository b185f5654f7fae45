// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func page(fill byte) []byte {
	b := make([]byte, PageSize)
	for i := range b {
		b[i] = fill
	}
	return b
}

func TestPutGetRoundTrip(t *testing.T) {
	c := New(Options{MaxPages: 8, EvictionEnabled: true})
	id := PageID{File: "run1.sst", Offset: 4096}
	require.NoError(t, c.Put(id, page(7)))

	out := make([]byte, PageSize)
	require.True(t, c.Get(id, out))
	require.Equal(t, page(7), out)
}

func TestGetMissDoesNotSynthesizeIO(t *testing.T) {
	c := New(Options{MaxPages: 8})
	out := make([]byte, PageSize)
	require.False(t, c.Get(PageID{File: "x", Offset: 0}, out))
}

func TestContainsAndRemove(t *testing.T) {
	c := New(Options{MaxPages: 8})
	id := PageID{File: "a", Offset: 0}
	require.NoError(t, c.Put(id, page(1)))
	require.True(t, c.Contains(id))
	require.True(t, c.Remove(id))
	require.False(t, c.Contains(id))
	require.False(t, c.Remove(id))
}

func TestPinPreventsEviction(t *testing.T) {
	c := New(Options{MaxPages: 1, EvictionEnabled: true})
	id := PageID{File: "pinned", Offset: 0}
	require.NoError(t, c.Put(id, page(1)))
	require.NoError(t, c.Pin(id))

	err := c.Put(PageID{File: "other", Offset: 0}, page(2))
	require.ErrorIs(t, err, ErrCacheFull)
}

func TestUnpinBelowZeroFails(t *testing.T) {
	c := New(Options{MaxPages: 8})
	id := PageID{File: "a", Offset: 0}
	require.NoError(t, c.Put(id, page(1)))
	require.ErrorIs(t, c.Unpin(id), ErrNotPinned)
}

func TestCapacityExhaustedWithoutEvictionFails(t *testing.T) {
	c := New(Options{MaxPages: 1, EvictionEnabled: false})
	require.NoError(t, c.Put(PageID{File: "a", Offset: 0}, page(1)))
	err := c.Put(PageID{File: "b", Offset: 0}, page(2))
	require.ErrorIs(t, err, ErrCacheFull)
}

func TestDirtyEvictionWritesBack(t *testing.T) {
	var wrote []PageID
	c := New(Options{
		MaxPages:        1,
		EvictionEnabled: true,
		OnEvict: func(id PageID, bytes []byte) error {
			wrote = append(wrote, id)
			return nil
		},
	})
	victim := PageID{File: "victim", Offset: 0}
	require.NoError(t, c.Put(victim, page(1)))
	require.NoError(t, c.MarkDirty(victim))

	require.NoError(t, c.Put(PageID{File: "new", Offset: 0}, page(2)))
	require.Equal(t, []PageID{victim}, wrote)
	require.False(t, c.Contains(victim))
}

func TestCleanEvictionSkipsWriteBack(t *testing.T) {
	called := false
	c := New(Options{
		MaxPages:        1,
		EvictionEnabled: true,
		OnEvict: func(id PageID, bytes []byte) error {
			called = true
			return nil
		},
	})
	require.NoError(t, c.Put(PageID{File: "clean", Offset: 0}, page(1)))
	require.NoError(t, c.Put(PageID{File: "new", Offset: 0}, page(2)))
	require.False(t, called)
}

func TestClockGivesReferencedPagesASecondChance(t *testing.T) {
	c := New(Options{MaxPages: 2, EvictionEnabled: true})
	a := PageID{File: "a", Offset: 0}
	b := PageID{File: "b", Offset: 0}
	require.NoError(t, c.Put(a, page(1)))
	require.NoError(t, c.Put(b, page(2)))

	// Touch a via Get so its reference bit is set; it should survive one
	// eviction pass in favor of b.
	out := make([]byte, PageSize)
	require.True(t, c.Get(a, out))

	require.NoError(t, c.Put(PageID{File: "c", Offset: 0}, page(3)))
	require.True(t, c.Contains(a))
	require.False(t, c.Contains(b))
}

func TestSequentialFloodDemotesTouchedPages(t *testing.T) {
	c := New(Options{MaxPages: 100, EvictionEnabled: true, FloodThreshold: 3})
	ids := make([]PageID, 5)
	for i := range ids {
		ids[i] = PageID{File: "scan.sst", Offset: uint64(i * PageSize)}
		require.NoError(t, c.Put(ids[i], page(byte(i))))
	}

	scan := c.BeginScan()
	for _, id := range ids {
		c.Touch(scan, id)
	}
	c.EndScan(scan)

	for _, id := range ids {
		b := c.bucketFor(id)
		slot, ok := b.find(c.entries, id)
		require.True(t, ok)
		require.Equal(t, PriorityScanLow, c.entries[slot].priority)
	}
}

func TestShortScanLeavesPrioritiesUntouched(t *testing.T) {
	c := New(Options{MaxPages: 100, EvictionEnabled: true, FloodThreshold: 10})
	id := PageID{File: "a", Offset: 0}
	require.NoError(t, c.Put(id, page(1)))

	scan := c.BeginScan()
	c.Touch(scan, id)
	c.EndScan(scan)

	b := c.bucketFor(id)
	slot, _ := b.find(c.entries, id)
	require.Equal(t, PriorityNormal, c.entries[slot].priority)
}

func TestScanLowPagesPreferredForEviction(t *testing.T) {
	c := New(Options{MaxPages: 2, EvictionEnabled: true, FloodThreshold: 1})
	hot := PageID{File: "hot", Offset: 0}
	cold := PageID{File: "cold", Offset: 0}
	require.NoError(t, c.Put(hot, page(1)))
	require.NoError(t, c.Put(cold, page(2)))

	out := make([]byte, PageSize)
	require.True(t, c.Get(hot, out)) // set hot's reference bit

	scan := c.BeginScan()
	c.Touch(scan, cold)
	c.Touch(scan, cold) // exceed threshold of 1
	c.EndScan(scan)

	require.NoError(t, c.Put(PageID{File: "third", Offset: 0}, page(3)))
	require.True(t, c.Contains(hot), "reference-bit page should survive over a scan-low page")
	require.False(t, c.Contains(cold), "scan-low page should be preferred victim")
}

func TestDirectorySplitsUnderBucketPressure(t *testing.T) {
	c := New(Options{
		InitialGlobalDepth: 1,
		MaxGlobalDepth:     16,
		BucketCapacity:     2,
		MaxPages:           64,
		EvictionEnabled:    true,
	})
	for i := 0; i < 40; i++ {
		id := PageID{File: fmt.Sprintf("run-%d.sst", i), Offset: uint64(i)}
		require.NoError(t, c.Put(id, page(byte(i))))
	}
	require.Greater(t, c.globalDepth, 1)
	for i := 0; i < 40; i++ {
		id := PageID{File: fmt.Sprintf("run-%d.sst", i), Offset: uint64(i)}
		require.True(t, c.Contains(id))
	}
}

func TestDirectorySplitFailsAtMaxDepth(t *testing.T) {
	c := New(Options{
		InitialGlobalDepth: 1,
		MaxGlobalDepth:     1,
		BucketCapacity:     1,
		MaxPages:           64,
		EvictionEnabled:    true,
	})
	// Force collisions into the same bucket by using a scheme where every
	// id maps into bucket 0 or 1; eventually one bucket overflows past
	// capacity 1 with no room to split further.
	inserted := 0
	for i := 0; i < 64; i++ {
		id := PageID{File: fmt.Sprintf("f%d", i), Offset: 0}
		if err := c.Put(id, page(1)); err != nil {
			require.ErrorIs(t, err, ErrCacheFull)
			return
		}
		inserted++
	}
	t.Fatalf("expected ErrCacheFull before exhausting 64 inserts, inserted %d", inserted)
}

func TestClear(t *testing.T) {
	c := New(Options{InitialGlobalDepth: 2, MaxPages: 8})
	require.NoError(t, c.Put(PageID{File: "a", Offset: 0}, page(1)))
	c.Clear()
	require.Equal(t, 0, c.Len())
	require.False(t, c.Contains(PageID{File: "a", Offset: 0}))
	require.Equal(t, 2, c.globalDepth)
}

func TestOverwriteSetsReferenceBitAndKeepsSlot(t *testing.T) {
	c := New(Options{MaxPages: 8})
	id := PageID{File: "a", Offset: 0}
	require.NoError(t, c.Put(id, page(1)))
	require.NoError(t, c.Put(id, page(2)))
	require.Equal(t, 1, c.Len())

	b := c.bucketFor(id)
	slot, ok := b.find(c.entries, id)
	require.True(t, ok)
	require.True(t, c.entries[slot].refBit)

	out := make([]byte, PageSize)
	require.True(t, c.Get(id, out))
	require.Equal(t, page(2), out)
}
