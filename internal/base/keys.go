// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base holds types shared by every layer of the store: the key and
// value domain, the tombstone sentinel, and the logging interface. It exists
// so that sstable, cache, bloom and memtable can agree on these without
// importing the root intkv package (which imports all of them).
package base

import "math"

// Key and Value are both fixed-width signed 64-bit integers. The on-disk
// page layout in package sstable hard-codes sizeof(Key) == sizeof(Value) ==
// 8 bytes as a compile-time constant; the store is not generic over other
// widths.
type Key = int64
type Value = int64

// Tombstone is the reserved sentinel value marking a logical delete. Callers
// must never Put this value as real data; Put rejects it with ErrBadInput.
const Tombstone Value = math.MinInt64

// Pair is a single (key, value) entry as it flows between the memtable,
// sorted runs, and the engine's read paths.
type Pair struct {
	Key   Key
	Value Value
}

// IsTombstone reports whether v is the logical-delete marker.
func IsTombstone(v Value) bool {
	return v == Tombstone
}

// KeySize and ValueSize are the encoded widths of Key and Value on disk.
const (
	KeySize   = 8
	ValueSize = 8
	PairSize  = KeySize + ValueSize
)
