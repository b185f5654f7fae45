// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package intkv implements an embedded, single-writer ordered key-value
// store for fixed-width int64 keys and values: a memtable backed by
// package memtable, immutable sorted runs in package sstable, leveled
// size-tiered compaction, and a shared page cache in internal/cache that
// mediates every page read.
//
// The engine assumes one writer and one reader at a time, serializes all
// operations on the memtable, levels, and page cache, and performs no
// concurrent I/O of its own; callers that need concurrent access must
// serialize it themselves.
package intkv
