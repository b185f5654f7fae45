// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

// priority classifies a cached page for eviction preference. A page
// demoted to PriorityScanLow after a long scan is evicted ahead of pages
// that still have their reference bit set.
type priority int8

const (
	PriorityNormal priority = iota
	PriorityScanLow
)

// entry is a single cached page slot. Slots are addressed by index into
// Cache.entries and never escape the package as pointers; callers only ever
// see PageID and copied bytes, so a freed slot's reuse cannot be confused
// with a stale external reference.
type entry struct {
	id       PageID
	bytes    [PageSize]byte
	valid    bool
	refBit   bool
	pinCount int
	dirty    bool
	priority priority
	inUse    bool // false for a freed slot awaiting reuse
}
