// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

// bucket holds up to BucketCapacity slot indices for pages whose hash
// shares the bucket's local-depth prefix. Multiple directory entries may
// point at the same bucket when localDepth < globalDepth.
type bucket struct {
	localDepth int
	slots      []int
}

func newBucket(localDepth int) *bucket {
	return &bucket{localDepth: localDepth}
}

func (b *bucket) find(entries []entry, id PageID) (int, bool) {
	for _, slot := range b.slots {
		if entries[slot].inUse && entries[slot].id == id {
			return slot, true
		}
	}
	return -1, false
}

func (b *bucket) removeSlot(slot int) {
	for i, s := range b.slots {
		if s == slot {
			b.slots = append(b.slots[:i], b.slots[i+1:]...)
			return
		}
	}
}

// bucketIndex returns the directory index for a hash at the given global
// depth: the low globalDepth bits of the hash.
func bucketIndex(h uint64, globalDepth int) int {
	if globalDepth == 0 {
		return 0
	}
	mask := uint64(1)<<uint(globalDepth) - 1
	return int(h & mask)
}

func (c *Cache) bucketFor(id PageID) *bucket {
	idx := bucketIndex(hash(id), c.globalDepth)
	return c.directory[idx]
}

// doubleDirectory doubles the directory, with new entries mirroring the old
// ones at the same relative index, and increments globalDepth.
func (c *Cache) doubleDirectory() {
	old := c.directory
	next := make([]*bucket, len(old)*2)
	copy(next, old)
	copy(next[len(old):], old)
	c.directory = next
	c.globalDepth++
}

// trySplit splits b, doubling the directory first if b is already at the
// current global depth. Returns false if the directory is already at
// maxGlobalDepth and cannot grow further.
func (c *Cache) trySplit(b *bucket) bool {
	if b.localDepth == c.globalDepth {
		if c.globalDepth >= c.maxGlobalDepth {
			return false
		}
		c.doubleDirectory()
	}

	newDepth := b.localDepth + 1
	sibling0 := newBucket(newDepth)
	sibling1 := newBucket(newDepth)

	for _, slot := range b.slots {
		h := hash(c.entries[slot].id)
		if (h>>uint(newDepth-1))&1 == 0 {
			sibling0.slots = append(sibling0.slots, slot)
		} else {
			sibling1.slots = append(sibling1.slots, slot)
		}
	}

	for i := range c.directory {
		if c.directory[i] != b {
			continue
		}
		if (uint64(i)>>uint(newDepth-1))&1 == 0 {
			c.directory[i] = sibling0
		} else {
			c.directory[i] = sibling1
		}
	}
	return true
}
