// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package cache implements the buffer pool that mediates every page read in
// the store: a fixed-capacity, page-addressable cache with an extendible
// hashing directory and CLOCK eviction, grounded on the reference
// implementation's BufferPool (extendible hashing over xxhash(PageID),
// second-chance eviction with a circular clock ring, write-back on eviction
// of dirty pages, and demotion of a long scan's pages to preferred-victim
// status).
package cache

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrCacheFull is returned by Put when the cache cannot make room: capacity
// is exhausted with eviction disabled, every resident page is pinned, or the
// extendible-hashing directory is already at MaxGlobalDepth and the target
// bucket is still full after splitting.
var ErrCacheFull = errors.New("cache: full")

// ErrNotPresent is returned by Pin, Unpin, and MarkDirty for a page the
// cache does not currently hold.
var ErrNotPresent = errors.New("cache: page not present")

// ErrNotPinned is returned by Unpin when the page's pin count is already
// zero.
var ErrNotPinned = errors.New("cache: page not pinned")

// Options configures a Cache at construction.
type Options struct {
	// InitialGlobalDepth is D0: the directory starts with 2^D0 buckets.
	InitialGlobalDepth int
	// MaxGlobalDepth is D_max: the directory never grows past 2^D_max
	// buckets.
	MaxGlobalDepth int
	// BucketCapacity is B: the maximum number of pages per bucket before
	// a split is attempted.
	BucketCapacity int
	// MaxPages is C_max: the maximum number of resident pages across the
	// whole cache.
	MaxPages int
	// FloodThreshold is the page count above which a scan's pages are
	// demoted to PriorityScanLow at EndScan.
	FloodThreshold int
	// EvictionEnabled, if false, makes Put fail with ErrCacheFull instead
	// of evicting when the cache is at MaxPages.
	EvictionEnabled bool
	// OnEvict is invoked with a dirty page's id and bytes just before its
	// slot is reused. May be nil.
	OnEvict WriteBackFunc
	// Metrics, if non-nil, is updated on every hit, miss, eviction, and
	// split.
	Metrics *Metrics
}

func (o *Options) ensureDefaults() {
	if o.InitialGlobalDepth <= 0 {
		o.InitialGlobalDepth = 2
	}
	if o.MaxGlobalDepth <= 0 {
		o.MaxGlobalDepth = 16
	}
	if o.BucketCapacity <= 0 {
		o.BucketCapacity = 4
	}
	if o.MaxPages <= 0 {
		o.MaxPages = 1024
	}
	if o.FloodThreshold <= 0 {
		o.FloodThreshold = o.MaxPages
	}
}

// Cache is a fixed-capacity, page-addressable cache with an extendible
// hashing directory and CLOCK eviction. It is not safe for concurrent use;
// the engine that owns it serializes all access, per spec §5.
type Cache struct {
	initialDepth    int
	globalDepth     int
	maxGlobalDepth  int
	bucketCapacity  int
	maxPages        int
	floodThreshold  int
	evictionEnabled bool
	onEvict         WriteBackFunc
	metrics         *Metrics

	directory []*bucket
	entries   []entry
	freeList  []int
	count     int
	ring      ring

	scans      map[ScanID]*scanState
	nextScanID ScanID
}

// New constructs a Cache with the given options.
func New(opts Options) *Cache {
	opts.ensureDefaults()
	c := &Cache{
		initialDepth:    opts.InitialGlobalDepth,
		globalDepth:     opts.InitialGlobalDepth,
		maxGlobalDepth:  opts.MaxGlobalDepth,
		bucketCapacity:  opts.BucketCapacity,
		maxPages:        opts.MaxPages,
		floodThreshold:  opts.FloodThreshold,
		evictionEnabled: opts.EvictionEnabled,
		onEvict:         opts.OnEvict,
		metrics:         opts.Metrics,
		scans:           make(map[ScanID]*scanState),
	}
	c.resetDirectory()
	return c
}

func (c *Cache) resetDirectory() {
	size := 1 << uint(c.initialDepth)
	c.directory = make([]*bucket, size)
	for i := range c.directory {
		c.directory[i] = newBucket(c.initialDepth)
	}
	c.globalDepth = c.initialDepth
	c.entries = nil
	c.freeList = nil
	c.count = 0
	c.ring = ring{}
	c.scans = make(map[ScanID]*scanState)
}

func (c *Cache) allocSlot() int {
	if n := len(c.freeList); n > 0 {
		slot := c.freeList[n-1]
		c.freeList = c.freeList[:n-1]
		return slot
	}
	c.entries = append(c.entries, entry{})
	return len(c.entries) - 1
}

func (c *Cache) freeSlot(slot int) {
	c.entries[slot] = entry{}
	c.freeList = append(c.freeList, slot)
}

// Put inserts or overwrites the page identified by id. If an entry for id
// already exists its bytes are replaced and its reference bit is set.
// Otherwise a new entry is created, evicting a victim first if the cache is
// at capacity, and splitting the target bucket first if it is full.
func (c *Cache) Put(id PageID, bytes []byte) error {
	if b := c.bucketFor(id); b != nil {
		if slot, ok := b.find(c.entries, id); ok {
			e := &c.entries[slot]
			copy(e.bytes[:], bytes)
			e.valid = true
			e.refBit = true
			return nil
		}
	}

	if c.count >= c.maxPages {
		if !c.evictionEnabled {
			return ErrCacheFull
		}
		if !c.evictOne() {
			return ErrCacheFull
		}
	}

	for {
		b := c.bucketFor(id)
		if len(b.slots) < c.bucketCapacity {
			break
		}
		if !c.trySplit(b) {
			return ErrCacheFull
		}
		if c.metrics != nil {
			c.metrics.Splits.Inc()
		}
	}

	slot := c.allocSlot()
	e := &c.entries[slot]
	e.id = id
	copy(e.bytes[:], bytes)
	e.valid = true
	e.refBit = false
	e.inUse = true
	e.priority = PriorityNormal

	b := c.bucketFor(id)
	b.slots = append(b.slots, slot)
	c.ring.push(slot)
	c.count++
	if c.metrics != nil {
		c.metrics.Pages.Set(float64(c.count))
	}
	return nil
}

// Get copies id's bytes into out and sets the reference bit, returning true,
// if id is present and valid. It never loads from disk.
func (c *Cache) Get(id PageID, out []byte) bool {
	b := c.bucketFor(id)
	slot, ok := b.find(c.entries, id)
	if !ok || !c.entries[slot].valid {
		if c.metrics != nil {
			c.metrics.Misses.Inc()
		}
		return false
	}
	copy(out, c.entries[slot].bytes[:])
	c.entries[slot].refBit = true
	if c.metrics != nil {
		c.metrics.Hits.Inc()
	}
	return true
}

// Contains reports whether id names a currently valid entry.
func (c *Cache) Contains(id PageID) bool {
	b := c.bucketFor(id)
	slot, ok := b.find(c.entries, id)
	return ok && c.entries[slot].valid
}

// Remove deletes id's entry and its clock ring slot, returning whether it
// was present.
func (c *Cache) Remove(id PageID) bool {
	b := c.bucketFor(id)
	slot, ok := b.find(c.entries, id)
	if !ok {
		return false
	}
	b.removeSlot(slot)
	c.ring.removeSlot(slot)
	c.freeSlot(slot)
	c.count--
	if c.metrics != nil {
		c.metrics.Pages.Set(float64(c.count))
	}
	return true
}

// Pin increments id's pin count, preventing its eviction.
func (c *Cache) Pin(id PageID) error {
	b := c.bucketFor(id)
	slot, ok := b.find(c.entries, id)
	if !ok {
		return ErrNotPresent
	}
	c.entries[slot].pinCount++
	return nil
}

// Unpin decrements id's pin count. It fails if the count is already zero.
func (c *Cache) Unpin(id PageID) error {
	b := c.bucketFor(id)
	slot, ok := b.find(c.entries, id)
	if !ok {
		return ErrNotPresent
	}
	if c.entries[slot].pinCount == 0 {
		return ErrNotPinned
	}
	c.entries[slot].pinCount--
	return nil
}

// MarkDirty flags id's page as needing write-back before its slot is next
// reused.
func (c *Cache) MarkDirty(id PageID) error {
	b := c.bucketFor(id)
	slot, ok := b.find(c.entries, id)
	if !ok {
		return ErrNotPresent
	}
	c.entries[slot].dirty = true
	return nil
}

// Clear resets the cache to its initial, empty directory state.
func (c *Cache) Clear() {
	c.resetDirectory()
}

// Len returns the number of resident pages.
func (c *Cache) Len() int { return c.count }

// DebugString reports internal directory statistics, grounded on the
// reference implementation's BufferPool::print_stats.
func (c *Cache) DebugString() string {
	seen := make(map[*bucket]struct{})
	for _, b := range c.directory {
		seen[b] = struct{}{}
	}
	uniqueBuckets := len(seen)
	loadFactor := 0.0
	if uniqueBuckets > 0 {
		loadFactor = float64(c.count) / float64(uniqueBuckets*c.bucketCapacity)
	}
	return fmt.Sprintf(
		"global_depth=%d directory_size=%d pages=%d max_pages=%d unique_buckets=%d load_factor=%.3f",
		c.globalDepth, len(c.directory), c.count, c.maxPages, uniqueBuckets, loadFactor)
}
