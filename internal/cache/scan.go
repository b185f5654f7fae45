// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

// ScanID identifies an in-progress scan started with Cache.BeginScan.
type ScanID uint64

type scanState struct {
	pages map[PageID]struct{}
	count int
}

// BeginScan allocates a fresh scan context for sequential-flooding
// protection. Every BeginScan must be matched by exactly one EndScan, even
// on an early return from the caller's range scan.
func (c *Cache) BeginScan() ScanID {
	c.nextScanID++
	id := c.nextScanID
	c.scans[id] = &scanState{pages: make(map[PageID]struct{})}
	return id
}

// Touch records a page access under the given scan.
func (c *Cache) Touch(id ScanID, pageID PageID) {
	s, ok := c.scans[id]
	if !ok {
		return
	}
	s.pages[pageID] = struct{}{}
	s.count++
}

// EndScan closes the scan. If the scan touched more than FloodThreshold
// pages, every page it touched is demoted to PriorityScanLow so the next
// eviction pass prefers them over pages a short scan or point lookup
// touched. Short scans leave priorities untouched.
func (c *Cache) EndScan(id ScanID) {
	s, ok := c.scans[id]
	if !ok {
		return
	}
	delete(c.scans, id)

	if s.count <= c.floodThreshold {
		return
	}
	for pageID := range s.pages {
		if b := c.bucketFor(pageID); b != nil {
			if slot, ok := b.find(c.entries, pageID); ok {
				c.entries[slot].priority = PriorityScanLow
			}
		}
	}
}
