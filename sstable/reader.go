// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"intkv/bloom"
	"intkv/internal/base"
	"intkv/internal/cache"
)

// Mode selects a Reader's point-lookup and range-scan descent strategy, per
// spec §4.3.
type Mode int

const (
	// ModeTree descends the internal fan-out tree from the root.
	ModeTree Mode = iota
	// ModeBinary treats the leaf region as a sorted array of pages keyed
	// by each page's last key, and never reads internal pages.
	ModeBinary
)

// Reader provides immutable, page-oriented random access to a sorted run.
// It borrows page bytes from the shared cache only for the duration of a
// single operation; every returned pair is a copy.
type Reader struct {
	path      string
	cache     *cache.Cache
	header    header
	minKey    base.Key
	maxKey    base.Key
	leafCount int
	filter    *bloom.Filter
}

// Open loads a sorted run's header, bounds and filter. Malformed input at
// any stage is reported as ErrCorrupt so the caller (the engine's load path)
// can skip the run instead of failing the whole open.
func Open(path string, c *cache.Cache) (*Reader, error) {
	r := &Reader{path: path, cache: c}

	buf, err := r.fetchPage(0, nil)
	if err != nil {
		return nil, err
	}
	h, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}
	if h.EntryCount == 0 || h.LeafStart%PageSize != 0 {
		return nil, ErrCorrupt
	}
	r.header = h
	r.leafCount = (int(h.EntryCount) + MaxLeafEntries - 1) / MaxLeafEntries

	firstLeaf, err := r.readLeaf(h.LeafStart, nil)
	if err != nil {
		return nil, err
	}
	if len(firstLeaf) == 0 {
		return nil, ErrCorrupt
	}
	r.minKey = firstLeaf[0].Key

	lastLeafOffset := h.LeafStart + uint64(r.leafCount-1)*PageSize
	lastLeaf, err := r.readLeaf(lastLeafOffset, nil)
	if err != nil {
		return nil, err
	}
	if len(lastLeaf) == 0 {
		return nil, ErrCorrupt
	}
	r.maxKey = lastLeaf[len(lastLeaf)-1].Key

	bits, err := r.readFilterBits(h)
	if err != nil {
		return nil, err
	}
	r.filter = bloom.NewFromBits(bits, h.BloomM, h.BloomK)

	return r, nil
}

func (r *Reader) Path() string          { return r.path }
func (r *Reader) MinKey() base.Key      { return r.minKey }
func (r *Reader) MaxKey() base.Key      { return r.maxKey }
func (r *Reader) EntryCount() uint64    { return r.header.EntryCount }
func (r *Reader) Level() int            { return int(r.header.Level) }
func (r *Reader) Filter() *bloom.Filter { return r.filter }

// fetchPage reads a page through the shared cache, loading it from disk on
// a miss and populating the cache for next time. scanID, if non-nil, has
// this access recorded against it for sequential-flooding protection.
func (r *Reader) fetchPage(offset uint64, scanID *cache.ScanID) ([]byte, error) {
	id := cache.PageID{File: r.path, Offset: offset}
	buf := make([]byte, PageSize)
	if r.cache.Get(id, buf) {
		if scanID != nil {
			r.cache.Touch(*scanID, id)
		}
		return buf, nil
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "sstable: opening %s", r.path)
	}
	defer f.Close()

	n, err := f.ReadAt(buf, int64(offset))
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "sstable: reading %s at offset %d", r.path, offset)
	}
	if n != PageSize {
		return nil, errors.Wrapf(ErrCorrupt, "sstable: short page read in %s at offset %d", r.path, offset)
	}

	// A cache-full failure here is not fatal to the read; the page was
	// still fetched successfully, it simply won't be resident next time.
	_ = r.cache.Put(id, buf)

	if scanID != nil {
		r.cache.Touch(*scanID, id)
	}
	return buf, nil
}

func (r *Reader) readLeaf(offset uint64, scanID *cache.ScanID) ([]base.Pair, error) {
	buf, err := r.fetchPage(offset, scanID)
	if err != nil {
		return nil, err
	}
	return decodeLeafPage(buf)
}

func (r *Reader) readFilterBits(h header) ([]byte, error) {
	if h.BloomLength == 0 {
		return nil, nil
	}
	bits := make([]byte, 0, h.BloomLength)
	remaining := h.BloomLength
	offset := h.BloomOffset
	for remaining > 0 {
		buf, err := r.fetchPage(offset, nil)
		if err != nil {
			return nil, err
		}
		take := uint64(PageSize)
		if take > remaining {
			take = remaining
		}
		bits = append(bits, buf[:take]...)
		remaining -= take
		offset += PageSize
	}
	return bits, nil
}

// descendToLeafOffset walks from the root to the leaf that would contain
// key, following spec §4.3's tree-descent rule: in each internal page,
// follow the first child whose separator key is >= key.
func (r *Reader) descendToLeafOffset(key int64, scanID *cache.ScanID) (uint64, error) {
	offset := r.header.RootOffset
	for {
		buf, err := r.fetchPage(offset, scanID)
		if err != nil {
			return 0, err
		}
		if isLeafPage(buf) {
			return offset, nil
		}
		keys, children, err := decodeInternalPage(buf)
		if err != nil {
			return 0, err
		}
		if len(keys) == 0 {
			return 0, ErrCorrupt
		}
		idx := searchInternal(keys, key)
		offset = children[idx]
	}
}

// binarySearchLeafOffset treats the leaf region as a sorted array of pages
// keyed by each page's last key, and never touches the internal region.
func (r *Reader) binarySearchLeafOffset(key int64, scanID *cache.ScanID) (uint64, error) {
	lo, hi := 0, r.leafCount-1
	for lo < hi {
		mid := (lo + hi) / 2
		pairs, err := r.readLeaf(r.header.LeafStart+uint64(mid)*PageSize, scanID)
		if err != nil {
			return 0, err
		}
		if len(pairs) == 0 {
			return 0, ErrCorrupt
		}
		if pairs[len(pairs)-1].Key >= key {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return r.header.LeafStart + uint64(lo)*PageSize, nil
}

// Get looks up key using the given descent mode. It returns false without
// touching any page beyond the header, first leaf, and last leaf loaded at
// Open when key falls outside [MinKey, MaxKey].
func (r *Reader) Get(key int64, mode Mode) (int64, bool, error) {
	if key < r.minKey || key > r.maxKey {
		return 0, false, nil
	}
	if r.filter != nil && !r.filter.MightContain(key) {
		return 0, false, nil
	}

	var leafOffset uint64
	var err error
	switch mode {
	case ModeBinary:
		leafOffset, err = r.binarySearchLeafOffset(key, nil)
	default:
		leafOffset, err = r.descendToLeafOffset(key, nil)
	}
	if err != nil {
		return 0, false, err
	}

	pairs, err := r.readLeaf(leafOffset, nil)
	if err != nil {
		return 0, false, err
	}
	idx, found := searchLeaf(pairs, key)
	if !found {
		return 0, false, nil
	}
	return pairs[idx].Value, true, nil
}

// RangeScan returns every pair with lo <= key <= hi, in ascending order.
// Empty intervals return with no page access beyond what Open already did.
func (r *Reader) RangeScan(lo, hi int64, mode Mode) ([]base.Pair, error) {
	if hi < r.minKey || lo > r.maxKey {
		return nil, nil
	}

	scanID := r.cache.BeginScan()
	defer r.cache.EndScan(scanID)

	var startOffset uint64
	var err error
	switch mode {
	case ModeBinary:
		startOffset, err = r.binarySearchLeafOffset(lo, &scanID)
	default:
		startOffset, err = r.descendToLeafOffset(lo, &scanID)
	}
	if err != nil {
		return nil, err
	}

	var out []base.Pair
	offset := startOffset
	leafIdx := int((offset - r.header.LeafStart) / PageSize)
	for leafIdx < r.leafCount {
		pairs, err := r.readLeaf(offset, &scanID)
		if err != nil {
			return nil, err
		}
		start := 0
		if offset == startOffset {
			start, _ = searchLeaf(pairs, lo)
		}
		done := false
		for _, p := range pairs[start:] {
			if p.Key > hi {
				done = true
				break
			}
			out = append(out, p)
		}
		if done {
			break
		}
		leafIdx++
		offset += PageSize
	}
	return out, nil
}
