// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"encoding/binary"
	"sort"

	"intkv/internal/base"
)

const (
	flagLeaf     = 1
	flagInternal = 0
)

func isLeafPage(buf []byte) bool {
	return buf[0] == flagLeaf
}

func pageCount(buf []byte) int {
	return int(binary.LittleEndian.Uint64(buf[8:16]))
}

// encodeLeafPage packs pairs (already sorted ascending, len <= MaxLeafEntries)
// into a single 4096-byte page.
func encodeLeafPage(pairs []base.Pair) []byte {
	buf := make([]byte, PageSize)
	buf[0] = flagLeaf
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(pairs)))
	off := pageHeaderSize
	for _, p := range pairs {
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(p.Key))
		binary.LittleEndian.PutUint64(buf[off+8:off+16], uint64(p.Value))
		off += leafPairSize
	}
	return buf
}

func decodeLeafPage(buf []byte) ([]base.Pair, error) {
	if len(buf) != PageSize || !isLeafPage(buf) {
		return nil, ErrCorrupt
	}
	count := pageCount(buf)
	if count < 0 || count > MaxLeafEntries {
		return nil, ErrCorrupt
	}
	pairs := make([]base.Pair, count)
	off := pageHeaderSize
	for i := 0; i < count; i++ {
		if off+leafPairSize > PageSize {
			return nil, ErrCorrupt
		}
		key := int64(binary.LittleEndian.Uint64(buf[off : off+8]))
		val := int64(binary.LittleEndian.Uint64(buf[off+8 : off+16]))
		pairs[i] = base.Pair{Key: key, Value: val}
		off += leafPairSize
	}
	return pairs, nil
}

// encodeInternalPage packs count separator keys (the maximum key under each
// child, left to right) and their matching child page offsets.
func encodeInternalPage(keys []int64, children []uint64) []byte {
	buf := make([]byte, PageSize)
	buf[0] = flagInternal
	n := len(keys)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(n))
	keyOff := pageHeaderSize
	childOff := pageHeaderSize + n*base.KeySize
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(buf[keyOff+i*8:keyOff+i*8+8], uint64(keys[i]))
		binary.LittleEndian.PutUint64(buf[childOff+i*8:childOff+i*8+8], children[i])
	}
	return buf
}

func decodeInternalPage(buf []byte) (keys []int64, children []uint64, err error) {
	if len(buf) != PageSize || isLeafPage(buf) {
		return nil, nil, ErrCorrupt
	}
	n := pageCount(buf)
	if n < 0 || n > MaxInternalEntries {
		return nil, nil, ErrCorrupt
	}
	keyOff := pageHeaderSize
	childOff := pageHeaderSize + n*base.KeySize
	if childOff+n*8 > PageSize {
		return nil, nil, ErrCorrupt
	}
	keys = make([]int64, n)
	children = make([]uint64, n)
	for i := 0; i < n; i++ {
		keys[i] = int64(binary.LittleEndian.Uint64(buf[keyOff+i*8 : keyOff+i*8+8]))
		children[i] = binary.LittleEndian.Uint64(buf[childOff+i*8 : childOff+i*8+8])
	}
	return keys, children, nil
}

// searchLeaf returns the index of key within pairs and true, or the
// insertion point and false.
func searchLeaf(pairs []base.Pair, key int64) (int, bool) {
	idx := sort.Search(len(pairs), func(i int) bool { return pairs[i].Key >= key })
	if idx < len(pairs) && pairs[idx].Key == key {
		return idx, true
	}
	return idx, false
}

// searchInternal returns the index of the first separator key >= target,
// following spec §4.3's tree descent rule. If target exceeds every
// separator, it returns the last index (the rightmost child), which is
// correct only when the caller has already bounds-checked target against
// the run's max_key.
func searchInternal(keys []int64, target int64) int {
	idx := sort.Search(len(keys), func(i int) bool { return keys[i] >= target })
	if idx == len(keys) {
		return len(keys) - 1
	}
	return idx
}
