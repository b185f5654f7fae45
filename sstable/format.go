// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package sstable implements the on-disk sorted run: a page-aligned file
// holding a header page, a leaf region of key-value pairs, a bottom-up
// internal region forming a fan-out B-tree, and a filter region. It exposes
// Get, RangeScan and Merge, per spec §4.3, and reads every page through the
// buffer pool in package cache.
package sstable

import (
	"encoding/binary"
	"math"

	"intkv/internal/base"
)

// PageSize is the fixed width of every page in a sorted run.
const PageSize = 4096

// pageHeaderSize is the width of the (isLeaf, pad, count) prefix shared by
// leaf and internal pages.
const pageHeaderSize = 16

// headerFieldsSize is the encoded width of the fields packed into page 0;
// the remainder of the page is zero padding.
const headerFieldsSize = 8 * 9

const (
	leafPairSize      = base.KeySize + base.ValueSize // 16
	internalEntrySize = base.KeySize + 8              // separator key + child offset
)

// MaxLeafEntries and MaxInternalEntries are P_leaf and P_internal from
// spec §4.3: the number of entries that fit in one page once the shared
// (isLeaf, count) header is subtracted.
const (
	MaxLeafEntries     = (PageSize - pageHeaderSize) / leafPairSize
	MaxInternalEntries = (PageSize - pageHeaderSize) / internalEntrySize
)

// header is the decoded form of page 0.
type header struct {
	RootOffset     uint64
	LeafStart      uint64
	EntryCount     uint64
	Level          uint64
	FPR            float64
	BloomOffset    uint64
	BloomLength    uint64
	BloomK         uint64
	BloomM         uint64
}

func encodeHeader(h header) []byte {
	buf := make([]byte, PageSize)
	binary.LittleEndian.PutUint64(buf[0:8], h.RootOffset)
	binary.LittleEndian.PutUint64(buf[8:16], h.LeafStart)
	binary.LittleEndian.PutUint64(buf[16:24], h.EntryCount)
	binary.LittleEndian.PutUint64(buf[24:32], h.Level)
	binary.LittleEndian.PutUint64(buf[32:40], math.Float64bits(h.FPR))
	binary.LittleEndian.PutUint64(buf[40:48], h.BloomOffset)
	binary.LittleEndian.PutUint64(buf[48:56], h.BloomLength)
	binary.LittleEndian.PutUint64(buf[56:64], h.BloomK)
	binary.LittleEndian.PutUint64(buf[64:72], h.BloomM)
	return buf
}

func decodeHeader(buf []byte) (header, error) {
	if len(buf) < headerFieldsSize {
		return header{}, errCorruptHeader
	}
	var h header
	h.RootOffset = binary.LittleEndian.Uint64(buf[0:8])
	h.LeafStart = binary.LittleEndian.Uint64(buf[8:16])
	h.EntryCount = binary.LittleEndian.Uint64(buf[16:24])
	h.Level = binary.LittleEndian.Uint64(buf[24:32])
	h.FPR = math.Float64frombits(binary.LittleEndian.Uint64(buf[32:40]))
	h.BloomOffset = binary.LittleEndian.Uint64(buf[40:48])
	h.BloomLength = binary.LittleEndian.Uint64(buf[48:56])
	h.BloomK = binary.LittleEndian.Uint64(buf[56:64])
	h.BloomM = binary.LittleEndian.Uint64(buf[64:72])
	return h, nil
}
