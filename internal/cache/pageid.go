// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// PageSize is the fixed width of every cached page, matching the on-disk
// page size used by package sstable.
const PageSize = 4096

// PageID uniquely identifies a cached page: which file it belongs to, and
// the byte offset of the page's first byte within that file. File is a
// stable identity string (typically the run's filename), not a live handle.
type PageID struct {
	File   string
	Offset uint64
}

// hash combines the file identity and the byte offset into a single 64-bit
// value with good mixing, per spec §4.2. The original source picked xxhash
// for this same purpose over the concatenation of filename and offset; this
// reproduces that choice.
func hash(id PageID) uint64 {
	buf := make([]byte, len(id.File)+8)
	copy(buf, id.File)
	binary.LittleEndian.PutUint64(buf[len(id.File):], id.Offset)
	return xxhash.Sum64(buf)
}
