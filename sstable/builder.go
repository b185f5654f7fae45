// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"os"

	"github.com/cockroachdb/errors"

	"intkv/bloom"
	"intkv/internal/base"
)

// Info describes a freshly built (or freshly loaded) sorted run's metadata,
// per spec §3: the fields an engine needs to place the run into a level and
// order it against its siblings without re-reading its header.
type Info struct {
	Path       string
	MinKey     base.Key
	MaxKey     base.Key
	EntryCount uint64
	Level      int
}

type layerEntry struct {
	offset  uint64
	lastKey int64
}

// Build constructs a sorted run at path from pairs, which must already be
// sorted in strictly ascending key order with unique keys, per spec §4.3's
// construction procedure: leaves first, then internal layers bottom-up,
// then the filter region, then the header. The header is computed last,
// once the root offset is known, and written first as page 0.
func Build(path string, pairs []base.Pair, level int, targetFPR float64) (Info, error) {
	if len(pairs) == 0 {
		return Info{}, errors.New("sstable: cannot build an empty run")
	}

	var pages [][]byte
	pageIndex := uint64(1) // page 0 is reserved for the header

	leafStart := pageIndex * PageSize

	var leafLayer []layerEntry
	for i := 0; i < len(pairs); i += MaxLeafEntries {
		end := i + MaxLeafEntries
		if end > len(pairs) {
			end = len(pairs)
		}
		chunk := pairs[i:end]
		pages = append(pages, encodeLeafPage(chunk))
		leafLayer = append(leafLayer, layerEntry{
			offset:  pageIndex * PageSize,
			lastKey: chunk[len(chunk)-1].Key,
		})
		pageIndex++
	}

	current := leafLayer
	for len(current) > 1 {
		var next []layerEntry
		for i := 0; i < len(current); i += MaxInternalEntries {
			end := i + MaxInternalEntries
			if end > len(current) {
				end = len(current)
			}
			chunk := current[i:end]
			keys := make([]int64, len(chunk))
			children := make([]uint64, len(chunk))
			for j, e := range chunk {
				keys[j] = e.lastKey
				children[j] = e.offset
			}
			pages = append(pages, encodeInternalPage(keys, children))
			next = append(next, layerEntry{
				offset:  pageIndex * PageSize,
				lastKey: chunk[len(chunk)-1].lastKey,
			})
			pageIndex++
		}
		current = next
	}
	rootOffset := current[0].offset

	filter := bloom.New(uint64(len(pairs)), targetFPR)
	for _, p := range pairs {
		filter.Add(p.Key)
	}
	bits := filter.Bits()
	bloomOffset := pageIndex * PageSize
	bloomLength := uint64(len(bits))
	for i := 0; i < len(bits); i += PageSize {
		page := make([]byte, PageSize)
		end := i + PageSize
		if end > len(bits) {
			end = len(bits)
		}
		copy(page, bits[i:end])
		pages = append(pages, page)
		pageIndex++
	}

	h := header{
		RootOffset:  rootOffset,
		LeafStart:   leafStart,
		EntryCount:  uint64(len(pairs)),
		Level:       uint64(level),
		FPR:         targetFPR,
		BloomOffset: bloomOffset,
		BloomLength: bloomLength,
		BloomK:      filter.K(),
		BloomM:      filter.M(),
	}

	if err := writeRunFile(path, h, pages); err != nil {
		return Info{}, err
	}

	return Info{
		Path:       path,
		MinKey:     pairs[0].Key,
		MaxKey:     pairs[len(pairs)-1].Key,
		EntryCount: uint64(len(pairs)),
		Level:      level,
	}, nil
}

func writeRunFile(path string, h header, pages [][]byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "sstable: creating %s", path)
	}
	defer f.Close()

	if _, err := f.Write(encodeHeader(h)); err != nil {
		return errors.Wrapf(err, "sstable: writing header of %s", path)
	}
	for _, page := range pages {
		if _, err := f.Write(page); err != nil {
			return errors.Wrapf(err, "sstable: writing page of %s", path)
		}
	}
	if err := fdatasync(f); err != nil {
		return errors.Wrapf(err, "sstable: syncing %s", path)
	}
	return nil
}
