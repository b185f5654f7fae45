// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import (
	"intkv/internal/base"
	"intkv/sstable"
)

// Get performs a visibility-ordered point lookup: memtable, then levels[0]
// newest to oldest, then each deeper level newest to oldest, per spec
// §4.5.6. It stops at the first live hit; a hit whose value is the
// tombstone sentinel resolves to ErrNotFound without consulting older
// sources.
func (db *DB) Get(key int64) (int64, error) {
	if err := db.requireOpen(); err != nil {
		return 0, err
	}

	if v, ok := db.memtable.Lookup(key); ok {
		return resolveHit(v)
	}

	for l := 0; l < len(db.levels); l++ {
		lvl := db.levels[l]
		for i := len(lvl) - 1; i >= 0; i-- {
			r := lvl[i]
			if r.state != runLive {
				continue
			}
			v, found, err := r.reader.Get(key, sstable.ModeTree)
			if err != nil {
				return 0, errWrapIO(err, "reading run %s", r.path())
			}
			if found {
				return resolveHit(v)
			}
		}
	}

	return 0, ErrNotFound
}

func resolveHit(v int64) (int64, error) {
	if base.IsTombstone(v) {
		return 0, ErrNotFound
	}
	return v, nil
}
