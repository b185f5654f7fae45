// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import (
	"sort"

	"intkv/internal/base"
	"intkv/sstable"
)

// Scan returns every live pair with lo <= key <= hi in ascending key order,
// per spec §4.5.7: an accumulator is filled from oldest source to youngest
// so that a younger write overwrites an older one for the same key, then
// tombstoned entries are dropped before emission.
func (db *DB) Scan(lo, hi int64) ([]base.Pair, error) {
	if err := db.requireOpen(); err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, ErrBadInput
	}

	acc := make(map[int64]int64)

	for l := len(db.levels) - 1; l >= 0; l-- {
		for _, r := range db.levels[l] {
			if r.state != runLive {
				continue
			}
			pairs, err := r.reader.RangeScan(lo, hi, sstable.ModeTree)
			if err != nil {
				return nil, errWrapIO(err, "scanning run %s", r.path())
			}
			for _, p := range pairs {
				acc[p.Key] = p.Value
			}
		}
	}

	for _, p := range db.memtable.Range(lo, hi) {
		acc[p.Key] = p.Value
	}

	out := make([]base.Pair, 0, len(acc))
	for k, v := range acc {
		if base.IsTombstone(v) {
			continue
		}
		out = append(out, base.Pair{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
