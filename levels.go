// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import "intkv/sstable"

// runState is a sorted run's lifecycle, per spec §4.5.9. Only live runs
// participate in lookups and scans.
type runState int

const (
	runBeingConstructed runState = iota
	runLive
	runScheduledForMerge
	runDeleted
)

// run wraps a sorted run reader with the bookkeeping the engine needs to
// place it in a level and order it against its siblings.
type run struct {
	reader *sstable.Reader
	state  runState
	parsed parsedRunFilename
}

func (r *run) path() string    { return r.reader.Path() }
func (r *run) minKey() int64   { return int64(r.reader.MinKey()) }
func (r *run) maxKey() int64   { return int64(r.reader.MaxKey()) }
func (r *run) level() int      { return r.reader.Level() }
func (r *run) entries() uint64 { return r.reader.EntryCount() }

// ensureLevel grows levels so that levels[l] is addressable.
func (db *DB) ensureLevel(l int) {
	for len(db.levels) <= l {
		db.levels = append(db.levels, nil)
	}
}

// appendRun adds r to levels[l] as the youngest run, per the invariant that
// position i > j means run i is younger than run j within a level.
func (db *DB) appendRun(l int, r *run) {
	db.ensureLevel(l)
	r.state = runLive
	db.levels[l] = append(db.levels[l], r)
	db.updateRunCountMetric()
}

// removeRunAt deletes the run at levels[l][i], marking it deleted first.
func (db *DB) removeRunAt(l, i int) *run {
	r := db.levels[l][i]
	r.state = runDeleted
	db.levels[l] = append(db.levels[l][:i:i], db.levels[l][i+1:]...)
	db.updateRunCountMetric()
	return r
}

func (db *DB) runCountAtLevel(l int) int {
	if l >= len(db.levels) {
		return 0
	}
	return len(db.levels[l])
}

func (db *DB) totalRunCount() int {
	n := 0
	for _, lvl := range db.levels {
		n += len(lvl)
	}
	return n
}

func (db *DB) updateRunCountMetric() {
	if db.opts.Metrics != nil && db.opts.Metrics.RunsByLevel != nil {
		db.opts.Metrics.RunsByLevel.Set(float64(db.totalRunCount()))
	}
}
