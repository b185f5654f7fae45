// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import (
	"path/filepath"
	"time"

	"intkv/sstable"
)

// flush snapshots the memtable in ascending key order, writes it as a new
// level-0 sorted run, appends the run, clears the memtable, and invokes the
// compaction policy, per spec §4.5.4.
func (db *DB) flush() error {
	if db.memtable.Empty() {
		return nil
	}

	pairs := db.memtable.Range(db.memtable.MinKey(), db.memtable.MaxKey())

	name := runFilename(0, time.Now().UnixMilli(), db.nextCounter)
	db.nextCounter++
	path := filepath.Join(db.dir, name)

	if _, err := sstable.Build(path, pairs, 0, db.opts.TargetFPR()); err != nil {
		return errWrapIO(err, "flushing memtable to %s", path)
	}

	reader, err := sstable.Open(path, db.cache)
	if err != nil {
		return errWrapIO(err, "reopening freshly flushed run %s", path)
	}
	parsed, _ := parseRunFilename(name)
	db.appendRun(0, &run{reader: reader, parsed: parsed})
	db.memtable.Clear()

	if db.opts.Metrics != nil && db.opts.Metrics.Flushes != nil {
		db.opts.Metrics.Flushes.Inc()
	}
	db.opts.Logger.Infof("intkv: flushed %d pairs to %s", len(pairs), path)

	return db.compact()
}
