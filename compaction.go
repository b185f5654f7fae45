// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import (
	"os"
	"path/filepath"
	"time"

	"intkv/sstable"
)

// compactionTrigger is the size-tiered policy's trigger: a level is merged
// once it holds this many runs, per spec §4.5.5.
const compactionTrigger = 2

// compact applies the size-tiered compaction policy starting at level 0:
// while a level holds at least compactionTrigger runs, merge the two oldest
// into a new run one level down, delete the inputs, and recurse into the
// level that just grew.
func (db *DB) compact() error {
	for l := 0; l < len(db.levels); l++ {
		for db.runCountAtLevel(l) >= compactionTrigger {
			if err := db.compactOneStep(l); err != nil {
				return err
			}
		}
	}
	return nil
}

// compactOneStep merges the two oldest runs at level l into level l+1. On
// any failure it leaves levels[l] untouched (the two runs are only removed
// once the merged run is durably built and opened), per spec §7's
// propagation policy: a failed compaction returns the runs to their
// original positions and reports but does not poison the engine.
func (db *DB) compactOneStep(l int) error {
	older := db.levels[l][0]
	younger := db.levels[l][1]

	name := runFilename(l+1, time.Now().UnixMilli(), db.nextCounter)
	db.nextCounter++
	path := filepath.Join(db.dir, name)

	if _, err := sstable.Merge(older.reader, younger.reader, path, l+1, db.opts.TargetFPR()); err != nil {
		return errWrapIO(err, "merging %s and %s into %s", older.path(), younger.path(), path)
	}

	reader, err := sstable.Open(path, db.cache)
	if err != nil {
		return errWrapIO(err, "reopening freshly merged run %s", path)
	}

	older.state = runScheduledForMerge
	younger.state = runScheduledForMerge

	db.removeRunAt(l, 1)
	db.removeRunAt(l, 0)

	for _, victim := range []*run{older, younger} {
		if err := os.Remove(victim.path()); err != nil {
			db.opts.Logger.Infof("intkv: failed to delete merged-away run %s: %v", victim.path(), err)
		}
	}

	parsed, _ := parseRunFilename(name)
	db.appendRun(l+1, &run{reader: reader, parsed: parsed})

	if db.opts.Metrics != nil && db.opts.Metrics.Compactions != nil {
		db.opts.Metrics.Compactions.Inc()
	}
	db.opts.Logger.Infof("intkv: compacted level %d runs %s + %s into %s", l, older.path(), younger.path(), path)

	return nil
}
