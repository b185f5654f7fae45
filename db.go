// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"

	"intkv/internal/cache"
	"intkv/memtable"
	"intkv/sstable"
)

// DB is a handle to an on-disk database directory. It is not safe for
// concurrent use: the engine assumes one writer and one reader at a time,
// per spec §5, and serializes all operations on the memtable, levels, and
// page cache itself.
type DB struct {
	dir  string
	opts Options

	memtable *memtable.Memtable
	cache    *cache.Cache
	levels   [][]*run

	nextCounter uint64
	isOpen      bool
}

// Open ensures dir exists, loads every recognizable sorted run already
// there, and marks the database open, per spec §4.5.1. Every call builds a
// new handle, so Open never returns ErrAlreadyOpen.
func Open(dir string, opts Options) (*DB, error) {
	opts.EnsureDefaults()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "intkv: creating database directory %s", dir)
	}

	db := &DB{
		dir:  dir,
		opts: opts,
		cache: cache.New(cache.Options{
			MaxPages:        opts.CachePagesMax,
			FloodThreshold:  opts.CacheFloodThresholdPages,
			EvictionEnabled: true,
			OnEvict:         cache.DefaultWriteBack(),
		}),
	}
	if err := db.load(); err != nil {
		return nil, err
	}
	db.memtable = memtable.New(opts.MemtableMaxEntries)
	db.isOpen = true
	return db, nil
}

// load enumerates the database directory for run files, loading each one
// found. A file that does not parse as a run filename, or whose header or
// bounds cannot be read, is skipped rather than treated as fatal.
func (db *DB) load() error {
	entries, err := os.ReadDir(db.dir)
	if err != nil {
		return errors.Wrapf(err, "intkv: reading database directory %s", db.dir)
	}

	var maxCounter uint64
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		parsed, ok := parseRunFilename(ent.Name())
		if !ok {
			continue
		}
		path := filepath.Join(db.dir, ent.Name())
		reader, err := sstable.Open(path, db.cache)
		if err != nil {
			db.opts.Logger.Infof("intkv: skipping corrupt run %s: %v", path, err)
			continue
		}
		db.appendRun(parsed.level, &run{reader: reader, parsed: parsed})
		if parsed.counter >= maxCounter {
			maxCounter = parsed.counter + 1
		}
	}
	db.nextCounter = maxCounter

	for l := range db.levels {
		lvl := db.levels[l]
		sort.SliceStable(lvl, func(i, j int) bool {
			pi, pj := lvl[i].parsed, lvl[j].parsed
			if pi.timestampMs != pj.timestampMs {
				return pi.timestampMs < pj.timestampMs
			}
			return pi.counter < pj.counter
		})
	}
	return nil
}

// Close flushes a non-empty memtable to a final level-0 run, releases the
// memtable, and marks the database closed. levels stay resident in memory
// so Stats remains callable on a closed handle. A closed handle cannot be
// reopened; Open always builds a new DB value and re-enumerates the
// directory.
func (db *DB) Close() error {
	if !db.isOpen {
		return ErrAlreadyClosed
	}
	if db.memtable != nil && !db.memtable.Empty() {
		if err := db.flush(); err != nil {
			return err
		}
	}
	db.memtable = nil
	db.isOpen = false
	return nil
}

// IsOpen reports whether the database currently accepts mutations.
func (db *DB) IsOpen() bool { return db.isOpen }

func (db *DB) requireOpen() error {
	if !db.isOpen {
		return ErrNotOpen
	}
	return nil
}
