// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import (
	"intkv/internal/base"
	"intkv/memtable"
)

// Put stores value under key, replacing any prior value. It rejects the
// reserved tombstone sentinel value with ErrBadInput, since writers must
// never store the sentinel as real data.
func (db *DB) Put(key, value int64) error {
	if err := db.requireOpen(); err != nil {
		return err
	}
	if base.IsTombstone(value) {
		return ErrBadInput
	}
	return db.insert(key, value)
}

// Delete marks key as logically removed. It is equivalent to Put with the
// tombstone sentinel.
func (db *DB) Delete(key int64) error {
	if err := db.requireOpen(); err != nil {
		return err
	}
	return db.insert(key, base.Tombstone)
}

// insert attempts the memtable insert; if the memtable reports Full, it
// flushes and retries once, per spec §4.5.3.
func (db *DB) insert(key, value int64) error {
	switch db.memtable.Insert(key, value) {
	case memtable.Inserted, memtable.Updated:
		return nil
	}

	if err := db.flush(); err != nil {
		return err
	}
	switch db.memtable.Insert(key, value) {
	case memtable.Inserted, memtable.Updated:
		return nil
	default:
		return ErrFull
	}
}
