// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import (
	"fmt"
	"strings"
)

// Stats returns a multi-line diagnostic dump: the database directory,
// status, memtable occupancy versus capacity (open handles only), run count
// per level, and the page cache's directory statistics.
// The shape is pinned to the original engine's print_stats, extended with
// a per-level run count since this store, unlike the original, has more
// than one level. Stats is callable on a closed handle; it simply reports
// the closed status.
func (db *DB) Stats() string {
	var b strings.Builder
	fmt.Fprintf(&b, "database: %s\n", db.dir)
	if db.isOpen {
		fmt.Fprintf(&b, "status: open\n")
		fmt.Fprintf(&b, "memtable: %d/%d\n", db.memtable.Size(), db.opts.MemtableMaxEntries)
	} else {
		fmt.Fprintf(&b, "status: closed\n")
	}
	fmt.Fprintf(&b, "levels: %d\n", len(db.levels))
	for l, lvl := range db.levels {
		fmt.Fprintf(&b, "  level %d: %d runs\n", l, len(lvl))
	}
	fmt.Fprintf(&b, "cache: %s\n", db.cache.DebugString())
	return b.String()
}
