// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import (
	"math"

	"intkv/internal/base"
)

// Logger is the minimal logging capability the engine needs: informational
// progress (flush, compaction, corrupt-run skips) and fatal startup
// failures. It is structurally identical to internal/base.Logger so callers
// may pass any logger satisfying that shape.
type Logger = base.Logger

// DefaultLogger writes to the standard library log package.
type DefaultLogger = base.DefaultLogger

// Options configures a DB at Open. The zero value is valid; EnsureDefaults
// fills every unset field with a sensible default rather than requiring a
// builder.
type Options struct {
	// MemtableMaxEntries is M_max: the memtable's capacity in pairs.
	MemtableMaxEntries int
	// BloomBitsPerEntry derives the target false-positive rate for every
	// sorted run's filter as exp(-b * (ln 2)^2).
	BloomBitsPerEntry float64
	// CachePagesMax is the page cache's resident-page capacity.
	CachePagesMax int
	// CacheFloodThresholdPages is the page count above which a scan's
	// pages are demoted to scan-low priority at end_scan.
	CacheFloodThresholdPages int
	// Logger receives diagnostic messages. Defaults to DefaultLogger.
	Logger Logger
	// Metrics, if non-nil, is updated by every flush and compaction and
	// whenever the live run count changes. Page cache accesses are not
	// recorded here. Nil is safe: no metric is recorded.
	Metrics *Metrics
}

// EnsureDefaults fills every zero-valued field with the engine's default,
// matching the defaulting-pass convention used throughout the store rather
// than a builder pattern.
func (o *Options) EnsureDefaults() {
	if o.MemtableMaxEntries <= 0 {
		o.MemtableMaxEntries = 4096
	}
	if o.BloomBitsPerEntry <= 0 {
		o.BloomBitsPerEntry = 10
	}
	if o.CachePagesMax <= 0 {
		o.CachePagesMax = 4096
	}
	if o.CacheFloodThresholdPages <= 0 {
		o.CacheFloodThresholdPages = o.CachePagesMax
	}
	if o.Logger == nil {
		o.Logger = base.DefaultLogger{}
	}
}

// TargetFPR derives the target false-positive rate for a sorted run's
// filter from BloomBitsPerEntry, per spec §6: exp(-b * (ln 2)^2).
func (o *Options) TargetFPR() float64 {
	return math.Exp(-o.BloomBitsPerEntry * math.Ln2 * math.Ln2)
}
