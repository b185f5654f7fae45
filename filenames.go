// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import (
	"fmt"
	"regexp"
	"strconv"
)

var runFilenamePattern = regexp.MustCompile(`^sst_L(\d+)_(\d+)_(\d+)\.sst$`)

// runFilename builds the on-disk name for a sorted run, per spec §4.5.8:
// sst_L<level>_<timestamp_ms>_<counter>.sst.
func runFilename(level int, timestampMs int64, counter uint64) string {
	return fmt.Sprintf("sst_L%d_%d_%d.sst", level, timestampMs, counter)
}

// parsedRunFilename holds the fields recovered from a run filename during
// directory enumeration at Open.
type parsedRunFilename struct {
	level       int
	timestampMs int64
	counter     uint64
}

// parseRunFilename recognizes the run filename pattern. Any file that does
// not match is ignored, not treated as an error, per spec §4.5.1: "on
// failure, skip".
func parseRunFilename(name string) (parsedRunFilename, bool) {
	m := runFilenamePattern.FindStringSubmatch(name)
	if m == nil {
		return parsedRunFilename{}, false
	}
	level, err := strconv.Atoi(m[1])
	if err != nil {
		return parsedRunFilename{}, false
	}
	ts, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return parsedRunFilename{}, false
	}
	counter, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return parsedRunFilename{}, false
	}
	return parsedRunFilename{level: level, timestampMs: ts, counter: counter}, true
}
