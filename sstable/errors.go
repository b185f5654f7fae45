// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import "github.com/cockroachdb/errors"

// ErrCorrupt is returned when a run's header or pages cannot be
// interpreted: a length mismatch, an implausible offset, or a truncated
// file. The run is omitted at load time by the engine, per spec §4.3.
var ErrCorrupt = errors.New("sstable: corrupt run")

var errCorruptHeader = errors.Wrap(ErrCorrupt, "header page too short")
