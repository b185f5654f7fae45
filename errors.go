// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package intkv

import "github.com/cockroachdb/errors"

// The nine sentinel errors of the engine's contract. Lower layers do not
// share them: sstable and internal/cache declare their own ErrCorrupt and
// ErrCacheFull, and the engine wraps any error from a sorted run with
// errWrapIO, so such errors satisfy errors.Is(err, intkv.ErrIO) but not
// errors.Is(err, intkv.ErrCorrupt).
var (
	// ErrNotOpen is returned by any operation attempted on a database that
	// has not been opened, or has been closed.
	ErrNotOpen = errors.New("intkv: database not open")
	// ErrFull is returned when the memtable cannot accept a write and a
	// flush did not free space.
	ErrFull = errors.New("intkv: memtable full and flush failed")
	// ErrBadInput is returned for a malformed request: scan(lo > hi), or a
	// put of the reserved tombstone sentinel value.
	ErrBadInput = errors.New("intkv: bad input")
	// ErrNotFound is returned by Get when the key has no live value,
	// including keys whose last write was a delete.
	ErrNotFound = errors.New("intkv: not found")
	// ErrIO is returned when a disk read or write fails, or a file could
	// not be opened.
	ErrIO = errors.New("intkv: i/o error")
	// ErrCorrupt names a run whose header or pages cannot be interpreted.
	// No operation of this package returns it: Open skips such runs, and
	// reads report them wrapped as ErrIO.
	ErrCorrupt = errors.New("intkv: corrupt run")
	// ErrCacheFull names a page cache that could not make room. No
	// operation of this package returns it: a page that cannot be cached
	// is still read, it just does not stay resident.
	ErrCacheFull = errors.New("intkv: cache full")
	// ErrAlreadyOpen names an attempt to open a database handle that is
	// already open. Open always builds a new handle, so no operation of
	// this package returns it.
	ErrAlreadyOpen = errors.New("intkv: already open")
	// ErrAlreadyClosed is returned by Close on a database handle that is
	// already closed.
	ErrAlreadyClosed = errors.New("intkv: already closed")
)

// errWrapIO marks err so that errors.Is(result, ErrIO) holds, then adds
// operational context, matching the teacher's convention of preserving the
// underlying cause behind a stable sentinel.
func errWrapIO(err error, format string, args ...interface{}) error {
	return errors.Wrapf(errors.Mark(err, ErrIO), format, args...)
}
