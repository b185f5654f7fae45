// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package cache

import (
	"os"

	"github.com/cockroachdb/errors"
)

// DefaultWriteBack returns a WriteBackFunc that persists a dirty page the
// way spec §5 describes: open the target file in read/write mode, seek to
// the page offset, write, and close. It opens the file fresh on every call
// rather than holding a long-lived handle, matching "files are opened on
// demand per I/O; no long-lived file handle is required."
func DefaultWriteBack() WriteBackFunc {
	return func(id PageID, bytes []byte) error {
		f, err := os.OpenFile(id.File, os.O_RDWR, 0o644)
		if err != nil {
			return errors.Wrapf(err, "cache: opening %s for write-back", id.File)
		}
		defer f.Close()

		if _, err := f.WriteAt(bytes, int64(id.Offset)); err != nil {
			return errors.Wrapf(err, "cache: writing back page of %s at offset %d", id.File, id.Offset)
		}
		return fdatasync(f)
	}
}
