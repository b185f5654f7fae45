//go:build !unix

// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import "os"

// fdatasync falls back to a full sync on platforms without a data-only
// sync syscall exposed by golang.org/x/sys/unix.
func fdatasync(f *os.File) error {
	return f.Sync()
}
