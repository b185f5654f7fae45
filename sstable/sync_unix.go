//go:build unix

// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync flushes file content (not metadata) to stable storage before a
// freshly built run is considered durable.
func fdatasync(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
