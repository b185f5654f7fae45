// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"intkv"
)

func TestREPLPutGetScanDelete(t *testing.T) {
	db, err := intkv.Open(filepath.Join(t.TempDir(), "db"), intkv.Options{})
	require.NoError(t, err)
	defer db.Close()

	script := strings.Join([]string{
		"put 1 100",
		"put 2 200",
		"get 1",
		"get 99",
		"scan 1 2",
		"delete 1",
		"get 1",
		"scan 1 2",
		"exit",
	}, "\n")

	var out bytes.Buffer
	code := runREPL(db, strings.NewReader(script), &out)
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Equal(t, []string{
		"OK",
		"OK",
		"1 => 100",
		"NOT FOUND",
		"[ (1,100), (2,200) ]",
		"OK",
		"NOT FOUND",
		"[ (2,200) ]",
	}, lines)
}

func TestREPLScanRejectsBadRange(t *testing.T) {
	db, err := intkv.Open(filepath.Join(t.TempDir(), "db"), intkv.Options{})
	require.NoError(t, err)
	defer db.Close()

	var out bytes.Buffer
	runREPL(db, strings.NewReader("scan 5 1\nexit\n"), &out)
	require.Contains(t, out.String(), "ERROR:")
}

func TestREPLHelpAndUnrecognized(t *testing.T) {
	db, err := intkv.Open(filepath.Join(t.TempDir(), "db"), intkv.Options{})
	require.NoError(t, err)
	defer db.Close()

	var out bytes.Buffer
	runREPL(db, strings.NewReader("help\nbogus\nexit\n"), &out)
	require.Contains(t, out.String(), "commands:")
	require.Contains(t, out.String(), "ERROR: unrecognized command")
}

func TestREPLStopsCleanlyOnEOFWithoutExit(t *testing.T) {
	db, err := intkv.Open(filepath.Join(t.TempDir(), "db"), intkv.Options{})
	require.NoError(t, err)
	defer db.Close()

	var out bytes.Buffer
	code := runREPL(db, strings.NewReader("put 1 1\n"), &out)
	require.Equal(t, 0, code)
}
