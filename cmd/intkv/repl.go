// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"intkv"
)

const helpText = `commands:
  put <int-key> <int-value>   store a value
  get <int-key>                look up a value
  scan <lo> <hi>                list pairs with lo <= key <= hi
  delete <int-key>             remove a value
  stats                        print diagnostic information
  help                         print this message
  exit                         quit`

// runREPL reads commands from in and writes responses to out until it sees
// "exit" or reaches EOF, per spec §6. It never itself decides the process
// exit code beyond 0 for a clean shutdown; open/close failures are handled
// by the caller.
func runREPL(db *intkv.DB, in io.Reader, out io.Writer) int {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "exit":
			return 0
		case "help":
			fmt.Fprintln(out, helpText)
		case "put":
			dispatchPut(db, out, fields)
		case "get":
			dispatchGet(db, out, fields)
		case "scan":
			dispatchScan(db, out, fields)
		case "delete":
			dispatchDelete(db, out, fields)
		case "stats":
			fmt.Fprint(out, db.Stats())
		default:
			fmt.Fprintf(out, "ERROR: unrecognized command %q\n", fields[0])
		}
	}
	return 0
}

func parseArgs(fields []string, n int) ([]int64, bool) {
	if len(fields) != n+1 {
		return nil, false
	}
	out := make([]int64, n)
	for i, f := range fields[1:] {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func dispatchPut(db *intkv.DB, out io.Writer, fields []string) {
	args, ok := parseArgs(fields, 2)
	if !ok {
		fmt.Fprintln(out, "ERROR: usage: put <int-key> <int-value>")
		return
	}
	if err := db.Put(args[0], args[1]); err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return
	}
	fmt.Fprintln(out, "OK")
}

func dispatchGet(db *intkv.DB, out io.Writer, fields []string) {
	args, ok := parseArgs(fields, 1)
	if !ok {
		fmt.Fprintln(out, "ERROR: usage: get <int-key>")
		return
	}
	v, err := db.Get(args[0])
	if err != nil {
		if err == intkv.ErrNotFound {
			fmt.Fprintln(out, "NOT FOUND")
			return
		}
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return
	}
	fmt.Fprintf(out, "%d => %d\n", args[0], v)
}

func dispatchScan(db *intkv.DB, out io.Writer, fields []string) {
	args, ok := parseArgs(fields, 2)
	if !ok {
		fmt.Fprintln(out, "ERROR: usage: scan <lo> <hi>")
		return
	}
	pairs, err := db.Scan(args[0], args[1])
	if err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return
	}
	if len(pairs) == 0 {
		fmt.Fprintln(out, "[]")
		return
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("(%d,%d)", p.Key, p.Value)
	}
	fmt.Fprintf(out, "[ %s ]\n", strings.Join(parts, ", "))
}

func dispatchDelete(db *intkv.DB, out io.Writer, fields []string) {
	args, ok := parseArgs(fields, 1)
	if !ok {
		fmt.Fprintln(out, "ERROR: usage: delete <int-key>")
		return
	}
	if err := db.Delete(args[0]); err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return
	}
	fmt.Fprintln(out, "OK")
}
