// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"intkv"
)

var (
	dbDir                    string
	memtableMaxEntries       int
	bloomBitsPerEntry        float64
	cachePagesMax            int
	cacheFloodThresholdPages int
)

var rootCmd = &cobra.Command{
	Use:   "intkv",
	Short: "intkv is an embedded ordered key-value store's interactive shell",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := intkv.Options{
			MemtableMaxEntries:       memtableMaxEntries,
			BloomBitsPerEntry:        bloomBitsPerEntry,
			CachePagesMax:            cachePagesMax,
			CacheFloodThresholdPages: cacheFloodThresholdPages,
		}
		db, err := intkv.Open(dbDir, opts)
		if err != nil {
			return fmt.Errorf("open %s: %w", dbDir, err)
		}

		exitCode := runREPL(db, os.Stdin, os.Stdout)

		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close: %v\n", err)
			if exitCode == 0 {
				exitCode = 1
			}
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func main() {
	rootCmd.Flags().StringVar(&dbDir, "dir", "data/intkv", "database directory")
	rootCmd.Flags().IntVar(&memtableMaxEntries, "memtable-max-entries", 4096, "memtable capacity in pairs")
	rootCmd.Flags().Float64Var(&bloomBitsPerEntry, "bloom-bits-per-entry", 10, "filter bits per entry")
	rootCmd.Flags().IntVar(&cachePagesMax, "cache-pages-max", 4096, "page cache capacity")
	rootCmd.Flags().IntVar(&cacheFloodThresholdPages, "cache-flood-threshold-pages", 0,
		"scan page count above which touched pages are demoted (0 defaults to cache-pages-max)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
