// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import "intkv/internal/base"

// Merge combines two sorted runs into one at outPath, per spec §4.3's
// compaction merge procedure. younger must be the more recently written of
// the pair: on equal keys its pair wins, matching the LSM's youngest-wins
// visibility rule. Tombstones are always retained in the output; the
// engine's compaction policy never drops them, at any level.
func Merge(older, younger *Reader, outPath string, targetLevel int, targetFPR float64) (Info, error) {
	oldPairs, err := older.RangeScan(int64(older.MinKey()), int64(older.MaxKey()), ModeTree)
	if err != nil {
		return Info{}, err
	}
	youngPairs, err := younger.RangeScan(int64(younger.MinKey()), int64(younger.MaxKey()), ModeTree)
	if err != nil {
		return Info{}, err
	}

	merged := make([]base.Pair, 0, len(oldPairs)+len(youngPairs))
	i, j := 0, 0
	for i < len(oldPairs) && j < len(youngPairs) {
		switch {
		case oldPairs[i].Key < youngPairs[j].Key:
			merged = append(merged, oldPairs[i])
			i++
		case oldPairs[i].Key > youngPairs[j].Key:
			merged = append(merged, youngPairs[j])
			j++
		default:
			merged = append(merged, youngPairs[j])
			i++
			j++
		}
	}
	merged = append(merged, oldPairs[i:]...)
	merged = append(merged, youngPairs[j:]...)

	return Build(outPath, merged, targetLevel, targetFPR)
}
