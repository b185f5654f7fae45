// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package memtable implements the bounded, key-unique, ordered in-memory
// map that absorbs writes before they are flushed to a sorted run. The
// balanced-structure variant is unspecified by contract (spec §4.4); this
// implementation uses a skip list addressed by slice index rather than the
// reference implementation's pointer-linked red-black tree, following the
// design notes' suggestion to prefer an allocator-friendly structure and
// the style of the teacher pack's own skip-list memtables.
package memtable

import (
	"math/rand"

	"intkv/internal/base"
)

const (
	maxLevel    = 16
	probability = 0.5
)

// InsertResult reports what Insert did.
type InsertResult int8

const (
	Inserted InsertResult = iota
	Updated
	Full
)

type node struct {
	key   base.Key
	value base.Value
	next  []int32 // node indices; -1 terminates a level's chain
}

// Memtable is a bounded, ordered map from Key to Value, backed by a skip
// list of array indices instead of pointers.
type Memtable struct {
	nodes   []node
	head    []int32 // head.next per level
	level   int
	size    int
	maxSize int
	tail    int32
	rnd     *rand.Rand
}

// New constructs an empty Memtable with the given entry capacity.
func New(maxSize int) *Memtable {
	head := make([]int32, maxLevel)
	for i := range head {
		head[i] = -1
	}
	return &Memtable{
		head:    head,
		level:   1,
		maxSize: maxSize,
		tail:    -1,
		rnd:     rand.New(rand.NewSource(1)),
	}
}

func (m *Memtable) randomLevel() int {
	lvl := 1
	for lvl < maxLevel && m.rnd.Float64() < probability {
		lvl++
	}
	return lvl
}

// findPathSimple is the standard skip-list descent: walk from the head at
// the top level down to level 0, keeping track of the rightmost node at
// each level whose key is less than the target.
func (m *Memtable) findPathSimple(key base.Key) (update [maxLevel]int32, match int32) {
	for i := range update {
		update[i] = -1
	}
	cur := int32(-1)
	for lvl := m.level - 1; lvl >= 0; lvl-- {
		next := m.levelNext(cur, lvl)
		for next != -1 && m.nodes[next].key < key {
			cur = next
			next = m.levelNext(cur, lvl)
		}
		update[lvl] = cur
	}
	candidate := m.levelNext(cur, 0)
	if candidate != -1 && m.nodes[candidate].key == key {
		match = candidate
	} else {
		match = -1
	}
	return update, match
}

func (m *Memtable) levelNext(nodeIdx int32, lvl int) int32 {
	if nodeIdx == -1 {
		if lvl < len(m.head) {
			return m.head[lvl]
		}
		return -1
	}
	n := &m.nodes[nodeIdx]
	if lvl < len(n.next) {
		return n.next[lvl]
	}
	return -1
}

func (m *Memtable) setLevelNext(nodeIdx int32, lvl int, target int32) {
	if nodeIdx == -1 {
		m.head[lvl] = target
		return
	}
	m.nodes[nodeIdx].next[lvl] = target
}

// Insert replaces an existing entry's value and returns Updated; otherwise
// inserts a new entry and returns Inserted if there is room, or returns
// Full without modifying the map.
func (m *Memtable) Insert(key base.Key, value base.Value) InsertResult {
	update, match := m.findPathSimple(key)
	if match != -1 {
		m.nodes[match].value = value
		return Updated
	}
	if m.size >= m.maxSize {
		return Full
	}

	lvl := m.randomLevel()
	if lvl > m.level {
		for i := m.level; i < lvl; i++ {
			update[i] = -1
		}
		m.level = lvl
	}

	idx := int32(len(m.nodes))
	m.nodes = append(m.nodes, node{key: key, value: value, next: make([]int32, lvl)})

	for i := 0; i < lvl; i++ {
		n := m.levelNext(update[i], i)
		m.setLevelNext(idx, i, n)
		m.setLevelNext(update[i], i, idx)
	}
	if m.levelNext(idx, 0) == -1 {
		m.tail = idx
	}
	m.size++
	return Inserted
}

// Lookup returns the value for key and true if present.
func (m *Memtable) Lookup(key base.Key) (base.Value, bool) {
	_, match := m.findPathSimple(key)
	if match == -1 {
		return 0, false
	}
	return m.nodes[match].value, true
}

// Range yields all pairs with lo <= key <= hi in ascending key order.
func (m *Memtable) Range(lo, hi base.Key) []base.Pair {
	if lo > hi {
		return nil
	}
	update, _ := m.findPathSimple(lo)
	cur := m.levelNext(update[0], 0)
	var out []base.Pair
	for cur != -1 && m.nodes[cur].key <= hi {
		out = append(out, base.Pair{Key: m.nodes[cur].key, Value: m.nodes[cur].value})
		cur = m.levelNext(cur, 0)
	}
	return out
}

// MinKey returns the smallest key. The caller must ensure the map is
// non-empty.
func (m *Memtable) MinKey() base.Key {
	return m.nodes[m.head[0]].key
}

// MaxKey returns the largest key. The caller must ensure the map is
// non-empty.
func (m *Memtable) MaxKey() base.Key {
	return m.nodes[m.tail].key
}

// Size returns the number of entries.
func (m *Memtable) Size() int { return m.size }

// Empty reports whether the map has zero entries.
func (m *Memtable) Empty() bool { return m.size == 0 }

// Clear removes all entries, resetting to the empty state.
func (m *Memtable) Clear() {
	for i := range m.head {
		m.head[i] = -1
	}
	m.nodes = nil
	m.level = 1
	m.size = 0
	m.tail = -1
}
