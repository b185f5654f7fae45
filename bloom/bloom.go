// Copyright 2026 The intkv Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bloom implements the fingerprint filter attached to every sorted
// run: a fixed-size bit array with double-hashed probe positions, sized from
// an expected entry count and a target false-positive rate.
package bloom

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// goldenRatio64 is the 64-bit golden ratio constant used to derive an
// independent second hash from the first by re-hashing h1 XOR the constant,
// the same derivation the reference implementation used with std::hash.
const goldenRatio64 = 0x9e3779b97f4a7c15

// Filter is a Bloom filter over int64 keys.
type Filter struct {
	bits []byte
	m    uint64 // number of bits
	k    uint64 // number of hash functions
}

// New derives m and k from the expected entry count n and the target false
// positive rate p, per spec:
//
//	m = ceil(-n*ln(p) / (ln 2)^2)
//	k = max(1, round((m/n) * ln 2))
func New(n uint64, p float64) *Filter {
	if n == 0 {
		n = 1
	}
	if p <= 0 || p >= 1 {
		p = 0.01
	}
	m := uint64(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	if m == 0 {
		m = 1
	}
	k := uint64(math.Round((float64(m) / float64(n)) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return &Filter{
		bits: make([]byte, (m+7)/8),
		m:    m,
		k:    k,
	}
}

// NewFromBits reconstructs a Filter from a previously serialized bit array
// and its persisted (m, k) parameters, as read back from a sorted run's
// filter region.
func NewFromBits(bits []byte, m, k uint64) *Filter {
	return &Filter{bits: bits, m: m, k: k}
}

// M returns the number of bits in the filter.
func (f *Filter) M() uint64 { return f.m }

// K returns the number of hash functions (probes per key).
func (f *Filter) K() uint64 { return f.k }

// Bits returns the raw bit array, ready for serialization. Callers must not
// mutate the returned slice.
func (f *Filter) Bits() []byte { return f.bits }

func seeds(key int64) (h1, h2 uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	h1 = xxhash.Sum64(buf[:])
	binary.LittleEndian.PutUint64(buf[:], h1^goldenRatio64)
	h2 = xxhash.Sum64(buf[:])
	return h1, h2
}

func (f *Filter) position(h1, h2 uint64, i uint64) uint64 {
	return (h1 + i*h2) % f.m
}

// Add sets the k probe positions for key. Never returns an error: this is a
// pure in-memory computation, per spec §4.1.
func (f *Filter) Add(key int64) {
	h1, h2 := seeds(key)
	for i := uint64(0); i < f.k; i++ {
		pos := f.position(h1, h2, i)
		f.bits[pos/8] |= 1 << (pos % 8)
	}
}

// MightContain reports whether key is possibly present. A false return means
// the key is definitely absent; this never produces a false negative for any
// key previously Add-ed.
func (f *Filter) MightContain(key int64) bool {
	h1, h2 := seeds(key)
	for i := uint64(0); i < f.k; i++ {
		pos := f.position(h1, h2, i)
		if f.bits[pos/8]&(1<<(pos%8)) == 0 {
			return false
		}
	}
	return true
}
