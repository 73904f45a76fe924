// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package bloom implements a configurable bits-per-key Bloom filter
// used both to build an SSTable's filter block and to probe it at read
// time.
package bloom

import "math"

// seed is the fixed hash seed used for all bloom-filter hashing.
const seed = 0xbc9f1d34

// MetaName is the meta-index block key an SSTable stores its filter
// block's location under.
const MetaName = "filter.leveldb.BuiltinBloomFilter2"

// FilterPolicy builds and probes Bloom filters at a fixed bits-per-key
// density.
type FilterPolicy struct {
	bitsPerKey int
	k          int
}

// NewPolicy returns a FilterPolicy at the given bits-per-key density.
// Normal production configuration keeps bitsPerKey in [1, 30]; the zero
// value resolves to a default of 10. Larger densities are accepted
// uncapped — only the number of probe iterations k is clamped — so
// callers that deliberately over-provision bits-per-key still get a
// filter with a bounded probe count.
func NewPolicy(bitsPerKey int) *FilterPolicy {
	if bitsPerKey <= 0 {
		bitsPerKey = 10
	}
	// k = round(bitsPerKey * ln 2), clamped to [1, 30].
	k := int(math.Round(float64(bitsPerKey) * math.Ln2))
	if k < 1 {
		k = 1
	}
	if k > 30 {
		k = 30
	}
	return &FilterPolicy{bitsPerKey: bitsPerKey, k: k}
}

// Name returns the policy's identifying string, matching MetaName.
func (p *FilterPolicy) Name() string { return MetaName }

// NewFilter builds a filter over the given set of keys.
func (p *FilterPolicy) NewFilter(keys [][]byte) []byte {
	n := len(keys)
	bits := n * p.bitsPerKey
	if bits < 64 {
		bits = 64
	}
	nBytes := (bits + 7) / 8
	bits = nBytes * 8

	buf := make([]byte, nBytes+1)
	buf[nBytes] = byte(p.k)

	for _, key := range keys {
		h := Hash(key, seed)
		delta := (h >> 17) | (h << 15)
		for i := 0; i < p.k; i++ {
			bitpos := h % uint32(bits)
			buf[bitpos/8] |= 1 << (bitpos % 8)
			h += delta
		}
	}
	return buf
}

// MayContain reports whether key might be a member of the set the filter
// b was built over. False positives are possible; false negatives are
// not.
func MayContain(b, key []byte) bool {
	if len(b) < 2 {
		return false
	}
	k := b[len(b)-1]
	nBits := (len(b) - 1) * 8
	if k > 30 {
		// Reserved encoding for future filter formats; treat as a
		// pass-through to stay forward compatible.
		return true
	}

	h := Hash(key, seed)
	delta := (h >> 17) | (h << 15)
	for i := 0; i < int(k); i++ {
		bitpos := h % uint32(nBits)
		if b[bitpos/8]&(1<<(bitpos%8)) == 0 {
			return false
		}
		h += delta
	}
	return true
}
