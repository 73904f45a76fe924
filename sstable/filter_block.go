// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package sstable

import (
	"github.com/flint-db/flint/internal/base"
	"github.com/flint-db/flint/internal/bloom"
)

// filterBaseLg determines the filter granularity: one filter per 2^baseLg
// bytes of data-block file offset.
const filterBaseLg = 11

// filterBlockBuilder buffers keys as they're added to the current data
// block and emits one filter per 2^filterBaseLg-byte span of file offset,
// matching the layout filterBlockReader expects: concatenated per-span
// filters, a u32 offset array, the offset array's own 4-byte start
// offset, and a trailing 1-byte base_lg.
type filterBlockBuilder struct {
	policy       *bloom.FilterPolicy
	keys         [][]byte
	result       []byte
	filterOffset []uint32
}

func newFilterBlockBuilder(policy *bloom.FilterPolicy) *filterBlockBuilder {
	return &filterBlockBuilder{policy: policy}
}

// addKey buffers key for inclusion in the filter currently being built.
func (b *filterBlockBuilder) addKey(key []byte) {
	b.keys = append(b.keys, append([]byte(nil), key...))
}

// startBlock is called with the file offset of each new data block, and
// emits filters for every 2^filterBaseLg-byte span before the one that
// contains that offset.
func (b *filterBlockBuilder) startBlock(blockOffset uint64) {
	index := blockOffset / (1 << filterBaseLg)
	for uint64(len(b.filterOffset)) < index {
		b.generateFilter()
	}
}

func (b *filterBlockBuilder) generateFilter() {
	b.filterOffset = append(b.filterOffset, uint32(len(b.result)))
	if len(b.keys) == 0 {
		return
	}
	filter := b.policy.NewFilter(b.keys)
	b.result = append(b.result, filter...)
	b.keys = b.keys[:0]
}

// finish flushes any pending filter and returns the complete filter-block
// payload.
func (b *filterBlockBuilder) finish() []byte {
	if len(b.keys) > 0 {
		b.generateFilter()
	}
	arrayStart := len(b.result)
	for _, off := range b.filterOffset {
		b.result = base.EncodeFixed32(b.result, off)
	}
	b.result = base.EncodeFixed32(b.result, uint32(arrayStart))
	b.result = append(b.result, byte(filterBaseLg))
	return b.result
}

// filterBlockReader probes the filter covering a given data-block offset.
type filterBlockReader struct {
	policy  *bloom.FilterPolicy
	data    []byte // concatenated filters only
	offsets []byte // the fixed32 offset array
	num     int
	baseLg  int
}

func newFilterBlockReader(policy *bloom.FilterPolicy, contents []byte) (*filterBlockReader, error) {
	if len(contents) < 5 {
		return nil, base.CorruptionErrorf("sstable: filter block too short")
	}
	baseLg := int(contents[len(contents)-1])
	arrayStart := base.DecodeFixed32(contents[len(contents)-5:])
	if uint64(arrayStart) > uint64(len(contents)-5) {
		return nil, base.CorruptionErrorf("sstable: invalid filter offset array start")
	}
	offsets := contents[arrayStart : len(contents)-5]
	return &filterBlockReader{
		policy:  policy,
		data:    contents[:arrayStart],
		offsets: offsets,
		num:     len(offsets) / 4,
		baseLg:  baseLg,
	}, nil
}

// mayContain reports whether key might be present in the data block that
// starts at blockOffset.
func (r *filterBlockReader) mayContain(blockOffset uint64, key []byte) bool {
	index := int(blockOffset >> uint(r.baseLg))
	if index >= r.num {
		return true
	}
	start := base.DecodeFixed32(r.offsets[4*index:])
	var limit uint32
	if index+1 < r.num {
		limit = base.DecodeFixed32(r.offsets[4*(index+1):])
	} else {
		limit = uint32(len(r.data))
	}
	if start > limit || int(limit) > len(r.data) {
		return true
	}
	return bloom.MayContain(r.data[start:limit], key)
}
