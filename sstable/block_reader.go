// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package sstable

import (
	"sort"

	"github.com/flint-db/flint/internal/base"
)

// blockReader parses a finished block's payload: the restart-point array
// trails the entries, a 4-byte count trails that.
type blockReader struct {
	data        []byte // entries only, trailer stripped
	restarts    []byte // the restart offset array, fixed32 LE each
	numRestarts int
}

func newBlockReader(payload []byte) (*blockReader, error) {
	if len(payload) < 4 {
		return nil, base.CorruptionErrorf("sstable: block too short for restart count")
	}
	numRestarts := int(base.DecodeFixed32(payload[len(payload)-4:]))
	restartsStart := len(payload) - 4 - 4*numRestarts
	if numRestarts < 0 || restartsStart < 0 {
		return nil, base.CorruptionErrorf("sstable: invalid restart count %d", numRestarts)
	}
	return &blockReader{
		data:        payload[:restartsStart],
		restarts:    payload[restartsStart : len(payload)-4],
		numRestarts: numRestarts,
	}, nil
}

func (b *blockReader) restartOffset(i int) uint32 {
	return base.DecodeFixed32(b.restarts[4*i:])
}

// blockEntry is one decoded key/value pair plus the offset immediately
// following it, for linear-scan continuation.
type blockEntry struct {
	key   []byte
	value []byte
	next  int
}

// decodeEntryAt decodes one entry starting at offset, given the key that
// preceded it in this block (nil at a restart point).
func (b *blockReader) decodeEntryAt(offset int, prevKey []byte) (blockEntry, bool) {
	buf := b.data[offset:]
	shared, n1, ok := base.DecodeVarint32(buf)
	if !ok {
		return blockEntry{}, false
	}
	buf = buf[n1:]
	nonShared, n2, ok := base.DecodeVarint32(buf)
	if !ok {
		return blockEntry{}, false
	}
	buf = buf[n2:]
	valueLen, n3, ok := base.DecodeVarint32(buf)
	if !ok {
		return blockEntry{}, false
	}
	buf = buf[n3:]
	if int(shared) > len(prevKey) || int(nonShared) > len(buf) {
		return blockEntry{}, false
	}
	key := make([]byte, int(shared)+int(nonShared))
	copy(key, prevKey[:shared])
	copy(key[shared:], buf[:nonShared])
	buf = buf[nonShared:]
	if int(valueLen) > len(buf) {
		return blockEntry{}, false
	}
	value := buf[:valueLen]

	headerLen := n1 + n2 + n3
	consumed := headerLen + int(nonShared) + int(valueLen)
	return blockEntry{key: key, value: value, next: offset + consumed}, true
}

// seekGE returns the first entry whose key is >= key, and ok=false if no
// such entry exists (key is past the end of the block).
func (b *blockReader) seekGE(cmp *base.Comparer, key []byte) (blockEntry, bool, error) {
	// Binary search the restart array for the last restart whose key is
	// <= key.
	index := sort.Search(b.numRestarts, func(i int) bool {
		e, ok := b.decodeEntryAt(int(b.restartOffset(i)), nil)
		if !ok {
			return true
		}
		return cmp.Compare(e.key, key) > 0
	})
	start := 0
	if index > 0 {
		start = int(b.restartOffset(index - 1))
	}

	var prevKey []byte
	offset := start
	for offset < len(b.data) {
		e, ok := b.decodeEntryAt(offset, prevKey)
		if !ok {
			return blockEntry{}, false, base.CorruptionErrorf("sstable: malformed block entry")
		}
		if cmp.Compare(e.key, key) >= 0 {
			return e, true, nil
		}
		prevKey = e.key
		offset = e.next
	}
	return blockEntry{}, false, nil
}

// blockIterator walks every entry of a block in order.
type blockIterator struct {
	b       *blockReader
	offset  int
	prevKey []byte
	entry   blockEntry
	valid   bool
	err     error
}

func (b *blockReader) newIterator() *blockIterator {
	return &blockIterator{b: b}
}

func (it *blockIterator) first() {
	it.offset = 0
	it.prevKey = nil
	it.advance()
}

func (it *blockIterator) advance() {
	if it.offset >= len(it.b.data) {
		it.valid = false
		return
	}
	e, ok := it.b.decodeEntryAt(it.offset, it.prevKey)
	if !ok {
		it.valid = false
		it.err = base.CorruptionErrorf("sstable: malformed block entry")
		return
	}
	it.entry = e
	it.prevKey = e.key
	it.offset = e.next
	it.valid = true
}

func (it *blockIterator) next() { it.advance() }

func (it *blockIterator) isValid() bool { return it.valid }
func (it *blockIterator) key() []byte   { return it.entry.key }
func (it *blockIterator) value() []byte { return it.entry.value }
func (it *blockIterator) error() error  { return it.err }
