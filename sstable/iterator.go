// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package sstable

import "github.com/flint-db/flint/internal/base"

// Iterator walks every key/value pair of a table in ascending order,
// driven by the index block: each index entry loads the data block it
// points at (through the Reader's cache, if configured) before descending
// into it.
type Iterator struct {
	r       *Reader
	indexIt *blockIterator
	dataIt  *blockIterator
	err     error
}

// NewIter returns an Iterator positioned before the first entry; call
// First (or Next, repeatedly) to begin walking the table.
func (r *Reader) NewIter() *Iterator {
	return &Iterator{r: r, indexIt: r.index.newIterator()}
}

// First positions the iterator at the table's first entry, returning
// false if the table is empty or an error occurred (check Error).
func (it *Iterator) First() bool {
	it.indexIt.first()
	return it.loadForward()
}

// Next advances to the following entry, returning false at the end of
// the table or on error.
func (it *Iterator) Next() bool {
	if it.dataIt != nil {
		it.dataIt.next()
		if it.dataIt.isValid() {
			return true
		}
		if it.dataIt.error() != nil {
			it.err = it.dataIt.error()
			return false
		}
	}
	it.indexIt.next()
	return it.loadForward()
}

// loadForward loads data blocks starting at the index iterator's current
// position until it finds one with at least one entry, or the index is
// exhausted.
func (it *Iterator) loadForward() bool {
	for it.indexIt.isValid() {
		handle, n := DecodeBlockHandle(it.indexIt.value())
		if n == 0 {
			it.err = base.CorruptionErrorf("sstable: bad data block handle in index")
			return false
		}
		data, err := it.r.readDataBlock(handle)
		if err != nil {
			it.err = err
			return false
		}
		it.dataIt = data.newIterator()
		it.dataIt.first()
		if it.dataIt.isValid() {
			return true
		}
		it.indexIt.next()
	}
	if it.indexIt.error() != nil {
		it.err = it.indexIt.error()
	}
	return false
}

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool { return it.dataIt != nil && it.dataIt.isValid() }

// Key returns the current entry's key. Valid must be true.
func (it *Iterator) Key() []byte { return it.dataIt.key() }

// Value returns the current entry's value. Valid must be true.
func (it *Iterator) Value() []byte { return it.dataIt.value() }

// Error returns the first error encountered, if any.
func (it *Iterator) Error() error { return it.err }
