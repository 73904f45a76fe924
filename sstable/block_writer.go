// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package sstable

import "github.com/flint-db/flint/internal/base"

// defaultRestartInterval is the number of entries between forced restart
// points in a data block.
const defaultRestartInterval = 16

// blockWriter accumulates sorted key/value entries with prefix
// compression, emitting a restart-point array on Finish. A blockWriter
// with restartInterval == 1 (as used for the index block) disables
// prefix compression entirely: every entry is its own restart point.
type blockWriter struct {
	restartInterval int
	buf             []byte
	restarts        []uint32
	lastKey         []byte
	nEntries        int
}

func newBlockWriter(restartInterval int) *blockWriter {
	return &blockWriter{restartInterval: restartInterval}
}

// reset empties the builder for reuse.
func (w *blockWriter) reset() {
	w.buf = w.buf[:0]
	w.restarts = w.restarts[:0]
	w.lastKey = w.lastKey[:0]
	w.nEntries = 0
}

// add appends one key/value entry. Keys must be added in ascending order.
func (w *blockWriter) add(key, value []byte) {
	shared := 0
	if w.nEntries%w.restartInterval != 0 {
		shared = sharedPrefixLen(w.lastKey, key)
	} else {
		w.restarts = append(w.restarts, uint32(len(w.buf)))
	}
	nonShared := len(key) - shared

	w.buf = base.EncodeVarint32(w.buf, uint32(shared))
	w.buf = base.EncodeVarint32(w.buf, uint32(nonShared))
	w.buf = base.EncodeVarint32(w.buf, uint32(len(value)))
	w.buf = append(w.buf, key[shared:]...)
	w.buf = append(w.buf, value...)

	w.lastKey = append(w.lastKey[:0], key...)
	w.nEntries++
}

// estimatedSize approximates the block's size if finished right now,
// enough to drive the writer's flush threshold decision.
func (w *blockWriter) estimatedSize() int {
	return len(w.buf) + 4*(len(w.restarts)+1)
}

// empty reports whether add has never been called since the last reset.
func (w *blockWriter) empty() bool { return w.nEntries == 0 }

// finish appends the restart-point array and count, returning the
// complete block payload (pre-compression, pre-trailer). The returned
// slice aliases the builder's internal buffer and is invalidated by the
// next add/reset.
func (w *blockWriter) finish() []byte {
	for _, r := range w.restarts {
		w.buf = base.EncodeFixed32(w.buf, r)
	}
	w.buf = base.EncodeFixed32(w.buf, uint32(len(w.restarts)))
	return w.buf
}

func sharedPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
