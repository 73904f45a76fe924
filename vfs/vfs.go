// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package vfs gives the storage engine's abstract I/O collaborators
// (Clock, SequentialReader, RandomReader, AppendableWriter) a concrete,
// swappable home, so disk- and memory-backed implementations can be
// substituted transparently in tests.
package vfs

import "io"

// Clock supplies monotonic time to the core, consumed only to seed the
// memtable's skip-list height PRNG once per memtable.
type Clock interface {
	Now() int64 // nanoseconds
}

// SystemClock is the default Clock, backed by time.Now().
var SystemClock Clock = systemClock{}

// SequentialReader is read-only, forward-only (with an explicit Seek for
// WAL replay's initial_offset), consumed by wal.Reader.
type SequentialReader interface {
	io.Reader
	io.Closer
	// Seek repositions the next Read to offset bytes from the start of
	// the stream, used only by wal.Reader's initial_offset support.
	Seek(offset int64) error
}

// RandomReader supports positioned reads of arbitrary length, consumed by
// sstable.Reader for block and footer I/O.
type RandomReader interface {
	io.ReaderAt
	io.Closer
	// Size returns the total length of the underlying file.
	Size() (int64, error)
}

// AppendableWriter is an append-only sink, consumed by wal.Writer and
// sstable.Writer.
type AppendableWriter interface {
	io.Writer
	io.Closer
	// Sync flushes any OS-buffered data to stable storage.
	Sync() error
}

type systemClock struct{}

func (systemClock) Now() int64 { return nowFunc() }
