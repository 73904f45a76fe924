// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package vfs

import (
	"io"
	"sync"
)

// MemFile is an in-memory stand-in for a single file, implementing
// SequentialReader, RandomReader, and AppendableWriter over a shared
// growable buffer. It is the collaborator tests use throughout wal/ and
// sstable/.
type MemFile struct {
	mu   sync.Mutex
	data []byte
	pos  int64
}

// NewMemFile returns an empty in-memory file.
func NewMemFile() *MemFile { return &MemFile{} }

// Bytes returns a copy of the file's current contents.
func (f *MemFile) Bytes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]byte, len(f.data))
	copy(out, f.data)
	return out
}

// Write appends p to the file, implementing AppendableWriter.
func (f *MemFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = append(f.data, p...)
	return len(p), nil
}

// Read implements SequentialReader, advancing an internal read cursor.
func (f *MemFile) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

// Seek repositions the sequential read cursor, implementing
// SequentialReader.
func (f *MemFile) Seek(offset int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = offset
	return nil
}

// ReadAt implements RandomReader's positioned reads.
func (f *MemFile) ReadAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size implements RandomReader.
func (f *MemFile) Size() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.data)), nil
}

// CorruptByte flips every bit of the byte at offset, a test hook for
// simulating on-disk bit rot.
func (f *MemFile) CorruptByte(offset int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[offset] ^= 0xff
}

// Sync is a no-op for an in-memory file.
func (f *MemFile) Sync() error { return nil }

// Close is a no-op for an in-memory file.
func (f *MemFile) Close() error { return nil }
