// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package memtable implements the in-memory ordered index used to buffer
// writes ahead of an SSTable flush. It is a thin, internal-key-aware
// layer over internal/arenaskl.Skiplist.
package memtable

import (
	"github.com/flint-db/flint/internal/arenaskl"
	"github.com/flint-db/flint/internal/base"
)

// Memtable is the ordered, in-memory index keyed by internal keys.
type Memtable struct {
	cmp *base.Comparer
	skl *arenaskl.Skiplist
}

// New returns an empty Memtable ordered by cmp, backed by a fresh arena.
// seed seeds the skip list's height PRNG once.
func New(cmp *base.Comparer, seed int64) *Memtable {
	if cmp == nil {
		cmp = base.DefaultComparer
	}
	arena := arenaskl.NewArena()
	skl := arenaskl.NewSkiplist(arena, func(a, b []byte) int {
		return base.InternalCompare(cmp, base.DecodeInternalKey(a), base.DecodeInternalKey(b))
	}, seed)
	return &Memtable{cmp: cmp, skl: skl}
}

// Insert records a write for key at seqNum with the given kind. value is
// ignored for InternalKeyKindDelete. Sequence numbers are unique, so the
// resulting internal key is always unique and Insert never collides with
// an existing entry.
func (m *Memtable) Insert(seqNum base.SeqNum, kind base.InternalKeyKind, key, value []byte) {
	if kind == base.InternalKeyKindDelete {
		value = nil
	}
	ikey := base.MakeInternalKey(key, seqNum, kind)
	buf := make([]byte, ikey.Size()+len(value))
	ikey.Encode(buf)
	copy(buf[ikey.Size():], value)
	m.skl.Insert(buf)
}

// LookupResult distinguishes "found a live value", "found a tombstone",
// and "not present at or below the snapshot".
type LookupResult int

const (
	// Found indicates Get's Value return is meaningful.
	Found LookupResult = iota
	// FoundDeletion indicates the most recent write at or below the
	// snapshot sequence number was a tombstone.
	FoundDeletion
	// NotFound indicates no entry for the key exists at or below the
	// snapshot sequence number.
	NotFound
)

// Get returns the most recent value for userKey with a sequence number
// <= snapshotSeq.
func (m *Memtable) Get(userKey []byte, snapshotSeq base.SeqNum) (value []byte, result LookupResult) {
	it := m.skl.NewIter()
	// Seek to the first internal key >= (userKey, snapshotSeq, DELETE):
	// since trailers sort newer-first and DELETE is the largest kind,
	// this lands exactly on the first entry for userKey visible at or
	// before the snapshot, including one written at snapshotSeq itself.
	seekKey := base.MakeInternalKey(userKey, snapshotSeq, base.InternalKeyKindDelete)
	buf := seekKey.EncodeAppend(nil)
	it.SeekGE(buf)
	if !it.Valid() {
		return nil, NotFound
	}
	ikey := base.DecodeInternalKey(it.Key())
	if !m.cmp.Equal(ikey.UserKey, userKey) {
		return nil, NotFound
	}
	if ikey.Kind() == base.InternalKeyKindDelete {
		return nil, FoundDeletion
	}
	return it.Key()[ikey.Size():], Found
}

// ApproximateMemoryUsage reports the underlying arena's memory usage.
func (m *Memtable) ApproximateMemoryUsage() int {
	return m.skl.ApproximateMemoryUsage()
}

// Iterator walks the memtable's entries in internal-key order.
type Iterator struct {
	it  *arenaskl.Iterator
	cmp *base.Comparer
}

// NewIter returns an iterator over the memtable's entries.
func (m *Memtable) NewIter() *Iterator {
	return &Iterator{it: m.skl.NewIter(), cmp: m.cmp}
}

// First positions the iterator at the first entry.
func (it *Iterator) First() { it.it.First() }

// SeekGE positions the iterator at the first entry whose internal key is
// >= (userKey, seqNum, PUT). Entries for userKey with a sequence number
// above seqNum, and a deletion at exactly seqNum, sort before that key
// and are skipped.
func (it *Iterator) SeekGE(userKey []byte, seqNum base.SeqNum) {
	seekKey := base.MakeInternalKey(userKey, seqNum, base.InternalKeyKindPut)
	it.it.SeekGE(seekKey.EncodeAppend(nil))
}

// Next advances the iterator.
func (it *Iterator) Next() { it.it.Next() }

// Valid reports whether the iterator is positioned at an entry.
func (it *Iterator) Valid() bool { return it.it.Valid() }

// Key returns the internal key at the iterator's current position.
func (it *Iterator) Key() base.InternalKey {
	return base.DecodeInternalKey(it.it.Key())
}

// Value returns the value bytes at the iterator's current position.
func (it *Iterator) Value() []byte {
	raw := it.it.Key()
	ikey := base.DecodeInternalKey(raw)
	return raw[ikey.Size():]
}
