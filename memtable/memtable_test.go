// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package memtable

import (
	"testing"

	"github.com/flint-db/flint/internal/base"
	"github.com/stretchr/testify/require"
)

func TestInsertAndGet(t *testing.T) {
	m := New(nil, 1)
	m.Insert(1, base.InternalKeyKindPut, []byte("a"), []byte("1"))
	m.Insert(2, base.InternalKeyKindPut, []byte("b"), []byte("2"))

	v, r := m.Get([]byte("a"), base.SeqNumMax)
	require.Equal(t, Found, r)
	require.Equal(t, "1", string(v))

	_, r = m.Get([]byte("z"), base.SeqNumMax)
	require.Equal(t, NotFound, r)
}

func TestNewerWriteWins(t *testing.T) {
	m := New(nil, 2)
	m.Insert(1, base.InternalKeyKindPut, []byte("k"), []byte("old"))
	m.Insert(5, base.InternalKeyKindPut, []byte("k"), []byte("new"))

	v, r := m.Get([]byte("k"), base.SeqNumMax)
	require.Equal(t, Found, r)
	require.Equal(t, "new", string(v))

	// A snapshot taken before the second write should see only the first.
	v, r = m.Get([]byte("k"), 1)
	require.Equal(t, Found, r)
	require.Equal(t, "old", string(v))
}

func TestDeletionTombstone(t *testing.T) {
	m := New(nil, 3)
	m.Insert(1, base.InternalKeyKindPut, []byte("k"), []byte("v"))
	m.Insert(2, base.InternalKeyKindDelete, []byte("k"), nil)

	_, r := m.Get([]byte("k"), base.SeqNumMax)
	require.Equal(t, FoundDeletion, r)

	v, r := m.Get([]byte("k"), 1)
	require.Equal(t, Found, r)
	require.Equal(t, "v", string(v))
}

func TestIteratorOrder(t *testing.T) {
	m := New(nil, 4)
	for _, k := range []string{"c", "a", "b"} {
		m.Insert(1, base.InternalKeyKindPut, []byte(k), []byte(k))
	}
	it := m.NewIter()
	var got []string
	for it.First(); it.Valid(); it.Next() {
		got = append(got, string(it.Key().UserKey))
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestApproximateMemoryUsage(t *testing.T) {
	m := New(nil, 5)
	before := m.ApproximateMemoryUsage()
	m.Insert(1, base.InternalKeyKindPut, []byte("k"), make([]byte, 10000))
	require.Greater(t, m.ApproximateMemoryUsage(), before)
}
