// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package tablecache

import (
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flint-db/flint/sstable"
	"github.com/flint-db/flint/vfs"
)

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

func buildTable(t *testing.T, keys, values [][]byte) *vfs.MemFile {
	t.Helper()
	f := vfs.NewMemFile()
	w := sstable.NewWriter(f, nil)
	for i := range keys {
		require.NoError(t, w.Add(keys[i], values[i]))
	}
	require.NoError(t, w.Finish())
	return f
}

func TestGetOpensLazilyAndReuses(t *testing.T) {
	f := buildTable(t, [][]byte{[]byte("a"), []byte("b")}, [][]byte{[]byte("1"), []byte("2")})

	var opens int64
	c := New(func(fileNum uint64) (*sstable.Reader, io.Closer, error) {
		atomic.AddInt64(&opens, 1)
		r, err := sstable.Open(f, nil)
		return r, noopCloser{}, err
	})

	for i := 0; i < 10; i++ {
		v, err := c.Get(42, []byte("a"))
		require.NoError(t, err)
		require.Equal(t, []byte("1"), v)
	}
	require.Equal(t, int64(1), atomic.LoadInt64(&opens), "Get must reuse the already-open reader")
}

func TestConcurrentGetOpensOnce(t *testing.T) {
	f := buildTable(t, [][]byte{[]byte("a")}, [][]byte{[]byte("1")})

	var opens int64
	c := New(func(fileNum uint64) (*sstable.Reader, io.Closer, error) {
		atomic.AddInt64(&opens, 1)
		r, err := sstable.Open(f, nil)
		return r, noopCloser{}, err
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(1, []byte("a"))
			require.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Equal(t, int64(1), atomic.LoadInt64(&opens))
}

func TestEvictForcesReopen(t *testing.T) {
	f := buildTable(t, [][]byte{[]byte("a")}, [][]byte{[]byte("1")})

	var opens int64
	c := New(func(fileNum uint64) (*sstable.Reader, io.Closer, error) {
		atomic.AddInt64(&opens, 1)
		r, err := sstable.Open(f, nil)
		return r, noopCloser{}, err
	})

	_, err := c.Get(1, []byte("a"))
	require.NoError(t, err)
	require.NoError(t, c.Evict(1))
	_, err = c.Get(1, []byte("a"))
	require.NoError(t, err)
	require.Equal(t, int64(2), atomic.LoadInt64(&opens))
}

func TestNewIteratorWalksTable(t *testing.T) {
	f := buildTable(t, [][]byte{[]byte("a"), []byte("b")}, [][]byte{[]byte("1"), []byte("2")})
	c := New(func(fileNum uint64) (*sstable.Reader, io.Closer, error) {
		r, err := sstable.Open(f, nil)
		return r, noopCloser{}, err
	})

	it, err := c.NewIterator(1)
	require.NoError(t, err)
	require.True(t, it.First())
	require.Equal(t, []byte("a"), it.Key())
	require.True(t, it.Next())
	require.Equal(t, []byte("b"), it.Key())
	require.False(t, it.Next())
	require.NoError(t, it.Error())
}
