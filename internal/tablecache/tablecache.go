// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package tablecache caches open sstable.Reader handles by file number,
// so repeated reads of the same SSTable reuse one already-parsed footer
// and index rather than re-opening and re-parsing the file. Internals
// beyond that contract (capacity, eviction policy) are left to the
// embedding process; this is a thin deduping layer, built on
// golang.org/x/sync/singleflight, over whatever Opener it's given.
package tablecache

import (
	"io"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/flint-db/flint/sstable"
)

// Opener opens the SSTable backing fileNum, returning a ready Reader and
// the io.Closer that releases its underlying file. Cache calls Opener at
// most once per fileNum concurrently, however many goroutines ask for it
// at once.
type Opener func(fileNum uint64) (*sstable.Reader, io.Closer, error)

type entry struct {
	reader *sstable.Reader
	closer io.Closer
}

// Cache maps file numbers to open sstable.Reader handles.
type Cache struct {
	open  Opener
	group singleflight.Group

	mu      sync.RWMutex
	readers map[uint64]*entry
}

// New returns a Cache that calls open to produce a Reader on first
// request for a given file number.
func New(open Opener) *Cache {
	return &Cache{open: open, readers: make(map[uint64]*entry)}
}

// Get looks up key in the SSTable identified by fileNum, opening (or
// reusing an already-open handle for) that file as needed.
func (c *Cache) Get(fileNum uint64, key []byte) ([]byte, error) {
	r, err := c.reader(fileNum)
	if err != nil {
		return nil, err
	}
	return r.Get(key)
}

// NewIterator returns an iterator over the SSTable identified by fileNum.
func (c *Cache) NewIterator(fileNum uint64) (*sstable.Iterator, error) {
	r, err := c.reader(fileNum)
	if err != nil {
		return nil, err
	}
	return r.NewIter(), nil
}

func (c *Cache) reader(fileNum uint64) (*sstable.Reader, error) {
	if r, ok := c.lookupLocked(fileNum); ok {
		return r, nil
	}

	v, err, _ := c.group.Do(strconv.FormatUint(fileNum, 10), func() (interface{}, error) {
		if r, ok := c.lookupLocked(fileNum); ok {
			return r, nil
		}
		r, closer, err := c.open(fileNum)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.readers[fileNum] = &entry{reader: r, closer: closer}
		c.mu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sstable.Reader), nil
}

func (c *Cache) lookupLocked(fileNum uint64) (*sstable.Reader, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.readers[fileNum]
	if !ok {
		return nil, false
	}
	return e.reader, true
}

// Evict closes and forgets fileNum's cached Reader, if any. Callers must
// ensure no concurrent Get/NewIterator call is still using it.
func (c *Cache) Evict(fileNum uint64) error {
	c.mu.Lock()
	e, ok := c.readers[fileNum]
	delete(c.readers, fileNum)
	c.mu.Unlock()
	if !ok {
		return nil
	}
	return e.closer.Close()
}
