// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package cache implements a concurrent, capacity-bounded LRU striped
// across independent shards, used by sstable.Reader to cache decoded data
// blocks keyed by (table ID, block offset).
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/flint-db/flint/internal/bloom"
)

// numShards fixes the cache's shard count: hash >> shardShift selects one
// of 32 independent partitions.
const numShards = 32
const shardShift = 32 - 5

// cacheHashSeed is distinct from the bloom filter's seed so cache shard
// selection and filter membership hashing don't correlate.
const cacheHashSeed = 0xdb4f1a91

// HashKey returns the 32-bit hash Insert/Lookup/Erase expect as their hash
// argument, reusing the bloom filter's Murmur-derived hash function.
func HashKey(key []byte) uint32 { return bloom.Hash(key, cacheHashSeed) }

// Cache is a fully concurrent LRU: per-shard locks mean a read against
// one shard never serializes with a write against another. Capacity is
// divided evenly across shards at construction and never rebalanced.
type Cache struct {
	shards [numShards]shard

	hits      int64
	misses    int64
	evictions int64

	lockWaitMu sync.Mutex
	lockWait   *hdrhistogram.Histogram
}

// New returns a Cache with the given total capacity, measured in whatever
// units callers pass as charge.
func New(capacity int64) *Cache {
	c := &Cache{
		lockWait: hdrhistogram.New(1, 10_000_000_000, 3), // nanoseconds
	}
	perShard := (capacity + numShards - 1) / numShards
	for i := range c.shards {
		c.shards[i].init(perShard)
	}
	return c
}

func (c *Cache) shardFor(hash uint32) *shard { return &c.shards[hash>>shardShift] }

// Insert adds key/value under the given precomputed hash and charge,
// replacing any prior entry under the same key, then evicting
// least-recently-used entries until the owning shard's usage is back
// under capacity.
func (c *Cache) Insert(key []byte, hash uint32, value interface{}, charge int64) {
	start := time.Now()
	evicted := c.shardFor(hash).insert(key, hash, value, charge)
	c.observeLockWait(time.Since(start))
	atomic.AddInt64(&c.evictions, int64(evicted))
}

// Lookup returns the value stored for key, if any. It does not promote
// the entry within its shard's LRU chain.
func (c *Cache) Lookup(key []byte, hash uint32) (interface{}, bool) {
	start := time.Now()
	v, ok := c.shardFor(hash).lookup(key, hash)
	c.observeLockWait(time.Since(start))
	if ok {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}
	return v, ok
}

// Erase drops key's entry, if present.
func (c *Cache) Erase(key []byte, hash uint32) {
	c.shardFor(hash).erase(key, hash)
}

// Prune drops every entry in every shard, resetting each shard's bucket
// count back to its initial default.
func (c *Cache) Prune() {
	for i := range c.shards {
		c.shards[i].prune()
	}
}

// TotalCharge returns the sum of charge over every resident entry across
// all shards.
func (c *Cache) TotalCharge() int64 {
	var total int64
	for i := range c.shards {
		total += c.shards[i].totalCharge()
	}
	return total
}

func (c *Cache) observeLockWait(d time.Duration) {
	c.lockWaitMu.Lock()
	_ = c.lockWait.RecordValue(d.Nanoseconds())
	c.lockWaitMu.Unlock()
}
