// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package cache

// entry is one resident cache entry, linked into both its shard's LRU
// chain and its shard's hash bucket chain simultaneously. inCache flips to
// false the instant either chain drops it; a reference a caller is still
// holding via a prior Lookup remains valid Go-heap memory regardless.
type entry struct {
	key    []byte
	value  interface{}
	hash   uint32
	charge int64

	lruPrev, lruNext *entry
	bucketNext       *entry

	inCache bool
}
