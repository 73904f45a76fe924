// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package base

import "bytes"

// Comparer defines a total order over user keys, plus the two key-shortening
// operations an SSTable index needs.
type Comparer struct {
	// Compare returns -1, 0, or +1 depending on whether a is less than,
	// equal to, or greater than b.
	Compare func(a, b []byte) int
	// Equal reports whether a and b are byte-identical.
	Equal func(a, b []byte) bool
	// Separator appends to dst the shortest byte string S such that
	// start <= S < limit, given start < limit, shrinking index keys.
	Separator func(dst, start, limit []byte) []byte
	// Successor appends to dst the shortest byte string >= key.
	Successor func(dst, key []byte) []byte
	// Name identifies the comparer so a reader can detect a mismatch
	// against the comparer a table was built with.
	Name string
}

// DefaultComparer is bytewise ascending order.
var DefaultComparer = &Comparer{
	Compare:   bytes.Compare,
	Equal:     bytes.Equal,
	Separator: appendSeparator,
	Successor: appendSuccessor,
	Name:      "leveldb.BytewiseComparator",
}

// appendSeparator implements Comparer.Separator for bytewise order: find
// the first differing byte position i; if start[i]+1 < limit[i], emit
// start[0:i] ++ (start[i]+1); otherwise emit start unchanged.
func appendSeparator(dst, start, limit []byte) []byte {
	n := len(start)
	if len(limit) < n {
		n = len(limit)
	}
	diff := 0
	for diff < n && start[diff] == limit[diff] {
		diff++
	}
	if diff >= n {
		// One is a prefix of the other; no shorter separator exists.
		return append(dst, start...)
	}
	if c := start[diff]; c < 0xff && c+1 < limit[diff] {
		dst = append(dst, start[:diff]...)
		dst = append(dst, c+1)
		return dst
	}
	return append(dst, start...)
}

// appendSuccessor implements Comparer.Successor for bytewise order:
// increment the first byte < 0xff and truncate; if all bytes are 0xff,
// return key unchanged.
func appendSuccessor(dst, key []byte) []byte {
	for i := 0; i < len(key); i++ {
		if c := key[i]; c != 0xff {
			dst = append(dst, key[:i+1]...)
			dst[len(dst)-1] = c + 1
			return dst
		}
	}
	return append(dst, key...)
}
