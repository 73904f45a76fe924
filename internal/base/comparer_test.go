// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package base

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

// TestDefaultComparerTotality checks the comparator axioms — reflexivity,
// antisymmetry, and transitivity — over a random sample of byte strings,
// plus the relation between Compare and Equal.
func TestDefaultComparerTotality(t *testing.T) {
	c := DefaultComparer
	keys := randomKeys(200, 1)

	for _, a := range keys {
		require.Equal(t, 0, c.Compare(a, a), "reflexivity")
		require.True(t, c.Equal(a, a))
	}

	for _, a := range keys {
		for _, b := range keys {
			cmp := c.Compare(a, b)
			require.Equal(t, -cmp, sign(c.Compare(b, a)), "antisymmetry: Compare(a,b) and Compare(b,a) must have opposite sign")
			require.Equal(t, cmp == 0, c.Equal(a, b), "Equal must agree with Compare==0")
		}
	}

	sorted := append([][]byte(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool { return c.Compare(sorted[i], sorted[j]) < 0 })
	for i := 1; i < len(sorted); i++ {
		require.LessOrEqual(t, c.Compare(sorted[i-1], sorted[i]), 0, "transitivity violated by a sort of Compare's own ordering")
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// TestSeparatorIsBetweenStartAndLimit checks Comparer.Separator's
// contract directly: start <= Separator(start, limit) < limit.
func TestSeparatorIsBetweenStartAndLimit(t *testing.T) {
	c := DefaultComparer
	cases := [][2]string{
		{"abc", "abd"},
		{"abc", "abz"},
		{"", "b"},
		{"helloa", "hellob"},
		{"abc", "abc\x00"},
	}
	for _, tc := range cases {
		start, limit := []byte(tc[0]), []byte(tc[1])
		sep := c.Separator(nil, start, limit)
		require.LessOrEqual(t, c.Compare(start, sep), 0)
		require.Less(t, c.Compare(sep, limit), 0)
	}
}

// TestSuccessorIsAtLeastKey checks Comparer.Successor's contract: the
// result is always >= key.
func TestSuccessorIsAtLeastKey(t *testing.T) {
	c := DefaultComparer
	for _, k := range []string{"", "a", "abc", "\xff", "a\xff\xff"} {
		key := []byte(k)
		succ := c.Successor(nil, key)
		require.GreaterOrEqual(t, c.Compare(succ, key), 0)
	}
}

// TestInternalCompareOrdersByUserKeyThenDescendingTrailer checks
// InternalCompare's two-part ordering: ascending by user key, and for
// equal user keys, descending by trailer so newer writes sort first.
func TestInternalCompareOrdersByUserKeyThenDescendingTrailer(t *testing.T) {
	c := DefaultComparer

	a := MakeInternalKey([]byte("x"), 5, InternalKeyKindPut)
	b := MakeInternalKey([]byte("y"), 1, InternalKeyKindPut)
	require.Negative(t, InternalCompare(c, a, b), "differing user keys order by user key regardless of sequence number")

	newer := MakeInternalKey([]byte("k"), 10, InternalKeyKindPut)
	older := MakeInternalKey([]byte("k"), 3, InternalKeyKindDelete)
	require.Negative(t, InternalCompare(c, newer, older), "same user key: higher sequence number sorts first")
	require.Positive(t, InternalCompare(c, older, newer))

	same := MakeInternalKey([]byte("k"), 10, InternalKeyKindPut)
	require.Zero(t, InternalCompare(c, newer, same))
}

// TestInternalKeyEncodeDecodeRoundTrip checks that encoding an internal
// key and decoding it back preserves the user key and trailer exactly.
func TestInternalKeyEncodeDecodeRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		userKey []byte
		seqNum  SeqNum
		kind    InternalKeyKind
	}{
		{[]byte(""), 0, InternalKeyKindPut},
		{[]byte("hello"), 42, InternalKeyKindDelete},
		{[]byte("world"), SeqNumMax, InternalKeyKindPut},
	} {
		k := MakeInternalKey(tc.userKey, tc.seqNum, tc.kind)
		buf := k.EncodeAppend(nil)
		require.Len(t, buf, k.Size())

		decoded := DecodeInternalKey(buf)
		// InternalKey nests a trailer bitfield inside a byte-slice struct;
		// a plain %v mismatch is hard to read, so diff field-by-field.
		if diff := pretty.Diff(k, decoded); len(diff) > 0 {
			t.Fatalf("internal key round-trip mismatch:\n%s", strings.Join(diff, "\n"))
		}
	}
}

func randomKeys(n, seed int64) [][]byte {
	rng := rand.New(rand.NewSource(seed))
	keys := make([][]byte, n)
	for i := range keys {
		length := rng.Intn(12)
		k := make([]byte, length)
		rng.Read(k)
		keys[i] = k
	}
	return keys
}
