// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arenaskl

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func newTestSkiplist() *Skiplist {
	return NewSkiplist(NewArena(), bytes.Compare, 1)
}

// TestContains checks that inserted keys are found and absent keys are not.
func TestContains(t *testing.T) {
	s := newTestSkiplist()
	keys := [][]byte{[]byte("b"), []byte("d"), []byte("f"), []byte("h")}
	for _, k := range keys {
		s.Insert(k)
	}
	for _, k := range keys {
		require.True(t, s.Contains(k), "expected %q to be present", k)
	}
	for _, k := range [][]byte{[]byte("a"), []byte("c"), []byte("e"), []byte("z")} {
		require.False(t, s.Contains(k), "expected %q to be absent", k)
	}
}

// TestOrdering checks that iteration visits keys in sorted order.
func TestOrdering(t *testing.T) {
	s := newTestSkiplist()
	rnd := rand.New(rand.NewSource(2))
	var want [][]byte
	seen := map[string]bool{}
	for len(want) < 200 {
		k := []byte(fmt.Sprintf("key-%06d", rnd.Intn(1_000_000)))
		if seen[string(k)] {
			continue
		}
		seen[string(k)] = true
		want = append(want, k)
	}
	for _, k := range want {
		s.Insert(k)
	}
	sort.Slice(want, func(i, j int) bool { return bytes.Compare(want[i], want[j]) < 0 })

	it := s.NewIter()
	var got [][]byte
	for it.First(); it.Valid(); it.Next() {
		got = append(got, append([]byte{}, it.Key()...))
	}
	// A plain %v on two 200-element [][]byte slices buries the first
	// mismatch in noise; pretty.Diff reports only the differing indices.
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		t.Fatalf("skip-list iteration order mismatch:\n%s", strings.Join(diff, "\n"))
	}
}

func TestSeekGE(t *testing.T) {
	s := newTestSkiplist()
	for _, k := range []string{"a", "c", "e", "g"} {
		s.Insert([]byte(k))
	}
	it := s.NewIter()
	it.SeekGE([]byte("d"))
	require.True(t, it.Valid())
	require.Equal(t, "e", string(it.Key()))

	it.SeekGE([]byte("z"))
	require.False(t, it.Valid())
}

func TestApproximateMemoryUsageGrows(t *testing.T) {
	s := newTestSkiplist()
	before := s.ApproximateMemoryUsage()
	s.Insert(bytes.Repeat([]byte("x"), 5000))
	after := s.ApproximateMemoryUsage()
	require.Greater(t, after, before)
}
