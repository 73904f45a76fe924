// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package wal

import (
	"io"
	"testing"

	"github.com/flint-db/flint/vfs"
	"github.com/stretchr/testify/require"
)

func TestAppendAndReadBack(t *testing.T) {
	f := vfs.NewMemFile()
	w := NewWriter(f)

	var want [][]byte
	for i := 1; i <= 100; i++ {
		payload := make([]byte, i)
		for j := range payload {
			payload[j] = byte(i)
		}
		want = append(want, payload)
		require.NoError(t, w.Append(payload))
	}

	f.Seek(0)
	r, err := NewReader(f, true, 0)
	require.NoError(t, err)

	for i, exp := range want {
		got, err := r.Next()
		require.NoErrorf(t, err, "record %d", i)
		require.Equal(t, exp, got)
	}
	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestEmptyPayloadRoundTrips(t *testing.T) {
	f := vfs.NewMemFile()
	w := NewWriter(f)
	require.NoError(t, w.Append(nil))
	require.NoError(t, w.Append([]byte("x")))

	f.Seek(0)
	r, err := NewReader(f, true, 0)
	require.NoError(t, err)

	got, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []byte{}, got)

	got, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, []byte("x"), got)
}

func TestFragmentationAcrossBlocks(t *testing.T) {
	f := vfs.NewMemFile()
	w := NewWriter(f)

	payload := make([]byte, blockSize*3)
	for i := range payload {
		payload[i] = byte(i)
	}
	require.NoError(t, w.Append(payload))

	f.Seek(0)
	r, err := NewReader(f, true, 0)
	require.NoError(t, err)
	got, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

// TestCorruptionSkipsToNextBlock flips a byte inside the first record's
// checksum and checks the reader drops that block's remainder but still
// recovers later, block-aligned records.
func TestCorruptionSkipsToNextBlock(t *testing.T) {
	f := vfs.NewMemFile()
	w := NewWriter(f)
	require.NoError(t, w.Append([]byte("first")))
	// Pad out the rest of the block so the next record starts at a fresh
	// block boundary.
	require.NoError(t, w.Append(make([]byte, blockSize-2*headerSize-len("first")-len("second"))))
	require.NoError(t, w.Append([]byte("second")))

	data := f.Bytes()
	data[0] ^= 0xff // corrupt the first record's stored checksum

	corrupt := vfs.NewMemFile()
	_, err := corrupt.Write(data)
	require.NoError(t, err)
	corrupt.Seek(0)

	var drops []DropReason
	r, err := NewReader(corrupt, true, 0)
	require.NoError(t, err)
	r.Dropped = func(n int, reason DropReason, err error) {
		drops = append(drops, reason)
	}

	got, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
	require.Contains(t, drops, DropBadRecord)

	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestInitialOffsetSkipsToNextBlockNearTail(t *testing.T) {
	f := vfs.NewMemFile()
	w := NewWriter(f)
	require.NoError(t, w.Append([]byte("a")))

	r, err := NewReader(f, true, blockSize-3)
	require.NoError(t, err)
	require.NotNil(t, r)
}
