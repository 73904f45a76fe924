// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package crc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestStandardResults checks known CRC-32C values for fixed-pattern
// inputs, so a future change to the table or algorithm is caught
// immediately.
func TestStandardResults(t *testing.T) {
	zeros := make([]byte, 32)
	require.Equal(t, uint32(0x8a9136aa), Value(zeros))

	ones := make([]byte, 32)
	for i := range ones {
		ones[i] = 0xff
	}
	require.Equal(t, uint32(0x62a8ab43), Value(ones))
}

func TestExtend(t *testing.T) {
	a := []byte("hello ")
	b := []byte("world")
	require.Equal(t, Value(append(append([]byte{}, a...), b...)), Extend(Value(a), b))
}

func TestMaskInvolution(t *testing.T) {
	for _, c := range []uint32{0, 1, 0x8a9136aa, 0xffffffff, 0x62a8ab43} {
		masked := Mask(c)
		require.Equal(t, c, Unmask(masked))
		if c != 0 {
			require.NotEqual(t, c, masked)
		}
	}
}

func TestMaskedCRCDiffersFromRawValue(t *testing.T) {
	data := []byte("leveldb")
	v := Value(data)
	require.NotEqual(t, v, Mask(v))
}
