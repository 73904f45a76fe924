// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package crc implements the Castagnoli CRC-32C checksum and its masking
// transform. All WAL record headers and SSTable block trailers store the
// masked form.
package crc

import "hash/crc32"

var table = crc32.MakeTable(crc32.Castagnoli)

// CRC is an incrementally extensible CRC-32C accumulator.
type CRC uint32

// New returns the CRC-32C of b, ready to be extended with Update.
func New(b []byte) CRC {
	return CRC(crc32.Checksum(b, table))
}

// Update extends the receiver with additional bytes, returning the new
// checksum: Update(b) on New(a) yields Value(a ++ b).
func (c CRC) Update(b []byte) CRC {
	return CRC(crc32.Update(uint32(c), table, b))
}

// Value returns the checksum as a plain uint32.
func (c CRC) Value() uint32 { return uint32(c) }

// Mask rotates and adds a constant to defeat the problem of a CRC stored
// adjacent to the bytes it covers: mask(c) = ((c>>15)|(c<<17)) + 0xa282ead8.
func (c CRC) Mask() uint32 {
	x := uint32(c)
	return ((x >> 15) | (x << 17)) + 0xa282ead8
}

// Value computes the CRC-32C of b in one call: crc.Value(b) == crc.New(b).Value().
func Value(b []byte) uint32 {
	return New(b).Value()
}

// Extend computes the CRC-32C of (the bytes that produced) seed ++ b,
// given only seed and b: Extend(Value(a), b) == Value(a ++ b).
func Extend(seed uint32, b []byte) uint32 {
	return CRC(seed).Update(b).Value()
}

// Mask returns the masked form of an unmasked CRC-32C.
func Mask(crc uint32) uint32 {
	return CRC(crc).Mask()
}

// Unmask inverts Mask: Unmask(Mask(c)) == c.
func Unmask(masked uint32) uint32 {
	rot := masked - 0xa282ead8
	return (rot << 15) | (rot >> 17)
}
