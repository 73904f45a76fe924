// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package base

import "encoding/binary"

// This file implements fixed-width and varint integer coding, plus
// length-prefixed byte strings. All multi-byte integers are
// little-endian regardless of host byte order.

// EncodeFixed32 appends n to dst as 4 little-endian bytes.
func EncodeFixed32(dst []byte, n uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], n)
	return append(dst, buf[:]...)
}

// DecodeFixed32 decodes a 4-byte little-endian uint32 from the front of b.
func DecodeFixed32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// EncodeFixed64 appends n to dst as 8 little-endian bytes.
func EncodeFixed64(dst []byte, n uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	return append(dst, buf[:]...)
}

// DecodeFixed64 decodes an 8-byte little-endian uint64 from the front of b.
func DecodeFixed64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// VarintLength32 returns the number of bytes EncodeVarint32 would write for
// n: ceil(log128(n+1)), clamped to [1, 5].
func VarintLength32(n uint32) int { return VarintLength64(uint64(n)) }

// VarintLength64 returns the number of bytes EncodeVarint64 would write.
func VarintLength64(n uint64) int {
	length := 1
	for n >= 0x80 {
		n >>= 7
		length++
	}
	return length
}

// EncodeVarint32 appends n to dst using 7 bits of payload per byte, least
// significant group first, with a continuation bit in the high bit.
func EncodeVarint32(dst []byte, n uint32) []byte {
	return EncodeVarint64(dst, uint64(n))
}

// EncodeVarint64 appends n to dst as a base-128 varint.
func EncodeVarint64(dst []byte, n uint64) []byte {
	for n >= 0x80 {
		dst = append(dst, byte(n)|0x80)
		n >>= 7
	}
	return append(dst, byte(n))
}

// DecodeVarint32 decodes a varint from the front of b, bounding the
// number of continuation bytes to 5 (32 bits / 7 bits-per-byte, rounded
// up) and failing with ok=false on overflow or truncation.
func DecodeVarint32(b []byte) (v uint32, n int, ok bool) {
	v64, n, ok := decodeVarint(b, 5)
	return uint32(v64), n, ok
}

// DecodeVarint64 decodes a varint from the front of b, bounding the
// number of continuation bytes to 10 (64 bits / 7 bits-per-byte, rounded
// up) and failing with ok=false on overflow or truncation.
func DecodeVarint64(b []byte) (v uint64, n int, ok bool) {
	return decodeVarint(b, 10)
}

func decodeVarint(b []byte, maxBytes int) (v uint64, n int, ok bool) {
	var shift uint
	for i := 0; i < len(b) && i < maxBytes; i++ {
		c := b[i]
		if c < 0x80 {
			v |= uint64(c) << shift
			return v, i + 1, true
		}
		v |= uint64(c&0x7f) << shift
		shift += 7
	}
	return 0, 0, false
}

// PutBytes appends a length-prefixed byte string to dst: varint32(len(s))
// ++ s.
func PutBytes(dst, s []byte) []byte {
	dst = EncodeVarint32(dst, uint32(len(s)))
	return append(dst, s...)
}

// GetBytes decodes a length-prefixed byte string from the front of b. The
// returned slice aliases b. rest is what remains of b after the string.
func GetBytes(b []byte) (s, rest []byte, ok bool) {
	length, n, ok := DecodeVarint32(b)
	if !ok || n+int(length) > len(b) {
		return nil, nil, false
	}
	return b[n : n+int(length)], b[n+int(length):], true
}
