// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package sstable

import "github.com/flint-db/flint/internal/base"

// blockHandleMaxLen bounds the encoded size of a BlockHandle: two
// varint64s, each at most 10 bytes.
const blockHandleMaxLen = 20

// BlockHandle locates a block within an SSTable file: its offset and the
// length of its payload as stored on disk (compressed, if the block is),
// excluding the trailer.
type BlockHandle struct {
	Offset uint64
	Size   uint64
}

// EncodeVarints appends h to dst as two varint64s and returns dst.
func (h BlockHandle) EncodeVarints(dst []byte) []byte {
	dst = base.EncodeVarint64(dst, h.Offset)
	dst = base.EncodeVarint64(dst, h.Size)
	return dst
}

// DecodeBlockHandle decodes a BlockHandle from the front of buf, returning
// the handle and the number of bytes consumed, or n == 0 on malformed
// input.
func DecodeBlockHandle(buf []byte) (BlockHandle, int) {
	offset, n1, ok := base.DecodeVarint64(buf)
	if !ok {
		return BlockHandle{}, 0
	}
	size, n2, ok := base.DecodeVarint64(buf[n1:])
	if !ok {
		return BlockHandle{}, 0
	}
	return BlockHandle{Offset: offset, Size: size}, n1 + n2
}
