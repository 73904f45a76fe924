// Copyright 2025 The Flint Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package sstable

import "github.com/flint-db/flint/internal/base"

// footerLen is the fixed on-disk footer size: two block handles padded
// to 40 bytes together, plus an 8-byte magic.
const footerLen = 48

const magic uint64 = 0xdb4775248b80fb57

// comparatorMetaName is the meta-index key a table stores the name of the
// comparer it was built with under, letting a reader detect a mismatch
// against the comparer it was opened with.
const comparatorMetaName = "flint.comparator.name"

type footer struct {
	metaindexBH BlockHandle
	indexBH     BlockHandle
}

// encode writes f as the fixed 48-byte footer.
func (f footer) encode() []byte {
	buf := make([]byte, 0, footerLen-8)
	buf = f.metaindexBH.EncodeVarints(buf)
	buf = f.indexBH.EncodeVarints(buf)
	if len(buf) > footerLen-8 {
		panic("sstable: block handles too large to fit in footer")
	}
	padded := make([]byte, footerLen-8, footerLen)
	copy(padded, buf)
	return base.EncodeFixed64(padded, magic)
}

// parseFooter decodes the trailing footerLen bytes of an SSTable file.
func parseFooter(buf []byte) (footer, error) {
	if len(buf) != footerLen {
		return footer{}, base.CorruptionErrorf("sstable: footer is %d bytes, want %d", len(buf), footerLen)
	}
	var got uint64
	for i := 0; i < 8; i++ {
		got |= uint64(buf[footerLen-8+i]) << (8 * uint(i))
	}
	if got != magic {
		return footer{}, base.CorruptionErrorf("sstable: bad footer magic 0x%x", got)
	}

	rest := buf[:footerLen-8]
	metaindexBH, n := DecodeBlockHandle(rest)
	if n == 0 {
		return footer{}, base.CorruptionErrorf("sstable: bad metaindex block handle")
	}
	rest = rest[n:]
	indexBH, n := DecodeBlockHandle(rest)
	if n == 0 {
		return footer{}, base.CorruptionErrorf("sstable: bad index block handle")
	}
	return footer{metaindexBH: metaindexBH, indexBH: indexBH}, nil
}
